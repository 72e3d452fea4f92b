package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMeters_Reflexive(t *testing.T) {
	points := []Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 10, Longitude: 106},
		{Latitude: -6.2, Longitude: 106.816666},
		{Latitude: 89.9, Longitude: -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, DistanceMeters(p, p), "distance of %v to itself", p)
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{{Latitude: 10, Longitude: 106}, {Latitude: 10.0009, Longitude: 106}},
		{{Latitude: -6.2, Longitude: 106.8}, {Latitude: 1.35, Longitude: 103.82}},
		{{Latitude: 51.5, Longitude: -0.12}, {Latitude: 40.71, Longitude: -74.0}},
	}
	for _, p := range pairs {
		assert.InDelta(t, DistanceMeters(p[0], p[1]), DistanceMeters(p[1], p[0]), 1e-9)
	}
}

func TestDistanceMeters_Antipodal(t *testing.T) {
	d := DistanceMeters(Point{Latitude: 0, Longitude: 0}, Point{Latitude: 0, Longitude: 180})
	assert.InDelta(t, math.Pi*EarthRadiusMeters, d, 1e-6)
}

func TestFence_OfficeBoundary(t *testing.T) {
	office := Point{Latitude: 10.0, Longitude: 106.0}
	punch := Point{Latitude: 10.0009, Longitude: 106.0}

	d := DistanceMeters(office, punch)
	assert.InDelta(t, 100.08, d, 0.01)

	fence100, err := NewFence(office, 100)
	require.NoError(t, err)
	assert.False(t, fence100.Contains(punch), "100.08m is outside a 100m fence")

	fence101, err := NewFence(office, 101)
	require.NoError(t, err)
	assert.True(t, IsWithinFence(punch, fence101))
}

func TestFence_ContainsDistanceBoundaryIsInclusive(t *testing.T) {
	fence, err := NewFence(Point{Latitude: 10, Longitude: 106}, 100)
	require.NoError(t, err)

	assert.True(t, fence.ContainsDistance(100))
	assert.True(t, fence.ContainsDistance(99.999))
	assert.False(t, fence.ContainsDistance(100.0001))
}

func TestNewFence_RejectsNonPositiveRadius(t *testing.T) {
	for _, radius := range []int{0, -1, -500} {
		_, err := NewFence(Point{}, radius)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestFence_ZeroValueContainsNothing(t *testing.T) {
	var f Fence
	assert.False(t, f.Contains(Point{}))
}
