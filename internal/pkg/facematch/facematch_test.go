package facematch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	vectors := []Embedding{
		{1},
		{0.1, 0.2, 0.3},
		{-3.5, 7.25, 0, 1e-3, 42},
		{0.001, -0.002, 0.003, -0.004},
	}
	for _, v := range vectors {
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9, "self similarity of %v", v)
	}
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	assert.InDelta(t, 0.0, CosineSimilarity(Embedding{1, 0}, Embedding{0, 1}), 1e-12)
	assert.InDelta(t, -1.0, CosineSimilarity(Embedding{1, 2}, Embedding{-1, -2}), 1e-12)
}

func TestCosineSimilarity_UndefinedSentinel(t *testing.T) {
	tests := []struct {
		name string
		a, b Embedding
	}{
		{"length mismatch", Embedding{1, 2, 3}, Embedding{1, 2}},
		{"both empty", Embedding{}, Embedding{}},
		{"nil", nil, nil},
		{"zero vector left", Embedding{0, 0, 0}, Embedding{1, 2, 3}},
		{"zero vector right", Embedding{1, 2, 3}, Embedding{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := CosineSimilarity(tt.a, tt.b)
			assert.True(t, IsUndefined(s))
			assert.False(t, IsMatch(s, 0.1))
		})
	}
}

func TestIsMatch(t *testing.T) {
	assert.True(t, IsMatch(0.60, 0.60))
	assert.True(t, IsMatch(0.75, 0.60))
	assert.False(t, IsMatch(0.74, 0.75))
	assert.False(t, IsMatch(math.NaN(), 0))
}

func TestMatcher_ThresholdsAreIndependent(t *testing.T) {
	attendance, err := NewMatcher(0.60)
	require.NoError(t, err)
	faceAttendance, err := NewMatcher(0.75)
	require.NoError(t, err)

	baseline := Embedding{1, 0, 0}
	probe := Embedding{0.7, 0.714, 0}

	sim, ok := attendance.Match(baseline, probe)
	assert.InDelta(t, 0.7, sim, 0.001)
	assert.True(t, ok)

	_, ok = faceAttendance.Match(baseline, probe)
	assert.False(t, ok)
}

func TestNewMatcher_RejectsInvalidThreshold(t *testing.T) {
	for _, th := range []float64{0, -0.1, 1.01, math.NaN()} {
		_, err := NewMatcher(th)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestParseEmbedding(t *testing.T) {
	e, err := ParseEmbedding("[0.5,-1,2.25]")
	require.NoError(t, err)
	assert.Equal(t, Embedding{0.5, -1, 2.25}, e)
	assert.Equal(t, "[0.5,-1,2.25]", e.String())

	e, err = ParseEmbedding("")
	require.NoError(t, err)
	assert.Nil(t, e)

	_, err = ParseEmbedding("not-json")
	assert.Error(t, err)
}
