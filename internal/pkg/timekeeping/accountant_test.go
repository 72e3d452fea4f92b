package timekeeping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func morningShift(grace int) ShiftConfig {
	return ShiftConfig{
		Start:        8 * time.Hour,
		End:          12 * time.Hour,
		GraceMinutes: grace,
		OtMultiplier: decimal.NewFromFloat(1.5),
	}
}

func at(hour, min int) *time.Time {
	t := time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
	return &t
}

var shiftDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestComputeAttendance_MorningScenario(t *testing.T) {
	got := ComputeAttendance(morningShift(10), shiftDate, at(8, 5), at(12, 20))

	assert.Equal(t, Computed{
		WorkMinutes:  255,
		LateMinutes:  0,
		EarlyMinutes: 0,
		OtMinutes:    15,
	}, got)
}

func TestComputeAttendance_MissingPunch(t *testing.T) {
	shift := morningShift(10)
	assert.Equal(t, Computed{}, ComputeAttendance(shift, shiftDate, nil, at(12, 0)))
	assert.Equal(t, Computed{}, ComputeAttendance(shift, shiftDate, at(8, 0), nil))
	assert.Equal(t, Computed{}, ComputeAttendance(shift, shiftDate, nil, nil))
}

func TestComputeAttendance_GraceBoundary(t *testing.T) {
	for _, grace := range []int{0, 5, 10, 30} {
		shift := morningShift(grace)

		onGrace := ComputeAttendance(shift, shiftDate, at(8, grace), at(12, 0))
		assert.Equal(t, 0, onGrace.LateMinutes, "grace=%d check-in at s+g", grace)

		oneAfter := ComputeAttendance(shift, shiftDate, at(8, grace+1), at(12, 0))
		assert.Equal(t, 1, oneAfter.LateMinutes, "grace=%d check-in at s+g+1", grace)
	}
}

func TestComputeAttendance_EarlyLeave(t *testing.T) {
	shift := morningShift(10)

	atGrace := ComputeAttendance(shift, shiftDate, at(8, 0), at(11, 50))
	assert.Equal(t, 0, atGrace.EarlyMinutes)

	early := ComputeAttendance(shift, shiftDate, at(8, 0), at(11, 20))
	assert.Equal(t, 30, early.EarlyMinutes)
	assert.Equal(t, 200, early.WorkMinutes)
	assert.Equal(t, 0, early.OtMinutes)
}

func TestComputeAttendance_WorkMinutesAreWholeMinutes(t *testing.T) {
	shift := morningShift(0)
	in := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{59 * time.Second, 0},
		{time.Minute, 1},
		{4*time.Hour + 30*time.Second, 240},
		{9*time.Hour + 59*time.Second, 540},
	}
	for _, tt := range tests {
		out := in.Add(tt.elapsed)
		got := ComputeAttendance(shift, shiftDate, &in, &out)
		assert.Equal(t, tt.want, got.WorkMinutes, "elapsed %s", tt.elapsed)
		assert.Equal(t, max(0, tt.want-240), got.OtMinutes, "elapsed %s", tt.elapsed)
	}
}

func TestComputeAttendance_CheckoutBeforeCheckinIsNotClamped(t *testing.T) {
	got := ComputeAttendance(morningShift(0), shiftDate, at(12, 0), at(8, 0))
	assert.Equal(t, -240, got.WorkMinutes)
	assert.Equal(t, 0, got.OtMinutes)
}

func TestComputeAttendance_Overnight(t *testing.T) {
	shift := ShiftConfig{
		Start:        22 * time.Hour,
		End:          6 * time.Hour,
		GraceMinutes: 5,
		OtMultiplier: decimal.NewFromFloat(1.5),
		IsOvernight:  true,
	}
	in := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	out := time.Date(2024, 1, 2, 6, 30, 0, 0, time.UTC)

	got := ComputeAttendance(shift, shiftDate, &in, &out)
	assert.Equal(t, Computed{WorkMinutes: 510, OtMinutes: 30}, got)
	assert.Equal(t, 480, shift.Minutes())

	leftEarly := time.Date(2024, 1, 2, 5, 0, 0, 0, time.UTC)
	got = ComputeAttendance(shift, shiftDate, &in, &leftEarly)
	assert.Equal(t, 55, got.EarlyMinutes)
}

func TestComputeAttendance_Idempotent(t *testing.T) {
	shift := morningShift(10)
	first := ComputeAttendance(shift, shiftDate, at(8, 17), at(12, 43))
	second := ComputeAttendance(shift, shiftDate, at(8, 17), at(12, 43))
	assert.Equal(t, first, second)
}

func TestComputeAttendance_AnchorsOnShiftDateLocation(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	in := time.Date(2024, 1, 1, 1, 20, 0, 0, time.UTC) // 08:20 WIB
	out := time.Date(2024, 1, 1, 5, 0, 0, 0, time.UTC) // 12:00 WIB

	got := ComputeAttendance(morningShift(10), date, &in, &out)
	assert.Equal(t, 10, got.LateMinutes)
	assert.Equal(t, 220, got.WorkMinutes)
}

func TestShiftConfig_Validate(t *testing.T) {
	valid := morningShift(10)
	require.NoError(t, valid.Validate())

	negativeGrace := morningShift(-1)
	assert.ErrorIs(t, negativeGrace.Validate(), ErrInvalidConfig)

	zeroMultiplier := morningShift(0)
	zeroMultiplier.OtMultiplier = decimal.Zero
	assert.ErrorIs(t, zeroMultiplier.Validate(), ErrInvalidConfig)

	reversed := morningShift(0)
	reversed.Start, reversed.End = reversed.End, reversed.Start
	assert.ErrorIs(t, reversed.Validate(), ErrInvalidConfig)

	reversed.IsOvernight = true
	assert.NoError(t, reversed.Validate())

	outOfDay := morningShift(0)
	outOfDay.End = 25 * time.Hour
	assert.ErrorIs(t, outOfDay.Validate(), ErrInvalidConfig)
}

func TestShiftConfig_Validate_OvernightMustWrapMidnight(t *testing.T) {
	dayAsOvernight := ShiftConfig{
		Start:        8 * time.Hour,
		End:          17 * time.Hour,
		IsOvernight:  true,
		OtMultiplier: decimal.NewFromFloat(1.5),
	}
	assert.ErrorIs(t, dayAsOvernight.Validate(), ErrInvalidConfig)

	fullDay := dayAsOvernight
	fullDay.End = fullDay.Start
	require.NoError(t, fullDay.Validate())
	assert.Equal(t, 24*60, fullDay.Minutes())
}

func TestParseTimeOfDay(t *testing.T) {
	d, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour+30*time.Minute, d)

	d, err = ParseTimeOfDay("22:00:15")
	require.NoError(t, err)
	assert.Equal(t, 22*time.Hour+15*time.Second, d)

	_, err = ParseTimeOfDay("8am")
	assert.Error(t, err)

	assert.Equal(t, "08:30", FormatTimeOfDay(8*time.Hour+30*time.Minute))
}
