package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TestParseClock accepts 24-hour times only.
func TestParseClock(t *testing.T) {
	t.Parallel()

	hour, minute, err := parseClock("07:05")
	require.NoError(t, err)
	require.Equal(t, 7, hour)
	require.Equal(t, 5, minute)

	hour, minute, err = parseClock("23:59")
	require.NoError(t, err)
	require.Equal(t, 23, hour)
	require.Equal(t, 59, minute)

	for _, bad := range []string{"24:00", "7:5", "07:60", "noon", ""} {
		_, _, err := parseClock(bad)
		require.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

// TestBuildAlarm validates days and flags.
func TestBuildAlarm(t *testing.T) {
	t.Parallel()

	alarm, err := buildAlarm("work", "06:30", []string{"mon", "Tuesday"}, true, true)
	require.NoError(t, err)
	require.Equal(t, domain.Alarm{
		ID:                "work",
		Hour:              6,
		Minute:            30,
		Days:              []time.Weekday{time.Monday, time.Tuesday},
		IsPrimarySchedule: true,
		Active:            true,
	}, alarm)

	_, err = buildAlarm("work", "06:30", []string{"mon", "mon"}, true, true)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = buildAlarm("work", "06:30", []string{"funday"}, true, true)
	require.ErrorIs(t, err, domain.ErrValidation)
}

// TestOptionalChoice maps arguments to flags.
func TestOptionalChoice(t *testing.T) {
	t.Parallel()

	value, err := optionalChoice(nil, switchOn, switchOff)
	require.NoError(t, err)
	require.Nil(t, value)

	value, err = optionalChoice([]string{switchOff}, switchOn, switchOff)
	require.NoError(t, err)
	require.False(t, *value)

	value, err = optionalChoice([]string{schedulePrimary}, schedulePrimary, scheduleAlternate)
	require.NoError(t, err)
	require.True(t, *value)

	_, err = optionalChoice([]string{"maybe"}, switchOn, switchOff)
	require.Error(t, err)
}
