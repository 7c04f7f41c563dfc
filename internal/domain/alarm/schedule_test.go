package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// monday0700 is Monday, 1 January 2024, 07:00 UTC.
//
//nolint:gochecknoglobals // Shared test fixture.
var monday0700 = time.Date(2024, time.January, 1, 7, 0, 0, 0, time.UTC)

// TestNextFire checks the strictly-after rule, weekday wrapping and every-day alarms.
func TestNextFire(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		alarm Alarm
		want  time.Time
	}{
		"equal to now rolls a week": {
			alarm: Alarm{Hour: 7, Minute: 0, Days: []time.Weekday{time.Monday}},
			want:  time.Date(2024, time.January, 8, 7, 0, 0, 0, time.UTC),
		},
		"one minute later fires today": {
			alarm: Alarm{Hour: 7, Minute: 1, Days: []time.Weekday{time.Monday}},
			want:  time.Date(2024, time.January, 1, 7, 1, 0, 0, time.UTC),
		},
		"every day passed today fires tomorrow": {
			alarm: Alarm{Hour: 6, Minute: 30},
			want:  time.Date(2024, time.January, 2, 6, 30, 0, 0, time.UTC),
		},
		"next matching weekday": {
			alarm: Alarm{Hour: 9, Minute: 15, Days: []time.Weekday{time.Wednesday, time.Sunday}},
			want:  time.Date(2024, time.January, 3, 9, 15, 0, 0, time.UTC),
		},
		"weekend only": {
			alarm: Alarm{Hour: 0, Minute: 0, Days: []time.Weekday{time.Saturday}},
			want:  time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, NextFire(&tc.alarm, monday0700))
		})
	}
}

// TestNextFire_Location keeps the computation on the configured wall clock.
func TestNextFire_Location(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2024, time.January, 1, 23, 30, 0, 0, loc)
	a := Alarm{Hour: 6, Minute: 0}

	got := NextFire(&a, now)
	require.Equal(t, time.Date(2024, time.January, 2, 6, 0, 0, 0, loc), got)
	require.Equal(t, loc, got.Location())
}

// TestNextEvent covers eligibility, the global switch and ties.
func TestNextEvent(t *testing.T) {
	t.Parallel()

	alarms := []Alarm{
		{ID: "inactive", Hour: 7, Minute: 5, Active: false, IsPrimarySchedule: true},
		{ID: "alternate", Hour: 7, Minute: 5, Active: true, IsPrimarySchedule: false},
		{ID: "first", Hour: 7, Minute: 10, Active: true, IsPrimarySchedule: true},
		{ID: "second", Hour: 7, Minute: 10, Active: true, IsPrimarySchedule: true},
		{ID: "later", Hour: 8, Minute: 0, Active: true, IsPrimarySchedule: true},
	}

	settings := DefaultSettings()

	event := NextEvent(alarms, settings, monday0700)
	require.Equal(t, time.Date(2024, time.January, 1, 7, 10, 0, 0, time.UTC), event.At)
	require.Equal(t, []string{"first", "second"}, event.AlarmIDs)

	// Alternate group only.
	settings.IsPrimarySchedule = false
	event = NextEvent(alarms, settings, monday0700)
	require.Equal(t, []string{"alternate"}, event.AlarmIDs)

	// Global switch off suppresses everything.
	settings.IsGlobalOn = false
	event = NextEvent(alarms, settings, monday0700)
	require.True(t, event.IsZero())
	require.Empty(t, event.AlarmIDs)

	// Nothing eligible.
	require.True(t, NextEvent(nil, DefaultSettings(), monday0700).IsZero())
}

// TestDueAt re-validates which alarms belong to a fire instant.
func TestDueAt(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.January, 1, 7, 10, 0, 0, time.UTC)
	alarms := []Alarm{
		{ID: "due", Hour: 7, Minute: 10, Active: true, IsPrimarySchedule: true},
		{ID: "other-day", Hour: 7, Minute: 10, Days: []time.Weekday{time.Tuesday}, Active: true, IsPrimarySchedule: true},
		{ID: "disabled", Hour: 7, Minute: 10, Active: false, IsPrimarySchedule: true},
		{ID: "other-time", Hour: 7, Minute: 11, Active: true, IsPrimarySchedule: true},
	}

	require.Equal(t, []string{"due"}, DueAt(alarms, DefaultSettings(), at))
	require.Empty(t, DueAt(alarms, Settings{IsPrimarySchedule: true}, at))
}

// TestFireEventClone ensures ids are copied.
func TestFireEventClone(t *testing.T) {
	t.Parallel()

	e := FireEvent{At: monday0700, AlarmIDs: []string{"a"}}
	c := e.Clone()
	c.AlarmIDs[0] = "b"

	require.Equal(t, "a", e.AlarmIDs[0])
}
