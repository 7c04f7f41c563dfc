package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestActorClone verifies that Clone returns a deep copy and handles nil safely.
func TestActorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Actor)(nil).Clone())

	a := &Actor{
		Hostname: "bedroom-pi",
		Username: "o.shokin",
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
	require.Equal(t, "o.shokin@bedroom-pi", a.String())
}

// TestAlarmValidate covers the field ranges and the weekday set rules.
func TestAlarmValidate(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		alarm Alarm
		field string
	}{
		"empty id":       {Alarm{ID: " ", Hour: 7}, "id"},
		"negative hour":  {Alarm{ID: "a", Hour: -1}, "hour"},
		"hour too big":   {Alarm{ID: "a", Hour: 24}, "hour"},
		"minute too big": {Alarm{ID: "a", Minute: 60}, "minute"},
		"bad weekday":    {Alarm{ID: "a", Days: []time.Weekday{7}}, "days"},
		"duplicate day":  {Alarm{ID: "a", Days: []time.Weekday{time.Monday, time.Monday}}, "days"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.alarm.Validate()
			require.ErrorIs(t, err, ErrValidation)

			var validationErr *ValidationError

			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
		})
	}

	valid := Alarm{
		ID:     "wake-up",
		Hour:   23,
		Minute: 59,
		Days:   []time.Weekday{time.Sunday, time.Saturday},
	}
	require.NoError(t, valid.Validate())
}

// TestAlarmClone ensures the weekday slice is not shared.
func TestAlarmClone(t *testing.T) {
	t.Parallel()

	a := Alarm{ID: "a", Days: []time.Weekday{time.Monday}}
	c := a.Clone()
	c.Days[0] = time.Friday

	require.Equal(t, time.Monday, a.Days[0])
}

// TestParseWeekday checks accepted spellings and the rendered form.
func TestParseWeekday(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"mon", "Monday", " MON "} {
		day, err := ParseWeekday(s)
		require.NoError(t, err)
		require.Equal(t, time.Monday, day)
	}

	_, err := ParseWeekday("funday")
	require.ErrorIs(t, err, ErrValidation)

	days, err := ParseWeekdays([]string{"sat", "sunday"})
	require.NoError(t, err)
	require.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, days)
	require.Equal(t, []string{"sat", "sun"}, WeekdayNames(days))
}
