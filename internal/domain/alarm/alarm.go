package alarm

import (
	"slices"
	"strings"
	"time"
)

const (
	// MaxHour is the last valid hour of a day.
	MaxHour = 23
	// MaxMinute is the last valid minute of an hour.
	MaxMinute = 59

	daysPerWeek = 7
)

// Alarm is a recurring alarm definition.
type Alarm struct {
	// ID uniquely identifies the alarm.
	ID string
	// Hour is the hour of day the alarm fires at, 0-23.
	Hour int
	// Minute is the minute of the hour the alarm fires at, 0-59.
	Minute int
	// Days lists the weekdays the alarm fires on. Empty means every day.
	Days []time.Weekday
	// IsPrimarySchedule assigns the alarm to the primary or the alternate group.
	IsPrimarySchedule bool
	// Active is the per-alarm enable flag.
	Active bool
}

// Validate checks time-of-day ranges and the weekday set.
func (a *Alarm) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return MissingField("id")
	}

	if a.Hour < 0 || a.Hour > MaxHour {
		return InvalidField("hour", "must be between 0 and %d, got %d", MaxHour, a.Hour)
	}

	if a.Minute < 0 || a.Minute > MaxMinute {
		return InvalidField("minute", "must be between 0 and %d, got %d", MaxMinute, a.Minute)
	}

	var seen [daysPerWeek]bool

	for _, day := range a.Days {
		if day < time.Sunday || day > time.Saturday {
			return InvalidField("days", "unknown weekday %d", day)
		}

		if seen[day] {
			return InvalidField("days", "duplicate weekday %s", WeekdayName(day))
		}

		seen[day] = true
	}

	return nil
}

// Clone returns a copy that shares no memory with the original.
func (a *Alarm) Clone() Alarm {
	cloned := *a
	cloned.Days = slices.Clone(a.Days)

	return cloned
}

// EveryDay reports whether the alarm has no weekday restriction.
func (a *Alarm) EveryDay() bool {
	return len(a.Days) == 0
}

// OnDay reports whether the alarm may fire on the given weekday.
func (a *Alarm) OnDay(day time.Weekday) bool {
	return a.EveryDay() || slices.Contains(a.Days, day)
}

// weekdayNames maps accepted spellings to weekdays.
//
//nolint:gochecknoglobals // Lookup table.
var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday converts a short or full English weekday name, in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, InvalidField("days", "unknown weekday %q", s)
	}

	return day, nil
}

// ParseWeekdays converts a list of weekday names. An empty list yields nil.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return nil, nil
	}

	days := make([]time.Weekday, 0, len(names))

	for _, name := range names {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}

		days = append(days, day)
	}

	return days, nil
}

// WeekdayName renders a weekday as a three-letter lower-case name.
func WeekdayName(day time.Weekday) string {
	return strings.ToLower(day.String()[:3])
}

// WeekdayNames renders a list of weekdays.
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, WeekdayName(day))
	}

	return names
}
