package alarm

import (
	"slices"
	"time"
)

// Settings holds the process-wide flags that decide which alarms may fire.
type Settings struct {
	// IsPrimarySchedule selects the primary (true) or the alternate (false) alarm group.
	IsPrimarySchedule bool
	// IsGlobalOn is the master switch; when false no alarm fires.
	IsGlobalOn bool
}

// DefaultSettings returns the settings used before anything was persisted.
func DefaultSettings() Settings {
	return Settings{
		IsPrimarySchedule: true,
		IsGlobalOn:        true,
	}
}

// FireEvent is the next computed firing: the instant and every alarm due at it.
type FireEvent struct {
	// At is the fire instant. The zero value means nothing is scheduled.
	At time.Time
	// AlarmIDs lists the alarms sharing that instant, in store order.
	AlarmIDs []string
}

// IsZero reports whether no alarm is scheduled.
func (e FireEvent) IsZero() bool {
	return e.At.IsZero()
}

// Eligible reports whether the alarm counts under the given settings.
func Eligible(a *Alarm, settings Settings) bool {
	return settings.IsGlobalOn && a.Active && a.IsPrimarySchedule == settings.IsPrimarySchedule
}

// NextFire returns the nearest occurrence of the alarm strictly after now,
// evaluated in now's location. The search wraps a full week so an alarm whose
// time already passed today lands on the same weekday next week.
func NextFire(a *Alarm, now time.Time) time.Time {
	year, month, day := now.Date()

	for offset := 0; offset <= daysPerWeek; offset++ {
		candidate := time.Date(year, month, day+offset, a.Hour, a.Minute, 0, 0, now.Location())
		if !a.OnDay(candidate.Weekday()) {
			continue
		}

		if candidate.After(now) {
			return candidate
		}
	}

	return time.Time{}
}

// NextEvent picks the earliest firing among eligible alarms. Alarms sharing
// the earliest instant are all reported.
func NextEvent(alarms []Alarm, settings Settings, now time.Time) FireEvent {
	var event FireEvent

	if !settings.IsGlobalOn {
		return event
	}

	for i := range alarms {
		a := &alarms[i]
		if !Eligible(a, settings) {
			continue
		}

		at := NextFire(a, now)

		switch {
		case at.IsZero():
			continue
		case event.At.IsZero() || at.Before(event.At):
			event.At = at
			event.AlarmIDs = []string{a.ID}
		case at.Equal(event.At):
			event.AlarmIDs = append(event.AlarmIDs, a.ID)
		}
	}

	return event
}

// DueAt returns the eligible alarms scheduled exactly at the given instant.
func DueAt(alarms []Alarm, settings Settings, at time.Time) []string {
	var due []string

	before := at.Add(-time.Nanosecond)

	for i := range alarms {
		a := &alarms[i]
		if !Eligible(a, settings) {
			continue
		}

		if NextFire(a, before).Equal(at) {
			due = append(due, a.ID)
		}
	}

	return due
}

// Clone returns a copy of the event that shares no memory with the original.
func (e FireEvent) Clone() FireEvent {
	return FireEvent{
		At:       e.At,
		AlarmIDs: slices.Clone(e.AlarmIDs),
	}
}
