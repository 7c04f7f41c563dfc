// Package alarm contains core domain types for the alarm clock.
//
// It defines Alarm (a recurring time of day on a set of weekdays), Settings
// (the global schedule selector and kill switch), FireEvent (the next
// computed firing) and the next-fire computation shared by the scheduler.
package alarm
