package storage

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Repository defines persistence operations for alarms and settings.
type Repository interface {
	LoadAlarms(ctx context.Context) ([]domain.Alarm, error)
	SaveAlarms(ctx context.Context, alarms []domain.Alarm) error
	LoadSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// ErrNotFound is returned when nothing has been persisted yet.
var ErrNotFound = errors.New("nothing persisted yet")

// alarmRecord is the persisted shape of an alarm.
type alarmRecord struct {
	ID                string   `json:"id"                  yaml:"id"`
	Hour              int      `json:"hour"                yaml:"hour"`
	Minute            int      `json:"minute"              yaml:"minute"`
	Days              []string `json:"days"                yaml:"days,flow"`
	IsPrimarySchedule bool     `json:"is_primary_schedule" yaml:"is_primary_schedule"`
	Active            bool     `json:"active"              yaml:"active"`
}

// settingsRecord is the persisted shape of the global flags.
type settingsRecord struct {
	IsPrimarySchedule bool `json:"is_primary_schedule" yaml:"is_primary_schedule"`
	IsGlobalOn        bool `json:"is_global_on"        yaml:"is_global_on"`
}

// alarmsDocument is the root of the alarms file.
type alarmsDocument struct {
	Alarms []alarmRecord `yaml:"alarms"`
}

// toRecords converts domain alarms into their persisted shape.
func toRecords(alarms []domain.Alarm) []alarmRecord {
	records := make([]alarmRecord, 0, len(alarms))

	for i := range alarms {
		a := &alarms[i]
		records = append(records, alarmRecord{
			ID:                a.ID,
			Hour:              a.Hour,
			Minute:            a.Minute,
			Days:              domain.WeekdayNames(a.Days),
			IsPrimarySchedule: a.IsPrimarySchedule,
			Active:            a.Active,
		})
	}

	return records
}

// fromRecords converts persisted alarms back and validates each of them.
// Ids must be unique across the list.
func fromRecords(records []alarmRecord) ([]domain.Alarm, error) {
	alarms := make([]domain.Alarm, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		if _, ok := seen[record.ID]; ok {
			return nil, domain.InvalidField("id", "duplicate id %q", record.ID)
		}

		seen[record.ID] = struct{}{}

		days, err := domain.ParseWeekdays(record.Days)
		if err != nil {
			return nil, fmt.Errorf("alarm %q: %w", record.ID, err)
		}

		a := domain.Alarm{
			ID:                record.ID,
			Hour:              record.Hour,
			Minute:            record.Minute,
			Days:              days,
			IsPrimarySchedule: record.IsPrimarySchedule,
			Active:            record.Active,
		}

		if err = a.Validate(); err != nil {
			return nil, fmt.Errorf("alarm %q: %w", record.ID, err)
		}

		alarms = append(alarms, a)
	}

	return alarms, nil
}

func toSettingsRecord(settings domain.Settings) settingsRecord {
	return settingsRecord{
		IsPrimarySchedule: settings.IsPrimarySchedule,
		IsGlobalOn:        settings.IsGlobalOn,
	}
}

func fromSettingsRecord(record settingsRecord) domain.Settings {
	return domain.Settings{
		IsPrimarySchedule: record.IsPrimarySchedule,
		IsGlobalOn:        record.IsGlobalOn,
	}
}
