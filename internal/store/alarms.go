package store

import (
	"slices"
	"sync"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// AlarmStore is the ordered in-memory collection of alarm definitions.
type AlarmStore struct {
	// alarms keeps insertion order.
	alarms []domain.Alarm
	// mu protects alarms.
	mu sync.RWMutex
}

// NewAlarmStore creates a store seeded with the given alarms.
func NewAlarmStore(alarms []domain.Alarm) *AlarmStore {
	s := new(AlarmStore)
	s.Replace(alarms)

	return s
}

// GetAll returns copies of every alarm in insertion order.
func (s *AlarmStore) GetAll() []domain.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.alarms)
}

// Get returns a copy of the alarm with the given id.
func (s *AlarmStore) Get(id string) (domain.Alarm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.alarms[i].Clone(), true
	}

	return domain.Alarm{}, false
}

// Upsert replaces the alarm with the same id in place or appends a new one.
// Invalid alarms are rejected without touching the store.
func (s *AlarmStore) Upsert(alarm domain.Alarm) error {
	if err := alarm.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	alarm = alarm.Clone()

	if i := s.indexOf(alarm.ID); i >= 0 {
		s.alarms[i] = alarm
	} else {
		s.alarms = append(s.alarms, alarm)
	}

	return nil
}

// Remove deletes every alarm whose id is listed and returns the ids that were
// absent, without repeats and in request order.
func (s *AlarmStore) Remove(ids []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		notFound []string
		seen     = make(map[string]struct{}, len(ids))
	)

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		i := s.indexOf(id)
		if i < 0 {
			notFound = append(notFound, id)
			continue
		}

		s.alarms = slices.Delete(s.alarms, i, i+1)
	}

	return notFound
}

// Replace swaps the whole collection, used for the initial load and rollbacks.
func (s *AlarmStore) Replace(alarms []domain.Alarm) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alarms = cloneAll(alarms)
}

// Len returns the number of stored alarms.
func (s *AlarmStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.alarms)
}

func (s *AlarmStore) indexOf(id string) int {
	return slices.IndexFunc(s.alarms, func(a domain.Alarm) bool {
		return a.ID == id
	})
}

func cloneAll(alarms []domain.Alarm) []domain.Alarm {
	cloned := make([]domain.Alarm, 0, len(alarms))
	for i := range alarms {
		cloned = append(cloned, alarms[i].Clone())
	}

	return cloned
}
