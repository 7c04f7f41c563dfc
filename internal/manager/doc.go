// Package manager is the facade through which every request reaches the
// alarm clock.
//
// It serializes mutations, persists them with rollback on failure and wakes
// the scheduler only after a mutation has been committed, so the timing loop
// never recomputes from a half-applied change.
package manager
