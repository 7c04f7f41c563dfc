// Package store holds the in-memory alarm collection and the global settings.
//
// Both stores follow a single-writer, multi-reader discipline through
// sync.RWMutex so the scheduler can read them while requests mutate them.
package store
