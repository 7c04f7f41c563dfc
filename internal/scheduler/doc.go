// Package scheduler runs the timing loop that fires alarms.
//
// The Scheduler keeps one timer armed for the earliest eligible alarm (or the
// next local midnight, whichever comes first) and triggers playback for each
// alarm due at the pending instant. Alarms and settings are re-read on every
// wake. Recompute updates the pending event synchronously for callers that
// just mutated the stores and wakes the loop to re-arm its timer.
package scheduler
