// Package playback implements the Idle/Playing state machine that governs
// the alarm sound.
//
// The Controller serializes scheduler triggers and manual play/stop requests,
// drives an external Player and optionally stops playback after a maximum
// duration.
package playback
