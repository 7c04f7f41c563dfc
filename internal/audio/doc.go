// Package audio plays the alarm sound on the local audio device through oto.
//
// A Sound is raw 16-bit little-endian PCM, either decoded from a WAV file or
// generated as a beep pattern. A Player loops one Sound until stopped.
package audio
