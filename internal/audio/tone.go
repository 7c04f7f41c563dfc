package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// Default beep parameters.
const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 880.0
	beepAmplitude     = 0.6 * math.MaxInt16
	beepLength        = 200 * time.Millisecond
	beepGap           = 100 * time.Millisecond
	beepsPerCycle     = 4
	cyclePause        = 600 * time.Millisecond
)

// Beep generates one cycle of the classic alarm clock pattern: four short
// beeps followed by a pause. Looping it gives the familiar sound.
func Beep(sampleRate int, frequency float64) *Sound {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	if frequency <= 0 {
		frequency = DefaultFrequency
	}

	var pcm []byte

	for range beepsPerCycle {
		pcm = appendTone(pcm, sampleRate, frequency, beepLength)
		pcm = appendSilence(pcm, sampleRate, beepGap)
	}

	pcm = appendSilence(pcm, sampleRate, cyclePause)

	return &Sound{
		Format: Format{SampleRate: sampleRate, Channels: 1, BitDepth: 16},
		PCM:    pcm,
	}
}

// samples converts a duration to a sample count.
func samples(sampleRate int, d time.Duration) int {
	return int(int64(sampleRate) * int64(d) / int64(time.Second))
}

// appendTone appends a sine wave with short linear fades to avoid clicks.
func appendTone(pcm []byte, sampleRate int, frequency float64, d time.Duration) []byte {
	n := samples(sampleRate, d)
	fade := n / 20

	for i := range n {
		gain := 1.0
		if fade > 0 {
			switch {
			case i < fade:
				gain = float64(i) / float64(fade)
			case i >= n-fade:
				gain = float64(n-1-i) / float64(fade)
			}
		}

		v := beepAmplitude * gain * math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate))
		pcm = binary.LittleEndian.AppendUint16(pcm, uint16(int16(v)))
	}

	return pcm
}

// appendSilence appends zero samples.
func appendSilence(pcm []byte, sampleRate int, d time.Duration) []byte {
	return append(pcm, make([]byte, 2*samples(sampleRate, d))...)
}
