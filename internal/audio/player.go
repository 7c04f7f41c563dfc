package audio

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// oto allows a single context per process, so the device is opened once with
// the format of the first sound opened or played.
var device struct {
	once sync.Once
	ctx  *oto.Context
	err  error
}

// openDevice initializes the process-wide audio context.
func openDevice(format Format) (*oto.Context, error) {
	device.once.Do(func() {
		otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			device.err = fmt.Errorf("failed to open audio device: %w", err)
			return
		}

		// Wait for the hardware audio devices to be ready.
		<-ready

		device.ctx = otoCtx
	})

	return device.ctx, device.err
}

// Player loops a Sound on the audio device until stopped.
type Player struct {
	sound *Sound

	mu      sync.Mutex
	current *oto.Player
}

// NewPlayer creates a player for the given sound.
func NewPlayer(sound *Sound) *Player {
	return &Player{sound: sound}
}

// Open initializes the audio device for the sound's format. It waits for the
// hardware to become ready, so call it before the first Play.
func (p *Player) Open(ctx context.Context) error {
	if _, err := openDevice(p.sound.Format); err != nil {
		return err
	}

	logger.DebugKV(ctx, "Audio device ready",
		"sample_rate", p.sound.Format.SampleRate,
		"channels", p.sound.Format.Channels)

	return nil
}

// Play starts looping the sound. Calling it while playing does nothing.
func (p *Player) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		return nil
	}

	otoCtx, err := openDevice(p.sound.Format)
	if err != nil {
		return err
	}

	p.current = otoCtx.NewPlayer(newLoopReader(p.sound.PCM))
	p.current.Play()

	logger.DebugKV(ctx, "Audio playback started",
		"sample_rate", p.sound.Format.SampleRate,
		"channels", p.sound.Format.Channels,
		"clip", p.sound.Duration().String())

	return nil
}

// Stop halts playback and releases the device player.
func (p *Player) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil
	}

	p.current.Pause()

	err := p.current.Close()
	p.current = nil

	if err != nil {
		return fmt.Errorf("failed to close audio player: %w", err)
	}

	logger.Debug(ctx, "Audio playback stopped")

	return nil
}

// Silent stands in for the device when sound is disabled; it only logs.
type Silent struct{}

// Play logs the start.
func (Silent) Play(ctx context.Context) error {
	logger.Info(ctx, "Alarm sound started (sound output disabled)")
	return nil
}

// Stop logs the stop.
func (Silent) Stop(ctx context.Context) error {
	logger.Info(ctx, "Alarm sound stopped (sound output disabled)")
	return nil
}

// loopReader repeats its data forever.
type loopReader struct {
	data   []byte
	offset int
}

func newLoopReader(data []byte) *loopReader {
	return &loopReader{data: data}
}

// Read fills b from the current position, wrapping at the end of the clip.
func (r *loopReader) Read(b []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}

	var n int

	for n < len(b) {
		copied := copy(b[n:], r.data[r.offset:])
		n += copied
		r.offset = (r.offset + copied) % len(r.data)
	}

	return n, nil
}
