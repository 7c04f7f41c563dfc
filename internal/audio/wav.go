package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrUnsupportedFormat is returned for WAV files oto cannot play as-is.
var ErrUnsupportedFormat = errors.New("unsupported wav format")

// pcmFormat is the only WAV audio format tag accepted.
const pcmFormat = 1

// Format describes interleaved PCM samples.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Sound is a decoded clip ready to hand to the device.
type Sound struct {
	Format Format
	// PCM holds signed 16-bit little-endian samples.
	PCM []byte
}

// Duration returns the clip length.
func (s *Sound) Duration() time.Duration {
	frame := s.Format.Channels * s.Format.BitDepth / 8
	if frame == 0 || s.Format.SampleRate == 0 {
		return 0
	}

	return time.Duration(len(s.PCM)/frame) * time.Second / time.Duration(s.Format.SampleRate)
}

// LoadWAV reads and decodes a WAV file.
func LoadWAV(path string) (*Sound, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound file %s: %w", path, err)
	}

	sound, err := ParseWAV(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound file %s: %w", path, err)
	}

	return sound, nil
}

// ParseWAV decodes a RIFF/WAVE container holding 16-bit PCM.
func ParseWAV(data []byte) (*Sound, error) {
	reader := bytes.NewReader(data)

	var header struct {
		RIFF [4]byte
		Size uint32
		WAVE [4]byte
	}

	if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if string(header.RIFF[:]) != "RIFF" || string(header.WAVE[:]) != "WAVE" {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE file", ErrUnsupportedFormat)
	}

	var (
		sound   Sound
		haveFmt bool
	)

	for {
		var chunk struct {
			ID   [4]byte
			Size uint32
		}

		if err := binary.Read(reader, binary.LittleEndian, &chunk); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: no data chunk", ErrUnsupportedFormat)
			}

			return nil, fmt.Errorf("read chunk header: %w", err)
		}

		switch string(chunk.ID[:]) {
		case "fmt ":
			if err := readFormat(reader, chunk.Size, &sound.Format); err != nil {
				return nil, err
			}

			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedFormat)
			}

			sound.PCM = make([]byte, chunk.Size)
			if _, err := io.ReadFull(reader, sound.PCM); err != nil {
				return nil, fmt.Errorf("read samples: %w", err)
			}

			return &sound, nil
		default:
			if _, err := reader.Seek(int64(chunk.Size)+int64(chunk.Size&1), io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("skip chunk: %w", err)
			}
		}
	}
}

// readFormat decodes a fmt chunk of the given size.
func readFormat(reader *bytes.Reader, size uint32, format *Format) error {
	var fmtChunk struct {
		AudioFormat   uint16
		Channels      uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}

	const fmtChunkSize = 16

	if size < fmtChunkSize {
		return fmt.Errorf("%w: fmt chunk too short", ErrUnsupportedFormat)
	}

	if err := binary.Read(reader, binary.LittleEndian, &fmtChunk); err != nil {
		return fmt.Errorf("read fmt chunk: %w", err)
	}

	// Extension bytes of WAVE_FORMAT_EXTENSIBLE and friends.
	if extra := int64(size-fmtChunkSize) + int64(size&1); extra > 0 {
		if _, err := reader.Seek(extra, io.SeekCurrent); err != nil {
			return fmt.Errorf("skip fmt extension: %w", err)
		}
	}

	if fmtChunk.AudioFormat != pcmFormat || fmtChunk.BitsPerSample != 16 {
		return fmt.Errorf("%w: format %d, %d bits per sample (want PCM, 16 bits)",
			ErrUnsupportedFormat, fmtChunk.AudioFormat, fmtChunk.BitsPerSample)
	}

	if fmtChunk.Channels == 0 || fmtChunk.SampleRate == 0 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedFormat, fmtChunk.Channels, fmtChunk.SampleRate)
	}

	*format = Format{
		SampleRate: int(fmtChunk.SampleRate),
		Channels:   int(fmtChunk.Channels),
		BitDepth:   int(fmtChunk.BitsPerSample),
	}

	return nil
}
