package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("audio: unsupported file format")

// Load decodes the file at path into a Clip. The decoder is chosen by
// extension: .wav, .mp3 or .ogg.
func Load(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	defer f.Close()

	return Decode(f, filepath.Ext(path))
}

// Decode decodes r according to ext, with or without the leading dot.
func Decode(r io.ReadSeeker, ext string) (*Clip, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "wav", "wave":
		return decodeWAV(r)
	case "mp3":
		return decodeMP3(r)
	case "ogg", "oga":
		return decodeVorbis(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func decodeWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audio: decode wav: %w", err)
	}

	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, errors.New("audio: decode wav: missing format")
	}

	scale := fullScale(buf.SourceBitDepth)
	samples := make([]float32, len(buf.Data))

	for i, v := range buf.Data {
		samples[i] = float32(v) / scale
	}

	return NewClip(samples, buf.Format.NumChannels, buf.Format.SampleRate)
}

// fullScale returns the integer magnitude of full scale at bitDepth.
func fullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128
	case 24:
		return 8388608
	case 32:
		return 2147483648
	default:
		return 32768
	}
}

func decodeMP3(r io.Reader) (*Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("audio: decode mp3: %w", err)
	}

	// go-mp3 always yields 16-bit little-endian stereo.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("audio: decode mp3: %w", err)
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		v := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(v) / 32768
	}

	return NewClip(samples, 2, dec.SampleRate())
}

func decodeVorbis(r io.Reader) (*Clip, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("audio: decode ogg: %w", err)
	}

	return NewClip(samples, format.Channels, format.SampleRate)
}
