package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// DefaultQueueDepth is the number of blocks a Recorder buffers.
	DefaultQueueDepth = 64
	// wavFormatPCM is the WAVE format tag for integer PCM.
	wavFormatPCM = 1
)

// RecorderOption mutates recorder construction.
type RecorderOption func(*recorderConfig) error

type recorderConfig struct {
	queueDepth int
	bitDepth   int
}

func defaultRecorderConfig() recorderConfig {
	return recorderConfig{queueDepth: DefaultQueueDepth, bitDepth: 16}
}

// WithQueueDepth sets the number of blocks buffered between the audio
// goroutine and the file writer.
func WithQueueDepth(n int) RecorderOption {
	return func(cfg *recorderConfig) error {
		if n <= 0 {
			return fmt.Errorf("audio: queue depth must be > 0: %d", n)
		}

		cfg.queueDepth = n

		return nil
	}
}

// WithBitDepth selects 16 or 24 bit PCM output.
func WithBitDepth(bits int) RecorderOption {
	return func(cfg *recorderConfig) error {
		if bits != 16 && bits != 24 {
			return fmt.Errorf("audio: bit depth must be 16 or 24: %d", bits)
		}

		cfg.bitDepth = bits

		return nil
	}
}

// Recorder captures interleaved stereo blocks into a WAV stream. Write is
// safe on the audio goroutine: it never blocks and drops a block when the
// writer falls behind.
type Recorder struct {
	mu     sync.Mutex
	closed bool

	enc    *wav.Encoder
	file   io.Closer
	free   chan []float32
	full   chan []float32
	done   chan struct{}
	intBuf *goaudio.IntBuffer
	scale  float64
	err    error

	written atomic.Uint64
	dropped atomic.Uint64
}

// CreateRecorder creates path and records into it. Close closes the file.
func CreateRecorder(path string, sampleRate int, opts ...RecorderOption) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}

	rec, err := NewRecorder(f, sampleRate, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}

	rec.file = f

	return rec, nil
}

// NewRecorder records into w. The header is finalised by Close.
func NewRecorder(w io.WriteSeeker, sampleRate int, opts ...RecorderOption) (*Recorder, error) {
	if w == nil {
		return nil, errors.New("audio: recorder writer is nil")
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be > 0: %d", sampleRate)
	}

	cfg := defaultRecorderConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &Recorder{
		enc:  wav.NewEncoder(w, sampleRate, cfg.bitDepth, Channels, wavFormatPCM),
		free: make(chan []float32, cfg.queueDepth),
		full: make(chan []float32, cfg.queueDepth),
		done: make(chan struct{}),
		intBuf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: Channels, SampleRate: sampleRate},
			SourceBitDepth: cfg.bitDepth,
		},
		scale: float64(fullScale(cfg.bitDepth)) - 1,
	}

	for range cfg.queueDepth {
		r.free <- make([]float32, 0, DefaultBlockSize*Channels)
	}

	go r.run()

	return r, nil
}

// Write queues a copy of frames. It drops the block when no buffer is free
// or the recorder is closed.
func (r *Recorder) Write(frames []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	select {
	case buf := <-r.free:
		r.full <- append(buf[:0], frames...)
	default:
		r.dropped.Add(uint64(len(frames) / Channels))
	}
}

func (r *Recorder) run() {
	defer close(r.done)

	for buf := range r.full {
		if r.err == nil {
			r.err = r.encode(buf)
		}

		r.free <- buf
	}
}

func (r *Recorder) encode(buf []float32) error {
	data := r.intBuf.Data[:0]
	for _, v := range buf {
		x := float64(v)
		if x > 1 {
			x = 1
		} else if x < -1 {
			x = -1
		}

		data = append(data, int(x*r.scale))
	}

	r.intBuf.Data = data
	if err := r.enc.Write(r.intBuf); err != nil {
		return fmt.Errorf("audio: write wav: %w", err)
	}

	r.written.Add(uint64(len(buf) / Channels))

	return nil
}

// Close drains the queue, finalises the WAV header and closes the file
// when the recorder created it.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}

	r.closed = true
	close(r.full)
	r.mu.Unlock()

	<-r.done

	err := r.err
	if cerr := r.enc.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("audio: finalise wav: %w", cerr)
	}

	if r.file != nil {
		if cerr := r.file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("audio: %w", cerr)
		}
	}

	return err
}

// Getters.

// Frames returns the number of frames written to the stream.
func (r *Recorder) Frames() uint64 { return r.written.Load() }

// Dropped returns the number of frames discarded because the writer fell
// behind.
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }
