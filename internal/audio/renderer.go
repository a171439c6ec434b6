package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-synth/dsp/core"
)

const (
	// Channels is the channel count of every rendered block.
	Channels = 2
	// DefaultBlockSize is the block size used when none is configured.
	DefaultBlockSize = 128
	// bytesPerSample is the size of one FormatFloat32LE sample.
	bytesPerSample = 4
)

// Processor renders one deinterleaved stereo block.
type Processor interface {
	Process(in, out [][]float64)
}

// Source supplies interleaved input samples. Read always fills dst.
type Source interface {
	Channels() int
	Read(dst []float32)
}

// Sink receives every rendered block as interleaved stereo samples.
// Write must not block and must not retain frames.
type Sink interface {
	Write(frames []float32)
}

// RendererOption mutates renderer construction.
type RendererOption func(*rendererConfig) error

type rendererConfig struct {
	blockSize int
	gain      float64
	source    Source
	sink      Sink
}

func defaultRendererConfig() rendererConfig {
	return rendererConfig{blockSize: DefaultBlockSize, gain: 1}
}

// WithBlockSize sets the number of frames rendered per Process call.
func WithBlockSize(n int) RendererOption {
	return func(cfg *rendererConfig) error {
		if n <= 0 {
			return fmt.Errorf("audio: block size must be > 0: %d", n)
		}

		cfg.blockSize = n

		return nil
	}
}

// WithOutputGain scales every rendered block by gain.
func WithOutputGain(gain float64) RendererOption {
	return func(cfg *rendererConfig) error {
		if gain < 0 || !core.IsFinite(gain) {
			return fmt.Errorf("audio: output gain must be finite and >= 0: %f", gain)
		}

		cfg.gain = gain

		return nil
	}
}

// WithSource feeds src into the input block. Without a source the input
// is silent.
func WithSource(src Source) RendererOption {
	return func(cfg *rendererConfig) error {
		if src == nil {
			return fmt.Errorf("audio: source is nil")
		}

		if src.Channels() <= 0 {
			return fmt.Errorf("audio: source channels must be > 0: %d", src.Channels())
		}

		cfg.source = src

		return nil
	}
}

// WithSink tees every rendered block into s.
func WithSink(s Sink) RendererOption {
	return func(cfg *rendererConfig) error {
		if s == nil {
			return fmt.Errorf("audio: sink is nil")
		}

		cfg.sink = s

		return nil
	}
}

// Renderer pulls stereo blocks from a Processor and serves them as
// FormatFloat32LE bytes. It implements io.Reader so that an oto player can
// drain it directly.
type Renderer struct {
	mu sync.Mutex

	proc      Processor
	source    Source
	sink      Sink
	blockSize int
	gain      float64

	in      [][]float64
	out     [][]float64
	srcBuf  []float32
	frames  []float32
	pending []byte
	pos     int
	blocks  uint64
}

// NewRenderer creates a renderer around proc.
func NewRenderer(proc Processor, opts ...RendererOption) (*Renderer, error) {
	if proc == nil {
		return nil, fmt.Errorf("audio: processor is nil")
	}

	cfg := defaultRendererConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &Renderer{
		proc:      proc,
		source:    cfg.source,
		sink:      cfg.sink,
		blockSize: cfg.blockSize,
		gain:      cfg.gain,
		in:        make([][]float64, Channels),
		out:       make([][]float64, Channels),
		frames:    make([]float32, cfg.blockSize*Channels),
		pending:   make([]byte, cfg.blockSize*Channels*bytesPerSample),
	}

	for c := range Channels {
		r.in[c] = make([]float64, cfg.blockSize)
		r.out[c] = make([]float64, cfg.blockSize)
	}

	if cfg.source != nil {
		r.srcBuf = make([]float32, cfg.blockSize*cfg.source.Channels())
	}

	// Force a render on the first Read.
	r.pos = len(r.pending)

	return r, nil
}

// Read fills p with rendered FormatFloat32LE bytes. It never fails and
// always fills p completely.
func (r *Renderer) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for n < len(p) {
		if r.pos >= len(r.pending) {
			r.render()
		}

		c := copy(p[n:], r.pending[r.pos:])
		r.pos += c
		n += c
	}

	return n, nil
}

// RenderBlock renders one block and returns it as interleaved stereo
// samples. The returned slice is reused by the next call.
func (r *Renderer) RenderBlock() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.render()
	r.pos = len(r.pending)

	return r.frames
}

func (r *Renderer) render() {
	if r.source != nil {
		r.source.Read(r.srcBuf)
		core.Deinterleave(r.in, r.srcBuf, r.source.Channels())
	} else {
		core.ZeroBlock(r.in)
	}

	r.proc.Process(r.in, r.out)
	core.GainBlock(r.out, r.gain)
	core.Interleave(r.frames, r.out)

	for i, v := range r.frames {
		binary.LittleEndian.PutUint32(r.pending[i*bytesPerSample:], math.Float32bits(v))
	}

	if r.sink != nil {
		r.sink.Write(r.frames)
	}

	r.pos = 0
	r.blocks++
}

// Getters.

// OutputGain returns the gain applied to every block.
func (r *Renderer) OutputGain() float64 { return r.gain }

// BlockSize returns the frames rendered per block.
func (r *Renderer) BlockSize() int { return r.blockSize }

// Blocks returns the number of blocks rendered so far.
func (r *Renderer) Blocks() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.blocks
}
