package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player streams a Renderer to the default output device.
type Player struct {
	mu sync.Mutex

	ctx        *oto.Context
	player     *oto.Player
	renderer   *Renderer
	sampleRate int
	started    bool
}

// NewPlayer opens the output device at sampleRate. bufferFrames sets the
// device buffer; 0 keeps the driver default.
func NewPlayer(sampleRate, bufferFrames int, renderer *Renderer) (*Player, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be > 0: %d", sampleRate)
	}

	if bufferFrames < 0 {
		return nil, fmt.Errorf("audio: buffer frames must be >= 0: %d", bufferFrames)
	}

	if renderer == nil {
		return nil, fmt.Errorf("audio: renderer is nil")
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   BufferDuration(bufferFrames, sampleRate),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audio: open output: %w", err)
	}
	<-ready

	return &Player{
		ctx:        ctx,
		player:     ctx.NewPlayer(renderer),
		renderer:   renderer,
		sampleRate: sampleRate,
	}, nil
}

// Start begins playback.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

// Close stops playback and releases the stream.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}

	err := p.player.Close()
	p.player = nil
	p.started = false

	return err
}

// SampleRate returns the device sample rate.
func (p *Player) SampleRate() int { return p.sampleRate }

// Renderer returns the renderer feeding the stream.
func (p *Player) Renderer() *Renderer { return p.renderer }
