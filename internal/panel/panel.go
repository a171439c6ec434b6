package panel

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

const (
	// DefaultMinVoltage is the lower end of every emulated CV knob.
	DefaultMinVoltage = -5.0
	// DefaultMaxVoltage is the upper end of every emulated CV knob.
	DefaultMaxVoltage = 5.0
	// DefaultFineStep is the knob change of one up or down key.
	DefaultFineStep = 0.1
	// DefaultCoarseStep is the knob change of one coarse key.
	DefaultCoarseStep = 1.0
)

// Option mutates panel construction.
type Option func(*config) error

type config struct {
	minVolts   float64
	maxVolts   float64
	fineStep   float64
	coarseStep float64
	now        func() time.Time
}

func defaultConfig() config {
	return config{
		minVolts:   DefaultMinVoltage,
		maxVolts:   DefaultMaxVoltage,
		fineStep:   DefaultFineStep,
		coarseStep: DefaultCoarseStep,
		now:        time.Now,
	}
}

// WithVoltageRange sets the knob range.
func WithVoltageRange(lo, hi float64) Option {
	return func(cfg *config) error {
		if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return fmt.Errorf("panel: voltage range must satisfy min < max: [%f, %f]", lo, hi)
		}

		cfg.minVolts = lo
		cfg.maxVolts = hi

		return nil
	}
}

// WithSteps sets the fine and coarse knob increments.
func WithSteps(fine, coarse float64) Option {
	return func(cfg *config) error {
		if !(fine > 0) || !(coarse > 0) {
			return fmt.Errorf("panel: knob steps must be > 0: %f, %f", fine, coarse)
		}

		cfg.fineStep = fine
		cfg.coarseStep = coarse

		return nil
	}
}

// WithClock replaces time.Now for the button hold timer.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) error {
		if now == nil {
			return fmt.Errorf("panel: clock is nil")
		}

		cfg.now = now

		return nil
	}
}

// Panel turns key presses into encoder, button and CV state. Keys arrive
// on the terminal goroutine; the UI goroutine polls the ui.Encoder,
// ui.Button and input.Reader methods.
type Panel struct {
	mu sync.Mutex

	cfg config

	// Pending input collected since the last poll.
	steps   int
	press   bool
	quit    bool
	holding bool
	since   time.Time

	// Poll results.
	dir     ui.Direction
	pressed bool

	cv       [input.ChannelCount]float64
	selected input.Channel
}

// New creates a panel with every knob centred.
func New(opts ...Option) (*Panel, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	p := &Panel{cfg: cfg}
	for ch := range p.cv {
		p.cv[ch] = p.centre()
	}

	return p, nil
}

// HandleKey applies one key. It returns false once KeyQuit was seen.
func (p *Panel) HandleKey(k Key) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if k >= KeyChannel0 && k < KeyChannel0+input.ChannelCount {
		p.selected = input.Channel(k - KeyChannel0)
		return !p.quit
	}

	switch k {
	case KeyClockwise:
		p.steps++
	case KeyCounterClockwise:
		p.steps--
	case KeyPress:
		p.press = true
		p.holding = false
	case KeyHold:
		p.holding = !p.holding
		if p.holding {
			p.since = p.cfg.now()
		}
	case KeyUp:
		p.nudge(p.cfg.fineStep)
	case KeyDown:
		p.nudge(-p.cfg.fineStep)
	case KeyCoarseUp:
		p.nudge(p.cfg.coarseStep)
	case KeyCoarseDown:
		p.nudge(-p.cfg.coarseStep)
	case KeyCentre:
		p.cv[p.selected] = p.centre()
	case KeyQuit:
		p.quit = true
	}

	return !p.quit
}

func (p *Panel) nudge(delta float64) {
	v := p.cv[p.selected] + delta
	p.cv[p.selected] = math.Max(p.cfg.minVolts, math.Min(p.cfg.maxVolts, v))
}

func (p *Panel) centre() float64 {
	return 0.5 * (p.cfg.minVolts + p.cfg.maxVolts)
}

// Tick consumes one detent of pending rotation.
func (p *Panel) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.steps > 0:
		p.dir = ui.Clockwise
		p.steps--
	case p.steps < 0:
		p.dir = ui.CounterClockwise
		p.steps++
	default:
		p.dir = ui.None
	}
}

// Direction returns the rotation consumed by the last Tick.
func (p *Panel) Direction() ui.Direction {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dir
}

// Update latches a pending press.
func (p *Panel) Update() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pressed = p.press
	p.press = false
}

// Held reports whether the hold key latched the button down.
func (p *Panel) Held() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.holding
}

// Duration returns how long the button has been held.
func (p *Panel) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.holding {
		return 0
	}

	return p.cfg.now().Sub(p.since)
}

// Pressed reports the press latched by the last Update.
func (p *Panel) Pressed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pressed
}

// Read returns the knob voltage of ch.
func (p *Panel) Read(ch input.Channel) float64 {
	if !ch.Valid() {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.cv[ch]
}

// Set moves the knob of ch to volts, clamped to the panel range.
func (p *Panel) Set(ch input.Channel, volts float64) {
	if !ch.Valid() || math.IsNaN(volts) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.cv[ch] = math.Max(p.cfg.minVolts, math.Min(p.cfg.maxVolts, volts))
}

// Selected returns the knob adjusted by the up and down keys.
func (p *Panel) Selected() input.Channel {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.selected
}

// Quit reports whether KeyQuit was seen.
func (p *Panel) Quit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.quit
}

// Status formats every knob on one line, marking the selected one.
func (p *Panel) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder

	for ch, v := range p.cv {
		if ch > 0 {
			sb.WriteByte(' ')
		}

		mark := ' '
		if input.Channel(ch) == p.selected {
			mark = '*'
		}

		fmt.Fprintf(&sb, "%c%s%+.1f", mark, input.Channel(ch), v)
	}

	return sb.String()
}
