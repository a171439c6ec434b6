package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-synth/synth/ui"
)

// DefaultHoldThreshold is how long the encoder button must be held to
// enter controller selection.
const DefaultHoldThreshold = 1000 * time.Millisecond

// MainOption mutates MainController construction parameters.
type MainOption func(*mainConfig) error

type mainConfig struct {
	holdThreshold time.Duration
	logger        *slog.Logger
	initial       int
}

// WithHoldThreshold sets the hold time that enters selection mode.
func WithHoldThreshold(d time.Duration) MainOption {
	return func(cfg *mainConfig) error {
		if d <= 0 {
			return fmt.Errorf("controller: hold threshold must be > 0: %v", d)
		}

		cfg.holdThreshold = d

		return nil
	}
}

// WithLogger sets the logger for controller changes.
func WithLogger(logger *slog.Logger) MainOption {
	return func(cfg *mainConfig) error {
		if logger == nil {
			return errors.New("controller: logger is nil")
		}

		cfg.logger = logger

		return nil
	}
}

// WithInitialController selects the controller active after construction.
func WithInitialController(i int) MainOption {
	return func(cfg *mainConfig) error {
		if i < 0 {
			return fmt.Errorf("controller: initial controller must be >= 0: %d", i)
		}

		cfg.initial = i

		return nil
	}
}

// MainController owns the selection state machine over a fixed controller
// list. In normal mode UI ticks go to the active controller. Holding the
// encoder button enters selection mode, where turns cycle through the list
// and a press returns to normal mode.
type MainController struct {
	hw          Hardware
	controllers []Controller

	active     atomic.Int32
	selectMode bool

	holdThreshold time.Duration
	logger        *slog.Logger
	sampleRate    float64
}

// NewMainController creates a MainController over controllers. The slice is
// not copied and must not change afterwards.
func NewMainController(hw Hardware, controllers []Controller, opts ...MainOption) (*MainController, error) {
	if err := hw.validate(); err != nil {
		return nil, err
	}

	if len(controllers) == 0 {
		return nil, errors.New("controller: controller list is empty")
	}

	for i, c := range controllers {
		if c == nil {
			return nil, fmt.Errorf("controller: controller %d is nil", i)
		}
	}

	cfg := mainConfig{
		holdThreshold: DefaultHoldThreshold,
		logger:        slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.initial >= len(controllers) {
		return nil, fmt.Errorf("controller: initial controller out of range: %d >= %d",
			cfg.initial, len(controllers))
	}

	m := &MainController{
		hw:            hw,
		controllers:   controllers,
		holdThreshold: cfg.holdThreshold,
		logger:        cfg.logger,
	}
	m.active.Store(int32(cfg.initial))

	return m, nil
}

// Init initializes every controller and shows the active page.
func (m *MainController) Init(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	for _, c := range m.controllers {
		if err := c.Init(sampleRate); err != nil {
			return fmt.Errorf("controller: init %q: %w", c.Page().Title(), err)
		}
	}

	m.sampleRate = sampleRate
	m.hw.Display.SetDisplayedPage(m.activeController().Page())
	m.logger.Info("controllers initialized",
		"count", len(m.controllers),
		"sample_rate", sampleRate,
		"active", m.activeController().Page().Title())

	return nil
}

// Update runs one UI tick.
func (m *MainController) Update() {
	m.hw.Encoder.Tick()
	m.hw.Button.Update()

	dir := m.hw.Encoder.Direction()

	if !m.selectMode {
		turn := dir

		if m.hw.Button.Held() && m.hw.Button.Duration() > m.holdThreshold {
			m.selectMode = true
			m.activeController().Page().SetSelection(0)
			m.logger.Debug("controller selection started")

			turn = ui.None
		}

		m.activeController().Update(UpdateContext{CV: m.hw.CV, Turn: turn})
	} else {
		switch dir {
		case ui.Clockwise:
			m.activate((m.Active() + 1) % len(m.controllers))
		case ui.CounterClockwise:
			next := m.Active() - 1
			if next < 0 {
				next = len(m.controllers) - 1
			}

			m.activate(next)
		}

		if m.hw.Button.Pressed() {
			m.selectMode = false
			m.activeController().Page().SetSelection(ui.NoSelection)
			m.logger.Debug("controller selection finished", "active", m.activeController().Page().Title())
		}
	}

	m.hw.Display.Render()
}

// Process forwards one block to the controller active at block start.
func (m *MainController) Process(in, out [][]float64) {
	m.controllers[m.active.Load()].Process(in, out)
}

func (m *MainController) activate(i int) {
	m.active.Store(int32(i))

	page := m.activeController().Page()
	page.SetSelection(0)
	m.hw.Display.SetDisplayedPage(page)
	m.logger.Debug("controller changed", "index", i, "title", page.Title())
}

func (m *MainController) activeController() Controller {
	return m.controllers[m.active.Load()]
}

// Active returns the index of the active controller.
func (m *MainController) Active() int { return int(m.active.Load()) }

// SelectMode reports whether controller selection is in progress.
func (m *MainController) SelectMode() bool { return m.selectMode }

// Controllers returns the number of controllers.
func (m *MainController) Controllers() int { return len(m.controllers) }

// Controller returns controller i, or nil when out of range.
func (m *MainController) Controller(i int) Controller {
	if i < 0 || i >= len(m.controllers) {
		return nil
	}

	return m.controllers[i]
}

// HoldThreshold returns the hold time that enters selection mode.
func (m *MainController) HoldThreshold() time.Duration { return m.holdThreshold }

// SampleRate returns the rate passed to Init, or 0 before Init.
func (m *MainController) SampleRate() float64 { return m.sampleRate }
