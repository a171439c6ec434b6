package panel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Terminal feeds raw stdin key presses into a Panel.
type Terminal struct {
	panel *Panel
	in    io.Reader
	fd    int
	state *term.State
	done  chan struct{}
	once  sync.Once
}

// NewTerminal creates a terminal host for p reading from stdin.
func NewTerminal(p *Panel) (*Terminal, error) {
	if p == nil {
		return nil, errors.New("panel: panel is nil")
	}

	return &Terminal{panel: p, in: os.Stdin, fd: int(os.Stdin.Fd()), done: make(chan struct{})}, nil
}

// Start switches stdin to raw mode and reads keys until KeyQuit or EOF.
// Done is closed when reading stops.
func (t *Terminal) Start() error {
	if !term.IsTerminal(t.fd) {
		return fmt.Errorf("panel: stdin is not a terminal")
	}

	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("panel: raw mode: %w", err)
	}

	t.state = state

	go t.run()

	return nil
}

func (t *Terminal) run() {
	defer close(t.done)

	_ = Feed(t.panel, t.in)
}

// Feed applies every key read from r to p until KeyQuit or a read error.
func Feed(p *Panel, r io.Reader) error {
	buf := make([]byte, 16)

	for {
		n, err := r.Read(buf)
		for _, k := range ParseKeys(buf[:n]) {
			if !p.HandleKey(k) {
				return nil
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("panel: read keys: %w", err)
		}
	}
}

// Done is closed once the key reader has stopped.
func (t *Terminal) Done() <-chan struct{} { return t.done }

// Restore returns stdin to its previous mode.
func (t *Terminal) Restore() error {
	var err error

	t.once.Do(func() {
		if t.state != nil {
			err = term.Restore(t.fd, t.state)
		}
	})

	return err
}
