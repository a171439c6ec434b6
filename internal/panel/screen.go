package panel

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cwbudde/algo-synth/synth/ui"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	// Raw terminals need an explicit carriage return.
	newline = "\r\n"
)

// Screen renders the displayed page and an optional status line to a
// terminal. It skips writes when nothing changed since the last Render.
type Screen struct {
	mu sync.Mutex

	w      io.Writer
	page   *ui.Page
	status func() string
	last   string
	err    error
}

// NewScreen creates a screen writing to w. status may be nil.
func NewScreen(w io.Writer, status func() string) *Screen {
	return &Screen{w: w, status: status}
}

// SetDisplayedPage selects the page Render draws.
func (s *Screen) SetDisplayedPage(p *ui.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = p
}

// Render redraws the screen when its content changed.
func (s *Screen) Render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := s.frame()
	if frame == s.last {
		return
	}

	s.last = frame
	if _, err := io.WriteString(s.w, clearScreen+frame); err != nil && s.err == nil {
		s.err = fmt.Errorf("panel: render: %w", err)
	}
}

func (s *Screen) frame() string {
	var sb strings.Builder

	if s.page != nil {
		title := s.page.Title()
		if s.page.Selected() {
			title = "> " + title + " <"
		}

		sb.WriteString(title)
		sb.WriteString(newline)

		for _, line := range s.page.Lines() {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString(newline)
		}
	}

	if s.status != nil {
		sb.WriteString(newline)
		sb.WriteString(s.status())
		sb.WriteString(newline)
	}

	return sb.String()
}

// Err returns the first write error.
func (s *Screen) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}
