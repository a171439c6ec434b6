package panel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/algo-synth/synth/ui"
)

func TestScreenRendersPageAndStatus(t *testing.T) {
	var buf bytes.Buffer

	s := NewScreen(&buf, func() string { return "A0+0.0" })

	page := ui.NewPage("Wave", "")
	page.SetLine(0, "%.0f Hz", 440.0)
	s.SetDisplayedPage(page)
	s.Render()

	out := buf.String()
	for _, want := range []string{"Wave\r\n", "  440 Hz\r\n", "A0+0.0\r\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Render() output %q misses %q", out, want)
		}
	}

	// Unchanged content is not redrawn.
	buf.Reset()
	s.Render()

	if buf.Len() != 0 {
		t.Fatalf("second Render() wrote %q, want nothing", buf.String())
	}

	page.SetSelection(0)
	s.Render()

	if !strings.Contains(buf.String(), "> Wave <") {
		t.Fatalf("selected Render() = %q, want highlighted title", buf.String())
	}

	if s.Err() != nil {
		t.Fatalf("Err() = %v", s.Err())
	}
}
