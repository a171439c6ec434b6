package ui

import "fmt"

// NoSelection marks a page without a highlighted item.
const NoSelection = -1

// MaxLines is the number of status lines a page holds.
const MaxLines = 4

// Page is the display content owned by one controller.
type Page struct {
	title     string
	short     string
	selection int
	lines     [MaxLines]string
}

// NewPage creates a page with a title and a short label for narrow displays.
func NewPage(title, short string) *Page {
	if short == "" {
		short = title
	}

	return &Page{title: title, short: short, selection: NoSelection}
}

// Title returns the page title.
func (p *Page) Title() string { return p.title }

// ShortTitle returns the short label.
func (p *Page) ShortTitle() string { return p.short }

// Selection returns the highlighted item, or NoSelection.
func (p *Page) Selection() int { return p.selection }

// SetSelection highlights item i. Negative values clear the selection.
func (p *Page) SetSelection(i int) {
	if i < 0 {
		i = NoSelection
	}

	p.selection = i
}

// Selected reports whether the page has a highlighted item.
func (p *Page) Selected() bool { return p.selection != NoSelection }

// SetLine formats status line i. Out-of-range lines are ignored.
func (p *Page) SetLine(i int, format string, args ...any) {
	if i < 0 || i >= MaxLines {
		return
	}

	p.lines[i] = fmt.Sprintf(format, args...)
}

// Line returns status line i.
func (p *Page) Line(i int) string {
	if i < 0 || i >= MaxLines {
		return ""
	}

	return p.lines[i]
}

// Lines returns the non-empty status lines.
func (p *Page) Lines() []string {
	out := make([]string, 0, MaxLines)
	for _, l := range p.lines {
		if l != "" {
			out = append(out, l)
		}
	}

	return out
}
