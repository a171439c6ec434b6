package controller

import (
	"errors"
	"time"

	"github.com/cwbudde/algo-synth/synth/input"
	"github.com/cwbudde/algo-synth/synth/ui"
)

type fakeEncoder struct {
	next ui.Direction
	dir  ui.Direction
}

func (e *fakeEncoder) Tick() {
	e.dir = e.next
	e.next = ui.None
}

func (e *fakeEncoder) Direction() ui.Direction { return e.dir }

type fakeButton struct {
	held     bool
	duration time.Duration
	press    bool
	pressed  bool
}

func (b *fakeButton) Update() {
	b.pressed = b.press
	b.press = false
}

func (b *fakeButton) Held() bool              { return b.held }
func (b *fakeButton) Duration() time.Duration { return b.duration }
func (b *fakeButton) Pressed() bool           { return b.pressed }

type fakeDisplay struct {
	page    *ui.Page
	renders int
}

func (d *fakeDisplay) SetDisplayedPage(p *ui.Page) { d.page = p }
func (d *fakeDisplay) Render()                     { d.renders++ }

type fakeController struct {
	page      *ui.Page
	initErr   error
	inits     int
	updates   int
	processed int
	lastTurn  ui.Direction
	fill      float64
}

func newFakeController(title string, fill float64) *fakeController {
	return &fakeController{page: ui.NewPage(title, ""), fill: fill}
}

func (c *fakeController) Init(float64) error {
	c.inits++
	return c.initErr
}

func (c *fakeController) Update(ctx UpdateContext) {
	c.updates++
	c.lastTurn = ctx.Turn
}

func (c *fakeController) Process(_, out [][]float64) {
	c.processed++

	for _, ch := range out {
		for i := range ch {
			ch[i] = c.fill
		}
	}
}

func (c *fakeController) Page() *ui.Page { return c.page }

type rig struct {
	encoder     *fakeEncoder
	button      *fakeButton
	display     *fakeDisplay
	cv          *input.Values
	controllers []*fakeController
}

func newRig(n int) *rig {
	r := &rig{
		encoder: &fakeEncoder{},
		button:  &fakeButton{},
		display: &fakeDisplay{},
		cv:      &input.Values{},
	}

	for i := range n {
		r.controllers = append(r.controllers, newFakeController(string(rune('A'+i)), float64(i+1)))
	}

	return r
}

func (r *rig) hardware() Hardware {
	return Hardware{Encoder: r.encoder, Button: r.button, Display: r.display, CV: r.cv}
}

func (r *rig) list() []Controller {
	out := make([]Controller, len(r.controllers))
	for i, c := range r.controllers {
		out[i] = c
	}

	return out
}

var errInit = errors.New("init failed")

func newBlock(channels, n int) [][]float64 {
	block := make([][]float64, channels)
	for ch := range block {
		block[ch] = make([]float64, n)
	}

	return block
}
