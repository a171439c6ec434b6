package controller

import (
	"math"
	"sync/atomic"
)

// Param is a float64 shared between the UI and audio goroutines.
// The zero value holds 0.
type Param struct {
	bits atomic.Uint64
}

// NewParam returns a Param holding v.
func NewParam(v float64) *Param {
	p := &Param{}
	p.Store(v)

	return p
}

// Load returns the current value.
func (p *Param) Load() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Store sets the value.
func (p *Param) Store(v float64) {
	p.bits.Store(math.Float64bits(v))
}

// Trigger counts events fired on the UI goroutine and consumed on the
// audio goroutine.
type Trigger struct {
	fired    atomic.Uint32
	consumed uint32
}

// Fire records one event.
func (t *Trigger) Fire() {
	t.fired.Add(1)
}

// Take returns the number of events since the last Take. Only the
// consuming goroutine may call it.
func (t *Trigger) Take() int {
	f := t.fired.Load()
	n := f - t.consumed
	t.consumed = f

	return int(n)
}
