package audio

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/interp"
)

// Clip is decoded audio that loops forever. It resamples to the output
// rate with linear interpolation across the loop seam.
type Clip struct {
	samples    []float32
	channels   int
	frames     int
	sampleRate int
	outputRate int
	step       float64
	pos        float64
}

// NewClip wraps interleaved samples. The clip plays at its own rate until
// SetOutputRate is called.
func NewClip(samples []float32, channels, sampleRate int) (*Clip, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("audio: clip channels must be > 0: %d", channels)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: clip sample rate must be > 0: %d", sampleRate)
	}

	frames := len(samples) / channels

	return &Clip{
		samples:    samples[:frames*channels],
		channels:   channels,
		frames:     frames,
		sampleRate: sampleRate,
		outputRate: sampleRate,
		step:       1,
	}, nil
}

// SetOutputRate sets the rate Read produces frames at.
func (c *Clip) SetOutputRate(rate int) error {
	if rate <= 0 {
		return fmt.Errorf("audio: output rate must be > 0: %d", rate)
	}

	c.outputRate = rate
	c.step = float64(c.sampleRate) / float64(rate)

	return nil
}

// Read fills dst with interleaved frames, wrapping at the clip end. An
// empty clip reads silence.
func (c *Clip) Read(dst []float32) {
	if c.frames == 0 {
		clear(dst)
		return
	}

	ch := c.channels
	n := len(dst) / ch

	for f := range n {
		i := int(c.pos)
		t := c.pos - float64(i)

		j := i + 1
		if j >= c.frames {
			j = 0
		}

		a := c.samples[i*ch : i*ch+ch]
		b := c.samples[j*ch : j*ch+ch]
		o := dst[f*ch : f*ch+ch]

		for k := range ch {
			o[k] = float32(interp.Linear2(t, float64(a[k]), float64(b[k])))
		}

		c.pos += c.step
		for c.pos >= float64(c.frames) {
			c.pos -= float64(c.frames)
		}
	}

	clear(dst[n*ch:])
}

// Rewind restarts the clip.
func (c *Clip) Rewind() { c.pos = 0 }

// Getters.

// Channels returns the interleaved channel count.
func (c *Clip) Channels() int { return c.channels }

// Frames returns the clip length in frames.
func (c *Clip) Frames() int { return c.frames }

// SampleRate returns the native rate of the clip.
func (c *Clip) SampleRate() int { return c.sampleRate }

// OutputRate returns the rate Read produces frames at.
func (c *Clip) OutputRate() int { return c.outputRate }
