package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/delay"
)

// LoopState is the state of a GlitchLooper.
type LoopState int

const (
	// LoopOff passes the input through.
	LoopOff LoopState = iota
	// LoopWriteDelay counts down before recording starts.
	LoopWriteDelay
	// LoopWrite records the input while passing it through.
	LoopWrite
	// LoopReadDelay counts down before playback starts.
	LoopReadDelay
	// LoopRead plays the recorded loop.
	LoopRead
)

// String returns the state name.
func (s LoopState) String() string {
	switch s {
	case LoopOff:
		return "off"
	case LoopWriteDelay:
		return "write-delay"
	case LoopWrite:
		return "write"
	case LoopReadDelay:
		return "read-delay"
	case LoopRead:
		return "read"
	default:
		return fmt.Sprintf("LoopState(%d)", int(s))
	}
}

const (
	defaultLoopSeconds = 0.25
	defaultLoopDryGain = 1.0
)

// LooperOption configures a GlitchLooper at construction time.
type LooperOption func(*looperConfig) error

type looperConfig struct {
	channels int
	cycling  bool
}

// WithLoopCycling makes a trigger during playback start a new
// record cycle instead of switching the looper off.
func WithLoopCycling(enabled bool) LooperOption {
	return func(cfg *looperConfig) error {
		cfg.cycling = enabled
		return nil
	}
}

// WithLoopChannels sets the number of channels recorded per frame.
func WithLoopChannels(channels int) LooperOption {
	return func(cfg *looperConfig) error {
		if channels < 1 {
			return fmt.Errorf("looper: channel count must be >= 1: %d", channels)
		}

		cfg.channels = channels

		return nil
	}
}

// loopBuffers is one record/playback role: a buffer per channel.
type loopBuffers []*delay.SampleBuffer

// GlitchLooper is a punch-in/punch-out looper. A trigger arms recording
// after a write delay; the recorded loop starts playing after a read delay.
// Two buffer sets swap record and playback roles every cycle so the buffer
// being written is never the one being read.
type GlitchLooper struct {
	sampleRate float64
	maxSamples int
	cycling    bool

	sets     [2]loopBuffers
	write    int
	playback loopBuffers

	state   LoopState
	counter int

	loopSamples       int
	writeDelaySamples int
	readDelaySamples  int
	dryGain           float64

	monoIn, monoOut [1]float64
}

// NewGlitchLooper allocates two buffer sets of maxSeconds each.
func NewGlitchLooper(sampleRate, maxSeconds float64, opts ...LooperOption) (*GlitchLooper, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("looper: sample rate must be > 0: %f", sampleRate)
	}

	if maxSeconds <= 0 || math.IsNaN(maxSeconds) || math.IsInf(maxSeconds, 0) {
		return nil, fmt.Errorf("looper: max seconds must be > 0: %f", maxSeconds)
	}

	cfg := looperConfig{channels: 1}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	l := &GlitchLooper{
		sampleRate: sampleRate,
		maxSamples: max(1, int(math.Ceil(maxSeconds*sampleRate))),
		cycling:    cfg.cycling,
		dryGain:    defaultLoopDryGain,
	}

	for s := range l.sets {
		l.sets[s] = make(loopBuffers, cfg.channels)
		for ch := range l.sets[s] {
			buf, err := delay.NewSampleBuffer(l.maxSamples)
			if err != nil {
				return nil, fmt.Errorf("looper: %w", err)
			}

			l.sets[s][ch] = buf
		}
	}

	l.SetLoopTime(defaultLoopSeconds)

	return l, nil
}

// SetLoopTime sets the recording length in seconds, clamped to the
// allocated maximum. It takes effect when the next recording starts.
func (l *GlitchLooper) SetLoopTime(seconds float64) {
	l.loopSamples = max(1, l.clampSamples(seconds))
}

// SetWriteDelay sets the delay between trigger and recording in seconds.
func (l *GlitchLooper) SetWriteDelay(seconds float64) {
	l.writeDelaySamples = l.clampSamples(seconds)
}

// SetReadDelay sets the delay between end of recording and playback in seconds.
func (l *GlitchLooper) SetReadDelay(seconds float64) {
	l.readDelaySamples = l.clampSamples(seconds)
}

// SetDryGain sets the input level mixed under the playing loop.
func (l *GlitchLooper) SetDryGain(gain float64) {
	if core.IsFinite(gain) {
		l.dryGain = gain
	}
}

// SetCycling toggles loop cycling.
func (l *GlitchLooper) SetCycling(enabled bool) {
	l.cycling = enabled
}

// Trigger handles a gate rising edge.
func (l *GlitchLooper) Trigger() {
	switch l.state {
	case LoopOff:
		l.enterWriteDelay()
	case LoopWriteDelay:
		l.counter = l.writeDelaySamples
	case LoopReadDelay:
		l.counter = l.readDelaySamples
	case LoopWrite:
		// Recording always runs to the end of the loop.
	case LoopRead:
		if l.cycling {
			l.enterWriteDelay()
			return
		}

		l.state = LoopOff
		l.playback = nil
	}
}

// ProcessFrame processes one frame of len(in) channels into out.
// Channels beyond the configured count pass through unchanged, and
// configured channels missing from the frame record silence. An empty frame
// carries no time and leaves the state untouched.
func (l *GlitchLooper) ProcessFrame(in, out []float64) {
	n := min(len(in), len(out))
	if n == 0 {
		return
	}

	switch l.state {
	case LoopWriteDelay:
		if l.counter <= 0 {
			l.enterWrite()
		} else {
			l.counter--
		}
	case LoopReadDelay:
		if l.counter <= 0 {
			l.enterRead()
		} else {
			l.counter--
		}
	}

	channels := len(l.sets[0])

	switch l.state {
	case LoopWrite:
		done := false

		for ch, buf := range l.sets[l.write] {
			x := 0.0
			if ch < n {
				x = in[ch]
			}

			done = buf.Record(x)
		}

		l.mix(in[:n], out[:n], channels)

		if done {
			l.enterReadDelay()
		}
	default:
		l.mix(in[:n], out[:n], channels)
	}
}

// ProcessSample processes one sample of a single-channel looper.
func (l *GlitchLooper) ProcessSample(x float64) float64 {
	l.monoIn[0] = x
	l.ProcessFrame(l.monoIn[:], l.monoOut[:])

	return l.monoOut[0]
}

// Reset returns to LoopOff and erases both recordings.
func (l *GlitchLooper) Reset() {
	l.state = LoopOff
	l.counter = 0
	l.playback = nil

	for _, set := range l.sets {
		for _, buf := range set {
			buf.Clear()
		}
	}
}

// Getters.

// State returns the current state.
func (l *GlitchLooper) State() LoopState { return l.state }

// Counter returns the remaining samples of the current delay state.
func (l *GlitchLooper) Counter() int { return l.counter }

// Cycling reports whether loop cycling is enabled.
func (l *GlitchLooper) Cycling() bool { return l.cycling }

// Channels returns the number of recorded channels.
func (l *GlitchLooper) Channels() int { return len(l.sets[0]) }

// MaxSamples returns the buffer capacity in samples.
func (l *GlitchLooper) MaxSamples() int { return l.maxSamples }

// LoopSamples returns the configured recording length in samples.
func (l *GlitchLooper) LoopSamples() int { return l.loopSamples }

// WriteDelaySamples returns the configured write delay in samples.
func (l *GlitchLooper) WriteDelaySamples() int { return l.writeDelaySamples }

// ReadDelaySamples returns the configured read delay in samples.
func (l *GlitchLooper) ReadDelaySamples() int { return l.readDelaySamples }

// DryGain returns the dry level used under loop playback.
func (l *GlitchLooper) DryGain() float64 { return l.dryGain }

// WriteBuffer returns the record buffer of channel ch.
func (l *GlitchLooper) WriteBuffer(ch int) *delay.SampleBuffer {
	return l.sets[l.write][ch]
}

// ReadBuffer returns the buffer holding the most recent complete recording
// of channel ch.
func (l *GlitchLooper) ReadBuffer(ch int) *delay.SampleBuffer {
	return l.sets[1-l.write][ch]
}

// PlaybackBuffer returns the buffer currently audible on channel ch, or nil
// when no loop is playing.
func (l *GlitchLooper) PlaybackBuffer(ch int) *delay.SampleBuffer {
	if l.playback == nil {
		return nil
	}

	return l.playback[ch]
}

func (l *GlitchLooper) mix(in, out []float64, channels int) {
	for ch := range in {
		if l.playback == nil || ch >= channels {
			out[ch] = in[ch]
			continue
		}

		out[ch] = l.playback[ch].Play() + l.dryGain*in[ch]
	}
}

func (l *GlitchLooper) enterWriteDelay() {
	l.state = LoopWriteDelay
	l.counter = l.writeDelaySamples
}

func (l *GlitchLooper) enterWrite() {
	l.state = LoopWrite
	for _, buf := range l.sets[l.write] {
		buf.StartRecording(l.loopSamples)
	}
}

func (l *GlitchLooper) enterReadDelay() {
	l.state = LoopReadDelay
	l.counter = l.readDelaySamples
	l.write = 1 - l.write
}

func (l *GlitchLooper) enterRead() {
	l.state = LoopRead
	l.playback = l.sets[1-l.write]

	for _, buf := range l.playback {
		buf.Rewind()
	}
}

// clampSamples converts seconds to samples in [0, maxSamples]. The bound is
// applied before the int conversion so +Inf and huge values stay defined.
func (l *GlitchLooper) clampSamples(seconds float64) int {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}

	samples := math.Round(seconds * l.sampleRate)
	if samples >= float64(l.maxSamples) {
		return l.maxSamples
	}

	return int(samples)
}
