// Command oscinfo measures the aliasing of the oscillator waveforms.
//
// Usage:
//
//	oscinfo [flags] [waveform ...]
//
// Without arguments it prints every waveform. Each row renders one second
// of the waveform at -freq and splits the spectrum into harmonic and
// alias power.
//
// Examples:
//
//	oscinfo saw polyblep-saw
//	oscinfo -freq 2489 -rate 44100
//	oscinfo -window flat-top -harmonics 8 square
//	oscinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-synth/dsp/signal"
	"github.com/cwbudde/algo-synth/dsp/window"
	"github.com/cwbudde/algo-synth/measure/alias"
)

var windows = []struct {
	name string
	typ  window.Type
}{
	{"hann", window.TypeHann},
	{"blackman", window.TypeBlackman},
	{"blackman-harris-4t", window.TypeBlackmanHarris4Term},
	{"flat-top", window.TypeFlatTop},
}

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	freq := flag.Float64("freq", 1244.5, "oscillator frequency in Hz")
	fftSize := flag.Int("size", 1<<16, "FFT length")
	winName := flag.String("window", "blackman-harris-4t", "analysis window")
	harmonics := flag.Int("harmonics", 5, "highest harmonic whose level is printed relative to H1")
	list := flag.Bool("list", false, "list waveform and window names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: oscinfo [flags] [waveform ...]\n\n")
		fmt.Fprintf(os.Stderr, "Measures harmonic and alias power of oscillator waveforms.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	win, ok := lookupWindow(*winName)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown window %q (use -list to see available)\n", *winName)
		os.Exit(1)
	}

	waves := resolveWaveforms(flag.Args())
	if len(waves) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching waveforms\n")
		os.Exit(1)
	}

	cfg := alias.Config{
		SampleRate:   *rate,
		Fundamental:  *freq,
		FFTSize:      *fftSize,
		Window:       win,
		MaxHarmonics: *harmonics,
	}

	if err := printAnalysis(waves, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printList() {
	fmt.Println("waveforms:")
	for _, w := range signal.Waveforms() {
		fmt.Printf("  %s\n", w)
	}

	fmt.Println("windows:")
	for _, w := range windows {
		fmt.Printf("  %s\n", w.name)
	}
}

func lookupWindow(name string) (window.Type, bool) {
	for _, w := range windows {
		if w.name == strings.ToLower(name) {
			return w.typ, true
		}
	}

	return 0, false
}

func resolveWaveforms(names []string) []signal.Waveform {
	if len(names) == 0 {
		return signal.Waveforms()
	}

	byName := make(map[string]signal.Waveform)
	for _, w := range signal.Waveforms() {
		byName[w.String()] = w
	}

	var out []signal.Waveform

	for _, name := range names {
		w, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown waveform %q (use -list to see available)\n", name)
			continue
		}

		out = append(out, w)
	}

	return out
}

func render(w signal.Waveform, cfg alias.Config) ([]float64, error) {
	osc, err := signal.NewOscillator(cfg.SampleRate,
		signal.WithWaveform(w),
		signal.WithFrequency(cfg.Fundamental),
	)
	if err != nil {
		return nil, err
	}

	buf := make([]float64, cfg.FFTSize)
	osc.ProcessBlock(buf)

	return buf, nil
}

func printAnalysis(waves []signal.Waveform, cfg alias.Config) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := "Waveform\tPeak\tRMS\tAlias [dB]"
	for h := 2; h <= cfg.MaxHarmonics; h++ {
		header += fmt.Sprintf("\tH%d", h)
	}

	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, w := range waves {
		buf, err := render(w, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", w, err)
		}

		res, err := alias.Analyze(buf, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", w, err)
		}

		row := fmt.Sprintf("%s\t%.4f\t%.4f\t%.1f", w, res.Peak, res.RMS, res.AliasDB)
		for _, level := range res.Harmonics {
			row += fmt.Sprintf("\t%.4f", level)
		}

		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}
