// Command synth runs the controller engine on the default audio device
// with a terminal front panel.
//
// Usage:
//
//	synth [flags]
//
// Panel keys: left/right (or a/d) turn the encoder, h latches the encoder
// button, space presses it, 1-8 pick a CV knob, up/down (or w/s) nudge the
// knob, [ and ] step it by a volt, 0 centres it and q quits. Holding the
// button past the hold threshold enters controller selection.
//
// Examples:
//
//	synth -input voice.wav -controller vocoder
//	synth -controller comb -record take.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwbudde/algo-synth/internal/audio"
	"github.com/cwbudde/algo-synth/internal/panel"
	"github.com/cwbudde/algo-synth/synth/controller"
)

type options struct {
	sampleRate   int
	blockSize    int
	bufferFrames int
	gain         float64
	tick         time.Duration
	hold         time.Duration
	input        string
	record       string
	logLevel     string
	initial      string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("synth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.sampleRate, "rate", 48000, "sample rate in Hz")
	fs.IntVar(&opts.blockSize, "block", audio.DefaultBlockSize, "frames per processing block")
	fs.IntVar(&opts.bufferFrames, "buffer", 1024, "device buffer in frames (0 = driver default)")
	fs.Float64Var(&opts.gain, "gain", 1, "output gain")
	fs.DurationVar(&opts.tick, "tick", 10*time.Millisecond, "UI poll interval")
	fs.DurationVar(&opts.hold, "hold", controller.DefaultHoldThreshold, "button hold time that enters controller selection")
	fs.StringVar(&opts.input, "input", "", "looped input file (.wav, .mp3, .ogg) fed to the controllers")
	fs.StringVar(&opts.record, "record", "", "capture the output to this WAV file")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.initial, "controller", controllerNames[0], fmt.Sprintf("initial controller %v", controllerNames))

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch {
	case opts.sampleRate <= 0:
		return opts, fmt.Errorf("sample rate must be > 0: %d", opts.sampleRate)
	case opts.blockSize <= 0:
		return opts, fmt.Errorf("block size must be > 0: %d", opts.blockSize)
	case opts.gain < 0 || math.IsNaN(opts.gain):
		return opts, fmt.Errorf("gain must be >= 0: %f", opts.gain)
	case opts.tick <= 0:
		return opts, fmt.Errorf("tick must be > 0: %v", opts.tick)
	case fs.NArg() > 0:
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) (err error) {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}

	initial, err := controllerIndex(opts.initial)
	if err != nil {
		return err
	}

	pnl, err := panel.New()
	if err != nil {
		return err
	}

	screen := panel.NewScreen(stdout, pnl.Status)

	controllers, err := buildControllers()
	if err != nil {
		return err
	}

	engine, err := controller.NewMainController(
		controller.Hardware{Encoder: pnl, Button: pnl, Display: screen, CV: pnl},
		controllers,
		controller.WithHoldThreshold(opts.hold),
		controller.WithLogger(logger),
		controller.WithInitialController(initial),
	)
	if err != nil {
		return err
	}

	if err := engine.Init(float64(opts.sampleRate)); err != nil {
		return err
	}

	rendererOpts := []audio.RendererOption{
		audio.WithBlockSize(opts.blockSize),
		audio.WithOutputGain(opts.gain),
	}

	if opts.input != "" {
		clip, err := audio.Load(opts.input)
		if err != nil {
			return err
		}

		if err := clip.SetOutputRate(opts.sampleRate); err != nil {
			return err
		}

		logger.Info("input loaded",
			"path", opts.input,
			"channels", clip.Channels(),
			"sample_rate", clip.SampleRate(),
			"frames", clip.Frames())

		rendererOpts = append(rendererOpts, audio.WithSource(clip))
	}

	if opts.record != "" {
		rec, err := audio.CreateRecorder(opts.record, opts.sampleRate)
		if err != nil {
			return err
		}

		defer func() {
			if cerr := rec.Close(); cerr != nil && err == nil {
				err = cerr
			}

			logger.Info("recording closed",
				"path", opts.record,
				"frames", rec.Frames(),
				"dropped", rec.Dropped())
		}()

		rendererOpts = append(rendererOpts, audio.WithSink(rec))
	}

	renderer, err := audio.NewRenderer(engine, rendererOpts...)
	if err != nil {
		return err
	}

	return runLive(engine, renderer, pnl, screen, opts, logger)
}

func runLive(engine *controller.MainController, renderer *audio.Renderer, pnl *panel.Panel,
	screen *panel.Screen, opts options, logger *slog.Logger,
) error {
	player, err := audio.NewPlayer(opts.sampleRate, opts.bufferFrames, renderer)
	if err != nil {
		return err
	}
	defer player.Close()

	host, err := panel.NewTerminal(pnl)
	if err != nil {
		return err
	}

	if err := host.Start(); err != nil {
		return err
	}
	defer host.Restore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player.Start()
	logger.Info("engine running", "sample_rate", opts.sampleRate, "block", renderer.BlockSize())

	ticker := time.NewTicker(opts.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-host.Done():
			return screen.Err()
		case <-ticker.C:
			engine.Update()
		}
	}
}
