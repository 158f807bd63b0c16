// Command tonefilter renders or plays the tone filter processor, driven by a
// Lua or Standard MIDI File score and optionally by a live MIDI keyboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/tonefilter/pkg/dsp"
	"github.com/justyntemme/tonefilter/pkg/framework/debug"
	"github.com/justyntemme/tonefilter/pkg/host"
	"github.com/justyntemme/tonefilter/pkg/instrument"
	"github.com/justyntemme/tonefilter/pkg/midi"
	"github.com/justyntemme/tonefilter/pkg/score"
)

type config struct {
	scorePath string
	outPath   string
	duration  time.Duration
	tail      time.Duration

	sampleRate float64
	blockSize  int
	backend    string
	latency    time.Duration
	midiPort   string
	meter      bool

	gainDB    float64
	cutoff    float64
	resonance float64
	bypass    bool

	logLevel string
	profile  bool
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.scorePath, "score", "", "score to play: .lua script or .mid file")
	flag.StringVar(&cfg.outPath, "out", "", "render to this WAV file instead of playing")
	flag.DurationVar(&cfg.duration, "duration", 0, "render length (default: score length plus tail)")
	flag.DurationVar(&cfg.tail, "tail", time.Second, "silence rendered after the last score entry")
	flag.Float64Var(&cfg.sampleRate, "rate", dsp.SampleRate48k, "sample rate in Hz")
	flag.IntVar(&cfg.blockSize, "block", dsp.DefaultBufferSize, "block size in frames")
	flag.StringVar(&cfg.backend, "backend", "oto", "playback backend: oto or portaudio")
	flag.DurationVar(&cfg.latency, "latency", 20*time.Millisecond, "oto device buffer")
	flag.StringVar(&cfg.midiPort, "midi", "", "live MIDI input port name substring (\"any\" for the first port)")
	flag.BoolVar(&cfg.meter, "meter", true, "show a peak meter while playing")
	flag.Float64Var(&cfg.gainDB, "gain", dsp.DefaultGainDB, "initial gain in dB")
	flag.Float64Var(&cfg.cutoff, "cutoff", dsp.DefaultFrequency, "initial cutoff in Hz")
	flag.Float64Var(&cfg.resonance, "resonance", dsp.DefaultQ, "initial resonance (Q)")
	flag.BoolVar(&cfg.bypass, "bypass", false, "start bypassed")
	flag.StringVar(&cfg.logLevel, "log", "info", "log level: debug, info, warn, error, off")
	flag.BoolVar(&cfg.profile, "profile", false, "log block timing against the real-time budget")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		debug.Error("tonefilter failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	logger := debug.Default()
	level, ok := debug.ParseLevel(cfg.logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.logLevel)
	}
	logger.SetLevel(level)
	slog.SetDefault(logger.Slog())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := instrument.New(instrument.WithLogger(logger))
	if err := proc.Initialize(cfg.sampleRate, int32(cfg.blockSize)); err != nil {
		return err
	}
	params := proc.Params()
	params.SetGainDB(float32(cfg.gainDB))
	params.Cutoff.SetPlain(float32(cfg.cutoff))
	params.Resonance.SetPlain(float32(cfg.resonance))
	params.SetBypass(cfg.bypass)
	proc.Reset()

	var opts []host.EngineOption
	var length int64
	if cfg.scorePath != "" {
		tl, err := loadScore(ctx, cfg.scorePath, cfg.sampleRate)
		if err != nil {
			return err
		}
		tl.Extend(tl.Length() + tl.Frame(cfg.tail.Seconds()))
		player, err := score.NewPlayer(tl, params.Registry())
		if err != nil {
			return fmt.Errorf("score %s: %w", cfg.scorePath, err)
		}
		opts = append(opts, host.WithPlayer(player))
		length = tl.Length()
		logger.Info("score loaded", "path", cfg.scorePath, "entries", tl.Len(), "frames", length)
	}
	if cfg.duration > 0 {
		length = int64(cfg.duration.Seconds() * cfg.sampleRate)
	}

	var profiler *debug.Profiler
	if cfg.profile {
		profiler = debug.NewProfiler(cfg.sampleRate, cfg.blockSize, 4096)
		opts = append(opts, host.WithProfiler(profiler))
	}

	if cfg.midiPort != "" && cfg.outPath == "" {
		pattern := cfg.midiPort
		if pattern == "any" {
			pattern = ""
		}
		q := midi.NewQueue(host.MaxEventsPerBlock)
		in, err := host.OpenLiveInput(pattern, q, logger)
		if err != nil {
			return err
		}
		defer in.Close()
		opts = append(opts, host.WithLiveInput(q))
	}

	engine := host.NewEngine(proc, opts...)

	var err error
	if cfg.outPath != "" {
		err = render(ctx, cfg, engine, length, logger)
	} else {
		err = play(ctx, cfg, engine, logger)
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		err = nil
	}

	if resets := engine.Resets(); resets > 0 {
		logger.Warn("filter state was reset after non-finite samples", "resets", resets)
	}
	if profiler != nil {
		profiler.Log(logger)
	}
	return err
}

func loadScore(ctx context.Context, path string, sampleRate float64) (*score.Timeline, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lua":
		return score.LoadLuaFile(ctx, path, sampleRate)
	case ".mid", ".midi", ".smf":
		return score.LoadSMFFile(path, sampleRate)
	default:
		return nil, fmt.Errorf("score %s: unsupported format", path)
	}
}

func render(ctx context.Context, cfg config, engine *host.Engine, length int64, logger *debug.Logger) error {
	if length <= 0 {
		return errors.New("nothing to render: pass -score or -duration")
	}

	f, err := os.Create(cfg.outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.outPath, err)
	}
	defer f.Close()

	analyzer := debug.NewAudioAnalyzer()
	start := time.Now()
	if err := host.RenderWAV(ctx, f, engine, length, analyzer); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", cfg.outPath, err)
	}

	logger.Info("rendered", "path", cfg.outPath, "frames", length, "elapsed", time.Since(start))
	debug.LogResult(logger, cfg.outPath, analyzer.Result())
	return nil
}

func play(ctx context.Context, cfg config, engine *host.Engine, logger *debug.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	playCtx, playDone := context.WithCancel(gctx)

	g.Go(func() error {
		defer playDone()
		logger.Info("playing", "backend", cfg.backend, "sample_rate", cfg.sampleRate, "block", cfg.blockSize)

		switch cfg.backend {
		case "oto":
			out, err := host.NewOtoOutput(int(cfg.sampleRate), cfg.latency)
			if err != nil {
				return err
			}
			return out.Play(playCtx, engine)
		case "portaudio":
			return host.PlayPortAudio(playCtx, engine)
		default:
			return fmt.Errorf("unknown backend %q", cfg.backend)
		}
	})

	if cfg.meter {
		meter := engine.Processor().Meter()
		meter.SetObserved(true)
		g.Go(func() error {
			defer meter.SetObserved(false)
			return watchMeter(playCtx, meter.LoadDB, os.Stderr)
		})
	}

	err := g.Wait()
	playDone()
	return err
}
