// Package host drives the tone filter processor outside a plugin host: offline
// WAV rendering, real-time playback and live MIDI input.
package host

import (
	"github.com/justyntemme/tonefilter/pkg/dsp"
	"github.com/justyntemme/tonefilter/pkg/framework/debug"
	"github.com/justyntemme/tonefilter/pkg/framework/process"
	"github.com/justyntemme/tonefilter/pkg/instrument"
	"github.com/justyntemme/tonefilter/pkg/midi"
	"github.com/justyntemme/tonefilter/pkg/score"
)

// MaxEventsPerBlock bounds the note events delivered in one block.
const MaxEventsPerBlock = 256

// Engine pulls blocks from a processor, feeding it score and live events.
// It is not safe for concurrent use; one goroutine (the render loop or the
// audio callback) owns it.
type Engine struct {
	proc      *instrument.Processor
	ctx       *process.Context
	blockSize int

	player   *score.Player
	live     *midi.Queue
	profiler *debug.Profiler

	resets int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithPlayer schedules events and parameter changes from a score.
func WithPlayer(p *score.Player) EngineOption {
	return func(e *Engine) {
		e.player = p
	}
}

// WithLiveInput delivers events pushed to q at the start of the next block.
func WithLiveInput(q *midi.Queue) EngineOption {
	return func(e *Engine) {
		e.live = q
	}
}

// WithProfiler times every ProcessAudio call.
func WithProfiler(p *debug.Profiler) EngineOption {
	return func(e *Engine) {
		e.profiler = p
	}
}

// NewEngine creates an engine for an initialized processor.
func NewEngine(proc *instrument.Processor, opts ...EngineOption) *Engine {
	blockSize := int(proc.MaxBlockSize())
	if blockSize <= 0 {
		blockSize = dsp.DefaultBufferSize
	}
	e := &Engine{
		proc:      proc,
		ctx:       process.NewContext(dsp.Stereo, blockSize, MaxEventsPerBlock),
		blockSize: blockSize,
	}
	e.ctx.SampleRate = proc.SampleRate()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process renders up to one block of n frames and returns the planar output.
// The returned slices are reused by the next call.
func (e *Engine) Process(n int) [][]float32 {
	if e.proc.Sanitize() {
		e.resets++
	}

	e.ctx.Prepare(n)
	e.ctx.Clear()

	// Live events land at offset 0, ahead of any score events.
	if e.live != nil {
		e.ctx.Events = e.live.Drain(e.ctx.Events)
		for i := range e.ctx.Events {
			e.ctx.Events[i].Offset = 0
		}
	}
	if e.player != nil {
		e.player.Fill(e.ctx)
	}
	midi.SortByOffset(e.ctx.Events)

	if e.profiler != nil {
		start := e.profiler.Start()
		e.proc.ProcessAudio(e.ctx)
		e.profiler.Stop(start)
	} else {
		e.proc.ProcessAudio(e.ctx)
	}
	return e.ctx.Buffer
}

// ProcessInterleaved renders len(dst)/2 frames (at most one block) into dst and
// returns the number of samples written.
func (e *Engine) ProcessInterleaved(dst []float32) int {
	e.Process(len(dst) / dsp.Stereo)
	return e.ctx.Interleave(dst)
}

// Done reports whether the score has finished. Without a score it never does.
func (e *Engine) Done() bool {
	return e.player != nil && e.player.Done()
}

// BlockSize returns the largest block the engine renders at once.
func (e *Engine) BlockSize() int {
	return e.blockSize
}

// SampleRate returns the processor's sample rate.
func (e *Engine) SampleRate() float64 {
	return e.proc.SampleRate()
}

// Processor returns the driven processor.
func (e *Engine) Processor() *instrument.Processor {
	return e.proc
}

// Resets returns how many times a non-finite filter state forced a reset.
func (e *Engine) Resets() int {
	return e.resets
}
