// Package instrument implements the tone filter processor: a monophonic sine voice
// mixed into the input, run through a smoothed lowpass and gain stage, and metered.
package instrument

import (
	"errors"
	"fmt"

	"github.com/justyntemme/tonefilter/pkg/dsp/analysis"
	"github.com/justyntemme/tonefilter/pkg/dsp/filter"
	"github.com/justyntemme/tonefilter/pkg/framework/debug"
	"github.com/justyntemme/tonefilter/pkg/framework/param"
	"github.com/justyntemme/tonefilter/pkg/framework/process"
	"github.com/justyntemme/tonefilter/pkg/framework/voice"
)

// Status is the result of processing one block.
type Status int

const (
	// StatusNormal means the block was processed (or bypassed).
	StatusNormal Status = iota
	// StatusError means the processor was not initialized.
	StatusError
)

func (s Status) String() string {
	if s == StatusNormal {
		return "Normal"
	}
	return "Error"
}

// Errors returned by Initialize.
var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidBlockSize  = errors.New("max block size must be positive")
)

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used by the control-thread entry points.
func WithLogger(logger *debug.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithPeakDecay sets the peak meter decay time in milliseconds.
func WithPeakDecay(decayMs float64) Option {
	return func(p *Processor) {
		p.peakDecayMs = decayMs
	}
}

// Processor renders blocks of audio. ProcessAudio, Reset and Sanitize belong to
// the audio thread; Params and Meter may be used from any goroutine.
type Processor struct {
	params *Params
	meter  *analysis.PeakMeter
	voice  *voice.Mono
	filter *filter.Lowpass

	gain      *param.Smoother
	cutoff    *param.Smoother
	resonance *param.Smoother

	sampleRate   float32
	maxBlockSize int32
	peakDecayMs  float64
	initialized  bool

	logger *debug.Logger
}

// New creates a processor. It must be initialized before processing.
func New(opts ...Option) *Processor {
	p := &Processor{
		params:      NewParams(),
		meter:       &analysis.PeakMeter{},
		filter:      filter.NewLowpass(),
		peakDecayMs: analysis.DefaultPeakDecayMs,
		logger:      debug.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.gain = param.NewSmoother(p.params.Gain.Smoothing, p.params.Gain.Plain())
	p.cutoff = param.NewSmoother(p.params.Cutoff.Smoothing, p.params.Cutoff.Plain())
	p.resonance = param.NewSmoother(p.params.Resonance.Smoothing, p.params.Resonance.Plain())
	return p
}

// Initialize prepares the processor for sampleRate and blocks of up to
// maxBlockSize frames. It allocates and must not be called from the audio thread.
func (p *Processor) Initialize(sampleRate float64, maxBlockSize int32) error {
	if !(sampleRate > 0) {
		return fmt.Errorf("initialize at %v Hz: %w", sampleRate, ErrInvalidSampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("initialize with block size %d: %w", maxBlockSize, ErrInvalidBlockSize)
	}

	p.sampleRate = float32(sampleRate)
	p.maxBlockSize = maxBlockSize
	p.meter.Initialize(sampleRate, p.peakDecayMs)
	if p.voice == nil {
		p.voice = voice.NewMono(p.sampleRate)
	} else {
		p.voice.SetSampleRate(p.sampleRate)
	}
	p.initialized = true
	p.Reset()

	p.logger.Info("processor initialized",
		"sample_rate", sampleRate,
		"max_block_size", maxBlockSize,
		"peak_weight", p.meter.Weight())
	return nil
}

// Reset clears filter history, note state and meter, and snaps every smoother
// to its parameter's current value.
func (p *Processor) Reset() {
	p.filter.Reset()
	p.meter.Reset()
	if p.voice != nil {
		p.voice.Reset()
	}

	p.gain.Reset(p.params.Gain.Plain())
	p.cutoff.Reset(p.params.Cutoff.Plain())
	p.resonance.Reset(p.params.Resonance.Plain())
	if p.initialized {
		p.filter.Recompute(p.cutoff.Current(), p.resonance.Current(), p.sampleRate)
	}
}

// ProcessAudio renders one block in place. Buffer holds the input on entry and
// the output on return; Events must be ordered by Offset.
//
// Events at offset i take effect before sample i is generated. Events whose
// offset lies past the end of the block are applied after the last sample.
// ProcessAudio never allocates, locks or logs.
func (p *Processor) ProcessAudio(ctx *process.Context) Status {
	if !p.initialized {
		return StatusError
	}
	if p.params.Bypass.Bool() {
		return StatusNormal
	}

	p.syncTargets()

	// Filter controls move once per block.
	p.filter.Recompute(p.cutoff.Next(), p.resonance.Next(), p.sampleRate)

	numSamples := ctx.NumSamples()
	channels := min(len(ctx.Buffer), filter.MaxChannels)
	observed := p.meter.Observed()
	events := ctx.Events
	next := 0

	for i := 0; i < numSamples; i++ {
		for next < len(events) && events[next].Offset <= uint32(i) {
			p.voice.HandleEvent(events[next])
			next++
		}

		g := p.gain.Next()
		tone := p.voice.Next() * g

		var sum float32
		for ch := 0; ch < channels; ch++ {
			y := p.filter.ProcessSample(ch, ctx.Buffer[ch][i]+tone) * g
			ctx.Buffer[ch][i] = y
			sum += y
		}

		if observed && channels > 0 {
			mean := sum / float32(channels)
			if mean < 0 {
				mean = -mean
			}
			p.meter.Update(mean)
		}
	}

	for ; next < len(events); next++ {
		p.voice.HandleEvent(events[next])
	}
	return StatusNormal
}

// syncTargets starts a ramp on every smoother whose parameter moved.
func (p *Processor) syncTargets() {
	if v := p.params.Gain.Plain(); v != p.gain.Target() {
		p.gain.SetTarget(v, p.sampleRate)
	}
	if v := p.params.Cutoff.Plain(); v != p.cutoff.Target() {
		p.cutoff.SetTarget(v, p.sampleRate)
	}
	if v := p.params.Resonance.Plain(); v != p.resonance.Target() {
		p.resonance.SetTarget(v, p.sampleRate)
	}
}

// FilterFinite reports whether the filter history holds only finite values.
func (p *Processor) FilterFinite() bool {
	return p.filter.Finite()
}

// Sanitize resets the processor if the filter history was poisoned by a
// non-finite input. It reports whether a reset happened and does not log, so
// it may run between blocks on the audio thread; callers report the count.
func (p *Processor) Sanitize() bool {
	if p.filter.Finite() {
		return false
	}
	p.Reset()
	return true
}

// Params returns the parameter handles.
func (p *Processor) Params() *Params {
	return p.params
}

// Meter returns the peak meter shared with observers.
func (p *Processor) Meter() *analysis.PeakMeter {
	return p.meter
}

// Voice returns the note voice, or nil before Initialize.
func (p *Processor) Voice() *voice.Mono {
	return p.voice
}

// SampleRate returns the sample rate passed to Initialize.
func (p *Processor) SampleRate() float64 {
	return float64(p.sampleRate)
}

// MaxBlockSize returns the block size passed to Initialize.
func (p *Processor) MaxBlockSize() int32 {
	return p.maxBlockSize
}
