package analysis

import (
	"math"
	"sync/atomic"

	"github.com/justyntemme/tonefilter/pkg/dsp/gain"
)

// DefaultPeakDecayMs is the time for the meter to fall to a quarter of a transient.
const DefaultPeakDecayMs = 150.0

// PeakDecayWeight returns the per-frame factor that lets a peak fall to 25% in
// decayMs: 0.25^(1 / (sampleRate * decayMs / 1000)).
func PeakDecayWeight(sampleRate, decayMs float64) float32 {
	return float32(math.Pow(0.25, 1.0/(sampleRate*decayMs/1000.0)))
}

// PeakMeter tracks a decaying peak of the output amplitude.
//
// The audio thread is the only writer; an observer polls Load from any goroutine.
// Values are published with a single atomic store, so readers see an approximate,
// eventually consistent level, which is all a meter needs.
type PeakMeter struct {
	bits     atomic.Uint32 // float32 bits of the published peak
	observed atomic.Bool

	// audio thread only
	peak   float32
	weight float32
}

// NewPeakMeter creates a meter with the default decay at sampleRate.
func NewPeakMeter(sampleRate float64) *PeakMeter {
	pm := &PeakMeter{}
	pm.Initialize(sampleRate, DefaultPeakDecayMs)
	return pm
}

// Initialize derives the decay weight. Call whenever the sample rate changes.
func (pm *PeakMeter) Initialize(sampleRate, decayMs float64) {
	pm.weight = PeakDecayWeight(sampleRate, decayMs)
}

// Weight returns the per-frame decay factor.
func (pm *PeakMeter) Weight() float32 {
	return pm.weight
}

// Update folds one frame's amplitude into the peak. Rises are instant,
// falls are exponential. Audio thread only.
func (pm *PeakMeter) Update(amplitude float32) {
	if amplitude > pm.peak {
		pm.peak = amplitude
	} else {
		pm.peak = pm.peak*pm.weight + amplitude*(1-pm.weight)
	}
	pm.bits.Store(math.Float32bits(pm.peak))
}

// Load returns the most recently published linear peak.
func (pm *PeakMeter) Load() float32 {
	return math.Float32frombits(pm.bits.Load())
}

// LoadDB returns the published peak in decibels.
func (pm *PeakMeter) LoadDB() float32 {
	return gain.LinearToDb32(pm.Load())
}

// SetObserved tells the audio thread whether anyone is reading the meter.
// While unobserved the processor skips Update entirely.
func (pm *PeakMeter) SetObserved(observed bool) {
	pm.observed.Store(observed)
}

// Observed reports whether an observer is attached.
func (pm *PeakMeter) Observed() bool {
	return pm.observed.Load()
}

// Reset clears the peak. Only call between blocks.
func (pm *PeakMeter) Reset() {
	pm.peak = 0
	pm.bits.Store(0)
}
