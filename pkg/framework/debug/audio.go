package debug

import (
	"math"

	"github.com/justyntemme/tonefilter/pkg/dsp/gain"
)

// AudioAnalyzer accumulates level statistics over a rendered signal,
// one block at a time.
type AudioAnalyzer struct {
	clippingThreshold float32
	silenceThreshold  float32

	samples    int
	sumSquares float64
	sum        float64
	peak       float32
	clipped    int
	nonFinite  int
	crossings  int
	last       float32
}

// NewAudioAnalyzer creates an analyzer with a 0.99 clipping threshold and a
// -80 dB silence threshold.
func NewAudioAnalyzer() *AudioAnalyzer {
	return &AudioAnalyzer{
		clippingThreshold: 0.99,
		silenceThreshold:  0.0001,
	}
}

// AnalysisResult contains the results of audio analysis.
type AnalysisResult struct {
	Samples        int
	Peak           float32
	PeakDB         float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NonFinite      int
	ZeroCrossings  int
	Silent         bool
}

// Clipping reports whether any sample reached the clipping threshold.
func (r AnalysisResult) Clipping() bool {
	return r.ClippedSamples > 0
}

// Add folds buffer into the running statistics.
func (a *AudioAnalyzer) Add(buffer []float32) {
	for _, sample := range buffer {
		if math.IsNaN(float64(sample)) || math.IsInf(float64(sample), 0) {
			a.nonFinite++
			continue
		}

		abs := sample
		if abs < 0 {
			abs = -abs
		}
		if abs > a.peak {
			a.peak = abs
		}
		if abs >= a.clippingThreshold {
			a.clipped++
		}

		if a.samples > 0 && (a.last < 0) != (sample < 0) {
			a.crossings++
		}
		a.last = sample

		a.sum += float64(sample)
		a.sumSquares += float64(sample) * float64(sample)
		a.samples++
	}
}

// Result returns the statistics accumulated so far.
func (a *AudioAnalyzer) Result() AnalysisResult {
	r := AnalysisResult{
		Samples:        a.samples,
		Peak:           a.peak,
		PeakDB:         gain.LinearToDb32(a.peak),
		ClippedSamples: a.clipped,
		NonFinite:      a.nonFinite,
		ZeroCrossings:  a.crossings,
	}
	if a.samples > 0 {
		r.RMS = float32(math.Sqrt(a.sumSquares / float64(a.samples)))
		r.DC = float32(a.sum / float64(a.samples))
	}
	r.Silent = r.RMS < a.silenceThreshold
	return r
}

// Reset clears the accumulated statistics.
func (a *AudioAnalyzer) Reset() {
	*a = AudioAnalyzer{
		clippingThreshold: a.clippingThreshold,
		silenceThreshold:  a.silenceThreshold,
	}
}

// Analyze returns the statistics of a single buffer.
func Analyze(buffer []float32) AnalysisResult {
	a := NewAudioAnalyzer()
	a.Add(buffer)
	return a.Result()
}

// LogResult writes r to logger, escalating to warn on clipping and error on
// non-finite samples.
func LogResult(logger *Logger, name string, r AnalysisResult) {
	logger.Info("audio stats",
		"signal", name,
		"samples", r.Samples,
		"peak", r.Peak,
		"peak_db", r.PeakDB,
		"rms", r.RMS,
		"dc", r.DC,
		"silent", r.Silent)

	if r.Clipping() {
		logger.Warn("clipping detected", "signal", name, "samples", r.ClippedSamples)
	}
	if r.NonFinite > 0 {
		logger.Error("non-finite samples", "signal", name, "count", r.NonFinite)
	}
}
