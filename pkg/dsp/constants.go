// Package dsp holds the ranges and defaults shared by the tone filter's DSP blocks.
package dsp

// Parameter ranges and defaults for the tone filter processor.
const (
	// Gain range (dB). Gain is stored as linear amplitude.
	MinGainDB     = -30.0
	MaxGainDB     = 30.0
	DefaultGainDB = 0.0

	// Cutoff frequency range (Hz)
	MinFrequency     = 20.0
	MaxFrequency     = 20000.0
	DefaultFrequency = 1000.0

	// Resonance (Q) range
	MinQ     = 0.1
	MaxQ     = 30.0
	DefaultQ = 0.707 // Butterworth response

	// Channel counts
	Mono   = 1
	Stereo = 2

	// Common sample rates
	SampleRate44k1 = 44100.0
	SampleRate48k  = 48000.0
	SampleRate96k  = 96000.0

	// Buffer sizes
	MinBufferSize     = 32
	DefaultBufferSize = 512
	MaxBufferSize     = 8192
)

// Smoothing times in milliseconds.
const (
	GainSmoothingMs      = 50.0
	CutoffSmoothingMs    = 20.0
	ResonanceSmoothingMs = 20.0
	EnvelopeMs           = 5.0
)
