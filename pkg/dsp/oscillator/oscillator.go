// Package oscillator provides audio oscillators for synthesis
package oscillator

import "math"

// Oscillator is a phase-accumulator sine generator.
// The phase lives in [0, 1) and wraps by subtraction, so it never drifts.
type Oscillator struct {
	sampleRate float32
	frequency  float32
	phase      float32
	phaseInc   float32
}

// New creates a new oscillator at 440 Hz
func New(sampleRate float32) *Oscillator {
	o := &Oscillator{}
	o.SetSampleRate(sampleRate)
	o.SetFrequency(440.0)
	return o
}

// SetSampleRate updates the sample rate, keeping the current frequency.
func (o *Oscillator) SetSampleRate(sampleRate float32) {
	o.sampleRate = sampleRate
	o.SetFrequency(o.frequency)
}

// SetFrequency sets the oscillator frequency
func (o *Oscillator) SetFrequency(freq float32) {
	o.frequency = freq
	if o.sampleRate > 0 {
		o.phaseInc = freq / o.sampleRate
	}
}

// Frequency returns the oscillator frequency in Hz.
func (o *Oscillator) Frequency() float32 {
	return o.frequency
}

// Phase returns the current phase in [0, 1).
func (o *Oscillator) Phase() float32 {
	return o.phase
}

// Reset resets the oscillator phase to 0
func (o *Oscillator) Reset() {
	o.phase = 0.0
}

// Sine advances the phase and returns the sine of the new phase.
func (o *Oscillator) Sine() float32 {
	o.phase += o.phaseInc
	if o.phase >= 1.0 {
		o.phase -= 1.0
	}
	return float32(math.Sin(float64(o.phase) * 2.0 * math.Pi))
}

// ProcessSine fills buffer with sine wave - no allocations
func (o *Oscillator) ProcessSine(buffer []float32) {
	for i := range buffer {
		buffer[i] = o.Sine()
	}
}
