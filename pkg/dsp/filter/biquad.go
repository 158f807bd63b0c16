// Package filter provides digital signal processing filters
package filter

import "math"

// MaxChannels is the number of independent channel histories a Lowpass keeps.
const MaxChannels = 2

// Coefficients holds un-normalized second-order IIR coefficients.
type Coefficients struct {
	A0, A1, A2 float32 // denominator
	B0, B1, B2 float32 // numerator
}

// LowpassCoefficients derives RBJ audio-EQ-cookbook lowpass coefficients.
// q must be positive; callers clamp it before it reaches the filter.
func LowpassCoefficients(cutoffHz, q, sampleRate float64) Coefficients {
	omega := 2.0 * math.Pi * cutoffHz / sampleRate
	sinOmega := math.Sin(omega)
	cosOmega := math.Cos(omega)
	alpha := sinOmega / (2.0 * q)

	return Coefficients{
		A0: float32(1.0 + alpha),
		A1: float32(-2.0 * cosOmega),
		A2: float32(1.0 - alpha),
		B0: float32((1.0 - cosOmega) / 2.0),
		B1: float32(1.0 - cosOmega),
		B2: float32((1.0 - cosOmega) / 2.0),
	}
}

// DCGain returns the steady-state response to a constant input.
func (c Coefficients) DCGain() float32 {
	return (c.B0 + c.B1 + c.B2) / (c.A0 + c.A1 + c.A2)
}

// channelState is the Direct Form I history of one channel.
type channelState struct {
	in1, in2   float32
	out1, out2 float32
}

// Lowpass is a stereo biquad lowpass.
// Direct Form I with a fixed per-channel history arena; every channel shares the
// same coefficients. Not safe for concurrent use.
type Lowpass struct {
	coeffs Coefficients
	state  [MaxChannels]channelState
}

// NewLowpass creates a lowpass that passes its input unchanged until coefficients
// are set.
func NewLowpass() *Lowpass {
	return &Lowpass{
		coeffs: Coefficients{A0: 1, B0: 1},
	}
}

// Recompute derives new coefficients. Call at most once per block.
func (l *Lowpass) Recompute(cutoffHz, q, sampleRate float32) {
	l.coeffs = LowpassCoefficients(float64(cutoffHz), float64(q), float64(sampleRate))
}

// Coefficients returns the active coefficients.
func (l *Lowpass) Coefficients() Coefficients {
	return l.coeffs
}

// ProcessSample filters one sample of channel ch - no allocations.
func (l *Lowpass) ProcessSample(ch int, x float32) float32 {
	s := &l.state[ch]
	c := &l.coeffs

	y := (c.B0*x + c.B1*s.in1 + c.B2*s.in2 - c.A1*s.out1 - c.A2*s.out2) / c.A0

	s.in2 = s.in1
	s.in1 = x
	s.out2 = s.out1
	s.out1 = y

	return y
}

// Process filters a whole buffer of one channel in place.
func (l *Lowpass) Process(buffer []float32, ch int) {
	for i, x := range buffer {
		buffer[i] = l.ProcessSample(ch, x)
	}
}

// Reset clears the history of every channel.
// Call when playback position jumps; never concurrently with ProcessSample.
func (l *Lowpass) Reset() {
	for i := range l.state {
		l.state[i] = channelState{}
	}
}

// Finite reports whether all history cells hold finite values.
// A non-finite input poisons the recursion until Reset is called.
func (l *Lowpass) Finite() bool {
	for i := range l.state {
		s := &l.state[i]
		if !finite(s.in1) || !finite(s.in2) || !finite(s.out1) || !finite(s.out2) {
			return false
		}
	}
	return true
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
