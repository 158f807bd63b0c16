// Package param provides parameter management for the tone filter processor.
package param

import (
	"math"
)

// SmoothingKind selects how a Smoother interpolates towards its target.
type SmoothingKind int

const (
	// Linear advances by equal absolute increments.
	Linear SmoothingKind = iota
	// Logarithmic advances by equal ratio increments (gain-like quantities).
	Logarithmic
)

// String returns the name of the smoothing kind.
func (k SmoothingKind) String() string {
	switch k {
	case Linear:
		return "Linear"
	case Logarithmic:
		return "Logarithmic"
	default:
		return "Unknown"
	}
}

// SmoothingStyle pairs a smoothing kind with its ramp time in milliseconds.
type SmoothingStyle struct {
	Kind   SmoothingKind
	TimeMs float32
}

// LinearStyle returns a linear smoothing style lasting timeMs.
func LinearStyle(timeMs float32) SmoothingStyle {
	return SmoothingStyle{Kind: Linear, TimeMs: timeMs}
}

// LogarithmicStyle returns a logarithmic smoothing style lasting timeMs.
func LogarithmicStyle(timeMs float32) SmoothingStyle {
	return SmoothingStyle{Kind: Logarithmic, TimeMs: timeMs}
}

// StepsFor returns the number of Next calls a ramp of timeMs takes at sampleRate.
func StepsFor(timeMs, sampleRate float32) int {
	steps := math.Ceil(float64(timeMs) * float64(sampleRate) / 1000.0)
	if steps <= 0 || math.IsNaN(steps) {
		return 0
	}
	return int(steps)
}

// Smoother turns step changes of a control value into a ramp to prevent zipper noise.
//
// A Smoother has exactly one owner that calls Next at a fixed cadence (once per
// sample or once per block). Mixing cadences on one instance changes the ramp time.
// It is not safe for concurrent use; cross-thread handoff goes through Parameter.
type Smoother struct {
	style   SmoothingStyle
	current float32
	target  float32

	// steps is the number of Next calls left until current == target.
	steps int
	// step is an increment for linear ramps and a ratio for logarithmic ramps.
	step        float32
	logarithmic bool
}

// NewSmoother creates a smoother resting at initial.
func NewSmoother(style SmoothingStyle, initial float32) *Smoother {
	return &Smoother{
		style:   style,
		current: initial,
		target:  initial,
	}
}

// Style returns the smoothing style.
func (s *Smoother) Style() SmoothingStyle {
	return s.style
}

// SetTarget starts a ramp to target lasting the style's ramp time.
func (s *Smoother) SetTarget(target, sampleRate float32) {
	s.SetTargetOver(target, s.style.TimeMs, sampleRate)
}

// SetTargetOver starts a ramp from the current value to target that completes after
// ceil(timeMs*sampleRate/1000) calls to Next.
func (s *Smoother) SetTargetOver(target, timeMs, sampleRate float32) {
	s.target = target
	s.steps = StepsFor(timeMs, sampleRate)
	if s.steps == 0 {
		s.current = target
		return
	}

	// log(0) is undefined, so non-positive endpoints fall back to linear steps.
	s.logarithmic = s.style.Kind == Logarithmic && s.current > 0 && target > 0
	if s.logarithmic {
		ratio := float64(target) / float64(s.current)
		s.step = float32(math.Pow(ratio, 1.0/float64(s.steps)))
	} else {
		s.step = (target - s.current) / float32(s.steps)
	}
}

// Next advances the ramp by one step and returns the new value.
// Once the target is reached every call returns the target unchanged.
func (s *Smoother) Next() float32 {
	if s.steps == 0 {
		return s.current
	}

	s.steps--
	switch {
	case s.steps == 0:
		s.current = s.target
	case s.logarithmic:
		s.current *= s.step
	default:
		s.current += s.step
	}
	return s.current
}

// Process multiplies a buffer through the callback, advancing once per sample.
func (s *Smoother) Process(buffer []float32, callback func(value, sample float32) float32) {
	for i := range buffer {
		buffer[i] = callback(s.Next(), buffer[i])
	}
}

// Current returns the most recent value without advancing.
func (s *Smoother) Current() float32 {
	return s.current
}

// Target returns the value the ramp converges to.
func (s *Smoother) Target() float32 {
	return s.target
}

// Steps returns the number of Next calls remaining in the current ramp.
func (s *Smoother) Steps() int {
	return s.steps
}

// IsSmoothing returns true while a ramp is in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.steps > 0
}

// Reset jumps to value and cancels any ramp in progress.
func (s *Smoother) Reset(value float32) {
	s.current = value
	s.target = value
	s.steps = 0
	s.step = 0
}
