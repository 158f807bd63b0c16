package param

import (
	"math"
	"sync/atomic"
)

// Parameter is a control-thread handle on one processor setting.
//
// The plain value lives in a single atomic word so the control thread can write it
// while the audio thread reads it without locks. Relaxed visibility is sufficient:
// the audio thread picks up the newest value at its next block.
type Parameter struct {
	ID           uint32
	Name         string
	Unit         string
	Min          float32
	Max          float32
	DefaultValue float32 // plain
	Flags        uint32

	// Smoothing is the ramp the audio thread applies when the value changes.
	Smoothing SmoothingStyle

	// float32 bits of the plain value
	value atomic.Uint32
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsBypass    uint32 = 1 << 16
)

// Plain returns the current plain value.
func (p *Parameter) Plain() float32 {
	return math.Float32frombits(p.value.Load())
}

// SetPlain stores a plain value clamped to [Min, Max].
// Clamping here keeps out-of-range values (for example Q <= 0) away from the DSP core.
func (p *Parameter) SetPlain(plain float32) {
	if plain != plain { // NaN
		plain = p.DefaultValue
	}
	if plain < p.Min {
		plain = p.Min
	} else if plain > p.Max {
		plain = p.Max
	}
	p.value.Store(math.Float32bits(plain))
}

// Normalized returns the current value mapped to 0-1.
func (p *Parameter) Normalized() float64 {
	return p.Normalize(p.Plain())
}

// SetNormalized sets the value from a 0-1 normalized value.
func (p *Parameter) SetNormalized(normalized float64) {
	p.SetPlain(p.Denormalize(normalized))
}

// Bool reports whether a switch parameter is on.
func (p *Parameter) Bool() bool {
	return p.Plain() >= 0.5
}

// SetBool sets a switch parameter.
func (p *Parameter) SetBool(on bool) {
	if on {
		p.SetPlain(p.Max)
		return
	}
	p.SetPlain(p.Min)
}

// ResetToDefault restores the default plain value.
func (p *Parameter) ResetToDefault() {
	p.SetPlain(p.DefaultValue)
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float32) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := float64(plain-p.Min) / float64(p.Max-p.Min)
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float32 {
	return p.Min + float32(normalized)*(p.Max-p.Min)
}
