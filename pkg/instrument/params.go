package instrument

import (
	"fmt"

	"github.com/justyntemme/tonefilter/pkg/dsp"
	"github.com/justyntemme/tonefilter/pkg/dsp/gain"
	"github.com/justyntemme/tonefilter/pkg/framework/param"
)

// Parameter IDs
const (
	ParamGain uint32 = iota
	ParamCutoff
	ParamResonance
	ParamBypass
)

// Params are the control-thread handles of the processor. Every setter is a
// single atomic store and may be called while audio is running.
type Params struct {
	Gain      *param.Parameter
	Cutoff    *param.Parameter
	Resonance *param.Parameter
	Bypass    *param.Parameter

	registry *param.Registry
}

// NewParams builds the parameter set at its defaults.
func NewParams() *Params {
	p := &Params{
		Gain: param.New(ParamGain, "gain").
			Range(gain.DbToLinear32(dsp.MinGainDB), gain.DbToLinear32(dsp.MaxGainDB)).
			Default(gain.DbToLinear32(dsp.DefaultGainDB)).
			Smoothed(param.LogarithmicStyle(dsp.GainSmoothingMs)).
			Build(),
		Cutoff: param.New(ParamCutoff, "cutoff").
			Range(dsp.MinFrequency, dsp.MaxFrequency).
			Default(dsp.DefaultFrequency).
			Unit("Hz").
			Smoothed(param.LinearStyle(dsp.CutoffSmoothingMs)).
			Build(),
		Resonance: param.New(ParamResonance, "resonance").
			Range(dsp.MinQ, dsp.MaxQ).
			Default(dsp.DefaultQ).
			Smoothed(param.LinearStyle(dsp.ResonanceSmoothingMs)).
			Build(),
		Bypass: param.New(ParamBypass, "bypass").
			Toggle().
			Flags(param.CanAutomate | param.IsBypass).
			Build(),
		registry: param.NewRegistry(),
	}

	if err := p.registry.Add(p.Gain, p.Cutoff, p.Resonance, p.Bypass); err != nil {
		// IDs and names above are fixed and distinct.
		panic(fmt.Sprintf("instrument: %v", err))
	}
	return p
}

// Registry returns the parameters indexed by ID and name.
func (p *Params) Registry() *param.Registry {
	return p.registry
}

// SetGainDB sets the gain from a decibel value.
func (p *Params) SetGainDB(db float32) {
	p.Gain.SetPlain(gain.DbToLinearFast(db))
}

// GainDB returns the gain target in decibels.
func (p *Params) GainDB() float32 {
	return gain.LinearToDb32(p.Gain.Plain())
}

// SetBypass turns bypass on or off.
func (p *Params) SetBypass(on bool) {
	p.Bypass.SetBool(on)
}
