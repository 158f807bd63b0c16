// Package voice implements the note-driven tone generator.
package voice

import (
	"github.com/justyntemme/tonefilter/pkg/dsp"
	"github.com/justyntemme/tonefilter/pkg/dsp/oscillator"
	"github.com/justyntemme/tonefilter/pkg/framework/param"
	"github.com/justyntemme/tonefilter/pkg/midi"
)

// EnvelopeTimeMs is the ramp time of the amplitude envelope on every note change.
const EnvelopeTimeMs = dsp.EnvelopeMs

// State describes where a Mono voice is in its note lifecycle.
type State int

const (
	// Idle means no note is active and the voice is silent.
	Idle State = iota
	// Sounding means a note is held and the envelope heads to its velocity.
	Sounding
	// Releasing means the active note was released and the envelope heads to 0.
	Releasing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Sounding:
		return "Sounding"
	case Releasing:
		return "Releasing"
	default:
		return "Unknown"
	}
}

// noteSlot is an optional note number; valid distinguishes "no note" from note 0.
type noteSlot struct {
	note  uint8
	valid bool
}

// Mono is a monophonic sine voice with last-note priority.
//
// A new NoteOn always replaces the active note. NoteOff and PolyPressure only act
// on the active note; events for any other note are dropped. Mono is owned by the
// audio thread and is not safe for concurrent use.
type Mono struct {
	sampleRate float32
	active     noteSlot
	releasing  bool
	freq       float32
	osc        *oscillator.Oscillator
	envelope   *param.Smoother
}

// NewMono creates an idle voice.
func NewMono(sampleRate float32) *Mono {
	m := &Mono{
		sampleRate: sampleRate,
		osc:        oscillator.New(sampleRate),
		envelope:   param.NewSmoother(param.LinearStyle(EnvelopeTimeMs), 0),
	}
	m.Reset()
	return m
}

// SetSampleRate changes the sample rate used for phase and envelope timing.
func (m *Mono) SetSampleRate(sampleRate float32) {
	m.sampleRate = sampleRate
	m.osc.SetSampleRate(sampleRate)
}

// HandleEvent applies one note event to the state machine.
func (m *Mono) HandleEvent(e midi.Event) {
	switch e.Type {
	case midi.EventTypeNoteOn:
		m.active = noteSlot{note: e.Note, valid: true}
		m.releasing = false
		m.freq = midi.NoteToFrequency(e.Note)
		m.osc.SetFrequency(m.freq)
		m.envelope.SetTarget(e.Value, m.sampleRate)

	case midi.EventTypeNoteOff:
		if m.isActive(e.Note) {
			m.releasing = true
			m.envelope.SetTarget(0, m.sampleRate)
		}

	case midi.EventTypePolyPressure:
		if m.isActive(e.Note) {
			// Pressure above zero brings a releasing note back to sustain.
			if e.Value > 0 {
				m.releasing = false
			}
			m.envelope.SetTarget(e.Value, m.sampleRate)
		}
	}
}

func (m *Mono) isActive(note uint8) bool {
	return m.active.valid && m.active.note == note
}

// Next generates one enveloped sine sample.
func (m *Mono) Next() float32 {
	sample := m.osc.Sine() * m.envelope.Next()

	// A released note lets go of its id once the envelope is silent.
	if m.releasing && !m.envelope.IsSmoothing() && m.envelope.Current() == 0 {
		m.active = noteSlot{}
		m.releasing = false
	}
	return sample
}

// Reset returns the voice to its constructed state: phase and frequency at 0,
// no active note and a silent envelope.
func (m *Mono) Reset() {
	m.freq = 0
	m.osc.SetFrequency(0)
	m.osc.Reset()
	m.active = noteSlot{}
	m.releasing = false
	m.envelope.Reset(0)
}

// ActiveNote returns the active note and whether there is one.
func (m *Mono) ActiveNote() (uint8, bool) {
	return m.active.note, m.active.valid
}

// State returns the lifecycle state.
func (m *Mono) State() State {
	switch {
	case !m.active.valid:
		return Idle
	case m.releasing:
		return Releasing
	default:
		return Sounding
	}
}

// Frequency returns the frequency of the most recent note in Hz, or 0 before
// the first note and after Reset.
func (m *Mono) Frequency() float32 {
	return m.freq
}

// Envelope exposes the amplitude envelope for inspection.
func (m *Mono) Envelope() *param.Smoother {
	return m.envelope
}
