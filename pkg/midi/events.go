package midi

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

type EventType uint8

const (
	EventTypeNoteOff EventType = iota
	EventTypeNoteOn
	EventTypePolyPressure
)

func (t EventType) String() string {
	switch t {
	case EventTypeNoteOff:
		return "NoteOff"
	case EventTypeNoteOn:
		return "NoteOn"
	case EventTypePolyPressure:
		return "PolyPressure"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// Event is a decoded note event stamped with its sample position in a block.
// It is a plain value so event slices can be reused on the audio thread without
// boxing.
type Event struct {
	Offset  uint32
	Type    EventType
	Channel uint8
	Note    uint8
	// Velocity for NoteOn, pressure for PolyPressure, normalized to 0-1.
	Value float32
}

func NoteOn(offset uint32, note uint8, velocity float32) Event {
	return Event{Offset: offset, Type: EventTypeNoteOn, Note: note, Value: velocity}
}

func NoteOff(offset uint32, note uint8) Event {
	return Event{Offset: offset, Type: EventTypeNoteOff, Note: note}
}

func PolyPressure(offset uint32, note uint8, pressure float32) Event {
	return Event{Offset: offset, Type: EventTypePolyPressure, Note: note, Value: pressure}
}

func (e Event) String() string {
	switch e.Type {
	case EventTypeNoteOn:
		return fmt.Sprintf("NoteOn{ch:%d, note:%d, vel:%.3f, offset:%d}",
			e.Channel, e.Note, e.Value, e.Offset)
	case EventTypeNoteOff:
		return fmt.Sprintf("NoteOff{ch:%d, note:%d, offset:%d}",
			e.Channel, e.Note, e.Offset)
	case EventTypePolyPressure:
		return fmt.Sprintf("PolyPressure{ch:%d, note:%d, pressure:%.3f, offset:%d}",
			e.Channel, e.Note, e.Value, e.Offset)
	default:
		return fmt.Sprintf("%s{offset:%d}", e.Type, e.Offset)
	}
}

// SortByOffset orders events by sample offset, keeping arrival order for ties.
// It does not allocate. The host engine calls it after merging live and score
// events; the processor itself never sorts.
func SortByOffset(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
}

// NoteToFrequency returns the equal-tempered frequency of a MIDI note, A4 = 440 Hz.
func NoteToFrequency(note uint8) float32 {
	return float32(440.0 * math.Exp2((float64(note)-69.0)/12.0))
}

func NoteNumberToName(note uint8) string {
	noteNames := [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	octave := int(note/12) - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}
