package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// FromMessage decodes a raw MIDI message into an Event at the given offset.
// A note-on with velocity 0 is reported as a note-off. Messages other than notes
// and polyphonic aftertouch return false.
func FromMessage(msg gomidi.Message, offset uint32) (Event, bool) {
	var ch, key, val uint8

	switch {
	case msg.GetNoteStart(&ch, &key, &val):
		e := NoteOn(offset, key, float32(val)/127.0)
		e.Channel = ch
		return e, true
	case msg.GetNoteEnd(&ch, &key):
		e := NoteOff(offset, key)
		e.Channel = ch
		return e, true
	case msg.GetPolyAfterTouch(&ch, &key, &val):
		e := PolyPressure(offset, key, float32(val)/127.0)
		e.Channel = ch
		return e, true
	}
	return Event{}, false
}

// ToMessage encodes an Event back into a raw MIDI message.
func ToMessage(e Event) gomidi.Message {
	switch e.Type {
	case EventTypeNoteOn:
		return gomidi.NoteOn(e.Channel, e.Note, scale7(e.Value))
	case EventTypePolyPressure:
		return gomidi.PolyAfterTouch(e.Channel, e.Note, scale7(e.Value))
	default:
		return gomidi.NoteOff(e.Channel, e.Note)
	}
}

func scale7(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 127
	}
	return uint8(v*127.0 + 0.5)
}
