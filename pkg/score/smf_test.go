package score

import (
	"bytes"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/justyntemme/tonefilter/pkg/midi"
)

func TestLoadSMF(t *testing.T) {
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 127))
	tr.Add(0, gomidi.ControlChange(0, 7, 100))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Close(0)

	s := smf.New()
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	tl, err := LoadSMF(&buf, 48000)
	if err != nil {
		t.Fatal(err)
	}

	entries := tl.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want note on and note off only", entries)
	}
	on, off := entries[0], entries[1]
	if on.Frame != 0 || on.Event.Type != midi.EventTypeNoteOn || on.Event.Value != 1 {
		t.Errorf("note on = %+v", on)
	}
	if off.Event.Type != midi.EventTypeNoteOff || off.Frame <= 0 {
		t.Errorf("note off = %+v", off)
	}
}

func TestLoadSMFInvalid(t *testing.T) {
	if _, err := LoadSMF(bytes.NewReader([]byte("not a midi file")), 48000); err == nil {
		t.Error("expected error for invalid data")
	}
}
