package score

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justyntemme/tonefilter/pkg/midi"
)

const arpeggio = `
local notes = {57, 60, 64}
for i, n in ipairs(notes) do
  local t = (i - 1) * 0.5
  note_on(t, n, 0.8)
  note_off(t + 0.25, n)
end
pressure(0.1, 57, 0.5)
param(0.5, "cutoff", 800)
gain_db(1.0, -6)
bypass(1.25, true)
length(2)
`

func TestLoadLua(t *testing.T) {
	tl, err := LoadLua(context.Background(), arpeggio, 1000)
	if err != nil {
		t.Fatal(err)
	}

	if tl.Length() != 2000 {
		t.Errorf("Length = %d, want 2000", tl.Length())
	}
	if tl.Len() != 10 {
		t.Fatalf("Len = %d, want 10", tl.Len())
	}

	entries := tl.Entries()
	first := entries[0]
	if first.Frame != 0 || first.Event.Type != midi.EventTypeNoteOn || first.Event.Note != 57 {
		t.Errorf("first entry = %+v", first)
	}
	if math.Abs(float64(first.Event.Value-0.8)) > 1e-6 {
		t.Errorf("velocity = %f, want 0.8", first.Event.Value)
	}

	var gainEntry, bypassEntry *Entry
	for i := range entries {
		switch entries[i].Param {
		case "gain":
			gainEntry = &entries[i]
		case "bypass":
			bypassEntry = &entries[i]
		}
	}
	if gainEntry == nil || math.Abs(float64(gainEntry.Value)-0.5012) > 1e-3 {
		t.Errorf("gain_db(-6) entry = %+v", gainEntry)
	}
	if bypassEntry == nil || bypassEntry.Value != 1 || bypassEntry.Frame != 1250 {
		t.Errorf("bypass entry = %+v", bypassEntry)
	}
}

func TestLoadLuaErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"Syntax", "note_on(", "lua score"},
		{"NegativeTime", "note_on(-1, 60)", "time must not be negative"},
		{"NoteRange", "note_on(0, 128)", "note must be in 0..127"},
		{"VelocityRange", "note_on(0, 60, 2)", "value must be in 0..1"},
		{"NoOS", "os.exit(1)", "lua score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLua(context.Background(), tt.src, 1000)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadLuaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := LoadLua(ctx, "while true do end", 1000); err == nil {
		t.Error("cancelled context should stop the script")
	}
}

func TestLoadLuaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "score.lua")
	if err := os.WriteFile(path, []byte(`note_on(0, 69)`), 0o644); err != nil {
		t.Fatal(err)
	}

	tl, err := LoadLuaFile(context.Background(), path, 48000)
	if err != nil {
		t.Fatal(err)
	}
	if tl.Len() != 1 || tl.Entries()[0].Event.Value != 1 {
		t.Errorf("entries = %+v", tl.Entries())
	}

	if _, err := LoadLuaFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"), 48000); err == nil {
		t.Error("expected error for missing file")
	}
}
