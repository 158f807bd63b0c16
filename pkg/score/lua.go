package score

import (
	"context"
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/justyntemme/tonefilter/pkg/dsp/gain"
	"github.com/justyntemme/tonefilter/pkg/midi"
)

// Lua scores build a timeline by calling these globals, with times in seconds:
//
//	note_on(t, note [, velocity])   velocity 0..1, default 1
//	note_off(t, note)
//	pressure(t, note, value)        value 0..1
//	param(t, name, value)           plain value, e.g. param(1.5, "cutoff", 800)
//	gain_db(t, db)
//	bypass(t, on)
//	length(t)                       extend the render to t seconds
//
// Only the base, table, string and math libraries are available.

var luaLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// LoadLua runs a Lua score and returns the timeline it built.
func LoadLua(ctx context.Context, source string, sampleRate float64) (*Timeline, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	L.SetContext(ctx)

	for _, lib := range luaLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	t := NewTimeline(sampleRate)
	b := &luaBuilder{timeline: t}
	for name, fn := range map[string]lua.LGFunction{
		"note_on":  b.noteOn,
		"note_off": b.noteOff,
		"pressure": b.pressure,
		"param":    b.param,
		"gain_db":  b.gainDB,
		"bypass":   b.bypass,
		"length":   b.length,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	if err := L.DoString(source); err != nil {
		return nil, fmt.Errorf("lua score: %w", err)
	}
	return t, nil
}

// LoadLuaFile reads and runs a Lua score file.
func LoadLuaFile(ctx context.Context, path string, sampleRate float64) (*Timeline, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read score: %w", err)
	}
	return LoadLua(ctx, string(src), sampleRate)
}

type luaBuilder struct {
	timeline *Timeline
}

func (b *luaBuilder) frame(L *lua.LState) int64 {
	seconds := float64(L.CheckNumber(1))
	if seconds < 0 {
		L.ArgError(1, "time must not be negative")
	}
	return b.timeline.Frame(seconds)
}

func checkNote(L *lua.LState, n int) uint8 {
	note := L.CheckInt(n)
	if note < 0 || note > 127 {
		L.ArgError(n, "note must be in 0..127")
	}
	return uint8(note)
}

func checkUnit(L *lua.LState, n int, v lua.LNumber) float32 {
	if v < 0 || v > 1 {
		L.ArgError(n, "value must be in 0..1")
	}
	return float32(v)
}

func (b *luaBuilder) noteOn(L *lua.LState) int {
	frame := b.frame(L)
	note := checkNote(L, 2)
	velocity := checkUnit(L, 3, L.OptNumber(3, 1))
	b.timeline.AddEvent(frame, midi.NoteOn(0, note, velocity))
	return 0
}

func (b *luaBuilder) noteOff(L *lua.LState) int {
	frame := b.frame(L)
	b.timeline.AddEvent(frame, midi.NoteOff(0, checkNote(L, 2)))
	return 0
}

func (b *luaBuilder) pressure(L *lua.LState) int {
	frame := b.frame(L)
	note := checkNote(L, 2)
	value := checkUnit(L, 3, L.CheckNumber(3))
	b.timeline.AddEvent(frame, midi.PolyPressure(0, note, value))
	return 0
}

func (b *luaBuilder) param(L *lua.LState) int {
	frame := b.frame(L)
	b.timeline.AddParam(frame, L.CheckString(2), float32(L.CheckNumber(3)))
	return 0
}

func (b *luaBuilder) gainDB(L *lua.LState) int {
	frame := b.frame(L)
	b.timeline.AddParam(frame, "gain", gain.DbToLinear32(float32(L.CheckNumber(2))))
	return 0
}

func (b *luaBuilder) bypass(L *lua.LState) int {
	frame := b.frame(L)
	var v float32
	if L.CheckBool(2) {
		v = 1
	}
	b.timeline.AddParam(frame, "bypass", v)
	return 0
}

func (b *luaBuilder) length(L *lua.LState) int {
	b.timeline.Extend(b.frame(L))
	return 0
}
