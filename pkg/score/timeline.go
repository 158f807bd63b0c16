// Package score schedules note events and parameter changes on a sample clock
// and feeds them to the processor one block at a time.
package score

import (
	"fmt"
	"math"
	"sort"

	"github.com/justyntemme/tonefilter/pkg/framework/param"
	"github.com/justyntemme/tonefilter/pkg/framework/process"
	"github.com/justyntemme/tonefilter/pkg/midi"
)

// Kind distinguishes timeline entries.
type Kind int

const (
	// KindNote is a note event delivered sample-accurately.
	KindNote Kind = iota
	// KindParam is a parameter change applied at the start of the block it falls in.
	KindParam
)

// Entry is one scheduled action.
type Entry struct {
	Frame int64
	Kind  Kind
	Event midi.Event // KindNote; Offset is filled in per block
	Param string     // KindParam
	Value float32    // KindParam, plain value
}

// Timeline is an ordered list of entries at a fixed sample rate.
type Timeline struct {
	sampleRate float64
	entries    []Entry
	length     int64
}

// NewTimeline creates an empty timeline.
func NewTimeline(sampleRate float64) *Timeline {
	return &Timeline{sampleRate: sampleRate}
}

// SampleRate returns the rate frames are counted at.
func (t *Timeline) SampleRate() float64 {
	return t.sampleRate
}

// Frame converts seconds to a frame index.
func (t *Timeline) Frame(seconds float64) int64 {
	return int64(math.Round(seconds * t.sampleRate))
}

// AddEvent schedules a note event at frame.
func (t *Timeline) AddEvent(frame int64, e midi.Event) {
	e.Offset = 0
	t.add(Entry{Frame: frame, Kind: KindNote, Event: e})
}

// AddParam schedules a parameter change at frame.
func (t *Timeline) AddParam(frame int64, name string, value float32) {
	t.add(Entry{Frame: frame, Kind: KindParam, Param: name, Value: value})
}

func (t *Timeline) add(e Entry) {
	t.entries = append(t.entries, e)
	t.Extend(e.Frame)
}

// Extend makes the timeline at least frames long.
func (t *Timeline) Extend(frames int64) {
	if frames > t.length {
		t.length = frames
	}
}

// Length returns the frame count of the timeline.
func (t *Timeline) Length() int64 {
	return t.length
}

// Len returns the number of entries.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Entries returns the entries ordered by frame, keeping insertion order for ties.
func (t *Timeline) Entries() []Entry {
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].Frame < t.entries[j].Frame
	})
	return t.entries
}

// scheduled is an Entry with its parameter resolved.
type scheduled struct {
	Entry
	target *param.Parameter
}

// Player walks a timeline block by block.
type Player struct {
	entries []scheduled
	length  int64
	next    int
	frame   int64
	dropped int
}

// NewPlayer resolves every parameter name in t against registry.
func NewPlayer(t *Timeline, registry *param.Registry) (*Player, error) {
	entries := t.Entries()
	p := &Player{
		entries: make([]scheduled, len(entries)),
		length:  t.length,
	}
	for i, e := range entries {
		p.entries[i].Entry = e
		if e.Kind != KindParam {
			continue
		}
		target, ok := registry.Lookup(e.Param)
		if !ok {
			return nil, fmt.Errorf("frame %d: unknown parameter %q", e.Frame, e.Param)
		}
		p.entries[i].target = target
	}
	return p, nil
}

// Fill applies parameter changes and queues note events that fall inside the
// block ctx was prepared for, then advances the play position by one block.
// It does not allocate. Events are added after any already in ctx, so callers
// may only pre-load events at offset 0.
func (p *Player) Fill(ctx *process.Context) {
	end := p.frame + int64(ctx.NumSamples())
	for ; p.next < len(p.entries) && p.entries[p.next].Frame < end; p.next++ {
		e := &p.entries[p.next]
		if e.Kind == KindParam {
			e.target.SetPlain(e.Value)
			continue
		}

		ev := e.Event
		if e.Frame > p.frame {
			ev.Offset = uint32(e.Frame - p.frame)
		}
		if !ctx.AddEvent(ev) {
			p.dropped++
		}
	}
	p.frame = end
}

// Frame returns the first frame of the next block.
func (p *Player) Frame() int64 {
	return p.frame
}

// Done reports whether every entry was played and the length was reached.
func (p *Player) Done() bool {
	return p.next >= len(p.entries) && p.frame >= p.length
}

// Dropped returns how many note events did not fit in their block.
func (p *Player) Dropped() int {
	return p.dropped
}

// Rewind restarts playback from frame 0.
func (p *Player) Rewind() {
	p.next = 0
	p.frame = 0
	p.dropped = 0
}
