package process

import (
	"testing"

	"github.com/justyntemme/tonefilter/pkg/midi"
)

func TestContextPrepare(t *testing.T) {
	ctx := NewContext(2, 512, 4)
	if ctx.NumSamples() != 512 || ctx.NumChannels() != 2 {
		t.Fatalf("expected 2x512, got %dx%d", ctx.NumChannels(), ctx.NumSamples())
	}

	ctx.Prepare(128)
	if ctx.NumSamples() != 128 {
		t.Errorf("expected 128 samples, got %d", ctx.NumSamples())
	}

	ctx.Prepare(4096)
	if ctx.NumSamples() != 512 {
		t.Errorf("block size should cap at 512, got %d", ctx.NumSamples())
	}
}

func TestContextEvents(t *testing.T) {
	ctx := NewContext(2, 64, 2)

	if !ctx.AddEvent(midi.NoteOn(0, 60, 1)) || !ctx.AddEvent(midi.NoteOff(10, 60)) {
		t.Fatal("events within capacity should be accepted")
	}
	if ctx.AddEvent(midi.NoteOn(20, 62, 1)) {
		t.Error("event beyond capacity should be rejected")
	}
	if len(ctx.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(ctx.Events))
	}

	ctx.Prepare(64)
	if len(ctx.Events) != 0 {
		t.Error("Prepare should drop the previous block's events")
	}
}

func TestContextInterleave(t *testing.T) {
	ctx := NewContext(2, 3, 0)
	ctx.Buffer[0] = append(ctx.Buffer[0][:0], 1, 2, 3)
	ctx.Buffer[1] = append(ctx.Buffer[1][:0], -1, -2, -3)

	dst := make([]float32, 6)
	if n := ctx.Interleave(dst); n != 6 {
		t.Fatalf("expected 6 samples, got %d", n)
	}
	want := []float32{1, -1, 2, -2, 3, -3}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	ctx.Clear()
	ctx.Deinterleave(want)
	if ctx.Buffer[0][2] != 3 || ctx.Buffer[1][2] != -3 {
		t.Errorf("deinterleave mismatch: %v %v", ctx.Buffer[0], ctx.Buffer[1])
	}
}

func TestContextAllocations(t *testing.T) {
	ctx := NewContext(2, 256, 16)
	allocs := testing.AllocsPerRun(100, func() {
		ctx.Prepare(256)
		ctx.AddEvent(midi.NoteOn(3, 60, 1))
		ctx.Clear()
	})
	if allocs != 0 {
		t.Errorf("expected zero allocations, got %v", allocs)
	}
}
