package host

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/justyntemme/tonefilter/pkg/midi"
	"github.com/justyntemme/tonefilter/pkg/score"
)

func TestStream(t *testing.T) {
	tl := score.NewTimeline(testRate)
	tl.AddEvent(0, midi.NoteOn(0, 69, 1))
	tl.Extend(testBlock * 2)
	s := NewStream(newTestEngine(t, tl))

	// Odd-sized reads cross block boundaries.
	var all []byte
	p := make([]byte, 100)
	for {
		n, err := s.Read(p)
		all = append(all, p[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	if want := testBlock * 2 * 2 * 4; len(all) != want {
		t.Fatalf("read %d bytes, want %d", len(all), want)
	}

	var peak float32
	for i := 0; i < len(all); i += 4 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(all[i:]))
		if v != v {
			t.Fatalf("NaN at byte %d", i)
		}
		peak = max(peak, float32(math.Abs(float64(v))))
	}
	if peak == 0 {
		t.Error("stream carried only silence")
	}
}
