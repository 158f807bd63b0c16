package score

import (
	"fmt"
	"io"
	"os"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/justyntemme/tonefilter/pkg/midi"
)

// LoadSMF reads a Standard MIDI File and schedules its note and poly-pressure
// messages from every track. Tempo changes are honored.
func LoadSMF(r io.Reader, sampleRate float64) (*Timeline, error) {
	t := NewTimeline(sampleRate)

	err := smf.ReadTracksFrom(r).Do(func(ev smf.TrackEvent) {
		e, ok := midi.FromMessage(gomidi.Message(ev.Message), 0)
		if !ok {
			return
		}
		t.AddEvent(t.Frame(float64(ev.AbsMicroSeconds)/1e6), e)
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("read smf: %w", err)
	}
	return t, nil
}

// LoadSMFFile reads a Standard MIDI File from path.
func LoadSMFFile(path string, sampleRate float64) (*Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open smf: %w", err)
	}
	defer f.Close()
	return LoadSMF(f, sampleRate)
}
