//go:build !rtmidi

package host

import (
	"errors"

	"github.com/justyntemme/tonefilter/pkg/framework/debug"
	"github.com/justyntemme/tonefilter/pkg/midi"
)

// LiveMIDIAvailable reports whether this build includes live MIDI input.
const LiveMIDIAvailable = false

// LiveInput is unavailable without the rtmidi build tag.
type LiveInput struct{}

// OpenLiveInput is unavailable without the rtmidi build tag.
func OpenLiveInput(pattern string, q *midi.Queue, logger *debug.Logger) (*LiveInput, error) {
	return nil, errors.New("live midi input not built; rebuild with -tags rtmidi")
}

// Close is a no-op.
func (li *LiveInput) Close() error {
	return nil
}
