//go:build rtmidi

package host

import (
	"fmt"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/justyntemme/tonefilter/pkg/framework/debug"
	"github.com/justyntemme/tonefilter/pkg/midi"
)

// LiveMIDIAvailable reports whether this build includes live MIDI input.
const LiveMIDIAvailable = true

// LiveInput forwards note messages from a hardware MIDI port into a Queue.
type LiveInput struct {
	mu     sync.Mutex
	drv    *rtmididrv.Driver
	in     drivers.In
	stopFn func()
	queue  *midi.Queue
	logger *debug.Logger
}

// OpenLiveInput connects to the first input port whose name contains pattern
// (case-insensitive). An empty pattern picks the first port.
func OpenLiveInput(pattern string, q *midi.Queue, logger *debug.Logger) (*LiveInput, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	ins, err := drv.Ins()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("list midi inputs: %w", err)
	}
	var found drivers.In
	for _, in := range ins {
		if pattern == "" || strings.Contains(strings.ToLower(in.String()), strings.ToLower(pattern)) {
			found = in
			break
		}
	}
	if found == nil {
		drv.Close()
		return nil, fmt.Errorf("no midi input matching %q", pattern)
	}
	if err := found.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("open %q: %w", found.String(), err)
	}

	li := &LiveInput{drv: drv, in: found, queue: q, logger: logger}
	stop, err := gomidi.ListenTo(found, li.receive, gomidi.HandleError(func(listenErr error) {
		logger.Warn("midi listener error", "device", found.String(), "err", listenErr)
	}))
	if err != nil {
		_ = found.Close()
		drv.Close()
		return nil, fmt.Errorf("listen %q: %w", found.String(), err)
	}
	li.stopFn = stop

	logger.Info("midi connected", "device", found.String())
	return li, nil
}

func (li *LiveInput) receive(msg gomidi.Message, _ int32) {
	e, ok := midi.FromMessage(msg, 0)
	if !ok {
		li.logger.Debug("midi unhandled message", "msg", msg.String())
		return
	}
	if !li.queue.Push(e) {
		li.logger.Warn("midi queue full, event dropped", "event", e.String())
	}
}

// Close stops listening and releases the driver.
func (li *LiveInput) Close() error {
	li.mu.Lock()
	defer li.mu.Unlock()

	if li.stopFn != nil {
		li.stopFn()
		li.stopFn = nil
	}
	var err error
	if li.in != nil {
		err = li.in.Close()
		li.in = nil
	}
	li.drv.Close()
	return err
}
