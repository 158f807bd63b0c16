// Package process provides the block context handed to the audio processor.
package process

import (
	"github.com/justyntemme/tonefilter/pkg/dsp"
	"github.com/justyntemme/tonefilter/pkg/midi"
)

// Context carries one block of planar audio and its note events, with zero allocations.
//
// Buffer is processed in place: it holds the input when the block starts and the
// output when it ends. Events must be ordered by Offset.
type Context struct {
	Buffer     [][]float32
	Events     []midi.Event
	SampleRate float64

	// Pre-allocated storage that Buffer and Events slice into
	channels [][]float32
	events   []midi.Event
}

// NewContext creates a context with pre-allocated buffers
func NewContext(numChannels, maxBlockSize, maxEvents int) *Context {
	c := &Context{
		channels: make([][]float32, numChannels),
		Buffer:   make([][]float32, numChannels),
		events:   make([]midi.Event, 0, maxEvents),
	}
	for ch := range c.channels {
		c.channels[ch] = make([]float32, maxBlockSize)
	}
	c.Prepare(maxBlockSize)
	return c
}

// Prepare sizes Buffer to numSamples and drops the previous block's events.
// numSamples is capped at the maximum block size.
func (c *Context) Prepare(numSamples int) {
	for ch := range c.channels {
		if numSamples > len(c.channels[ch]) {
			numSamples = len(c.channels[ch])
		}
	}
	for ch := range c.channels {
		c.Buffer[ch] = c.channels[ch][:numSamples]
	}
	c.Events = c.events[:0]
}

// MaxBlockSize returns the largest block the context can hold.
func (c *Context) MaxBlockSize() int {
	if len(c.channels) == 0 {
		return 0
	}
	return len(c.channels[0])
}

// AddEvent appends an event if there is room; it never grows the storage.
func (c *Context) AddEvent(e midi.Event) bool {
	if len(c.Events) == cap(c.Events) {
		return false
	}
	c.Events = append(c.Events, e)
	return true
}

// NumSamples returns the number of samples to process
func (c *Context) NumSamples() int {
	if len(c.Buffer) > 0 {
		return len(c.Buffer[0])
	}
	return 0
}

// NumChannels returns the number of channels
func (c *Context) NumChannels() int {
	return len(c.Buffer)
}

// Clear zeros the buffers
func (c *Context) Clear() {
	for ch := range c.Buffer {
		dsp.Clear(c.Buffer[ch])
	}
}

// Interleave writes the planar buffer frame by frame into dst and returns the
// number of samples written.
func (c *Context) Interleave(dst []float32) int {
	channels := c.NumChannels()
	if channels == 0 {
		return 0
	}
	frames := c.NumSamples()
	if limit := len(dst) / channels; frames > limit {
		frames = limit
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			dst[i*channels+ch] = c.Buffer[ch][i]
		}
	}
	return frames * channels
}

// Deinterleave loads frame-ordered samples into the planar buffer.
func (c *Context) Deinterleave(src []float32) {
	channels := c.NumChannels()
	if channels == 0 {
		return
	}
	frames := c.NumSamples()
	if limit := len(src) / channels; frames > limit {
		frames = limit
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			c.Buffer[ch][i] = src[i*channels+ch]
		}
	}
}
