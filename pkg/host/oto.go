//go:build !headless

package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/justyntemme/tonefilter/pkg/dsp"
)

// OtoOutput plays an engine through the system audio device.
type OtoOutput struct {
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

// NewOtoOutput opens the audio device at sampleRate. Only one may exist per process.
func NewOtoOutput(sampleRate int, latency time.Duration) (*OtoOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: dsp.Stereo,
		Format:       oto.FormatFloat32LE,
		BufferSize:   latency,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	return &OtoOutput{ctx: ctx}, nil
}

// Play streams e until the engine is done or ctx is cancelled.
func (o *OtoOutput) Play(ctx context.Context, e *Engine) error {
	o.mutex.Lock()
	o.player = o.ctx.NewPlayer(NewStream(e))
	o.player.Play()
	player := o.player
	o.mutex.Unlock()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return o.Close()
		case <-ticker.C:
			if !player.IsPlaying() {
				if err := player.Err(); err != nil {
					return fmt.Errorf("playback: %w", err)
				}
				return o.Close()
			}
		}
	}
}

// Close stops playback.
func (o *OtoOutput) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}
