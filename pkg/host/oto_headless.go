//go:build headless

package host

import (
	"context"
	"errors"
	"time"
)

// ErrNoAudioDevice is returned by outputs compiled out of headless builds.
var ErrNoAudioDevice = errors.New("audio output not available in headless build")

// OtoOutput is unavailable in headless builds.
type OtoOutput struct{}

// NewOtoOutput always fails in headless builds.
func NewOtoOutput(sampleRate int, latency time.Duration) (*OtoOutput, error) {
	return nil, ErrNoAudioDevice
}

// Play always fails in headless builds.
func (o *OtoOutput) Play(ctx context.Context, e *Engine) error {
	return ErrNoAudioDevice
}

// Close is a no-op.
func (o *OtoOutput) Close() error {
	return nil
}
