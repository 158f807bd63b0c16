//go:build !portaudio

package host

import (
	"context"
	"errors"
)

// PortAudioAvailable reports whether this build includes the PortAudio output.
const PortAudioAvailable = false

// PlayPortAudio is unavailable without the portaudio build tag.
func PlayPortAudio(ctx context.Context, e *Engine) error {
	return errors.New("portaudio output not built; rebuild with -tags portaudio")
}
