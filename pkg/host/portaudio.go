//go:build portaudio

package host

import (
	"context"
	"fmt"

	pa "github.com/gordonklaus/portaudio"

	"github.com/justyntemme/tonefilter/pkg/dsp"
)

// PortAudioAvailable reports whether this build includes the PortAudio output.
const PortAudioAvailable = true

// PlayPortAudio streams e to the default PortAudio output with blocking writes
// until the engine is done or ctx is cancelled.
func PlayPortAudio(ctx context.Context, e *Engine) error {
	if err := pa.Initialize(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}
	defer pa.Terminate()

	blockSize := e.BlockSize()
	out := make([][]float32, dsp.Stereo)
	stream, err := pa.OpenDefaultStream(0, dsp.Stereo, e.SampleRate(), blockSize, &out)
	if err != nil {
		return fmt.Errorf("open portaudio stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start portaudio stream: %w", err)
	}
	defer stream.Stop()

	for ctx.Err() == nil && !e.Done() {
		planar := e.Process(blockSize)
		out[0], out[1] = planar[0], planar[1]
		if err := stream.Write(); err != nil {
			return fmt.Errorf("portaudio write: %w", err)
		}
	}
	return nil
}
