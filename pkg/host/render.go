package host

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/justyntemme/tonefilter/pkg/dsp"
	"github.com/justyntemme/tonefilter/pkg/framework/debug"
)

// WAVBitDepth is the sample depth of rendered files.
const WAVBitDepth = 16

const wavFormatPCM = 1

// RenderWAV renders frames of audio from e into a 16-bit stereo WAV file.
// When analyzer is non-nil every rendered block is folded into it.
func RenderWAV(ctx context.Context, w io.WriteSeeker, e *Engine, frames int64, analyzer *debug.AudioAnalyzer) error {
	sampleRate := int(e.SampleRate())
	enc := wav.NewEncoder(w, sampleRate, WAVBitDepth, dsp.Stereo, wavFormatPCM)

	blockSize := e.BlockSize()
	interleaved := make([]float32, blockSize*dsp.Stereo)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: dsp.Stereo, SampleRate: sampleRate},
		Data:           make([]int, blockSize*dsp.Stereo),
		SourceBitDepth: WAVBitDepth,
	}

	for rendered := int64(0); rendered < frames; {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("render interrupted at frame %d: %w", rendered, err)
		}

		n := int(min(int64(blockSize), frames-rendered))
		samples := e.ProcessInterleaved(interleaved[:n*dsp.Stereo])
		if analyzer != nil {
			analyzer.Add(interleaved[:samples])
		}

		for i, v := range interleaved[:samples] {
			buf.Data[i] = quantize16(v)
		}
		buf.Data = buf.Data[:samples]
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("write wav: %w", err)
		}
		buf.Data = buf.Data[:cap(buf.Data)]

		rendered += int64(n)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav: %w", err)
	}
	return nil
}

// quantize16 converts a float sample to a clipped 16-bit integer.
func quantize16(v float32) int {
	if v != v {
		return 0
	}
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(math.Round(float64(v) * math.MaxInt16))
}
