package host

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/justyntemme/tonefilter/pkg/dsp"
)

// Stream adapts an Engine to an io.Reader of interleaved float32 little-endian
// stereo frames, the format audio players pull from.
type Stream struct {
	engine      *Engine
	interleaved []float32
	buf         []byte
	pending     []byte
}

// NewStream creates a stream rendering one engine block at a time.
func NewStream(e *Engine) *Stream {
	samples := e.BlockSize() * dsp.Stereo
	return &Stream{
		engine:      e,
		interleaved: make([]float32, samples),
		buf:         make([]byte, samples*4),
	}
}

// Read fills p with rendered audio. It returns io.EOF once the engine is done
// and every rendered byte has been read.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			if s.engine.Done() {
				break
			}
			s.fill()
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (s *Stream) fill() {
	samples := s.engine.ProcessInterleaved(s.interleaved)
	for i, v := range s.interleaved[:samples] {
		binary.LittleEndian.PutUint32(s.buf[i*4:], math.Float32bits(v))
	}
	s.pending = s.buf[:samples*4]
}
