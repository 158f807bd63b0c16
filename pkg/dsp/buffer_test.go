package dsp

import "testing"

func TestClear(t *testing.T) {
	buffer := []float32{1, -2, 3}
	Clear(buffer)
	for i, v := range buffer {
		if v != 0 {
			t.Errorf("buffer[%d] = %f, want 0", i, v)
		}
	}
}

func TestPeak(t *testing.T) {
	tests := []struct {
		name   string
		buffer []float32
		want   float32
	}{
		{"Empty", nil, 0},
		{"Positive", []float32{0.1, 0.5, 0.2}, 0.5},
		{"Negative", []float32{0.1, -0.9, 0.2}, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Peak(tt.buffer); got != tt.want {
				t.Errorf("Peak = %f, want %f", got, tt.want)
			}
		})
	}
}

func BenchmarkPeak(b *testing.B) {
	buffer := make([]float32, DefaultBufferSize)
	for i := range buffer {
		buffer[i] = float32(i%7) - 3
	}
	b.SetBytes(int64(len(buffer) * 4))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Peak(buffer)
	}
}
