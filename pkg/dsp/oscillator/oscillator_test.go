package oscillator

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	t.Run("PhaseAdvancesBeforeSampling", func(t *testing.T) {
		o := New(4)
		o.SetFrequency(1) // quarter cycle per sample
		want := []float64{1, 0, -1, 0}
		for i, w := range want {
			got := o.Sine()
			if math.Abs(float64(got)-w) > 1e-6 {
				t.Errorf("sample %d: got %f, want %f", i, got, w)
			}
		}
	})

	t.Run("PhaseStaysInRange", func(t *testing.T) {
		o := New(44100)
		o.SetFrequency(12543.85) // G9
		for i := 0; i < 100000; i++ {
			o.Sine()
			if p := o.Phase(); p < 0 || p >= 1 {
				t.Fatalf("phase %v out of range at sample %d", p, i)
			}
		}
	})

	t.Run("Reset", func(t *testing.T) {
		o := New(44100)
		first := make([]float32, 64)
		o.ProcessSine(first)

		o.Reset()
		second := make([]float32, 64)
		o.ProcessSine(second)

		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("sample %d differs after reset", i)
			}
		}
	})

	t.Run("SampleRateChangeKeepsFrequency", func(t *testing.T) {
		o := New(44100)
		o.SetFrequency(1000)
		o.SetSampleRate(48000)
		if o.Frequency() != 1000 {
			t.Errorf("frequency changed to %v", o.Frequency())
		}
	})
}
