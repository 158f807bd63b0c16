package filter

import (
	"math"
	"testing"
)

func TestLowpassCoefficients(t *testing.T) {
	c := LowpassCoefficients(500, 1.0, 44100)

	omega := 2 * math.Pi * 500 / 44100
	if math.Abs(omega-0.0712) > 1e-4 {
		t.Fatalf("omega = %f, want ~0.0712", omega)
	}
	alpha := math.Sin(omega) / 2
	if math.Abs(alpha-0.0356) > 1e-4 {
		t.Fatalf("alpha = %f, want ~0.0356", alpha)
	}

	tests := []struct {
		name string
		got  float32
		want float64
	}{
		{"a0", c.A0, 1 + alpha},
		{"a1", c.A1, -2 * math.Cos(omega)},
		{"a2", c.A2, 1 - alpha},
		{"b0", c.B0, (1 - math.Cos(omega)) / 2},
		{"b1", c.B1, 1 - math.Cos(omega)},
		{"b2", c.B2, (1 - math.Cos(omega)) / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(float64(tt.got)-tt.want) > 1e-6 {
				t.Errorf("%s = %f, want %f", tt.name, tt.got, tt.want)
			}
		})
	}

	if math.Abs(float64(c.A0)-1.0356) > 1e-4 {
		t.Errorf("a0 = %f, want ~1.0356", c.A0)
	}
	if math.Abs(float64(c.A2)-0.9644) > 1e-4 {
		t.Errorf("a2 = %f, want ~0.9644", c.A2)
	}
	if c.B0 != c.B2 {
		t.Errorf("b0 (%v) and b2 (%v) should match", c.B0, c.B2)
	}
	if math.Abs(float64(c.B1-2*c.B0)) > 1e-9 {
		t.Errorf("b1 should be twice b0: %v vs %v", c.B1, c.B0)
	}
}

func TestLowpassDCGain(t *testing.T) {
	for _, init := range []float32{0, 0.5, -3} {
		lp := NewLowpass()
		lp.Recompute(500, 1.0, 44100)

		// Arbitrary history should not change the steady state.
		for i := 0; i < 4; i++ {
			lp.ProcessSample(0, init)
		}

		var y float32
		for i := 0; i < 44100; i++ {
			y = lp.ProcessSample(0, 1.0)
		}

		want := lp.Coefficients().DCGain()
		if math.Abs(float64(y-want)) > 1e-3 {
			t.Errorf("history %v: steady state %f, want %f", init, y, want)
		}
		if math.Abs(float64(want)-1) > 1e-3 {
			t.Errorf("lowpass DC gain should be ~1, got %f", want)
		}
	}
}

func TestLowpassReset(t *testing.T) {
	input := make([]float32, 256)
	for i := range input {
		input[i] = float32(math.Sin(float64(i) * 0.3))
	}

	lp := NewLowpass()
	lp.Recompute(2000, 0.707, 48000)

	first := append([]float32(nil), input...)
	lp.Process(first, 0)

	lp.Reset()
	second := append([]float32(nil), input...)
	lp.Process(second, 0)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs after reset: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestLowpassChannelIsolation(t *testing.T) {
	lp := NewLowpass()
	lp.Recompute(1000, 0.707, 44100)

	// Drive channel 0 hard, leave channel 1 silent.
	for i := 0; i < 100; i++ {
		lp.ProcessSample(0, 1.0)
		if y := lp.ProcessSample(1, 0); y != 0 {
			t.Fatalf("channel 1 leaked %v at sample %d", y, i)
		}
	}
}

func TestLowpassPassThroughDefault(t *testing.T) {
	lp := NewLowpass()
	for _, x := range []float32{0.1, -0.5, 0.9} {
		if y := lp.ProcessSample(0, x); y != x {
			t.Errorf("unconfigured filter changed %v to %v", x, y)
		}
	}
}

func TestLowpassFinite(t *testing.T) {
	lp := NewLowpass()
	lp.Recompute(1000, 1, 44100)
	if !lp.Finite() {
		t.Fatal("fresh filter should be finite")
	}

	lp.ProcessSample(1, float32(math.Inf(1)))
	if lp.Finite() {
		t.Error("Inf input should poison the history")
	}

	lp.Reset()
	if !lp.Finite() {
		t.Error("Reset should clear poisoned history")
	}
}

func BenchmarkLowpass(b *testing.B) {
	lp := NewLowpass()
	lp.Recompute(1000, 0.707, 44100)
	buffer := make([]float32, 512)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		lp.Process(buffer, 0)
	}
}
