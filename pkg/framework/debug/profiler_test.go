package debug

import (
	"strings"
	"testing"
	"time"
)

func TestProfiler(t *testing.T) {
	t.Run("Budget", func(t *testing.T) {
		if got := BlockBudget(48000, 480); got != 10*time.Millisecond {
			t.Errorf("BlockBudget = %v, want 10ms", got)
		}
		if got := BlockBudget(0, 480); got != 0 {
			t.Errorf("BlockBudget with zero rate = %v, want 0", got)
		}
	})

	t.Run("Statistics", func(t *testing.T) {
		p := NewProfiler(48000, 480, 16)
		p.Record(2 * time.Millisecond)
		p.Record(4 * time.Millisecond)
		p.Record(12 * time.Millisecond)

		s := p.Stats()
		if s.Count != 3 {
			t.Errorf("Count = %d, want 3", s.Count)
		}
		if s.Average != 6*time.Millisecond {
			t.Errorf("Average = %v, want 6ms", s.Average)
		}
		if s.Min != 2*time.Millisecond || s.Max != 12*time.Millisecond {
			t.Errorf("Min/Max = %v/%v", s.Min, s.Max)
		}
		if s.Overruns != 1 {
			t.Errorf("Overruns = %d, want 1", s.Overruns)
		}
		if load := p.Load(); load < 59.9 || load > 60.1 {
			t.Errorf("Load = %f, want 60", load)
		}
	})

	t.Run("Percentile", func(t *testing.T) {
		p := NewProfiler(48000, 480, 4)
		for _, ms := range []int{9, 1, 7, 3, 5} {
			p.Record(time.Duration(ms) * time.Millisecond)
		}
		// History of 4 keeps the last four timings: 1, 7, 3, 5.
		if got := p.Percentile(100); got != 7*time.Millisecond {
			t.Errorf("P100 = %v, want 7ms", got)
		}
		if got := p.Percentile(0); got != 1*time.Millisecond {
			t.Errorf("P0 = %v, want 1ms", got)
		}
	})

	t.Run("StartStop", func(t *testing.T) {
		p := NewProfiler(48000, 480, 8)
		start := p.Start()
		time.Sleep(time.Millisecond)
		p.Stop(start)

		if p.Stats().Last < time.Millisecond {
			t.Error("Timing seems too short")
		}
	})

	t.Run("ResetAndReport", func(t *testing.T) {
		p := NewProfiler(48000, 480, 8)
		if p.Report() != "No measurements recorded" {
			t.Error("empty profiler should report no measurements")
		}

		p.Record(time.Millisecond)
		if !strings.Contains(p.Report(), "Blocks:   1") {
			t.Errorf("unexpected report: %s", p.Report())
		}

		p.Reset()
		if s := p.Stats(); s.Count != 0 || s.Max != 0 {
			t.Errorf("Reset left %+v", s)
		}
		if p.Load() != 0 {
			t.Error("Reset should clear load")
		}
	})
}
