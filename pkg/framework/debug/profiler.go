package debug

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler times block processing against the real-time budget of one block.
type Profiler struct {
	mu       sync.Mutex
	budget   time.Duration
	count    uint64
	total    time.Duration
	minTime  time.Duration
	maxTime  time.Duration
	lastTime time.Duration
	overruns uint64
	samples  []time.Duration
	index    int

	// loadBits holds the average load in hundredths of a percent.
	loadBits atomic.Uint64
}

// ProfileStats is a snapshot of a Profiler.
type ProfileStats struct {
	Count    uint64
	Budget   time.Duration
	Average  time.Duration
	Min      time.Duration
	Max      time.Duration
	Last     time.Duration
	Overruns uint64
}

// BlockBudget returns the wall-clock duration of blockSize frames.
func BlockBudget(sampleRate float64, blockSize int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(blockSize) / sampleRate * float64(time.Second))
}

// NewProfiler creates a profiler keeping the last history block timings.
func NewProfiler(sampleRate float64, blockSize, history int) *Profiler {
	if history < 1 {
		history = 1
	}
	return &Profiler{
		budget:  BlockBudget(sampleRate, blockSize),
		samples: make([]time.Duration, 0, history),
	}
}

// Start returns the start time of a block.
func (p *Profiler) Start() time.Time {
	return time.Now()
}

// Stop records the time elapsed since start.
func (p *Profiler) Stop(start time.Time) {
	p.Record(time.Since(start))
}

// Record adds one block timing.
func (p *Profiler) Record(elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.count == 0 || elapsed < p.minTime {
		p.minTime = elapsed
	}
	if elapsed > p.maxTime {
		p.maxTime = elapsed
	}
	p.count++
	p.total += elapsed
	p.lastTime = elapsed
	if p.budget > 0 && elapsed > p.budget {
		p.overruns++
	}

	if len(p.samples) < cap(p.samples) {
		p.samples = append(p.samples, elapsed)
	} else {
		p.samples[p.index] = elapsed
		p.index = (p.index + 1) % len(p.samples)
	}

	if p.budget > 0 {
		avg := p.total / time.Duration(p.count)
		p.loadBits.Store(uint64(float64(avg) / float64(p.budget) * 100 * 100))
	}
}

// Load returns the average processing time as a percentage of the budget.
// It is safe to call from any goroutine.
func (p *Profiler) Load() float64 {
	return float64(p.loadBits.Load()) / 100.0
}

// Stats returns a snapshot of the accumulated timings.
func (p *Profiler) Stats() ProfileStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := ProfileStats{
		Count:    p.count,
		Budget:   p.budget,
		Min:      p.minTime,
		Max:      p.maxTime,
		Last:     p.lastTime,
		Overruns: p.overruns,
	}
	if p.count > 0 {
		s.Average = p.total / time.Duration(p.count)
	}
	return s
}

// Percentile returns the pct-th percentile (0..100) of the retained timings.
func (p *Profiler) Percentile(pct float64) time.Duration {
	p.mu.Lock()
	sorted := slices.Clone(p.samples)
	p.mu.Unlock()

	if len(sorted) == 0 {
		return 0
	}
	slices.Sort(sorted)
	index := int(float64(len(sorted)-1) * pct / 100.0)
	return sorted[max(0, min(index, len(sorted)-1))]
}

// Reset clears all timings.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count, p.total, p.overruns = 0, 0, 0
	p.minTime, p.maxTime, p.lastTime = 0, 0, 0
	p.samples = p.samples[:0]
	p.index = 0
	p.loadBits.Store(0)
}

// Report generates a performance report.
func (p *Profiler) Report() string {
	s := p.Stats()
	if s.Count == 0 {
		return "No measurements recorded"
	}

	var sb strings.Builder
	sb.WriteString("Block Processing:\n")
	fmt.Fprintf(&sb, "  Blocks:   %d\n", s.Count)
	fmt.Fprintf(&sb, "  Budget:   %v\n", s.Budget)
	fmt.Fprintf(&sb, "  Average:  %v\n", s.Average)
	fmt.Fprintf(&sb, "  Min:      %v\n", s.Min)
	fmt.Fprintf(&sb, "  Max:      %v\n", s.Max)
	fmt.Fprintf(&sb, "  P99:      %v\n", p.Percentile(99))
	fmt.Fprintf(&sb, "  Overruns: %d\n", s.Overruns)
	fmt.Fprintf(&sb, "  Load:     %.2f%%\n", p.Load())
	return sb.String()
}

// Log writes the profiler summary to logger.
func (p *Profiler) Log(logger *Logger) {
	s := p.Stats()
	logger.Info("block timing",
		"blocks", s.Count,
		"budget", s.Budget,
		"avg", s.Average,
		"max", s.Max,
		"overruns", s.Overruns,
		"load_pct", p.Load())
}
