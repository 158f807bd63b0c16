package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestMeterBar(t *testing.T) {
	tests := []struct {
		name string
		db   float32
		fill int
	}{
		{"Silence", -200, 0},
		{"Floor", -60, 0},
		{"Half", -30, 14},
		{"Full", 0, 28},
		{"Over", 6, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := meterBar(tt.db, 40)
			if len(bar) != 40 {
				t.Errorf("len = %d, want 40: %q", len(bar), bar)
			}
			if got := strings.Count(bar, "#"); got != tt.fill {
				t.Errorf("fill = %d, want %d: %q", got, tt.fill, bar)
			}
		})
	}

	if bar := meterBar(-6, 5); strings.Contains(bar, "[") {
		t.Errorf("narrow meter should drop the bar: %q", bar)
	}
}

func TestWatchMeter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*meterInterval)
	defer cancel()

	var out bytes.Buffer
	if err := watchMeter(ctx, func() float32 { return -12 }, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "-12.0 dB") {
		t.Errorf("meter output %q", out.String())
	}
}
