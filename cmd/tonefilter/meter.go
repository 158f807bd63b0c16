package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	meterFloorDB  = -60.0
	meterInterval = 50 * time.Millisecond
	defaultWidth  = 80
)

// terminalWidth returns the width of stderr, or defaultWidth when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stderr.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// meterBar draws a peak level as a bar of width cells followed by its dB value.
func meterBar(db float32, width int) string {
	label := fmt.Sprintf(" %6.1f dB", db)
	cells := width - len(label) - 2
	if cells < 1 {
		return label
	}

	fill := 0
	if db > meterFloorDB {
		fill = int(float32(cells) * (db - meterFloorDB) / -meterFloorDB)
	}
	fill = min(max(fill, 0), cells)
	return "[" + strings.Repeat("#", fill) + strings.Repeat(" ", cells-fill) + "]" + label
}

// watchMeter redraws the peak level on w until ctx is done.
func watchMeter(ctx context.Context, loadDB func() float32, w io.Writer) error {
	width := terminalWidth() - 1
	ticker := time.NewTicker(meterInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil
		case <-ticker.C:
			fmt.Fprintf(w, "\r%s", meterBar(loadDB(), width))
		}
	}
}
