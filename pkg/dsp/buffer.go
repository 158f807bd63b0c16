package dsp

// Buffer utilities for common audio operations

// Clear zeroes a buffer - no allocations
func Clear(buffer []float32) {
	for i := range buffer {
		buffer[i] = 0
	}
}

// Peak returns the largest absolute sample value - no allocations
func Peak(buffer []float32) float32 {
	var peak float32
	for _, s := range buffer {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}
