// Package gain provides amplitude and gain-related conversions.
package gain

import (
	"math"
)

// MinDB is the minimum dB value (effectively -infinity)
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// LinearToDb32 is the float32 version of LinearToDb.
func LinearToDb32(linear float32) float32 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * float32(math.Log10(float64(linear)))
}

// DbToLinear32 is the float32 version of DbToLinear.
func DbToLinear32(db float32) float32 {
	if db <= MinDB {
		return 0
	}
	return float32(math.Pow(10.0, float64(db)/20.0))
}

// ln(10)/20
const dbToExp = 0.11512925464970229

// DbToLinearFast converts decibels with a single exp and no MinDB floor check.
// Results are within float32 rounding of DbToLinear32 for finite input.
func DbToLinearFast(db float32) float32 {
	return float32(math.Exp(float64(db) * dbToExp))
}
