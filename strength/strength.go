// Package strength maps an entropy estimate in bits to a strength label.
package strength

import "math"

// Strength is an ordered strength band.
type Strength int

const (
	NoCharacters Strength = iota
	VeryWeak
	Weak
	Medium
	Good
	Excellent
)

// Band lower bounds in bits. Each band is half-open: [lower, next lower).
const (
	WeakThreshold      = 25.0
	MediumThreshold    = 45.0
	GoodThreshold      = 65.0
	ExcellentThreshold = 85.0
)

var labels = [...]string{
	NoCharacters: "no characters",
	VeryWeak:     "Very Weak",
	Weak:         "Weak",
	Medium:       "Medium",
	Good:         "Good",
	Excellent:    "Excellent",
}

func (s Strength) String() string {
	if s < NoCharacters || s > Excellent {
		return "unknown"
	}
	return labels[s]
}

// Classify returns the band containing entropy. NaN and non-positive values
// mean there was nothing to measure.
func Classify(entropy float64) Strength {
	switch {
	case math.IsNaN(entropy) || entropy <= 0:
		return NoCharacters
	case entropy < WeakThreshold:
		return VeryWeak
	case entropy < MediumThreshold:
		return Weak
	case entropy < GoodThreshold:
		return Medium
	case entropy < ExcellentThreshold:
		return Good
	default:
		return Excellent
	}
}

// Provenance says where an entropy value came from.
type Provenance int

const (
	// Actual is the closed-form entropy of the password itself.
	Actual Provenance = iota
	// Model is the regression model's prediction.
	Model
)

func (p Provenance) String() string {
	if p == Model {
		return "model"
	}
	return "actual"
}

// Label classifies entropy and renders the label, suffixed with
// " (by model)" for model predictions.
func Label(entropy float64, provenance Provenance) string {
	label := Classify(entropy).String()
	if provenance == Model {
		return label + " (by model)"
	}
	return label
}
