// Package features derives character-composition features and the
// closed-form entropy estimate from a password.
//
// Entropy is modelled as Length * log2(CharsetSize), where CharsetSize sums
// the sizes of the character classes present in the password. It is NaN for
// the empty password.
package features

import (
	"math"

	"github.com/fx-xf/bfte/core/parallel"
)

// parallelThreshold is the batch size below which ExtractAll stays on the
// calling goroutine.
const parallelThreshold = 4096

// Record holds the features of one password.
type Record struct {
	Password string

	Length     int
	NumDigits  int
	NumLower   int
	NumUpper   int
	NumSpecial int

	HasDigit   bool
	HasLower   bool
	HasUpper   bool
	HasSpecial bool

	CharsetSize int
	Entropy     float64
}

// Extract computes the features of password. Length counts Unicode code
// points; an invalid UTF-8 byte counts as one character and is Special.
func Extract(password string) Record {
	rec := Record{Password: password}
	for _, r := range password {
		rec.Length++
		switch ClassOf(r) {
		case Digit:
			rec.NumDigits++
		case Lower:
			rec.NumLower++
		case Upper:
			rec.NumUpper++
		default:
			rec.NumSpecial++
		}
	}

	rec.HasDigit = rec.NumDigits > 0
	rec.HasLower = rec.NumLower > 0
	rec.HasUpper = rec.NumUpper > 0
	rec.HasSpecial = rec.NumSpecial > 0

	rec.CharsetSize = CharsetSize(rec.HasDigit, rec.HasLower, rec.HasUpper, rec.HasSpecial)
	rec.Entropy = EntropyOf(rec.Length, rec.CharsetSize)
	return rec
}

// ExtractAll extracts every password, preserving order. Large batches are
// spread across CPU cores.
func ExtractAll(passwords []string) []Record {
	records := make([]Record, len(passwords))
	parallel.ParallelizeWithThreshold(len(passwords), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			records[i] = Extract(passwords[i])
		}
	})
	return records
}

// CharsetSize sums the class sizes of the present classes.
func CharsetSize(hasDigit, hasLower, hasUpper, hasSpecial bool) int {
	size := 0
	if hasDigit {
		size += Digit.Size()
	}
	if hasLower {
		size += Lower.Size()
	}
	if hasUpper {
		size += Upper.Size()
	}
	if hasSpecial {
		size += Special.Size()
	}
	return size
}

// EntropyOf returns length*log2(charset), or NaN when charset is not
// positive.
func EntropyOf(length, charset int) float64 {
	if charset <= 0 {
		return math.NaN()
	}
	return float64(length) * math.Log2(float64(charset))
}

// Classes returns the classes present in the record, in canonical order.
func (r Record) Classes() []Class {
	var classes []Class
	for _, c := range AllClasses {
		if r.Has(c) {
			classes = append(classes, c)
		}
	}
	return classes
}

// Has reports whether class c occurs in the password.
func (r Record) Has(c Class) bool {
	switch c {
	case Digit:
		return r.HasDigit
	case Lower:
		return r.HasLower
	case Upper:
		return r.HasUpper
	case Special:
		return r.HasSpecial
	}
	return false
}
