package errors

import (
	"math"
)

// CheckNumericalStability returns a NumericalInstabilityError when any of
// values is NaN or Inf.
func CheckNumericalStability(operation string, values []float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values)
		}
	}
	return nil
}

// CheckMatrix scans a rows×cols matrix and reports the first non-finite
// values it finds (at most 10).
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	var unstableValues []float64

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstableValues = append(unstableValues, v)
				if len(unstableValues) >= 10 {
					break
				}
			}
		}
		if len(unstableValues) > 0 {
			break
		}
	}

	if len(unstableValues) > 0 {
		return NewNumericalInstabilityError(operation, unstableValues)
	}

	return nil
}
