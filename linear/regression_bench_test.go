package linear

import (
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// createBenchmarkData draws password-like lengths and noisy entropies.
func createBenchmarkData(rows int) (*mat.Dense, *mat.VecDense) {
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, 1, nil)
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		length := float64(4 + rng.IntN(20))
		X.Set(i, 0, length)
		y.SetVec(i, 4.7*length+rng.NormFloat64()*3)
	}
	return X, y
}

func BenchmarkLinearRegressionFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
	}{
		{"Small_100", 100},
		{"Medium_1000", 1000}, // parallel threshold
		{"Large_50000", 50000},
		{"XLarge_500000", 500000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLinearRegressionFitSequential(b *testing.B) {
	X, y := createBenchmarkData(50000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Fit(X, y, WithParallelThreshold(1<<30)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLinearRegressionPredict(b *testing.B) {
	X, y := createBenchmarkData(10000)
	lr, err := Fit(X, y)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := lr.Predict(X); err != nil {
			b.Fatal(err)
		}
	}
}
