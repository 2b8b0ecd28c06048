package linear

import (
	"bytes"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/fx-xf/bfte/pkg/errors"
	"github.com/fx-xf/bfte/pkg/log"
)

// lengthData returns lengths 1..m and targets 5x+6.
func lengthData(m int) (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(m, 1, nil)
	y := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		x := float64(i + 1)
		X.Set(i, 0, x)
		y.SetVec(i, 5*x+6)
	}
	return X, y
}

func TestFitRecoversLine(t *testing.T) {
	X, y := lengthData(50)

	lr, err := Fit(X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	w, err := lr.Weights()
	if err != nil {
		t.Fatal(err)
	}
	if len(w) != 2 {
		t.Fatalf("expected 2 weights, got %d", len(w))
	}
	if math.Abs(w[0]-5) > 1e-9 || math.Abs(w[1]-6) > 1e-9 {
		t.Errorf("weights = %v, want [5 6]", w)
	}
	if lr.Intercept() != w[1] || lr.Coef()[0] != w[0] {
		t.Errorf("Coef/Intercept disagree with Weights: %v %v %v", lr.Coef(), lr.Intercept(), w)
	}
}

func TestFitMultipleFeatures(t *testing.T) {
	X := mat.NewDense(6, 2, []float64{
		1, 1,
		2, 1,
		3, 2,
		4, 3,
		5, 5,
		6, 8,
	})
	y := mat.NewVecDense(6, nil)
	for i := 0; i < 6; i++ {
		y.SetVec(i, 2*X.At(i, 0)-3*X.At(i, 1)+4)
	}

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	w, _ := lr.Weights()
	want := []float64{2, -3, 4}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-8 {
			t.Errorf("w[%d] = %v, want %v", i, w[i], want[i])
		}
	}
	if lr.NFeatures() != 2 {
		t.Errorf("NFeatures() = %d, want 2", lr.NFeatures())
	}
}

func TestPredictMatchesManualProduct(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{3, 8, 11, 4, 16})
	y := mat.NewVecDense(5, []float64{14.1, 37.6, 50.3, 19.8, 77.2})

	lr, err := Fit(X, y)
	if err != nil {
		t.Fatal(err)
	}
	w, _ := lr.Weights()

	xNew := mat.NewDense(3, 1, []float64{1, 9, 27})
	got, err := lr.Predict(xNew)
	if err != nil {
		t.Fatal(err)
	}

	xAug := mat.NewDense(3, 2, []float64{1, 1, 9, 1, 27, 1})
	var want mat.VecDense
	want.MulVec(xAug, mat.NewVecDense(2, w))

	for i := 0; i < 3; i++ {
		if math.Float64bits(got.AtVec(i)) != math.Float64bits(want.AtVec(i)) {
			t.Errorf("row %d: Predict=%v, X'w=%v", i, got.AtVec(i), want.AtVec(i))
		}
	}
}

func TestNotFitted(t *testing.T) {
	lr := NewLinearRegression()

	var nf *errors.NotFittedError
	if _, err := lr.Predict(mat.NewDense(1, 1, []float64{4})); !errors.As(err, &nf) {
		t.Errorf("Predict: expected NotFittedError, got %v", err)
	}
	if _, err := lr.Weights(); !errors.As(err, &nf) {
		t.Errorf("Weights: expected NotFittedError, got %v", err)
	}
	if _, err := lr.ExportWeights(); !errors.As(err, &nf) {
		t.Errorf("ExportWeights: expected NotFittedError, got %v", err)
	}
	if lr.Coef() != nil || lr.Intercept() != 0 || lr.IsFitted() {
		t.Error("unfitted model reports coefficients")
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name  string
		X     mat.Matrix
		y     mat.Vector
		check func(error) bool
	}{
		{
			name: "row mismatch",
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewVecDense(2, []float64{1, 2}),
			check: func(err error) bool {
				var de *errors.DimensionError
				return errors.As(err, &de) && de.Axis == 0
			},
		},
		{
			name: "constant zero feature",
			X:    mat.NewDense(3, 1, []float64{0, 0, 0}),
			y:    mat.NewVecDense(3, []float64{1, 2, 3}),
			check: func(err error) bool {
				return errors.Is(err, errors.ErrSingularMatrix)
			},
		},
		{
			name: "all-zero column",
			X:    mat.NewDense(3, 2, []float64{1, 0, 2, 0, 3, 0}),
			y:    mat.NewVecDense(3, []float64{1, 2, 3}),
			check: func(err error) bool {
				return errors.Is(err, errors.ErrSingularMatrix)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLinearRegression()
			err := lr.Fit(tt.X, tt.y)
			if err == nil || !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
			if lr.IsFitted() {
				t.Error("failed fit marked the model fitted")
			}
		})
	}
}

func TestFailedRefitKeepsWeights(t *testing.T) {
	X, y := lengthData(10)
	lr, err := Fit(X, y)
	if err != nil {
		t.Fatal(err)
	}
	before, _ := lr.Weights()

	if err := lr.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewVecDense(3, nil)); err == nil {
		t.Fatal("expected dimension error")
	}
	if err := lr.Fit(mat.NewDense(3, 1, []float64{0, 0, 0}), mat.NewVecDense(3, []float64{1, 2, 3})); err == nil {
		t.Fatal("expected singular matrix error")
	}

	after, _ := lr.Weights()
	if before[0] != after[0] || before[1] != after[1] {
		t.Errorf("weights changed after failed fit: %v -> %v", before, after)
	}
}

func TestFitRejectsNonFiniteInput(t *testing.T) {
	tests := []struct {
		name string
		X    *mat.Dense
		y    *mat.VecDense
	}{
		{"NaN length", mat.NewDense(3, 1, []float64{4, math.NaN(), 6}), mat.NewVecDense(3, []float64{26, 31, 36})},
		{"Inf entropy", mat.NewDense(3, 1, []float64{4, 5, 6}), mat.NewVecDense(3, []float64{26, math.Inf(1), 36})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLinearRegression()
			err := lr.Fit(tt.X, tt.y)
			var numErr *errors.NumericalInstabilityError
			if !errors.As(err, &numErr) {
				t.Fatalf("expected NumericalInstabilityError, got %v", err)
			}
			if lr.IsFitted() {
				t.Error("model should stay unfitted")
			}
		})
	}
}

func TestPredictDimensionMismatch(t *testing.T) {
	X, y := lengthData(10)
	lr, _ := Fit(X, y)

	var de *errors.DimensionError
	_, err := lr.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	if !errors.As(err, &de) || de.Expected != 1 || de.Got != 2 {
		t.Errorf("expected DimensionError(1, 2), got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{6, 9, 12, 7})
	y := mat.NewVecDense(4, []float64{28.2, 59.1, 71.4, 32.9})
	lr, err := Fit(X, y, WithFeatureNames("length"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := lr.Save(&buf); err != nil {
		t.Fatal(err)
	}
	loaded := NewLinearRegression()
	if err := loaded.Load(&buf); err != nil {
		t.Fatal(err)
	}

	probe := mat.NewDense(3, 1, []float64{4, 10, 33})
	p1, _ := lr.Predict(probe)
	p2, err := loaded.Predict(probe)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if p1.AtVec(i) != p2.AtVec(i) {
			t.Errorf("row %d: %v != %v", i, p1.AtVec(i), p2.AtVec(i))
		}
	}

	mw, _ := loaded.ExportWeights()
	if len(mw.Features) != 1 || mw.Features[0] != "length" {
		t.Errorf("feature names lost: %v", mw.Features)
	}
}

func TestSaveLoadFile(t *testing.T) {
	X, y := lengthData(20)
	lr, _ := Fit(X, y)

	path := filepath.Join(t.TempDir(), "model.gob")
	if err := lr.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	loaded := NewLinearRegression()
	if err := loaded.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	w1, _ := lr.Weights()
	w2, _ := loaded.Weights()
	for i := range w1 {
		if math.Float64bits(w1[i]) != math.Float64bits(w2[i]) {
			t.Errorf("weight %d changed: %v -> %v", i, w1[i], w2[i])
		}
	}

	if err := NewLinearRegression().LoadFile(filepath.Join(t.TempDir(), "missing.gob")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImportRejectsTamperedWeights(t *testing.T) {
	X, y := lengthData(10)
	lr, _ := Fit(X, y)
	mw, _ := lr.ExportWeights()
	mw.Coefficients[0] += 1

	if err := NewLinearRegression().ImportWeights(mw); err == nil {
		t.Error("expected checksum validation error")
	}

	mw.Seal()
	mw.ModelType = "Ridge"
	if err := NewLinearRegression().ImportWeights(mw); err == nil {
		t.Error("expected model type error")
	}
}

func TestScore(t *testing.T) {
	X, y := lengthData(30)
	lr, _ := Fit(X, y)
	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(score-1) > 1e-12 {
		t.Errorf("Score() = %v, want 1", score)
	}
}

func TestConcurrentPredictDuringRefit(t *testing.T) {
	X, y := lengthData(100)
	lr, _ := Fit(X, y)
	probe := mat.NewDense(1, 1, []float64{10})

	X2 := mat.NewDense(100, 1, nil)
	y2 := mat.NewVecDense(100, nil)
	for i := 0; i < 100; i++ {
		X2.Set(i, 0, float64(i+1))
		y2.SetVec(i, 2*float64(i+1)+1)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = lr.Fit(X2, y2)
			} else {
				_ = lr.Fit(X, y)
			}
		}(i)
		go func() {
			defer wg.Done()
			p, err := lr.Predict(probe)
			if err != nil {
				t.Error(err)
				return
			}
			// 5*10+6 or 2*10+1, never a blend
			v := p.AtVec(0)
			if math.Abs(v-56) > 1e-6 && math.Abs(v-21) > 1e-6 {
				t.Errorf("prediction %v mixes two models", v)
			}
		}()
	}
	wg.Wait()
}

func TestFitLogging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	X, y := lengthData(10)

	if _, err := Fit(X, y, WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	if !logger.ContainsMessage("Training started") || !logger.ContainsMessage("Training completed") {
		t.Error("training messages not logged")
	}
	if !logger.ContainsField(log.SamplesKey, float64(10)) {
		t.Error("sample count not logged")
	}
	if !logger.ContainsField(log.ModelNameKey, ModelName) {
		t.Error("model name not logged")
	}
}
