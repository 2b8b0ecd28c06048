// Package metrics computes regression error metrics on gonum vectors.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/fx-xf/bfte/pkg/errors"
)

// Regression bundles the metrics reported after training.
type Regression struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
}

// Evaluate computes every metric in Regression. When R² is undefined
// because yTrue is constant, R2 is NaN and an UndefinedMetricWarning is
// raised instead of failing the whole evaluation.
func Evaluate(yTrue, yPred *mat.VecDense) (Regression, error) {
	var r Regression
	var err error
	if r.MSE, err = MSE(yTrue, yPred); err != nil {
		return Regression{}, err
	}
	r.RMSE = math.Sqrt(r.MSE)
	if r.MAE, err = MAE(yTrue, yPred); err != nil {
		return Regression{}, err
	}
	if r.R2, err = R2Score(yTrue, yPred); err != nil {
		var valErr *errors.ValueError
		if !errors.As(err, &valErr) {
			return Regression{}, err
		}
		r.R2 = math.NaN()
		errors.Warn(errors.NewUndefinedMetricWarning("R2Score", valErr.Message))
	}
	return r, nil
}

func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE is the mean squared error (1/n)Σ(yTrue-yPred)².
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var diff mat.VecDense
	diff.SubVec(yTrue, yPred)
	return mat.Dot(&diff, &diff) / float64(n), nil
}

// RMSE is the square root of MSE.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE is the mean absolute error (1/n)Σ|yTrue-yPred|.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score is the coefficient of determination 1 - RSS/TSS. A constant yTrue
// has no variance to explain and yields a ValueError.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	mean := mat.Sum(yTrue) / float64(n)

	var tss, rss float64
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		d := t - yPred.AtVec(i)
		tss += (t - mean) * (t - mean)
		rss += d * d
	}

	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}
