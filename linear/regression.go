// Package linear implements ordinary least squares regression solved by the
// normal equation.
//
// The weight vector has n+1 entries ordered [feature_1 ... feature_n, bias]:
// the design matrix is augmented with a trailing column of ones before
// solving (XᵀX)w = Xᵀy by Cholesky factorization.
//
// Example usage:
//
//	lr, err := linear.Fit(X, y) // X: m×n lengths, y: m entropies
//	if err != nil {
//		return err
//	}
//	pred, err := lr.Predict(XTest)
//
// A fitted model round-trips through Save/Load without losing a bit:
//
//	err = lr.SaveFile("password_time_model.gob")
package linear

import (
	"io"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/fx-xf/bfte/core/model"
	"github.com/fx-xf/bfte/core/parallel"
	"github.com/fx-xf/bfte/metrics"
	"github.com/fx-xf/bfte/pkg/errors"
	"github.com/fx-xf/bfte/pkg/log"
)

const (
	// ModelName is the model type recorded in logs and exported weights.
	ModelName = "LinearRegression"

	// WeightsVersion is the exported weights format version.
	WeightsVersion = "1.0.0"

	defaultParallelThreshold = 1000
)

// LinearRegression is an ordinary least squares model with a bias term.
// It is safe for concurrent use: Predict running alongside a re-Fit sees
// either the old or the new weights.
type LinearRegression struct {
	state *model.StateManager

	// guarded by state
	weights []float64

	featureNames      []string
	parallelThreshold int
	logger            log.Logger
}

var _ model.Regressor = (*LinearRegression)(nil)
var _ model.Persistable = (*LinearRegression)(nil)

// NewLinearRegression creates an unfitted model.
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		state:             model.NewStateManager(),
		parallelThreshold: defaultParallelThreshold,
		logger:            log.GetLoggerWithName("linear").With(log.ModelNameKey, ModelName),
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit trains a new model on X (m×n) and y (length m) and returns it.
func Fit(X mat.Matrix, y mat.Vector, opts ...Option) (*LinearRegression, error) {
	lr := NewLinearRegression(opts...)
	if err := lr.Fit(X, y); err != nil {
		return nil, err
	}
	return lr, nil
}

// Fit solves the normal equation for X (m×n) and y (length m).
//
// Errors:
//   - ModelError wrapping ErrEmptyData: X has no rows
//   - DimensionError: n < 1 or y's length differs from m
//   - ModelError wrapping ErrSingularMatrix: XᵀX is not positive definite or
//     its condition number exceeds mat.ConditionTolerance
//   - NumericalInstabilityError: X, y or the solution is not finite
//
// On error the previously fitted weights, if any, are kept.
func (lr *LinearRegression) Fit(X mat.Matrix, y mat.Vector) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	start := time.Now()
	m, n := X.Dims()

	lr.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, m,
		log.FeaturesKey, n,
	)

	weights, cond, err := lr.solve(X, y)
	if err != nil {
		lr.logger.Error("Training failed",
			log.OperationKey, log.OperationFit,
			log.ErrAttrKey, err,
		)
		return err
	}

	err = lr.state.WithStateMut(func(model.ModelState) (model.ModelState, error) {
		lr.weights = weights
		return model.ModelState{Fitted: true, NFeatures: n, NSamples: m}, nil
	})
	if err != nil {
		return err
	}

	lr.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.SamplesKey, m,
		log.FeaturesKey, n,
		log.ConditionKey, cond,
	)
	return nil
}

func (lr *LinearRegression) solve(X mat.Matrix, y mat.Vector) ([]float64, float64, error) {
	const op = "LinearRegression.Fit"

	m, n := X.Dims()
	if m == 0 {
		return nil, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if n < 1 {
		return nil, 0, errors.NewDimensionError(op, 1, n, 1)
	}
	if y.Len() != m {
		return nil, 0, errors.NewDimensionError(op, m, y.Len(), 0)
	}
	if err := errors.CheckMatrix(op, X, m, n); err != nil {
		return nil, 0, err
	}
	if err := errors.CheckMatrix(op, y, m, 1); err != nil {
		return nil, 0, err
	}

	xAug := lr.augment(X)

	// A = X'ᵀX', b = X'ᵀy
	var a mat.SymDense
	a.SymOuterK(1, xAug.T())
	var b mat.VecDense
	b.MulVec(xAug.T(), y)

	var chol mat.Cholesky
	if ok := chol.Factorize(&a); !ok {
		return nil, 0, errors.NewModelError(op, "matrix is not positive definite", errors.ErrSingularMatrix)
	}
	cond := chol.Cond()
	if cond > mat.ConditionTolerance {
		return nil, cond, errors.NewModelError(op, "matrix is ill-conditioned", errors.ErrSingularMatrix)
	}

	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &b); err != nil {
		return nil, cond, errors.NewModelError(op, err.Error(), errors.ErrSingularMatrix)
	}

	weights := make([]float64, n+1)
	copy(weights, w.RawVector().Data)
	if err := errors.CheckNumericalStability(op, weights); err != nil {
		return nil, cond, err
	}
	return weights, cond, nil
}

// augment returns [X | 1].
func (lr *LinearRegression) augment(X mat.Matrix) *mat.Dense {
	m, n := X.Dims()
	xAug := mat.NewDense(m, n+1, nil)
	parallel.ParallelizeWithThreshold(m, lr.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < n; j++ {
				xAug.Set(i, j, X.At(i, j))
			}
			xAug.Set(i, n, 1)
		}
	})
	return xAug
}

// Predict returns X'·w, one value per row of X. The result is identical to
// multiplying [X | 1] by Weights() with mat.VecDense.MulVec.
func (lr *LinearRegression) Predict(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer errors.Recover(&err, "LinearRegression.Predict")

	var pred *mat.VecDense
	err = lr.state.WithState(func(st model.ModelState) error {
		if !st.Fitted {
			return errors.NewNotFittedError(ModelName, "Predict")
		}
		m, n := X.Dims()
		if n != st.NFeatures {
			return errors.NewDimensionError("LinearRegression.Predict", st.NFeatures, n, 1)
		}

		lr.logger.Debug("Prediction started",
			log.OperationKey, log.OperationPredict,
			log.PhaseKey, log.PhaseInference,
			log.SamplesKey, m,
		)

		pred = mat.NewVecDense(m, nil)
		pred.MulVec(lr.augment(X), mat.NewVecDense(len(lr.weights), lr.weights))
		return nil
	})
	if err != nil {
		return nil, err
	}

	lr.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, pred.Len(),
	)
	return pred, nil
}

// Weights returns a copy of [coefficients..., bias].
func (lr *LinearRegression) Weights() ([]float64, error) {
	var weights []float64
	err := lr.state.WithState(func(st model.ModelState) error {
		if !st.Fitted {
			return errors.NewNotFittedError(ModelName, "Weights")
		}
		weights = append([]float64(nil), lr.weights...)
		return nil
	})
	return weights, err
}

// Coef returns the feature coefficients without the bias, or nil when the
// model is not fitted.
func (lr *LinearRegression) Coef() []float64 {
	w, err := lr.Weights()
	if err != nil {
		return nil
	}
	return w[:len(w)-1]
}

// Intercept returns the bias, or 0 when the model is not fitted.
func (lr *LinearRegression) Intercept() float64 {
	w, err := lr.Weights()
	if err != nil {
		return 0
	}
	return w[len(w)-1]
}

// NFeatures returns the number of features seen in Fit or Load.
func (lr *LinearRegression) NFeatures() int {
	n, _ := lr.state.GetDimensions()
	return n
}

// IsFitted reports whether the model has weights.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// Score returns the coefficient of determination R² of the predictions for X
// against y.
func (lr *LinearRegression) Score(X mat.Matrix, y mat.Vector) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(mat.VecDenseCopyOf(y), pred)
}

// ExportWeights returns the model as a checksummed ModelWeights record.
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	var mw *model.ModelWeights
	err := lr.state.WithState(func(st model.ModelState) error {
		if !st.Fitted {
			return errors.NewNotFittedError(ModelName, "ExportWeights")
		}
		mw = &model.ModelWeights{
			ModelType:    ModelName,
			Version:      WeightsVersion,
			Coefficients: append([]float64(nil), lr.weights...),
			NFeatures:    st.NFeatures,
			NSamples:     st.NSamples,
			Features:     append([]string(nil), lr.featureNames...),
			IsFitted:     true,
		}
		mw.Seal()
		return nil
	})
	return mw, err
}

// ImportWeights validates mw and replaces the model's weights with it.
func (lr *LinearRegression) ImportWeights(mw *model.ModelWeights) error {
	if mw == nil {
		return errors.NewValueError("LinearRegression.ImportWeights", "weights are nil")
	}
	if mw.ModelType != ModelName {
		return errors.NewValidationError("model_type", "unsupported model type", mw.ModelType)
	}
	if !mw.IsFitted {
		return errors.NewValidationError("is_fitted", "weights are from an unfitted model", mw.IsFitted)
	}
	if err := mw.Validate(); err != nil {
		return err
	}

	return lr.state.WithStateMut(func(model.ModelState) (model.ModelState, error) {
		lr.weights = append([]float64(nil), mw.Coefficients...)
		if len(mw.Features) > 0 {
			lr.featureNames = append([]string(nil), mw.Features...)
		}
		return model.ModelState{Fitted: true, NFeatures: mw.NFeatures, NSamples: mw.NSamples}, nil
	})
}

// Save writes the model as a gob blob.
func (lr *LinearRegression) Save(w io.Writer) error {
	mw, err := lr.ExportWeights()
	if err != nil {
		return err
	}
	return model.SaveModelToWriter(mw, w)
}

// Load reads a gob blob written by Save.
func (lr *LinearRegression) Load(r io.Reader) error {
	var mw model.ModelWeights
	if err := model.LoadModelFromReader(&mw, r); err != nil {
		return errors.Wrap(err, "LinearRegression.Load")
	}
	return lr.ImportWeights(&mw)
}

// SaveFile writes the model to path, replacing any existing file.
func (lr *LinearRegression) SaveFile(path string) error {
	mw, err := lr.ExportWeights()
	if err != nil {
		return err
	}
	if err := model.SaveModel(mw, path); err != nil {
		return err
	}
	lr.logger.Info("Model saved", log.OperationKey, log.OperationSave, log.PathKey, path)
	return nil
}

// LoadFile reads a model written by SaveFile.
func (lr *LinearRegression) LoadFile(path string) error {
	var mw model.ModelWeights
	if err := model.LoadModel(&mw, path); err != nil {
		return err
	}
	if err := lr.ImportWeights(&mw); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	lr.logger.Debug("Model loaded", log.OperationKey, log.OperationLoad, log.PathKey, path)
	return nil
}
