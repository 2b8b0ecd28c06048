// Package model provides the estimator interfaces, fitted-state tracking and
// persistence helpers shared by bfte models.
package model

import (
	"io"

	"gonum.org/v1/gonum/mat"
)

// Fitter is a model that learns from a feature matrix and a target vector.
type Fitter interface {
	// Fit trains the model. A failed Fit must leave a previously fitted
	// model unchanged.
	Fit(X mat.Matrix, y mat.Vector) error
}

// Predictor is a model that produces one prediction per input row.
type Predictor interface {
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Scorer computes the coefficient of determination R² of the predictions.
type Scorer interface {
	Score(X mat.Matrix, y mat.Vector) (float64, error)
}

// LinearModel exposes learned coefficients.
type LinearModel interface {
	// Weights returns a copy of the coefficients followed by the bias.
	Weights() ([]float64, error)
	// Intercept returns the bias term.
	Intercept() float64
}

// Regressor combines the interfaces implemented by regression models.
type Regressor interface {
	Fitter
	Predictor
	Scorer
	LinearModel
}

// Persistable is a model that can be written to and read from a stream or
// a file.
type Persistable interface {
	Save(w io.Writer) error
	Load(r io.Reader) error
	SaveFile(path string) error
	LoadFile(path string) error
}
