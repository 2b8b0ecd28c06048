package model

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/fx-xf/bfte/pkg/errors"
)

// ModelWeights is the persisted form of a fitted linear model: the
// coefficient vector with the bias as its last element, plus enough
// metadata to validate it on load.
type ModelWeights struct {
	// ModelType names the estimator, e.g. "LinearRegression".
	ModelType string `json:"model_type"`

	// Version is the weights format version.
	Version string `json:"version"`

	// Coefficients holds [feature_1 ... feature_n, bias].
	Coefficients []float64 `json:"coefficients"`

	// NFeatures is n; len(Coefficients) must be n+1.
	NFeatures int `json:"n_features"`

	// NSamples is the number of training rows.
	NSamples int `json:"n_samples,omitempty"`

	// Features names the input columns (optional).
	Features []string `json:"features,omitempty"`

	// Checksum is Checksum(Coefficients).
	Checksum uint64 `json:"checksum"`

	IsFitted bool `json:"is_fitted"`
}

// Checksum returns the xxhash64 digest of the little-endian IEEE-754 bytes of
// coefficients.
func Checksum(coefficients []float64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, c := range coefficients {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(c))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Seal stores the checksum of the current coefficients.
func (mw *ModelWeights) Seal() {
	mw.Checksum = Checksum(mw.Coefficients)
}

// ToJSON serializes the weights as indented JSON.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// Validate checks the structural invariants and the checksum.
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}

	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}

	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}

	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}

	if mw.IsFitted && len(mw.Coefficients) != mw.NFeatures+1 {
		return errors.NewDimensionError("ModelWeights.Validate", mw.NFeatures+1, len(mw.Coefficients), 1)
	}

	if err := errors.CheckNumericalStability("ModelWeights.Validate", mw.Coefficients); err != nil {
		return err
	}

	if mw.IsFitted && Checksum(mw.Coefficients) != mw.Checksum {
		return errors.NewValidationError("checksum", "checksum mismatch: weights may be corrupted", mw.Checksum)
	}

	return nil
}
