// Package bfte estimates how long a password would resist brute force.
//
// A password is reduced to its character composition (length and the
// presence of digits, lowercase, uppercase and special characters), from
// which a closed-form entropy is computed as length * log2(charset). A
// one-feature ordinary least squares model, trained on a password corpus,
// predicts the same entropy from length alone so the two estimates can be
// compared.
//
// # Installation
//
//	go install github.com/fx-xf/bfte/cmd/bfte@latest
//
// # Quick Start
//
// Training and checking from the command line:
//
//	bfte features   # corpus -> data/processed/password_features.csv
//	bfte train      # feature table -> password_time_model.gob + diagrams
//	bfte check --password 'Tr0ub4dor&3'
//	bfte generate --length 20
//
// Using the library directly:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/fx-xf/bfte/features"
//	    "github.com/fx-xf/bfte/linear"
//	    "github.com/fx-xf/bfte/strength"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewVecDense(4, []float64{11, 16, 21, 26})
//
//	    model, err := linear.Fit(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    rec := features.Extract("Ab3!")
//	    pred, err := model.Predict(mat.NewDense(1, 1, []float64{float64(rec.Length)}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println(strength.Label(rec.Entropy, strength.Actual))
//	    fmt.Println(strength.Label(pred.AtVec(0), strength.Model))
//	}
//
// # Packages
//
//   - features: per-password composition features and entropy
//   - strength: entropy to strength label
//   - linear: OLS regression by the normal equation
//   - metrics: MSE, RMSE, MAE, R²
//   - preprocessing: corpus pipeline, feature table, train/test split
//   - plotting: dataset and prediction diagrams
//   - generator: cryptographically random passwords
//   - core/model: estimator interfaces, state and weight persistence
//   - core/parallel: CPU fan-out helpers
//
// # Error Handling
//
// Errors carry stack traces and can be inspected with errors.Is/As from
// pkg/errors:
//
//	if errors.Is(err, errors.ErrSingularMatrix) {
//	    // every training row had the same length
//	}
package bfte
