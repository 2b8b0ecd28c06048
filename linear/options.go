package linear

import "github.com/fx-xf/bfte/pkg/log"

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithLogger replaces the logger, which otherwise is the process default
// tagged with the "linear" component.
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		if logger != nil {
			lr.logger = logger.With(log.ModelNameKey, ModelName)
		}
	}
}

// WithFeatureNames records column names, carried into exported weights.
func WithFeatureNames(names ...string) Option {
	return func(lr *LinearRegression) {
		lr.featureNames = append([]string(nil), names...)
	}
}

// WithParallelThreshold sets the row count above which the design matrix
// is assembled on all cores.
func WithParallelThreshold(rows int) Option {
	return func(lr *LinearRegression) {
		lr.parallelThreshold = rows
	}
}
