// Package errors provides the error and warning types shared by every bfte
// package. All constructors attach a stack trace through cockroachdb/errors,
// and the structured types implement zerolog.LogObjectMarshaler so they can be
// logged as objects.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("bfte-Warning: %v\n", w)
	}
	// set by pkg/log to avoid an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the fallback warning handler.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs the structured warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. The zerolog sink wins when one is installed.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

// UndefinedMetricWarning is raised when a metric cannot be computed for
// the data at hand, e.g. R² on a constant target, and is reported as NaN.
type UndefinedMetricWarning struct {
	Metric string
	Reason string
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("%s is undefined: %s", w.Metric, w.Reason)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("reason", w.Reason).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates an UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, reason string) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Reason: reason}
}

// UndefinedEntropyWarning is raised when feature rows carry an undefined
// (NaN or infinite) entropy and are dropped before training.
type UndefinedEntropyWarning struct {
	Source  string
	Dropped int
}

func (w *UndefinedEntropyWarning) Error() string {
	return fmt.Sprintf("%s: dropped %d rows with undefined entropy", w.Source, w.Dropped)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *UndefinedEntropyWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("source", w.Source).
		Int("dropped", w.Dropped).
		Str("type", "UndefinedEntropyWarning")
}

// NewUndefinedEntropyWarning creates an UndefinedEntropyWarning.
func NewUndefinedEntropyWarning(source string, dropped int) *UndefinedEntropyWarning {
	return &UndefinedEntropyWarning{Source: source, Dropped: dropped}
}

// ===========================================================================
//
//	Structured errors
//
// ===========================================================================

// NotFittedError is returned when Predict or Weights is called on a model
// that was neither fitted nor loaded.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("bfte: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError reports a row or column count mismatch between inputs.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("bfte: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// InvalidCharacterClassError is returned for a character class name that
// is not one of digit, lower, upper or special, and by the generator when
// no class is enabled.
type InvalidCharacterClassError struct {
	Class  string
	Reason string
}

func (e *InvalidCharacterClassError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("bfte: invalid character class: %s", e.Reason)
	}
	return fmt.Sprintf("bfte: invalid character class %q: %s", e.Class, e.Reason)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *InvalidCharacterClassError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("class", e.Class).
		Str("reason", e.Reason).
		Str("type", "InvalidCharacterClassError")
}

// NewInvalidCharacterClassError creates an InvalidCharacterClassError with a
// stack trace.
func NewInvalidCharacterClassError(class, reason string) error {
	err := &InvalidCharacterClassError{Class: class, Reason: reason}
	return errors.WithStack(err)
}

// ValidationError reports a configuration or parameter value outside its
// allowed range.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bfte: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable, such as an empty
// vector passed to a metric.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("bfte: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general model failure wrapping a sentinel such as
// ErrSingularMatrix.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bfte: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("bfte: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("kind", e.Kind).
		Str("type", "ModelError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewModelError creates a ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NumericalInstabilityError reports NaN or Inf values produced by a
// numerical routine.
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("bfte: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// NewNumericalInstabilityError creates a NumericalInstabilityError with a
// stack trace.
func NewNumericalInstabilityError(operation string, values []float64) error {
	err := &NumericalInstabilityError{Operation: operation, Values: values}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Sentinels
//
// ===========================================================================

var (
	// ErrEmptyData is returned when a fit or metric receives no rows.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when the normal-equation matrix cannot be
	// factorized or is too ill-conditioned to solve.
	ErrSingularMatrix = New("singular matrix")
)
