// Package app wires configuration, logging and the model store into the
// operations the CLI exposes: building the feature table, training,
// password analysis and generation.
package app

import (
	"context"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/awnumar/memguard"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/fx-xf/bfte/core/model"
	"github.com/fx-xf/bfte/features"
	"github.com/fx-xf/bfte/generator"
	"github.com/fx-xf/bfte/internal/config"
	"github.com/fx-xf/bfte/linear"
	"github.com/fx-xf/bfte/metrics"
	"github.com/fx-xf/bfte/pkg/errors"
	"github.com/fx-xf/bfte/pkg/log"
	"github.com/fx-xf/bfte/plotting"
	"github.com/fx-xf/bfte/preprocessing"
	"github.com/fx-xf/bfte/strength"
)

const (
	DatasetDiagramName    = "diagram.png"
	PredictionDiagramName = "diagram_predicted.png"
)

var (
	// ErrModelNotFound is returned when no model file exists at model_path.
	ErrModelNotFound = errors.New("model not found; run `bfte train` first")

	// ErrEmptyPassword is returned when analysing an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// App is the application context shared by every command.
type App struct {
	Config config.Config
	Logger log.Logger
	Out    io.Writer

	gen *generator.Generator

	mu    sync.Mutex
	model *linear.LinearRegression
}

// New creates an App. A nil logger falls back to the process default.
func New(cfg config.Config, logger log.Logger, out io.Writer) *App {
	if logger == nil {
		logger = log.GetLogger()
	}
	if out == nil {
		out = io.Discard
	}
	return &App{
		Config: cfg,
		Logger: logger.With(log.ComponentKey, "app"),
		Out:    out,
		gen:    generator.New(),
	}
}

// BuildFeatures converts the configured corpus into the feature table.
func (a *App) BuildFeatures(ctx context.Context) (preprocessing.Stats, error) {
	fc := a.Config.Features
	a.Logger.Info("Building feature table",
		log.PhaseKey, log.PhasePreprocessing,
		log.PathKey, fc.CorpusPath,
	)
	return preprocessing.BuildFeatureTableFile(ctx, fc.CorpusPath, fc.OutputPath, fc.ChunkSize, a.Logger)
}

// TrainResult summarizes a training run.
type TrainResult struct {
	RunID     string
	Weights   []float64
	Coef      []float64
	Intercept float64

	TrainRows int
	TestRows  int
	Dropped   int

	// TestMetrics.R2 is NaN when the held-out entropy is constant.
	TestMetrics metrics.Regression
	Diagrams    []string
	ModelPath   string
	Duration    time.Duration

	// Export is the checksummed weights record that was saved.
	Export *model.ModelWeights
}

// WriteWeightsJSON writes the exported weights as indented JSON to path.
func (r *TrainResult) WriteWeightsJSON(path string) error {
	data, err := r.Export.ToJSON()
	if err != nil {
		return errors.Wrap(err, "encode weights")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create weights directory")
	}
	return errors.Wrapf(os.WriteFile(path, append(data, '\n'), 0o644), "write %s", path)
}

// Train fits the length→entropy model on the feature table, evaluates it on
// the held-out split, draws the diagrams and saves the model.
func (a *App) Train(ctx context.Context) (*TrainResult, error) {
	start := time.Now()
	tc := a.Config.Training
	res := &TrainResult{RunID: uuid.NewString(), ModelPath: a.Config.ModelPath}
	logger := a.Logger.With(log.EstimatorIDKey, res.RunID, log.PhaseKey, log.PhaseTraining)

	table, err := preprocessing.ReadTableFile(tc.TablePath)
	if err != nil {
		return nil, err
	}
	res.Dropped = table.Dropped
	logger.Info("Feature table loaded",
		log.PathKey, tc.TablePath,
		log.SamplesKey, table.Rows(),
		log.DroppedKey, table.Dropped,
	)

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "train")
	}

	split, err := preprocessing.TrainTestSplit(table.X, table.Y, tc.TestSize, tc.RandomSeed)
	if err != nil {
		return nil, err
	}
	res.TrainRows, res.TestRows = split.YTrain.Len(), split.YTest.Len()

	plotOpts := plotting.DefaultOptions()
	plotOpts.MaxPoints = tc.MaxPlotPoints
	plotOpts.Seed = tc.RandomSeed
	series := plotting.NewSeries(split.XTrain, split.YTrain, split.XTest, split.YTest, plotOpts)

	if err := os.MkdirAll(tc.DiagramDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create diagram directory")
	}
	datasetPath := filepath.Join(tc.DiagramDir, DatasetDiagramName)
	if err := plotting.DatasetDiagram(series, plotOpts, datasetPath); err != nil {
		return nil, err
	}
	res.Diagrams = append(res.Diagrams, datasetPath)

	lr, err := linear.Fit(split.XTrain, split.YTrain,
		linear.WithLogger(logger),
		linear.WithFeatureNames("length"),
	)
	if err != nil {
		return nil, err
	}

	pred, err := lr.Predict(split.XTest)
	if err != nil {
		return nil, err
	}
	if res.TestMetrics, err = metrics.Evaluate(split.YTest, pred); err != nil {
		return nil, err
	}
	if math.IsNaN(res.TestMetrics.R2) {
		logger.Warn("R² undefined on the test split, entropy is constant",
			log.SamplesKey, res.TestRows,
		)
	}

	predictionPath := filepath.Join(tc.DiagramDir, PredictionDiagramName)
	if err := plotting.PredictionDiagram(series, predictLine(lr), plotOpts, predictionPath); err != nil {
		return nil, err
	}
	res.Diagrams = append(res.Diagrams, predictionPath)

	if err := lr.SaveFile(a.Config.ModelPath); err != nil {
		return nil, err
	}

	if res.Export, err = lr.ExportWeights(); err != nil {
		return nil, err
	}
	w := res.Export.Coefficients
	res.Weights = w
	res.Coef = append([]float64(nil), w[:len(w)-1]...)
	res.Intercept = w[len(w)-1]
	res.Duration = time.Since(start)

	a.mu.Lock()
	a.model = lr
	a.mu.Unlock()

	logger.Info("Model trained",
		log.PathKey, a.Config.ModelPath,
		log.MSEKey, res.TestMetrics.MSE,
		log.MAEKey, res.TestMetrics.MAE,
		log.R2ScoreKey, res.TestMetrics.R2,
		log.DurationMsKey, res.Duration.Milliseconds(),
	)
	return res, nil
}

// predictLine adapts the model to a plotting function of one variable.
func predictLine(lr *linear.LinearRegression) func(float64) float64 {
	x := mat.NewDense(1, 1, nil)
	return func(v float64) float64 {
		x.Set(0, 0, v)
		p, err := lr.Predict(x)
		if err != nil {
			return 0
		}
		return p.AtVec(0)
	}
}

// LoadModel returns the model at model_path, reading it once and caching it.
func (a *App) LoadModel() (*linear.LinearRegression, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.model != nil {
		return a.model, nil
	}

	lr := linear.NewLinearRegression(linear.WithLogger(a.Logger))
	if err := lr.LoadFile(a.Config.ModelPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrModelNotFound, "%s", a.Config.ModelPath)
		}
		return nil, err
	}
	a.model = lr
	return lr, nil
}

// Analysis is the outcome of checking one password.
type Analysis struct {
	Record features.Record

	ActualEntropy    float64
	PredictedEntropy float64

	Actual    strength.Strength
	Predicted strength.Strength

	ActualLabel string
	ModelLabel  string
}

// Infer compares the password's closed-form entropy with the model's
// prediction from its length.
func (a *App) Infer(password string) (*Analysis, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	lr, err := a.LoadModel()
	if err != nil {
		return nil, err
	}

	rec := features.Extract(password)
	pred, err := lr.Predict(mat.NewDense(1, 1, []float64{float64(rec.Length)}))
	if err != nil {
		return nil, err
	}
	predicted := pred.AtVec(0)

	an := &Analysis{
		Record:           rec,
		ActualEntropy:    rec.Entropy,
		PredictedEntropy: predicted,
		Actual:           strength.Classify(rec.Entropy),
		Predicted:        strength.Classify(predicted),
		ActualLabel:      strength.Label(rec.Entropy, strength.Actual),
		ModelLabel:       strength.Label(predicted, strength.Model),
	}
	a.Logger.Debug("Password analysed",
		log.PhaseKey, log.PhaseInference,
		log.EntropyKey, an.ActualEntropy,
		log.StrengthKey, an.ActualLabel,
	)
	return an, nil
}

// InferSecret analyses a password held in a locked buffer and destroys the
// buffer before returning. Extraction needs the password as a Go string, so
// an unprotected copy lives on the heap until the garbage collector reclaims
// it; the returned Analysis does not keep it (Record.Password is empty).
func (a *App) InferSecret(buf *memguard.LockedBuffer) (*Analysis, error) {
	defer buf.Destroy()
	if buf.Size() == 0 {
		return nil, ErrEmptyPassword
	}
	an, err := a.Infer(string(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	an.Record.Password = ""
	return an, nil
}

// Generate produces a password with the given options.
func (a *App) Generate(opts generator.Options) (generator.Result, error) {
	res, err := a.gen.Generate(opts)
	if err != nil {
		return res, err
	}
	if res.Clamped {
		a.Logger.Warn("Password length raised to minimum",
			"requested", res.Requested,
			"length", res.Length,
		)
	}
	return res, nil
}

// GeneratorOptions returns the configured generator defaults.
func (a *App) GeneratorOptions() generator.Options {
	g := a.Config.Generator
	return generator.Options{Length: g.Length, Uppercase: g.Uppercase, Digits: g.Digits, Symbols: g.Symbols}
}
