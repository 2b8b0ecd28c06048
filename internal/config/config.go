// Package config loads the bfte YAML configuration.
package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fx-xf/bfte/pkg/errors"
	"github.com/fx-xf/bfte/pkg/log"
)

// DefaultPath is where the CLI looks when --config is not given.
const DefaultPath = "bfte.yaml"

// Config is the complete application configuration.
type Config struct {
	ModelPath string `yaml:"model_path"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Features  FeaturesConfig  `yaml:"features"`
	Training  TrainingConfig  `yaml:"training"`
	Generator GeneratorConfig `yaml:"generator"`
}

// FeaturesConfig drives the corpus to feature table pipeline.
type FeaturesConfig struct {
	CorpusPath string `yaml:"corpus_path"`
	OutputPath string `yaml:"output_path"`
	ChunkSize  int    `yaml:"chunk_size"`
}

// TrainingConfig drives model training and its diagrams.
type TrainingConfig struct {
	TablePath     string  `yaml:"table_path"`
	TestSize      float64 `yaml:"test_size"`
	RandomSeed    uint64  `yaml:"random_seed"`
	DiagramDir    string  `yaml:"diagram_dir"`
	MaxPlotPoints int     `yaml:"max_plot_points"`
}

// GeneratorConfig holds the password generator defaults.
type GeneratorConfig struct {
	Length    int  `yaml:"length"`
	Uppercase bool `yaml:"uppercase"`
	Digits    bool `yaml:"digits"`
	Symbols   bool `yaml:"symbols"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ModelPath: "password_time_model.gob",
		LogLevel:  "info",
		LogFormat: log.FormatConsole,
		Features: FeaturesConfig{
			CorpusPath: filepath.Join("data", "raw", "rockyou.txt"),
			OutputPath: filepath.Join("data", "processed", "password_features.csv"),
			ChunkSize:  50000,
		},
		Training: TrainingConfig{
			TablePath:     filepath.Join("data", "processed", "password_features.csv"),
			TestSize:      0.2,
			RandomSeed:    42,
			DiagramDir:    ".",
			MaxPlotPoints: 1000,
		},
		Generator: GeneratorConfig{
			Length:    16,
			Uppercase: true,
			Digits:    true,
			Symbols:   true,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.ModelPath == "" {
		return errors.NewValidationError("model_path", "must not be empty", c.ModelPath)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != log.FormatConsole && c.LogFormat != log.FormatJSON {
		return errors.NewValidationError("log_format", "must be console or json", c.LogFormat)
	}
	if c.Features.ChunkSize < 1 {
		return errors.NewValidationError("features.chunk_size", "must be at least 1", c.Features.ChunkSize)
	}
	if !(c.Training.TestSize > 0 && c.Training.TestSize < 1) {
		return errors.NewValidationError("training.test_size", "must be in (0, 1)", c.Training.TestSize)
	}
	if c.Training.MaxPlotPoints < 1 {
		return errors.NewValidationError("training.max_plot_points", "must be at least 1", c.Training.MaxPlotPoints)
	}
	if c.Generator.Length < 0 {
		return errors.NewValidationError("generator.length", "must not be negative", c.Generator.Length)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
