package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fx-xf/bfte/generator"
	"github.com/fx-xf/bfte/internal/app"
	"github.com/fx-xf/bfte/pkg/errors"
)

// execute runs the CLI with piped stdin against a config in a temp dir.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfg := "model_path: " + filepath.Join(dir, "model.gob") + "\nlog_level: error\nlog_format: json\n"
	return executeConfig(t, cfg, stdin, args...)
}

func executeConfig(t *testing.T, cfg, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "bfte.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	var out, errOut bytes.Buffer
	opts := &rootOptions{in: strings.NewReader(stdin), out: &out}
	cmd := buildRootCmd(opts)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	out, err := execute(t, "", "generate", "--length", "2", "--no-symbols")
	require.NoError(t, err)
	assert.Contains(t, out, "Your generated password")
	assert.Contains(t, out, "Minimum password length is 4")
}

func TestGenerateCommandClasses(t *testing.T) {
	_, err := execute(t, "", "generate", "--classes", "upper,emoji")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emoji")

	_, err = execute(t, "", "generate", "--classes", "upper", "--no-digits")
	assert.Error(t, err, "--classes and --no-digits are exclusive")
}

func TestCheckWithoutModel(t *testing.T) {
	_, err := execute(t, "", "check", "--password", "Ab3!")
	assert.True(t, errors.Is(err, app.ErrModelNotFound), "got %v", err)
}

func TestCheckReadsPipedPassword(t *testing.T) {
	_, err := execute(t, "\n", "check")
	assert.True(t, errors.Is(err, app.ErrEmptyPassword), "got %v", err)
}

func TestTrainExportJSON(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(corpus, []byte("abcd\nAbcd3!xy\n12345\nqwerty\nP@ssw0rd\nletmein1\n"), 0o644))
	table := filepath.Join(dir, "features.csv")
	cfg := strings.Join([]string{
		"model_path: " + filepath.Join(dir, "model.gob"),
		"log_level: error",
		"log_format: json",
		"features:",
		"  corpus_path: " + corpus,
		"  output_path: " + table,
		"training:",
		"  table_path: " + table,
		"  diagram_dir: " + filepath.Join(dir, "diagrams"),
		"",
	}, "\n")

	_, err := executeConfig(t, cfg, "", "features")
	require.NoError(t, err)

	exportPath := filepath.Join(dir, "weights.json")
	out, err := executeConfig(t, cfg, "", "train", "--export-json", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Model trained")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"model_type": "LinearRegression"`)
	assert.Contains(t, string(data), `"features": [`)
}

func TestAboutCommand(t *testing.T) {
	out, err := execute(t, "", "about")
	require.NoError(t, err)
	assert.Contains(t, out, "About Developer")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "", "--log-level", "loud", "about")
	assert.Error(t, err)
}

func TestRootWithoutTTYPrintsHelp(t *testing.T) {
	out, err := execute(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands")
}

func TestPlainMenu(t *testing.T) {
	out, err := execute(t, "2\n\n9\n1\n8\nn\nn\nn\n\n3\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "About Developer")
	assert.Contains(t, out, "invalid option")
	assert.Contains(t, out, "Your generated password")
	assert.Contains(t, out, "Goodbye!")
}

func TestPlainMenuCheckWithoutModel(t *testing.T) {
	out, err := execute(t, "0\n\n3\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "model not found")
}

func TestPlainMenuEOFExits(t *testing.T) {
	out, err := execute(t, "", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Exiting...")
}

func TestLinePrompterGenerator(t *testing.T) {
	defaults := generator.DefaultOptions()

	p := newLinePrompter(strings.NewReader("\n\nn\n\n"), &bytes.Buffer{})
	got, err := p.Generator(defaults)
	require.NoError(t, err)
	assert.Equal(t, generator.Options{Length: 16, Uppercase: true, Digits: false, Symbols: true}, got)

	p = newLinePrompter(strings.NewReader("abc\n"), &bytes.Buffer{})
	got, err = p.Generator(defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults, got)
}
