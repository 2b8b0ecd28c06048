package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fx-xf/bfte/strength"
)

func TestPanelContainsTitleAndBody(t *testing.T) {
	out := Panel(Styles.Box, "Title", "line one\nline two\n")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "line one")
	assert.Contains(t, out, "line two")
}

func TestKeyValuesAligned(t *testing.T) {
	out := KeyValues([2]string{"Length", "4"}, [2]string{"Digits", "1"})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, out, "Length:")
	assert.Contains(t, out, "Digits:")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New("model not found"))
	assert.Contains(t, buf.String(), "Error")
	assert.Contains(t, buf.String(), "model not found")
}

func TestBannerAndAbout(t *testing.T) {
	assert.Contains(t, Banner(0), Tagline)
	assert.Contains(t, Banner(120), Tagline)
	assert.Contains(t, About(), "github.com/fx-xf")
	assert.Contains(t, StrengthLabel(strength.Good, "Good"), "Good")
}
