package preprocessing

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fx-xf/bfte/features"
	"github.com/fx-xf/bfte/pkg/errors"
)

func TestFormatRecord(t *testing.T) {
	got := FormatRecord(features.Extract("Ab3!"))
	want := []string{"Ab3!", "4", "1", "1", "1", "1", "1", "1", "1", "1", strconv.FormatFloat(4*math.Log2(94), 'g', -1, 64)}
	assert.Equal(t, want, got)

	assert.Equal(t, "NaN", FormatRecord(features.Extract(""))[10])
}

func TestTableRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTableWriter(&buf)
	require.NoError(t, tw.WriteHeader())
	require.NoError(t, tw.WriteRecords(features.ExtractAll([]string{"abc", `quo"te,comma`, "Passw0rd"})))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(Header, ","), lines[0])

	table, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Rows())
	assert.Equal(t, 0, table.Dropped)
	assert.Equal(t, []float64{3, 12, 8}, []float64{table.X.At(0, 0), table.X.At(1, 0), table.X.At(2, 0)})
	assert.InDelta(t, 3*math.Log2(26), table.Y.AtVec(0), 1e-12)
}

func TestReadTableDropsUndefinedEntropy(t *testing.T) {
	input := strings.Join(Header, ",") + "\n" +
		"abc,3,0,3,0,0,0,1,0,0,14.101319154423276\n" +
		",0,0,0,0,0,0,0,0,0,NaN\n" +
		"x,1,0,1,0,0,0,1,0,0,+Inf\n"

	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(error) {})

	table, err := ReadTable(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Rows())
	assert.Equal(t, 2, table.Dropped)

	require.Len(t, warnings, 1)
	var uw *errors.UndefinedEntropyWarning
	require.True(t, errors.As(warnings[0], &uw))
	assert.Equal(t, 2, uw.Dropped)
}

func TestReadTableErrors(t *testing.T) {
	header := strings.Join(Header, ",") + "\n"

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"header only", header},
		{"wrong header", strings.Replace(header, "entropy", "bits", 1)},
		{"malformed length", header + "abc,three,0,3,0,0,0,1,0,0,14.1\n"},
		{"malformed entropy", header + "abc,3,0,3,0,0,0,1,0,0,high\n"},
		{"short row", header + "abc,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}

	_, err := ReadTable(strings.NewReader(header + "abc,three,0,3,0,0,0,1,0,0,14.1\n"))
	assert.Contains(t, err.Error(), "line 2")
}
