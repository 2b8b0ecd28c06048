package preprocessing

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/fx-xf/bfte/features"
	"github.com/fx-xf/bfte/pkg/errors"
)

// Header is the feature table's column row.
var Header = []string{
	"password", "length",
	"num_digits", "num_lower", "num_upper", "num_special",
	"has_digit", "has_lower", "has_upper", "has_special",
	"entropy",
}

const (
	colLength  = 1
	colEntropy = 10
)

// TableWriter writes feature records as CSV rows.
type TableWriter struct {
	w *csv.Writer
}

// NewTableWriter wraps w.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column row.
func (tw *TableWriter) WriteHeader() error {
	if err := tw.w.Write(Header); err != nil {
		return errors.Wrap(err, "write header")
	}
	tw.w.Flush()
	return tw.w.Error()
}

// WriteRecords writes one row per record and flushes.
func (tw *TableWriter) WriteRecords(records []features.Record) error {
	for i := range records {
		if err := tw.w.Write(FormatRecord(records[i])); err != nil {
			return errors.Wrapf(err, "write record %d", i)
		}
	}
	tw.w.Flush()
	return tw.w.Error()
}

// FormatRecord renders rec as table fields. Flags are 0/1 and an undefined
// entropy is written as NaN.
func FormatRecord(rec features.Record) []string {
	return []string{
		rec.Password,
		strconv.Itoa(rec.Length),
		strconv.Itoa(rec.NumDigits),
		strconv.Itoa(rec.NumLower),
		strconv.Itoa(rec.NumUpper),
		strconv.Itoa(rec.NumSpecial),
		flag(rec.HasDigit),
		flag(rec.HasLower),
		flag(rec.HasUpper),
		flag(rec.HasSpecial),
		strconv.FormatFloat(rec.Entropy, 'g', -1, 64),
	}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Table is the training view of a feature table: the length column as an
// m×1 matrix and the entropy target.
type Table struct {
	X *mat.Dense
	Y *mat.VecDense

	// Dropped counts rows whose entropy was NaN or infinite.
	Dropped int
}

// Rows returns the number of usable rows.
func (t *Table) Rows() int {
	return t.Y.Len()
}

// ReadTable parses a feature table. Rows with an undefined entropy are
// skipped and reported through an UndefinedEntropyWarning.
func ReadTable(r io.Reader) (*Table, error) {
	return readTable(r, "feature table")
}

// ReadTableFile opens path and parses it with ReadTable.
func ReadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open feature table")
	}
	defer f.Close()
	return readTable(f, path)
}

func readTable(r io.Reader, source string) (*Table, error) {
	const op = "ReadTable"

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, errors.NewValueError(op, "unexpected header column "+strconv.Quote(header[i])+", want "+strconv.Quote(name))
		}
	}

	var lengths, entropies []float64
	dropped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		line, _ := cr.FieldPos(0)

		length, err := strconv.Atoi(row[colLength])
		if err != nil {
			return nil, errors.NewValueError(op, "line "+strconv.Itoa(line)+": malformed length "+strconv.Quote(row[colLength]))
		}
		entropy, err := strconv.ParseFloat(row[colEntropy], 64)
		if err != nil {
			return nil, errors.NewValueError(op, "line "+strconv.Itoa(line)+": malformed entropy "+strconv.Quote(row[colEntropy]))
		}
		if math.IsNaN(entropy) || math.IsInf(entropy, 0) {
			dropped++
			continue
		}
		lengths = append(lengths, float64(length))
		entropies = append(entropies, entropy)
	}

	if dropped > 0 {
		errors.Warn(errors.NewUndefinedEntropyWarning(source, dropped))
	}
	if len(lengths) == 0 {
		return nil, errors.NewModelError(op, "no rows with defined entropy", errors.ErrEmptyData)
	}

	return &Table{
		X:       mat.NewDense(len(lengths), 1, lengths),
		Y:       mat.NewVecDense(len(entropies), entropies),
		Dropped: dropped,
	}, nil
}
