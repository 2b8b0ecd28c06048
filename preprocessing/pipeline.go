// Package preprocessing turns a raw password corpus into a feature table
// and prepares that table for training.
package preprocessing

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/fx-xf/bfte/features"
	"github.com/fx-xf/bfte/pkg/errors"
	"github.com/fx-xf/bfte/pkg/log"
)

// DefaultChunkSize is the number of corpus lines processed per chunk.
const DefaultChunkSize = 50000

// Stats summarizes a BuildFeatureTable run.
type Stats struct {
	Lines    int // corpus lines read
	Empty    int // lines dropped as empty after trimming
	Written  int // feature rows written
	Chunks   int
	Duration time.Duration
}

// BuildFeatureTable reads the Latin-1 corpus one password per line, trims
// each line, drops empty ones, and writes a feature row per password to out.
// Lines are processed in chunks of chunkSize; the header precedes the first
// written row. ctx is checked between chunks.
func BuildFeatureTable(ctx context.Context, corpus io.Reader, out io.Writer, chunkSize int, logger log.Logger) (Stats, error) {
	if chunkSize < 1 {
		return Stats{}, errors.NewValidationError("chunk_size", "must be at least 1", chunkSize)
	}
	if logger == nil {
		logger = log.GetLoggerWithName("preprocessing")
	}

	start := time.Now()
	var stats Stats
	reader := bufio.NewReader(charmap.ISO8859_1.NewDecoder().Reader(corpus))
	tw := NewTableWriter(out)
	headerWritten := false

	for {
		if err := ctx.Err(); err != nil {
			return stats, errors.Wrap(err, "build feature table")
		}

		passwords, lines, err := readChunk(reader, chunkSize)
		if err != nil {
			return stats, errors.Wrap(err, "read corpus")
		}
		if lines == 0 {
			break
		}
		stats.Lines += lines
		stats.Empty += lines - len(passwords)
		if len(passwords) == 0 {
			continue
		}

		records := features.ExtractAll(passwords)
		if !headerWritten {
			if err := tw.WriteHeader(); err != nil {
				return stats, err
			}
			headerWritten = true
		}
		if err := tw.WriteRecords(records); err != nil {
			return stats, err
		}

		stats.Written += len(records)
		logger.Info("Chunk processed",
			log.OperationKey, log.OperationExtract,
			log.PhaseKey, log.PhasePreprocessing,
			log.ChunkKey, stats.Chunks,
			log.BatchSizeKey, len(records),
			log.SamplesKey, stats.Written,
		)
		stats.Chunks++
	}

	stats.Duration = time.Since(start)
	logger.Info("Feature table built",
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, stats.Written,
		log.DroppedKey, stats.Empty,
		log.DurationMsKey, stats.Duration.Milliseconds(),
	)
	return stats, nil
}

// readChunk reads up to n lines and returns the non-empty trimmed ones along
// with the number of lines consumed.
func readChunk(r *bufio.Reader, n int) ([]string, int, error) {
	passwords := make([]string, 0, min(n, 4096))
	lines := 0
	for lines < n {
		line, err := r.ReadString('\n')
		if line == "" && err == io.EOF {
			break
		}
		if err != nil && err != io.EOF {
			return nil, lines, err
		}
		lines++
		if p := strings.TrimSpace(line); p != "" {
			passwords = append(passwords, p)
		}
		if err == io.EOF {
			break
		}
	}
	return passwords, lines, nil
}

// BuildFeatureTableFile runs BuildFeatureTable from corpusPath into
// outputPath. The output directory is created if needed and an existing
// output file is truncated.
func BuildFeatureTableFile(ctx context.Context, corpusPath, outputPath string, chunkSize int, logger log.Logger) (Stats, error) {
	in, err := os.Open(corpusPath)
	if err != nil {
		return Stats{}, errors.Wrap(err, "open corpus")
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return Stats{}, errors.Wrap(err, "create output directory")
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return Stats{}, errors.Wrap(err, "create feature table")
	}

	stats, err := BuildFeatureTable(ctx, in, out, chunkSize, logger)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close feature table")
	}
	return stats, err
}
