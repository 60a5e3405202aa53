package provenance

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnsupported is returned by Save for object types it cannot write.
var ErrUnsupported = errors.New("provenance: no save implementation for this type, use its native method")

const historyKey = "history"

// historyLayout is the timestamp format of history entries.
const historyLayout = "2006-01-02 15:04:05"

// Attrs are free-form global attributes of a dataset.
type Attrs map[string]string

// AddHistory appends msg to the "history" attribute, allocating the map if
// it is nil.
func (a *Attrs) AddHistory(msg string) {
	if *a == nil {
		*a = Attrs{}
	}
	(*a)[historyKey] += msg
	slog.Debug("wrote to history", "entry", msg)
}

// History returns the accumulated history.
func (a Attrs) History() string { return a[historyKey] }

// Table is a rectangular data table written as CSV.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Dataset is a set of named variables with attributes, written as JSON.
type Dataset struct {
	Attrs     Attrs     `json:"attrs"`
	Variables Variables `json:"variables"`
}

// Variables maps variable names to their values. Missing values (NaN or
// ±Inf) are encoded as JSON null and decoded back to NaN.
type Variables map[string][]float64

func (v Variables) MarshalJSON() ([]byte, error) {
	out := make(map[string][]*float64, len(v))
	for name, values := range v {
		col := make([]*float64, len(values))
		for i := range values {
			if !math.IsNaN(values[i]) && !math.IsInf(values[i], 0) {
				col[i] = &values[i]
			}
		}
		out[name] = col
	}
	return json.Marshal(out)
}

func (v *Variables) UnmarshalJSON(data []byte) error {
	var in map[string][]*float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(Variables, len(in))
	for name, col := range in {
		values := make([]float64, len(col))
		for i, p := range col {
			if p == nil {
				values[i] = math.NaN()
				continue
			}
			values[i] = *p
		}
		out[name] = values
	}
	*v = out
	return nil
}

// Options control Save.
type Options struct {
	// AddHash appends "_<git commit>" to the file stem.
	AddHash bool
}

// Save writes obj to path together with its provenance and returns the path
// actually written. Datasets get a history entry naming the calling code.
func Save(ctx context.Context, obj any, path string, opts Options) (string, error) {
	meta, err := Collect(ctx, 1)
	if err != nil {
		return "", err
	}

	out := path
	if opts.AddHash {
		out = withSuffix(path, "_"+meta.GitCommit)
	}

	var kind string
	switch v := obj.(type) {
	case *Table:
		kind = "Table"
		err = writeTable(v, out)
	case *Dataset:
		kind = "Dataset"
		err = writeDataset(v, out, meta)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupported, obj)
	}
	if err != nil {
		return "", err
	}

	slog.Info("saved output", "type", kind, "path", out, "produced_by", meta.String())
	return out, nil
}

func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

func writeTable(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(t.Columns))
		}
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

// writeDataset records the history entry on ds only once the file is written.
func writeDataset(ds *Dataset, path string, meta Metadata) error {
	entry := fmt.Sprintf("%s: File saved by %s;", clock.Now().Format(historyLayout), meta)

	saved := Dataset{Attrs: maps.Clone(ds.Attrs), Variables: ds.Variables}
	saved.Attrs.AddHistory(entry)

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	ds.Attrs.AddHistory(entry)
	return nil
}
