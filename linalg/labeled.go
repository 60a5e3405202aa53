package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Labeled is a dense matrix whose rows and columns carry labels, the way a
// data frame carries an index and column names.
type Labeled struct {
	Data *mat.Dense
	Rows []string
	Cols []string
}

// NewLabeled validates that the labels match the matrix shape.
func NewLabeled(data *mat.Dense, rows, cols []string) (*Labeled, error) {
	r, c := data.Dims()
	if len(rows) != r || len(cols) != c {
		return nil, fmt.Errorf("%w: %dx%d matrix with %d row and %d column labels",
			ErrLabels, r, c, len(rows), len(cols))
	}
	return &Labeled{Data: data, Rows: rows, Cols: cols}, nil
}

// At returns the element at the given row and column labels.
func (l *Labeled) At(row, col string) (float64, bool) {
	i, j := indexOf(l.Rows, row), indexOf(l.Cols, col)
	if i < 0 || j < 0 {
		return 0, false
	}
	return l.Data.At(i, j), true
}

// InvLabeled inverts a square labelled matrix, keeping its labels.
func InvLabeled(l *Labeled) (*Labeled, error) {
	inv, err := Inv(l.Data)
	if err != nil {
		return nil, err
	}
	return &Labeled{Data: inv, Rows: clone(l.Rows), Cols: clone(l.Cols)}, nil
}

// EmpiricalCovarianceLabeled computes the covariance across the labelled
// rows of l. Both axes of the result carry the row labels.
func EmpiricalCovarianceLabeled(l *Labeled, bias bool) (*Labeled, error) {
	cov, err := EmpiricalCovariance(l.Data, bias)
	if err != nil {
		return nil, err
	}
	return &Labeled{Data: mat.DenseCopyOf(cov), Rows: clone(l.Rows), Cols: clone(l.Rows)}, nil
}

func indexOf(labels []string, s string) int {
	for i, v := range labels {
		if v == s {
			return i
		}
	}
	return -1
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
