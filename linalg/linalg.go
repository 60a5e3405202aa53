// Package linalg wraps the matrix operations used in daily analysis work:
// inversion and the empirical covariance matrix, for plain gonum matrices
// and for labelled tables whose rows and columns carry names.
package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotSquare indicates an operation that requires a square matrix.
	ErrNotSquare = errors.New("linalg: cannot invert non-quadratic object")

	// ErrSingular indicates a matrix without an inverse.
	ErrSingular = errors.New("linalg: matrix is singular")

	// ErrTooFewSamples indicates fewer samples than degrees of freedom require.
	ErrTooFewSamples = errors.New("linalg: not enough samples for the requested degrees of freedom")

	// ErrLabels indicates label slices that do not match the matrix shape.
	ErrLabels = errors.New("linalg: labels do not match matrix shape")
)

// Inv returns the inverse of the square matrix m.
func Inv(m mat.Matrix) (*mat.Dense, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, r, c)
	}

	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		return nil, fmt.Errorf("invert: %w", err)
	}
	return &inv, nil
}

// EmpiricalCovariance returns the covariance matrix of x, whose rows are
// variables and columns are samples:
//
//	Σ = D·Dᵀ / dof
//
// where D holds the anomalies of each row from its mean. dof is the number
// of samples n when bias is true and n−1 otherwise.
func EmpiricalCovariance(x mat.Matrix, bias bool) (*mat.SymDense, error) {
	rows, n := x.Dims()
	dof := n - 1
	if bias {
		dof = n
	}
	if dof <= 0 {
		return nil, fmt.Errorf("%w: %d samples", ErrTooFewSamples, n)
	}

	d := mat.DenseCopyOf(x)
	for i := 0; i < rows; i++ {
		row := d.RawRowView(i)
		var mean float64
		for _, v := range row {
			mean += v
		}
		mean /= float64(n)
		for j := range row {
			row[j] -= mean
		}
	}

	cov := mat.NewSymDense(rows, nil)
	cov.SymOuterK(1/float64(dof), d)
	return cov, nil
}
