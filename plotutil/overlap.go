package plotutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrShape is returned when coordinate grids are not rectangular or differ in shape.
var ErrShape = errors.New("plotutil: coordinate grids must be rectangular and of equal shape")

// MaskOverlap finds the grid cells that wrap around a projected map. A cell
// is masked when either of its diagonals is NaN or longer than half the
// projection's x range, which is what produces smeared contours across the
// map on stereographic projections.
//
// x and y are projected 2D coordinates. The mask covers the cells, i.e. it
// has one row and column fewer than x; when the data has the same shape as
// the coordinates (contour, contourf), the mask is extended by repeating its
// last row and column so it matches the data.
func MaskOverlap(x, y [][]float64, xRange float64, dataRows, dataCols int) ([][]bool, error) {
	rows, cols, err := gridShape(x, y)
	if err != nil {
		return nil, err
	}
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: need at least 2x2 points", ErrShape)
	}

	limit := math.Abs(xRange) / 2
	mask := make([][]bool, rows-1)
	for i := range mask {
		mask[i] = make([]bool, cols-1)
		for j := range mask[i] {
			d0 := math.Hypot(x[i+1][j+1]-x[i][j], y[i+1][j+1]-y[i][j])
			d1 := math.Hypot(x[i+1][j]-x[i][j+1], y[i+1][j]-y[i][j+1])
			mask[i][j] = math.IsNaN(d0) || math.IsNaN(d1) || d0 > limit || d1 > limit
		}
	}

	if dataRows != rows || dataCols != cols {
		return mask, nil
	}

	ext := make([][]bool, rows)
	for i := range ext {
		ext[i] = make([]bool, cols)
		if i < rows-1 {
			copy(ext[i], mask[i])
		} else {
			copy(ext[i], ext[i-1])
		}
		ext[i][cols-1] = ext[i][cols-2]
	}
	return ext, nil
}

// AnyMasked reports whether at least one cell of the mask is set.
func AnyMasked(mask [][]bool) bool {
	for _, row := range mask {
		for _, m := range row {
			if m {
				return true
			}
		}
	}
	return false
}

func gridShape(x, y [][]float64) (int, int, error) {
	if len(x) == 0 || len(x) != len(y) {
		return 0, 0, ErrShape
	}
	cols := len(x[0])
	for i := range x {
		if len(x[i]) != cols || len(y[i]) != cols {
			return 0, 0, ErrShape
		}
	}
	return len(x), cols, nil
}
