package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrShape is returned when a field and its coordinate grids are not
// rectangular or differ in shape.
var ErrShape = errors.New("geo: field and coordinates must be rectangular grids of equal shape")

// GridPoint is a position in fractional grid index space.
type GridPoint struct {
	Row float64
	Col float64
}

// Segment is one straight piece of an iso-line.
type Segment [2]GridPoint

// Corner bits of a marching-squares cell, set when the corner is >= level.
const (
	bottomLeft = 1 << iota
	bottomRight
	topRight
	topLeft
)

type edge int

const (
	edgeTop edge = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// cases maps a corner configuration to the cell edges joined by a segment.
// The two saddles (5 and 10) are resolved separately.
var cases = [16][][2]edge{
	1:  {{edgeLeft, edgeBottom}},
	2:  {{edgeBottom, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeTop, edgeRight}},
	6:  {{edgeTop, edgeBottom}},
	7:  {{edgeLeft, edgeTop}},
	8:  {{edgeLeft, edgeTop}},
	9:  {{edgeTop, edgeBottom}},
	11: {{edgeTop, edgeRight}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeBottom, edgeRight}},
	14: {{edgeLeft, edgeBottom}},
}

// Contour traces the iso-line of field at level with marching squares.
// Segments are returned in grid index space; cells touching a NaN are
// skipped. Saddle cells are resolved with the mean of the four corners.
func Contour(field [][]float64, level float64) ([]Segment, error) {
	rows, cols, err := shape(field)
	if err != nil {
		return nil, err
	}

	var out []Segment
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			tl, tr := field[i][j], field[i][j+1]
			bl, br := field[i+1][j], field[i+1][j+1]
			if math.IsNaN(tl) || math.IsNaN(tr) || math.IsNaN(bl) || math.IsNaN(br) {
				continue
			}

			idx := 0
			if tl >= level {
				idx |= topLeft
			}
			if tr >= level {
				idx |= topRight
			}
			if br >= level {
				idx |= bottomRight
			}
			if bl >= level {
				idx |= bottomLeft
			}

			pairs := cases[idx]
			if idx == 5 || idx == 10 {
				pairs = saddle(idx, (tl+tr+bl+br)/4 >= level)
			}

			for _, p := range pairs {
				out = append(out, Segment{
					crossing(p[0], i, j, tl, tr, bl, br, level),
					crossing(p[1], i, j, tl, tr, bl, br, level),
				})
			}
		}
	}
	return out, nil
}

func saddle(idx int, centreHigh bool) [][2]edge {
	// Case 5 has the high corners at top right and bottom left. When the
	// centre is high they are connected and the low corners are cut off.
	isolateLows := centreHigh
	if idx == 10 {
		isolateLows = !centreHigh
	}
	if isolateLows {
		return [][2]edge{{edgeLeft, edgeTop}, {edgeBottom, edgeRight}}
	}
	return [][2]edge{{edgeTop, edgeRight}, {edgeLeft, edgeBottom}}
}

func crossing(e edge, i, j int, tl, tr, bl, br, level float64) GridPoint {
	r, c := float64(i), float64(j)
	switch e {
	case edgeTop:
		return GridPoint{Row: r, Col: c + frac(tl, tr, level)}
	case edgeRight:
		return GridPoint{Row: r + frac(tr, br, level), Col: c + 1}
	case edgeBottom:
		return GridPoint{Row: r + 1, Col: c + frac(bl, br, level)}
	default:
		return GridPoint{Row: r + frac(tl, bl, level), Col: c}
	}
}

func frac(a, b, level float64) float64 {
	if a == b {
		return 0.5
	}
	return (level - a) / (b - a)
}

func shape(grid [][]float64) (int, int, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return 0, 0, fmt.Errorf("%w: empty grid", ErrShape)
	}
	cols := len(grid[0])
	for _, row := range grid {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: ragged grid", ErrShape)
		}
	}
	return len(grid), cols, nil
}
