// Package plotutil computes the numeric side of recurring plotting chores:
// axis limits for twin axes, overlap masks for projected grids and default
// extents of polar maps. Rendering is left to the plotting library.
package plotutil

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerate is returned when a curve or axis has zero extent.
var ErrDegenerate = errors.New("plotutil: curve or axis has zero extent")

// Limits are the lower and upper bounds of an axis.
type Limits struct {
	Lower, Upper float64
}

// Extent returns Upper − Lower.
func (l Limits) Extent() float64 { return l.Upper - l.Lower }

// Relative returns the position of v on the axis, 0 at Lower and 1 at Upper.
func (l Limits) Relative(v float64) float64 { return (v - l.Lower) / l.Extent() }

// AlignCurves returns new limits for the second axis of a twin plot so that
// y2 is drawn with the same relative amplitude and offset as y1 on the first
// axis, and both curve means sit at the same height.
func AlignCurves(ax1 Limits, y1 []float64, ax2 Limits, y2 []float64) (Limits, error) {
	if len(y1) == 0 || len(y2) == 0 {
		return Limits{}, fmt.Errorf("%w: empty curve", ErrDegenerate)
	}
	ext1, ext2 := ax1.Extent(), ax2.Extent()
	amp1 := floats.Max(y1) - floats.Min(y1)
	amp2 := floats.Max(y2) - floats.Min(y2)
	if ext1 == 0 || ext2 == 0 || amp1 == 0 {
		return Limits{}, ErrDegenerate
	}

	relAmp := amp1 / ext1
	relOffset := (floats.Min(y1) - ax1.Lower) / ext1

	lower := floats.Min(y2) - relOffset*ext2
	out := Limits{Lower: lower, Upper: lower + amp2/relAmp}
	if out.Extent() == 0 {
		return Limits{}, ErrDegenerate
	}

	return AlignValues(ax1, stat.Mean(y1, nil), out, stat.Mean(y2, nil)), nil
}

// AlignValues shifts ax2, keeping its extent, so that v2 sits at the same
// relative height on ax2 as v1 does on ax1.
func AlignValues(ax1 Limits, v1 float64, ax2 Limits, v2 float64) Limits {
	ext := ax2.Extent()
	lower := v2 - ax1.Relative(v1)*ext
	return Limits{Lower: lower, Upper: lower + ext}
}
