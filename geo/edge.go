package geo

import (
	"fmt"
	"math"
)

// EdgeSegments returns the boundary of the region field >= level as pairs of
// coordinates. lat and lon are grids of the same shape as field; segment
// endpoints are interpolated linearly between neighbouring grid nodes. The
// outer rim of the grid is not part of the boundary.
func EdgeSegments(field, lat, lon [][]float64, level float64) ([][2]Point, error) {
	if err := sameShape(field, lat, lon); err != nil {
		return nil, err
	}

	segs, err := Contour(field, level)
	if err != nil {
		return nil, err
	}

	out := make([][2]Point, len(segs))
	for i, s := range segs {
		out[i] = [2]Point{locate(lat, lon, s[0]), locate(lat, lon, s[1])}
	}
	return out, nil
}

// EdgeLength is the total length of the boundary of the region field >= level,
// e.g. the sea-ice edge at 15% concentration. The result is in metres for
// GreatCircle and in coordinate units for Planar. A field without a boundary
// has length 0.
func EdgeLength(field, lat, lon [][]float64, level float64, metric Metric) (float64, error) {
	if metric == nil {
		return 0, ErrMetric
	}
	segs, err := EdgeSegments(field, lat, lon, level)
	if err != nil {
		return 0, err
	}

	_, spherical := metric.(GreatCircle)
	var total float64
	for _, s := range segs {
		if spherical {
			if err := s[0].Validate(); err != nil {
				return 0, err
			}
			if err := s[1].Validate(); err != nil {
				return 0, err
			}
		}
		total += metric.Distance(s[0], s[1])
	}
	return total, nil
}

func sameShape(field, lat, lon [][]float64) error {
	rows, cols, err := shape(field)
	if err != nil {
		return err
	}
	for _, coord := range []struct {
		name string
		grid [][]float64
	}{{"lat", lat}, {"lon", lon}} {
		name := coord.name
		r, c, err := shape(coord.grid)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if r != rows || c != cols {
			return fmt.Errorf("%w: %s is %dx%d, field is %dx%d", ErrShape, name, r, c, rows, cols)
		}
	}
	return nil
}

// locate interpolates the coordinates of a grid point lying on a cell edge.
func locate(lat, lon [][]float64, p GridPoint) Point {
	return Point{Lat: bilinear(lat, p), Lon: bilinear(lon, p)}
}

func bilinear(g [][]float64, p GridPoint) float64 {
	r0, c0 := int(math.Floor(p.Row)), int(math.Floor(p.Col))
	r1, c1 := min(r0+1, len(g)-1), min(c0+1, len(g[0])-1)
	fr, fc := p.Row-float64(r0), p.Col-float64(c0)

	top := g[r0][c0] + fc*(g[r0][c1]-g[r0][c0])
	bottom := g[r1][c0] + fc*(g[r1][c1]-g[r1][c0])
	return top + fr*(bottom-top)
}
