package plotutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrLatitude is returned for latitude limits outside the pole's hemisphere.
var ErrLatitude = errors.New("plotutil: invalid latitude limits")

// Pole selects the hemisphere of a polar stereographic map.
type Pole int

const (
	North Pole = iota
	South
)

func (p Pole) String() string {
	if p == South {
		return "south"
	}
	return "north"
}

// PolarMap holds the extent of a polar stereographic map. Longitudes always
// span the full circle; only the latitude band is configurable.
type PolarMap struct {
	pole   Pole
	latMin float64
	latMax float64
}

// NewPolarMap returns a map with the default latitude band of the pole,
// [50, 90] in the north and [-90, -50] in the south.
func NewPolarMap(pole Pole) *PolarMap {
	if pole == South {
		return &PolarMap{pole: South, latMin: -90, latMax: -50}
	}
	return &PolarMap{pole: North, latMin: 50, latMax: 90}
}

// Pole returns the hemisphere of the map.
func (m *PolarMap) Pole() Pole { return m.pole }

// LatLimits returns the latitude band.
func (m *PolarMap) LatLimits() (float64, float64) { return m.latMin, m.latMax }

// SetLatLimits changes the latitude band. Both limits must lie in the map's
// hemisphere and min must be below max.
func (m *PolarMap) SetLatLimits(latMin, latMax float64) error {
	if latMin >= latMax || latMin < -90 || latMax > 90 {
		return fmt.Errorf("%w: [%g, %g]", ErrLatitude, latMin, latMax)
	}
	if (m.pole == North && latMin < 0) || (m.pole == South && latMax > 0) {
		return fmt.Errorf("%w: [%g, %g] not in the %s hemisphere", ErrLatitude, latMin, latMax, m.pole)
	}
	m.latMin, m.latMax = latMin, latMax
	return nil
}

// Extent returns [lonMin, lonMax, latMin, latMax] as expected by
// set_extent style APIs.
func (m *PolarMap) Extent() [4]float64 {
	return [4]float64{-180, 180, m.latMin, m.latMax}
}

// Boundary returns n+1 points of the circle that clips the map in axes
// coordinates, centred at (0.5, 0.5) with radius 0.5.
func (m *PolarMap) Boundary(n int) (x, y []float64) {
	if n < 3 {
		n = 100
	}
	x = make([]float64, n+1)
	y = make([]float64, n+1)
	for i := 0; i <= n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		x[i] = 0.5 + 0.5*c
		y[i] = 0.5 + 0.5*s
	}
	return x, y
}
