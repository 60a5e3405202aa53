package ocean

import (
	"errors"
	"fmt"
	"math"

	"github.com/couchcryptid/my-code-base/units"
)

// ErrUnknownAir is returned when the air type is neither wet nor dry.
var ErrUnknownAir = errors.New("ocean: air must be either 'wet' or 'dry'")

// Air describes the air in which a CO2 mole fraction was measured.
type Air string

const (
	Wet Air = "wet"
	Dry Air = "dry"
)

// ParseAir maps a case-sensitive "wet"/"dry" string to an Air value.
// An empty string defaults to Wet.
func ParseAir(s string) (Air, error) {
	switch Air(s) {
	case "", Wet:
		return Wet, nil
	case Dry:
		return Dry, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAir, s)
	}
}

// Lewis (1981) / PSS-78 coefficients.
var (
	salA = [6]float64{0.008, -0.1692, 25.3851, 14.0941, -7.0261, 2.7081}
	salB = [6]float64{0.0005, -0.0056, -0.0066, -0.0375, 0.0636, -0.0144}
	salC = [5]float64{6.766097e-1, 2.00564e-2, 1.104259e-4, -6.9698e-7, 1.0031e-9}
)

const (
	salA1 = 2.070e-5
	salA2 = -6.370e-10
	salA3 = 3.989e-15
	salB1 = 3.426e-2
	salB2 = 4.464e-4
	salB3 = 4.215e-1
	salB4 = -3.107e-3
	salK  = 0.0162

	// conductivity of standard seawater (S=35, T=15 °C, p=0) in mS/cm
	standardConductivity = 42.914
)

// CondToSal computes practical salinity from conductivity C (mS/cm),
// temperature T (°C or K) and pressure p (hPa, Pa or atm).
// Conductivities in S/m must be multiplied by 10 beforehand.
func CondToSal(c, t, p float64) (float64, error) {
	mbar, err := units.PressureScalarToMbar(p)
	if err != nil {
		return 0, fmt.Errorf("cond2sal: %w", err)
	}
	dbar := mbar / 100
	t = units.CelsiusScalar(t)

	r := c / standardConductivity
	rT := poly(salC[:], t)
	alpha := (salA1*dbar + salA2*dbar*dbar + salA3*dbar*dbar*dbar) /
		(1 + salB1*t + salB2*t*t + salB3*r + salB4*t*r)
	ratio := r / (rT * (1 + alpha))

	xi := math.Sqrt(ratio)
	psi := poly(salB[:], xi)
	dSal := psi * (t - 15) / (1 + salK*(t-15))

	return poly(salA[:], xi) + dSal, nil
}

// WaterVaporPressure returns the water vapour pressure (atm) over seawater
// of temperature t (°C or K) and salinity s (PSU).
func WaterVaporPressure(t, s float64) float64 {
	t = units.KelvinScalar(t)
	return math.Exp(24.4543 - 67.4509*(100/t) - 4.8489*math.Log(t/100) - 0.000544*s)
}

// PPMToMicroatm converts a CO2 mole fraction (ppm) into partial pressure
// (µatm): pCO2 = xCO2·(pEqu − pH2O). For Dry air the water vapour pressure
// is derived from t and s; for Wet air pH2O is zero and t, s are ignored.
func PPMToMicroatm(xCO2, pEqu float64, air Air, t, s float64) (float64, error) {
	p, err := units.PressureScalarToAtm(pEqu)
	if err != nil {
		return 0, fmt.Errorf("ppm2uatm: %w", err)
	}

	var pH2O float64
	switch air {
	case Wet:
	case Dry:
		pH2O = WaterVaporPressure(t, s)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAir, air)
	}

	return xCO2 * (p - pH2O), nil
}

// poly evaluates Σ coef[i]·x^i.
func poly(coef []float64, x float64) float64 {
	var sum float64
	for i := len(coef) - 1; i >= 0; i-- {
		sum = sum*x + coef[i]
	}
	return sum
}
