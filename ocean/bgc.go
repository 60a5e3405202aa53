package ocean

import (
	"errors"
	"fmt"
	"math"

	"github.com/couchcryptid/my-code-base/units"
)

// ErrUnknownMethod is returned for an unsupported temperature correction method.
var ErrUnknownMethod = errors.New("ocean: unknown method for temperature correction")

// CorrectionMethod selects the published temperature correction.
type CorrectionMethod string

const (
	Takahashi2009 CorrectionMethod = "Takahashi2009"
	Takahashi1993 CorrectionMethod = "Takahashi1993"
)

// gasConstant in cm³·atm·K⁻¹·mol⁻¹.
const gasConstant = 8.2057366080960e-2 * 1000

// TemperatureCorrection corrects a CO2 quantity (xCO2, pCO2 or fCO2) measured
// at tIn (typically the equilibrator) to tOut (typically the SST):
//
//	Takahashi2009: CO2·exp(0.0433·(tOut−tIn) − 4.35e−5·(tOut²−tIn²))
//	Takahashi1993: CO2·exp(0.0423·(tOut−tIn))
func TemperatureCorrection(co2, tOut, tIn float64, method CorrectionMethod) (float64, error) {
	switch method {
	case Takahashi2009:
		return co2 * math.Exp(0.0433*(tOut-tIn)-4.35e-5*(tOut*tOut-tIn*tIn)), nil
	case Takahashi1993:
		return co2 * math.Exp(0.0423*(tOut-tIn)), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// Fugacity computes the fugacity of CO2 from its partial pressure (µatm), the
// equilibrator pressure and the in-situ temperature. When xCO2 (ppm) is
// given, the δ virial term is weighted by (1 − xCO2·1e−6)²; otherwise that
// factor is 1, as is common in the literature. The result has the unit of pCO2.
func Fugacity(pCO2, pEqu, sst float64, xCO2 *float64) (float64, error) {
	p, err := units.PressureScalarToAtm(pEqu)
	if err != nil {
		return 0, fmt.Errorf("fugacity: %w", err)
	}
	t := units.KelvinScalar(sst)

	b := -1636.75 + 12.0408*t - 3.27957e-2*t*t + 3.16528e-5*t*t*t
	delta := 57.7 - 0.118*t

	xc := 1.0
	if xCO2 != nil {
		xc = 1 - *xCO2*1e-6
	}

	return pCO2 * math.Exp(p*(b+2*delta*xc*xc)/(gasConstant*t)), nil
}
