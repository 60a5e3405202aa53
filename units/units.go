// Package units infers and converts the physical units of measured series.
//
// Instrument logs rarely carry unit metadata, so the unit of a whole series is
// inferred from the median order of magnitude of its values:
//
//	pressure:    10^2..10^3 -> hPa (mbar), 10^4..10^5 -> Pa, 10^-1..10^1 -> atm
//	temperature: median < 100 -> °C, otherwise K
//
// Series conversions log the assumption they made at info level; the scalar
// variants, called once per record by streaming consumers, log at debug level.
package units

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/couchcryptid/my-code-base/numutil"
)

const (
	// HPaPerAtm is the number of hectopascal in one standard atmosphere.
	HPaPerAtm = 1013.25
	// PaPerAtm is the number of pascal in one standard atmosphere.
	PaPerAtm = 101325.0
	// ZeroCelsius is 0 °C expressed in kelvin.
	ZeroCelsius = 273.15

	kelvinThreshold = 100.0
)

var (
	// ErrUnknownPressureUnit is returned when the magnitude of a pressure
	// series matches none of hPa, Pa or atm.
	ErrUnknownPressureUnit = errors.New("units: pressure must be given in hPa, Pa or atm")

	// ErrNoMagnitude is returned for series without any non-zero value.
	ErrNoMagnitude = errors.New("units: cannot infer unit from empty or all-zero input")
)

// PressureUnit identifies a pressure unit.
type PressureUnit int

const (
	Atm PressureUnit = iota
	HPa
	Pa
)

func (u PressureUnit) String() string {
	switch u {
	case Atm:
		return "atm"
	case HPa:
		return "hPa"
	case Pa:
		return "Pa"
	default:
		return fmt.Sprintf("PressureUnit(%d)", int(u))
	}
}

// TemperatureUnit identifies a temperature unit.
type TemperatureUnit int

const (
	Celsius TemperatureUnit = iota
	Kelvin
)

func (u TemperatureUnit) String() string {
	if u == Kelvin {
		return "K"
	}
	return "°C"
}

// DetectPressureUnit infers the unit of a pressure series.
func DetectPressureUnit(values ...float64) (PressureUnit, error) {
	oom := numutil.OrderOfMagnitude(values...)
	if oom == nil {
		return 0, ErrNoMagnitude
	}
	for i := range oom {
		oom[i] = math.RoundToEven(oom[i])
	}

	m := numutil.Median(oom)
	switch {
	case m >= 2 && m <= 3:
		return HPa, nil
	case m >= 4 && m <= 5:
		return Pa, nil
	case m >= -1 && m <= 1:
		return Atm, nil
	default:
		return 0, fmt.Errorf("%w (median order of magnitude %g)", ErrUnknownPressureUnit, m)
	}
}

// PressureToAtm converts a pressure series given in hPa, Pa or atm to atm.
// The input slice is left untouched.
func PressureToAtm(values ...float64) ([]float64, error) {
	return toAtm(values, slog.LevelInfo)
}

func toAtm(values []float64, level slog.Level) ([]float64, error) {
	unit, err := DetectPressureUnit(values...)
	if err != nil {
		return nil, err
	}

	var factor float64
	switch unit {
	case HPa:
		factor = 1 / HPaPerAtm
		slog.Log(context.Background(), level, "pressure is assumed to be in hPa and was converted to atm")
	case Pa:
		factor = 1 / PaPerAtm
		slog.Log(context.Background(), level, "pressure is assumed to be in Pa and was converted to atm")
	default:
		factor = 1
		slog.Log(context.Background(), level, "pressure is assumed to be already in atm (no conversion)")
	}
	return scale(values, factor), nil
}

// PressureToMbar converts a pressure series given in hPa, Pa or atm to mbar (hPa).
func PressureToMbar(values ...float64) ([]float64, error) {
	return toMbar(values, slog.LevelInfo)
}

func toMbar(values []float64, level slog.Level) ([]float64, error) {
	unit, err := DetectPressureUnit(values...)
	if err != nil {
		return nil, err
	}

	var factor float64
	switch unit {
	case HPa:
		factor = 1
		slog.Log(context.Background(), level, "pressure is assumed to be already in mbar (no conversion)")
	case Pa:
		factor = 0.01
		slog.Log(context.Background(), level, "pressure is assumed to be in Pa and was converted to mbar (hPa)")
	default:
		factor = HPaPerAtm
		slog.Log(context.Background(), level, "pressure is assumed to be in atm and was converted to mbar (hPa)")
	}
	return scale(values, factor), nil
}

// PressureScalarToAtm is PressureToAtm for a single value, logging at debug level.
func PressureScalarToAtm(p float64) (float64, error) {
	out, err := toAtm([]float64{p}, slog.LevelDebug)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// PressureScalarToMbar is PressureToMbar for a single value, logging at debug level.
func PressureScalarToMbar(p float64) (float64, error) {
	out, err := toMbar([]float64{p}, slog.LevelDebug)
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// DetectTemperatureUnit infers whether a temperature series is in °C or K.
func DetectTemperatureUnit(values ...float64) (TemperatureUnit, error) {
	m := numutil.Median(values)
	if math.IsNaN(m) {
		return 0, ErrNoMagnitude
	}
	if m < kelvinThreshold {
		return Celsius, nil
	}
	return Kelvin, nil
}

// TemperatureToKelvin converts a temperature series given in °C or K to K.
func TemperatureToKelvin(values ...float64) ([]float64, error) {
	unit, err := DetectTemperatureUnit(values...)
	if err != nil {
		return nil, err
	}
	if unit == Kelvin {
		return scale(values, 1), nil
	}
	slog.Debug("temperature is assumed to be in °C and was converted to K")
	return shift(values, ZeroCelsius), nil
}

// TemperatureToCelsius converts a temperature series given in °C or K to °C.
func TemperatureToCelsius(values ...float64) ([]float64, error) {
	unit, err := DetectTemperatureUnit(values...)
	if err != nil {
		return nil, err
	}
	if unit == Celsius {
		return scale(values, 1), nil
	}
	slog.Debug("temperature is assumed to be in K and was converted to °C")
	return shift(values, -ZeroCelsius), nil
}

// KelvinScalar is TemperatureToKelvin for a single value.
func KelvinScalar(t float64) float64 {
	if t < kelvinThreshold {
		return t + ZeroCelsius
	}
	return t
}

// CelsiusScalar is TemperatureToCelsius for a single value.
func CelsiusScalar(t float64) float64 {
	if t < kelvinThreshold {
		return t
	}
	return t - ZeroCelsius
}

func scale(values []float64, f float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * f
	}
	return out
}

func shift(values []float64, d float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v + d
	}
	return out
}
