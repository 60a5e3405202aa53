package units

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPressureUnit(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want PressureUnit
	}{
		{name: "hPa", in: []float64{1013.25}, want: HPa},
		{name: "Pa", in: []float64{101325}, want: Pa},
		{name: "atm", in: []float64{2}, want: Atm},
		{name: "fractional atm", in: []float64{0.98}, want: Atm},
		{name: "mixed series uses median", in: []float64{1013, 1015, 1.0}, want: HPa},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectPressureUnit(tt.in...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectPressureUnit_Errors(t *testing.T) {
	_, err := DetectPressureUnit(1e8)
	require.ErrorIs(t, err, ErrUnknownPressureUnit)

	_, err = DetectPressureUnit(0, 0)
	assert.ErrorIs(t, err, ErrNoMagnitude)
}

func TestPressureToAtm(t *testing.T) {
	got, err := PressureToAtm(1013.25)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[0], 1e-12)

	got, err = PressureToAtm(101325)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got[0], 1e-12)

	got, err = PressureToAtm(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, got)

	got, err = PressureToAtm(1013.25, 1024.0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.0, 1.010609}, got, 1e-6)
}

func TestPressureToAtm_DoesNotMutateInput(t *testing.T) {
	in := []float64{1013.25, 1024.0}
	_, err := PressureToAtm(in...)
	require.NoError(t, err)
	assert.Equal(t, []float64{1013.25, 1024.0}, in)
}

func TestPressureToMbar(t *testing.T) {
	got, err := PressureScalarToMbar(1013)
	require.NoError(t, err)
	assert.Equal(t, 1013.0, got)

	got, err = PressureScalarToMbar(101300)
	require.NoError(t, err)
	assert.InDelta(t, 1013.0, got, 1e-9)

	got, err = PressureScalarToMbar(1.0)
	require.NoError(t, err)
	assert.Equal(t, 1013.25, got)

	series, err := PressureToMbar(1.013, 2.034)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1026.42225, 2060.9505}, series, 1e-9)
}

func TestPressureLogLevels(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(orig) })

	_, err := PressureScalarToAtm(1013.25)
	require.NoError(t, err)
	_, err = PressureScalarToMbar(101325)
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "scalar conversions stay below info")

	_, err = PressureToAtm(1013.25, 1012.5)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "assumed to be in hPa")
}

func TestTemperature(t *testing.T) {
	k, err := TemperatureToKelvin(20, 25)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{293.15, 298.15}, k, 1e-9)

	k, err = TemperatureToKelvin(293.15)
	require.NoError(t, err)
	assert.Equal(t, []float64{293.15}, k)

	c, err := TemperatureToCelsius(293.15)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{20}, c, 1e-9)

	assert.InDelta(t, 298.15, KelvinScalar(25), 1e-9)
	assert.InDelta(t, 25, CelsiusScalar(298.15), 1e-9)
	assert.Equal(t, 12.5, CelsiusScalar(12.5))

	_, err = TemperatureToKelvin()
	assert.ErrorIs(t, err, ErrNoMagnitude)
}

func TestUnitStrings(t *testing.T) {
	assert.Equal(t, "hPa", HPa.String())
	assert.Equal(t, "Pa", Pa.String())
	assert.Equal(t, "atm", Atm.String())
	assert.Equal(t, "K", Kelvin.String())
}

func ExamplePressureToMbar() {
	p, _ := PressureToMbar(1.0)
	fmt.Println(p)
	// Output: [1013.25]
}
