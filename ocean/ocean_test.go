package ocean

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondToSal(t *testing.T) {
	got, err := CondToSal(52, 25, 1013)
	require.NoError(t, err)
	assert.InDelta(t, 34.20810771080768, got, 1e-9)

	// Kelvin and Pa inputs are converted before evaluation.
	kelvin, err := CondToSal(52, 298.15, 101300)
	require.NoError(t, err)
	assert.InDelta(t, got, kelvin, 1e-9)
}

func TestCondToSal_BadPressure(t *testing.T) {
	_, err := CondToSal(52, 25, 0)
	assert.Error(t, err)
}

func TestWaterVaporPressure(t *testing.T) {
	assert.InDelta(t, 0.022622583214417243, WaterVaporPressure(20, 35), 1e-12)
	assert.InDelta(t, WaterVaporPressure(20, 35), WaterVaporPressure(293.15, 35), 1e-12)
}

func TestPPMToMicroatm(t *testing.T) {
	wet, err := PPMToMicroatm(400, 1013.25, Wet, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, wet, 1e-9)

	dry, err := PPMToMicroatm(400, 1013.25, Dry, 20, 35)
	require.NoError(t, err)
	assert.InDelta(t, 390.9509667142331, dry, 1e-9)

	_, err = PPMToMicroatm(400, 1013.25, Air("moist"), 20, 35)
	assert.ErrorIs(t, err, ErrUnknownAir)
}

func TestParseAir(t *testing.T) {
	a, err := ParseAir("")
	require.NoError(t, err)
	assert.Equal(t, Wet, a)

	a, err = ParseAir("dry")
	require.NoError(t, err)
	assert.Equal(t, Dry, a)

	_, err = ParseAir("DRY")
	assert.ErrorIs(t, err, ErrUnknownAir)
}

func TestTemperatureCorrection(t *testing.T) {
	tests := []struct {
		name   string
		method CorrectionMethod
		want   float64
	}{
		{name: "takahashi 2009", method: Takahashi2009, want: 383.733402483212},
		{name: "takahashi 1993", method: Takahashi1993, want: 383.43286511325533},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TemperatureCorrection(400, 20, 21, tt.method)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	same, err := TemperatureCorrection(400, 20, 20, Takahashi2009)
	require.NoError(t, err)
	assert.Equal(t, 400.0, same)

	_, err = TemperatureCorrection(400, 20, 21, "Weiss1974")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestFugacity(t *testing.T) {
	f, err := Fugacity(400, 1013.25, 20, nil)
	require.NoError(t, err)
	assert.InDelta(t, 398.64335783577695, f, 1e-9)

	x := 400.0
	f, err = Fugacity(400, 1.0, 293.15, &x)
	require.NoError(t, err)
	assert.InDelta(t, 398.64274523458204, f, 1e-9)

	assert.Less(t, f, 400.0, "fugacity is below partial pressure at surface conditions")
}

func ExampleCondToSal() {
	s, _ := CondToSal(52, 25, 1013)
	fmt.Printf("%.6f\n", s)
	// Output: 34.208108
}
