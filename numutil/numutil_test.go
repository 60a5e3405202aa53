package numutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderOfMagnitude(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{name: "eleven", in: []float64{11}, want: []float64{1}},
		{name: "hundreds", in: []float64{234}, want: []float64{2}},
		{name: "one", in: []float64{1}, want: []float64{0}},
		{name: "fraction", in: []float64{0.15}, want: []float64{-1}},
		{name: "series", in: []float64{24.13, 254.2}, want: []float64{1, 2}},
		{name: "negative", in: []float64{-1013.25}, want: []float64{3}},
		{name: "zeros dropped", in: []float64{0, 101325, math.NaN()}, want: []float64{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrderOfMagnitude(tt.in...))
		})
	}
}

func TestOrderOfMagnitude_AllZero(t *testing.T) {
	assert.Nil(t, OrderOfMagnitude(0, 0))
	assert.Nil(t, OrderOfMagnitude())
}

func TestCenteredBins(t *testing.T) {
	got, err := CenteredBins([]float64{-3, -2, -1, 0, 1, 2, 3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-3.5, -2.5, -1.5, -0.5, 0.5, 1.5, 2.5, 3.5}, got, 1e-12)
}

func TestCenteredBins_TooShort(t *testing.T) {
	_, err := CenteredBins([]float64{1})
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestFindNearest(t *testing.T) {
	got, err := FindNearest([]float64{2, 4, 5, 7, 9, 10}, 4.6)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	// ties resolve to the first candidate
	got, err = FindNearest([]float64{4, 6}, 5)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	_, err = FindNearest(nil, 1)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, math.NaN(), 3, 2}))
	assert.True(t, math.IsNaN(Median([]float64{math.NaN()})))
}

func ExampleCenteredBins() {
	edges, _ := CenteredBins([]float64{-3, -2, -1, 0, 1, 2, 3})
	fmt.Println(edges)
	// Output: [-3.5 -2.5 -1.5 -0.5 0.5 1.5 2.5 3.5]
}

func ExampleFindNearest() {
	v, _ := FindNearest([]float64{2, 4, 5, 7, 9, 10}, 4.6)
	fmt.Println(v)
	// Output: 5
}
