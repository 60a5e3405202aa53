// Package timeseries contains routines for monthly climate time series:
// weighted annual means, linear trends, seasonal decomposition and the
// expansion of annual values back onto a monthly axis.
package timeseries

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrLength is returned when times and values differ in length.
	ErrLength = errors.New("timeseries: times and values differ in length")

	// ErrEmpty is returned for series without samples.
	ErrEmpty = errors.New("timeseries: empty series")

	// ErrWeights is returned when the monthly weights of a year do not sum to one.
	ErrWeights = errors.New("timeseries: the sum of the weights should be 1.0")

	// ErrWindow is returned for a non-positive rolling window.
	ErrWindow = errors.New("timeseries: frequency must be positive")
)

// Series is a time-indexed sequence of values. NaN marks a missing value.
type Series struct {
	Times  []time.Time
	Values []float64
}

// NewSeries validates and wraps times and values.
func NewSeries(times []time.Time, values []float64) (Series, error) {
	if len(times) != len(values) {
		return Series{}, fmt.Errorf("%w: %d times, %d values", ErrLength, len(times), len(values))
	}
	return Series{Times: times, Values: values}, nil
}

// Monthly builds a series of n consecutive month starts beginning at the
// month of start.
func Monthly(start time.Time, values []float64) Series {
	times := make([]time.Time, len(values))
	y, m, _ := start.Date()
	for i := range values {
		times[i] = time.Date(y, m+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
	}
	return Series{Times: times, Values: values}
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Values) }

// Annual is a series with one value per calendar year.
type Annual struct {
	Years  []int
	Values []float64
}

// IsMonthly reports whether every step of the series spans 28 to 31 days.
func IsMonthly(s Series) bool {
	if len(s.Times) < 2 {
		return false
	}
	for i := 1; i < len(s.Times); i++ {
		days := s.Times[i].Sub(s.Times[i-1]).Hours() / 24
		if days < 28 || days > 31 {
			return false
		}
	}
	return true
}

// DaysInMonth returns the number of days of the month containing t.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeightedAnnualMean averages a monthly series per calendar year, weighting
// each month by its number of days. Missing months receive zero weight, which
// lowers the total weight of the affected year instead of biasing its mean.
// Years whose months are all missing yield NaN.
func WeightedAnnualMean(s Series) (Annual, error) {
	if s.Len() == 0 {
		return Annual{}, ErrEmpty
	}
	if len(s.Times) != len(s.Values) {
		return Annual{}, ErrLength
	}
	if !IsMonthly(s) {
		slog.Warn("frequency seems to be not monthly, consider another averaging method")
	}

	type acc struct {
		days, sum, weight float64
		idx               []int
	}
	var years []int
	byYear := make(map[int]*acc)
	for i, t := range s.Times {
		y := t.Year()
		a, ok := byYear[y]
		if !ok {
			a = &acc{}
			byYear[y] = a
			years = append(years, y)
		}
		a.days += float64(DaysInMonth(t))
		a.idx = append(a.idx, i)
	}

	out := Annual{Years: years, Values: make([]float64, len(years))}
	for k, y := range years {
		a := byYear[y]
		var total float64
		for _, i := range a.idx {
			w := float64(DaysInMonth(s.Times[i])) / a.days
			total += w
			if v := s.Values[i]; !math.IsNaN(v) {
				a.sum += v * w
				a.weight += w
			}
		}
		if math.Abs(total-1) > 1e-8 {
			return Annual{}, fmt.Errorf("%w: year %d sums to %g", ErrWeights, y, total)
		}
		out.Values[k] = a.sum / a.weight
	}
	return out, nil
}

// Trend holds the least-squares line fitted against the sample index.
type Trend struct {
	Slope     float64
	Intercept float64
}

// At evaluates the trend at sample index i.
func (t Trend) At(i int) float64 { return t.Intercept + t.Slope*float64(i) }

// LinearTrend fits values against their index 0..n-1, skipping NaN samples.
func LinearTrend(values []float64) (Trend, error) {
	xs := make([]float64, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	if len(xs) < 2 {
		return Trend{}, fmt.Errorf("%w: need two valid samples for a trend", ErrEmpty)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Trend{Slope: beta, Intercept: alpha}, nil
}

// Decomposition holds the components of a seasonal decomposition. All
// slices share the time axis of the input except Seasonality, which holds
// one value per calendar month (January first).
type Decomposition struct {
	Times          []time.Time
	Trend          []float64
	Detrended      []float64
	Seasonality    [12]float64
	Residuals      []float64
	Deseasonalized []float64
}

// SeasonalDecompose removes a linear trend, takes the mean of the detrended
// values per calendar month as the seasonal cycle, and returns the residuals
// and the deseasonalized series (residuals plus trend).
func SeasonalDecompose(s Series) (Decomposition, error) {
	if len(s.Times) != len(s.Values) {
		return Decomposition{}, ErrLength
	}
	tr, err := LinearTrend(s.Values)
	if err != nil {
		return Decomposition{}, err
	}

	n := s.Len()
	d := Decomposition{
		Times:          s.Times,
		Trend:          make([]float64, n),
		Detrended:      make([]float64, n),
		Residuals:      make([]float64, n),
		Deseasonalized: make([]float64, n),
	}
	for i, v := range s.Values {
		d.Trend[i] = tr.At(i)
		d.Detrended[i] = v - d.Trend[i]
	}
	d.Seasonality = monthlyMeans(s.Times, d.Detrended)
	for i, t := range s.Times {
		d.Residuals[i] = d.Detrended[i] - d.Seasonality[t.Month()-1]
		d.Deseasonalized[i] = d.Residuals[i] + d.Trend[i]
	}
	return d, nil
}

// Deseasonalize returns the series with its mean seasonal cycle removed.
// The linear trend is kept.
func Deseasonalize(s Series) (Series, error) {
	d, err := SeasonalDecompose(s)
	if err != nil {
		return Series{}, err
	}
	return Series{Times: s.Times, Values: d.Deseasonalized}, nil
}

// RollingDecomposition is the result of RollingDecompose.
type RollingDecomposition struct {
	Times       []time.Time
	Raw         []float64
	Trend       []float64
	Seasonality []float64
	Detrended   []float64
	Residuals   []float64
}

// RollingDecompose splits a series into a trend from a centred running mean
// of width freq+1, a seasonal component from the monthly means of the
// detrended values, and residuals. The trend is NaN wherever the window is
// incomplete or contains a missing value.
func RollingDecompose(s Series, freq int) (RollingDecomposition, error) {
	if freq <= 0 {
		return RollingDecomposition{}, ErrWindow
	}
	if len(s.Times) != len(s.Values) {
		return RollingDecomposition{}, ErrLength
	}

	n := s.Len()
	r := RollingDecomposition{
		Times:       s.Times,
		Raw:         append([]float64(nil), s.Values...),
		Trend:       centeredMean(s.Values, freq+1),
		Seasonality: make([]float64, n),
		Detrended:   make([]float64, n),
		Residuals:   make([]float64, n),
	}
	floats.SubTo(r.Detrended, r.Raw, r.Trend)

	means := monthlyMeans(s.Times, r.Detrended)
	for i, t := range s.Times {
		r.Seasonality[i] = means[t.Month()-1]
	}
	floats.SubTo(r.Residuals, r.Detrended, r.Seasonality)
	return r, nil
}

// ExtendAnnual repeats every annual value for all twelve months of its year.
func ExtendAnnual(a Annual) Series {
	out := Series{
		Times:  make([]time.Time, 0, 12*len(a.Years)),
		Values: make([]float64, 0, 12*len(a.Years)),
	}
	for i, y := range a.Years {
		for m := time.January; m <= time.December; m++ {
			out.Times = append(out.Times, time.Date(y, m, 1, 0, 0, 0, 0, time.UTC))
			out.Values = append(out.Values, a.Values[i])
		}
	}
	return out
}

// monthlyMeans averages the non-NaN values per calendar month.
func monthlyMeans(times []time.Time, values []float64) [12]float64 {
	var sum, count [12]float64
	for i, t := range times {
		if v := values[i]; !math.IsNaN(v) {
			sum[t.Month()-1] += v
			count[t.Month()-1]++
		}
	}
	var out [12]float64
	for m := range out {
		if count[m] == 0 {
			out[m] = math.NaN()
			continue
		}
		out[m] = sum[m] / count[m]
	}
	return out
}

// centeredMean is a running mean over window samples centred on each index.
// Even windows extend one sample further into the past.
func centeredMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		start := i - window/2
		end := start + window
		if start < 0 || end > len(values) {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.Mean(values[start:end], nil)
	}
	return out
}
