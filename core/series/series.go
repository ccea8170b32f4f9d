// Package series holds the ordered numeric time series consumed by the
// scheduling model (renewable generation in MW, electricity prices in
// EUR/MWh) and the helpers that produce them from raw data: CSV column
// extraction, gap backfilling and wind power-curve conversion.
package series

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Series is an ordered sequence with one value per time step.
type Series []float64

// Mean returns the arithmetic mean of the series.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return stat.Mean(s, nil)
}

// Backfill replaces every NaN with the next non-NaN value, and trailing NaNs
// with the last valid value seen. It returns the filled series and the number
// of values that were assumed.
func (s Series) Backfill() (Series, int) {
	out := make(Series, len(s))
	copy(out, s)
	filled := 0
	next := math.NaN()
	for i := len(out) - 1; i >= 0; i-- {
		if math.IsNaN(out[i]) {
			if !math.IsNaN(next) {
				out[i] = next
				filled++
			}
		} else {
			next = out[i]
		}
	}
	// trailing NaNs have no successor, carry the last valid value forward
	prev := math.NaN()
	for i := range out {
		if math.IsNaN(out[i]) {
			if !math.IsNaN(prev) {
				out[i] = prev
				filled++
			}
		} else {
			prev = out[i]
		}
	}
	return out, filled
}

// Scale returns a copy of the series multiplied by factor.
func (s Series) Scale(factor float64) Series {
	out := make(Series, len(s))
	for i, v := range s {
		out[i] = v * factor
	}
	return out
}
