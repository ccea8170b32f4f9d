package series

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Characteristic speeds of the Haliade-X 12 turbine described by
// Hoelling et al. 2021.
const (
	haliadeCutInMS   = 3
	haliadeNominalMS = 10.5
	haliadeCutOutMS  = 34
	haliadeNominalMW = 12
)

// PowerCoefficient returns the share of nominal power produced at the given
// wind speed: zero below cut-in and above cut-out, one above nominal speed
// and (v/nominal)^3 in between.
func PowerCoefficient(speedMS, cutInMS, nominalMS, cutOutMS float64) float64 {
	if speedMS < cutInMS || speedMS > cutOutMS {
		return 0
	}
	if speedMS > nominalMS {
		return 1
	}
	r := speedMS / nominalMS
	return r * r * r
}

// PowerCurve maps hub-height wind speed [m/s] to turbine output [MW] by
// piecewise-linear interpolation of a sampled curve.
type PowerCurve struct {
	nominalMW float64
	minSpeed  float64
	maxSpeed  float64
	curve     interp.PiecewiseLinear
}

// NewPowerCurve fits a power curve through the sampled (speed, power) points.
// Speeds must be strictly increasing.
func NewPowerCurve(speedsMS, powersMW []float64, nominalMW float64) (*PowerCurve, error) {
	if len(speedsMS) != len(powersMW) || len(speedsMS) < 2 {
		return nil, fmt.Errorf("power curve needs matching speed and power samples, got %d and %d",
			len(speedsMS), len(powersMW))
	}
	c := &PowerCurve{
		nominalMW: nominalMW,
		minSpeed:  speedsMS[0],
		maxSpeed:  speedsMS[len(speedsMS)-1],
	}
	if err := c.curve.Fit(speedsMS, powersMW); err != nil {
		return nil, fmt.Errorf("fit power curve: %w", err)
	}
	return c, nil
}

// At returns the turbine output [MW] at the given wind speed. Speeds outside
// the sampled range produce zero.
func (c *PowerCurve) At(speedMS float64) float64 {
	if speedMS < c.minSpeed || speedMS > c.maxSpeed {
		return 0
	}
	return c.curve.Predict(speedMS)
}

// NominalMW returns the nominal power of a single turbine.
func (c *PowerCurve) NominalMW() float64 { return c.nominalMW }

// HaliadeX12 returns the power curve of a GE Haliade-X 12 MW turbine, sampled
// every 0.5 m/s from 0 to 35 m/s.
func HaliadeX12() *PowerCurve {
	var speeds, powers []float64
	for v := 0.0; v <= 35.0; v += 0.5 {
		speeds = append(speeds, v)
		powers = append(powers, PowerCoefficient(v, haliadeCutInMS, haliadeNominalMS, haliadeCutOutMS)*haliadeNominalMW)
	}
	c, err := NewPowerCurve(speeds, powers, haliadeNominalMW)
	if err != nil {
		// the built-in samples are strictly increasing, Fit cannot fail
		panic(err)
	}
	return c
}

// FarmOutput converts a hub-height wind-speed series into the generation
// series of a wind farm with the given installed capacity, scaling the
// single-turbine curve to the farm size.
func FarmOutput(windSpeedMS Series, curve *PowerCurve, installedMW float64) Series {
	scale := installedMW / curve.NominalMW()
	out := make(Series, len(windSpeedMS))
	for i, v := range windSpeedMS {
		out[i] = curve.At(v) * scale
	}
	return out
}
