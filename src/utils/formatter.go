package utils

import (
	"math"
)

type Formatter struct {
}

// RoundUp rounds a value up at the given decimal scale.
func (m *Formatter) RoundUp(value float64, scale int) float64 {
	ratio := math.Pow(10, float64(scale))
	return math.Ceil(value*ratio) / ratio
}

// RoundDown rounds a value down at the given decimal scale.
func (m *Formatter) RoundDown(value float64, scale int) float64 {
	ratio := math.Pow(10, float64(scale))
	return math.Floor(value*ratio) / ratio
}

func (m *Formatter) ToFixed(num float64, scale int) float64 {
	ratio := math.Pow(10, float64(scale))
	return math.Round(num*ratio) / ratio
}

// SwingPercent is the relative distance of price from base, in percent.
// Positive when price is above base, negative below.
func (m *Formatter) SwingPercent(base float64, price float64) float64 {
	if base == 0.00 {
		return 0.00
	}

	return (price - base) * 100.00 / base
}
