// Package pricing provides the deterministic price model used when no live
// price data is available.
package pricing

import (
	"strconv"
	"strings"
)

var luxuryMakes = []string{
	"BMW", "Mercedes-Benz", "Audi", "Lexus", "Acura",
	"Infiniti", "Jaguar", "Land Rover", "Porsche",
}

var economyMakes = []string{"Toyota", "Honda", "Nissan", "Mazda"}

// YearFactor returns the price adjustment for a model year.
// A year that is not an integer is neutral (1.0).
func YearFactor(year string) float64 {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 1.0
	}

	switch {
	case y < 2000:
		return 0.9
	case y < 2010:
		return 1.1
	case y > 2020:
		return 1.2
	default:
		return 1.0
	}
}

// MakeFactor returns the price adjustment for a vehicle make.
// Matching is exact, so "bmw" is not treated as a luxury make.
func MakeFactor(carMake string) float64 {
	for _, m := range luxuryMakes {
		if carMake == m {
			return 1.4
		}
	}
	for _, m := range economyMakes {
		if carMake == m {
			return 0.9
		}
	}
	return 1.0
}

// Multiplier returns the combined year and make adjustment for a vehicle.
// The model is accepted but does not influence the result yet.
// The product is not bounded.
func Multiplier(year, carMake, model string) float64 {
	_ = model

	multiplier := 1.0
	multiplier *= YearFactor(year)
	multiplier *= MakeFactor(carMake)
	return multiplier
}
