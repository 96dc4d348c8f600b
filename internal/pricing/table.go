package pricing

import (
	"strings"
)

// Band is a min/max/avg price triple in whole dollars.
type Band struct {
	Min int
	Max int
	Avg int
}

// tableEntry pairs a lowercase service-name fragment with its base band.
type tableEntry struct {
	pattern string
	band    Band
}

// baseTable is matched in order; the first pattern contained in the
// service name wins.
var baseTable = []tableEntry{
	// Engine
	{"oil change", Band{40, 80, 60}},
	{"air filter replacement", Band{25, 60, 42}},
	{"spark plug replacement", Band{80, 200, 140}},
	{"timing belt replacement", Band{400, 800, 600}},
	{"catalytic converter replacement", Band{800, 2000, 1400}},

	// Brakes
	{"brake pad replacement", Band{120, 250, 185}},
	{"brake rotors replacement", Band{200, 400, 300}},
	{"brake system flush", Band{70, 120, 95}},
	{"brake caliper replacement", Band{300, 600, 450}},

	// Battery
	{"car battery replacement", Band{80, 200, 140}},
	{"battery cable replacement", Band{50, 150, 100}},

	// Transmission
	{"transmission fluid service", Band{80, 150, 115}},
	{"cv axle replacement", Band{300, 600, 450}},
	{"clutch replacement", Band{800, 1500, 1150}},

	// Suspension
	{"shock absorber replacement", Band{200, 400, 300}},
	{"strut assembly replacement", Band{300, 600, 450}},
	{"ball joint replacement", Band{150, 350, 250}},

	// Diagnostics
	{"inspection", Band{80, 150, 115}},
	{"pre-purchase car inspection", Band{90, 120, 105}},
}

var (
	heavyBand      = Band{500, 1500, 1000}
	midBand        = Band{200, 500, 350}
	lowBand        = Band{100, 300, 200}
	serviceBand    = Band{60, 120, 90}
	inspectionBand = Band{80, 150, 115}
	defaultBand    = Band{75, 200, 137}
)

// LookupBase returns the unscaled band for a service name. It reports
// whether the band came from the keyword table rather than a category
// heuristic.
func LookupBase(service string) (Band, bool) {
	s := strings.ToLower(service)

	for _, e := range baseTable {
		if strings.Contains(s, e.pattern) {
			return e.band, true
		}
	}

	return categoryBand(s), false
}

func categoryBand(s string) Band {
	switch {
	case strings.Contains(s, "replacement"):
		switch {
		case containsAny(s, "engine", "transmission", "clutch"):
			return heavyBand
		case containsAny(s, "brake", "suspension", "steering"):
			return midBand
		default:
			return lowBand
		}
	case strings.Contains(s, "service"), strings.Contains(s, "flush"):
		return serviceBand
	case strings.Contains(s, "inspection"):
		return inspectionBand
	default:
		return defaultBand
	}
}

// Scale multiplies every bound by multiplier and truncates to whole dollars.
func (b Band) Scale(multiplier float64) Band {
	return Band{
		Min: int(float64(b.Min) * multiplier),
		Max: int(float64(b.Max) * multiplier),
		Avg: int(float64(b.Avg) * multiplier),
	}
}

// Estimate returns the scaled band for a service. It never fails.
func Estimate(service string, multiplier float64) Band {
	base, _ := LookupBase(service)
	return base.Scale(multiplier)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
