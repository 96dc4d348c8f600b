package pricing

import (
	"fmt"
	"strings"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

var descriptions = []struct {
	pattern string
	text    string
}{
	{"oil change", "Complete engine oil and filter replacement service. We drain old oil, replace filter, and refill with fresh oil suited for your vehicle."},
	{"brake pad replacement", "Professional brake pad replacement service including inspection of rotors, calipers, and brake system components."},
	{"battery replacement", "Complete battery replacement service with testing of charging system and electrical connections."},
	{"air filter replacement", "Engine air filter replacement to ensure optimal engine performance and fuel efficiency."},
	{"inspection", "Comprehensive vehicle inspection covering safety, performance, and maintenance items."},
}

// Description returns a short description of a service.
func Description(service string) string {
	s := strings.ToLower(service)
	for _, d := range descriptions {
		if strings.Contains(s, d.pattern) {
			return d.text
		}
	}
	return fmt.Sprintf("Professional %s service performed by certified mechanics using quality parts.", s)
}

// Inclusions lists what a service typically includes.
func Inclusions(service string) []string {
	s := strings.ToLower(service)
	switch {
	case strings.Contains(s, "oil change"):
		return []string{
			"Up to 5 quarts of oil",
			"New oil filter",
			"Multi-point inspection",
			"Fluid level check",
			"Battery test",
		}
	case strings.Contains(s, "brake"):
		return []string{
			"New brake pads/components",
			"Brake system inspection",
			"Rotor condition check",
			"Brake fluid level check",
			"Test drive verification",
		}
	case strings.Contains(s, "battery"):
		return []string{
			"New battery installation",
			"Battery terminal cleaning",
			"Charging system test",
			"Electrical connection check",
			"Old battery disposal",
		}
	default:
		return GenericInclusions()
	}
}

// GenericInclusions is the inclusion list used when nothing specific is known.
func GenericInclusions() []string {
	return []string{
		"Diagnostic inspection",
		"Professional installation",
		"Quality parts",
		"Post-service testing",
		"Clean-up after service",
	}
}

// Duration estimates how long a service takes.
func Duration(service string) string {
	s := strings.ToLower(service)
	switch {
	case strings.Contains(s, "oil change"):
		return "30-45 minutes"
	case strings.Contains(s, "brake pad"):
		return "1-2 hours"
	case strings.Contains(s, "battery"):
		return "30-60 minutes"
	case strings.Contains(s, "inspection"):
		return "45-90 minutes"
	case strings.Contains(s, "timing belt"), strings.Contains(s, "clutch"):
		return "4-8 hours"
	case strings.Contains(s, "transmission"):
		return "2-4 hours"
	default:
		return "1-3 hours"
	}
}

// PageDuration is the duration advertised for services found on the site.
const PageDuration = "1-3 hours depending on service"

// Warranty returns the standard warranty terms.
func Warranty() *models.Warranty {
	return &models.Warranty{
		PartsWarranty: "12 months or 12,000 miles",
		LaborWarranty: "12 months or 12,000 miles",
		Coverage:      "Nationwide warranty coverage",
		Details:       "Warranty covers defects in parts and workmanship",
	}
}

// DefaultRating is the rating summary used when no page content is available.
func DefaultRating() *models.Rating {
	return &models.Rating{
		AverageRating: 4.5,
		TotalReviews:  234,
		Breakdown: models.RatingBreakdown{
			FiveStar:  "72%",
			FourStar:  "20%",
			ThreeStar: "5%",
			TwoStar:   "2%",
			OneStar:   "1%",
		},
	}
}

// MechanicProfile returns the standard mechanic profile.
func MechanicProfile() *models.MechanicInfo {
	return &models.MechanicInfo{
		CertifiedMechanics: true,
		AverageExperience:  "8+ years",
		Certifications:     []string{"ASE Certified", "Manufacturer Trained"},
		BackgroundChecked:  true,
		MobileService:      true,
		ServiceLocations:   []string{"At your location", "Home", "Office", "Parking lot"},
	}
}

// Fees returns the fixed additional fee schedule.
func Fees() *models.AdditionalFees {
	return &models.AdditionalFees{
		DiagnosticFee: 0,
		DisposalFee:   5,
		ServiceFee:    0,
		TravelFee:     0,
		Note:          "All fees included in quoted price",
	}
}

// Availability returns the fixed booking windows with the given duration.
func Availability(duration string) *models.Availability {
	return &models.Availability{
		SameDayAvailable:   true,
		TypicalBookingTime: "2-4 hours advance notice",
		ServiceHours:       "7 AM - 7 PM",
		WeekendAvailable:   true,
		EmergencyService:   false,
		EstimatedDuration:  duration,
	}
}
