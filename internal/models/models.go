// Package models provides shared data types for the repair price scraper.
package models

import (
	"fmt"
	"time"
)

// Source records which strategy produced a quote.
type Source string

const (
	// SourceServicePage indicates prices scraped from a dedicated service page.
	SourceServicePage Source = "service_page"
	// SourceEstimatePage indicates prices scraped from the parameterized estimate page.
	SourceEstimatePage Source = "estimate_page"
	// SourceAPI indicates a price returned by a JSON quote endpoint.
	SourceAPI Source = "api"
	// SourceEstimated indicates the static pricing table was used.
	SourceEstimated Source = "estimated"
)

// LocationEstimated is used as location when no location-specific data was found.
const LocationEstimated = "Estimated"

// DefaultPartsIncluded is the parts text used when the source has nothing better.
const DefaultPartsIncluded = "Varies by service"

// Vehicle describes the car a service is requested for.
type Vehicle struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// String formats the vehicle as "<year> <make> <model>".
func (v Vehicle) String() string {
	return fmt.Sprintf("%s %s %s", v.Year, v.Make, v.Model)
}

// QuoteRequest is the input of a single price resolution.
type QuoteRequest struct {
	Service string
	ZipCode string
	Vehicle Vehicle
}

// ServiceQuote is the normalized price estimate for one service request.
type ServiceQuote struct {
	Service       string `json:"service"`
	Vehicle       string `json:"vehicle"`
	Location      string `json:"location"`
	MinPrice      int    `json:"min_price"`
	MaxPrice      int    `json:"max_price"`
	AvgPrice      int    `json:"avg_price"`
	LaborTime     string `json:"labor_time"`
	PartsIncluded string `json:"parts_included"`
	Source        Source `json:"source"`

	// Optional enrichment, only set when the source supports it.
	Description    string          `json:"service_description,omitempty"`
	WhatsIncluded  []string        `json:"whats_included,omitempty"`
	Warranty       *Warranty       `json:"warranty_info,omitempty"`
	Rating         *Rating         `json:"customer_rating,omitempty"`
	Mechanic       *MechanicInfo   `json:"mechanic_info,omitempty"`
	CostBreakdown  *CostBreakdown  `json:"cost_breakdown,omitempty"`
	AdditionalFees *AdditionalFees `json:"additional_fees,omitempty"`
	Availability   *Availability   `json:"availability,omitempty"`
}

// Clone returns a deep copy of q. Slices and enrichment records are not
// shared with q.
func (q ServiceQuote) Clone() ServiceQuote {
	c := q
	c.WhatsIncluded = cloneStrings(q.WhatsIncluded)
	if q.Warranty != nil {
		w := *q.Warranty
		c.Warranty = &w
	}
	if q.Rating != nil {
		r := *q.Rating
		c.Rating = &r
	}
	if q.Mechanic != nil {
		m := *q.Mechanic
		m.Certifications = cloneStrings(q.Mechanic.Certifications)
		m.ServiceLocations = cloneStrings(q.Mechanic.ServiceLocations)
		c.Mechanic = &m
	}
	if q.CostBreakdown != nil {
		cb := *q.CostBreakdown
		c.CostBreakdown = &cb
	}
	if q.AdditionalFees != nil {
		f := *q.AdditionalFees
		c.AdditionalFees = &f
	}
	if q.Availability != nil {
		a := *q.Availability
		c.Availability = &a
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// Warranty describes warranty terms of a service.
type Warranty struct {
	PartsWarranty string `json:"parts_warranty"`
	LaborWarranty string `json:"labor_warranty"`
	Coverage      string `json:"coverage"`
	Details       string `json:"details"`
}

// RatingBreakdown is the share of reviews per star count.
type RatingBreakdown struct {
	FiveStar  string `json:"5_star"`
	FourStar  string `json:"4_star"`
	ThreeStar string `json:"3_star"`
	TwoStar   string `json:"2_star"`
	OneStar   string `json:"1_star"`
}

// Rating summarizes customer reviews.
type Rating struct {
	AverageRating float64         `json:"average_rating"`
	TotalReviews  int             `json:"total_reviews"`
	Breakdown     RatingBreakdown `json:"rating_breakdown"`
}

// MechanicInfo summarizes the mechanic profile offered for a service.
type MechanicInfo struct {
	CertifiedMechanics bool     `json:"certified_mechanics"`
	AverageExperience  string   `json:"average_experience"`
	Certifications     []string `json:"certifications"`
	BackgroundChecked  bool     `json:"background_checked"`
	MobileService      bool     `json:"mobile_service"`
	ServiceLocations   []string `json:"service_locations"`
}

// CostBreakdown splits a quote total into labor and parts.
// LaborCost + PartsCost equals the quote's average price.
type CostBreakdown struct {
	LaborCost    int     `json:"labor_cost"`
	PartsCost    int     `json:"parts_cost"`
	LaborHours   float64 `json:"labor_hours"`
	PartsList    string  `json:"parts_list"`
	ShopSupplies int     `json:"shop_supplies"`
	Taxes        int     `json:"taxes"`
}

// AdditionalFees lists fees charged on top of the service.
type AdditionalFees struct {
	DiagnosticFee int    `json:"diagnostic_fee"`
	DisposalFee   int    `json:"disposal_fee"`
	ServiceFee    int    `json:"service_fee"`
	TravelFee     int    `json:"travel_fee"`
	Note          string `json:"note"`
}

// Availability describes when a service can be booked.
type Availability struct {
	SameDayAvailable   bool   `json:"same_day_available"`
	TypicalBookingTime string `json:"typical_booking_time"`
	ServiceHours       string `json:"service_hours"`
	WeekendAvailable   bool   `json:"weekend_available"`
	EmergencyService   bool   `json:"emergency_service"`
	EstimatedDuration  string `json:"estimated_duration"`
}

// Category is a named, ordered group of service names.
type Category struct {
	Name     string   `json:"name"`
	Services []string `json:"services"`
}

// StrategyStatus holds the operational status of a resolution strategy.
type StrategyStatus struct {
	LastAttemptAt      *time.Time `json:"last_attempt_at"`
	LastAttemptSuccess bool       `json:"last_attempt_success"`
	LastResponseTimeMs int64      `json:"last_response_time_ms"`
	LastError          *string    `json:"last_error"`
	TotalAttempts      int64      `json:"total_attempts"`
	TotalHits          int64      `json:"total_hits"`
	TotalErrors        int64      `json:"total_errors"`
}

// StatusResponse is the response for the /status endpoint.
type StatusResponse struct {
	Status            string                    `json:"status"`
	UptimeSeconds     int64                     `json:"uptime_seconds"`
	MonitorRunning    bool                      `json:"monitor_running"`
	UpstreamReachable bool                      `json:"upstream_reachable"`
	LastHealthCheckAt *time.Time                `json:"last_health_check_at,omitempty"`
	NextHealthCheckAt *time.Time                `json:"next_health_check_at,omitempty"`
	CachedQuotes      int                       `json:"cached_quotes"`
	Strategies        map[string]StrategyStatus `json:"strategies"`
	Database          DatabaseStatus            `json:"database"`
}

// DatabaseStatus holds the database connection status.
type DatabaseStatus struct {
	Enabled           bool  `json:"enabled"`
	Connected         bool  `json:"connected"`
	TotalQuotesStored int64 `json:"total_quotes_stored"`
}
