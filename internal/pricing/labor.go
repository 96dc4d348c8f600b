package pricing

import (
	"fmt"
	"math"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

const (
	// HourlyRate is the assumed labor rate in dollars.
	HourlyRate = 100
	// minLaborTenths is the shortest labor time reported, in tenths of an hour.
	minLaborTenths = 5

	laborShare        = 0.6
	shopSuppliesShare = 0.05
	taxShare          = 0.08
)

// LaborTime formats the labor hours implied by an average price, floored to
// one decimal and never below half an hour.
func LaborTime(avgPrice int) string {
	tenths := avgPrice * 10 / HourlyRate
	if tenths < minLaborTenths {
		tenths = minLaborTenths
	}
	return fmt.Sprintf("%d.%d hours", tenths/10, tenths%10)
}

// CostBreakdown splits total into labor and parts. Labor and parts always
// add up to total.
func CostBreakdown(total int) *models.CostBreakdown {
	labor := int(float64(total) * laborShare)
	return &models.CostBreakdown{
		LaborCost:    labor,
		PartsCost:    total - labor,
		LaborHours:   math.Round(float64(labor)/HourlyRate*10) / 10,
		PartsList:    "High-quality OEM or equivalent parts",
		ShopSupplies: int(float64(total) * shopSuppliesShare),
		Taxes:        int(float64(total) * taxShare),
	}
}
