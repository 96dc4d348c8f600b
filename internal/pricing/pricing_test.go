package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearFactor(t *testing.T) {
	tests := []struct {
		year string
		want float64
	}{
		{"1995", 0.9},
		{"1999", 0.9},
		{"2000", 1.1},
		{"2009", 1.1},
		{"2010", 1.0},
		{"2015", 1.0},
		{"2020", 1.0},
		{"2021", 1.2},
		{"2023", 1.2},
		{"", 1.0},
		{"twenty-twenty", 1.0},
		{"2020.5", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			assert.Equal(t, tt.want, YearFactor(tt.year))
		})
	}
}

func TestMakeFactor(t *testing.T) {
	assert.Equal(t, 1.4, MakeFactor("BMW"))
	assert.Equal(t, 1.4, MakeFactor("Land Rover"))
	assert.Equal(t, 0.9, MakeFactor("Toyota"))
	assert.Equal(t, 0.9, MakeFactor("Mazda"))
	assert.Equal(t, 1.0, MakeFactor("Ford"))
	assert.Equal(t, 1.0, MakeFactor("bmw"))
}

func TestMultiplier(t *testing.T) {
	assert.InDelta(t, 1.68, Multiplier("2023", "BMW", "X5"), 1e-9)
	assert.InDelta(t, 0.9, Multiplier("2015", "Toyota", "Camry"), 1e-9)
	assert.InDelta(t, 0.99, Multiplier("2005", "Honda", "Civic"), 1e-9)
	assert.Equal(t, 1.0, Multiplier("unknown", "Ford", "F-150"))
}

func TestEstimate_OilChangeToyota(t *testing.T) {
	for _, year := range []string{"2010", "2015", "2020"} {
		got := Estimate("Oil Change", Multiplier(year, "Toyota", "Camry"))
		assert.Equal(t, Band{Min: 36, Max: 72, Avg: 54}, got, year)
	}
}

func TestEstimate_BrakePadsLuxuryNewCar(t *testing.T) {
	got := Estimate("Brake Pad Replacement", Multiplier("2023", "BMW", "3 Series"))
	assert.Equal(t, Band{Min: 201, Max: 420, Avg: 310}, got)
}

func TestLookupBase_FirstMatchWins(t *testing.T) {
	// "inspection" precedes "pre-purchase car inspection" in the table.
	band, ok := LookupBase("Pre-purchase Car Inspection")
	require.True(t, ok)
	assert.Equal(t, Band{80, 150, 115}, band)

	band, ok = LookupBase("Engine Oil Change and Filter")
	require.True(t, ok)
	assert.Equal(t, Band{40, 80, 60}, band)
}

func TestLookupBase_Categories(t *testing.T) {
	tests := []struct {
		service string
		want    Band
	}{
		{"Engine Mount Replacement", Band{500, 1500, 1000}},
		{"Transmission Replacement", Band{500, 1500, 1000}},
		{"Brake Hose Replacement", Band{200, 500, 350}},
		{"Power Steering Pump Replacement", Band{200, 500, 350}},
		{"Thermostat Replacement", Band{100, 300, 200}},
		{"Cooling System Flush", Band{60, 120, 90}},
		{"Power Steering Fluid Service", Band{60, 120, 90}},
		{"Something Unknown", Band{75, 200, 137}},
	}

	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			band, ok := LookupBase(tt.service)
			assert.False(t, ok)
			assert.Equal(t, tt.want, band)
		})
	}
}

func TestEstimate_Ordering(t *testing.T) {
	services := []string{"Oil Change", "Clutch Replacement", "Diagnostics", "Catalytic Converter Replacement"}
	makes := []string{"BMW", "Toyota", "Ford", "Porsche"}
	years := []string{"1980", "2005", "2015", "2024", "n/a"}

	for _, s := range services {
		for _, m := range makes {
			for _, y := range years {
				b := Estimate(s, Multiplier(y, m, ""))
				assert.GreaterOrEqual(t, b.Min, 0)
				assert.LessOrEqual(t, b.Min, b.Avg, "%s %s %s", s, m, y)
				assert.LessOrEqual(t, b.Avg, b.Max, "%s %s %s", s, m, y)
			}
		}
	}
}

func TestLaborTime(t *testing.T) {
	assert.Equal(t, "0.6 hours", LaborTime(60))
	assert.Equal(t, "0.5 hours", LaborTime(20))
	assert.Equal(t, "0.5 hours", LaborTime(0))
	assert.Equal(t, "1.8 hours", LaborTime(185))
	assert.Equal(t, "3.1 hours", LaborTime(310))
	assert.Equal(t, "14.0 hours", LaborTime(1400))
}

func TestCostBreakdown(t *testing.T) {
	for _, total := range []int{0, 1, 54, 99, 185, 1401} {
		cb := CostBreakdown(total)
		assert.Equal(t, total, cb.LaborCost+cb.PartsCost)
	}

	cb := CostBreakdown(185)
	assert.Equal(t, 111, cb.LaborCost)
	assert.Equal(t, 74, cb.PartsCost)
	assert.Equal(t, 1.1, cb.LaborHours)
	assert.Equal(t, 9, cb.ShopSupplies)
	assert.Equal(t, 14, cb.Taxes)
}

func TestDescription(t *testing.T) {
	assert.Contains(t, Description("Oil Change"), "engine oil")
	assert.Equal(t,
		"Professional wheel alignment service performed by certified mechanics using quality parts.",
		Description("Wheel Alignment"))
}

func TestInclusionsAndDuration(t *testing.T) {
	assert.Equal(t, "New oil filter", Inclusions("Oil Change")[1])
	assert.Equal(t, GenericInclusions(), Inclusions("Wheel Alignment"))
	assert.Equal(t, "30-45 minutes", Duration("Oil Change"))
	assert.Equal(t, "4-8 hours", Duration("Clutch Replacement"))
	assert.Equal(t, "1-3 hours", Duration("Wheel Alignment"))
}
