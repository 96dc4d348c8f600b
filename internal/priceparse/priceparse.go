// Package priceparse finds dollar amounts in free text.
package priceparse

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MinPlausiblePrice is the smallest amount treated as a service price.
	MinPlausiblePrice = 20
	// MaxPlausiblePrice is the largest amount treated as a service price.
	MaxPlausiblePrice = 5000
)

// pricePattern matches "$" followed by digits with optional thousands
// separators and optional cents.
var pricePattern = regexp.MustCompile(`\$(\d+(?:,\d{3})*(?:\.\d{2})?)`)

// Extract returns all plausible whole-dollar amounts in text, in the order
// they appear. Cents are dropped.
func Extract(text string) []int {
	var prices []int
	for _, m := range pricePattern.FindAllStringSubmatch(text, -1) {
		dollars, _, _ := strings.Cut(strings.ReplaceAll(m[1], ",", ""), ".")
		price, err := strconv.Atoi(dollars)
		if err != nil {
			continue
		}
		if Plausible(price) {
			prices = append(prices, price)
		}
	}
	return prices
}

// Plausible reports whether price lies within the accepted range.
func Plausible(price int) bool {
	return price >= MinPlausiblePrice && price <= MaxPlausiblePrice
}

// Summary holds the range of a set of prices.
type Summary struct {
	Min int
	Max int
	Avg int
}

// Summarize computes min, max and the floored mean of prices.
// ok is false when prices is empty.
func Summarize(prices []int) (s Summary, ok bool) {
	if len(prices) == 0 {
		return Summary{}, false
	}

	s.Min, s.Max = prices[0], prices[0]
	sum := 0
	for _, p := range prices {
		if p < s.Min {
			s.Min = p
		}
		if p > s.Max {
			s.Max = p
		}
		sum += p
	}
	s.Avg = sum / len(prices)
	return s, true
}
