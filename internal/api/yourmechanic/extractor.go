package yourmechanic

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andygrunwald/repair-price-scraper/internal/api"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/priceparse"
	"github.com/andygrunwald/repair-price-scraper/internal/pricing"
)

var (
	descriptionClass = regexp.MustCompile(`(?i)description|overview|about`)
	inclusionWords   = []string{"include", "service", "repair", "replacement"}
)

// Extract fetches a service page and builds a quote from the dollar amounts
// found in its text. It returns api.ErrNoQuote if the page has no plausible
// price.
func (c *Client) Extract(ctx context.Context, url string, req models.QuoteRequest) (*models.ServiceQuote, error) {
	doc, body, err := c.fetchDocument(ctx, url, nil, fetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetching service page %s: %w", url, err)
	}

	summary, ok := priceparse.Summarize(documentPrices(doc))
	if !ok {
		return nil, fmt.Errorf("service page %s: %w", url, api.ErrNoQuote)
	}

	quote := &models.ServiceQuote{
		Service:        ServiceNameFromURL(url),
		Vehicle:        req.Vehicle.String(),
		Location:       req.ZipCode,
		MinPrice:       summary.Min,
		MaxPrice:       summary.Max,
		AvgPrice:       summary.Avg,
		LaborTime:      pricing.LaborTime(summary.Avg),
		PartsIncluded:  models.DefaultPartsIncluded,
		Source:         models.SourceServicePage,
		Description:    pageDescription(doc),
		WhatsIncluded:  pageInclusions(doc),
		Warranty:       pricing.Warranty(),
		Rating:         pageRating(body),
		Mechanic:       pricing.MechanicProfile(),
		CostBreakdown:  pricing.CostBreakdown(summary.Avg),
		AdditionalFees: pricing.Fees(),
		Availability:   pricing.Availability(pricing.PageDuration),
	}

	c.logger.Debug().
		Str("url", url).
		Int("min", quote.MinPrice).
		Int("max", quote.MaxPrice).
		Int("avg", quote.AvgPrice).
		Msg("extracted prices from service page")

	return quote, nil
}

// documentPrices scans every text node of doc for plausible prices.
func documentPrices(doc *goquery.Document) []int {
	var prices []int
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			prices = append(prices, priceparse.Extract(n.Data)...)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return prices
}

// ServiceNameFromURL derives a readable service name from the last path
// segment of url.
func ServiceNameFromURL(url string) string {
	url = strings.TrimRight(url, "/")
	slug := url[strings.LastIndex(url, "/")+1:]
	if slug == "" {
		return "Unknown Service"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}

func pageDescription(doc *goquery.Document) string {
	description := "Detailed service information available"
	doc.Find("p, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if !descriptionClass.MatchString(class) {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if len(text) > 50 && len(text) < 500 {
			description = text
			return false
		}
		return true
	})
	return description
}

func pageInclusions(doc *goquery.Document) []string {
	var includes []string
	doc.Find("ul, ol, li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		for _, w := range inclusionWords {
			if strings.Contains(lower, w) && len(text) > 10 && len(text) < 100 {
				includes = append(includes, text)
				break
			}
		}
		return len(includes) < 5
	})

	if len(includes) == 0 {
		return pricing.GenericInclusions()
	}
	return includes
}

// pageRating derives a stable, simulated rating from the start of the page.
func pageRating(body []byte) *models.Rating {
	head := body
	if len(head) > 50 {
		head = head[:50]
	}
	h := xxhash.Sum64(head)

	return &models.Rating{
		AverageRating: math.Round((4.2+float64(h%8)/10)*10) / 10,
		TotalReviews:  150 + int(h%500),
		Breakdown: models.RatingBreakdown{
			FiveStar:  "68%",
			FourStar:  "22%",
			ThreeStar: "7%",
			TwoStar:   "2%",
			OneStar:   "1%",
		},
	}
}
