package yourmechanic

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

const (
	maxServicesPerCategory = 20
	maxUngroupedServices   = 50
)

var (
	serviceHref  = regexp.MustCompile(`/services/[^/]+$`)
	makesHeading = regexp.MustCompile(`(?i)We service most makes`)
)

// keywordGroups sorts loose service links into categories. The first group
// with a matching keyword wins.
var keywordGroups = []struct {
	name     string
	keywords []string
}{
	{"Battery", []string{"battery", "alternator", "starter"}},
	{"Brakes", []string{"brake", "pad", "rotor", "caliper"}},
	{"Engine", []string{"engine", "oil", "spark", "timing", "belt", "pump"}},
	{"Transmission", []string{"transmission", "clutch", "cv", "axle"}},
	{"Suspension", []string{"shock", "strut", "suspension", "steering"}},
	{"Diagnostics", []string{"inspection", "diagnostic", "check", "light"}},
	{"Electrical", []string{"light", "sensor", "switch", "electrical"}},
	{"Heating & AC", []string{"ac", "heating", "heater", "condenser", "compressor"}},
	{"Filters", []string{"filter"}},
	{"Fluids", []string{"fluid", "flush", "service"}},
}

const otherGroup = "Others"

// Categories returns the service catalog grouped by category. The site is
// scraped on the first call only; later calls return the same table. A
// static table is used when the site yields nothing.
func (c *Client) Categories(ctx context.Context) []models.Category {
	c.categoriesOnce.Do(func() {
		c.categories = c.scrapeCategories(ctx)
		if len(c.categories) == 0 {
			c.logger.Info().Msg("using fallback service categories")
			c.categories = FallbackCategories()
		}
	})
	return c.categories
}

func (c *Client) scrapeCategories(ctx context.Context) []models.Category {
	doc, _, err := c.fetchDocument(ctx, c.baseURL+"/services", nil, fetchTimeout)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch service categories")
		return nil
	}

	if categories := categoriesFromHeadings(doc); len(categories) > 0 {
		return categories
	}

	var services []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !serviceHref.MatchString(href) {
			return
		}
		if name := strings.TrimSpace(s.Text()); len(name) > 5 {
			services = append(services, name)
		}
	})
	if len(services) == 0 {
		return nil
	}
	if len(services) > maxUngroupedServices {
		services = services[:maxUngroupedServices]
	}
	return GroupServices(services)
}

// categoriesFromHeadings reads "<h2>Category</h2>" sections followed by
// lists or blocks of service links.
func categoriesFromHeadings(doc *goquery.Document) []models.Category {
	var categories []models.Category
	index := make(map[string]int)

	doc.Find("h2").Each(func(_ int, heading *goquery.Selection) {
		name := strings.TrimSpace(heading.Text())
		if name == "" {
			return
		}

		var services []string
		heading.NextUntil("h2").Filter("ul, div").Find("a").Each(func(_ int, link *goquery.Selection) {
			if service := strings.TrimSpace(link.Text()); len(service) > 5 {
				services = append(services, service)
			}
		})
		services = dedupe(services)
		if len(services) == 0 {
			return
		}
		if len(services) > maxServicesPerCategory {
			services = services[:maxServicesPerCategory]
		}

		if i, ok := index[name]; ok {
			categories[i].Services = services
			return
		}
		index[name] = len(categories)
		categories = append(categories, models.Category{Name: name, Services: services})
	})

	return categories
}

// GroupServices sorts service names into keyword categories, keeping
// input order inside each category and dropping empty categories.
func GroupServices(services []string) []models.Category {
	grouped := make(map[string][]string)
	for _, service := range services {
		lower := strings.ToLower(service)
		group := otherGroup
		for _, g := range keywordGroups {
			if containsAny(lower, g.keywords) {
				group = g.name
				break
			}
		}
		grouped[group] = append(grouped[group], service)
	}

	var categories []models.Category
	for _, g := range keywordGroups {
		if s := dedupe(grouped[g.name]); len(s) > 0 {
			categories = append(categories, models.Category{Name: g.name, Services: s})
		}
	}
	if s := dedupe(grouped[otherGroup]); len(s) > 0 {
		categories = append(categories, models.Category{Name: otherGroup, Services: s})
	}
	return categories
}

// Makes returns the vehicle makes the site services. A fixed list is used
// when the site yields nothing.
func (c *Client) Makes(ctx context.Context) []string {
	doc, _, err := c.fetchDocument(ctx, c.baseURL, nil, probeTimeout)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch vehicle makes")
		return FallbackMakes()
	}

	if makes := makesFromDocument(doc); len(makes) > 0 {
		return makes
	}
	return FallbackMakes()
}

func makesFromDocument(doc *goquery.Document) []string {
	section := findTextNode(doc, makesHeading)
	if section == nil || section.Parent == nil {
		return nil
	}

	var makes []string
	doc.FindNodes(section.Parent).Find("a, div, span").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); looksLikeMake(text) {
			makes = append(makes, text)
		}
	})
	return dedupe(makes)
}

func looksLikeMake(text string) bool {
	n := utf8.RuneCountInString(text)
	if n < 3 || n > 20 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(text)
	if !unicode.IsUpper(first) {
		return false
	}
	return strings.IndexFunc(text, unicode.IsDigit) < 0
}

func findTextNode(doc *goquery.Document, pattern *regexp.Regexp) *html.Node {
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.TextNode && pattern.MatchString(n.Data) {
			found = n
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return found
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// dedupe removes repeated entries, keeping the first occurrence.
func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// FallbackMakes is the list of makes used when the site cannot be scraped.
func FallbackMakes() []string {
	return []string{
		"Acura", "Audi", "BMW", "Buick", "Cadillac", "Chevrolet", "Chrysler",
		"Dodge", "Fiat", "Ford", "GMC", "Honda", "Hyundai", "Infiniti",
		"Jaguar", "Jeep", "Kia", "Land Rover", "Lexus", "Lincoln", "Mazda",
		"Mercedes-Benz", "Mini", "Mitsubishi", "Nissan", "Porsche", "Ram",
		"Subaru", "Toyota", "Volkswagen", "Volvo",
	}
}

// FallbackCategories is the service catalog used when the site cannot be scraped.
func FallbackCategories() []models.Category {
	return []models.Category{
		{Name: "Battery", Services: []string{
			"Car Battery Replacement",
			"Auxiliary Battery Replacement",
			"Car Battery Cable Replacement",
			"Service Battery/cables",
		}},
		{Name: "Brakes", Services: []string{
			"Brake Pad Replacement",
			"Brake Rotors/Discs Replacement",
			"Brake Caliper Replacement",
			"Brake System Flush",
			"Brake Master Cylinder Replacement",
			"ABS Speed Sensor Replacement",
			"Brake Hose Replacement",
			"Emergency/Parking Brake Cable Replacement",
		}},
		{Name: "Engine", Services: []string{
			"Oil Change",
			"Air Filter Replacement",
			"Spark Plug Replacement",
			"Timing Belt Replacement",
			"Catalytic Converter Replacement",
			"Engine Oil and Filter Change",
			"Water Pump Replacement",
			"Thermostat Replacement",
			"Radiator Replacement",
		}},
		{Name: "Diagnostics", Services: []string{
			"Check Engine Light is on Inspection",
			"Car is not starting Inspection",
			"Pre-purchase Car Inspection",
			"75 Point Safety Inspection",
			"AC is not working Inspection",
			"Battery Light is on Inspection",
			"Brake Warning Light is on Inspection",
		}},
		{Name: "Clutch & Transmission", Services: []string{
			"Transmission Fluid Service",
			"CV Axle / Shaft Assembly Replacement",
			"Clutch Replacement",
			"Transfer Case Fluid Replacement",
			"Clutch Master Cylinder & Slave Cylinder Replacement",
		}},
		{Name: "Suspension & Steering", Services: []string{
			"Shock Absorber Replacement",
			"Strut Assembly Replacement",
			"Ball Joint Replacement (Front)",
			"Power Steering Pump Replacement",
			"Wheel Bearings Replacement",
			"Tie Rod End Replacement",
		}},
		{Name: "Heating & AC", Services: []string{
			"Car AC Compressor Replacement",
			"AC Condenser Replacement",
			"Car AC Repair",
			"Heater Blower Motor Replacement",
			"AC Evaporator Replacement",
		}},
		{Name: "Filters", Services: []string{
			"Car Air Filter Replacement",
			"Cabin Air Filter Replacement",
			"Fuel Filter Replacement",
			"Car AC Air Filter Replacement",
		}},
		{Name: "Fluids", Services: []string{
			"Oil Change",
			"Brake System Flush",
			"Cooling System Flush",
			"Power Steering Fluid Service",
			"Radiator Flush",
			"Transmission Fluid Service",
		}},
	}
}
