package yourmechanic

import (
	"context"
	"regexp"
	"strings"
)

var (
	fillerWords   = regexp.MustCompile(`\b(car|auto|vehicle)\b`)
	nonSlugChars  = regexp.MustCompile(`[^\w\s-]`)
	slugSeparator = regexp.MustCompile(`[-\s]+`)
)

// Slugify turns a service name into the URL path fragment used by the site.
// Slugify(Slugify(s)) == Slugify(s).
func Slugify(service string) string {
	slug := strings.ToLower(service)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = fillerWords.ReplaceAllString(slug, "")
	slug = slugSeparator.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CandidateURLs returns the service page URLs worth probing for service, in
// probing order and without duplicates.
func (c *Client) CandidateURLs(service string) []string {
	slug := Slugify(service)
	lower := strings.ToLower(service)
	withoutReplacement := strings.ReplaceAll(slug, "-replacement", "")

	slugs := []string{
		slug,
		slug + "-replacement",
		withoutReplacement,
		slug + "-service",
	}

	if strings.Contains(lower, "replacement") {
		slugs = append(slugs, withoutReplacement, withoutReplacement+"-replacement")
	}

	if strings.Contains(lower, "inspection") {
		withoutInspection := strings.ReplaceAll(slug, "-inspection", "")
		slugs = append(slugs, withoutInspection+"-inspection", slug)
	}

	seen := make(map[string]bool, len(slugs))
	urls := make([]string, 0, len(slugs))
	for _, s := range slugs {
		u := c.baseURL + "/services/" + s
		if seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

// Locate probes the candidate URLs for service and returns the first one
// that exists. ok is false if none does or the network is unavailable.
func (c *Client) Locate(ctx context.Context, service string) (url string, ok bool) {
	for _, candidate := range c.CandidateURLs(service) {
		if ctx.Err() != nil {
			return "", false
		}
		if c.exists(ctx, candidate) {
			c.logger.Info().Str("service", service).Str("url", candidate).Msg("found service page")
			return candidate, true
		}
	}

	c.logger.Warn().Str("service", service).Msg("could not find service page")
	return "", false
}
