// Package yourmechanic provides a best-effort client for the YourMechanic
// service pricing website.
package yourmechanic

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/useragent"
)

const (
	// ProviderName is the identifier for this upstream site.
	ProviderName = "yourmechanic"
	// DefaultBaseURL is the public site.
	DefaultBaseURL = "https://www.yourmechanic.com"

	// probeTimeout bounds existence checks and the health check.
	probeTimeout = 10 * time.Second
	// fetchTimeout bounds page and endpoint fetches.
	fetchTimeout = 15 * time.Second
)

// Client talks to the upstream site. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  zerolog.Logger

	categoriesOnce sync.Once
	categories     []models.Category
}

// New creates a new Client for baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger = logger.With().Str("provider", ProviderName).Logger()

	client := resty.New()
	client.SetHeaders(useragent.Headers())
	client.SetLogger(restyLogger{logger: logger})

	return &Client{
		http:    client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// BaseURL returns the site root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HealthCheck reports whether the site root answers with 200 OK.
// Network failures are reported as false.
func (c *Client) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Get(c.baseURL)
	if err != nil {
		c.logger.Debug().Err(err).Msg("health check failed")
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// exists issues a HEAD request and reports whether it returned 200 OK.
func (c *Client) exists(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Head(url)
	if err != nil {
		c.logger.Debug().Err(err).Str("url", url).Msg("existence check failed")
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// fetchDocument GETs url and parses the body as HTML. It also returns the
// raw body. Non-200 responses are errors.
func (c *Client) fetchDocument(ctx context.Context, url string, query map[string]string, timeout time.Duration) (*goquery.Document, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status code %d", resp.StatusCode())
	}

	body := resp.Body()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return doc, body, nil
}

// restyLogger routes resty's internal messages into zerolog.
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}
