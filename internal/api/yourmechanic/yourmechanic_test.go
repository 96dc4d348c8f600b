package yourmechanic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andygrunwald/repair-price-scraper/internal/api"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

const servicePage = `<html><head><title>Brake Pad Replacement</title></head><body>
<h1>Brake Pad Replacement</h1>
<div class="service-overview">Brake pads are a key part of your braking system and wear down over time, so they need replacing.</div>
<p>Typical cost: $120 - $250</p>
<p>Call us at 555-1234. Tip jar $5. Engine swap $9,999.</p>
<ul><li>Brake pad replacement on both wheels</li><li>x</li></ul>
</body></html>`

func testRequest(service string) models.QuoteRequest {
	return models.QuoteRequest{
		Service: service,
		ZipCode: "10001",
		Vehicle: models.Vehicle{Year: "2020", Make: "Toyota", Model: "Camry"},
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, zerolog.Nop())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Brake Pad Replacement", "brake-pad-replacement"},
		{"Car Battery Replacement", "battery-replacement"},
		{"Brake Rotors/Discs Replacement", "brake-rotorsdiscs-replacement"},
		{"CV Axle / Shaft Assembly Replacement", "cv-axle-shaft-assembly-replacement"},
		{"Pre-purchase Car Inspection", "pre-purchase-inspection"},
		{"  Auto  Vehicle Oil   Change ", "oil-change"},
		{"Ball Joint Replacement (Front)", "ball-joint-replacement-front"},
		{"Scary Cart Repair", "scary-cart-repair"},
		{"C.ar Wash", "wash"},
		{"v'ehicle check", "check"},
		{"Au-to Glass", "au-to-glass"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Slugify(got), "slugify must be idempotent")
		})
	}
}

func TestCandidateURLs(t *testing.T) {
	c := New("https://example.test/", zerolog.Nop())

	assert.Equal(t, []string{
		"https://example.test/services/brake-pad-replacement",
		"https://example.test/services/brake-pad-replacement-replacement",
		"https://example.test/services/brake-pad",
		"https://example.test/services/brake-pad-replacement-service",
	}, c.CandidateURLs("Brake Pad Replacement"))

	assert.Equal(t, []string{
		"https://example.test/services/pre-purchase-inspection",
		"https://example.test/services/pre-purchase-inspection-replacement",
		"https://example.test/services/pre-purchase-inspection-service",
	}, c.CandidateURLs("Pre-purchase Car Inspection"))
}

func TestLocate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/services/brake-pad", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.WriteHeader(http.StatusOK)
	})
	c := newTestClient(t, mux)

	url, ok := c.Locate(context.Background(), "Brake Pad Replacement")
	require.True(t, ok)
	assert.Equal(t, c.BaseURL()+"/services/brake-pad", url)

	_, ok = c.Locate(context.Background(), "Flux Capacitor Tuning")
	assert.False(t, ok)
}

func TestLocate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := New(srv.URL, zerolog.Nop())

	_, ok := c.Locate(context.Background(), "Oil Change")
	assert.False(t, ok)
}

func TestExtract(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/services/brake-pad-replacement", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(servicePage))
	})
	c := newTestClient(t, mux)

	q, err := c.Extract(context.Background(), c.BaseURL()+"/services/brake-pad-replacement", testRequest("Brake Pads"))
	require.NoError(t, err)

	assert.Equal(t, "Brake Pad Replacement", q.Service)
	assert.Equal(t, "2020 Toyota Camry", q.Vehicle)
	assert.Equal(t, "10001", q.Location)
	assert.Equal(t, 120, q.MinPrice)
	assert.Equal(t, 250, q.MaxPrice)
	assert.Equal(t, 185, q.AvgPrice)
	assert.Equal(t, "1.8 hours", q.LaborTime)
	assert.Equal(t, models.SourceServicePage, q.Source)
	assert.Contains(t, q.Description, "Brake pads are a key part")
	assert.Contains(t, q.WhatsIncluded, "Brake pad replacement on both wheels")

	require.NotNil(t, q.Rating)
	assert.GreaterOrEqual(t, q.Rating.AverageRating, 4.2)
	assert.LessOrEqual(t, q.Rating.AverageRating, 4.9)
	assert.GreaterOrEqual(t, q.Rating.TotalReviews, 150)

	require.NotNil(t, q.CostBreakdown)
	assert.Equal(t, 185, q.CostBreakdown.LaborCost+q.CostBreakdown.PartsCost)

	again, err := c.Extract(context.Background(), c.BaseURL()+"/services/brake-pad-replacement", testRequest("Brake Pads"))
	require.NoError(t, err)
	assert.Equal(t, q.Rating, again.Rating, "rating must be deterministic")
}

func TestExtract_NoPrices(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/services/oil-change", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Call for pricing. Only $3!</p></body></html>`))
	})
	c := newTestClient(t, mux)

	_, err := c.Extract(context.Background(), c.BaseURL()+"/services/oil-change", testRequest("Oil Change"))
	assert.ErrorIs(t, err, api.ErrNoQuote)
}

func TestExtract_NotFound(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	_, err := c.Extract(context.Background(), c.BaseURL()+"/services/oil-change", testRequest("Oil Change"))
	assert.Error(t, err)
}

func TestServiceNameFromURL(t *testing.T) {
	assert.Equal(t, "Oil Change", ServiceNameFromURL("https://example.test/services/oil-change"))
	assert.Equal(t, "Battery Replacement", ServiceNameFromURL("https://example.test/services/battery-replacement/"))
}

func TestProbeEstimate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/estimate", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "10001", q.Get("zip_code"))
		assert.Equal(t, "2020", q.Get("year"))
		assert.Equal(t, "Toyota", q.Get("make"))
		assert.Equal(t, "Camry", q.Get("model"))
		assert.Equal(t, "Oil Change", q.Get("service"))
		w.Write([]byte(`<html><body><span>$100</span><span>$200</span></body></html>`))
	})
	c := newTestClient(t, mux)

	q, err := c.ProbeEstimate(context.Background(), testRequest("Oil Change"))
	require.NoError(t, err)
	assert.Equal(t, "Oil Change", q.Service)
	assert.Equal(t, 100, q.MinPrice)
	assert.Equal(t, 200, q.MaxPrice)
	assert.Equal(t, 150, q.AvgPrice)
	assert.Equal(t, models.SourceEstimatePage, q.Source)
	assert.Nil(t, q.Rating)
}

func TestProbeAPI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/estimate", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Oil Change", body["service"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cost": 200, "parts_included": "Oil and filter"}`))
	})
	c := newTestClient(t, mux)

	q, err := c.ProbeAPI(context.Background(), testRequest("Oil Change"))
	require.NoError(t, err)
	assert.Equal(t, 160, q.MinPrice)
	assert.Equal(t, 240, q.MaxPrice)
	assert.Equal(t, 200, q.AvgPrice)
	assert.Equal(t, "2.0 hours", q.LaborTime)
	assert.Equal(t, "Oil and filter", q.PartsIncluded)
	assert.Equal(t, models.SourceAPI, q.Source)
}

func TestProbeAPI_ImplausiblePrice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/estimate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price": 0}`))
	})
	c := newTestClient(t, mux)

	_, err := c.ProbeAPI(context.Background(), testRequest("Oil Change"))
	assert.ErrorIs(t, err, api.ErrNoQuote)
}

func TestEstimateStrategy_FallsBackToServicePage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/estimate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/api/estimate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/services/brake-pad-replacement", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(servicePage))
	})
	c := newTestClient(t, mux)

	q, err := NewEstimateStrategy(c).Quote(context.Background(), testRequest("Brake Pad Replacement"))
	require.NoError(t, err)
	assert.Equal(t, models.SourceServicePage, q.Source)
}

func TestEstimateStrategy_AllFail(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	_, err := NewEstimateStrategy(c).Quote(context.Background(), testRequest("Oil Change"))
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNoQuote)
}

func TestHealthCheck(t *testing.T) {
	ok := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	assert.True(t, ok.HealthCheck(context.Background()))

	broken := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	assert.False(t, broken.HealthCheck(context.Background()))

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	assert.False(t, New(srv.URL, zerolog.Nop()).HealthCheck(context.Background()))
}

func TestCategories_FromHeadings(t *testing.T) {
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`<html><body>
<h2>Battery</h2>
<ul><li><a href="/services/battery-replacement">Battery Replacement</a></li>
<li><a href="/services/battery-replacement">Battery Replacement</a></li>
<li><a href="/x">Fix</a></li></ul>
<h2>Brakes</h2>
<div><a href="/services/brake-pad-replacement">Brake Pad Replacement</a></div>
<p><a href="/services/ignored">Ignored Paragraph Link</a></p>
<h2>Empty</h2>
</body></html>`))
	})
	c := newTestClient(t, mux)

	categories := c.Categories(context.Background())
	assert.Equal(t, []models.Category{
		{Name: "Battery", Services: []string{"Battery Replacement"}},
		{Name: "Brakes", Services: []string{"Brake Pad Replacement"}},
	}, categories)

	c.Categories(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCategories_GroupedLinks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/services", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<a href="/services/brake-pad-replacement">Brake Pad Replacement</a>
<a href="/services/oil-change">Oil Change</a>
<a href="/services/window-tinting">Window Tinting</a>
<a href="/about">About us today</a>
</body></html>`))
	})
	c := newTestClient(t, mux)

	assert.Equal(t, []models.Category{
		{Name: "Brakes", Services: []string{"Brake Pad Replacement"}},
		{Name: "Engine", Services: []string{"Oil Change"}},
		{Name: "Others", Services: []string{"Window Tinting"}},
	}, c.Categories(context.Background()))
}

func TestCategories_Fallback(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	assert.Equal(t, FallbackCategories(), c.Categories(context.Background()))
}

func TestMakes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<section>We service most makes and models
<a>Toyota</a><a>Honda</a><span>BMW</span><div>Toyota</div><a>ford</a><a>Model 3</a><a>A very long make name here</a>
</section></body></html>`))
	})
	c := newTestClient(t, mux)

	assert.Equal(t, []string{"Toyota", "Honda", "BMW"}, c.Makes(context.Background()))
}

func TestMakes_Fallback(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Nothing here</p></body></html>`))
	}))

	makes := c.Makes(context.Background())
	assert.Equal(t, FallbackMakes(), makes)
	assert.Len(t, makes, 31)
}
