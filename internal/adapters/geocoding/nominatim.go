package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// ErrGeocodingFailed is returned when an address cannot be geocoded.
type ErrGeocodingFailed struct {
	Address string
	Reason  string
	Err     error
}

func (e *ErrGeocodingFailed) Error() string {
	return fmt.Sprintf("geocoding failed for address: %s - %s", e.Address, e.Reason)
}

func (e *ErrGeocodingFailed) Unwrap() error { return e.Err }

type Config struct {
	BaseURL   string
	UserAgent string
	// Suffix is appended to addresses that do not already end with it,
	// e.g. ", Delhi, India".
	Suffix      string
	Timeout     time.Duration
	MinInterval time.Duration
	// Backoff is the first retry delay; it doubles per attempt.
	Backoff time.Duration
}

// NominatimGeocoder implements ports.Geocoder using the OpenStreetMap
// Nominatim search API.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Client-side rate limiting (one request per MinInterval)
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session     *http.Client
	baseURL     string
	userAgent   string
	suffix      string
	minInterval time.Duration
	backoff     time.Duration
	cache       ports.GeocodeCache

	mu   sync.Mutex
	last time.Time
}

type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewNominatimGeocoder(cfg Config, cache ports.GeocodeCache) (*NominatimGeocoder, error) {
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, errors.New("nominatim user agent is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MinInterval < 0 {
		cfg.MinInterval = 0
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 200 * time.Millisecond
	}

	return &NominatimGeocoder{
		session:     &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		suffix:      cfg.Suffix,
		minInterval: cfg.MinInterval,
		backoff:     cfg.Backoff,
		cache:       cache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace and
// applying the configured suffix.
func (g *NominatimGeocoder) normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}

	suffix := strings.Join(strings.Fields(g.suffix), " ")
	if suffix != "" && !strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix)) {
		s += suffix
	}
	return s
}

// Geocode resolves an address, consulting the cache first.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	query := g.normalize(address)
	if query == "" {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: address, Reason: "address must be non-empty"}
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{query})
		if err != nil {
			log.Printf("geocode cache read failed: address=%q err=%v", query, err)
		} else if c, ok := hits[query]; ok {
			return c, nil
		}
	}

	c, err := g.search(ctx, query)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{query: c}); err != nil {
			log.Printf("geocode cache write failed: address=%q err=%v", query, err)
		}
	}

	return c, nil
}

func (g *NominatimGeocoder) search(ctx context.Context, query string) (domain.Coordinates, error) {
	endpoint := g.baseURL + "/search?" + url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}.Encode()

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, endpoint)
	})
	if err != nil {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "decode response", Err: err}
	}

	if len(results) == 0 {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "no results found"}
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(results[0].Lat), 64)
	if err != nil {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "invalid latitude", Err: err}
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(results[0].Lon), 64)
	if err != nil {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "invalid longitude", Err: err}
	}

	c := domain.Coordinates{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "out of range coordinate", Err: err}
	}

	log.Printf("geocode resolved: address=%q lat=%.6f lon=%.6f display_name=%q", query, lat, lon, results[0].DisplayName)
	return c, nil
}
