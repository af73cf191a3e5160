package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultGeocodeURL is the GSI (Geospatial Information Authority of
// Japan) address search endpoint. It is free and needs no API key.
const DefaultGeocodeURL = "https://msearch.gsi.go.jp/address-search/AddressSearch"

// ErrAddressNotFound means the geocoder returned no candidates.
var ErrAddressNotFound = errors.New("geo: address not found")

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Client geocodes Japanese addresses against the GSI endpoint. A rate
// limiter keeps batch jobs polite toward the public service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a geocoding client. ratePerSecond bounds the
// request rate; zero or negative falls back to 2 req/s.
func NewClient(baseURL string, ratePerSecond float64) *Client {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	if ratePerSecond <= 0 {
		ratePerSecond = 2
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
	}
}

// gsiFeature mirrors the GSI GeoJSON response. Coordinates are
// [longitude, latitude].
type gsiFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

// Geocode resolves an address to coordinates, taking the first
// candidate the service returns.
func (c *Client) Geocode(ctx context.Context, address string) (Coordinates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Coordinates{}, err
	}

	reqURL := c.baseURL + "?q=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Coordinates{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var features []gsiFeature
	if err := json.NewDecoder(resp.Body).Decode(&features); err != nil {
		return Coordinates{}, fmt.Errorf("geocode response: %w", err)
	}
	if len(features) == 0 || len(features[0].Geometry.Coordinates) < 2 {
		return Coordinates{}, fmt.Errorf("%w: %q", ErrAddressNotFound, address)
	}

	coords := features[0].Geometry.Coordinates
	return Coordinates{Latitude: coords[1], Longitude: coords[0]}, nil
}
