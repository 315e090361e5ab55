// Package locate resolves the caller's position from their IP
// address. It stands in for the browser geolocation prompt: when the
// lookup fails for any reason the configured fallback location is
// used instead of surfacing an error, matching the dashboard's
// default-location policy.
package locate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
)

const defaultGeolocateURL = "http://ip-api.com/json"

// Location is a resolved coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Client looks up coordinates for an IP address.
type Client struct {
	httpClient *http.Client
	baseURL    string
	fallback   Location
}

// NewClient creates a locate client. fallback is returned whenever a
// lookup cannot be completed.
func NewClient(httpClient *http.Client, fallback Location) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultGeolocateURL,
		fallback:   fallback,
	}
}

// WithBaseURL overrides the geolocation endpoint, primarily for tests
// and config-driven deployments.
func (c *Client) WithBaseURL(base string) *Client {
	if base != "" {
		c.baseURL = base
	}
	return c
}

// Fallback returns the configured default location.
func (c *Client) Fallback() Location {
	return c.fallback
}

// Whereami resolves ip to a location. An empty ip resolves the
// service's own egress address. The second return value reports
// whether the lookup succeeded; on failure the fallback location is
// returned, never an error.
func (c *Client) Whereami(ctx context.Context, ip string) (Location, bool) {
	endpoint := c.baseURL
	if ip != "" {
		endpoint = fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(ip))
	}
	endpoint += "?fields=status,lat,lon"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return c.fallback, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("locate: lookup for %q failed: %v; using fallback", ip, err)
		return c.fallback, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("locate: lookup for %q returned status %d; using fallback", ip, resp.StatusCode)
		return c.fallback, false
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("locate: decode failed for %q: %v; using fallback", ip, err)
		return c.fallback, false
	}
	if payload.Status != "success" {
		return c.fallback, false
	}

	return Location{Lat: payload.Lat, Lon: payload.Lon}, true
}
