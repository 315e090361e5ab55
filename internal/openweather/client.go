// Package openweather is the client for the five OpenWeather
// endpoints the dashboard consumes: current weather, 5-day/3-hour
// forecast, air pollution, forward geocode search and reverse geocode.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://api.openweathermap.org"

// Client performs authenticated requests against the weather API.
// All calls honor context cancellation and share one circuit breaker.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	backoff    BackoffConfig
	circuit    *gobreaker.CircuitBreaker
}

// NewClient creates a Client with the service's resilience defaults:
// 3 retries from 500ms, circuit breaker over one-minute windows.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Client) endpointURL(path string, values url.Values) string {
	values.Set("appid", c.apiKey)
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, values.Encode())
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, rawURL, nil)
	}

	resp, err := c.doRequest(ctx, buildRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CurrentWeather fetches current conditions. A payload whose embedded
// "cod" is not 200 is reported as *APIError; this is the dashboard's
// one explicit API-level error signal.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (CurrentWeather, error) {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("units", "metric")

	var payload CurrentWeather
	if err := c.getJSON(ctx, c.endpointURL("/data/2.5/weather", values), &payload); err != nil {
		return CurrentWeather{}, err
	}

	if payload.Cod != 0 && payload.Cod != http.StatusOK {
		return CurrentWeather{}, &APIError{Code: int(payload.Cod), Message: payload.Message}
	}
	return payload, nil
}

// Forecast fetches the 5-day forecast at the API's native 3-hour
// resolution.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (Forecast, error) {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("units", "metric")

	var payload Forecast
	if err := c.getJSON(ctx, c.endpointURL("/data/2.5/forecast", values), &payload); err != nil {
		return Forecast{}, err
	}

	if payload.Cod != 0 && payload.Cod != http.StatusOK {
		return Forecast{}, &APIError{Code: int(payload.Cod)}
	}
	return payload, nil
}

// AirPollution fetches the current air quality reading.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (AirPollution, error) {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))

	var payload AirPollution
	if err := c.getJSON(ctx, c.endpointURL("/data/2.5/air_pollution", values), &payload); err != nil {
		return AirPollution{}, err
	}
	return payload, nil
}

// SearchGeocode resolves a free-text query to up to limit places.
func (c *Client) SearchGeocode(ctx context.Context, query string, limit int) ([]GeoPlace, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", strconv.Itoa(limit))

	var payload []GeoPlace
	if err := c.getJSON(ctx, c.endpointURL("/geo/1.0/direct", values), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ReverseGeocode resolves coordinates to named places, most specific
// first.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) ([]GeoPlace, error) {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("limit", "5")

	var payload []GeoPlace
	if err := c.getJSON(ctx, c.endpointURL("/geo/1.0/reverse", values), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
