// Package search implements the dashboard's debounced location
// typeahead over the forward-geocode endpoint.
package search

import (
	"context"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/weatherboard/weatherboard/internal/openweather"
)

const (
	// MaxResults bounds how many result rows a query produces.
	MaxResults = 5

	searchTimeout = 10 * time.Second
)

// Geocoder is the slice of the weather client the controller needs.
type Geocoder interface {
	SearchGeocode(ctx context.Context, query string, limit int) ([]openweather.GeoPlace, error)
}

// ResultRow is one selectable typeahead result. Hash is the fragment
// a client navigates to when the row is picked.
type ResultRow struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Hash    string  `json:"hash"`
}

// Controller debounces queries for one client session and holds the
// latest result rows. A generation counter makes result delivery
// last-trigger-wins: a slow response to a superseded query is
// discarded instead of clobbering newer results.
type Controller struct {
	geocoder Geocoder
	debounce *Debouncer

	mu   sync.Mutex
	gen  uint64
	rows []ResultRow
}

// NewController creates a Controller debouncing by delay.
func NewController(geocoder Geocoder, delay time.Duration) *Controller {
	return &Controller{
		geocoder: geocoder,
		debounce: NewDebouncer(delay),
	}
}

// Update reacts to a change of the query text. An empty query cancels
// any pending search and clears the results immediately; otherwise
// the geocode fetch is scheduled behind the debounce interval.
func (c *Controller) Update(query string) {
	query = strings.TrimSpace(query)

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	if query == "" {
		c.debounce.Cancel()
		c.mu.Lock()
		c.rows = nil
		c.mu.Unlock()
		return
	}

	c.debounce.Trigger(func() {
		c.runSearch(gen, query)
	})
}

// Results returns a copy of the latest result rows.
func (c *Controller) Results() []ResultRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]ResultRow, len(c.rows))
	copy(rows, c.rows)
	return rows
}

func (c *Controller) runSearch(gen uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	places, err := c.geocoder.SearchGeocode(ctx, query, MaxResults)
	if err != nil {
		log.Printf("search: geocode for %q failed: %v", query, err)
		return
	}

	rows := make([]ResultRow, 0, len(places))
	for _, p := range places {
		rows = append(rows, ResultRow{
			Name:    p.Name,
			State:   p.State,
			Country: p.Country,
			Lat:     p.Lat,
			Lon:     p.Lon,
			Hash:    WeatherHash(p.Lat, p.Lon),
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer query superseded this one while it was in flight.
		return
	}
	c.rows = rows
}

// WeatherHash builds the navigation fragment for a coordinate pair.
func WeatherHash(lat, lon float64) string {
	return "#/weather?lat=" + strconv.FormatFloat(lat, 'f', -1, 64) +
		"&lon=" + strconv.FormatFloat(lon, 'f', -1, 64)
}
