package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/weatherboard/weatherboard/internal/dashboard"
	"github.com/weatherboard/weatherboard/internal/locate"
	"github.com/weatherboard/weatherboard/internal/openweather"
	"github.com/weatherboard/weatherboard/internal/store"
)

type stubAPI struct {
	currentErr error
}

func (s *stubAPI) CurrentWeather(_ context.Context, lat, lon float64) (openweather.CurrentWeather, error) {
	if s.currentErr != nil {
		return openweather.CurrentWeather{}, s.currentErr
	}
	var payload openweather.CurrentWeather
	payload.Coord = openweather.Coord{Lat: lat, Lon: lon}
	payload.Dt = time.Now().Unix()
	return payload, nil
}

func (s *stubAPI) Forecast(context.Context, float64, float64) (openweather.Forecast, error) {
	return openweather.Forecast{List: []openweather.ForecastPoint{{Dt: time.Now().Unix()}}}, nil
}

func (s *stubAPI) AirPollution(context.Context, float64, float64) (openweather.AirPollution, error) {
	return openweather.AirPollution{}, nil
}

func (s *stubAPI) ReverseGeocode(context.Context, float64, float64) ([]openweather.GeoPlace, error) {
	return []openweather.GeoPlace{{Name: "Default City", Country: "GB"}}, nil
}

func TestRefreshCachesViewAndSettlesContent(t *testing.T) {
	viewStore := store.NewMemoryStore(10, time.Hour)
	builder := dashboard.NewBuilder(&stubAPI{})
	loc := locate.Location{Lat: 51.5, Lon: -0.12}

	r := New(builder, viewStore, loc, 15*time.Minute)
	r.refresh()

	if got := r.Status().State(); got != dashboard.StateContent {
		t.Fatalf("expected content after refresh, got %v", got)
	}

	view, err := viewStore.Latest(loc.Lat, loc.Lon)
	if err != nil {
		t.Fatalf("expected a cached view: %v", err)
	}
	if view.LocationLabel != "Default City, GB" {
		t.Fatalf("unexpected cached view label %q", view.LocationLabel)
	}
}

func TestRefreshSettlesErrorOnFailure(t *testing.T) {
	viewStore := store.NewMemoryStore(10, time.Hour)
	builder := dashboard.NewBuilder(&stubAPI{currentErr: errors.New("api down")})
	loc := locate.Location{Lat: 51.5, Lon: -0.12}

	r := New(builder, viewStore, loc, 15*time.Minute)
	r.refresh()

	if got := r.Status().State(); got != dashboard.StateError {
		t.Fatalf("expected error state, got %v", got)
	}
	if _, err := viewStore.Latest(loc.Lat, loc.Lon); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("failed refresh must not cache a view, got %v", err)
	}
}
