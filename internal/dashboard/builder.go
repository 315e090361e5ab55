// Package dashboard assembles the weather dashboard view for one
// location: current conditions, highlights, a synthesized hourly
// strip and a 7-day strip.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/weatherboard/weatherboard/internal/format"
	"github.com/weatherboard/weatherboard/internal/openweather"
)

// WeatherAPI is the slice of the weather client the builder needs.
type WeatherAPI interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (openweather.CurrentWeather, error)
	Forecast(ctx context.Context, lat, lon float64) (openweather.Forecast, error)
	AirPollution(ctx context.Context, lat, lon float64) (openweather.AirPollution, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) ([]openweather.GeoPlace, error)
}

// Builder runs the render pipeline against the weather API.
type Builder struct {
	api WeatherAPI
}

// NewBuilder creates a Builder.
func NewBuilder(api WeatherAPI) *Builder {
	return &Builder{api: api}
}

// Build assembles the view for (lat, lon).
//
// The current-weather fetch is the critical path: an API-level error
// there aborts the build before any secondary fetch is issued. The
// reverse-geocode, air-pollution and forecast fetches then run
// concurrently with per-stage error handling: a failed reverse
// geocode degrades the location label to formatted coordinates, a
// failed air-pollution fetch drops the AQI block, and either is
// recorded as a section error. A failed forecast fails the build,
// since the hourly and daily sections are gated on it.
func (b *Builder) Build(ctx context.Context, lat, lon float64) (*View, error) {
	current, err := b.api.CurrentWeather(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("current weather: %w", err)
	}

	tz := current.Timezone
	view := &View{
		Lat:            lat,
		Lon:            lon,
		LocationLabel:  format.Coordinates(lat, lon),
		TimezoneOffset: tz,
		Current: CurrentCard{
			TempC:          current.Main.Temp,
			Condition:      conditionOf(current.Weather),
			ConditionClass: format.ConditionClass(conditionOf(current.Weather)),
			Icon:           iconOf(current.Weather),
			DateLabel:      format.Date(current.Dt, tz),
		},
		Highlights: Highlights{
			SunriseLabel: format.Time(current.Sys.Sunrise, tz),
			SunsetLabel:  format.Time(current.Sys.Sunset, tz),
			HumidityPct:  current.Main.Humidity,
			PressureHpa:  current.Main.Pressure,
			VisibilityKM: format.VisibilityKM(current.Visibility),
			FeelsLikeC:   current.Main.FeelsLike,
		},
		GeneratedAt: time.Now().UTC(),
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		forecast    openweather.Forecast
		forecastErr error
	)

	sectionFailed := func(section string, err error) {
		log.Printf("dashboard: %s fetch failed for (%v, %v): %v", section, lat, lon, err)
		mu.Lock()
		view.SectionErrors = append(view.SectionErrors, SectionError{
			Section: section,
			Message: err.Error(),
		})
		mu.Unlock()
	}

	wg.Add(3)

	go func() {
		defer wg.Done()
		places, err := b.api.ReverseGeocode(ctx, lat, lon)
		if err != nil || len(places) == 0 {
			if err == nil {
				err = fmt.Errorf("no place found")
			}
			sectionFailed("location", err)
			return
		}
		mu.Lock()
		view.LocationLabel = placeLabel(places[0])
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		air, err := b.api.AirPollution(ctx, lat, lon)
		if err != nil || len(air.List) == 0 {
			if err == nil {
				err = fmt.Errorf("empty air pollution reading")
			}
			sectionFailed("air-quality", err)
			return
		}
		reading := air.List[0]
		mu.Lock()
		view.Highlights.Air = &AirQuality{
			Index: reading.Main.AQI,
			Text:  format.AQIText(reading.Main.AQI),
			Class: format.AQIClass(reading.Main.AQI),
			PM25:  reading.Components["pm2_5"],
			SO2:   reading.Components["so2"],
			NO2:   reading.Components["no2"],
			O3:    reading.Components["o3"],
		}
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		forecast, forecastErr = b.api.Forecast(ctx, lat, lon)
	}()

	wg.Wait()

	if forecastErr != nil {
		return nil, fmt.Errorf("forecast: %w", forecastErr)
	}

	view.Hourly = synthesizeHourly(forecast.List, tz)
	view.Daily = synthesizeDaily(forecast.List, tz)
	return view, nil
}

func placeLabel(p openweather.GeoPlace) string {
	label := p.Name
	if p.State != "" {
		label += ", " + p.State
	}
	if p.Country != "" {
		label += ", " + p.Country
	}
	return label
}
