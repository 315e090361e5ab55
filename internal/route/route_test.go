package route

import (
	"errors"
	"testing"
)

func TestParseHashRecognizedRoutes(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want Kind
	}{
		{"empty hash defaults to current location", "", KindCurrentLocation},
		{"bare marker", "#", KindCurrentLocation},
		{"current location", "#/current-location", KindCurrentLocation},
		{"current location without marker", "/current-location", KindCurrentLocation},
		{"weather with coordinates", "#/weather?lat=51.5&lon=-0.12", KindWeather},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHash(tt.hash)
			if got.Kind != tt.want {
				t.Fatalf("ParseHash(%q).Kind = %v, want %v", tt.hash, got.Kind, tt.want)
			}
		})
	}
}

func TestParseHashWeatherCoordinates(t *testing.T) {
	r := ParseHash("#/weather?lat=51.5&lon=-0.12")
	if r.Kind != KindWeather {
		t.Fatalf("expected weather route, got %v (%s)", r.Kind, r.Reason)
	}
	if r.Lat != 51.5 || r.Lon != -0.12 {
		t.Fatalf("expected (51.5, -0.12), got (%v, %v)", r.Lat, r.Lon)
	}
}

func TestParseHashUnknownRoute(t *testing.T) {
	r := ParseHash("#/forecast?days=7")
	if r.Kind != KindError {
		t.Fatalf("expected error route, got %v", r.Kind)
	}
	if r.Reason == "" {
		t.Fatal("expected a reason on the error route")
	}
}

func TestParseWeatherQueryRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty query", ""},
		{"missing lon", "lat=51.5"},
		{"missing lat", "lon=-0.12"},
		{"non-numeric lat", "lat=abc&lon=0"},
		{"non-numeric lon", "lat=0&lon=abc"},
		{"lat out of range", "lat=999&lon=0"},
		{"lat below range", "lat=-90.0001&lon=0"},
		{"lon out of range", "lat=0&lon=180.5"},
		{"lon below range", "lat=0&lon=-181"},
		{"nan lat", "lat=NaN&lon=0"},
		{"infinite lon", "lat=0&lon=Inf"},
		{"url-encoded value is not decoded", "lat=51%2E5&lon=0"},
		{"bare keys", "lat&lon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseWeatherQuery(tt.query); !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("ParseWeatherQuery(%q) = %v, want ErrInvalidQuery", tt.query, err)
			}

			// The same input through the full parser must land on the
			// error route, never a crash or partial result.
			r := ParseHash("#/weather?" + tt.query)
			if r.Kind != KindError {
				t.Fatalf("ParseHash landed on %v for %q, want error route", r.Kind, tt.query)
			}
		})
	}
}

func TestParseWeatherQueryOrderAndDuplicates(t *testing.T) {
	lat, lon, err := ParseWeatherQuery("lon=10&lat=20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 20 || lon != 10 {
		t.Fatalf("expected (20, 10), got (%v, %v)", lat, lon)
	}

	// First occurrence of each key wins.
	lat, lon, err = ParseWeatherQuery("lat=1&lat=2&lon=3&lon=4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 1 || lon != 3 {
		t.Fatalf("expected (1, 3), got (%v, %v)", lat, lon)
	}
}

func TestParseWeatherQueryIgnoresExtraKeys(t *testing.T) {
	lat, lon, err := ParseWeatherQuery("units=metric&lat=5&lon=6&page=2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 5 || lon != 6 {
		t.Fatalf("expected (5, 6), got (%v, %v)", lat, lon)
	}
}

func TestParseWeatherQueryBoundaryValues(t *testing.T) {
	lat, lon, err := ParseWeatherQuery("lat=-90&lon=180")
	if err != nil {
		t.Fatalf("boundary coordinates should be accepted: %v", err)
	}
	if lat != -90 || lon != 180 {
		t.Fatalf("expected (-90, 180), got (%v, %v)", lat, lon)
	}
}
