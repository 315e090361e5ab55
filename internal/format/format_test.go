package format

import (
	"math"
	"testing"
)

// 2022-08-25 14:30:00 UTC, a Thursday.
const sampleUnix = int64(1661437800)

func TestDate(t *testing.T) {
	if got := Date(sampleUnix, 0); got != "Thursday 25, Aug" {
		t.Fatalf("Date = %q", got)
	}
	// A positive offset can roll the date into the next day.
	if got := Date(sampleUnix, 10*3600); got != "Friday 26, Aug" {
		t.Fatalf("Date with +10h offset = %q", got)
	}
}

func TestTimeAndHour(t *testing.T) {
	if got := Time(sampleUnix, 0); got != "2:30 PM" {
		t.Fatalf("Time = %q", got)
	}
	if got := Time(sampleUnix, 3600); got != "3:30 PM" {
		t.Fatalf("Time with +1h offset = %q", got)
	}
	if got := Hour(sampleUnix, 0); got != "2 PM" {
		t.Fatalf("Hour = %q", got)
	}
	if got := Hour(sampleUnix, -15*3600); got != "11 PM" {
		t.Fatalf("Hour with -15h offset = %q", got)
	}
}

func TestUnitConversions(t *testing.T) {
	if got := MPSToKMH(10); math.Abs(got-36) > 1e-9 {
		t.Fatalf("MPSToKMH(10) = %v", got)
	}
	if got := VisibilityKM(10000); got != 10 {
		t.Fatalf("VisibilityKM(10000) = %v", got)
	}
}

func TestAQILabels(t *testing.T) {
	tests := []struct {
		level     int
		wantText  string
		wantClass string
	}{
		{1, "Good", "aqi-1"},
		{2, "Fair", "aqi-2"},
		{3, "Moderate", "aqi-3"},
		{4, "Poor", "aqi-4"},
		{5, "Very Poor", "aqi-5"},
		{0, "Unknown", "aqi-0"},
		{6, "Unknown", "aqi-0"},
		{-1, "Unknown", "aqi-0"},
	}

	for _, tt := range tests {
		if got := AQIText(tt.level); got != tt.wantText {
			t.Errorf("AQIText(%d) = %q, want %q", tt.level, got, tt.wantText)
		}
		if got := AQIClass(tt.level); got != tt.wantClass {
			t.Errorf("AQIClass(%d) = %q, want %q", tt.level, got, tt.wantClass)
		}
	}
}

func TestConditionClass(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"light rain", "rain"},
		{"Thunderstorm with heavy drizzle", "storm"},
		{"overcast clouds", "cloudy"},
		{"clear sky", "clear"},
		{"Snow", "snow"},
		{"mist", "mist"},
		{"", "unknown"},
		{"volcanic ash", "unknown"},
	}

	for _, tt := range tests {
		if got := ConditionClass(tt.description); got != tt.want {
			t.Errorf("ConditionClass(%q) = %q, want %q", tt.description, got, tt.want)
		}
	}
}

func TestCoordinates(t *testing.T) {
	if got := Coordinates(51.5073219, -0.1276474); got != "51.5073, -0.1276" {
		t.Fatalf("Coordinates = %q", got)
	}
}
