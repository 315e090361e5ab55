package dashboard

import "time"

// CurrentCard is the current-conditions section of the view.
type CurrentCard struct {
	TempC          float64 `json:"temperatureC"`
	Condition      string  `json:"condition"`
	ConditionClass string  `json:"conditionClass"`
	Icon           string  `json:"icon"`
	DateLabel      string  `json:"date"`
}

// AirQuality is the AQI block of the highlights section.
type AirQuality struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Class string  `json:"class"`
	PM25  float64 `json:"pm2_5"`
	SO2   float64 `json:"so2"`
	NO2   float64 `json:"no2"`
	O3    float64 `json:"o3"`
}

// Highlights is the "today's highlights" section. Air is nil when the
// air-pollution fetch failed; the failure is recorded in the view's
// SectionErrors rather than swallowed.
type Highlights struct {
	Air          *AirQuality `json:"airQuality,omitempty"`
	SunriseLabel string      `json:"sunrise"`
	SunsetLabel  string      `json:"sunset"`
	HumidityPct  float64     `json:"humidityPercent"`
	PressureHpa  float64     `json:"pressureHpa"`
	VisibilityKM float64     `json:"visibilityKm"`
	FeelsLikeC   float64     `json:"feelsLikeC"`
}

// HourlySlot is one entry of the 24-slot hourly strip. Slots are
// synthesized from 3-hour forecast points; Unix carries the displayed
// (simulated) timestamp, one hour after the previous slot.
type HourlySlot struct {
	Unix         int64   `json:"unix"`
	HourLabel    string  `json:"hour"`
	TempC        float64 `json:"temperatureC"`
	Icon         string  `json:"icon"`
	WindSpeedKMH float64 `json:"windSpeedKmh"`
	WindDeg      float64 `json:"windDeg"`
}

// DailyEntry is one entry of the 7-day strip. Synthetic marks entries
// fabricated by repeating the last forecast point past the end of the
// source data.
type DailyEntry struct {
	Unix      int64   `json:"unix"`
	DateLabel string  `json:"date"`
	TempMaxC  float64 `json:"temperatureMaxC"`
	Icon      string  `json:"icon"`
	Condition string  `json:"condition"`
	Synthetic bool    `json:"synthetic,omitempty"`
}

// SectionError records a non-fatal failure of one view section.
type SectionError struct {
	Section string `json:"section"`
	Message string `json:"message"`
}

// View is the assembled dashboard for one location.
type View struct {
	Lat            float64        `json:"lat"`
	Lon            float64        `json:"lon"`
	LocationLabel  string         `json:"locationLabel"`
	TimezoneOffset int            `json:"timezoneOffset"`
	Current        CurrentCard    `json:"current"`
	Highlights     Highlights     `json:"highlights"`
	Hourly         []HourlySlot   `json:"hourly"`
	Daily          []DailyEntry   `json:"daily"`
	SectionErrors  []SectionError `json:"sectionErrors,omitempty"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}
