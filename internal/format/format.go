// Package format maps raw API fields to display values.
// All functions are pure; timezone handling uses the offset the
// weather API reports for the location, not the server's zone.
package format

import (
	"fmt"
	"time"

	"github.com/weatherboard/weatherboard/internal/common"
)

// aqiText indexes OpenWeather AQI levels 1..5.
var aqiText = [...]string{"Good", "Fair", "Moderate", "Poor", "Very Poor"}

func zoneFor(tzOffsetSec int) *time.Location {
	return time.FixedZone("", tzOffsetSec)
}

// Date renders a unix timestamp as e.g. "Thursday 24, Aug" in the
// location's local time.
func Date(unix int64, tzOffsetSec int) string {
	t := time.Unix(unix, 0).In(zoneFor(tzOffsetSec))
	return t.Format("Monday 2, Jan")
}

// Time renders a unix timestamp as e.g. "5:25 PM".
func Time(unix int64, tzOffsetSec int) string {
	t := time.Unix(unix, 0).In(zoneFor(tzOffsetSec))
	return t.Format("3:04 PM")
}

// Hour renders a unix timestamp as e.g. "5 PM".
func Hour(unix int64, tzOffsetSec int) string {
	t := time.Unix(unix, 0).In(zoneFor(tzOffsetSec))
	return t.Format("3 PM")
}

// MPSToKMH converts the API's metric wind speed (m/s) to km/h.
func MPSToKMH(mps float64) float64 {
	return mps * 3.6
}

// VisibilityKM converts the API's visibility (meters) to kilometers.
func VisibilityKM(meters float64) float64 {
	return meters / 1000
}

// AQIText returns the categorical label for an AQI level (1..5).
// Out-of-range levels map to "Unknown".
func AQIText(level int) string {
	if level < 1 || level > len(aqiText) {
		return "Unknown"
	}
	return aqiText[level-1]
}

// AQIClass returns the style class for an AQI level, "aqi-1".."aqi-5".
// Out-of-range levels map to "aqi-0".
func AQIClass(level int) string {
	if level < 1 || level > len(aqiText) {
		return "aqi-0"
	}
	return fmt.Sprintf("aqi-%d", level)
}

// ConditionClass buckets a free-text weather description into a
// coarse style class for the current-conditions card.
func ConditionClass(description string) string {
	switch {
	case description == "":
		return "unknown"
	case common.HasAnyFold(description, "thunder", "storm"):
		return "storm"
	case common.HasAnyFold(description, "drizzle", "rain", "shower"):
		return "rain"
	case common.HasAnyFold(description, "snow", "sleet"):
		return "snow"
	case common.HasAnyFold(description, "mist", "fog", "haze", "smoke"):
		return "mist"
	case common.HasAnyFold(description, "cloud", "overcast"):
		return "cloudy"
	case common.HasAnyFold(description, "clear", "sun"):
		return "clear"
	default:
		return "unknown"
	}
}

// Coordinates renders a lat/lon pair as a degraded location label for
// when reverse geocoding is unavailable.
func Coordinates(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}
