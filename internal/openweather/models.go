package openweather

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// statusCode tolerates the API's habit of returning the embedded
// "cod" field as a number on some endpoints and a string on others.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("parse status code %q: %w", text, err)
		}
		*s = statusCode(value)
		return nil
	}

	var value int
	if err := json.Unmarshal(data, &value); err == nil {
		*s = statusCode(value)
		return nil
	}

	return fmt.Errorf("status code must be a string or number")
}

// APIError is an error the weather API reports in-body via its "cod"
// field.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("weather api error: cod %d", e.Code)
	}
	return fmt.Sprintf("weather api error: cod %d: %s", e.Code, e.Message)
}

// Coord is a coordinate pair as the API reports it.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition is one entry of the API's "weather" array.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Measurements is the API's "main" block.
type Measurements struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

// Wind is the API's "wind" block; speed is m/s with metric units.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

// CurrentWeather is the data/2.5/weather payload.
type CurrentWeather struct {
	Coord      Coord       `json:"coord"`
	Weather    []Condition `json:"weather"`
	Main       Measurements `json:"main"`
	Visibility float64     `json:"visibility"`
	Wind       Wind        `json:"wind"`
	Dt         int64       `json:"dt"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int        `json:"timezone"`
	Name     string     `json:"name"`
	Cod      statusCode `json:"cod"`
	Message  string     `json:"message,omitempty"`
}

// ForecastPoint is one 3-hour sample of the 5-day forecast.
type ForecastPoint struct {
	Dt      int64        `json:"dt"`
	Main    Measurements `json:"main"`
	Weather []Condition  `json:"weather"`
	Wind    Wind         `json:"wind"`
	DtTxt   string       `json:"dt_txt"`
}

// Forecast is the data/2.5/forecast payload: 3-hour samples covering
// roughly five days.
type Forecast struct {
	Cod  statusCode      `json:"cod"`
	List []ForecastPoint `json:"list"`
	City struct {
		Name     string `json:"name"`
		Coord    Coord  `json:"coord"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
		Sunrise  int64  `json:"sunrise"`
		Sunset   int64  `json:"sunset"`
	} `json:"city"`
}

// AirPollutionReading is one sample of the air_pollution payload.
type AirPollutionReading struct {
	Dt   int64 `json:"dt"`
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components map[string]float64 `json:"components"`
}

// AirPollution is the data/2.5/air_pollution payload.
type AirPollution struct {
	Coord Coord                 `json:"coord"`
	List  []AirPollutionReading `json:"list"`
}

// GeoPlace is one result of the geocoding endpoints.
type GeoPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}
