// Package route resolves the dashboard's hash fragments to views.
//
// The route set is closed: "/current-location", "/weather" plus the
// error route for everything else. An empty hash defaults to
// "/current-location", mirroring the dashboard's initial navigation.
package route

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which handler a hash resolves to.
type Kind int

const (
	KindCurrentLocation Kind = iota
	KindWeather
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindCurrentLocation:
		return "current-location"
	case KindWeather:
		return "weather"
	default:
		return "error"
	}
}

// ErrInvalidQuery is returned when a weather query string is missing
// coordinates or carries values that are not usable.
var ErrInvalidQuery = errors.New("invalid weather query")

// Route is the resolved form of a hash fragment. Lat/Lon are only
// meaningful for KindWeather; Reason is only set for KindError.
type Route struct {
	Kind   Kind
	Lat    float64
	Lon    float64
	Reason string
}

// ParseHash resolves a raw hash fragment. It never panics: every
// malformed input resolves to the error route.
func ParseHash(hash string) Route {
	hash = strings.TrimPrefix(hash, "#")
	if hash == "" {
		return Route{Kind: KindCurrentLocation}
	}

	path := hash
	query := ""
	if i := strings.IndexByte(hash, '?'); i >= 0 {
		path = hash[:i]
		query = hash[i+1:]
	}

	switch path {
	case "/current-location":
		return Route{Kind: KindCurrentLocation}
	case "/weather":
		lat, lon, err := ParseWeatherQuery(query)
		if err != nil {
			return Route{Kind: KindError, Reason: err.Error()}
		}
		return Route{Kind: KindWeather, Lat: lat, Lon: lon}
	default:
		return Route{Kind: KindError, Reason: fmt.Sprintf("unknown route %q", path)}
	}
}

// ParseWeatherQuery extracts lat/lon from an ampersand-delimited query
// string. Keys may appear in any order; the first occurrence of each
// wins; values are not URL-decoded. Both keys must be present, parse
// as finite numbers, and lie within [-90,90] / [-180,180].
func ParseWeatherQuery(query string) (lat, lon float64, err error) {
	var latSet, lonSet bool

	for _, pair := range strings.Split(query, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		switch key {
		case "lat":
			if latSet {
				continue
			}
			lat, err = parseCoordinate(value, "lat", 90)
			if err != nil {
				return 0, 0, err
			}
			latSet = true
		case "lon":
			if lonSet {
				continue
			}
			lon, err = parseCoordinate(value, "lon", 180)
			if err != nil {
				return 0, 0, err
			}
			lonSet = true
		}
	}

	if !latSet || !lonSet {
		return 0, 0, fmt.Errorf("%w: lat and lon are required", ErrInvalidQuery)
	}
	return lat, lon, nil
}

func parseCoordinate(value, name string, bound float64) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidQuery, name, value)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not finite", ErrInvalidQuery, name, value)
	}
	if v < -bound || v > bound {
		return 0, fmt.Errorf("%w: %s %v out of range [%v,%v]", ErrInvalidQuery, name, v, -bound, bound)
	}
	return v, nil
}
