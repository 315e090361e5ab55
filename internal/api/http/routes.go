// Package httpapi wires the dashboard's HTTP surface into Fiber.
package httpapi

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherboard/weatherboard/internal/dashboard"
	"github.com/weatherboard/weatherboard/internal/locate"
	"github.com/weatherboard/weatherboard/internal/openweather"
	"github.com/weatherboard/weatherboard/internal/route"
	"github.com/weatherboard/weatherboard/internal/search"
	"github.com/weatherboard/weatherboard/internal/store"
)

var validate = validator.New()

// ViewBuilder assembles a dashboard view for a coordinate pair.
type ViewBuilder interface {
	Build(ctx context.Context, lat, lon float64) (*dashboard.View, error)
}

// Locator resolves a caller IP to a location, falling back to the
// default location on failure.
type Locator interface {
	Whereami(ctx context.Context, ip string) (locate.Location, bool)
}

// Deps bundles what the handlers need.
type Deps struct {
	Builder ViewBuilder
	Store   *store.MemoryStore
	Locator Locator
	Search  *search.Registry
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/resolve", func(c *fiber.Ctx) error {
		r := route.ParseHash(c.Query("hash"))

		resp := fiber.Map{"kind": r.Kind.String()}
		switch r.Kind {
		case route.KindWeather:
			resp["lat"] = r.Lat
			resp["lon"] = r.Lon
		case route.KindError:
			resp["reason"] = r.Reason
		}
		return c.JSON(resp)
	})

	v1.Get("/dashboard/current-location", func(c *fiber.Ctx) error {
		loc, _ := deps.Locator.Whereami(c.UserContext(), clientIP(c))
		return serveDashboard(c, deps, loc.Lat, loc.Lon)
	})

	v1.Get("/dashboard/weather", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return serveDashboard(c, deps, coords.Lat, coords.Lon)
	})

	v1.Post("/search/session", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"sid": deps.Search.Create()})
	})

	v1.Get("/search/typeahead", func(c *fiber.Ctx) error {
		sid := c.Query("sid")
		controller, ok := deps.Search.Get(sid)
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown search session")
		}

		query := c.Query("q")
		controller.Update(query)

		// Rows reflect the last completed search, which may belong to
		// an earlier query still inside the debounce window.
		return c.JSON(fiber.Map{
			"query":   query,
			"results": controller.Results(),
		})
	})
}

// serveDashboard builds the view and caches it; on a failed build it
// serves the last cached view for the location when one exists. The
// response always carries exactly one state, content or error.
func serveDashboard(c *fiber.Ctx, deps Deps, lat, lon float64) error {
	view, err := deps.Builder.Build(c.UserContext(), lat, lon)
	if err == nil {
		deps.Store.Save(view)
		return c.JSON(fiber.Map{
			"state": dashboard.StateContent.String(),
			"view":  view,
		})
	}

	if cached, cacheErr := deps.Store.Latest(lat, lon); cacheErr == nil {
		return c.JSON(fiber.Map{
			"state": dashboard.StateContent.String(),
			"stale": true,
			"view":  cached,
		})
	}

	status := fiber.StatusBadGateway
	var apiErr *openweather.APIError
	if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 600 {
		status = apiErr.Code
	}

	return c.Status(status).JSON(fiber.Map{
		"state":   dashboard.StateError.String(),
		"message": err.Error(),
	})
}

// coordsQuery holds the validated dashboard coordinates.
type coordsQuery struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return coordsQuery{}, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return coordsQuery{}, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return coordsQuery{}, errors.New("lon must be a number")
	}

	q := coordsQuery{Lat: lat, Lon: lon}
	if err := validate.Struct(q); err != nil {
		return coordsQuery{}, err
	}
	return q, nil
}

func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.IP()
}
