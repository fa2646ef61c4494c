package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weathertui/internal/forecast"
)

var validate = validator.New()

// Engine is the acquisition surface the routes expose to the terminal
// front end.
type Engine interface {
	Acquire(ctx context.Context, key forecast.Key, now time.Time) (forecast.HourForecast, error)
	Remaining() int
	RequestCount() int
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, engine Engine) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		req, err := parseForecastQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		value, err := engine.Acquire(c.Context(), req.toKey(), time.Now())
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"forecast":   value,
			"from_cache": value.FromCache,
			"remaining":  engine.Remaining(),
		})
	})

	v1.Get("/quota", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"request_count": engine.RequestCount(),
			"remaining":     engine.Remaining(),
		})
	})
}

// forecastQuery holds query parameters for a forecast request. Defaults
// mirror the terminal form: today at noon.
type forecastQuery struct {
	Place string `validate:"required,alpha"`
	Hour  int    `validate:"gte=0,lte=23"`
	Day   int    `validate:"oneof=0 1"`
}

func (q forecastQuery) toKey() forecast.Key {
	return forecast.Key{
		Location: q.Place,
		Day:      forecast.Day(q.Day),
		Hour:     q.Hour,
	}
}

func parseForecastQuery(c *fiber.Ctx) (forecastQuery, error) {
	q := forecastQuery{Hour: 12, Day: 0}

	q.Place = c.Query("place")
	if s := c.Query("hour"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return q, errors.New("hour must be an integer")
		}
		q.Hour = n
	}
	if s := c.Query("day"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return q, errors.New("day must be 0 (today) or 1 (tomorrow)")
		}
		q.Day = n
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// errorResponse maps a classified engine failure onto an HTTP status.
func errorResponse(c *fiber.Ctx, err error) error {
	kind := forecast.KindOf(err)

	status := fiber.StatusInternalServerError
	switch kind {
	case forecast.KindInvalidHour, forecast.KindInvalidLocation:
		status = fiber.StatusBadRequest
	case forecast.KindQuotaExhausted, forecast.KindRateLimited:
		status = fiber.StatusTooManyRequests
	case forecast.KindForbidden:
		status = fiber.StatusForbidden
	case forecast.KindNotFound:
		status = fiber.StatusNotFound
	case forecast.KindTimeout:
		status = fiber.StatusGatewayTimeout
	case forecast.KindConnectionFailed, forecast.KindServerError,
		forecast.KindServiceUnavailable, forecast.KindUnknownHTTP,
		forecast.KindIndexOutOfRange, forecast.KindMalformedPayload:
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"kind":    kind.String(),
		"message": err.Error(),
	})
}
