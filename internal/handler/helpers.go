package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/school-records-api/internal/middleware"
)

const dateLayout = "2006-01-02"

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

func parseDateQuery(c *fiber.Ctx, key string) (time.Time, error) {
	value, err := requiredQuery(c, key)
	if err != nil {
		return time.Time{}, err
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, errors.New(key + " must be a date in YYYY-MM-DD format")
	}
	return parsed, nil
}

func requiredQuery(c *fiber.Ctx, key string) (string, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return "", errors.New(key + " is required")
	}
	return value, nil
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
