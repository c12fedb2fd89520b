package handlers

// params.go — query-parameter parsing shared by the analytics endpoints.
// The rule is strict: a malformed value is a 400 with a message naming the
// parameter, never a silent fallback to the default. Defaults apply only when
// the parameter is absent.

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// queryPositiveInt reads an optional integer parameter that must be ≥ 1 when
// present (day windows, player thresholds). Absent returns def.
func queryPositiveInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return v, nil
}

// queryUUID reads an optional UUID parameter. Absent returns nil.
func queryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a valid UUID", key)
	}
	return &id, nil
}

// queryBool reads an optional boolean parameter ("true"/"false", plus the
// usual strconv spellings). Absent returns def.
func queryBool(c *fiber.Ctx, key string, def bool) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", key)
	}
	return v, nil
}

// badRequest writes the standard 400 body.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
