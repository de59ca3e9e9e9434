// file: internals/helpers/school_scope.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocSchoolID          = "school_id"
	HeaderActiveSchoolID = "X-Active-School-ID"
)

// ResolveSchoolID reads the school scope from, in order: the :school_id path
// param, the X-Active-School-ID header, then ?school_id.
func ResolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(LocSchoolID).(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}
	for _, raw := range []string{
		c.Params("school_id"),
		c.Get(HeaderActiveSchoolID),
		c.Query("school_id"),
	} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school_id is not a valid UUID")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school_id is required in path, header, or query")
}

// ParseUUIDParam parses a required UUID path param.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid UUID")
	}
	return id, nil
}
