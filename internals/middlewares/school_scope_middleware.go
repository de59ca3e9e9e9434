// file: internals/middlewares/school_scope_middleware.go
package middlewares

import (
	"github.com/gofiber/fiber/v2"

	helper "examku_backend/internals/helpers"
)

// UseSchoolScope resolves the school id once per request and stores it in
// locals for handlers.
func UseSchoolScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := helper.ResolveSchoolID(c)
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		c.Locals(helper.LocSchoolID, id)
		return c.Next()
	}
}
