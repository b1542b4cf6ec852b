package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "schedules_backend/internals/helpers"
)

// OnlyRolesSlice lets the request through when the caller holds any of allowedRoles.
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		roles, ok := c.Locals(helper.LocRoles).([]string)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized - roles not found")
		}
		for _, r := range roles {
			if _, ok := allowed[r]; ok {
				return c.Next()
			}
		}
		return helper.JsonError(c, fiber.StatusForbidden, message)
	}
}
