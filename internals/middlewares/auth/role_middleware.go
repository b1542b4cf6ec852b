package auth

import (
	"github.com/gofiber/fiber/v2"
)

// OnlyRoles is the variadic form of OnlyRolesSlice.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "forbidden: you are not authorized to access this resource"
	}
	return OnlyRolesSlice(customMessage, roles)
}
