// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schedules_backend/internals/configs"
	helper "schedules_backend/internals/helpers"
)

// AuthMiddleware verifies the bearer token and loads the caller into Locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return helper.JsonError(c, fiber.StatusInternalServerError, "missing JWT secret")
		}

		claims, err := helper.ParseAccessToken(secretKey, tokenString)
		if err != nil {
			log.Println("[WARN] token rejected:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized - invalid or expired token")
		}

		if black, err := isBlacklisted(db, tokenString); err != nil {
			log.Println("[ERROR] blacklist lookup:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		} else if black {
			log.Println("[WARN] token found in blacklist")
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized - token revoked")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized - invalid or missing user id")
		}

		if err := ensureUserActive(db, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "unauthorized - user not found")
			}
			if errors.Is(err, errUserInactive) {
				return helper.JsonError(c, fiber.StatusForbidden, "account is deactivated")
			}
			log.Println("[ERROR] ensureUserActive:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}

		helper.SetRawAccessToken(c, tokenString)
		storeClaimsToLocals(c, userID, claims)
		return c.Next()
	}
}
