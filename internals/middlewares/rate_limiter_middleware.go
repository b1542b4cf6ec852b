package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"schedules_backend/internals/configs"
	helper "schedules_backend/internals/helpers"
)

func limitBy(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: every regular endpoint
func GlobalRateLimiter() fiber.Handler {
	return limitBy(configs.GetInt("RATE_LIMIT_PER_MINUTE", 100), time.Minute,
		"too many requests, please try again later")
}

// Login limiter (stricter)
func LoginRateLimiter() fiber.Handler {
	return limitBy(5, time.Minute, "too many login attempts, please wait a moment")
}

// Register limiter
func RegisterRateLimiter() fiber.Handler {
	return limitBy(3, 5*time.Minute, "too many registration attempts, please wait a few minutes")
}
