package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"schedules_backend/internals/configs"
)

// LoggerMiddleware logs every request with its request id.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   configs.GetEnv("LOG_TIMEZONE", "Europe/Kyiv"),
		Format:     "[${time}] ${ip} - ${locals:requestid} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
