package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"lokasiku_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware global dengan urutan:
// recovery → CORS → logger → rate limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
