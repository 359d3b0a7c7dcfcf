package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "lokasiku_backend/internals/features/users/auth/controller"
	"lokasiku_backend/internals/middlewares"
	authMw "lokasiku_backend/internals/middlewares/auth"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh", middlewares.LoginRateLimiter(), ctrl.Refresh)
	auth.Post("/logout", authMw.AuthMiddleware(db), ctrl.Logout)
	auth.Get("/me", authMw.AuthMiddleware(db), ctrl.Me)
}
