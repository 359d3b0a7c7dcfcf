package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ueController "lokasiku_backend/internals/features/ulok_eksternal/controller"
	"lokasiku_backend/internals/middlewares"
	authMw "lokasiku_backend/internals/middlewares/auth"
)

func UlokEksternalRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := ueController.NewUlokEksternalController(db)

	// intake publik, tanpa sesi
	api.Post("/intake/ulok_eksternal", middlewares.LoginRateLimiter(), ctrl.Intake)

	ue := api.Group("/ulok_eksternal", authMw.AuthMiddleware(db))
	ue.Get("/", ctrl.List)
	ue.Get("/:id", ctrl.Detail)
	ue.Patch("/:id/approval", ctrl.Approval)
	ue.Patch("/:id/assign-branch", ctrl.AssignBranch)
	ue.Patch("/:id/assign-penanggungjawab", ctrl.AssignPenanggungjawab)
}
