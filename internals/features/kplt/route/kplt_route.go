package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	kpltController "lokasiku_backend/internals/features/kplt/controller"
	authMw "lokasiku_backend/internals/middlewares/auth"
)

func KpltRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := kpltController.NewKpltController(db)

	kplt := api.Group("/kplt", authMw.AuthMiddleware(db))
	kplt.Get("/", ctrl.List)
	kplt.Post("/", ctrl.Create)
	kplt.Get("/:id", ctrl.Detail)
	kplt.Patch("/:id", ctrl.Update)
	kplt.Patch("/:id/approval", ctrl.Approval)
	kplt.Delete("/:id", ctrl.Delete)
}
