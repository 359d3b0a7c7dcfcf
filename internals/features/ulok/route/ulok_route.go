package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ulokController "lokasiku_backend/internals/features/ulok/controller"
	authMw "lokasiku_backend/internals/middlewares/auth"
)

func UlokRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := ulokController.NewUlokController(db)

	ulok := api.Group("/ulok", authMw.AuthMiddleware(db))
	ulok.Get("/", ctrl.List)
	ulok.Post("/", ctrl.Create)
	ulok.Get("/:id", ctrl.Detail)
	ulok.Patch("/:id", ctrl.Update)
	ulok.Delete("/:id", ctrl.Delete)
	ulok.Patch("/:id/approval", ctrl.Approval)
	ulok.Post("/:id/photo", ctrl.UploadPhoto)
	ulok.Get("/:id/photo", ctrl.PhotoURL)

	eksisting := api.Group("/ulok_eksisting", authMw.AuthMiddleware(db))
	eksisting.Get("/", ctrl.ListEksisting)
}
