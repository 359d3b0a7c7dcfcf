package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	progressController "lokasiku_backend/internals/features/progress/progress/controller"
	stageController "lokasiku_backend/internals/features/progress/stages/controller"
	authMw "lokasiku_backend/internals/middlewares/auth"
)

func ProgressRoutes(api fiber.Router, db *gorm.DB) {
	progressCtrl := progressController.NewProgressController(db)
	stageCtrl := stageController.NewStageController(db)

	progress := api.Group("/progress", authMw.AuthMiddleware(db))
	progress.Get("/", progressCtrl.List)
	progress.Get("/:id", progressCtrl.Detail)

	// endpoint per tahap: :stage divalidasi controller terhadap registry
	progress.Post("/:id/:stage", stageCtrl.Upsert)
	progress.Patch("/:id/:stage", stageCtrl.Upsert)
	progress.Patch("/:id/:stage/approval", stageCtrl.Approval)
	progress.Get("/:id/:stage/history", stageCtrl.History)
}
