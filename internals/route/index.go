// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	kpltRoute "lokasiku_backend/internals/features/kplt/route"
	progressRoute "lokasiku_backend/internals/features/progress/route"
	ulokRoute "lokasiku_backend/internals/features/ulok/route"
	ulokEksternalRoute "lokasiku_backend/internals/features/ulok_eksternal/route"
	authRoute "lokasiku_backend/internals/features/users/auth/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	log.Println("[INFO] Mounting Auth routes...")
	authRoute.AuthRoutes(api, db)

	log.Println("[INFO] Mounting ULOK routes...")
	ulokRoute.UlokRoutes(api, db)

	log.Println("[INFO] Mounting ULOK Eksternal routes...")
	ulokEksternalRoute.UlokEksternalRoutes(api, db)

	log.Println("[INFO] Mounting KPLT routes...")
	kpltRoute.KpltRoutes(api, db)

	log.Println("[INFO] Mounting Progress routes...")
	progressRoute.ProgressRoutes(api, db)
}
