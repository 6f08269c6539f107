package admin

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/routes/auth"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/services"
)

// SetupAdminRoutes registers the catalog administration pages and API.
// Everything under /admin requires a signed-in admin.
func SetupAdminRoutes(app *fiber.App, db *sql.DB, catalogs *services.CatalogService) {
	admin := app.Group("/admin", auth.AuthMiddleware)

	admin.Get("/majors", MajorsPageHandler(db))
	admin.Get("/import-status", ImportStatusPageHandler(db))

	api := app.Group("/api/admin", auth.AuthMiddleware)
	api.Post("/majors/:id/toggle", ToggleMajorHandler(db))
	api.Get("/units/:code", GetUnitRecordHandler(db))
	api.Put("/units", UpsertUnitHandler(db))
	api.Post("/catalog/refresh", RefreshCatalogHandler(db, catalogs))
	api.Get("/import-status", ImportStatusHandler(db))
}
