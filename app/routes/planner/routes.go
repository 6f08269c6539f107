package planner

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/services"
)

// SetupPlannerRoutes registers the student-facing pages and the planning
// JSON API. Every caller goes through the one validation engine; the
// presentation tier only renders findings.
func SetupPlannerRoutes(app *fiber.App, db *sql.DB, catalogs *services.CatalogService, ai *services.AIClient) {
	app.Get("/", IndexPageHandler(db))
	app.Get("/planner/:majorCode", PlannerPageHandler(db, catalogs))

	api := app.Group("/api")
	api.Get("/majors", GetMajorsHandler(db))
	api.Get("/units", GetUnitsHandler(db))
	api.Get("/units/:code", GetUnitHandler(catalogs))
	api.Post("/validate-plan", ValidatePlanHandler(db, catalogs))
	api.Post("/generate-plan", GeneratePlanHandler(db, catalogs, ai))
	api.Post("/quality-review", QualityReviewHandler(db, catalogs, ai))
	api.Get("/plans/:majorID", GetSavedPlanHandler(db))
}
