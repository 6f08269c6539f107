package planner

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/database"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/planner"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/services"
)

// IndexPageHandler serves the homepage listing the majors available for
// planning.
func IndexPageHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		majors, err := database.GetActiveMajors(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load majors: "+err.Error())
		}

		return c.Render("index", fiber.Map{
			"Title":       "Study Planner",
			"CurrentPage": "home",
			"Majors":      majors,
		})
	}
}

// PlannerPageHandler serves the six-semester planning board for one major.
func PlannerPageHandler(db *sql.DB, catalogs *services.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		majorCode := c.Params("majorCode")

		major, err := database.GetMajorByCode(db, majorCode)
		if err != nil {
			if err == sql.ErrNoRows {
				return fiber.NewError(fiber.StatusNotFound, "Major not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load major: "+err.Error())
		}

		majorUnits, err := database.GetMajorUnits(db, major.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load major units: "+err.Error())
		}

		return c.Render("planner", fiber.Map{
			"Title":       major.Name + " - Study Planner",
			"CurrentPage": "planner",
			"Major":       major,
			"MajorUnits":  majorUnits,
			"SlotLabels":  planner.SlotLabels,
		})
	}
}
