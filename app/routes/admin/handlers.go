package admin

import (
	"database/sql"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/database"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/services"
)

// MajorsPageHandler serves the major management page, listing every major
// with its active flag.
func MajorsPageHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		majors, err := database.GetAllMajors(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load majors: "+err.Error())
		}

		return c.Render("admin/majors", fiber.Map{
			"Title":       "Manage Majors - Study Planner",
			"CurrentPage": "admin-majors",
			"Majors":      majors,
			"UserName":    c.Locals("user_name"),
		})
	}
}

// ImportStatusPageHandler serves the catalog health page.
func ImportStatusPageHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitCount, err := database.CountUnits(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to count units: "+err.Error())
		}
		majorCount, err := database.CountMajors(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to count majors: "+err.Error())
		}

		return c.Render("admin/import_status", fiber.Map{
			"Title":       "Catalog Status - Study Planner",
			"CurrentPage": "admin-status",
			"UnitCount":   unitCount,
			"MajorCount":  majorCount,
			"UserName":    c.Locals("user_name"),
		})
	}
}

type toggleRequest struct {
	IsActive bool `json:"is_active"`
}

// ToggleMajorHandler switches a major between visible and hidden on the
// student homepage.
func ToggleMajorHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		majorID, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid major id"})
		}

		var req toggleRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if err := database.SetMajorActive(db, majorID, req.IsActive); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Major not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update major"})
		}

		log.Printf("Major %d active set to %v by %v", majorID, req.IsActive, c.Locals("user_email"))
		return c.JSON(fiber.Map{"message": "Major updated", "is_active": req.IsActive})
	}
}

// GetUnitRecordHandler returns the stored unit row, as opposed to the
// catalog snapshot view served by the public API.
func GetUnitRecordHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unit, err := database.GetUnitByCode(db, c.Params("code"))
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unit not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load unit"})
		}
		return c.JSON(unit)
	}
}

// UpsertUnitHandler creates or updates a unit record. Changes become
// visible to validation after a catalog refresh.
func UpsertUnitHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var unit models.Unit
		if err := c.BodyParser(&unit); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if len(unit.Code) < 8 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unit code must be a four-letter, four-digit code"})
		}
		if unit.Level == 0 {
			unit.Level = models.LevelFromCode(unit.Code)
		}

		if err := database.UpsertUnit(db, &unit); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save unit"})
		}

		log.Printf("Unit %s saved by %v", unit.Code, c.Locals("user_email"))
		return c.JSON(fiber.Map{"message": "Unit saved", "unit": unit})
	}
}

// RefreshCatalogHandler rebuilds the in-memory catalog snapshot from the
// database and clears saved plans, which may no longer match the new
// catalog.
func RefreshCatalogHandler(db *sql.DB, catalogs *services.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := catalogs.Refresh(db); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Catalog refresh failed: " + err.Error()})
		}

		cleared, err := database.DeleteStudyPlans(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Catalog refreshed but clearing saved plans failed: " + err.Error()})
		}

		return c.JSON(fiber.Map{
			"message":       "Catalog refreshed",
			"units":         catalogs.Snapshot().Len(),
			"plans_cleared": cleared,
		})
	}
}

// ImportStatusHandler reports catalog record counts as JSON.
func ImportStatusHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unitCount, err := database.CountUnits(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count units"})
		}
		majorCount, err := database.CountMajors(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count majors"})
		}

		return c.JSON(fiber.Map{
			"units":  unitCount,
			"majors": majorCount,
		})
	}
}
