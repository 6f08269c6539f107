package planner

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/database"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/planner"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/services"
)

// sessionID returns the planning session cookie, issuing one on first use.
// Saved plans are keyed by it.
func sessionID(c *fiber.Ctx) string {
	if id := c.Cookies("plan_session"); id != "" {
		return id
	}
	id := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     "plan_session",
		Value:    id,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return id
}

// GetMajorsHandler returns the majors open for planning.
func GetMajorsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		majors, err := database.GetActiveMajors(db)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve majors"})
		}
		return c.JSON(fiber.Map{"majors": majors})
	}
}

// GetUnitsHandler lists catalog units for the unit picker. Bridging units
// are excluded; level and search filters are optional.
func GetUnitsHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters := database.UnitFilters{
			Search:          c.Query("search"),
			ExcludeBridging: true,
			Limit:           c.QueryInt("limit", 200),
		}
		if level := c.QueryInt("level"); level >= 1 && level <= 3 {
			filters.Level = level
		}

		units, err := database.GetUnits(db, filters)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve units"})
		}
		return c.JSON(fiber.Map{"units": units})
	}
}

// GetUnitHandler is the read-only unit lookup, answered from the current
// catalog snapshot.
func GetUnitHandler(catalogs *services.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unit, err := catalogs.Snapshot().Describe(c.Params("code"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(unit)
	}
}

type validateRequest struct {
	MajorID int                 `json:"major_id"`
	Plan    map[string][]string `json:"plan"`
}

// ValidatePlanHandler runs the validation engine over a modified plan and
// persists the outcome for the session.
func ValidatePlanHandler(db *sql.DB, catalogs *services.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req validateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if req.Plan == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Plan data required"})
		}

		result, err := planner.ValidateMap(req.Plan, catalogs.Snapshot())
		if err != nil {
			// structural contract violation, not a validation finding
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		if req.MajorID > 0 {
			savePlanResult(c, db, req.MajorID, req.Plan, result)
		}

		return c.JSON(result)
	}
}

func savePlanResult(c *fiber.Ctx, db *sql.DB, majorID int, planData map[string][]string, result *planner.Result) {
	encoded, err := json.Marshal(planData)
	if err != nil {
		return
	}
	record := &models.StudyPlan{
		SessionID:        sessionID(c),
		MajorID:          majorID,
		PlanData:         string(encoded),
		IsValid:          result.IsValid,
		ValidationErrors: strings.Join(result.Errors, " "),
	}
	// saving is best effort; the validation response stands on its own
	_ = database.SaveStudyPlan(db, record)
}

type generateRequest struct {
	MajorID int `json:"major_id"`
}

// GeneratePlanHandler drafts an initial plan for a major, validates the
// draft with the engine, and returns plan, findings, and enriched unit
// details together.
func GeneratePlanHandler(db *sql.DB, catalogs *services.CatalogService, ai *services.AIClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req generateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}

		major, err := database.GetMajorByID(db, req.MajorID)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Major not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load major"})
		}

		majorUnits, err := database.GetMajorUnits(db, major.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load major units"})
		}

		planData, err := ai.GeneratePlan(major, majorUnits)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate plan: " + err.Error()})
		}

		snapshot := catalogs.Snapshot()
		result, err := planner.ValidateMap(planData, snapshot)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Generated plan was malformed: " + err.Error()})
		}

		savePlanResult(c, db, major.ID, planData, result)

		return c.JSON(fiber.Map{
			"plan":          planData,
			"enriched_plan": enrichPlan(planData, snapshot),
			"validation":    result,
			"major":         major,
		})
	}
}

// enrichPlan attaches display metadata to each placed code so the frontend
// needs no second round trip. Codes missing from the catalog fall back to
// what the code itself implies.
func enrichPlan(planData map[string][]string, snapshot *planner.Catalog) map[string][]fiber.Map {
	enriched := make(map[string][]fiber.Map, len(planData))
	for label, codes := range planData {
		entries := make([]fiber.Map, 0, len(codes))
		for _, code := range codes {
			if unit, err := snapshot.Describe(code); err == nil {
				entries = append(entries, fiber.Map{
					"code":           unit.Code,
					"title":          unit.Title,
					"level":          unit.Level,
					"credit_points":  unit.Points(),
					"prerequisites":  unit.Prerequisites,
					"availabilities": unit.Availabilities,
				})
			} else {
				entries = append(entries, fiber.Map{
					"code":          strings.ToUpper(code),
					"title":         "Unit " + strings.ToUpper(code),
					"level":         models.LevelFromCode(strings.ToUpper(code)),
					"credit_points": models.DefaultCreditPoints,
				})
			}
		}
		enriched[label] = entries
	}
	return enriched
}

type qualityRequest struct {
	MajorID int                 `json:"major_id"`
	Plan    map[string][]string `json:"plan"`
}

// QualityReviewHandler pairs the engine's findings with an AI quality
// assessment of the same plan.
func QualityReviewHandler(db *sql.DB, catalogs *services.CatalogService, ai *services.AIClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req qualityRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body: " + err.Error()})
		}
		if req.Plan == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Plan data required"})
		}

		major, err := database.GetMajorByID(db, req.MajorID)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Major not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load major"})
		}

		result, err := planner.ValidateMap(req.Plan, catalogs.Snapshot())
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		report, err := ai.ReviewPlan(major, req.Plan, result)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Quality review failed: " + err.Error()})
		}

		return c.JSON(fiber.Map{
			"quality":    report,
			"validation": result,
		})
	}
}

// GetSavedPlanHandler returns the session's saved plan for a major.
func GetSavedPlanHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		majorID, err := strconv.Atoi(c.Params("majorID"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid major id"})
		}

		record, err := database.GetStudyPlan(db, sessionID(c), majorID)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No saved plan for session"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load plan"})
		}

		var planData map[string][]string
		if err := json.Unmarshal([]byte(record.PlanData), &planData); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Stored plan is corrupt"})
		}

		return c.JSON(fiber.Map{
			"plan":       planData,
			"is_valid":   record.IsValid,
			"updated_at": record.UpdatedAt,
		})
	}
}
