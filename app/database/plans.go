package database

import (
	"database/sql"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
)

// SaveStudyPlan upserts the session's plan for a major.
func SaveStudyPlan(db *sql.DB, plan *models.StudyPlan) error {
	query := `
		INSERT INTO study_plans (session_id, major_id, plan_data, is_valid, validation_errors, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (session_id, major_id) DO UPDATE SET
			plan_data = EXCLUDED.plan_data,
			is_valid = EXCLUDED.is_valid,
			validation_errors = EXCLUDED.validation_errors,
			updated_at = NOW()
		RETURNING id`
	return db.QueryRow(query, plan.SessionID, plan.MajorID, plan.PlanData,
		plan.IsValid, plan.ValidationErrors).Scan(&plan.ID)
}

// GetStudyPlan loads the saved plan for a session and major.
func GetStudyPlan(db *sql.DB, sessionID string, majorID int) (*models.StudyPlan, error) {
	plan := &models.StudyPlan{}
	err := db.QueryRow(`
		SELECT id, session_id, major_id, plan_data, is_valid, validation_errors, created_at, updated_at
		FROM study_plans WHERE session_id = $1 AND major_id = $2`,
		sessionID, majorID).Scan(
		&plan.ID, &plan.SessionID, &plan.MajorID, &plan.PlanData,
		&plan.IsValid, &plan.ValidationErrors, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// DeleteStudyPlans clears every cached plan, used by the admin screens after
// a catalog refresh invalidates stored validation results.
func DeleteStudyPlans(db *sql.DB) (int64, error) {
	result, err := db.Exec(`DELETE FROM study_plans`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
