package database

import (
	"database/sql"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
)

func GetAllMajors(db *sql.DB) ([]*models.Major, error) {
	rows, err := db.Query(`SELECT id, code, name, degree, is_active, created_at, updated_at
		FROM majors ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majors []*models.Major
	for rows.Next() {
		major := &models.Major{}
		if err := rows.Scan(&major.ID, &major.Code, &major.Name, &major.Degree,
			&major.IsActive, &major.CreatedAt, &major.UpdatedAt); err != nil {
			return nil, err
		}
		majors = append(majors, major)
	}
	return majors, rows.Err()
}

func GetActiveMajors(db *sql.DB) ([]*models.Major, error) {
	rows, err := db.Query(`SELECT id, code, name, degree, is_active, created_at, updated_at
		FROM majors WHERE is_active = true ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majors []*models.Major
	for rows.Next() {
		major := &models.Major{}
		if err := rows.Scan(&major.ID, &major.Code, &major.Name, &major.Degree,
			&major.IsActive, &major.CreatedAt, &major.UpdatedAt); err != nil {
			return nil, err
		}
		majors = append(majors, major)
	}
	return majors, rows.Err()
}

func GetMajorByID(db *sql.DB, majorID int) (*models.Major, error) {
	major := &models.Major{}
	err := db.QueryRow(`SELECT id, code, name, degree, is_active, created_at, updated_at
		FROM majors WHERE id = $1`, majorID).Scan(
		&major.ID, &major.Code, &major.Name, &major.Degree,
		&major.IsActive, &major.CreatedAt, &major.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return major, nil
}

func GetMajorByCode(db *sql.DB, code string) (*models.Major, error) {
	major := &models.Major{}
	err := db.QueryRow(`SELECT id, code, name, degree, is_active, created_at, updated_at
		FROM majors WHERE code = $1`, code).Scan(
		&major.ID, &major.Code, &major.Name, &major.Degree,
		&major.IsActive, &major.CreatedAt, &major.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return major, nil
}

// GetMajorUnits returns a major's unit requirements with full unit records.
func GetMajorUnits(db *sql.DB, majorID int) ([]*models.MajorUnit, error) {
	query := `
		SELECT mu.id, mu.major_id, mu.unit_id, mu.requirement_type, mu.level,
			u.id, u.code, u.title, u.level, u.credit_points, u.prerequisites,
			u.corequisites, u.incompatibilities, u.availabilities, u.is_bridging,
			u.created_at, u.updated_at
		FROM major_units mu
		JOIN units u ON u.id = mu.unit_id
		WHERE mu.major_id = $1
		ORDER BY mu.level, u.code`
	rows, err := db.Query(query, majorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majorUnits []*models.MajorUnit
	for rows.Next() {
		majorUnit := &models.MajorUnit{Unit: &models.Unit{}}
		unit := majorUnit.Unit
		if err := rows.Scan(
			&majorUnit.ID, &majorUnit.MajorID, &majorUnit.UnitID, &majorUnit.RequirementType, &majorUnit.Level,
			&unit.ID, &unit.Code, &unit.Title, &unit.Level, &unit.CreditPoints, &unit.Prerequisites,
			&unit.Corequisites, &unit.Incompatibilities, &unit.Availabilities, &unit.IsBridging,
			&unit.CreatedAt, &unit.UpdatedAt,
		); err != nil {
			return nil, err
		}
		majorUnits = append(majorUnits, majorUnit)
	}
	return majorUnits, rows.Err()
}

// SetMajorActive toggles whether a major is offered for planning.
func SetMajorActive(db *sql.DB, majorID int, active bool) error {
	result, err := db.Exec(`UPDATE majors SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, majorID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountMajors reports how many majors exist for the admin status page.
func CountMajors(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM majors`).Scan(&count)
	return count, err
}
