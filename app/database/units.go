package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
)

// UnitFilters represents filtering options for the unit listing endpoints.
type UnitFilters struct {
	Search          string
	Level           int
	ExcludeBridging bool
	Limit           int
	Offset          int
}

const unitColumns = `id, code, title, level, credit_points, prerequisites, corequisites,
	incompatibilities, availabilities, is_bridging, created_at, updated_at`

func scanUnit(row interface{ Scan(...interface{}) error }) (*models.Unit, error) {
	unit := &models.Unit{}
	err := row.Scan(
		&unit.ID, &unit.Code, &unit.Title, &unit.Level, &unit.CreditPoints,
		&unit.Prerequisites, &unit.Corequisites, &unit.Incompatibilities,
		&unit.Availabilities, &unit.IsBridging, &unit.CreatedAt, &unit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// GetAllUnits loads every unit with its equivalence declarations attached.
// Used to build catalog snapshots.
func GetAllUnits(db *sql.DB) ([]*models.Unit, error) {
	rows, err := db.Query(`SELECT ` + unitColumns + ` FROM units ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	byCode := map[string]*models.Unit{}
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
		byCode[unit.Code] = unit
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	equivalenceRows, err := db.Query(`SELECT unit_code, equivalent_code FROM unit_equivalences`)
	if err != nil {
		return nil, err
	}
	defer equivalenceRows.Close()

	for equivalenceRows.Next() {
		var unitCode, equivalentCode string
		if err := equivalenceRows.Scan(&unitCode, &equivalentCode); err != nil {
			return nil, err
		}
		if unit, ok := byCode[unitCode]; ok {
			unit.Equivalences = append(unit.Equivalences, equivalentCode)
		}
	}
	return units, equivalenceRows.Err()
}

// GetUnits returns units matching the filters, for the unit listing API.
func GetUnits(db *sql.DB, filters UnitFilters) ([]*models.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE 1=1`
	var args []interface{}

	if filters.Search != "" {
		args = append(args, "%"+strings.ToUpper(filters.Search)+"%")
		query += fmt.Sprintf(" AND (UPPER(code) LIKE $%d OR UPPER(title) LIKE $%d)", len(args), len(args))
	}
	if filters.Level > 0 {
		args = append(args, filters.Level)
		query += fmt.Sprintf(" AND level = $%d", len(args))
	}
	if filters.ExcludeBridging {
		query += " AND is_bridging = false AND level BETWEEN 1 AND 3"
	}

	query += " ORDER BY level, code"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

// GetUnitByCode returns one unit record.
func GetUnitByCode(db *sql.DB, code string) (*models.Unit, error) {
	row := db.QueryRow(`SELECT `+unitColumns+` FROM units WHERE code = $1`, strings.ToUpper(code))
	return scanUnit(row)
}

// UpsertUnit inserts or updates a unit record by code.
func UpsertUnit(db *sql.DB, unit *models.Unit) error {
	query := `
		INSERT INTO units (code, title, level, credit_points, prerequisites, corequisites,
			incompatibilities, availabilities, is_bridging, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (code) DO UPDATE SET
			title = EXCLUDED.title,
			level = EXCLUDED.level,
			credit_points = EXCLUDED.credit_points,
			prerequisites = EXCLUDED.prerequisites,
			corequisites = EXCLUDED.corequisites,
			incompatibilities = EXCLUDED.incompatibilities,
			availabilities = EXCLUDED.availabilities,
			is_bridging = EXCLUDED.is_bridging,
			updated_at = NOW()
		RETURNING id`
	return db.QueryRow(query,
		strings.ToUpper(unit.Code), unit.Title, unit.Level, unit.Points(),
		unit.Prerequisites, unit.Corequisites, unit.Incompatibilities,
		unit.Availabilities, unit.IsBridging,
	).Scan(&unit.ID)
}

// CountUnits reports catalog size for the admin status page.
func CountUnits(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM units`).Scan(&count)
	return count, err
}
