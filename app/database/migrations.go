package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema on first boot and applies incremental
// updates on later ones.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS units (
			id SERIAL PRIMARY KEY,
			code VARCHAR(10) UNIQUE NOT NULL,
			title VARCHAR(200) NOT NULL,
			level INTEGER NOT NULL,
			credit_points INTEGER NOT NULL DEFAULT 6,
			prerequisites TEXT NOT NULL DEFAULT '',
			corequisites TEXT NOT NULL DEFAULT '',
			incompatibilities TEXT NOT NULL DEFAULT '',
			availabilities TEXT NOT NULL DEFAULT '',
			is_bridging BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_units_code ON units (code)`,
		`CREATE INDEX IF NOT EXISTS idx_units_level ON units (level)`,
		`CREATE TABLE IF NOT EXISTS unit_equivalences (
			id SERIAL PRIMARY KEY,
			unit_code VARCHAR(10) NOT NULL,
			equivalent_code VARCHAR(10) NOT NULL,
			UNIQUE (unit_code, equivalent_code)
		)`,
		`CREATE TABLE IF NOT EXISTS majors (
			id SERIAL PRIMARY KEY,
			code VARCHAR(20) UNIQUE NOT NULL,
			name VARCHAR(100) NOT NULL,
			degree VARCHAR(50) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS major_units (
			id SERIAL PRIMARY KEY,
			major_id INTEGER NOT NULL REFERENCES majors(id) ON DELETE CASCADE,
			unit_id INTEGER NOT NULL REFERENCES units(id) ON DELETE CASCADE,
			requirement_type VARCHAR(20) NOT NULL,
			level INTEGER NOT NULL,
			UNIQUE (major_id, unit_id)
		)`,
		`CREATE TABLE IF NOT EXISTS study_plans (
			id SERIAL PRIMARY KEY,
			session_id VARCHAR(100) NOT NULL,
			major_id INTEGER NOT NULL REFERENCES majors(id),
			plan_data TEXT NOT NULL DEFAULT '{}',
			is_valid BOOLEAN NOT NULL DEFAULT false,
			validation_errors TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (session_id, major_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_study_plans_session ON study_plans (session_id)`,
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
