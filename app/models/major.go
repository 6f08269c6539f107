package models

import "time"

// Major represents a named specialization within a degree.
type Major struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Degree    string    `json:"degree"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MajorUnit links a unit to a major with its requirement type and year level.
type MajorUnit struct {
	ID              int             `json:"id"`
	MajorID         int             `json:"major_id"`
	UnitID          int             `json:"unit_id"`
	RequirementType RequirementType `json:"requirement_type"`
	Level           int             `json:"level"`
	Unit            *Unit           `json:"unit,omitempty"`
}
