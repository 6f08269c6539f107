package models

import "time"

// StudyPlan is a saved plan for a browser session. PlanData holds the plan as
// a JSON object keyed by semester label.
type StudyPlan struct {
	ID               int       `json:"id"`
	SessionID        string    `json:"session_id"`
	MajorID          int       `json:"major_id"`
	PlanData         string    `json:"plan_data"`
	IsValid          bool      `json:"is_valid"`
	ValidationErrors string    `json:"validation_errors"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
