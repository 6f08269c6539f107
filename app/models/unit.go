package models

import "time"

// Unit represents a single enrollable subject in the unit catalog.
// Rule fields (prerequisites, corequisites, incompatibilities) hold the raw
// handbook text; the planner package parses prerequisites into an evaluable
// expression tree.
type Unit struct {
	ID                int       `json:"id"`
	Code              string    `json:"code"`
	Title             string    `json:"title"`
	Level             int       `json:"level"`
	CreditPoints      int       `json:"credit_points"`
	Prerequisites     string    `json:"prerequisites"`
	Corequisites      string    `json:"corequisites"`
	Incompatibilities string    `json:"incompatibilities"`
	Availabilities    string    `json:"availabilities"`
	Equivalences      []string  `json:"equivalences,omitempty"`
	IsBridging        bool      `json:"is_bridging"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DefaultCreditPoints is the standard unit weight used when a record has no
// explicit value.
const DefaultCreditPoints = 6

// LevelFromCode extracts the academic level from a unit code.
// Codes follow the format ABCD1234 where the fifth character is the level.
// Returns 1 when the code cannot be parsed.
func LevelFromCode(code string) int {
	if len(code) >= 5 && code[4] >= '1' && code[4] <= '9' {
		return int(code[4] - '0')
	}
	return 1
}

// Points returns the unit's credit points, falling back to the default.
func (u *Unit) Points() int {
	if u.CreditPoints > 0 {
		return u.CreditPoints
	}
	return DefaultCreditPoints
}
