package planner

import (
	"fmt"
	"regexp"
	"strings"
)

// NumSlots is the number of semester slots in a three-year plan.
const NumSlots = 6

// SlotLabels are the chronological semester labels used throughout the
// application, including the plan JSON exchanged with the frontend.
var SlotLabels = [NumSlots]string{
	"Year 1, Semester 1",
	"Year 1, Semester 2",
	"Year 2, Semester 1",
	"Year 2, Semester 2",
	"Year 3, Semester 1",
	"Year 3, Semester 2",
}

// SemesterForSlot returns the teaching period implied by a slot's position:
// slots 0, 2, 4 run in Semester 1 and slots 1, 3, 5 in Semester 2.
func SemesterForSlot(slotIndex int) string {
	if slotIndex%2 == 0 {
		return "Semester 1"
	}
	return "Semester 2"
}

// Plan is an ordered assignment of unit codes to the six semester slots.
// Empty slots are permitted; duplicate codes are reported by validation, not
// rejected up front.
type Plan struct {
	Slots [NumSlots][]string
}

// ErrInvalidPlan is returned when input cannot be shaped into six ordered
// slots. This is a caller contract violation, not a validation finding.
type ErrInvalidPlan struct {
	Reason string
}

func (e *ErrInvalidPlan) Error() string {
	return "invalid plan: " + e.Reason
}

// PlanFromMap converts the frontend's plan JSON, keyed by semester label,
// into an ordered Plan. Keys other than the six known labels are a contract
// violation. Missing labels become empty slots.
func PlanFromMap(m map[string][]string) (*Plan, error) {
	known := make(map[string]int, NumSlots)
	for i, label := range SlotLabels {
		known[label] = i
	}

	plan := &Plan{}
	for label, codes := range m {
		i, ok := known[label]
		if !ok {
			return nil, &ErrInvalidPlan{Reason: fmt.Sprintf("unknown semester %q", label)}
		}
		cleaned := make([]string, 0, len(codes))
		for _, code := range codes {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code != "" {
				cleaned = append(cleaned, code)
			}
		}
		plan.Slots[i] = cleaned
	}
	return plan, nil
}

// ToMap renders the plan back into the label-keyed shape.
func (p *Plan) ToMap() map[string][]string {
	m := make(map[string][]string, NumSlots)
	for i, label := range SlotLabels {
		codes := p.Slots[i]
		if codes == nil {
			codes = []string{}
		}
		m[label] = codes
	}
	return m
}

// UnitsBefore returns every unit code placed in slots strictly earlier than
// slotIndex.
func (p *Plan) UnitsBefore(slotIndex int) []string {
	var before []string
	for i := 0; i < slotIndex && i < NumSlots; i++ {
		before = append(before, p.Slots[i]...)
	}
	return before
}

// TotalUnits counts every placed unit across all slots.
func (p *Plan) TotalUnits() int {
	total := 0
	for _, slot := range p.Slots {
		total += len(slot)
	}
	return total
}

var planLineCode = regexp.MustCompile(`^[A-Z]{4}[0-9]{4}`)

// ParsePlanText parses a study plan from copy-pasted text. Lines like
// "Year 1, Semester 1" open a semester; subsequent unit-code lines are added
// to it. Used by the plancheck command.
func ParsePlanText(text string) (*Plan, error) {
	m := make(map[string][]string)
	current := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "Year") && strings.Contains(line, "Semester") {
			current = normalizeSlotLabel(line)
			if _, ok := m[current]; !ok {
				m[current] = []string{}
			}
			continue
		}
		if current == "" {
			continue
		}
		if code := planLineCode.FindString(strings.ToUpper(line)); code != "" {
			m[current] = append(m[current], code)
		}
	}

	return PlanFromMap(m)
}

func normalizeSlotLabel(line string) string {
	for _, label := range SlotLabels {
		year := label[:6]     // "Year N"
		semester := label[8:] // "Semester N"
		if strings.Contains(line, year) && strings.Contains(line, semester) {
			return label
		}
	}
	return line
}
