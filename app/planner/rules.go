package planner

import (
	"fmt"
	"sort"
	"strings"
)

// Degree-structure rules enforced over the whole plan, independent of the
// chronological unit-by-unit evaluation.
const (
	UnitsPerSemester = 4
	TotalUnits       = 24
	MaxLevel1Units   = 12
	MinUpperUnits    = 12
	MinLevel3Units   = 3
)

// EvaluatePlan checks the plan-shape invariants: per-semester load, total
// load, level distribution, duplicate placement, and bridging-unit
// exclusion. Findings appear in that order.
func EvaluatePlan(plan *Plan, catalog *Catalog) []Finding {
	var findings []Finding

	// per-semester capacity; empty slots produce no per-slot finding
	for i, slot := range plan.Slots {
		n := len(slot)
		switch {
		case n > UnitsPerSemester:
			findings = append(findings, Finding{
				Severity:  SeverityError,
				Code:      CodeSemesterOverloaded,
				SlotIndex: PlanScope,
				Message:   fmt.Sprintf("%s has %d units, but maximum allowed is %d.", SlotLabels[i], n, UnitsPerSemester),
			})
		case n > 0 && n < UnitsPerSemester:
			findings = append(findings, Finding{
				Severity:  SeverityWarning,
				Code:      CodeSemesterUnderloaded,
				SlotIndex: PlanScope,
				Message:   fmt.Sprintf("%s has %d units, target is %d units.", SlotLabels[i], n, UnitsPerSemester),
			})
		}
	}

	total := plan.TotalUnits()
	if total > TotalUnits {
		findings = append(findings, Finding{
			Severity:  SeverityError,
			Code:      CodePlanOverTotal,
			SlotIndex: PlanScope,
			Message:   fmt.Sprintf("Plan has %d units, but maximum allowed is %d.", total, TotalUnits),
		})
	} else if total < TotalUnits {
		findings = append(findings, Finding{
			Severity:  SeverityWarning,
			Code:      CodePlanIncomplete,
			SlotIndex: PlanScope,
			Message:   fmt.Sprintf("Plan has %d units, target is %d units (%d more needed).", total, TotalUnits, TotalUnits-total),
		})
	}

	findings = append(findings, levelDistributionFindings(plan, catalog)...)
	findings = append(findings, duplicateFindings(plan)...)
	findings = append(findings, bridgingFindings(plan, catalog)...)

	return findings
}

func levelDistributionFindings(plan *Plan, catalog *Catalog) []Finding {
	counts := map[int]int{}
	for _, slot := range plan.Slots {
		for _, code := range slot {
			counts[catalog.Level(code)]++
		}
	}

	var findings []Finding
	if counts[1] > MaxLevel1Units {
		findings = append(findings, Finding{
			Severity:  SeverityError,
			Code:      CodeTooManyLevel1,
			SlotIndex: PlanScope,
			Message:   fmt.Sprintf("There are %d Level 1 units which exceeds the maximum of %d.", counts[1], MaxLevel1Units),
		})
	}
	if upper := counts[2] + counts[3]; upper < MinUpperUnits {
		findings = append(findings, Finding{
			Severity:  SeverityError,
			Code:      CodeInsufficientUpperLevel,
			SlotIndex: PlanScope,
			Message:   fmt.Sprintf("There are only %d Level 2 or Level 3 units, minimum required is %d.", upper, MinUpperUnits),
		})
	}
	if counts[3] < MinLevel3Units {
		findings = append(findings, Finding{
			Severity:  SeverityError,
			Code:      CodeInsufficientLevel3,
			SlotIndex: PlanScope,
			Message:   fmt.Sprintf("There are only %d Level 3 units, minimum required is %d.", counts[3], MinLevel3Units),
		})
	}
	return findings
}

// duplicateFindings reports one finding per code placed more than once,
// naming every slot involved.
func duplicateFindings(plan *Plan) []Finding {
	placements := map[string][]int{}
	var order []string
	for i, slot := range plan.Slots {
		for _, code := range slot {
			if len(placements[code]) == 0 {
				order = append(order, code)
			}
			placements[code] = append(placements[code], i)
		}
	}

	var findings []Finding
	for _, code := range order {
		slots := placements[code]
		if len(slots) < 2 {
			continue
		}
		labels := make([]string, len(slots))
		for i, slot := range slots {
			labels[i] = SlotLabels[slot]
		}
		findings = append(findings, Finding{
			Severity:  SeverityError,
			Code:      CodeDuplicateUnit,
			UnitCode:  code,
			SlotIndex: PlanScope,
			Message:   fmt.Sprintf("%s appears more than once (%s).", code, strings.Join(labels, ", ")),
		})
	}
	return findings
}

// bridgingFindings flags bridging units anywhere in the plan with a single
// warning. Bridging units satisfy entry requirements but earn no degree
// credit.
func bridgingFindings(plan *Plan, catalog *Catalog) []Finding {
	seen := map[string]bool{}
	var bridging []string
	for _, slot := range plan.Slots {
		for _, code := range slot {
			if catalog.IsBridging(code) && !seen[code] {
				seen[code] = true
				bridging = append(bridging, code)
			}
		}
	}
	if len(bridging) == 0 {
		return nil
	}
	sort.Strings(bridging)
	return []Finding{{
		Severity:  SeverityWarning,
		Code:      CodeBridgingUnitIncluded,
		SlotIndex: PlanScope,
		Message:   fmt.Sprintf("Bridging units do not count toward the degree: %s.", strings.Join(bridging, ", ")),
	}}
}
