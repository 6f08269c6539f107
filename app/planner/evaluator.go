package planner

import (
	"fmt"
	"strings"
)

// EvaluateUnit validates one placed unit against the catalog and the units
// completed in strictly earlier slots. It never depends on sibling units in
// the same slot, so units within a semester may be evaluated in any order.
func EvaluateUnit(plan *Plan, slotIndex int, unitCode string, catalog *Catalog) []Finding {
	unitCode = strings.ToUpper(strings.TrimSpace(unitCode))

	unit, ok := catalog.Lookup(unitCode)
	if !ok {
		return []Finding{{
			Severity:  SeverityError,
			Code:      CodeUnknownUnit,
			UnitCode:  unitCode,
			SlotIndex: slotIndex,
			Message:   fmt.Sprintf("%s not found in unit catalog.", unitCode),
		}}
	}

	var findings []Finding

	if finding := checkAvailability(unit.Availabilities, unitCode, slotIndex); finding != nil {
		findings = append(findings, *finding)
	}

	// Level 1 units are assumed covered by admission requirements; their
	// prerequisite text is not evaluated.
	if catalog.Level(unitCode) <= 1 {
		return findings
	}

	before := plan.UnitsBefore(slotIndex)
	ctx := &EvalContext{
		Completed:    catalog.CompletedSet(before),
		CreditPoints: sumCreditPoints(before, catalog),
		Equivalent:   catalog.Equivalent,
	}

	expr := catalog.Prerequisite(unitCode)
	if !expr.Root.Satisfied(ctx) {
		findings = append(findings, Finding{
			Severity:  SeverityWarning,
			Code:      CodePrerequisiteNotMet,
			UnitCode:  unitCode,
			SlotIndex: slotIndex,
			Message:   prerequisiteMessage(unitCode, expr, ctx),
		})
	}

	return findings
}

// checkAvailability flags units placed in a semester they are not offered
// in. Availability text naming only one teaching period restricts the unit
// to slots of matching parity; anything else counts as offered year-round.
func checkAvailability(availabilities, unitCode string, slotIndex int) *Finding {
	text := strings.TrimSpace(availabilities)
	if text == "" {
		return nil
	}

	offersS1 := strings.Contains(text, "Semester 1")
	offersS2 := strings.Contains(text, "Semester 2")
	if offersS1 == offersS2 {
		return nil
	}

	semester := SemesterForSlot(slotIndex)
	if (semester == "Semester 1" && offersS1) || (semester == "Semester 2" && offersS2) {
		return nil
	}

	offered := "Semester 1"
	if offersS2 {
		offered = "Semester 2"
	}
	return &Finding{
		Severity:  SeverityError,
		Code:      CodeNotOfferedThisSemester,
		UnitCode:  unitCode,
		SlotIndex: slotIndex,
		Message: fmt.Sprintf("%s is only offered in %s and cannot be taken in %s (%s).",
			unitCode, offered, SlotLabels[slotIndex], semester),
	}
}

func sumCreditPoints(codes []string, catalog *Catalog) int {
	total := 0
	for _, code := range codes {
		total += catalog.CreditPoints(code)
	}
	return total
}

// prerequisiteMessage names the unsatisfied branches. A failed point
// threshold is folded into the same message rather than reported separately,
// since both come from the one prerequisite rule.
func prerequisiteMessage(unitCode string, expr *Expression, ctx *EvalContext) string {
	missing := &missingSet{}
	expr.Root.collectMissing(ctx, missing)

	var parts []string
	if len(missing.Units) > 0 {
		parts = append(parts, fmt.Sprintf("requires %s", strings.Join(dedupe(missing.Units), " OR ")))
	}
	for _, required := range missing.PointsShort {
		parts = append(parts, fmt.Sprintf("requires %d credit points (currently %d)", required, ctx.CreditPoints))
		break // one threshold per expression is the observed data shape
	}
	if len(parts) == 0 {
		parts = append(parts, "has unmet prerequisites")
	}
	return fmt.Sprintf("%s: %s.", unitCode, strings.Join(parts, "; "))
}

func dedupe(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := codes[:0]
	for _, code := range codes {
		if !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	return out
}
