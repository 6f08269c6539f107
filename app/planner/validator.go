package planner

// Validate is the single entry point used by every caller: the JSON API, the
// plancheck command, and plan generation. It runs the plan-level rules and
// the per-unit constraint evaluation against one catalog snapshot and merges
// the findings.
//
// The engine holds no state between calls; concurrent validations against
// the same snapshot are safe.
func Validate(plan *Plan, catalog *Catalog) (*Result, error) {
	if plan == nil {
		return nil, &ErrInvalidPlan{Reason: "plan is nil"}
	}
	if catalog == nil {
		return nil, &ErrInvalidPlan{Reason: "catalog is nil"}
	}

	planFindings := EvaluatePlan(plan, catalog)

	// units are visited slot by slot, then by position within the slot, so
	// the merged order is deterministic for identical input
	var unitFindings []Finding
	for slotIndex, slot := range plan.Slots {
		for _, code := range slot {
			unitFindings = append(unitFindings, EvaluateUnit(plan, slotIndex, code, catalog)...)
		}
	}

	return Aggregate(planFindings, unitFindings), nil
}

// ValidateMap shapes label-keyed plan JSON and validates it. Structural
// problems (unknown semester labels) surface as an error, not a finding.
func ValidateMap(planData map[string][]string, catalog *Catalog) (*Result, error) {
	plan, err := PlanFromMap(planData)
	if err != nil {
		return nil, err
	}
	return Validate(plan, catalog)
}
