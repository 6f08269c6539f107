package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIsIdempotent(t *testing.T) {
	catalog := testCatalog()
	plan := planWith(map[int][]string{
		0: {"ECON2209", "STAT1520"},
		1: {"ECON1101", "ECON1102"},
	})

	first, err := Validate(plan, catalog)
	require.NoError(t, err)
	second, err := Validate(plan, catalog)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidatePlanFindingsOrderedBeforeUnitFindings(t *testing.T) {
	catalog := testCatalog()
	// underloaded slot plus a prerequisite gap in the same plan
	plan := planWith(map[int][]string{0: {"ECON2209"}})

	result, err := Validate(plan, catalog)
	require.NoError(t, err)

	var sawUnitFinding bool
	for _, f := range result.Findings {
		if f.SlotIndex != PlanScope {
			sawUnitFinding = true
		} else {
			assert.False(t, sawUnitFinding, "plan-level finding after unit-level finding")
		}
	}
	assert.True(t, sawUnitFinding)
}

func TestValidateWarningsDoNotBlockValidity(t *testing.T) {
	catalog := fullCatalog()
	// one unit short: underloaded semester and incomplete plan, both
	// warnings, level rules still satisfied
	plan := balancedPlan()
	plan.Slots[5] = plan.Slots[5][:3]

	result, err := Validate(plan, catalog)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Warnings)
	assert.Empty(t, result.Errors)
	assert.True(t, result.IsValid)
}

func TestValidateErrorsBlockValidity(t *testing.T) {
	catalog := testCatalog()
	plan := planWith(map[int][]string{1: {"STAT1520"}}) // Semester 1 only unit in slot 1

	result, err := Validate(plan, catalog)
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	assert.NotEmpty(t, result.Errors)
}

func TestValidateMapRejectsUnknownSemesterLabel(t *testing.T) {
	catalog := testCatalog()
	_, err := ValidateMap(map[string][]string{"Year 4, Semester 1": {"ECON1101"}}, catalog)

	var invalid *ErrInvalidPlan
	require.ErrorAs(t, err, &invalid)
}

func TestValidateMapAcceptsPartialLabels(t *testing.T) {
	catalog := testCatalog()
	result, err := ValidateMap(map[string][]string{
		"Year 1, Semester 1": {"ECON1101"},
	}, catalog)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestValidateNilPlanIsContractViolation(t *testing.T) {
	_, err := Validate(nil, testCatalog())
	var invalid *ErrInvalidPlan
	require.ErrorAs(t, err, &invalid)
}

func TestAggregateDeduplicatesIdenticalFindings(t *testing.T) {
	finding := Finding{Severity: SeverityWarning, Code: CodePlanIncomplete, SlotIndex: PlanScope, Message: "Plan has 0 units."}
	result := Aggregate([]Finding{finding, finding}, nil)

	assert.Len(t, result.Findings, 1)
	assert.Len(t, result.Warnings, 1)
	assert.True(t, result.IsValid)
}
