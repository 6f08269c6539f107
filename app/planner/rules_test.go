package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
)

// fullCatalog builds a catalog large enough for a complete 24-unit plan:
// four units per level-prefix per semester position.
func fullCatalog() *Catalog {
	var units []*models.Unit
	for level := 1; level <= 3; level++ {
		for i := 1; i <= 12; i++ {
			units = append(units, &models.Unit{
				Code:  fmt.Sprintf("TEST%d%03d", level, i),
				Title: fmt.Sprintf("Test Unit %d.%d", level, i),
				Level: level,
			})
		}
	}
	return NewCatalog(units)
}

// balancedPlan fills all six slots with four units meeting the level rules:
// 8 level 1, 10 level 2, 6 level 3.
func balancedPlan() *Plan {
	plan := &Plan{}
	next := map[int]int{1: 1, 2: 1, 3: 1}
	take := func(level int) string {
		code := fmt.Sprintf("TEST%d%03d", level, next[level])
		next[level]++
		return code
	}
	levelsBySlot := [NumSlots][4]int{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
		{2, 2, 3, 3},
		{3, 3, 3, 3},
	}
	for slot, levels := range levelsBySlot {
		for _, level := range levels {
			plan.Slots[slot] = append(plan.Slots[slot], take(level))
		}
	}
	return plan
}

func TestBalancedPlanProducesNoFindings(t *testing.T) {
	findings := EvaluatePlan(balancedPlan(), fullCatalog())
	assert.Empty(t, findings)
}

func TestSemesterCapacityBoundaries(t *testing.T) {
	catalog := fullCatalog()

	// exactly 4 units: no capacity finding for that slot
	plan := balancedPlan()
	for _, code := range findingCodes(EvaluatePlan(plan, catalog)) {
		assert.NotEqual(t, CodeSemesterOverloaded, code)
		assert.NotEqual(t, CodeSemesterUnderloaded, code)
	}

	// 5 units in one slot
	plan = balancedPlan()
	plan.Slots[0] = append(plan.Slots[0], "TEST1009")
	assert.Contains(t, findingCodes(EvaluatePlan(plan, catalog)), CodeSemesterOverloaded)

	// 3 units in one slot
	plan = balancedPlan()
	plan.Slots[0] = plan.Slots[0][:3]
	assert.Contains(t, findingCodes(EvaluatePlan(plan, catalog)), CodeSemesterUnderloaded)
}

func TestTotalUnitBoundaries(t *testing.T) {
	catalog := fullCatalog()

	codes := findingCodes(EvaluatePlan(balancedPlan(), catalog))
	assert.NotContains(t, codes, CodePlanOverTotal)
	assert.NotContains(t, codes, CodePlanIncomplete)

	over := balancedPlan()
	over.Slots[5] = append(over.Slots[5], "TEST3010")
	assert.Contains(t, findingCodes(EvaluatePlan(over, catalog)), CodePlanOverTotal)

	under := balancedPlan()
	under.Slots[5] = under.Slots[5][:3]
	assert.Contains(t, findingCodes(EvaluatePlan(under, catalog)), CodePlanIncomplete)
}

func TestEmptyPlanOnlyPlanIncomplete(t *testing.T) {
	findings := EvaluatePlan(&Plan{}, fullCatalog())

	codes := findingCodes(findings)
	assert.Contains(t, codes, CodePlanIncomplete)
	// zero-unit slots are neither under- nor over-loaded
	assert.NotContains(t, codes, CodeSemesterUnderloaded)
	assert.NotContains(t, codes, CodeSemesterOverloaded)
	// an empty plan also fails the upper-level minimums
	assert.Contains(t, codes, CodeInsufficientUpperLevel)
	assert.Contains(t, codes, CodeInsufficientLevel3)
}

func TestLevelDistributionRules(t *testing.T) {
	catalog := fullCatalog()

	tooManyL1 := &Plan{}
	for slot := 0; slot < 4; slot++ {
		for i := 0; i < 4; i++ {
			tooManyL1.Slots[slot] = append(tooManyL1.Slots[slot], fmt.Sprintf("TEST1%03d", slot*4+i+1))
		}
	}
	codes := findingCodes(EvaluatePlan(tooManyL1, catalog))
	assert.Contains(t, codes, CodeTooManyLevel1)
	assert.Contains(t, codes, CodeInsufficientUpperLevel)

	noL3 := balancedPlan()
	for i, slot := range noL3.Slots {
		for j, code := range slot {
			if catalog.Level(code) == 3 {
				noL3.Slots[i][j] = fmt.Sprintf("TEST2%d%02d", i, j)
			}
		}
	}
	assert.Contains(t, findingCodes(EvaluatePlan(noL3, catalog)), CodeInsufficientLevel3)
}

func TestLevelFallsBackToCodeDigit(t *testing.T) {
	// codes missing from the catalog still count by their fifth character
	catalog := NewCatalog(nil)
	plan := planWith(map[int][]string{0: {"ABCD3001", "ABCD3002", "ABCD3003"}})

	codes := findingCodes(EvaluatePlan(plan, catalog))
	assert.NotContains(t, codes, CodeInsufficientLevel3)
}

func TestDuplicateUnitSingleFindingNamingBothSlots(t *testing.T) {
	catalog := fullCatalog()
	plan := planWith(map[int][]string{0: {"TEST1001"}, 3: {"TEST1001"}})

	var duplicates []Finding
	for _, f := range EvaluatePlan(plan, catalog) {
		if f.Code == CodeDuplicateUnit {
			duplicates = append(duplicates, f)
		}
	}
	require.Len(t, duplicates, 1)
	assert.Equal(t, "TEST1001", duplicates[0].UnitCode)
	assert.Contains(t, duplicates[0].Message, SlotLabels[0])
	assert.Contains(t, duplicates[0].Message, SlotLabels[3])
}

func TestBridgingUnitWarning(t *testing.T) {
	catalog := NewCatalog([]*models.Unit{
		{Code: "MATH1720", Title: "Mathematics Fundamentals", Level: 1, IsBridging: true},
		{Code: "ECON1101", Title: "Microeconomics", Level: 1},
	})
	plan := planWith(map[int][]string{0: {"ECON1101", "MATH1720"}})

	var bridging []Finding
	for _, f := range EvaluatePlan(plan, catalog) {
		if f.Code == CodeBridgingUnitIncluded {
			bridging = append(bridging, f)
		}
	}
	require.Len(t, bridging, 1)
	assert.Equal(t, SeverityWarning, bridging[0].Severity)
	assert.Contains(t, bridging[0].Message, "MATH1720")
	assert.NotContains(t, bridging[0].Message, "ECON1101")
}
