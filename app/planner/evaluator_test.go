package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
)

func testCatalog() *Catalog {
	return NewCatalog([]*models.Unit{
		{Code: "ECON1101", Title: "Microeconomics", Level: 1, Prerequisites: "Nil", Availabilities: "Semester 1, Semester 2"},
		{Code: "ECON1102", Title: "Macroeconomics", Level: 1, Prerequisites: "ECON1101", Availabilities: "Semester 2"},
		{Code: "ECOX1101", Title: "Microeconomics (offshore)", Level: 1, Equivalences: []string{"ECON1101"}},
		{Code: "ECON2209", Title: "Business Forecasting", Level: 2, Prerequisites: "ECON1101", Availabilities: "Semester 1, Semester 2"},
		{Code: "ECON2233", Title: "Microeconomic Theory", Level: 2, Prerequisites: "ECON1101 or ECOX1101"},
		{Code: "ECON3301", Title: "Econometrics", Level: 3, Prerequisites: "ECON2209 and 48 points"},
		{Code: "STAT1520", Title: "Economic Statistics", Level: 1, Availabilities: "Semester 1"},
		{Code: "MATH1720", Title: "Mathematics Fundamentals", Level: 1, IsBridging: true},
	})
}

func planWith(slots map[int][]string) *Plan {
	plan := &Plan{}
	for i, codes := range slots {
		plan.Slots[i] = codes
	}
	return plan
}

func findingCodes(findings []Finding) []FindingCode {
	codes := make([]FindingCode, len(findings))
	for i, f := range findings {
		codes[i] = f.Code
	}
	return codes
}

func TestEvaluateUnitUnknownCode(t *testing.T) {
	catalog := testCatalog()
	plan := planWith(map[int][]string{0: {"XXXX9999"}})

	findings := EvaluateUnit(plan, 0, "XXXX9999", catalog)
	require.Len(t, findings, 1)
	assert.Equal(t, CodeUnknownUnit, findings[0].Code)
	assert.Equal(t, SeverityError, findings[0].Severity)
	assert.Equal(t, 0, findings[0].SlotIndex)
}

func TestEvaluateUnitLevel1Exemption(t *testing.T) {
	catalog := testCatalog()
	// ECON1102 requires ECON1101, but level 1 prerequisites are never
	// evaluated; only availability applies
	plan := planWith(map[int][]string{1: {"ECON1102"}})

	findings := EvaluateUnit(plan, 1, "ECON1102", catalog)
	assert.Empty(t, findings)
}

func TestEvaluateUnitPrerequisiteChain(t *testing.T) {
	catalog := testCatalog()

	ordered := planWith(map[int][]string{0: {"ECON1101"}, 1: {"ECON2209"}})
	assert.Empty(t, EvaluateUnit(ordered, 1, "ECON2209", catalog))

	swapped := planWith(map[int][]string{0: {"ECON2209"}, 2: {"ECON1101"}})
	findings := EvaluateUnit(swapped, 0, "ECON2209", catalog)
	require.Len(t, findings, 1)
	assert.Equal(t, CodePrerequisiteNotMet, findings[0].Code)
	assert.Equal(t, SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "ECON1101")
}

func TestEvaluateUnitSameSemesterDoesNotSatisfy(t *testing.T) {
	catalog := testCatalog()
	plan := planWith(map[int][]string{0: {"ECON1101", "ECON2209"}})

	findings := EvaluateUnit(plan, 0, "ECON2209", catalog)
	require.Len(t, findings, 1)
	assert.Equal(t, CodePrerequisiteNotMet, findings[0].Code)
}

func TestEvaluateUnitOrPrerequisiteViaEquivalence(t *testing.T) {
	catalog := testCatalog()
	plan := planWith(map[int][]string{0: {"ECOX1101"}, 2: {"ECON2233"}})

	assert.Empty(t, EvaluateUnit(plan, 2, "ECON2233", catalog))
}

func TestEvaluateUnitEquivalenceSatisfiesDirectAtom(t *testing.T) {
	catalog := testCatalog()
	// ECON2209 requires ECON1101; the equivalent ECOX1101 must substitute
	plan := planWith(map[int][]string{0: {"ECOX1101"}, 1: {"ECON2209"}})

	assert.Empty(t, EvaluateUnit(plan, 1, "ECON2209", catalog))
}

func TestEvaluateUnitAvailabilityParity(t *testing.T) {
	catalog := testCatalog()

	// slot 1 is Semester 2; STAT1520 runs only in Semester 1
	plan := planWith(map[int][]string{1: {"STAT1520"}})
	findings := EvaluateUnit(plan, 1, "STAT1520", catalog)
	require.Len(t, findings, 1)
	assert.Equal(t, CodeNotOfferedThisSemester, findings[0].Code)
	assert.Equal(t, SeverityError, findings[0].Severity)

	// slot 2 is Semester 1 again
	plan = planWith(map[int][]string{2: {"STAT1520"}})
	assert.Empty(t, EvaluateUnit(plan, 2, "STAT1520", catalog))
}

func TestEvaluateUnitPointThresholdFoldedIntoWarning(t *testing.T) {
	catalog := testCatalog()
	// ECON2209 done, but only 12 points accumulated before slot 2
	plan := planWith(map[int][]string{0: {"ECON1101"}, 1: {"ECON2209"}, 2: {"ECON3301"}})

	findings := EvaluateUnit(plan, 2, "ECON3301", catalog)
	require.Len(t, findings, 1)
	assert.Equal(t, CodePrerequisiteNotMet, findings[0].Code)
	assert.Contains(t, findings[0].Message, "48 credit points")
	assert.Contains(t, findings[0].Message, "12")
}

func TestEvaluateUnitPointThresholdSatisfied(t *testing.T) {
	catalog := testCatalog()
	plan := planWith(map[int][]string{
		0: {"ECON1101", "STAT1520", "MATH1720", "ECOX1101"},
		1: {"ECON2209", "ECON1102", "ECON2233", "XXXX1001"},
		2: {"ECON3301"},
	})

	// 8 units before slot 2 at 6 points each = 48
	assert.Empty(t, EvaluateUnit(plan, 2, "ECON3301", catalog))
}
