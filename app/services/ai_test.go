package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meiliyuri/AI-Study-Planner-Group8/app/models"
	"github.com/meiliyuri/AI-Study-Planner-Group8/app/planner"
)

func TestExtractJSONFromFencedReply(t *testing.T) {
	reply := "Here is your plan:\n```json\n{\"Year 1, Semester 1\": [\"ECON1101\"]}\n```\nLet me know if you want changes."

	raw := ExtractJSON(reply)
	require.NotEmpty(t, raw)

	var plan map[string][]string
	require.NoError(t, json.Unmarshal([]byte(raw), &plan))
	assert.Equal(t, []string{"ECON1101"}, plan["Year 1, Semester 1"])
}

func TestExtractJSONPrefersObjectOverArray(t *testing.T) {
	raw := ExtractJSON(`ignore [1,2] but take {"a": 1}`)

	var parsed map[string]int
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	assert.Equal(t, 1, parsed["a"])
}

func TestExtractJSONArrayFallback(t *testing.T) {
	assert.Equal(t, `["ECON1101", "ECON1102"]`, ExtractJSON(`codes: ["ECON1101", "ECON1102"]`))
}

func TestExtractJSONNothingFound(t *testing.T) {
	assert.Empty(t, ExtractJSON("no structured content here"))
}

func majorUnitFixtures() []*models.MajorUnit {
	var majorUnits []*models.MajorUnit
	add := func(code string, level int, availabilities string, bridging bool) {
		majorUnits = append(majorUnits, &models.MajorUnit{
			RequirementType: models.RequirementCore,
			Unit: &models.Unit{
				Code:           code,
				Title:          "Unit " + code,
				Level:          level,
				Availabilities: availabilities,
				IsBridging:     bridging,
			},
		})
	}

	for i := 1; i <= 3; i++ {
		for j := 1; j <= 8; j++ {
			add(fmt.Sprintf("TEST%d1%02d", i, j), i, "Semester 1, Semester 2", false)
		}
	}
	add("MATH1720", 1, "Semester 1, Semester 2", true)
	return majorUnits
}

func TestFallbackPlanFillsSemestersInLevelOrder(t *testing.T) {
	plan := FallbackPlan(majorUnitFixtures())

	require.Len(t, plan, planner.NumSlots)
	total := 0
	for _, label := range planner.SlotLabels {
		assert.Len(t, plan[label], planner.UnitsPerSemester, label)
		total += len(plan[label])
	}
	assert.Equal(t, planner.TotalUnits, total)

	// lower levels land in earlier semesters
	assert.Equal(t, "TEST1101", plan["Year 1, Semester 1"][0])
	for _, code := range plan["Year 3, Semester 2"] {
		assert.Equal(t, byte('3'), code[4])
	}
}

func TestFallbackPlanSkipsBridgingUnits(t *testing.T) {
	plan := FallbackPlan(majorUnitFixtures())
	for _, codes := range plan {
		assert.NotContains(t, codes, "MATH1720")
	}
}

func TestFallbackPlanEmptyMajor(t *testing.T) {
	plan := FallbackPlan(nil)
	require.Len(t, plan, planner.NumSlots)
	for _, label := range planner.SlotLabels {
		assert.Empty(t, plan[label])
	}
}

func TestOfferedInSlotParity(t *testing.T) {
	assert.True(t, offeredInSlot("Semester 1", 0))
	assert.False(t, offeredInSlot("Semester 1", 1))
	assert.True(t, offeredInSlot("Semester 2", 1))
	assert.False(t, offeredInSlot("Semester 2", 2))

	// both or neither period means unrestricted
	assert.True(t, offeredInSlot("Semester 1, Semester 2", 3))
	assert.True(t, offeredInSlot("", 4))
}

func TestGeneratePlanWithoutKeyUsesFallback(t *testing.T) {
	client := &AIClient{}

	plan, err := client.GeneratePlan(&models.Major{Name: "Economics", Code: "ECON"}, majorUnitFixtures())
	require.NoError(t, err)
	assert.Len(t, plan, planner.NumSlots)
}

func TestReviewPlanWithoutKeyReflectsValidation(t *testing.T) {
	client := &AIClient{}

	valid := &planner.Result{IsValid: true, Errors: []string{}, Warnings: []string{}}
	report, err := client.ReviewPlan(&models.Major{Name: "Economics"}, map[string][]string{}, valid)
	require.NoError(t, err)
	assert.Equal(t, "good", report.OverallQuality)

	invalid := &planner.Result{IsValid: false, Errors: []string{"Plan has 25 units, but maximum allowed is 24."}}
	report, err = client.ReviewPlan(&models.Major{Name: "Economics"}, map[string][]string{}, invalid)
	require.NoError(t, err)
	assert.Equal(t, "poor", report.OverallQuality)
	assert.Contains(t, report.Warnings, "Plan has 25 units, but maximum allowed is 24.")
}
