package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemesterForSlotParity(t *testing.T) {
	assert.Equal(t, "Semester 1", SemesterForSlot(0))
	assert.Equal(t, "Semester 2", SemesterForSlot(1))
	assert.Equal(t, "Semester 1", SemesterForSlot(4))
	assert.Equal(t, "Semester 2", SemesterForSlot(5))
}

func TestPlanFromMapNormalizesCodes(t *testing.T) {
	plan, err := PlanFromMap(map[string][]string{
		"Year 1, Semester 1": {" econ1101 ", "", "STAT1520"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ECON1101", "STAT1520"}, plan.Slots[0])
	assert.Empty(t, plan.Slots[1])
}

func TestPlanFromMapRoundTrip(t *testing.T) {
	m := map[string][]string{
		"Year 1, Semester 1": {"ECON1101"},
		"Year 1, Semester 2": {},
		"Year 2, Semester 1": {},
		"Year 2, Semester 2": {},
		"Year 3, Semester 1": {},
		"Year 3, Semester 2": {"ECON3301"},
	}
	plan, err := PlanFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, m, plan.ToMap())
}

func TestUnitsBefore(t *testing.T) {
	plan := planWith(map[int][]string{
		0: {"ECON1101", "STAT1520"},
		1: {"ECON1102"},
		3: {"ECON2209"},
	})

	assert.Empty(t, plan.UnitsBefore(0))
	assert.Equal(t, []string{"ECON1101", "STAT1520"}, plan.UnitsBefore(1))
	assert.Equal(t, []string{"ECON1101", "STAT1520", "ECON1102"}, plan.UnitsBefore(3))
	assert.Len(t, plan.UnitsBefore(NumSlots), 4)
}

func TestParsePlanText(t *testing.T) {
	text := `
Year 1, Semester 1
ECON1101
STAT1520 Economic Statistics

Year 1, Semester 2
ECON1102

Year 2 Semester 1
ECON2209
not a unit line
`
	plan, err := ParsePlanText(text)
	require.NoError(t, err)

	assert.Equal(t, []string{"ECON1101", "STAT1520"}, plan.Slots[0])
	assert.Equal(t, []string{"ECON1102"}, plan.Slots[1])
	assert.Equal(t, []string{"ECON2209"}, plan.Slots[2])
	assert.Empty(t, plan.Slots[3])
}
