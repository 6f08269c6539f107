package planner

// Severity distinguishes blocking errors from advisory warnings. Warnings
// never affect a plan's validity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FindingCode is the machine-readable tag for a validation finding.
type FindingCode string

const (
	CodeUnknownUnit            FindingCode = "UnknownUnit"
	CodeNotOfferedThisSemester FindingCode = "NotOfferedThisSemester"
	CodePrerequisiteNotMet     FindingCode = "PrerequisiteNotMet"
	CodeSemesterOverloaded     FindingCode = "SemesterOverloaded"
	CodeSemesterUnderloaded    FindingCode = "SemesterUnderloaded"
	CodePlanOverTotal          FindingCode = "PlanOverTotal"
	CodePlanIncomplete         FindingCode = "PlanIncomplete"
	CodeTooManyLevel1          FindingCode = "TooManyLevel1"
	CodeInsufficientUpperLevel FindingCode = "InsufficientUpperLevel"
	CodeInsufficientLevel3     FindingCode = "InsufficientLevel3"
	CodeDuplicateUnit          FindingCode = "DuplicateUnit"
	CodeBridgingUnitIncluded   FindingCode = "BridgingUnitIncluded"
)

// PlanScope marks a finding that applies to the plan as a whole rather than
// to one placed unit.
const PlanScope = -1

// Finding is a single diagnostic produced by validation. SlotIndex is
// PlanScope for plan-level findings; for unit-level findings it names the
// semester slot the unit sits in.
type Finding struct {
	Severity  Severity    `json:"severity"`
	Code      FindingCode `json:"code"`
	UnitCode  string      `json:"unit_code,omitempty"`
	SlotIndex int         `json:"slot_index"`
	Message   string      `json:"message"`
}

// Result is the merged outcome of a validation call. Errors and Warnings
// carry the finding messages split by severity, which is the shape the
// planner UI consumes.
type Result struct {
	IsValid  bool      `json:"isValid"`
	Findings []Finding `json:"findings"`
	Errors   []string  `json:"errors"`
	Warnings []string  `json:"warnings"`
}

// Aggregate merges plan-level and unit-level findings into a Result.
// Plan-level findings come first in rule order, then unit findings ordered by
// slot and by the unit's position within its slot. Identical findings are
// reported once.
func Aggregate(planFindings, unitFindings []Finding) *Result {
	result := &Result{
		IsValid:  true,
		Findings: make([]Finding, 0, len(planFindings)+len(unitFindings)),
		Errors:   []string{},
		Warnings: []string{},
	}

	type key struct {
		severity Severity
		code     FindingCode
		unit     string
		slot     int
		message  string
	}
	seen := make(map[key]bool)

	add := func(f Finding) {
		k := key{f.Severity, f.Code, f.UnitCode, f.SlotIndex, f.Message}
		if seen[k] {
			return
		}
		seen[k] = true
		result.Findings = append(result.Findings, f)
		switch f.Severity {
		case SeverityError:
			result.IsValid = false
			result.Errors = append(result.Errors, f.Message)
		case SeverityWarning:
			result.Warnings = append(result.Warnings, f.Message)
		}
	}

	for _, f := range planFindings {
		add(f)
	}
	// unit findings are generated slot by slot, position by position, so
	// insertion order is already the stable order the contract requires
	for _, f := range unitFindings {
		add(f)
	}

	return result
}
