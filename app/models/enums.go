package models

// RequirementType classifies how a unit counts toward a major.
type RequirementType string

const (
	RequirementCore     RequirementType = "core"
	RequirementOption   RequirementType = "option"
	RequirementBridging RequirementType = "bridging"
)
