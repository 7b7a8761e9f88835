package models

import (
	"fmt"
	"strings"

	"bitbucket.org/mmdatafocus/buildsite_backend/calculation"
)

// UnitOfMeasure is shared with the calculation engine so the converter and
// import validation agree on one closed set.
type UnitOfMeasure = calculation.UnitOfMeasure

type MaterialCategory string

const (
	MaterialCategoryFraming    MaterialCategory = "FRAMING"
	MaterialCategoryConcrete   MaterialCategory = "CONCRETE"
	MaterialCategoryElectrical MaterialCategory = "ELECTRICAL"
	MaterialCategoryPlumbing   MaterialCategory = "PLUMBING"
	MaterialCategoryHVAC       MaterialCategory = "HVAC"
	MaterialCategoryRoofing    MaterialCategory = "ROOFING"
	MaterialCategorySiding     MaterialCategory = "SIDING"
	MaterialCategoryDrywall    MaterialCategory = "DRYWALL"
	MaterialCategoryFlooring   MaterialCategory = "FLOORING"
	MaterialCategoryFixtures   MaterialCategory = "FIXTURES"
	MaterialCategoryOther      MaterialCategory = "OTHER"
)

var AllMaterialCategories = []MaterialCategory{
	MaterialCategoryFraming,
	MaterialCategoryConcrete,
	MaterialCategoryElectrical,
	MaterialCategoryPlumbing,
	MaterialCategoryHVAC,
	MaterialCategoryRoofing,
	MaterialCategorySiding,
	MaterialCategoryDrywall,
	MaterialCategoryFlooring,
	MaterialCategoryFixtures,
	MaterialCategoryOther,
}

func ParseMaterialCategory(s string) (MaterialCategory, error) {
	c := MaterialCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllMaterialCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category %q, must be one of: %s", s, joinStrings(AllMaterialCategories))
}

type MilestonePhase string

const (
	MilestonePhaseSitework       MilestonePhase = "SITEWORK"
	MilestonePhaseFoundation     MilestonePhase = "FOUNDATION"
	MilestonePhaseFraming        MilestonePhase = "FRAMING"
	MilestonePhaseRoughIn        MilestonePhase = "ROUGH_IN"
	MilestonePhaseInsulation     MilestonePhase = "INSULATION"
	MilestonePhaseDrywall        MilestonePhase = "DRYWALL"
	MilestonePhaseInteriorFinish MilestonePhase = "INTERIOR_FINISH"
	MilestonePhaseExteriorFinish MilestonePhase = "EXTERIOR_FINISH"
	MilestonePhaseFinal          MilestonePhase = "FINAL"
)

var AllMilestonePhases = []MilestonePhase{
	MilestonePhaseSitework,
	MilestonePhaseFoundation,
	MilestonePhaseFraming,
	MilestonePhaseRoughIn,
	MilestonePhaseInsulation,
	MilestonePhaseDrywall,
	MilestonePhaseInteriorFinish,
	MilestonePhaseExteriorFinish,
	MilestonePhaseFinal,
}

func ParseMilestonePhase(s string) (MilestonePhase, error) {
	p := MilestonePhase(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllMilestonePhases {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid phase %q, must be one of: %s", s, joinStrings(AllMilestonePhases))
}

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "PLANNING"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

var AllProjectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusActive,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusArchived,
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllProjectStatuses {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q, must be one of: %s", s, joinStrings(AllProjectStatuses))
}

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionRead   AuditAction = "READ"
)

var AllAuditActions = []AuditAction{
	AuditActionCreate,
	AuditActionUpdate,
	AuditActionDelete,
	AuditActionRead,
}

func ParseAuditAction(s string) (AuditAction, error) {
	a := AuditAction(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllAuditActions {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid action %q, must be one of: %s", s, joinStrings(AllAuditActions))
}

func joinStrings[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
