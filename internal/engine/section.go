package engine

import (
	"time"

	"visa-engine/internal/model"
)

// SectionInput is everything a section builder may look at.
type SectionInput struct {
	Profile  *model.StudentProfile
	CPTDate  time.Time
	OPTStart time.Time
	Updates  []model.PolicyUpdate
}

// SectionBuilder produces the items of one checklist section. Builders never see
// each other's output.
type SectionBuilder interface {
	Build(in *SectionInput) []string
}

type sectionEntry struct {
	name    string
	builder SectionBuilder
}

var registry = []sectionEntry{
	{model.SectionMonth1, &arrivalTasks{}},
	{model.SectionMonth6, &firstSemesterTasks{}},
	{model.SectionMonth12, &cptTasks{}},
	{model.SectionPreOPT, &preOPTTasks{}},
	{model.SectionPolicySteps, &policyTasks{}},
}
