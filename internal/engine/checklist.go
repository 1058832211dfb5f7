package engine

import (
	"visa-engine/internal/dates"
	"visa-engine/internal/model"
)

// GenerateChecklist assembles the sectioned action items. The timeline dates are
// parsed again, so a hand-built timeline with malformed dates yields a FormatError.
func GenerateChecklist(profile *model.StudentProfile, timeline model.Timeline, updates []model.PolicyUpdate) (*model.Checklist, error) {
	cptDate, err := dates.Parse("cpt_eligibility_date", timeline.CPTEligibilityDate)
	if err != nil {
		return nil, err
	}
	optStart, err := dates.Parse("opt_eligibility_start", timeline.OPTEligibilityStart)
	if err != nil {
		return nil, err
	}

	in := &SectionInput{
		Profile:  profile,
		CPTDate:  cptDate,
		OPTStart: optStart,
		Updates:  updates,
	}

	checklist := model.NewChecklist()
	for _, e := range registry {
		for _, item := range e.builder.Build(in) {
			checklist.Add(e.name, item)
		}
	}
	return checklist, nil
}
