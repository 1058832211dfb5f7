package engine

import (
	"fmt"

	"visa-engine/internal/dates"
)

type arrivalTasks struct{}

func (arrivalTasks) Build(in *SectionInput) []string {
	var items []string
	if !in.Profile.Milestones.SEVISCheckin {
		items = append(items, "Complete SEVIS Check-In")
	}
	if !in.Profile.Milestones.PassportUploaded {
		items = append(items, "Upload Passport to ISSS Portal")
	}
	return items
}

type firstSemesterTasks struct{}

func (firstSemesterTasks) Build(in *SectionInput) []string {
	if in.Profile.Milestones.FirstSemesterComplete {
		return nil
	}
	return []string{
		"Meet Academic Advisor",
		"Confirm Full-Time Enrollment",
	}
}

type cptTasks struct{}

func (cptTasks) Build(in *SectionInput) []string {
	return []string{
		fmt.Sprintf("CPT becomes available on %s – begin employer search", dates.Format(in.CPTDate)),
		"Request CPT I-20 endorsement (30 days before CPT start date)",
	}
}

type preOPTTasks struct{}

func (preOPTTasks) Build(in *SectionInput) []string {
	return []string{
		fmt.Sprintf("Prepare OPT documents (start 90 days before graduation → %s)", dates.Format(in.OPTStart)),
		"Obtain employer letter for OPT",
		"Submit Form I-765",
	}
}

type policyTasks struct{}

func (policyTasks) Build(in *SectionInput) []string {
	items := make([]string, 0, len(in.Updates))
	for _, u := range in.Updates {
		items = append(items, fmt.Sprintf("%s (Rule: %s)", u.ActionNeeded, u.Update))
	}
	return items
}
