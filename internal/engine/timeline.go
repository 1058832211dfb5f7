package engine

import (
	"time"

	"visa-engine/internal/dates"
	"visa-engine/internal/model"
)

const (
	cptEnrollmentMonths = 12
	optFilingWindowDays = 90
)

// ComputeTimeline derives the CPT/OPT milestones for profile as of now. Arrival is not
// required to precede graduation.
func ComputeTimeline(profile *model.StudentProfile, now time.Time) (model.Timeline, error) {
	arrival, err := dates.Parse("arrival_date", profile.ArrivalDate)
	if err != nil {
		return model.Timeline{}, err
	}
	grad, err := dates.Parse("graduation_date", profile.GraduationDate)
	if err != nil {
		return model.Timeline{}, err
	}
	today := dates.Day(now)

	return model.Timeline{
		Today:               dates.Format(today),
		MonthsSinceArrival:  dates.MonthsBetween(arrival, today),
		CPTEligibilityDate:  dates.Format(dates.AddMonths(arrival, cptEnrollmentMonths)),
		OPTEligibilityStart: dates.Format(dates.AddDays(grad, -optFilingWindowDays)),
		OPTEligibilityEnd:   dates.Format(grad),
	}, nil
}
