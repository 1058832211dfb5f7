package model

import "strings"

const (
	DegreeBachelors = "Bachelors"
	DegreeMasters   = "Masters"
	DegreePhD       = "PhD"
)

type StudentProfile struct {
	Name           string     `json:"name"`
	Major          string     `json:"major"`
	DegreeLevel    string     `json:"degree_level"`
	ArrivalDate    string     `json:"arrival_date"`
	GraduationDate string     `json:"graduation_date"`
	Milestones     Milestones `json:"milestones"`
}

// Milestones are completion flags. A flag missing from the input decodes as false.
// CPTApplied and OPTApplied are accepted but gate no checklist item.
type Milestones struct {
	SEVISCheckin          bool `json:"sevis_checkin"`
	PassportUploaded      bool `json:"passport_uploaded"`
	FirstSemesterComplete bool `json:"first_semester_complete"`
	CPTApplied            bool `json:"cpt_applied"`
	OPTApplied            bool `json:"opt_applied"`
}

// Normalize fills the display defaults used by the profile form for blank fields.
func (p StudentProfile) Normalize() StudentProfile {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = "Student"
	}
	if strings.TrimSpace(p.Major) == "" {
		p.Major = "N/A"
	}
	return p
}
