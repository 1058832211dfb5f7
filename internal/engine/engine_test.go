package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"visa-engine/internal/model"
)

func fixedEngine() *Engine {
	return New(time.UTC).WithClock(func() time.Time {
		return time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)
	})
}

func completedProfile() model.StudentProfile {
	return model.StudentProfile{
		Name:           "Amina",
		Major:          "Computer Science",
		DegreeLevel:    model.DegreeMasters,
		ArrivalDate:    "2025-01-05",
		GraduationDate: "2026-12-15",
		Milestones: model.Milestones{
			SEVISCheckin:          true,
			PassportUploaded:      true,
			FirstSemesterComplete: true,
			CPTApplied:            true,
			OPTApplied:            true,
		},
	}
}

func TestRunAllMilestonesComplete(t *testing.T) {
	res, err := fixedEngine().Run(completedProfile(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tl := res.Timeline
	if tl.Today != "2026-10-16" {
		t.Fatalf("expected today 2026-10-16, got %s", tl.Today)
	}
	if tl.MonthsSinceArrival != 21 {
		t.Fatalf("expected 21 months since arrival, got %d", tl.MonthsSinceArrival)
	}
	if tl.CPTEligibilityDate != "2026-01-05" {
		t.Fatalf("expected cpt date 2026-01-05, got %s", tl.CPTEligibilityDate)
	}
	if tl.OPTEligibilityStart != "2026-09-16" {
		t.Fatalf("expected opt start 2026-09-16, got %s", tl.OPTEligibilityStart)
	}
	if tl.OPTEligibilityEnd != "2026-12-15" {
		t.Fatalf("expected opt end 2026-12-15, got %s", tl.OPTEligibilityEnd)
	}

	cl := res.Checklist
	if n := len(cl.Items(model.SectionMonth1)); n != 0 {
		t.Fatalf("expected empty Month 1, got %d items", n)
	}
	if n := len(cl.Items(model.SectionMonth6)); n != 0 {
		t.Fatalf("expected empty Month 6, got %d items", n)
	}

	month12 := cl.Items(model.SectionMonth12)
	if len(month12) != 2 {
		t.Fatalf("expected 2 Month 12 items, got %d", len(month12))
	}
	if month12[0] != "CPT becomes available on 2026-01-05 – begin employer search" {
		t.Fatalf("unexpected CPT item: %s", month12[0])
	}
	if month12[1] != "Request CPT I-20 endorsement (30 days before CPT start date)" {
		t.Fatalf("unexpected CPT reminder: %s", month12[1])
	}

	preOPT := cl.Items(model.SectionPreOPT)
	want := []string{
		"Prepare OPT documents (start 90 days before graduation → 2026-09-16)",
		"Obtain employer letter for OPT",
		"Submit Form I-765",
	}
	if len(preOPT) != len(want) {
		t.Fatalf("expected %d Pre-OPT items, got %d", len(want), len(preOPT))
	}
	for i := range want {
		if preOPT[i] != want[i] {
			t.Fatalf("Pre-OPT item %d: expected %q, got %q", i, want[i], preOPT[i])
		}
	}

	if n := len(cl.Items(model.SectionPolicySteps)); n != 0 {
		t.Fatalf("expected no policy steps, got %d", n)
	}
	if res.Agent1UpdatesUsed == nil || len(res.Agent1UpdatesUsed) != 0 {
		t.Fatalf("expected empty, non-nil updates used")
	}
	if res.UserProfile.Name != "Amina" {
		t.Fatalf("expected profile echoed back, got %+v", res.UserProfile)
	}
}

func TestRunMonth1FollowsFlags(t *testing.T) {
	cases := []struct {
		sevis, passport bool
		want            []string
	}{
		{false, false, []string{"Complete SEVIS Check-In", "Upload Passport to ISSS Portal"}},
		{false, true, []string{"Complete SEVIS Check-In"}},
		{true, false, []string{"Upload Passport to ISSS Portal"}},
		{true, true, []string{}},
	}

	for _, c := range cases {
		p := completedProfile()
		p.Milestones.SEVISCheckin = c.sevis
		p.Milestones.PassportUploaded = c.passport

		res, err := fixedEngine().Run(p, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := res.Checklist.Items(model.SectionMonth1)
		if strings.Join(got, "|") != strings.Join(c.want, "|") {
			t.Fatalf("sevis=%v passport=%v: expected %v, got %v", c.sevis, c.passport, c.want, got)
		}
	}
}

func TestRunMonth6AllOrNothing(t *testing.T) {
	p := completedProfile()
	p.Milestones.FirstSemesterComplete = false

	res, err := fixedEngine().Run(p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := res.Checklist.Items(model.SectionMonth6)
	if len(got) != 2 || got[0] != "Meet Academic Advisor" || got[1] != "Confirm Full-Time Enrollment" {
		t.Fatalf("expected advisor and enrollment items, got %v", got)
	}
}

func TestRunInertApplicationFlags(t *testing.T) {
	a := completedProfile()
	b := completedProfile()
	b.Milestones.CPTApplied = false
	b.Milestones.OPTApplied = false

	ra, err := fixedEngine().Run(a, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rb, err := fixedEngine().Run(b, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ja, _ := json.Marshal(ra.Checklist)
	jb, _ := json.Marshal(rb.Checklist)
	if string(ja) != string(jb) {
		t.Fatalf("cpt_applied/opt_applied changed the checklist:\n%s\n%s", ja, jb)
	}
}

func TestRunPolicyStepsPreserveOrder(t *testing.T) {
	updates := []model.PolicyUpdate{
		{Update: "CPT requires 1 academic year of full-time enrollment.", Source: "USCIS Policy 2024", RiskLevel: "medium", ActionNeeded: "Check CPT eligibility window"},
		{Update: "DSO must be notified within 10 days of job loss.", Source: "DHS 2025", RiskLevel: "high", ActionNeeded: "Add job-loss notification step during OPT"},
		{Update: "", Source: "", RiskLevel: "", ActionNeeded: ""},
	}

	res, err := fixedEngine().Run(completedProfile(), updates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := res.Checklist.Items(model.SectionPolicySteps)
	if len(got) != len(updates) {
		t.Fatalf("expected %d policy steps, got %d", len(updates), len(got))
	}
	if got[0] != "Check CPT eligibility window (Rule: CPT requires 1 academic year of full-time enrollment.)" {
		t.Fatalf("unexpected first step: %s", got[0])
	}
	if got[1] != "Add job-loss notification step during OPT (Rule: DSO must be notified within 10 days of job loss.)" {
		t.Fatalf("unexpected second step: %s", got[1])
	}
	if got[2] != " (Rule: )" {
		t.Fatalf("unexpected third step: %q", got[2])
	}
	if len(res.Agent1UpdatesUsed) != 3 {
		t.Fatalf("expected updates echoed back, got %d", len(res.Agent1UpdatesUsed))
	}
}

func TestRunInvalidDateAborts(t *testing.T) {
	p := completedProfile()
	p.GraduationDate = "12/15/2026"

	res, err := fixedEngine().Run(p, nil)
	if res != nil {
		t.Fatal("expected no result on invalid date")
	}
	var fe *model.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if fe.Field != "graduation_date" {
		t.Fatalf("expected graduation_date field, got %s", fe.Field)
	}
}

func TestRunGraduationBeforeArrivalIsAccepted(t *testing.T) {
	p := completedProfile()
	p.ArrivalDate = "2027-01-05"
	p.GraduationDate = "2026-01-05"

	res, err := fixedEngine().Run(p, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Timeline.MonthsSinceArrival != -3 {
		t.Fatalf("expected -3 months since arrival, got %d", res.Timeline.MonthsSinceArrival)
	}
}

func TestRunIsDeterministicForSameDay(t *testing.T) {
	eng := fixedEngine()
	updates := []model.PolicyUpdate{{Update: "u", Source: "s", RiskLevel: "low", ActionNeeded: "a"}}

	a, err := eng.Run(completedProfile(), updates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := eng.Run(completedProfile(), updates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Fatalf("expected identical output, got:\n%s\n%s", ja, jb)
	}
}

func TestRunUsesEngineLocationForToday(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	eng := New(loc).WithClock(func() time.Time {
		return time.Date(2026, time.October, 31, 20, 0, 0, 0, time.UTC)
	})

	res, err := eng.Run(completedProfile(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Timeline.Today != "2026-11-01" {
		t.Fatalf("expected today 2026-11-01, got %s", res.Timeline.Today)
	}
	if res.Timeline.MonthsSinceArrival != 22 {
		t.Fatalf("expected 22 months, got %d", res.Timeline.MonthsSinceArrival)
	}
}

func TestProcessSuccess(t *testing.T) {
	resp := fixedEngine().Process(completedProfile(), nil)

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.CalculationMetadata.CalculationID == "" {
		t.Fatal("expected calculation id")
	}
	if len(resp.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(resp.Messages))
	}
	if resp.Result == nil {
		t.Fatal("expected result")
	}
}

func TestProcessKeepsGoingAfterPolicyWarning(t *testing.T) {
	warning := model.CalculationMessage{
		Level:   model.LevelWarning,
		Code:    model.CodeInvalidPolicyInput,
		Message: "invalid policy updates: bad syntax",
	}
	resp := fixedEngine().Process(completedProfile(), nil, warning)

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Code != model.CodeInvalidPolicyInput {
		t.Fatalf("expected policy warning, got %+v", resp.Messages)
	}
	if resp.Messages[0].ID != 0 {
		t.Fatalf("expected message id 0, got %d", resp.Messages[0].ID)
	}
	if n := len(resp.Result.Checklist.Items(model.SectionPolicySteps)); n != 0 {
		t.Fatalf("expected empty policy steps, got %d", n)
	}
}

func TestProcessInvalidDate(t *testing.T) {
	p := completedProfile()
	p.ArrivalDate = "2025-1-5"
	warning := model.CalculationMessage{Level: model.LevelWarning, Code: model.CodeInvalidPolicyInput}

	resp := fixedEngine().Process(p, nil, warning)

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeFailure {
		t.Fatalf("expected FAILURE, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if resp.Result != nil {
		t.Fatal("expected no result")
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(resp.Messages))
	}
	last := resp.Messages[1]
	if last.ID != 1 || last.Level != model.LevelCritical || last.Code != model.CodeInvalidDate {
		t.Fatalf("unexpected critical message: %+v", last)
	}
}
