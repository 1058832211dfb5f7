package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"visa-engine/internal/model"
)

// Engine runs timeline and checklist calculations against a clock. Each call reads
// the clock once.
type Engine struct {
	now func() time.Time
	loc *time.Location
}

func New(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{now: time.Now, loc: loc}
}

// WithClock returns a copy of e reading time from now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	cp := *e
	cp.now = now
	return &cp
}

// Run computes the timeline, then the checklist, and returns both with the inputs
// they were derived from. A malformed date aborts the run.
func (e *Engine) Run(profile model.StudentProfile, updates []model.PolicyUpdate) (*model.EngineResult, error) {
	if updates == nil {
		updates = []model.PolicyUpdate{}
	}

	timeline, err := ComputeTimeline(&profile, e.now().In(e.loc))
	if err != nil {
		return nil, err
	}
	checklist, err := GenerateChecklist(&profile, timeline, updates)
	if err != nil {
		return nil, err
	}

	return &model.EngineResult{
		UserProfile:       profile,
		Timeline:          timeline,
		Checklist:         checklist,
		Agent1UpdatesUsed: updates,
	}, nil
}

// Process wraps Run in a calculation envelope. Warnings raised while collecting the
// input (such as unreadable policy updates) are reported ahead of anything Run adds.
func (e *Engine) Process(profile model.StudentProfile, updates []model.PolicyUpdate, warnings ...model.CalculationMessage) *model.CalculationResponse {
	start := time.Now()

	allMessages := []model.CalculationMessage{}
	for _, w := range warnings {
		w.ID = len(allMessages)
		allMessages = append(allMessages, w)
	}

	outcome := model.OutcomeSuccess
	result, err := e.Run(profile, updates)
	if err != nil {
		code := model.CodeInvalidDate
		var fe *model.FormatError
		if !errors.As(err, &fe) {
			code = model.CodeCalculationFailed
		}
		allMessages = append(allMessages, model.CalculationMessage{
			ID:      len(allMessages),
			Level:   model.LevelCritical,
			Code:    code,
			Message: err.Error(),
		})
		outcome = model.OutcomeFailure
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		Messages: allMessages,
		Result:   result,
	}
}
