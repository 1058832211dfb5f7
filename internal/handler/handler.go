package handler

import (
	"context"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"visa-engine/internal/chat"
	"visa-engine/internal/engine"
	"visa-engine/internal/logging"
	"visa-engine/internal/model"
	"visa-engine/internal/policy"
)

const exportFilename = "agent2_output.json"

type Handler struct {
	baseCtx  context.Context
	engine   *engine.Engine
	provider policy.Provider
	limiter  *RateLimiter
}

// New wires the HTTP surface. limiter may be nil to disable rate limiting; baseCtx
// bounds calls to the policy provider.
func New(baseCtx context.Context, eng *engine.Engine, provider policy.Provider, limiter *RateLimiter) *Handler {
	if provider == nil {
		provider = policy.Defaults{}
	}
	return &Handler{
		baseCtx:  baseCtx,
		engine:   eng,
		provider: provider,
		limiter:  limiter,
	}
}

func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	defer func() {
		logging.Log.WithFields(logrus.Fields{
			"method":   string(ctx.Method()),
			"path":     string(ctx.Path()),
			"status":   ctx.Response.StatusCode(),
			"duration": time.Since(start),
		}).Debug("request")
	}()

	if h.limiter != nil && !h.limiter.Allow(ctx.RemoteIP().String()) {
		writeError(ctx, fasthttp.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	switch string(ctx.Path()) {
	case "/healthz":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/v1/timeline":
		if requirePost(ctx) {
			h.handleTimeline(ctx)
		}
	case "/v1/export":
		if requirePost(ctx) {
			h.handleExport(ctx)
		}
	case "/v1/policies/summary":
		if requirePost(ctx) {
			h.handleSummary(ctx)
		}
	case "/v1/policies/default":
		if ctx.IsGet() {
			h.handleDefaultPolicies(ctx)
		} else {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		}
	case "/v1/chat":
		if requirePost(ctx) {
			h.handleChat(ctx)
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) handleTimeline(ctx *fasthttp.RequestCtx) {
	req, ok := decodeTimelineRequest(ctx)
	if !ok {
		return
	}
	profile := req.UserProfile.Normalize()
	updates, warnings := h.collectUpdates(&profile, req.Agent1Updates)

	resp := h.engine.Process(profile, updates, warnings...)

	logging.Log.WithFields(logrus.Fields{
		"calculation_id": resp.CalculationMetadata.CalculationID,
		"outcome":        resp.CalculationMetadata.CalculationOutcome,
		"messages":       len(resp.Messages),
	}).Info("timeline calculated")

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleExport(ctx *fasthttp.RequestCtx) {
	req, ok := decodeTimelineRequest(ctx)
	if !ok {
		return
	}
	profile := req.UserProfile.Normalize()
	updates, warnings := h.collectUpdates(&profile, req.Agent1Updates)

	result, err := h.engine.Run(profile, updates)
	if err != nil {
		var fe *model.FormatError
		if errors.As(err, &fe) {
			writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	body, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	for _, w := range warnings {
		ctx.Response.Header.Add("X-Policy-Warning", w.Message)
	}
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

func (h *Handler) handleSummary(ctx *fasthttp.RequestCtx) {
	updates, _, err := policy.FromField(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, engine.SummarizePolicies(updates))
}

func (h *Handler) handleDefaultPolicies(ctx *fasthttp.RequestCtx) {
	updates, err := h.provider.Updates(h.baseCtx, &model.StudentProfile{})
	if err != nil {
		writeError(ctx, fasthttp.StatusBadGateway, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, updates)
}

func (h *Handler) handleChat(ctx *fasthttp.RequestCtx) {
	var req model.ChatRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	history, reply, err := chat.Respond(req.History, req.Message)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, model.ChatResponse{History: history, Reply: reply})
}

// collectUpdates resolves the request's policy updates. Unreadable input and provider
// failures become warnings and leave the run with no updates.
func (h *Handler) collectUpdates(profile *model.StudentProfile, raw json.RawMessage) ([]model.PolicyUpdate, []model.CalculationMessage) {
	updates, present, err := policy.FromField(raw)
	if err != nil {
		return []model.PolicyUpdate{}, []model.CalculationMessage{{
			Level:   model.LevelWarning,
			Code:    model.CodeInvalidPolicyInput,
			Message: err.Error(),
		}}
	}
	if present {
		return updates, nil
	}

	updates, err = h.provider.Updates(h.baseCtx, profile)
	if err != nil {
		logging.Log.WithError(err).Warn("policy provider failed")
		return []model.PolicyUpdate{}, []model.CalculationMessage{{
			Level:   model.LevelWarning,
			Code:    model.CodePolicyProviderError,
			Message: err.Error(),
		}}
	}
	return updates, nil
}

func decodeTimelineRequest(ctx *fasthttp.RequestCtx) (*model.TimelineRequest, bool) {
	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, model.ErrMissingBody.Error())
		return nil, false
	}
	var req model.TimelineRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	return &req, true
}

func requirePost(ctx *fasthttp.RequestCtx) bool {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
