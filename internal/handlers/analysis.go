package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fatihahmukti-create/Marko-AI/internal/ai"
	"github.com/fatihahmukti-create/Marko-AI/internal/auth"
	"github.com/fatihahmukti-create/Marko-AI/internal/history"
	"github.com/fatihahmukti-create/Marko-AI/internal/models"
	"github.com/fatihahmukti-create/Marko-AI/internal/notifications"
	"github.com/fatihahmukti-create/Marko-AI/internal/repository"
	"github.com/fatihahmukti-create/Marko-AI/internal/workspace"
)

// Fixed user-facing message for a failed generation; the user is expected to
// retry, nothing is retried internally.
const msgGenerationFailed = "Terjadi kesalahan saat membuat strategi. Pastikan API Key valid dan coba lagi."

type AnalysisHandler struct {
	Generator  *ai.Generator
	Workspaces *workspace.Manager
	History    *history.Store
	Log        *repository.GenerationLogRepository
	Notifier   *notifications.Hub
	Model      string
}

// NewAnalysisHandler creates the plan generation handler.
func NewAnalysisHandler(generator *ai.Generator, workspaces *workspace.Manager, historyStore *history.Store, logRepo *repository.GenerationLogRepository, notifier *notifications.Hub, model string) *AnalysisHandler {
	return &AnalysisHandler{
		Generator:  generator,
		Workspaces: workspaces,
		History:    historyStore,
		Log:        logRepo,
		Notifier:   notifier,
		Model:      model,
	}
}

type GenerateRequest struct {
	BusinessName   string `json:"businessName" validate:"required"`
	Industry       string `json:"industry" validate:"required"`
	Description    string `json:"description" validate:"required"`
	TargetAudience string `json:"targetAudience" validate:"required"`
	Goals          string `json:"goals" validate:"required"`
}

type AnalysisResponse struct {
	Status models.AnalysisStatus `json:"status"`
	Plan   *models.MarketingPlan `json:"plan,omitempty"`
	Error  string                `json:"error,omitempty"`
}

type GenerateResponse struct {
	Status  models.AnalysisStatus `json:"status"`
	Plan    models.MarketingPlan  `json:"plan"`
	History *models.HistoryItem   `json:"history,omitempty"`
}

// Generate runs one plan generation for the authenticated user: the workspace
// moves to LOADING, the generator is called with no timeout, and the result
// lands in the workspace and the history on success. A submission while one
// is already loading is rejected.
func (h *AnalysisHandler) Generate(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	input := models.BusinessInput{
		BusinessName:   req.BusinessName,
		Industry:       req.Industry,
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
		Goals:          req.Goals,
	}

	ws := h.Workspaces.Get(userID)
	if err := ws.BeginAnalysis(); err != nil {
		if errors.Is(err, workspace.ErrAnalysisInFlight) {
			return conflict(c, "an analysis is already in progress")
		}
		return conflict(c, "reset the current result before submitting again")
	}

	h.publish(userID, notifications.EventAnalysisStarted, map[string]string{"businessName": input.BusinessName})

	plan, prompt, err := h.Generator.GeneratePlan(c.Request().Context(), input)
	if err != nil {
		ws.FailAnalysis()
		h.logAttempt(c.Request().Context(), userID, prompt, input, nil, err)
		h.publish(userID, notifications.EventAnalysisFailed, nil)

		var genErr *ai.GenerationError
		kind := ai.KindServiceUnavailable
		if errors.As(err, &genErr) {
			kind = genErr.Kind
		}
		slog.Error("plan generation failed",
			slog.String("user_id", userID.String()),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))

		return c.JSON(http.StatusBadGateway, AnalysisResponse{
			Status: models.AnalysisStatusError,
			Error:  msgGenerationFailed,
		})
	}

	ws.CompleteAnalysis(plan)
	h.logAttempt(c.Request().Context(), userID, prompt, input, &plan, nil)

	var historyItem *models.HistoryItem
	item, histErr := h.History.Add(c.Request().Context(), userID, input, plan)
	if histErr != nil {
		// History failures are non-fatal: the plan is still served, this
		// session just is not persisted.
		slog.Warn("failed to persist history",
			slog.String("user_id", userID.String()),
			slog.String("error", histErr.Error()))
	} else {
		historyItem = &item
		h.publish(userID, notifications.EventHistoryAdded, map[string]string{"id": item.ID})
	}

	h.publish(userID, notifications.EventAnalysisSucceeded, nil)

	return c.JSON(http.StatusOK, GenerateResponse{
		Status:  models.AnalysisStatusSuccess,
		Plan:    plan,
		History: historyItem,
	})
}

// Status reports the workspace status and the plan on display, if any.
func (h *AnalysisHandler) Status(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	ws := h.Workspaces.Get(userID)
	return c.JSON(http.StatusOK, AnalysisResponse{
		Status: ws.Status(),
		Plan:   ws.Plan(),
	})
}

// Reset returns the workspace to IDLE, clearing the plan, the chat panel and
// any pending chat seed.
func (h *AnalysisHandler) Reset(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	ws := h.Workspaces.Get(userID)
	ws.Reset()

	return c.JSON(http.StatusOK, AnalysisResponse{Status: models.AnalysisStatusIdle})
}

func (h *AnalysisHandler) publish(userID uuid.UUID, eventType notifications.EventType, data interface{}) {
	if h.Notifier == nil {
		return
	}
	h.Notifier.Publish(userID, notifications.Event{Type: eventType, Data: data})
}

func (h *AnalysisHandler) logAttempt(ctx context.Context, userID uuid.UUID, prompt string, input models.BusinessInput, plan *models.MarketingPlan, genErr error) {
	if h.Log == nil {
		return
	}

	inputPayload, _ := json.Marshal(input)
	planPayload := []byte(nil)
	if plan != nil {
		planPayload, _ = json.Marshal(plan)
	}

	var errMessage *string
	if genErr != nil {
		message := genErr.Error()
		errMessage = &message
	}

	record := repository.GenerationLog{
		UserID:       userID,
		Model:        h.Model,
		Prompt:       prompt,
		InputPayload: inputPayload,
		PlanPayload:  planPayload,
		Success:      genErr == nil,
		ErrorMessage: errMessage,
	}

	if err := h.Log.Record(ctx, record); err != nil {
		slog.Warn("failed to record generation attempt", slog.String("error", err.Error()))
	}
}
