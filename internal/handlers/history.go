package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fatihahmukti-create/Marko-AI/internal/auth"
	"github.com/fatihahmukti-create/Marko-AI/internal/history"
	"github.com/fatihahmukti-create/Marko-AI/internal/models"
	"github.com/fatihahmukti-create/Marko-AI/internal/notifications"
	"github.com/fatihahmukti-create/Marko-AI/internal/repository"
	"github.com/fatihahmukti-create/Marko-AI/internal/workspace"
)

type HistoryHandler struct {
	History    *history.Store
	Workspaces *workspace.Manager
	Notifier   *notifications.Hub
}

// NewHistoryHandler creates the history handler.
func NewHistoryHandler(historyStore *history.Store, workspaces *workspace.Manager, notifier *notifications.Hub) *HistoryHandler {
	return &HistoryHandler{
		History:    historyStore,
		Workspaces: workspaces,
		Notifier:   notifier,
	}
}

type HistoryListResponse struct {
	Items []models.HistoryItem `json:"items"`
}

// List returns the user's generated plans, newest first.
func (h *HistoryHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	items, err := h.History.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, HistoryListResponse{Items: items})
}

// Select puts a historical plan back on display without calling the
// generator and without mutating the history.
func (h *HistoryHandler) Select(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	item, err := h.History.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "history item not found")
		}
		return serverError(c)
	}

	ws := h.Workspaces.Get(userID)
	if err := ws.SelectHistory(item.Plan); err != nil {
		return conflict(c, "an analysis is already in progress")
	}

	return c.JSON(http.StatusOK, AnalysisResponse{
		Status: models.AnalysisStatusSuccess,
		Plan:   &item.Plan,
	})
}

// Delete removes one history item by id. An unknown id is a no-op.
func (h *HistoryHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	id := c.Param("id")
	if err := h.History.Delete(c.Request().Context(), userID, id); err != nil {
		return serverError(c)
	}

	if h.Notifier != nil {
		h.Notifier.Publish(userID, notifications.Event{
			Type: notifications.EventHistoryDeleted,
			Data: map[string]string{"id": id},
		})
	}

	return c.NoContent(http.StatusNoContent)
}

// ExportJSON downloads one history item as a JSON file, the machine-readable
// companion of the printable report.
func (h *HistoryHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	item, err := h.History.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "history item not found")
		}
		return serverError(c)
	}

	filename := "marketing-plan-" + item.ID + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, item)
}
