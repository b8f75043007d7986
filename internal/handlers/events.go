package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fatihahmukti-create/Marko-AI/internal/auth"
	"github.com/fatihahmukti-create/Marko-AI/internal/notifications"
)

type EventsHandler struct {
	Hub *notifications.Hub
}

// NewEventsHandler creates the SSE events handler.
func NewEventsHandler(hub *notifications.Hub) *EventsHandler {
	return &EventsHandler{Hub: hub}
}

// Stream opens a server-sent events stream of analysis and history events
// for the authenticated user.
func (h *EventsHandler) Stream(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	ch, unsubscribe := h.Hub.Subscribe(userID)
	defer unsubscribe()

	_ = writeEventSSE(c, notifications.Event{Type: "connected", Data: map[string]string{"user_id": userID.String()}})
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeEventSSE(c, event); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func writeEventSSE(c echo.Context, event notifications.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := c.Response().Write([]byte("event: " + string(event.Type) + "\n")); err != nil {
		return err
	}
	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}

	return nil
}
