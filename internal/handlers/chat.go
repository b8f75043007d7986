package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fatihahmukti-create/Marko-AI/internal/auth"
	"github.com/fatihahmukti-create/Marko-AI/internal/chat"
	"github.com/fatihahmukti-create/Marko-AI/internal/models"
	"github.com/fatihahmukti-create/Marko-AI/internal/workspace"
)

type ChatHandler struct {
	Workspaces *workspace.Manager
}

// NewChatHandler creates the chat handler.
func NewChatHandler(workspaces *workspace.Manager) *ChatHandler {
	return &ChatHandler{Workspaces: workspaces}
}

type OpenChatRequest struct {
	Seed string `json:"seed"`
}

type ChatStateResponse struct {
	Open     bool                 `json:"open"`
	Seed     string               `json:"seed,omitempty"`
	Messages []models.ChatMessage `json:"messages"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// Open shows the chat panel, optionally carrying a prefabricated question
// from the report view ("ask AI about this section").
func (h *ChatHandler) Open(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	var req OpenChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	ws := h.Workspaces.Get(userID)
	if err := ws.OpenChat(req.Seed); err != nil {
		return conflict(c, "generate a plan before opening the chat")
	}

	return c.JSON(http.StatusOK, ChatStateResponse{
		Open:     true,
		Seed:     req.Seed,
		Messages: ws.Chat().Messages(),
	})
}

// Close hides the chat panel, keeping the conversation.
func (h *ChatHandler) Close(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	h.Workspaces.Get(userID).CloseChat()
	return c.NoContent(http.StatusNoContent)
}

// Messages returns the conversation so far plus any pending seed message,
// which is cleared by the read, matching the one-shot handoff of the seed.
func (h *ChatHandler) Messages(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	ws := h.Workspaces.Get(userID)
	return c.JSON(http.StatusOK, ChatStateResponse{
		Open:     ws.ChatOpen(),
		Seed:     ws.TakeChatSeed(),
		Messages: ws.Chat().Messages(),
	})
}

// Send runs one chat turn and streams the reply fragments to the client as
// server-sent events. Events: "fragment" per chunk, then one "done" or
// "failed". A turn already streaming is rejected with a conflict.
func (h *ChatHandler) Send(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c, msgInvalidCredentials)
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	ws := h.Workspaces.Get(userID)
	assembler := ws.Chat()

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	// SSE headers are deferred until the first write so a rejected turn can
	// still answer with a plain JSON conflict.
	headerWritten := false
	writeHeader := func() {
		if headerWritten {
			return
		}
		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().WriteHeader(http.StatusOK)
		headerWritten = true
	}

	onFragment := func(fragment, accumulated string) {
		writeHeader()
		_ = writeChatSSE(c, "fragment", map[string]string{"text": fragment, "accumulated": accumulated})
		flusher.Flush()
	}

	outcome, err := assembler.Send(c.Request().Context(), req.Message, onFragment)
	if errors.Is(err, chat.ErrTurnInFlight) {
		return conflict(c, "a chat turn is already in flight")
	}

	writeHeader()

	if outcome == chat.OutcomeFailed {
		_ = writeChatSSE(c, "failed", map[string]string{"message": chat.FallbackMessage})
		flusher.Flush()
		return nil
	}

	messages := assembler.Messages()
	final := ""
	if len(messages) > 0 {
		final = messages[len(messages)-1].Content
	}

	_ = writeChatSSE(c, "done", map[string]string{"text": final})
	flusher.Flush()
	return nil
}

func writeChatSSE(c echo.Context, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := c.Response().Write([]byte("event: " + event + "\n")); err != nil {
		return err
	}
	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}

	return nil
}
