package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/agents/router"
	statex "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/state"
)

type Handler struct {
	router *router.Router
	store  statex.Store
}

func NewHandler(rt *router.Router, store statex.Store) *Handler {
	return &Handler{router: rt, store: store}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/messages", h.PostMessage)
	e.GET("/api/v1/sessions/:session_id/messages", h.GetSessionMessages)
	e.GET("/healthz", h.Health)
}

type postMessageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// PostMessage handles one conversational turn. A missing session id starts a
// new session. Every reply the router produces comes back as 200, including
// failure-shaped ones; the success flag and fallback text carry the outcome.
// Only a body that cannot be bound is a 400.
func (h *Handler) PostMessage(c echo.Context) error {
	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply := h.router.HandleMessage(c.Request().Context(), sessionID, req.Text)
	return c.JSON(http.StatusOK, reply)
}

// GetSessionMessages returns the most recent turns of a session.
// GET /api/v1/sessions/:session_id/messages?limit=50
func (h *Handler) GetSessionMessages(c echo.Context) error {
	sessionID := c.Param("session_id")
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}

	sess, err := h.store.Load(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, statex.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	messages := sess.RecentMessages(limit)
	return c.JSON(http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   messages,
	})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
