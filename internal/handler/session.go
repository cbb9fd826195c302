package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moewai/aquaflow/internal/session"
)

// SessionHandler exposes the state of the caller's server-side session.
type SessionHandler struct {
	Sessions *session.Manager
}

func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

// sessionFor resolves the live session from the token's sid claim.
func (h *SessionHandler) sessionFor(c echo.Context) (*session.Session, bool) {
	sid, _ := c.Get("session_id").(string)
	if sid == "" {
		return nil, false
	}
	return h.Sessions.Get(sid)
}

// Get handles GET /v1/session and returns the active user and view.
func (h *SessionHandler) Get(c echo.Context) error {
	sess, ok := h.sessionFor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}
	user, loggedIn := sess.User()
	if !loggedIn {
		return c.JSON(http.StatusOK, echo.Map{"state": "logged_out"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"state":       "logged_in",
		"user":        user,
		"active_view": sess.ActiveView(),
	})
}

// SetView handles PUT /v1/session/view.  The view id is accepted without
// validation against the navigation table; what the client displays is its
// own business, authorization happens on the operation routes.
func (h *SessionHandler) SetView(c echo.Context) error {
	sess, ok := h.sessionFor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}
	var body struct {
		View string `json:"view"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.View = strings.TrimSpace(body.View)
	if body.View == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "view required"})
	}
	sess.SetActiveView(body.View)
	return c.JSON(http.StatusOK, echo.Map{"active_view": sess.ActiveView()})
}
