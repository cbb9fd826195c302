package handler

import (
	"errors"   // sentinel checks against the session manager
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // token expiry timestamps in responses

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/moewai/aquaflow/internal/config"  // app configuration
	"github.com/moewai/aquaflow/internal/model"   // domain records
	"github.com/moewai/aquaflow/internal/session" // session and navigation model
	"github.com/moewai/aquaflow/internal/utils"   // token issuing helpers
)

// AuthHandler bundles dependencies for the profile-selection login flow.
// There are no credentials anywhere: logging in means picking one of the
// stored user profiles, exactly as the platform's profile picker does.
type AuthHandler struct {
	Cfg      config.Config
	Sessions *session.Manager
}

func NewAuthHandler(cfg config.Config, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Sessions: sessions}
}

// ----- DTOs -----

type loginReq struct {
	UserID string `json:"user_id"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type loginResp struct {
	User        model.User         `json:"user"`
	Access      tokenPart          `json:"access"`
	InitialView string             `json:"initial_view"`
	Nav         []session.NavEntry `json:"nav"`
}

// Profiles handles GET /v1/auth/profiles and returns every selectable
// login profile in stored order, unfiltered.
func (h *AuthHandler) Profiles(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Sessions.ListLoginProfiles(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profiles failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": users})
}

// Login handles POST /v1/auth/login.  It resolves the selected profile,
// creates a server-side session seeded with the role's initial view, and
// returns an access token whose claims tie later requests back to that
// session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	sid, sess, user, err := h.Sessions.Login(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, session.ErrUnknownProfile) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, sid, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		User:        user,
		Access:      tokenPart{Token: access.Token, Expires: access.Exp},
		InitialView: sess.ActiveView(),
		Nav:         session.VisibleNavigationEntries(user.Role),
	})
}

// Logout handles POST /v1/auth/logout (protected).  It destroys the
// server-side session named by the token's sid claim; the short-lived
// access token itself simply expires.
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := c.Get("session_id").(string)
	if sid == "" || !h.Sessions.Logout(sid) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no active session"})
	}
	return c.NoContent(http.StatusNoContent)
}
