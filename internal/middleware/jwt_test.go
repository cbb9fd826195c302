package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moewai/aquaflow/internal/model"
	"github.com/moewai/aquaflow/internal/utils"
)

const testSecret = "test-secret"

// protectedEcho mounts an echo instance with JWTAuth in front of a probe
// handler that echoes the identity claims back.
func protectedEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	all := append([]echo.MiddlewareFunc{JWTAuth(testSecret)}, mw...)
	e.GET("/probe", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id":    c.Get("user_id"),
			"role":       c.Get("role"),
			"session_id": c.Get("session_id"),
		})
	}, all...)
	return e
}

func get(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, "u3", model.RoleAgent, "sid-1", 15)
	require.NoError(t, err)

	rec := get(protectedEcho(), "Bearer "+access.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"u3","role":"Agent","session_id":"sid-1"}`, rec.Body.String())
}

func TestJWTAuthRejectsBadTokens(t *testing.T) {
	e := protectedEcho()

	// No header at all.
	assert.Equal(t, http.StatusUnauthorized, get(e, "").Code)
	// Wrong scheme.
	assert.Equal(t, http.StatusUnauthorized, get(e, "Basic abc").Code)
	// Garbage token.
	assert.Equal(t, http.StatusUnauthorized, get(e, "Bearer not.a.jwt").Code)

	// Token signed with a different secret.
	access, err := utils.NewAccessToken("other-secret", "u3", model.RoleAgent, "sid-1", 15)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(e, "Bearer "+access.Token).Code)

	// Expired token.
	access, err = utils.NewAccessToken(testSecret, "u3", model.RoleAgent, "sid-1", -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(e, "Bearer "+access.Token).Code)
}

func TestRequireRoleEnforcesAllowList(t *testing.T) {
	e := protectedEcho(RequireRole(model.RoleFactoryOwner, model.RoleFactoryAdmin))

	access, err := utils.NewAccessToken(testSecret, "u2", model.RoleFactoryOwner, "sid-1", 15)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(e, "Bearer "+access.Token).Code)

	access, err = utils.NewAccessToken(testSecret, "u5", model.RolePublicCustomer, "sid-2", 15)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(e, "Bearer "+access.Token).Code)
}
