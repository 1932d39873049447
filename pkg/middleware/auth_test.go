package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"request-tracker/internal/entities"
	apperrors "request-tracker/pkg/errors"
	"request-tracker/pkg/service"
	"request-tracker/pkg/utils"
)

type stubActorProvider struct {
	user *entities.User
}

func (p *stubActorProvider) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	if p.user != nil && p.user.ID == id {
		return p.user, nil
	}
	return nil, apperrors.ErrNotFound
}

func newAuthTestMiddleware(user *entities.User) (*AuthMiddleware, service.JWTService) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	mw := NewAuthMiddleware(jwtSvc, &stubActorProvider{user: user}, zap.NewNop())
	return mw, jwtSvc
}

func invokeAuth(t *testing.T, mw *AuthMiddleware, authHeader string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw.Auth(next)(c))
	return rec
}

func TestAuthPutsActorIntoContext(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Username: "manager", Role: entities.RoleManager}
	mw, jwtSvc := newAuthTestMiddleware(user)

	access, _, err := jwtSvc.GenerateTokens(user.ID.String())
	require.NoError(t, err)

	called := false
	invokeAuth(t, mw, "Bearer "+access, func(c echo.Context) error {
		called = true
		actor, err := utils.GetActorFromCtx(c.Request().Context())
		require.NoError(t, err)
		assert.Equal(t, user.ID, actor.ID)
		assert.Equal(t, entities.RoleManager, actor.Role)
		return nil
	})
	assert.True(t, called)
}

func TestAuthRejectsRefreshToken(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Username: "manager", Role: entities.RoleManager}
	mw, jwtSvc := newAuthTestMiddleware(user)

	_, refresh, err := jwtSvc.GenerateTokens(user.ID.String())
	require.NoError(t, err)

	rec := invokeAuth(t, mw, "Bearer "+refresh, func(c echo.Context) error {
		t.Fatal("handler не должен вызываться")
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthWithoutHeaderIsUnauthenticated(t *testing.T) {
	mw, _ := newAuthTestMiddleware(nil)

	called := false
	rec := invokeAuth(t, mw, "", func(c echo.Context) error {
		called = true
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
