package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *AuthMiddleware {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Signing = "test-signing-key"
	cfg.Auth = &config.AuthConfig{TokenTTL: ttl}

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewAuthMiddleware(tokenSvc)
}

func issueTestToken(t *testing.T, ttl time.Duration, userID uuid.UUID, username string) string {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Signing = "test-signing-key"
	cfg.Auth = &config.AuthConfig{TokenTTL: ttl}

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	token, err := tokenSvc.Issue(userID, username, "$2a$06$digest")
	require.NoError(t, err)

	return token
}

func runAuthenticate(m *AuthMiddleware, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/items", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := m.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)

	return rec, c, nextCalled
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	m := newTestTokenService(t, time.Hour)

	rec, _, nextCalled := runAuthenticate(m, "")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_MISSING")
}

func TestAuthMiddleware_NotBearerScheme(t *testing.T) {
	m := newTestTokenService(t, time.Hour)

	rec, _, nextCalled := runAuthenticate(m, "Basic dXNlcjpwYXNz")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	m := newTestTokenService(t, time.Hour)

	rec, _, nextCalled := runAuthenticate(m, "Bearer not.a.token")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	m := newTestTokenService(t, time.Hour)

	userID := uuid.New()
	token := issueTestToken(t, time.Nanosecond, userID, "walter")
	time.Sleep(time.Second + 100*time.Millisecond)

	rec, _, nextCalled := runAuthenticate(m, "Bearer "+token)

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	m := newTestTokenService(t, time.Hour)

	userID := uuid.New()
	token := issueTestToken(t, time.Hour, userID, "walter")

	rec, c, nextCalled := runAuthenticate(m, "Bearer "+token)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)

	gotID, ok := deliverycontext.GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "walter", deliverycontext.GetUsername(c))
}
