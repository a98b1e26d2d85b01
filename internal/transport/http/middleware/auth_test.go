package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/drinkingsweets/avito-tech/config"
	"github.com/drinkingsweets/avito-tech/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testApp(t *testing.T, roles ...string) (*fiber.App, *auth.TokenProvider) {
	t.Helper()

	log := zap.NewNop().Sugar()
	provider := auth.NewTokenProvider(log, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})

	app := fiber.New()
	app.Get("/protected", RequireRole(log, provider, roles...), func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ClaimsKey).(auth.Claims)
		require.True(t, ok)
		return c.JSON(fiber.Map{"user_id": claims.UserID})
	})
	return app, provider
}

func doGet(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRequireRoleAdmitsAllowedRole(t *testing.T) {
	app, provider := testApp(t, auth.RoleAdmin)

	token, err := provider.IssueAdminToken("u1")
	require.NoError(t, err)

	resp := doGet(t, app, "Bearer "+token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	app, provider := testApp(t, auth.RoleAdmin)

	token, err := provider.IssueUserToken("u1")
	require.NoError(t, err)

	resp := doGet(t, app, "Bearer "+token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleRejectsMissingHeader(t *testing.T) {
	app, _ := testApp(t, auth.RoleAdmin, auth.RoleUser)

	resp := doGet(t, app, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleRejectsMalformedHeader(t *testing.T) {
	app, provider := testApp(t, auth.RoleAdmin)

	token, err := provider.IssueAdminToken("u1")
	require.NoError(t, err)

	// Missing the Bearer prefix entirely.
	resp := doGet(t, app, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleRejectsTamperedToken(t *testing.T) {
	app, provider := testApp(t, auth.RoleAdmin)

	token, err := provider.IssueAdminToken("u1")
	require.NoError(t, err)

	resp := doGet(t, app, "Bearer "+token+"x")
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
