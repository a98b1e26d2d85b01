package middleware

import (
	"net/http"
	"strings"

	"github.com/drinkingsweets/avito-tech/internal/api"
	"github.com/drinkingsweets/avito-tech/internal/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ClaimsKey is the fiber locals key the verified caller identity is stored under.
const ClaimsKey = "auth.claims"

// RequireRole validates the Bearer token and admits only the listed roles.
// The handlers behind it receive a request whose capability assertion
// already passed; they never re-check credentials.
func RequireRole(log *zap.SugaredLogger, provider *auth.TokenProvider, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return unauthorized(c)
		}

		claims, err := provider.Parse(token)
		if err != nil {
			log.Debugw("auth rejected", "path", c.OriginalURL(), "error", err)
			return unauthorized(c)
		}
		if _, ok := allowed[claims.Role]; !ok {
			log.Debugw("role not allowed", "path", c.OriginalURL(), "role", claims.Role)
			return unauthorized(c)
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(api.ErrorResponse{
		Error: api.ErrorBody{Code: api.Unauthorized, Message: "Invalid or missing token"},
	})
}
