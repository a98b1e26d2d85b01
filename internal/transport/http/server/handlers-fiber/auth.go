package handlers_fiber

import (
	"net/http"

	"github.com/drinkingsweets/avito-tech/internal/api"
	"github.com/drinkingsweets/avito-tech/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// PostAuthAdminToken issues an ADMIN token for an existing user.
func (h *Handler) PostAuthAdminToken(c *fiber.Ctx) error {
	return h.issueToken(c, auth.RoleAdmin)
}

// PostAuthUserToken issues a USER token for an existing user.
func (h *Handler) PostAuthUserToken(c *fiber.Ctx) error {
	return h.issueToken(c, auth.RoleUser)
}

func (h *Handler) issueToken(c *fiber.Ctx, role string) error {
	var body api.TokenRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	usr, err := h.uc.GetUser(c.Context(), body.UserID)
	if err != nil {
		return writeError(c, err)
	}

	var token string
	if role == auth.RoleAdmin {
		token, err = h.tokens.IssueAdminToken(usr.ID)
	} else {
		token, err = h.tokens.IssueUserToken(usr.ID)
	}
	if err != nil {
		h.log.Errorw("failed to issue token", "error", err.Error(), "user_id", usr.ID)
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(api.TokenResponse{
		Token:  token,
		Role:   role,
		UserID: usr.ID,
	})
}
