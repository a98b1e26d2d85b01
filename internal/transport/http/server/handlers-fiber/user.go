package handlers_fiber

import (
	"net/http"

	"github.com/drinkingsweets/avito-tech/internal/api"
	"github.com/drinkingsweets/avito-tech/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// GetUsersGetReview returns PRs where user is reviewer.
func (h *Handler) GetUsersGetReview(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	prs, err := h.uc.GetReviewList(c.Context(), userID)
	if err != nil {
		h.log.Errorw("failed to get review list", "error", err.Error())
		return writeError(c, err)
	}

	resp := struct {
		UserID       string                 `json:"user_id"`
		PullRequests []api.PullRequestShort `json:"pull_requests"`
	}{
		UserID:       userID,
		PullRequests: mapper.ToAPIPullShortList(prs),
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// PostUsersSetIsActive toggles user activity flag.
func (h *Handler) PostUsersSetIsActive(c *fiber.Ctx) error {
	var body api.SetIsActiveRequest
	if err := c.BodyParser(&body); err != nil {
		h.log.Errorw("failed to parse body", "error", err.Error())
		return badRequest(c, "invalid body")
	}

	usr, err := h.uc.SetActiveUser(c.Context(), body.UserID, body.IsActive)
	if err != nil {
		h.log.Errorw("failed to set is_active for user", "error", err.Error())
		return writeError(c, err)
	}

	resp := struct {
		User api.User `json:"user"`
	}{User: mapper.ToAPIUser(*usr)}
	return c.Status(http.StatusOK).JSON(resp)
}
