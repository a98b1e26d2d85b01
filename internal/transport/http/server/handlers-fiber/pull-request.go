package handlers_fiber

import (
	"net/http"

	"github.com/drinkingsweets/avito-tech/internal/api"
	"github.com/drinkingsweets/avito-tech/internal/entities"
	"github.com/drinkingsweets/avito-tech/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// PostPullRequestCreate handles PR creation with an explicit reviewer list.
func (h *Handler) PostPullRequestCreate(c *fiber.Ctx) error {
	var body api.PullRequestCreateRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	pr, err := h.uc.CreatePullRequest(c.Context(), entities.PullRequest{
		ID:        body.PullRequestID,
		Name:      body.PullRequestName,
		AuthorID:  body.AuthorID,
		Reviewers: body.Reviewers,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(struct {
		PR api.PullRequest `json:"pr"`
	}{PR: mapper.ToAPIPull(*pr)})
}

// PostPullRequestMerge transitions a PR from OPEN to MERGED.
func (h *Handler) PostPullRequestMerge(c *fiber.Ctx) error {
	var body api.PullRequestMergeRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	pr, err := h.uc.MergePullRequest(c.Context(), body.PullRequestID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		PR api.PullRequest `json:"pr"`
	}{PR: mapper.ToAPIPull(*pr)})
}

// PostPullRequestReassign swaps an assigned reviewer for an explicit target.
func (h *Handler) PostPullRequestReassign(c *fiber.Ctx) error {
	var body api.PullRequestReassignRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}
	pr, err := h.uc.ReassignReviewer(c.Context(), body.PullRequestID, body.OldReviewerID, body.NewReviewerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		PR api.PullRequest `json:"pr"`
	}{PR: mapper.ToAPIPull(*pr)})
}
