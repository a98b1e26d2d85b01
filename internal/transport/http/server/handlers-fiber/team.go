package handlers_fiber

import (
	"net/http"

	"github.com/drinkingsweets/avito-tech/internal/api"
	"github.com/drinkingsweets/avito-tech/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// PostTeamAdd creates a team and upserts members.
func (h *Handler) PostTeamAdd(c *fiber.Ctx) error {
	var body api.TeamAddRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid body")
	}

	team, err := h.uc.CreateTeam(c.Context(), mapper.FromAPITeam(body))
	if err != nil {
		h.log.Infow("failed to create team", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(struct {
		Team api.Team `json:"team"`
	}{Team: mapper.ToAPITeam(*team)})
}

// GetTeamGet returns team with members by name.
func (h *Handler) GetTeamGet(c *fiber.Ctx) error {
	team, err := h.uc.Team(c.Context(), c.Query("team_name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToAPITeam(*team))
}

// GetTeamMembers returns the full roster of a team.
func (h *Handler) GetTeamMembers(c *fiber.Ctx) error {
	return h.teamMembers(c, false)
}

// GetTeamActiveMembers returns only active members of a team.
func (h *Handler) GetTeamActiveMembers(c *fiber.Ctx) error {
	return h.teamMembers(c, true)
}

func (h *Handler) teamMembers(c *fiber.Ctx, activeOnly bool) error {
	teamName := c.Query("team_name")
	members, err := h.uc.TeamMembers(c.Context(), teamName, activeOnly)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		TeamName string     `json:"team_name"`
		Members  []api.User `json:"members"`
	}{TeamName: teamName, Members: mapper.ToAPIUserList(members)})
}

// GetTeamReviewers returns team members assigned as reviewer on any PR.
func (h *Handler) GetTeamReviewers(c *fiber.Ctx) error {
	teamName := c.Query("team_name")
	reviewers, err := h.uc.TeamReviewers(c.Context(), teamName)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		TeamName  string     `json:"team_name"`
		Reviewers []api.User `json:"reviewers"`
	}{TeamName: teamName, Reviewers: mapper.ToAPIUserList(reviewers)})
}
