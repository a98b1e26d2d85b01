package handlers_fiber

import (
	"net/http"
	"strconv"
	"time"

	"github.com/drinkingsweets/avito-tech/internal/entities"

	"github.com/gofiber/fiber/v2"
)

// GetStats returns assignment counters grouped by user, PR, status and team.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	statsRes, err := h.uc.Stats(c.Context())
	if err != nil {
		h.log.Errorw("failed to get stats", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(statsRes)
}

// GetStatsSummary returns a filtered stats snapshot.
func (h *Handler) GetStatsSummary(c *fiber.Ctx) error {
	filter := entities.StatsFilter{}

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "invalid from timestamp")
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return badRequest(c, "invalid to timestamp")
		}
		filter.To = &to
	}
	if v := c.Query("status"); v != "" {
		status := entities.PullRequestStatus(v)
		if status != entities.StatusOpen && status != entities.StatusMerged {
			return badRequest(c, "invalid status")
		}
		filter.Status = &status
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return badRequest(c, "invalid limit")
		}
		filter.Limit = limit
	}

	summary, err := h.uc.SummaryStats(c.Context(), filter)
	if err != nil {
		h.log.Errorw("failed to get summary stats", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(summary)
}

// GetStatsReviewer returns statistics for a single reviewer.
func (h *Handler) GetStatsReviewer(c *fiber.Ctx) error {
	limit := 10
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid limit")
		}
		limit = parsed
	}

	res, err := h.uc.ReviewerStats(c.Context(), c.Params("user_id"), limit)
	if err != nil {
		h.log.Errorw("failed to get reviewer stats", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(res)
}

// GetStatsPR returns statistics for a single pull request.
func (h *Handler) GetStatsPR(c *fiber.Ctx) error {
	res, err := h.uc.PRStats(c.Context(), c.Params("pr_id"))
	if err != nil {
		h.log.Errorw("failed to get PR stats", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(res)
}
