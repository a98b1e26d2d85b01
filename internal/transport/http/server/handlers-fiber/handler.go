// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"github.com/drinkingsweets/avito-tech/internal/auth"
	"github.com/drinkingsweets/avito-tech/internal/transport/http/middleware"
	"github.com/drinkingsweets/avito-tech/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the HTTP surface using the service layer interfaces.
type Handler struct {
	log    *zap.SugaredLogger
	uc     usecase.InterfaceUsecase
	tokens *auth.TokenProvider
}

// NewHandler constructs an HTTP handler with service dependencies.
func NewHandler(log *zap.SugaredLogger, uc usecase.InterfaceUsecase, tokens *auth.TokenProvider) *Handler {
	return &Handler{
		log:    log,
		uc:     uc,
		tokens: tokens,
	}
}

// RegisterRoutes mounts all endpoints with their role requirements.
// Token issuance is public; mutations need ADMIN, reads USER or ADMIN.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	admin := middleware.RequireRole(h.log, h.tokens, auth.RoleAdmin)
	anyRole := middleware.RequireRole(h.log, h.tokens, auth.RoleAdmin, auth.RoleUser)

	authGroup := app.Group("/auth")
	authGroup.Post("/admin-token", h.PostAuthAdminToken)
	authGroup.Post("/user-token", h.PostAuthUserToken)

	team := app.Group("/team")
	team.Post("/add", admin, h.PostTeamAdd)
	team.Get("/get", anyRole, h.GetTeamGet)
	team.Get("/members", anyRole, h.GetTeamMembers)
	team.Get("/members/active", anyRole, h.GetTeamActiveMembers)
	team.Get("/reviewers", anyRole, h.GetTeamReviewers)

	users := app.Group("/users")
	users.Post("/setIsActive", admin, h.PostUsersSetIsActive)
	users.Get("/getReview", anyRole, h.GetUsersGetReview)

	pr := app.Group("/pullRequest")
	pr.Post("/create", admin, h.PostPullRequestCreate)
	pr.Post("/merge", admin, h.PostPullRequestMerge)
	pr.Post("/reassign", admin, h.PostPullRequestReassign)

	stats := app.Group("/stats", anyRole)
	stats.Get("/", h.GetStats)
	stats.Get("/summary", h.GetStatsSummary)
	stats.Get("/reviewer/:user_id", h.GetStatsReviewer)
	stats.Get("/pr/:pr_id", h.GetStatsPR)
}
