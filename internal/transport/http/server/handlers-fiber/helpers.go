package handlers_fiber

import (
	"errors"
	"net/http"

	"github.com/drinkingsweets/avito-tech/internal/api"
	"github.com/drinkingsweets/avito-tech/internal/entities"

	"github.com/gofiber/fiber/v2"
)

// writeError maps a domain error to the wire error envelope. Every business
// failure keeps its kind; only unrecognized errors collapse to a 500.
func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := api.InternalError
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = api.ValidationError
		msg = err.Error()
	case errors.Is(err, entities.ErrUserNotFound), errors.Is(err, entities.ErrTeamNotFound), errors.Is(err, entities.ErrPRNotFound):
		status = http.StatusNotFound
		code = api.NotFound
		msg = "resource not found"
	case errors.Is(err, entities.ErrTeamExists):
		status = http.StatusBadRequest
		code = api.TeamExists
		msg = "team_name already exists"
	case errors.Is(err, entities.ErrPRExists):
		status = http.StatusConflict
		code = api.PRExists
		msg = "PR id already exists"
	case errors.Is(err, entities.ErrPRNotOpen):
		status = http.StatusConflict
		code = api.InvalidState
		msg = "pull request is not in OPEN status"
	case errors.Is(err, entities.ErrPRMerged):
		status = http.StatusConflict
		code = api.PRMerged
		msg = "cannot reassign on merged PR"
	case errors.Is(err, entities.ErrNotAssigned):
		status = http.StatusConflict
		code = api.NotAssigned
		msg = "reviewer is not assigned to this PR"
	case errors.Is(err, entities.ErrNoCandidate):
		status = http.StatusConflict
		code = api.NoCandidate
		msg = "no active replacement candidate in team"
	case errors.Is(err, entities.ErrReviewerAssigned):
		status = http.StatusConflict
		code = api.AlreadyExists
		msg = "reviewer already assigned to this PR"
	case errors.Is(err, entities.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = api.Unauthorized
		msg = "Invalid or missing token"
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code api.ErrorCode, msg string) api.ErrorResponse {
	return api.ErrorResponse{Error: api.ErrorBody{Code: code, Message: msg}}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse(api.ValidationError, msg))
}
