package handlers_fiber

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drinkingsweets/avito-tech/internal/api"
	"github.com/drinkingsweets/avito-tech/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   api.ErrorCode
	}{
		{name: "validation", err: entities.ErrInvalidArgument, status: http.StatusBadRequest, code: api.ValidationError},
		{name: "user_not_found", err: entities.ErrUserNotFound, status: http.StatusNotFound, code: api.NotFound},
		{name: "team_not_found", err: entities.ErrTeamNotFound, status: http.StatusNotFound, code: api.NotFound},
		{name: "pr_not_found", err: entities.ErrPRNotFound, status: http.StatusNotFound, code: api.NotFound},
		{name: "team_exists", err: entities.ErrTeamExists, status: http.StatusBadRequest, code: api.TeamExists},
		{name: "pr_exists", err: entities.ErrPRExists, status: http.StatusConflict, code: api.PRExists},
		{name: "pr_not_open", err: entities.ErrPRNotOpen, status: http.StatusConflict, code: api.InvalidState},
		{name: "pr_merged", err: entities.ErrPRMerged, status: http.StatusConflict, code: api.PRMerged},
		{name: "not_assigned", err: entities.ErrNotAssigned, status: http.StatusConflict, code: api.NotAssigned},
		{name: "no_candidate", err: entities.ErrNoCandidate, status: http.StatusConflict, code: api.NoCandidate},
		{name: "already_assigned", err: entities.ErrReviewerAssigned, status: http.StatusConflict, code: api.AlreadyExists},
		{name: "unauthorized", err: entities.ErrUnauthorized, status: http.StatusUnauthorized, code: api.Unauthorized},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: api.InternalError},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/fail", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)

			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, tt.code, body.Error.Code)
			require.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestWriteErrorWrappedErrorKeepsKind(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return writeError(c, fmt.Errorf("repo: %w", entities.ErrPRExists))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, api.PRExists, body.Error.Code)
}

func TestBadRequestEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return badRequest(c, "invalid request body")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"error":{"code":"VALIDATION_ERROR","message":"invalid request body"}}`, string(raw))
}
