// Package domain contains application Usecases orchestrating domain logic by team.
package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/drinkingsweets/avito-tech/internal/entities"
)

// CreateTeam creates a team with its members. A team without members is invalid.
func (u *Usecase) CreateTeam(ctx context.Context, team entities.Team) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(team.Name) == "" {
		u.log.Errorw("failed to create team: missing team_name")
		return nil, fmt.Errorf("%w: team_name is required", entities.ErrInvalidArgument)
	}
	if len(team.Members) == 0 {
		u.log.Errorw("failed to create team: empty members", "team", team.Name)
		return nil, fmt.Errorf("%w: members list cannot be empty", entities.ErrInvalidArgument)
	}
	for _, m := range team.Members {
		if m.ID == "" || m.Username == "" {
			return nil, fmt.Errorf("%w: member user_id and username are required", entities.ErrInvalidArgument)
		}
	}

	return u.repo.CreateTeam(ctx, team)
}

// Team returns team by name. A blank name is reported as not found,
// the same as a name that resolves to nothing.
func (u *Usecase) Team(ctx context.Context, name string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(name) == "" {
		u.log.Errorw("failed to get team: missing team_name")
		return nil, fmt.Errorf("%w: team name cannot be empty", entities.ErrTeamNotFound)
	}
	return u.repo.GetTeam(ctx, name)
}

// TeamMembers returns the team roster, optionally filtered to active users.
func (u *Usecase) TeamMembers(ctx context.Context, name string, activeOnly bool) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: team name cannot be empty", entities.ErrTeamNotFound)
	}
	return u.repo.GetTeamMembers(ctx, name, activeOnly)
}

// TeamReviewers returns team members currently assigned as reviewers on any PR.
func (u *Usecase) TeamReviewers(ctx context.Context, name string) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: team name cannot be empty", entities.ErrTeamNotFound)
	}
	return u.repo.GetTeamReviewers(ctx, name)
}
