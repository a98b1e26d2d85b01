// Package domain contains application Usecases orchestrating domain logic by user.
package domain

import (
	"context"
	"fmt"

	"github.com/drinkingsweets/avito-tech/internal/entities"
)

// GetUser returns a user by id.
func (u *Usecase) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", entities.ErrInvalidArgument)
	}

	return u.repo.GetUser(ctx, userID)
}

// SetActiveUser toggles user activity flag and returns updated user.
func (u *Usecase) SetActiveUser(ctx context.Context, userID string, isActive bool) (*entities.User, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", entities.ErrInvalidArgument)
	}

	return u.repo.SetUserActive(ctx, userID, isActive)
}

// GetReviewList returns PRs where the user is assigned as reviewer.
func (u *Usecase) GetReviewList(ctx context.Context, userID string) ([]entities.PullRequestShort, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", entities.ErrInvalidArgument)
	}

	return u.repo.GetUserReviews(ctx, userID)
}
