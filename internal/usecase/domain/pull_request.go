// Package domain contains application services orchestrating domain logic by pull request.
package domain

import (
	"context"
	"fmt"

	"github.com/drinkingsweets/avito-tech/internal/entities"
)

// CreatePullRequest validates the command and persists an OPEN PR with its
// reviewer set. Malformed input is rejected before any store access.
func (u *Usecase) CreatePullRequest(ctx context.Context, pr entities.PullRequest) (*entities.PullRequest, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if pr.ID == "" || pr.Name == "" || pr.AuthorID == "" {
		return nil, fmt.Errorf("%w: missing required fields", entities.ErrInvalidArgument)
	}
	if len(pr.Reviewers) == 0 {
		return nil, fmt.Errorf("%w: reviewers list cannot be empty", entities.ErrInvalidArgument)
	}
	for _, r := range pr.Reviewers {
		if r == "" {
			return nil, fmt.Errorf("%w: reviewer id cannot be empty", entities.ErrInvalidArgument)
		}
	}

	res, err := u.repo.CreatePR(ctx, pr)
	if err != nil {
		return nil, err
	}
	u.log.Infow("pr create", "pr_id", pr.ID, "reviewers", len(res.Reviewers))
	return res, nil
}

// MergePullRequest transitions an OPEN PR to MERGED.
func (u *Usecase) MergePullRequest(ctx context.Context, prID string) (*entities.PullRequest, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if prID == "" {
		return nil, fmt.Errorf("%w: pr_id is required", entities.ErrInvalidArgument)
	}
	return u.repo.MergePR(ctx, prID)
}

// ReassignReviewer replaces one assigned reviewer with an explicit target.
func (u *Usecase) ReassignReviewer(ctx context.Context, prID, oldUserID, newUserID string) (*entities.PullRequest, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if prID == "" || oldUserID == "" || newUserID == "" {
		return nil, fmt.Errorf("%w: missing required fields", entities.ErrInvalidArgument)
	}
	return u.repo.ReassignReviewer(ctx, prID, oldUserID, newUserID)
}
