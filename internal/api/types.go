// Package api declares the wire contract of the HTTP surface: request and
// response shapes plus machine-readable error codes. Field names follow the
// public API of the service (snake_case JSON).
package api

import "time"

// TeamMember is a roster entry inside a team payload.
type TeamMember struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

// Team is the wire form of a team with its roster.
type Team struct {
	TeamName string       `json:"team_name"`
	Members  []TeamMember `json:"members"`
}

// User is the wire form of a single user.
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	TeamName string `json:"team_name"`
	IsActive bool   `json:"is_active"`
}

// PullRequest is the wire form of a PR with its reviewer set.
type PullRequest struct {
	PullRequestID   string     `json:"pr_id"`
	PullRequestName string     `json:"pr_name"`
	AuthorID        string     `json:"author_id"`
	Status          string     `json:"status"`
	Reviewers       []string   `json:"reviewers"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	MergedAt        *time.Time `json:"merged_at,omitempty"`
}

// PullRequestShort is a compact PR projection for listings.
type PullRequestShort struct {
	PullRequestID   string `json:"pr_id"`
	PullRequestName string `json:"pr_name"`
	AuthorID        string `json:"author_id"`
	Status          string `json:"status"`
}

// TeamAddRequest is the body of POST /team/add.
type TeamAddRequest = Team

// SetIsActiveRequest is the body of POST /users/setIsActive.
type SetIsActiveRequest struct {
	UserID   string `json:"user_id"`
	IsActive bool   `json:"is_active"`
}

// PullRequestCreateRequest is the body of POST /pullRequest/create.
type PullRequestCreateRequest struct {
	PullRequestID   string   `json:"pr_id"`
	PullRequestName string   `json:"pr_name"`
	AuthorID        string   `json:"author_id"`
	Reviewers       []string `json:"reviewers"`
}

// PullRequestMergeRequest is the body of POST /pullRequest/merge.
type PullRequestMergeRequest struct {
	PullRequestID string `json:"pr_id"`
}

// PullRequestReassignRequest is the body of POST /pullRequest/reassign.
type PullRequestReassignRequest struct {
	PullRequestID string `json:"pr_id"`
	OldReviewerID string `json:"old_reviewer_id"`
	NewReviewerID string `json:"new_reviewer_id"`
}

// TokenRequest is the body of POST /auth/admin-token and /auth/user-token.
type TokenRequest struct {
	UserID string `json:"user_id"`
}

// TokenResponse is the issued credential.
type TokenResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}
