// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTeamExists signals team name conflict.
	ErrTeamExists = errors.New("team exists")
	// ErrTeamNotFound signals missing team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrPRExists signals duplicate PR id.
	ErrPRExists = errors.New("pr exists")
	// ErrPRNotFound signals missing PR.
	ErrPRNotFound = errors.New("pr not found")
	// ErrPRNotOpen signals a merge attempt on a PR that is not OPEN.
	ErrPRNotOpen = errors.New("pr not open")
	// ErrPRMerged signals a reviewer mutation attempt after merge.
	ErrPRMerged = errors.New("pr merged")
	// ErrNotAssigned signals the removed reviewer is not on the PR.
	ErrNotAssigned = errors.New("reviewer not assigned")
	// ErrNoCandidate signals the target reviewer exists but is inactive.
	ErrNoCandidate = errors.New("no candidate")
	// ErrReviewerAssigned signals the target reviewer is already on the PR.
	ErrReviewerAssigned = errors.New("reviewer already assigned")
	// ErrUnauthorized signals a missing or invalid token.
	ErrUnauthorized = errors.New("unauthorized")
)
