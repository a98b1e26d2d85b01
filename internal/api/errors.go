package api

// ErrorCode is a machine-readable failure kind carried on the wire.
type ErrorCode string

const (
	// TeamExists reports a duplicate team name.
	TeamExists ErrorCode = "TEAM_EXISTS"
	// PRExists reports a duplicate PR id.
	PRExists ErrorCode = "PR_EXISTS"
	// NotFound reports a missing referenced entity.
	NotFound ErrorCode = "NOT_FOUND"
	// PRMerged reports a reviewer mutation on a merged PR.
	PRMerged ErrorCode = "PR_MERGED"
	// InvalidState reports a lifecycle transition from a non-OPEN status.
	InvalidState ErrorCode = "INVALID_STATE"
	// NotAssigned reports a reassignment source that is not a reviewer.
	NotAssigned ErrorCode = "NOT_ASSIGNED"
	// NoCandidate reports an inactive reassignment target.
	NoCandidate ErrorCode = "NO_CANDIDATE"
	// AlreadyExists reports a reassignment target already on the PR.
	AlreadyExists ErrorCode = "ALREADY_EXISTS"
	// Unauthorized reports a missing or invalid token.
	Unauthorized ErrorCode = "UNAUTHORIZED"
	// ValidationError reports malformed input rejected before any store access.
	ValidationError ErrorCode = "VALIDATION_ERROR"
	// InternalError reports an unexpected non-business failure.
	InternalError ErrorCode = "INTERNAL_SERVER_ERROR"
)

// ErrorBody is the code+message pair inside an error envelope.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse is the error envelope of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
