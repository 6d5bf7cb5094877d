// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// These symbolic constants are passed to fail() together with an HTTP status
// and a human-readable message, giving clients a stable taxonomy to branch on.
// Generic codes mirror the usual HTTP status semantics; duplicate membership
// adds and absent removes are deliberately reported as bad_request rather
// than conflict, because the API treats them as user-correctable validation
// failures (and maps racing constraint violations to the same code).
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeCreateFailed     = "create_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
