// Package handlers defines HTTP-layer error codes used across all API
// endpoints.
//
// Codes are lowercase snake_case and stable: clients branch on them for
// programmatic error handling, supplementing the HTTP status. Generic codes
// mirror common HTTP semantics; domain-specific codes cover analysis
// outcomes a status alone cannot convey.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodePayloadTooLarge  = "payload_too_large"

	// Domain-specific:
	ErrCodeUploadFailed          = "upload_failed"
	ErrCodeEmptyTranscript       = "empty_transcript"
	ErrCodeUnknownUser           = "unknown_user"
	ErrCodeSimilarityUnavailable = "similarity_unavailable"
)
