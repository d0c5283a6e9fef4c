// Package services defines the application-level logic between the HTTP
// transport and the pure analysis engines. This file centralizes common
// service-level error values so they can be consistently returned by service
// methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrReportNotFound indicates that the requested report id is unknown
	// or has expired from the in-memory store.
	ErrReportNotFound = errors.New("report not found")

	// ErrEmptyTranscript is returned when an upload contains no parseable
	// message records.
	ErrEmptyTranscript = errors.New("transcript contains no messages")

	// ErrUnknownUser is returned when the selected user is neither a parsed
	// sender nor the Overall sentinel.
	ErrUnknownUser = errors.New("unknown user selection")

	// ErrSimilarityUnavailable is returned when a similarity ranking is
	// requested for the Overall sentinel or for a sender with no qualifying
	// messages in the similarity matrix.
	ErrSimilarityUnavailable = errors.New("similarity unavailable for this selection")
)
