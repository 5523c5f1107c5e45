package models

import "errors"

var (
	// ErrNotFound means an entity or list is absent. Surfaced to callers as
	// "nothing to show", not logged as an error.
	ErrNotFound = errors.New("not found")

	// ErrProviderUnavailable means the remote provider failed transiently
	// (network error, 5xx, timeout).
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrInvalidPayload means the provider returned a shape that cannot be
	// parsed into an entity. Propagated like a provider failure.
	ErrInvalidPayload = errors.New("invalid provider payload")

	// ErrVideoNotFound means no playable video could be resolved. Hard
	// failure; there is no cached fallback for video data.
	ErrVideoNotFound = errors.New("video not found")
)
