package domain

import "errors"

var (
	// ErrMalformedPayload is returned when a provider response lacks a required field
	ErrMalformedPayload = errors.New("malformed provider payload")

	// ErrProviderUnavailable is returned when a provider cannot be reached and no fallback is used
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrComparisonNotFound is returned when a stored comparison is unknown or expired
	ErrComparisonNotFound = errors.New("comparison not found")

	// ErrGeneratorDisabled is returned by the text generator when no LLM is configured
	ErrGeneratorDisabled = errors.New("language model not configured")

	// ErrGenerationFailed is returned when the language model returns no usable text
	ErrGenerationFailed = errors.New("text generation failed")
)
