package ai

import "errors"

var (
	// ErrMissingAPIKey indicates no credential was supplied for a hosted provider.
	// Surfaced at configuration time, never mid-pipeline.
	ErrMissingAPIKey = errors.New("ai config: OPENAI_API_KEY is not set")

	// ErrInvalidConfig indicates an incomplete or out-of-range configuration.
	ErrInvalidConfig = errors.New("ai config: invalid configuration")
)
