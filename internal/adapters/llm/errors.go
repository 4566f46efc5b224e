package llm

import "errors"

// Sentinel kinds for generative-text errors.
var (
	ErrMissingAPIKey   = errors.New("OPENAI_API_KEY is not set")
	ErrCompletion      = errors.New("completion request failed")
	ErrEmptyCompletion = errors.New("completion returned no text")
)
