package intent

import "errors"

var (
	// ErrUnrecognizedIntent the answer of the AI service is outside the closed vocabulary
	ErrUnrecognizedIntent = errors.New("question not understood")

	// ErrInvalidIntent the intent uses known names in a way the schema does not allow
	ErrInvalidIntent = errors.New("invalid query intent")

	// ErrUnavailable the AI service failed or timed out; the question may be retried
	ErrUnavailable = errors.New("intent service unavailable")
)
