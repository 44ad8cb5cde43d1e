package intent

import "context"

//go:generate moq -out service_mock.go . Service

// Service is the AI intent extraction function. It receives the question and the schema
// description every time and returns the model's raw answer.
type Service interface {
	ResolveIntent(ctx context.Context, question, schemaDescription string) (string, error)
}
