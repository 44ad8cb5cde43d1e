package api

// Коды ошибок API
const (
	CodeBadRequest         = "bad_request"
	CodeInvalidRecord      = "invalid_record"
	CodeNotFound           = "not_found"
	CodeStaleWrite         = "stale_write"
	CodeConflict           = "conflict"
	CodeWriteInProgress    = "write_in_progress"
	CodeRemoteRejected     = "remote_rejected"
	CodeRemoteUnavailable  = "remote_unavailable"
	CodeUnrecognizedIntent = "unrecognized_question"
	CodeInvalidIntent      = "invalid_intent"
	CodeIntentUnavailable  = "intent_unavailable"
	CodeTimeout            = "timeout"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error     string `json:"error"`             // описание ошибки
	Message   string `json:"message,omitempty"` // дополнительное сообщение
	Code      string `json:"code"`              // машиночитаемый код
	Retriable bool   `json:"retriable"`         // можно повторить запрос позже
}
