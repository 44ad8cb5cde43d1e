package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/remote"
	"github.com/GLee998/church-database-bot/internal/roster"
	"github.com/GLee998/church-database-bot/internal/write"
	"github.com/GLee998/church-database-bot/pkg/api"
)

// maxBodyBytes предел размера тела запроса
const maxBodyBytes = 1 << 20

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, statusCode int, code, message string, retriable bool) {
	resp := api.ErrorResponse{
		Error:     http.StatusText(statusCode),
		Message:   message,
		Code:      code,
		Retriable: retriable,
	}
	sendJSON(logger, w, resp, statusCode)
}

// errorKind HTTP представление ошибки ядра
type errorKind struct {
	code      string
	status    int
	retriable bool
}

// classify сопоставляет ошибку статусу и коду ответа
func classify(err error) errorKind {
	switch {
	case errors.Is(err, models.ErrUnknownField), errors.Is(err, models.ErrInvalidValue), errors.Is(err, models.ErrRequiredField):
		return errorKind{code: api.CodeInvalidRecord, status: http.StatusBadRequest}
	case errors.Is(err, roster.ErrNotFound), errors.Is(err, write.ErrNotFound):
		return errorKind{code: api.CodeNotFound, status: http.StatusNotFound}
	case errors.Is(err, write.ErrConflict):
		return errorKind{code: api.CodeConflict, status: http.StatusConflict}
	case errors.Is(err, write.ErrStaleWrite):
		return errorKind{code: api.CodeStaleWrite, status: http.StatusPreconditionFailed}
	case errors.Is(err, write.ErrWriteInProgress):
		return errorKind{code: api.CodeWriteInProgress, status: http.StatusLocked, retriable: true}
	case errors.Is(err, write.ErrRemoteRejected):
		return errorKind{code: api.CodeRemoteRejected, status: http.StatusBadGateway}
	case errors.Is(err, write.ErrRemoteUnavailable), errors.Is(err, remote.ErrUnavailable):
		return errorKind{code: api.CodeRemoteUnavailable, status: http.StatusServiceUnavailable, retriable: true}
	case errors.Is(err, intent.ErrUnrecognizedIntent):
		return errorKind{code: api.CodeUnrecognizedIntent, status: http.StatusUnprocessableEntity}
	case errors.Is(err, intent.ErrInvalidIntent):
		return errorKind{code: api.CodeInvalidIntent, status: http.StatusUnprocessableEntity}
	case errors.Is(err, intent.ErrUnavailable):
		return errorKind{code: api.CodeIntentUnavailable, status: http.StatusServiceUnavailable, retriable: true}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errorKind{code: api.CodeTimeout, status: http.StatusGatewayTimeout, retriable: true}
	default:
		return errorKind{code: api.CodeInternal, status: http.StatusInternalServerError}
	}
}

// sendCoreError переводит ошибку ядра в ответ. Детали внутренних ошибок не раскрываются.
func sendCoreError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	kind := classify(err)

	message := err.Error()
	switch kind.code {
	case api.CodeInternal:
		logger.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
		message = "internal server error"
	case api.CodeRemoteUnavailable, api.CodeIntentUnavailable, api.CodeTimeout:
		logger.WarnContext(r.Context(), "upstream unavailable", slog.Any("error", err))
		message = "service temporarily unavailable, try again later"
	}

	sendError(logger, w, kind.status, kind.code, message, kind.retriable)
}

// decodeJSON строго разбирает тело запроса
func decodeJSON(r *http.Request, w http.ResponseWriter, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
