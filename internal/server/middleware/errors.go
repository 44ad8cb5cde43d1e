package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/GLee998/church-database-bot/pkg/api"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		Retriable: status == http.StatusTooManyRequests,
	})
}
