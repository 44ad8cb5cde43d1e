package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GLee998/church-database-bot/internal/server/jwt"
	"github.com/GLee998/church-database-bot/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// UserIDKey ключ для хранения user_id в контексте
const UserIDKey contextKey = "user_id"

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// Access список допущенных пользователей и администраторов
type Access struct {
	allowed map[string]bool
	admins  map[string]bool
}

// NewAccess builds the access lists. An empty allowed list admits every user with a valid token.
// Admins are always allowed.
func NewAccess(allowed, admins []string) *Access {
	a := &Access{allowed: make(map[string]bool), admins: make(map[string]bool)}
	for _, id := range allowed {
		a.allowed[id] = true
	}
	for _, id := range admins {
		a.admins[id] = true
		if len(allowed) > 0 {
			a.allowed[id] = true
		}
	}
	return a
}

// Allowed reports whether userID may use the API.
func (a *Access) Allowed(userID string) bool {
	return len(a.allowed) == 0 || a.allowed[userID]
}

// Admin reports whether userID may trigger administrative actions.
func (a *Access) Admin(userID string) bool {
	return a.admins[userID]
}

// AuthMiddleware создает middleware для проверки JWT токена и списка допуска
func AuthMiddleware(logger *slog.Logger, tokens *jwt.Service, access *Access) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				logger.Warn("Missing or malformed Authorization header", "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, api.CodeUnauthorized, "missing token")
				return
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				logger.Warn("Invalid access token", "error", err)
				writeError(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid token")
				return
			}

			if !access.Allowed(claims.Subject) {
				logger.Warn("User not in allow-list", "user_id", claims.Subject)
				writeError(w, http.StatusForbidden, api.CodeForbidden, "access denied")
				return
			}

			logger.Debug("User authenticated", "user_id", claims.Subject)

			ctx := context.WithValue(r.Context(), UserIDKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только администраторов. Должен стоять после AuthMiddleware.
func RequireAdmin(logger *slog.Logger, access *Access) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, _ := GetUserID(r.Context())
			if !access.Admin(userID) {
				logger.Warn("Admin action denied", "user_id", userID, "path", r.URL.Path)
				writeError(w, http.StatusForbidden, api.CodeForbidden, "admin only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken извлекает токен из "Authorization: Bearer <token>".
// Для websocket допускается параметр запроса access_token.
func bearerToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if token := r.URL.Query().Get("access_token"); token != "" {
		return token, true
	}
	return "", false
}
