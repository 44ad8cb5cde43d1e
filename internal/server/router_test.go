package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/metrics"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/query"
	"github.com/GLee998/church-database-bot/internal/remote/sqlite"
	"github.com/GLee998/church-database-bot/internal/roster"
	"github.com/GLee998/church-database-bot/internal/server/jwt"
	"github.com/GLee998/church-database-bot/internal/server/middleware"
	"github.com/GLee998/church-database-bot/internal/validation"
	"github.com/GLee998/church-database-bot/internal/write"
)

const testSecret = "test-secret-0123456789"

func newTestRoster(t *testing.T, logger *slog.Logger) *roster.Service {
	t.Helper()
	ctx := context.Background()
	schema := models.NewSchema([]string{"Youth"}, nil, "")

	store, err := sqlite.New(ctx, ":memory:", schema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Append(ctx, map[string]string{models.FieldFirstName: "Анна", models.FieldGroup: "Youth"})
	require.NoError(t, err)

	mgr := cache.NewManager(store, schema, nil, cache.Config{Interval: time.Minute, StaleAfter: time.Hour}, logger, nil)
	resolver := intent.NewResolver(&intent.ServiceMock{}, schema, intent.Config{Timeout: time.Second}, logger, nil)
	coord := write.NewCoordinator(store, mgr, validation.New(schema), write.Config{}, logger, nil)

	r := roster.New(mgr, resolver, query.NewExecutor(schema, time.UTC, 0), coord, logger)
	_, err = r.Reload(ctx)
	require.NoError(t, err)
	return r
}

func newTestHandler(t *testing.T) (http.Handler, *jwt.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	tokens := jwt.NewService(testSecret, time.Hour)

	h := NewRouter(Options{
		Roster:   newTestRoster(t, logger),
		Tokens:   tokens,
		Access:   middleware.NewAccess([]string{"42", "7"}, []string{"7"}),
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Logger:   logger,
		Version:  "test",
	})
	return h, tokens
}

func request(t *testing.T, h http.Handler, tokens *jwt.Service, user, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if user != "" {
		token, _, err := tokens.Issue(user, "")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Access(t *testing.T) {
	h, tokens := newTestHandler(t)

	tests := []struct {
		name       string
		user       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "health is public", method: http.MethodGet, target: "/api/v1/health", wantStatus: http.StatusOK},
		{name: "search needs token", method: http.MethodGet, target: "/api/v1/search?q=a", wantStatus: http.StatusUnauthorized},
		{name: "unknown user", user: "13", method: http.MethodGet, target: "/api/v1/search", wantStatus: http.StatusForbidden},
		{name: "allowed user", user: "42", method: http.MethodGet, target: "/api/v1/search", wantStatus: http.StatusOK},
		{name: "sync needs admin", user: "42", method: http.MethodPost, target: "/api/v1/sync", wantStatus: http.StatusForbidden},
		{name: "admin sync", user: "7", method: http.MethodPost, target: "/api/v1/sync", wantStatus: http.StatusOK},
		{name: "unknown route", user: "42", method: http.MethodGet, target: "/api/v1/nothing", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(t, h, tokens, tt.user, tt.method, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRouter_RejectsForeignToken(t *testing.T) {
	h, _ := newTestHandler(t)
	other := jwt.NewService("another-secret-0123456789", time.Hour)

	w := request(t, h, other, "42", http.MethodGet, "/api/v1/status")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	h, tokens := newTestHandler(t)

	w := request(t, h, tokens, "42", http.MethodGet, "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, h, tokens, "", http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, "roster_http_requests_total"))
	assert.Contains(t, body, `route="/api/v1/status"`)
}

func TestServe_Shutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, time.Second, logger) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
