package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/query"
	"github.com/GLee998/church-database-bot/internal/remote/sqlite"
	"github.com/GLee998/church-database-bot/internal/roster"
	"github.com/GLee998/church-database-bot/internal/validation"
	"github.com/GLee998/church-database-bot/internal/write"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRoster собирает настоящий сервис поверх sqlite в памяти
func newTestRoster(t *testing.T) *roster.Service {
	t.Helper()
	ctx := context.Background()
	schema := models.NewSchema([]string{"Youth", "Family"}, nil, "")
	logger := setupTestLogger()

	store, err := sqlite.New(ctx, ":memory:", schema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	people := []map[string]string{
		{models.FieldFirstName: "Анна", models.FieldLastName: "Петрова", models.FieldGroup: "Youth", models.FieldBirthDate: "1990-01-02"},
		{models.FieldFirstName: "Борис", models.FieldLastName: "Иванов", models.FieldGroup: "Family", models.FieldBirthDate: "1985-12-31"},
		{models.FieldFirstName: "Вера", models.FieldLastName: "Сидорова", models.FieldGroup: "Youth", models.FieldBirthDate: "2001-02-01"},
		{models.FieldFirstName: "Глеб", models.FieldLastName: "Орлов", models.FieldGroup: "Youth"},
	}
	for _, p := range people {
		_, err := store.Append(ctx, p)
		require.NoError(t, err)
	}

	svc := &intent.ServiceMock{
		ResolveIntentFunc: func(ctx context.Context, question, schemaDescription string) (string, error) {
			if question == "how many people are in the Youth group?" {
				return `{"operation":"count","predicates":[{"field":"group","operator":"eq","value":"Youth"}]}`, nil
			}
			return `{"operation":"unsupported"}`, nil
		},
	}

	mgr := cache.NewManager(store, schema, nil, cache.Config{Interval: time.Minute, StaleAfter: time.Hour}, logger, nil)
	resolver := intent.NewResolver(svc, schema, intent.Config{Timeout: time.Second}, logger, nil)
	executor := query.NewExecutor(schema, time.UTC, 0)
	coord := write.NewCoordinator(store, mgr, validation.New(schema), write.Config{CommitTimeout: 5 * time.Second}, logger, nil)

	r := roster.New(mgr, resolver, executor, coord, logger)
	_, err = r.Reload(ctx)
	require.NoError(t, err)
	return r
}

// newTestRouter маршруты без авторизации, она проверяется в middleware
func newTestRouter(r Roster) http.Handler {
	h := NewRosterHandler(setupTestLogger(), r)

	router := chi.NewRouter()
	router.Get("/api/v1/schema", h.Schema)
	router.Get("/api/v1/search", h.Search)
	router.Post("/api/v1/ask", h.Ask)
	router.Post("/api/v1/records", h.CreateRecord)
	router.Get("/api/v1/records/{id}", h.GetRecord)
	router.Put("/api/v1/records/{id}", h.UpdateRecord)
	router.Get("/api/v1/letters", h.Letters)
	router.Get("/api/v1/letters/{letter}", h.ByLetter)
	router.Get("/api/v1/groups", h.Groups)
	router.Get("/api/v1/birthdays", h.Birthdays)
	router.Get("/api/v1/status", h.Status)
	router.Post("/api/v1/sync", h.Sync)
	return router
}

func doJSON(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(dst))
}
