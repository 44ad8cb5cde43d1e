package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/config"
	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/pkg/api"
)

const fixtureYAML = `
people:
  - first_name: Анна
    last_name: Петрова
    group: Youth
    birth_date: "1990-01-02"
  - first_name: Борис
    last_name: Иванов
    group: Family
  - first_name: Вера
    group: Youth
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func loadConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	path := writeFile(t, dir, "config.yaml", `
auth:
  secret: "app-test-secret-0123456789"
  allowed_users: ["42"]
  admins: ["42"]
backend:
  kind: sqlite
  sqlite:
    path: `+filepath.Join(dir, "roster.db")+`
  spool_path: `+filepath.Join(dir, "spool.db")+`
intent:
  api_key: unused
roster:
  groups: ["Youth", "Family"]
  timezone: UTC
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func classifier() intent.Service {
	return &intent.ServiceMock{
		ResolveIntentFunc: func(ctx context.Context, question, schemaDescription string) (string, error) {
			return `{"operation":"count","predicates":[{"field":"group","operator":"eq","value":"Youth"}]}`, nil
		},
	}
}

func TestLoadFixture(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fixture.yaml", fixtureYAML)

	f, err := LoadFixture(path)
	require.NoError(t, err)
	require.Len(t, f.People, 3)
	assert.Equal(t, "1990-01-02", f.People[0][models.FieldBirthDate])
	assert.Equal(t, "Family", f.People[1][models.FieldGroup])

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed_InvalidFixtureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	a, err := New(context.Background(), loadConfig(t, dir), testLogger(), Options{Intent: classifier(), Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	f := &Fixture{People: []map[string]string{
		{models.FieldFirstName: "Анна"},
		{models.FieldFirstName: "Ян", models.FieldGroup: "Choir"},
	}}
	_, err = Seed(context.Background(), a.Backend, a.Schema, f)
	require.ErrorIs(t, err, models.ErrInvalidValue)

	table, err := a.Backend.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestApp_SeedSyncAndServe(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, err := New(ctx, loadConfig(t, dir), testLogger(), Options{Intent: classifier(), Registry: prometheus.NewRegistry(), Version: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	f, err := LoadFixture(writeFile(t, dir, "fixture.yaml", fixtureYAML))
	require.NoError(t, err)

	n, err := Seed(ctx, a.Backend, a.Schema, f)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// повторный посев не дублирует строки
	n, err = Seed(ctx, a.Backend, a.Schema, f)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = a.Manager.Sync(ctx)
	require.NoError(t, err)

	token, _, err := a.Tokens.Issue("42", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var status api.StatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	assert.Equal(t, 3, status.Records)

	res, err := a.Roster.Ask(ctx, "how many people are in the Youth group?")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
}

func TestApp_WarmStartFromSpool(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := loadConfig(t, dir)

	first, err := New(ctx, cfg, testLogger(), Options{Intent: classifier(), Registry: prometheus.NewRegistry()})
	require.NoError(t, err)

	f, err := LoadFixture(writeFile(t, dir, "fixture.yaml", fixtureYAML))
	require.NoError(t, err)
	_, err = Seed(ctx, first.Backend, first.Schema, f)
	require.NoError(t, err)
	_, err = first.Manager.Sync(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Второй запуск видит данные до первой синхронизации
	second, err := New(ctx, cfg, testLogger(), Options{Intent: classifier(), Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	require.NoError(t, second.Manager.WarmStart(ctx))
	assert.Equal(t, 3, second.Manager.Current().Len())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	cfg := loadConfig(t, dir)
	cfg.Server.Address = "127.0.0.1:0"

	a, err := New(context.Background(), cfg, testLogger(), Options{Intent: classifier(), Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
