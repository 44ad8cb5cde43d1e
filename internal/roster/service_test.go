package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/query"
	"github.com/GLee998/church-database-bot/internal/remote/sqlite"
	"github.com/GLee998/church-database-bot/internal/validation"
	"github.com/GLee998/church-database-bot/internal/write"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSchema() *models.Schema {
	return models.NewSchema([]string{"Youth", "Family"}, nil, "")
}

// newService собирает сервис поверх sqlite хранилища
func newService(t *testing.T, store *sqlite.Store, svc intent.Service) *Service {
	t.Helper()
	schema := testSchema()
	logger := testLogger()

	mgr := cache.NewManager(store, schema, nil, cache.Config{Interval: time.Minute, StaleAfter: time.Hour}, logger, nil)
	resolver := intent.NewResolver(svc, schema, intent.Config{Timeout: time.Second}, logger, nil)
	executor := query.NewExecutor(schema, time.UTC, 0)
	coord := write.NewCoordinator(store, mgr, validation.New(schema), write.Config{CommitTimeout: 5 * time.Second}, logger, nil)

	s := New(mgr, resolver, executor, coord, logger)
	_, err := s.Reload(context.Background())
	require.NoError(t, err)
	return s
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(context.Background(), ":memory:", testSchema())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// seedFixture пять человек, трое в Youth
func seedFixture(t *testing.T, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()
	people := []map[string]string{
		{models.FieldFirstName: "Анна", models.FieldLastName: "Петрова", models.FieldGroup: "Youth", models.FieldBirthDate: "1990-01-02"},
		{models.FieldFirstName: "Борис", models.FieldLastName: "Иванов", models.FieldGroup: "Family", models.FieldBirthDate: "1985-12-31"},
		{models.FieldFirstName: "Вера", models.FieldLastName: "Сидорова", models.FieldGroup: "Youth", models.FieldBirthDate: "2001-02-01"},
		{models.FieldFirstName: "Глеб", models.FieldLastName: "Орлов", models.FieldGroup: "Youth"},
		{models.FieldFirstName: "Дарья", models.FieldLastName: "Смирнова"},
	}
	for _, p := range people {
		_, err := store.Append(ctx, p)
		require.NoError(t, err)
	}
}

// classifier отвечает на вопросы фиксированными интентами
func classifier() *intent.ServiceMock {
	return &intent.ServiceMock{
		ResolveIntentFunc: func(ctx context.Context, question, schemaDescription string) (string, error) {
			switch question {
			case "how many people are in the Youth group?":
				return `{"operation":"count","predicates":[{"field":"group","operator":"eq","value":"Youth"}]}`, nil
			default:
				return `{"operation":"unsupported"}`, nil
			}
		},
	}
}

func TestService_Ask(t *testing.T) {
	store := newStore(t)
	seedFixture(t, store)
	s := newService(t, store, classifier())

	res, err := s.Ask(context.Background(), "how many people are in the Youth group?")
	require.NoError(t, err)
	assert.Equal(t, models.ResultCount, res.Kind)
	assert.Equal(t, 3, res.Count)

	_, err = s.Ask(context.Background(), "what is the capital of France?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, intent.ErrUnrecognizedIntent))
}

func TestService_CreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	seedFixture(t, store)
	s := newService(t, store, classifier())

	fields := map[string]string{
		models.FieldFirstName: "Евлампий",
		models.FieldLastName:  "Кузнецов",
		models.FieldGroup:     "Family",
		models.FieldBirthDate: "1970-05-05",
	}
	out, err := s.CreateRecord(ctx, fields)
	require.NoError(t, err)
	id := out.Record.ID

	_, err = s.Reload(ctx)
	require.NoError(t, err)

	found := s.Search("евлампий", 0)
	require.Len(t, found, 1)
	assert.Equal(t, id, found[0].ID)
	for k, v := range fields {
		assert.Equal(t, v, found[0].Field(k), k)
	}
}

func TestService_SearchLimit(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	for i := 0; i < 25; i++ {
		_, err := store.Append(ctx, map[string]string{
			models.FieldFirstName: fmt.Sprintf("Имя%02d", i),
			models.FieldLastName:  "Тестов",
		})
		require.NoError(t, err)
	}
	s := newService(t, store, classifier())

	all := s.Search("", 0)
	require.Len(t, all, 25)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Row, all[i].Row)
	}

	assert.Len(t, s.Search("", -1), 25)
	assert.Len(t, s.Search("тестов", 10), 10)
}

func TestService_ConcurrentUpdatesSameRevision(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	seedFixture(t, store)
	s := newService(t, store, classifier())

	anna := s.Search("анна", 1)[0]

	type attempt struct {
		out *write.Outcome
		err error
	}
	results := make(chan attempt, 2)
	for _, status := range []string{"вип", "неактивный"} {
		go func() {
			out, err := s.UpdateRecord(ctx, anna.ID, anna.Revision, map[string]string{models.FieldStatus: status})
			results <- attempt{out: out, err: err}
		}()
	}

	var winner *write.Outcome
	failures := 0
	for range 2 {
		r := <-results
		if r.err == nil {
			winner = r.out
			continue
		}
		failures++
		assert.True(t,
			errors.Is(r.err, write.ErrConflict) || errors.Is(r.err, write.ErrStaleWrite) || errors.Is(r.err, write.ErrWriteInProgress),
			"unexpected error: %v", r.err)
	}

	require.NotNil(t, winner)
	assert.Equal(t, 1, failures)

	got, err := s.Get(anna.ID)
	require.NoError(t, err)
	assert.Equal(t, anna.Revision+1, got.Revision)
	assert.Equal(t, winner.Record.Field(models.FieldStatus), got.Field(models.FieldStatus))
}

func TestService_ConflictAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	seedFixture(t, store)

	// Два процесса с одним удаленным хранилищем
	first := newService(t, store, classifier())
	second := newService(t, store, classifier())

	anna := first.Search("анна", 1)[0]

	_, err := first.UpdateRecord(ctx, anna.ID, anna.Revision, map[string]string{models.FieldStatus: "вип"})
	require.NoError(t, err)

	out, err := second.UpdateRecord(ctx, anna.ID, anna.Revision, map[string]string{models.FieldStatus: "неактивный"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, write.ErrConflict))
	assert.Equal(t, models.StatusRejectedConflict, out.Write.Status)

	// Повтор на старой ревизии теперь отклоняется локально
	_, err = second.UpdateRecord(ctx, anna.ID, anna.Revision, map[string]string{models.FieldStatus: "неактивный"})
	assert.True(t, errors.Is(err, write.ErrStaleWrite))

	got, err := second.Get(anna.ID)
	require.NoError(t, err)
	assert.Equal(t, "вип", got.Field(models.FieldStatus))
}

func TestService_SyncIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	seedFixture(t, store)
	s := newService(t, store, classifier())

	before := s.manager.Current()
	_, err := s.Reload(ctx)
	require.NoError(t, err)
	after := s.manager.Current()

	assert.Equal(t, before.SyncToken, after.SyncToken)
	require.Equal(t, before.Len(), after.Len())
	for i := range before.Records {
		assert.True(t, before.Records[i].Equal(after.Records[i]))
	}
	for _, prefix := range []string{"", "а", "пет", "x"} {
		assert.Equal(t, ids(before.Search(prefix, 0)), ids(after.Search(prefix, 0)), prefix)
	}
}

func TestService_Browse(t *testing.T) {
	store := newStore(t)
	seedFixture(t, store)
	s := newService(t, store, classifier())

	assert.Equal(t, []string{"А", "Б", "В", "Г", "Д"}, s.Letters())
	require.Len(t, s.ByLetter("б"), 1)

	groups := s.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, models.DefaultUnassignedGroup, groups[2].Name)

	feb := s.BirthdaysByMonth(time.February)
	require.Len(t, feb, 1)
	assert.Equal(t, "Вера Сидорова", feb[0].Label)
}

func TestService_GetAndStats(t *testing.T) {
	store := newStore(t)
	seedFixture(t, store)
	s := newService(t, store, classifier())

	_, err := s.Get("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	st := s.Stats()
	assert.Equal(t, 5, st.Records)
	assert.False(t, st.Stale)
	assert.Empty(t, st.LastError)
	assert.NotEmpty(t, st.SyncToken)
	assert.Less(t, s.SnapshotAge(), time.Minute)
}

func TestService_Execute(t *testing.T) {
	store := newStore(t)
	seedFixture(t, store)
	s := newService(t, store, classifier())

	res, err := s.Execute(&models.QueryIntent{
		Operation:  models.OpListByGroup,
		Predicates: []models.Predicate{{Field: models.FieldGroup, Operator: models.OperatorEq, Value: "youth"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	_, err = s.Execute(&models.QueryIntent{Operation: models.OpLookupByName})
	assert.True(t, errors.Is(err, intent.ErrInvalidIntent))
}

func ids(records []*models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
