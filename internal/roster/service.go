// Package roster is the caller-facing API of the roster core: search, questions and writes
// over the locally mirrored spreadsheet.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/query"
	"github.com/GLee998/church-database-bot/internal/write"
)

// Stats состояние зеркала реестра
type Stats struct {
	FetchedAt     time.Time             `json:"fetched_at"`
	LastError     string                `json:"last_error,omitempty"`
	SyncToken     string                `json:"sync_token"`
	Quarantined   []cache.Quarantine    `json:"quarantined,omitempty"`
	PendingWrites []models.PendingWrite `json:"pending_writes,omitempty"`
	SnapshotAge   time.Duration         `json:"snapshot_age"`
	Records       int                   `json:"records"`
	Stale         bool                  `json:"stale"`
}

// Service wires the snapshot manager, intent resolver, executor and write coordinator.
type Service struct {
	manager  *cache.Manager
	resolver *intent.Resolver
	executor *query.Executor
	writes   *write.Coordinator
	logger   *slog.Logger
}

// New creates a Service.
func New(manager *cache.Manager, resolver *intent.Resolver, executor *query.Executor, writes *write.Coordinator, logger *slog.Logger) *Service {
	return &Service{
		manager:  manager,
		resolver: resolver,
		executor: executor,
		writes:   writes,
		logger:   logger,
	}
}

// Schema returns the roster schema.
func (s *Service) Schema() *models.Schema {
	return s.manager.Schema()
}

// Search returns records matching the name prefix. It never touches the network.
// limit <= 0 means no limit; an empty prefix returns every record in sheet order.
func (s *Service) Search(prefix string, limit int) []*models.Record {
	return s.manager.Current().Search(prefix, limit)
}

// Get returns a record by id.
func (s *Service) Get(id string) (*models.Record, error) {
	rec, ok := s.manager.Current().Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, nil
}

// Ask answers a free-text question. The question is resolved to an intent by the AI service
// and evaluated locally against the current snapshot.
func (s *Service) Ask(ctx context.Context, question string) (*models.Result, error) {
	qi, err := s.resolver.Resolve(ctx, question)
	if err != nil {
		return nil, err
	}

	res, err := s.executor.Execute(qi, s.manager.Current())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Question answered", "operation", res.Operation, "count", res.Count)
	return res, nil
}

// Execute evaluates an already validated intent. Used by callers that build intents themselves.
func (s *Service) Execute(qi *models.QueryIntent) (*models.Result, error) {
	valid, err := intent.Validate(qi, s.Schema())
	if err != nil {
		return nil, err
	}
	return s.executor.Execute(valid, s.manager.Current())
}

// CreateRecord adds a new person to the roster.
func (s *Service) CreateRecord(ctx context.Context, fields map[string]string) (*write.Outcome, error) {
	return s.writes.Create(ctx, fields)
}

// UpdateRecord changes fields of an existing record. expectedRevision is the revision the caller saw.
func (s *Service) UpdateRecord(ctx context.Context, id string, expectedRevision int64, fields map[string]string) (*write.Outcome, error) {
	return s.writes.Update(ctx, id, expectedRevision, fields)
}

// SnapshotAge returns how old the data being served is.
func (s *Service) SnapshotAge() time.Duration {
	return s.manager.Age()
}

// Stale reports whether the snapshot is older than the configured freshness bound.
func (s *Service) Stale() bool {
	return s.manager.Stale()
}

// Today returns the reference date used for ages and birthdays.
func (s *Service) Today() models.Date {
	return s.executor.Today()
}

// Letters returns the first letters of first names present in the roster.
func (s *Service) Letters() []string {
	return query.Letters(s.manager.Current())
}

// ByLetter lists people whose first name starts with letter.
func (s *Service) ByLetter(letter string) []query.Entry {
	return query.ByLetter(s.manager.Current(), letter)
}

// Groups lists home groups with their members.
func (s *Service) Groups() []query.GroupListing {
	return query.Groups(s.manager.Current(), s.Schema(), s.executor.Today())
}

// BirthdaysByMonth lists people born in month.
func (s *Service) BirthdaysByMonth(month time.Month) []query.Entry {
	return query.BirthdaysByMonth(s.manager.Current(), month, s.executor.Today())
}

// Stats reports the state of the mirror.
func (s *Service) Stats() Stats {
	snap := s.manager.Current()
	st := Stats{
		FetchedAt:     snap.FetchedAt,
		SyncToken:     snap.SyncToken,
		Quarantined:   snap.Quarantined,
		PendingWrites: s.writes.Pending(),
		SnapshotAge:   s.manager.Age(),
		Records:       snap.Len(),
		Stale:         s.manager.Stale(),
	}
	if err := s.manager.LastError(); err != nil {
		st.LastError = err.Error()
	}
	return st
}

// Reload forces a sync with the remote store.
func (s *Service) Reload(ctx context.Context) (Stats, error) {
	_, err := s.manager.Sync(ctx)
	return s.Stats(), err
}

// Subscribe registers fn to be called with every published snapshot.
func (s *Service) Subscribe(fn cache.Listener) func() {
	return s.manager.Subscribe(fn)
}
