package write

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/metrics"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/remote"
	"github.com/GLee998/church-database-bot/internal/validation"
)

//go:generate moq -out source_mock.go . Source

// Source provides the snapshot writes are checked against and refreshes it after a commit.
type Source interface {
	Current() *cache.Snapshot
	Age() time.Duration
	Sync(ctx context.Context) (*cache.Snapshot, error)
}

// Config параметры записи
type Config struct {
	// MaxBaseAge отказ в записи, если снимок старше (0 - без ограничения)
	MaxBaseAge    time.Duration
	CommitTimeout time.Duration
}

// Outcome is the result of a finished write.
type Outcome struct {
	Write  *models.PendingWrite `json:"write"`
	Record *models.Record       `json:"record"`
}

// pending запись в процессе вместе с локально примененной версией
type pending struct {
	write   *models.PendingWrite
	overlay *models.Record
	started time.Time
}

// Coordinator validates writes, commits them to the remote store with optimistic
// concurrency and resyncs the snapshot after a commit.
type Coordinator struct {
	store     remote.Store
	source    Source
	validator *validation.Validator
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	inFlight  map[string]*pending
	cfg       Config
	mu        sync.Mutex // защищает inFlight
}

// NewCoordinator creates a Coordinator. store should already retry transient failures.
func NewCoordinator(store remote.Store, source Source, v *validation.Validator, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Coordinator {
	if cfg.CommitTimeout <= 0 {
		cfg.CommitTimeout = 30 * time.Second
	}
	return &Coordinator{
		store:     store,
		source:    source,
		validator: v,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
		inFlight:  make(map[string]*pending),
		cfg:       cfg,
	}
}

// SetClock overrides the time source. Intended for tests.
func (c *Coordinator) SetClock(now func() time.Time) {
	c.now = now
}

// Create proposes a new record.
func (c *Coordinator) Create(ctx context.Context, fields map[string]string) (*Outcome, error) {
	return c.Propose(ctx, models.NewRecordID, 0, fields)
}

// Update proposes new values for the record with id, based on expectedRevision.
func (c *Coordinator) Update(ctx context.Context, id string, expectedRevision int64, fields map[string]string) (*Outcome, error) {
	if id == "" || id == models.NewRecordID {
		return nil, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return c.Propose(ctx, id, expectedRevision, fields)
}

// Propose validates and commits a write. id is models.NewRecordID for creates.
//
// The write is applied to a private overlay first and committed with a conditional update.
// If ctx ends before the remote call returns, Propose returns ctx's error while the commit
// finishes in the background under its own timeout.
func (c *Coordinator) Propose(ctx context.Context, id string, expectedRevision int64, fields map[string]string) (*Outcome, error) {
	create := id == models.NewRecordID

	canonical, err := c.validator.Fields(fields, create)
	if err != nil {
		c.metrics.ObserveWrite(kind(create), "invalid")
		return nil, err
	}

	var base *models.Record
	if !create {
		snap := c.source.Current()
		rec, ok := snap.Get(id)
		if !ok {
			c.metrics.ObserveWrite(kind(create), "not-found")
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if rec.Revision != expectedRevision {
			c.metrics.ObserveWrite(kind(create), "stale")
			return nil, fmt.Errorf("%w: record %s is at revision %d, not %d", ErrStaleWrite, id, rec.Revision, expectedRevision)
		}
		if c.cfg.MaxBaseAge > 0 && snap.Age(c.now()) > c.cfg.MaxBaseAge {
			c.metrics.ObserveWrite(kind(create), "stale")
			return nil, fmt.Errorf("%w: snapshot is %s old", ErrStaleWrite, snap.Age(c.now()).Round(time.Second))
		}
		base = rec
	}

	w := models.NewPendingWrite(id, expectedRevision, canonical)
	key, err := c.acquire(w, base)
	if err != nil {
		c.metrics.ObserveWrite(kind(create), "in-progress")
		return nil, err
	}

	done := make(chan commitResult, 1)
	go func() {
		commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.CommitTimeout)
		defer cancel()

		res := c.commit(commitCtx, key)
		// Освобождаем id до ответа, чтобы повтор сразу видел новую ревизию
		c.release(key)
		done <- res
	}()

	select {
	case <-ctx.Done():
		c.logger.Info("Caller gave up on write, commit continues", "id", id)
		return nil, ctx.Err()
	case res := <-done:
		return res.outcome, res.err
	}
}

// Pending returns copies of writes that have not finished yet, oldest first.
func (c *Coordinator) Pending() []models.PendingWrite {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := make([]*pending, 0, len(c.inFlight))
	for _, p := range c.inFlight {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].started.Before(list[j].started)
	})

	out := make([]models.PendingWrite, 0, len(list))
	for _, p := range list {
		out = append(out, *p.write)
	}
	return out
}

// acquire registers the write and applies it to the overlay.
// Only one write per record id may be in flight; creates are keyed by a fresh uuid.
func (c *Coordinator) acquire(w *models.PendingWrite, base *models.Record) (string, error) {
	key := w.ID
	if w.IsCreate() {
		key = models.NewRecordID + ":" + uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[key]; busy {
		return "", fmt.Errorf("%w: %s", ErrWriteInProgress, w.ID)
	}

	overlay := &models.Record{Fields: make(map[string]string)}
	if base != nil {
		overlay = base.Clone()
	}
	for k, v := range w.Fields {
		if v == "" {
			delete(overlay.Fields, k)
			continue
		}
		overlay.Fields[k] = v
	}

	if err := w.Transition(models.WriteLocalApplied, models.StatusAppliedLocally); err != nil {
		return "", err
	}
	c.inFlight[key] = &pending{write: w, overlay: overlay, started: c.now()}
	return key, nil
}

func (c *Coordinator) release(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, key)
}

type commitResult struct {
	outcome *Outcome
	err     error
}

func (c *Coordinator) commit(ctx context.Context, key string) commitResult {
	c.mu.Lock()
	p := c.inFlight[key]
	w := p.write
	c.mu.Unlock()

	create := w.IsCreate()
	var (
		id     = w.ID
		newRev int64
		err    error
	)
	if create {
		id, err = c.store.Append(ctx, w.Fields)
		newRev = 1
	} else {
		newRev, err = c.store.Update(ctx, w.ID, w.BaseRevision, w.Fields)
	}

	if err != nil {
		status, wrapped := classify(err)
		c.finish(w, models.WriteRolledBack, status)
		c.metrics.ObserveWrite(kind(create), string(status))
		c.logger.Warn("Write rolled back", "id", w.ID, "base_revision", w.BaseRevision, "error", err)

		// После конфликта обновляем снимок, чтобы вызывающий увидел актуальную ревизию
		if errors.Is(err, remote.ErrConflict) || errors.Is(err, remote.ErrNotFound) {
			if _, serr := c.source.Sync(ctx); serr != nil {
				c.logger.Warn("Resync after conflict failed", "error", serr)
			}
		}
		return commitResult{outcome: &Outcome{Write: snapshotOf(w)}, err: wrapped}
	}

	c.finish(w, models.WriteCommitted, models.StatusCommitted)
	c.mu.Lock()
	w.ID = id
	w.NewRevision = newRev
	c.mu.Unlock()
	c.metrics.ObserveWrite(kind(create), string(models.StatusCommitted))
	c.logger.Info("Write committed", "id", id, "revision", newRev, "create", create)

	record := p.overlay.Clone()
	record.ID = id
	record.Revision = newRev

	snap, serr := c.source.Sync(ctx)
	if serr != nil {
		c.logger.Warn("Resync after commit failed, snapshot lags behind", "error", serr)
	} else if fresh, ok := snap.Get(id); ok {
		record = fresh
	}

	return commitResult{outcome: &Outcome{Write: snapshotOf(w), Record: record}}
}

func (c *Coordinator) finish(w *models.PendingWrite, to models.WriteState, status models.WriteStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := w.Transition(to, status); err != nil {
		c.logger.Error("Invalid write transition", "id", w.ID, "error", err)
	}
}

func snapshotOf(w *models.PendingWrite) *models.PendingWrite {
	cp := *w
	return &cp
}

// classify maps a remote error to the caller-visible status and error kind
func classify(err error) (models.WriteStatus, error) {
	switch {
	case errors.Is(err, remote.ErrConflict):
		return models.StatusRejectedConflict, fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, remote.ErrNotFound):
		return models.StatusRejectedRemoteError, fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, remote.ErrRejected):
		return models.StatusRejectedRemoteError, fmt.Errorf("%w: %w", ErrRemoteRejected, err)
	default:
		return models.StatusRejectedRemoteError, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}
}

func kind(create bool) string {
	if create {
		return "create"
	}
	return "update"
}
