package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GLee998/church-database-bot/internal/metrics"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/remote"
)

//go:generate moq -out spool_mock.go . Spool

// Spool persists the last fetched table for warm starts. It is a disposable cache.
type Spool interface {
	Save(ctx context.Context, table *remote.Table, fetchedAt time.Time) error
	Load(ctx context.Context) (*remote.Table, time.Time, error)
}

// ErrNoSpool is returned by Spool.Load when nothing was saved yet.
var ErrNoSpool = errors.New("no spooled snapshot")

// Listener is called after a snapshot is published.
type Listener func(*Snapshot)

// Config параметры синхронизации
type Config struct {
	Interval   time.Duration
	StaleAfter time.Duration
}

// Manager owns the current snapshot and refreshes it from the remote store.
// Current never blocks: readers load the published pointer while a sync builds the next snapshot.
type Manager struct {
	store     remote.Store
	schema    *models.Schema
	spool     Spool
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	current   atomic.Pointer[Snapshot]
	lastErr   atomic.Pointer[syncError]
	listeners map[int]Listener
	cfg       Config
	nextID    int
	syncMu    sync.Mutex   // одна синхронизация за раз
	listenMu  sync.RWMutex // защищает listeners
}

type syncError struct {
	err error
}

// NewManager creates a Manager serving an empty snapshot until the first sync.
// spool may be nil.
func NewManager(store remote.Store, schema *models.Schema, spool Spool, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Manager {
	mgr := &Manager{
		store:     store,
		schema:    schema,
		spool:     spool,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
		listeners: make(map[int]Listener),
		cfg:       cfg,
	}
	mgr.current.Store(emptySnapshot())
	return mgr
}

// SetClock overrides the time source. Intended for tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Schema returns the schema rows are validated against.
func (m *Manager) Schema() *models.Schema {
	return m.schema
}

// Current returns the latest published snapshot.
func (m *Manager) Current() *Snapshot {
	return m.current.Load()
}

// Age returns the age of the current snapshot.
func (m *Manager) Age() time.Duration {
	return m.Current().Age(m.now())
}

// Stale reports whether the current snapshot is older than StaleAfter.
func (m *Manager) Stale() bool {
	return m.Age() > m.cfg.StaleAfter
}

// LastError returns the error of the most recent sync, or nil if it succeeded.
func (m *Manager) LastError() error {
	e := m.lastErr.Load()
	if e == nil {
		return nil
	}
	return e.err
}

// Subscribe registers a listener. The returned function removes it.
func (m *Manager) Subscribe(l Listener) func() {
	m.listenMu.Lock()
	defer m.listenMu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = l

	return func() {
		m.listenMu.Lock()
		defer m.listenMu.Unlock()
		delete(m.listeners, id)
	}
}

// Sync fetches the sheet, builds a new snapshot and publishes it.
// On failure the previous snapshot keeps serving and the error is returned.
func (m *Manager) Sync(ctx context.Context) (*Snapshot, error) {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	start := m.now()
	table, err := m.store.FetchAll(ctx)
	m.metrics.ObserveSync(m.now().Sub(start), err)
	if err != nil {
		m.lastErr.Store(&syncError{err: err})
		m.logger.Warn("Sync failed, serving previous snapshot",
			"error", err,
			"snapshot_age", m.Age().String(),
			"stale", m.Stale())
		return m.Current(), fmt.Errorf("sync: %w", err)
	}

	snap := m.publish(table, m.now())
	m.lastErr.Store(nil)

	if m.spool != nil {
		if err := m.spool.Save(ctx, table, snap.FetchedAt); err != nil {
			m.logger.Warn("Failed to spool snapshot", "error", err)
		}
	}

	return snap, nil
}

// WarmStart publishes the spooled table, if any, so reads work before the first sync.
// The snapshot keeps its original fetch time and is therefore stale when old.
func (m *Manager) WarmStart(ctx context.Context) error {
	if m.spool == nil {
		return nil
	}

	table, fetchedAt, err := m.spool.Load(ctx)
	if errors.Is(err, ErrNoSpool) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load spool: %w", err)
	}

	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	// Не затираем более свежий снимок
	if !m.Current().FetchedAt.Before(fetchedAt) {
		return nil
	}
	snap := m.publish(table, fetchedAt)
	m.logger.Info("Warm start from spool", "records", snap.Len(), "fetched_at", fetchedAt)
	return nil
}

// Run syncs immediately and then every Interval until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	m.logger.Info("Sync loop started", "interval", m.cfg.Interval.String())

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		// Ошибка уже залогирована, следующая попытка по таймеру
		_, _ = m.Sync(ctx)

		select {
		case <-ctx.Done():
			m.logger.Info("Sync loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// publish decodes table, swaps the current snapshot and notifies listeners.
// Caller must hold syncMu.
func (m *Manager) publish(table *remote.Table, fetchedAt time.Time) *Snapshot {
	records, quarantined := decodeTable(table, m.schema)
	for _, q := range quarantined {
		m.logger.Warn("Row quarantined", "row", q.Row, "id", q.ID, "reason", q.Reason)
	}

	snap := NewSnapshot(records, quarantined, syncToken(table), fetchedAt)
	prev := m.current.Swap(snap)

	m.metrics.ObserveSnapshot(snap.Len(), len(quarantined), fetchedAt)
	m.logger.Info("Snapshot published",
		"records", snap.Len(),
		"quarantined", len(quarantined),
		"sync_token", snap.SyncToken,
		"changed", prev.SyncToken != snap.SyncToken)

	m.listenMu.RLock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.listenMu.RUnlock()

	for _, l := range listeners {
		l(snap)
	}

	return snap
}
