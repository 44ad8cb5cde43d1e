package cache

import (
	"time"

	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/search"
)

// Quarantine строка таблицы, исключенная из снимка
type Quarantine struct {
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
	Row    int    `json:"row"`
}

// Snapshot is an immutable point-in-time mirror of the roster.
// Records and the index must not be modified after publication.
type Snapshot struct {
	FetchedAt   time.Time
	byID        map[string]*models.Record
	Index       *search.Index
	SyncToken   string
	Records     []*models.Record // в порядке строк таблицы
	Quarantined []Quarantine
}

// NewSnapshot builds an immutable snapshot and its search index.
func NewSnapshot(records []*models.Record, quarantined []Quarantine, token string, fetchedAt time.Time) *Snapshot {
	byID := make(map[string]*models.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	return &Snapshot{
		FetchedAt:   fetchedAt,
		byID:        byID,
		Index:       search.NewIndex(records),
		SyncToken:   token,
		Records:     records,
		Quarantined: quarantined,
	}
}

// emptySnapshot is published before the first sync so readers never see nil.
func emptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil, "", time.Time{})
}

// Get returns the record with id.
func (s *Snapshot) Get(id string) (*models.Record, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.Records)
}

// Age returns how long ago the snapshot was fetched. A never-synced snapshot has infinite age.
func (s *Snapshot) Age(now time.Time) time.Duration {
	if s.FetchedAt.IsZero() {
		return time.Duration(1<<63 - 1)
	}
	return now.Sub(s.FetchedAt)
}

// Search runs a prefix query against the snapshot's index.
func (s *Snapshot) Search(prefix string, limit int) []*models.Record {
	return s.Index.Query(prefix, limit)
}
