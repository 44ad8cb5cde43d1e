package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/remote"
)

var (
	// BoltDB bucket names
	bucketSnapshot = []byte("snapshot")

	keyTable     = []byte("table")
	keyFetchedAt = []byte("fetched_at")
)

// Spool stores the last fetched sheet in a BoltDB file for warm starts.
type Spool struct {
	db *bbolt.DB
}

// New opens (or creates) the spool file at dbPath.
func New(dbPath string) (*Spool, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSnapshot); err != nil {
			return fmt.Errorf("failed to create snapshot bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &Spool{db: db}, nil
}

// Close closes the database file
func (s *Spool) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces the spooled table.
func (s *Spool) Save(ctx context.Context, table *remote.Table, fetchedAt time.Time) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(fetchedAt.UnixNano()))

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshot)
		if bucket == nil {
			return fmt.Errorf("snapshot bucket not found")
		}

		if err := bucket.Put(keyTable, data); err != nil {
			return fmt.Errorf("failed to save table: %w", err)
		}
		if err := bucket.Put(keyFetchedAt, ts); err != nil {
			return fmt.Errorf("failed to save fetch time: %w", err)
		}
		return nil
	})
}

// Load returns the spooled table and its fetch time, or cache.ErrNoSpool.
func (s *Spool) Load(ctx context.Context) (*remote.Table, time.Time, error) {
	var (
		table     remote.Table
		fetchedAt time.Time
	)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshot)
		if bucket == nil {
			return fmt.Errorf("snapshot bucket not found")
		}

		data := bucket.Get(keyTable)
		ts := bucket.Get(keyFetchedAt)
		if data == nil || len(ts) != 8 {
			return cache.ErrNoSpool
		}

		// data валидна только внутри транзакции, Unmarshal копирует значения
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("failed to unmarshal table: %w", err)
		}
		fetchedAt = time.Unix(0, int64(binary.BigEndian.Uint64(ts)))
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}

	return &table, fetchedAt, nil
}

var _ cache.Spool = (*Spool)(nil)
