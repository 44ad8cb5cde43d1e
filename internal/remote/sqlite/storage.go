package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/GLee998/church-database-bot/internal/models"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// columns соответствие ключей схемы колонкам таблицы roster
var columns = map[string]string{
	models.FieldFirstName:    "first_name",
	models.FieldLastName:     "last_name",
	models.FieldBirthDate:    "birth_date",
	models.FieldGroup:        "home_group",
	models.FieldStatus:       "status",
	models.FieldRegisteredAt: "registered_at",
	models.FieldPhoto:        "photo",
}

// Store emulates the roster sheet in a SQLite database.
// Used for local mode, seeding and tests.
type Store struct {
	db     *sql.DB
	schema *models.Schema
}

// New creates a new SQLite-backed store.
// Use ":memory:" for an in-memory database (useful for testing)
func New(ctx context.Context, dbPath string, schema *models.Schema) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite допускает одного писателя, условное обновление опирается на это
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{db: db, schema: schema}

	if err := store.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations выполняет миграции из embedded FS
func (s *Store) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// DB returns the underlying database connection for testing purposes
func (s *Store) DB() *sql.DB {
	return s.db
}
