package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GLee998/church-database-bot/internal/remote"
)

// FetchAll reads all rows in sheet order. Headers follow the schema's sheet header row.
func (s *Store) FetchAll(ctx context.Context) (*remote.Table, error) {
	keys := s.schema.Keys()

	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, columns[k])
	}

	query := fmt.Sprintf(`SELECT id, revision, %s FROM roster ORDER BY row_num`, strings.Join(cols, ", "))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to query roster: %w", err))
	}
	defer rows.Close()

	table := &remote.Table{Headers: s.schema.Headers()}

	for rows.Next() {
		var (
			id       string
			revision int64
		)
		values := make([]string, len(keys))
		dest := []any{&id, &revision}
		for i := range values {
			dest = append(dest, &values[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, classify(fmt.Errorf("failed to scan row: %w", err))
		}

		row := append([]string{id, strconv.FormatInt(revision, 10)}, values...)
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("rows iteration error: %w", err))
	}

	return table, nil
}

// Append inserts a row with a fresh id and revision 1.
func (s *Store) Append(ctx context.Context, fields map[string]string) (string, error) {
	id := uuid.NewString()
	if err := s.insert(ctx, id, 1, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Seed inserts rows as they are, keeping the given id and revision when present.
// Used to load fixtures.
func (s *Store) Seed(ctx context.Context, id string, revision int64, fields map[string]string) error {
	if id == "" {
		id = uuid.NewString()
	}
	if revision <= 0 {
		revision = 1
	}
	return s.insert(ctx, id, revision, fields)
}

func (s *Store) insert(ctx context.Context, id string, revision int64, fields map[string]string) error {
	cols := []string{"id", "revision", "updated_at"}
	args := []any{id, revision, time.Now().Unix()}

	for _, key := range sortedKeys(fields) {
		col, ok := columns[key]
		if !ok {
			return fmt.Errorf("%w: unknown field %q", remote.ErrRejected, key)
		}
		cols = append(cols, col)
		args = append(args, fields[key])
	}

	query := fmt.Sprintf(`INSERT INTO roster (%s) VALUES (%s)`,
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return classify(fmt.Errorf("failed to insert row: %w", err))
	}
	return nil
}

// Update writes fields if the stored revision equals baseRevision.
// The check and the write are a single statement, so concurrent updates cannot both succeed.
func (s *Store) Update(ctx context.Context, id string, baseRevision int64, fields map[string]string) (int64, error) {
	sets := []string{"revision = revision + 1", "updated_at = ?"}
	args := []any{time.Now().Unix()}

	for _, key := range sortedKeys(fields) {
		col, ok := columns[key]
		if !ok {
			return 0, fmt.Errorf("%w: unknown field %q", remote.ErrRejected, key)
		}
		sets = append(sets, col+" = ?")
		args = append(args, fields[key])
	}
	args = append(args, id, baseRevision)

	query := fmt.Sprintf(`UPDATE roster SET %s WHERE id = ? AND revision = ?`, strings.Join(sets, ", "))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to update row: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, classify(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if affected == 1 {
		return baseRevision + 1, nil
	}

	// Строка не обновлена: либо ее нет, либо ревизия уже другая
	var current int64
	err = s.db.QueryRowContext(ctx, `SELECT revision FROM roster WHERE id = ?`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", remote.ErrNotFound, id)
	}
	if err != nil {
		return 0, classify(fmt.Errorf("failed to read revision: %w", err))
	}

	return 0, fmt.Errorf("%w: %s stored revision %d, base %d", remote.ErrConflict, id, current, baseRevision)
}

// classify maps database failures onto remote store errors:
// constraint violations are rejections, everything else is transient
func classify(err error) error {
	if strings.Contains(err.Error(), "constraint failed") {
		return fmt.Errorf("%w: %w", remote.ErrRejected, err)
	}
	return fmt.Errorf("%w: %w", remote.ErrUnavailable, err)
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// compile-time check
var _ remote.Store = (*Store)(nil)
