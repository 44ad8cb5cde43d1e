package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/remote"
)

// Config параметры доступа к таблице
type Config struct {
	SpreadsheetID   string
	Sheet           string
	CredentialsFile string
}

// Store is a remote.Store backed by a Google Sheets worksheet.
// The first row holds headers; rows carry ID and Revision bookkeeping columns.
type Store struct {
	svc    *sheetsapi.Service
	schema *models.Schema
	logger *slog.Logger
	cfg    Config
	// mu сериализует условные обновления внутри процесса:
	// Sheets API не умеет сравнивать и записывать атомарно
	mu sync.Mutex
}

// New creates a Sheets-backed store. Extra client options are appended after the credentials.
func New(ctx context.Context, cfg Config, schema *models.Schema, logger *slog.Logger, opts ...option.ClientOption) (*Store, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	if cfg.Sheet == "" {
		cfg.Sheet = "Sheet1"
	}

	var clientOpts []option.ClientOption
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := sheetsapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Store{
		svc:    svc,
		schema: schema,
		logger: logger,
		cfg:    cfg,
	}, nil
}

// FetchAll reads the whole worksheet.
func (s *Store) FetchAll(ctx context.Context) (*remote.Table, error) {
	values, err := s.readValues(ctx, s.cfg.Sheet)
	if err != nil {
		return nil, err
	}

	table := &remote.Table{}
	if len(values) == 0 {
		return table, nil
	}

	table.Headers = values[0]
	table.Rows = values[1:]
	return table, nil
}

// Append adds a row at the end of the sheet with a fresh id and revision 1.
func (s *Store) Append(ctx context.Context, fields map[string]string) (string, error) {
	headers, err := s.readValues(ctx, s.cfg.Sheet+"!1:1")
	if err != nil {
		return "", err
	}
	if len(headers) == 0 {
		return "", fmt.Errorf("%w: sheet %s has no header row", remote.ErrRejected, s.cfg.Sheet)
	}

	id := uuid.NewString()
	row, err := s.buildRow(headers[0], make([]string, len(headers[0])), fields)
	if err != nil {
		return "", err
	}
	if !setCell(headers[0], row, models.ColumnID, id) || !setCell(headers[0], row, models.ColumnRevision, "1") {
		return "", fmt.Errorf("%w: sheet %s lacks %s/%s columns", remote.ErrRejected, s.cfg.Sheet, models.ColumnID, models.ColumnRevision)
	}

	_, err = s.svc.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, s.cfg.Sheet+"!A1", &sheetsapi.ValueRange{
		Values: [][]interface{}{toInterfaces(row)},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return "", classify(fmt.Errorf("append row: %w", err))
	}

	s.logger.Debug("Row appended", "id", id)
	return id, nil
}

// Update re-reads the row's Revision cell and writes the row only if it equals baseRevision.
func (s *Store) Update(ctx context.Context, id string, baseRevision int64, fields map[string]string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.FetchAll(ctx)
	if err != nil {
		return 0, err
	}

	idx := -1
	for i := range table.Rows {
		if table.Cell(i, models.ColumnID) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s", remote.ErrNotFound, id)
	}

	current, err := strconv.ParseInt(strings.TrimSpace(table.Cell(idx, models.ColumnRevision)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: row %s has invalid revision", remote.ErrRejected, id)
	}
	if current != baseRevision {
		return 0, fmt.Errorf("%w: %s stored revision %d, base %d", remote.ErrConflict, id, current, baseRevision)
	}

	existing := make([]string, len(table.Headers))
	copy(existing, table.Rows[idx])

	row, err := s.buildRow(table.Headers, existing, fields)
	if err != nil {
		return 0, err
	}
	newRevision := current + 1
	setCell(table.Headers, row, models.ColumnRevision, strconv.FormatInt(newRevision, 10))

	// +2: строка заголовков и нумерация с единицы
	sheetRow := idx + 2
	rng := fmt.Sprintf("%s!A%d:%s%d", s.cfg.Sheet, sheetRow, columnLetter(len(table.Headers)), sheetRow)

	_, err = s.svc.Spreadsheets.Values.Update(s.cfg.SpreadsheetID, rng, &sheetsapi.ValueRange{
		Values: [][]interface{}{toInterfaces(row)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return 0, classify(fmt.Errorf("update row %s: %w", id, err))
	}

	return newRevision, nil
}

func (s *Store) readValues(ctx context.Context, rng string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, classify(fmt.Errorf("read %s: %w", rng, err))
	}

	values := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprint(v)
		}
		values = append(values, row)
	}
	return values, nil
}

// buildRow places field values into row according to headers
func (s *Store) buildRow(headers, row []string, fields map[string]string) ([]string, error) {
	if len(row) < len(headers) {
		row = append(row, make([]string, len(headers)-len(row))...)
	}

	for key, value := range fields {
		def, ok := s.schema.Field(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", remote.ErrRejected, key)
		}
		if !setCell(headers, row, def.Header, value) {
			return nil, fmt.Errorf("%w: sheet has no column %q", remote.ErrRejected, def.Header)
		}
	}
	return row, nil
}

func setCell(headers, row []string, header, value string) bool {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), header) {
			row[i] = value
			return true
		}
	}
	return false
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// columnLetter returns the A1 column name for a 1-based column number
func columnLetter(n int) string {
	var letters []byte
	for n > 0 {
		n--
		letters = append([]byte{byte('A' + n%26)}, letters...)
		n /= 26
	}
	return string(letters)
}

// classify maps API errors onto remote store errors
func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusTooManyRequests, gerr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %w", remote.ErrUnavailable, err)
		default:
			return fmt.Errorf("%w: %w", remote.ErrRejected, err)
		}
	}
	// Сетевые ошибки и таймауты считаем временными
	return fmt.Errorf("%w: %w", remote.ErrUnavailable, err)
}

var _ remote.Store = (*Store)(nil)
