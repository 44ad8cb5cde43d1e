package remote

import "context"

//go:generate moq -out store_mock.go . Store

// Store is the typed boundary to the spreadsheet-backed remote store.
// Field maps are keyed by schema field keys; values are canonical text.
type Store interface {
	// FetchAll reads the whole sheet.
	FetchAll(ctx context.Context) (*Table, error)
	// Append adds a row and returns the id assigned to it.
	Append(ctx context.Context, fields map[string]string) (string, error)
	// Update writes fields to the row with id if its stored revision equals baseRevision.
	// Returns the new revision, or ErrConflict when the stored revision differs.
	Update(ctx context.Context, id string, baseRevision int64, fields map[string]string) (int64, error)
}

// Table содержимое листа: строка заголовков и строки данных в порядке таблицы
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Cell returns the value in row i under header h, or "" when absent.
func (t *Table) Cell(i int, h string) string {
	for j, header := range t.Headers {
		if header == h {
			if j < len(t.Rows[i]) {
				return t.Rows[i][j]
			}
			return ""
		}
	}
	return ""
}
