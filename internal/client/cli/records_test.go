package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/client/api"
	apimodels "github.com/GLee998/church-database-bot/pkg/api"
)

func TestSearchCommand(t *testing.T) {
	io, out := newTestIO()
	client := &ClientMock{
		SearchFunc: func(ctx context.Context, prefix string, limit int) (*apimodels.SearchResponse, error) {
			assert.Equal(t, "Ан Пет", prefix)
			assert.Equal(t, 5, limit)
			return &apimodels.SearchResponse{
				Records: []apimodels.Record{
					{ID: "r1", Group: "Youth", Fields: map[string]string{"first_name": "Анна", "last_name": "Петрова"}},
				},
				Count:        1,
				SnapshotInfo: apimodels.SnapshotInfo{AgeSeconds: 7200, Stale: true},
			}, nil
		},
	}

	require.NoError(t, run(t, client, io, "search", "--limit", "5", "Ан", "Пет"))

	assert.Contains(t, out.String(), "Warning: data may be out of date (last sync 2h0m0s ago)")
	assert.Contains(t, out.String(), "Анна Петрова (Youth)")
}

func TestSearchCommand_NothingFound(t *testing.T) {
	io, out := newTestIO()
	client := &ClientMock{
		SearchFunc: func(ctx context.Context, prefix string, limit int) (*apimodels.SearchResponse, error) {
			return &apimodels.SearchResponse{}, nil
		},
	}

	require.NoError(t, run(t, client, io, "search", "Щ"))
	assert.Equal(t, "Nothing found.\n", out.String())
}

func TestGetCommand(t *testing.T) {
	io, out := newTestIO()
	age := 35
	client := &ClientMock{
		GetRecordFunc: func(ctx context.Context, id string) (*apimodels.RecordResponse, error) {
			return &apimodels.RecordResponse{Record: apimodels.Record{
				ID:       id,
				Revision: 3,
				Age:      &age,
				Fields:   map[string]string{"first_name": "Анна", "last_name": "Петрова", "group": "Youth"},
			}}, nil
		},
		SchemaFunc: func(ctx context.Context) (*apimodels.SchemaResponse, error) {
			return testSchema(), nil
		},
	}

	require.NoError(t, run(t, client, io, "get", "r1"))

	text := out.String()
	assert.Contains(t, text, "=== Анна Петрова ===")
	assert.Contains(t, text, "Revision: 3")
	assert.Contains(t, text, "Имя:      Анна")
	assert.Contains(t, text, "Домашка:  Youth")
	assert.Contains(t, text, "Age:      35")
	assert.Less(t, strings.Index(text, "Имя:"), strings.Index(text, "Фамилия:"))
}

func TestGetCommand_NotFound(t *testing.T) {
	io, _ := newTestIO()
	client := &ClientMock{
		GetRecordFunc: func(ctx context.Context, id string) (*apimodels.RecordResponse, error) {
			return nil, &api.Error{StatusCode: 404, Code: apimodels.CodeNotFound, Message: "record not found"}
		},
	}

	err := run(t, client, io, "get", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record not found")
}

func TestAddCommand_Flags(t *testing.T) {
	io, out := newTestIO()
	client := &ClientMock{
		CreateRecordFunc: func(ctx context.Context, fields map[string]string) (*apimodels.WriteResponse, error) {
			assert.Equal(t, map[string]string{"first_name": "Евлампий", "group": "Family"}, fields)
			return &apimodels.WriteResponse{
				ID:          "new",
				NewRevision: 1,
				Record:      &apimodels.Record{ID: "r9", Fields: fields},
			}, nil
		},
	}

	require.NoError(t, run(t, client, io, "add", "-f", "first_name=Евлампий", "--field", "group=Family"))

	assert.Contains(t, out.String(), "Added: Евлампий")
	assert.Contains(t, out.String(), "ID:       r9")
	assert.Empty(t, client.SchemaCalls())
}

func TestAddCommand_Interactive(t *testing.T) {
	io, _ := newTestIO("Анна", "", "Youth")
	client := &ClientMock{
		SchemaFunc: func(ctx context.Context) (*apimodels.SchemaResponse, error) {
			return testSchema(), nil
		},
		CreateRecordFunc: func(ctx context.Context, fields map[string]string) (*apimodels.WriteResponse, error) {
			return &apimodels.WriteResponse{ID: "r10", NewRevision: 1}, nil
		},
	}

	require.NoError(t, run(t, client, io, "add"))

	calls := client.CreateRecordCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]string{"first_name": "Анна", "group": "Youth"}, calls[0].Fields)
}

func TestAddCommand_RequiredMissing(t *testing.T) {
	io, _ := newTestIO("")
	client := &ClientMock{
		SchemaFunc: func(ctx context.Context) (*apimodels.SchemaResponse, error) {
			return testSchema(), nil
		},
	}

	err := run(t, client, io, "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Имя cannot be empty")
	assert.Empty(t, client.CreateRecordCalls())
}

func TestEditCommand(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		inputs       []string
		wantRevision int64
		wantFields   map[string]string
		wantGet      int
	}{
		{
			name:         "fields with current revision",
			args:         []string{"edit", "r1", "-f", "group=Family"},
			wantRevision: 3,
			wantFields:   map[string]string{"group": "Family"},
			wantGet:      1,
		},
		{
			name:         "explicit revision",
			args:         []string{"edit", "r1", "--revision", "5", "-f", "group=Family"},
			wantRevision: 5,
			wantFields:   map[string]string{"group": "Family"},
			wantGet:      0,
		},
		{
			name:         "interactive keeps and clears",
			args:         []string{"edit", "r1"},
			inputs:       []string{"", "-", "Family"},
			wantRevision: 3,
			wantFields:   map[string]string{"last_name": "", "group": "Family"},
			wantGet:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			io, out := newTestIO(tt.inputs...)
			client := &ClientMock{
				GetRecordFunc: func(ctx context.Context, id string) (*apimodels.RecordResponse, error) {
					return &apimodels.RecordResponse{Record: apimodels.Record{
						ID: id, Revision: 3,
						Fields: map[string]string{"first_name": "Глеб", "last_name": "Орлов", "group": "Youth"},
					}}, nil
				},
				SchemaFunc: func(ctx context.Context) (*apimodels.SchemaResponse, error) {
					return testSchema(), nil
				},
				UpdateRecordFunc: func(ctx context.Context, id string, revision int64, fields map[string]string) (*apimodels.WriteResponse, error) {
					return &apimodels.WriteResponse{ID: id, NewRevision: revision + 1}, nil
				},
			}

			require.NoError(t, run(t, client, io, tt.args...))

			calls := client.UpdateRecordCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, "r1", calls[0].Id)
			assert.Equal(t, tt.wantRevision, calls[0].Revision)
			assert.Equal(t, tt.wantFields, calls[0].Fields)
			assert.Len(t, client.GetRecordCalls(), tt.wantGet)
			assert.Contains(t, out.String(), fmt.Sprintf("Revision: %d", tt.wantRevision+1))
		})
	}
}

func TestEditCommand_Stale(t *testing.T) {
	io, _ := newTestIO()
	client := &ClientMock{
		UpdateRecordFunc: func(ctx context.Context, id string, revision int64, fields map[string]string) (*apimodels.WriteResponse, error) {
			return nil, &api.Error{StatusCode: 412, Code: apimodels.CodeStaleWrite, Message: "record r1 is at revision 4, not 2"}
		},
	}

	err := run(t, client, io, "edit", "r1", "--revision", "2", "-f", "group=Family")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed since you loaded it")
}
