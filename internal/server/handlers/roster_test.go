package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/pkg/api"
)

func TestRosterHandler_Search(t *testing.T) {
	h := newTestRouter(newTestRoster(t))

	w := doJSON(t, h, http.MethodGet, "/api/v1/search?q="+url.QueryEscape("Ан"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.SearchResponse
	decode(t, w, &resp)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Анна", resp.Records[0].Fields[models.FieldFirstName])
	assert.Equal(t, "Youth", resp.Records[0].Group)
	assert.False(t, resp.Stale)

	w = doJSON(t, h, http.MethodGet, "/api/v1/search?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterHandler_GetRecord(t *testing.T) {
	r := newTestRoster(t)
	h := newTestRouter(r)
	id := r.Search("Вера", 1)[0].ID

	w := doJSON(t, h, http.MethodGet, "/api/v1/records/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.RecordResponse
	decode(t, w, &resp)
	assert.Equal(t, id, resp.Record.ID)
	assert.Equal(t, "2001-02-01", resp.Record.BirthDate)
	require.NotNil(t, resp.Record.Age)

	w = doJSON(t, h, http.MethodGet, "/api/v1/records/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp api.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, api.CodeNotFound, errResp.Code)
}

func TestRosterHandler_CreateRecord(t *testing.T) {
	h := newTestRouter(newTestRoster(t))

	w := doJSON(t, h, http.MethodPost, "/api/v1/records", api.CreateRecordRequest{
		Fields: map[string]string{models.FieldFirstName: "Евлампий", models.FieldGroup: "Family"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.WriteResponse
	decode(t, w, &resp)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "Евлампий", resp.Record.Fields[models.FieldFirstName])
	assert.Equal(t, int64(1), resp.NewRevision)
	assert.Equal(t, string(models.StatusCommitted), resp.Status)

	w = doJSON(t, h, http.MethodGet, "/api/v1/records/"+resp.Record.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRosterHandler_CreateRecord_Errors(t *testing.T) {
	h := newTestRouter(newTestRoster(t))

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing first name",
			body:       api.CreateRecordRequest{Fields: map[string]string{models.FieldLastName: "Кузнецов"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeInvalidRecord,
		},
		{
			name:       "unknown group",
			body:       api.CreateRecordRequest{Fields: map[string]string{models.FieldFirstName: "Ян", models.FieldGroup: "Choir"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeInvalidRecord,
		},
		{
			name:       "unknown json key",
			body:       map[string]interface{}{"fields": map[string]string{}, "extra": 1},
			wantStatus: http.StatusBadRequest,
			wantCode:   api.CodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodPost, "/api/v1/records", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var errResp api.ErrorResponse
			decode(t, w, &errResp)
			assert.Equal(t, tt.wantCode, errResp.Code)
			assert.False(t, errResp.Retriable)
		})
	}
}

func TestRosterHandler_UpdateRecord(t *testing.T) {
	r := newTestRoster(t)
	h := newTestRouter(r)
	rec := r.Search("Глеб", 1)[0]

	w := doJSON(t, h, http.MethodPut, "/api/v1/records/"+rec.ID, api.UpdateRecordRequest{
		Fields:   map[string]string{models.FieldGroup: "Family"},
		Revision: rec.Revision,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.WriteResponse
	decode(t, w, &resp)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "Family", resp.Record.Group)
	assert.Equal(t, rec.Revision+1, resp.NewRevision)

	// Повтор с той же ревизией уже устарел
	w = doJSON(t, h, http.MethodPut, "/api/v1/records/"+rec.ID, api.UpdateRecordRequest{
		Fields:   map[string]string{models.FieldGroup: "Youth"},
		Revision: rec.Revision,
	})
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	var errResp api.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, api.CodeStaleWrite, errResp.Code)

	w = doJSON(t, h, http.MethodPut, "/api/v1/records/"+rec.ID, api.UpdateRecordRequest{
		Fields: map[string]string{models.FieldGroup: "Youth"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterHandler_Ask(t *testing.T) {
	h := newTestRouter(newTestRoster(t))

	w := doJSON(t, h, http.MethodPost, "/api/v1/ask", api.AskRequest{Question: "how many people are in the Youth group?"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.AskResponse
	decode(t, w, &resp)
	assert.Equal(t, string(models.ResultCount), resp.Kind)
	assert.Equal(t, 3, resp.Count)
	assert.False(t, resp.Empty)

	w = doJSON(t, h, http.MethodPost, "/api/v1/ask", api.AskRequest{Question: "what is the capital of France?"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var errResp api.ErrorResponse
	decode(t, w, &errResp)
	assert.Equal(t, api.CodeUnrecognizedIntent, errResp.Code)

	w = doJSON(t, h, http.MethodPost, "/api/v1/ask", api.AskRequest{Question: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterHandler_Browse(t *testing.T) {
	h := newTestRouter(newTestRoster(t))

	w := doJSON(t, h, http.MethodGet, "/api/v1/letters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var letters api.LettersResponse
	decode(t, w, &letters)
	assert.Equal(t, []string{"А", "Б", "В", "Г"}, letters.Letters)

	w = doJSON(t, h, http.MethodGet, "/api/v1/letters/"+url.PathEscape("Б"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries api.EntriesResponse
	decode(t, w, &entries)
	require.Len(t, entries.Entries, 1)
	assert.Contains(t, entries.Entries[0].Label, "Борис")

	w = doJSON(t, h, http.MethodGet, "/api/v1/groups", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var groups api.GroupsResponse
	decode(t, w, &groups)
	require.Len(t, groups.Groups, 2)
	assert.Equal(t, "Family", groups.Groups[0].Name)
	assert.Len(t, groups.Groups[1].Members, 3)

	w = doJSON(t, h, http.MethodGet, "/api/v1/birthdays?month=12", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &entries)
	require.Len(t, entries.Entries, 1)
	assert.Contains(t, entries.Entries[0].Label, "Борис")

	w = doJSON(t, h, http.MethodGet, "/api/v1/birthdays?month=13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRosterHandler_StatusAndSync(t *testing.T) {
	h := newTestRouter(newTestRoster(t))

	w := doJSON(t, h, http.MethodGet, "/api/v1/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status api.StatusResponse
	decode(t, w, &status)
	assert.Equal(t, 4, status.Records)
	assert.NotEmpty(t, status.SyncToken)

	w = doJSON(t, h, http.MethodPost, "/api/v1/sync", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &status)
	assert.Equal(t, 4, status.Records)
}

func TestRosterHandler_Schema(t *testing.T) {
	h := newTestRouter(newTestRoster(t))

	w := doJSON(t, h, http.MethodGet, "/api/v1/schema", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.SchemaResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Fields)
	assert.Equal(t, models.FieldFirstName, resp.Fields[0].Key)
	assert.True(t, resp.Fields[0].Required)
}
