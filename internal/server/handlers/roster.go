package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/query"
	"github.com/GLee998/church-database-bot/internal/roster"
	"github.com/GLee998/church-database-bot/internal/write"
	"github.com/GLee998/church-database-bot/pkg/api"
)

// maxSearchLimit верхняя граница limit в поиске
const maxSearchLimit = 200

// Roster определяет интерфейс ядра реестра, который нужен обработчикам
type Roster interface {
	Schema() *models.Schema
	Search(prefix string, limit int) []*models.Record
	Get(id string) (*models.Record, error)
	Ask(ctx context.Context, question string) (*models.Result, error)
	CreateRecord(ctx context.Context, fields map[string]string) (*write.Outcome, error)
	UpdateRecord(ctx context.Context, id string, expectedRevision int64, fields map[string]string) (*write.Outcome, error)
	SnapshotAge() time.Duration
	Stale() bool
	Today() models.Date
	Letters() []string
	ByLetter(letter string) []query.Entry
	Groups() []query.GroupListing
	BirthdaysByMonth(month time.Month) []query.Entry
	Stats() roster.Stats
	Reload(ctx context.Context) (roster.Stats, error)
	Subscribe(fn cache.Listener) func()
}

// RosterHandler обрабатывает запросы к реестру
type RosterHandler struct {
	logger *slog.Logger
	roster Roster
}

// NewRosterHandler создает handler реестра
func NewRosterHandler(logger *slog.Logger, r Roster) *RosterHandler {
	return &RosterHandler{
		logger: logger,
		roster: r,
	}
}

func (h *RosterHandler) snapshotInfo() api.SnapshotInfo {
	return snapshotInfo(h.roster.SnapshotAge(), h.roster.Stale())
}

// Schema обрабатывает GET /api/v1/schema
func (h *RosterHandler) Schema(w http.ResponseWriter, r *http.Request) {
	sendJSON(h.logger, w, toAPISchema(h.roster.Schema()), http.StatusOK)
}

// Search обрабатывает GET /api/v1/search?q=prefix&limit=N
func (h *RosterHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "invalid limit parameter", false)
			return
		}
		limit = min(n, maxSearchLimit)
	}

	records := h.roster.Search(r.URL.Query().Get("q"), limit)
	sendJSON(h.logger, w, api.SearchResponse{
		Records:      toAPIRecords(records, h.roster.Today()),
		SnapshotInfo: h.snapshotInfo(),
		Count:        len(records),
	}, http.StatusOK)
}

// GetRecord обрабатывает GET /api/v1/records/{id}
func (h *RosterHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.roster.Get(chi.URLParam(r, "id"))
	if err != nil {
		sendCoreError(h.logger, w, r, err)
		return
	}
	sendJSON(h.logger, w, api.RecordResponse{
		Record:       toAPIRecord(rec, h.roster.Today()),
		SnapshotInfo: h.snapshotInfo(),
	}, http.StatusOK)
}

// CreateRecord обрабатывает POST /api/v1/records
func (h *RosterHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req api.CreateRecordRequest
	if err := decodeJSON(r, w, &req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode create request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "invalid request body", false)
		return
	}

	out, err := h.roster.CreateRecord(r.Context(), req.Fields)
	if err != nil {
		sendCoreError(h.logger, w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "record created", slog.String("id", out.Write.ID))
	sendJSON(h.logger, w, toAPIWrite(out, h.roster.Today()), http.StatusCreated)
}

// UpdateRecord обрабатывает PUT /api/v1/records/{id}
func (h *RosterHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req api.UpdateRecordRequest
	if err := decodeJSON(r, w, &req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode update request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "invalid request body", false)
		return
	}
	if req.Revision < 1 {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "revision is required", false)
		return
	}

	out, err := h.roster.UpdateRecord(r.Context(), id, req.Revision, req.Fields)
	if err != nil {
		sendCoreError(h.logger, w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "record updated", slog.String("id", id), slog.Int64("revision", out.Write.NewRevision))
	sendJSON(h.logger, w, toAPIWrite(out, h.roster.Today()), http.StatusOK)
}

// Ask обрабатывает POST /api/v1/ask
func (h *RosterHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req api.AskRequest
	if err := decodeJSON(r, w, &req); err != nil || strings.TrimSpace(req.Question) == "" {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "question is required", false)
		return
	}

	res, err := h.roster.Ask(r.Context(), req.Question)
	if err != nil {
		sendCoreError(h.logger, w, r, err)
		return
	}

	resp := toAPIResult(res, h.roster.Today())
	resp.SnapshotInfo = h.snapshotInfo()
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Letters обрабатывает GET /api/v1/letters
func (h *RosterHandler) Letters(w http.ResponseWriter, r *http.Request) {
	letters := h.roster.Letters()
	if letters == nil {
		letters = []string{}
	}
	sendJSON(h.logger, w, api.LettersResponse{Letters: letters}, http.StatusOK)
}

// ByLetter обрабатывает GET /api/v1/letters/{letter}
func (h *RosterHandler) ByLetter(w http.ResponseWriter, r *http.Request) {
	entries := h.roster.ByLetter(chi.URLParam(r, "letter"))
	sendJSON(h.logger, w, api.EntriesResponse{Entries: toAPIEntries(entries)}, http.StatusOK)
}

// Groups обрабатывает GET /api/v1/groups
func (h *RosterHandler) Groups(w http.ResponseWriter, r *http.Request) {
	listings := h.roster.Groups()
	resp := api.GroupsResponse{Groups: make([]api.Group, 0, len(listings))}
	for _, g := range listings {
		resp.Groups = append(resp.Groups, api.Group{Name: g.Name, Members: toAPIEntries(g.Members)})
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Birthdays обрабатывает GET /api/v1/birthdays?month=N (по умолчанию текущий месяц)
func (h *RosterHandler) Birthdays(w http.ResponseWriter, r *http.Request) {
	month := h.roster.Today().Month
	if s := r.URL.Query().Get("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 12 {
			sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "month must be 1-12", false)
			return
		}
		month = time.Month(n)
	}

	entries := h.roster.BirthdaysByMonth(month)
	sendJSON(h.logger, w, api.EntriesResponse{Entries: toAPIEntries(entries)}, http.StatusOK)
}

// Status обрабатывает GET /api/v1/status
func (h *RosterHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSON(h.logger, w, toAPIStatus(h.roster.Stats()), http.StatusOK)
}

// Sync обрабатывает POST /api/v1/sync (только администраторы)
func (h *RosterHandler) Sync(w http.ResponseWriter, r *http.Request) {
	st, err := h.roster.Reload(r.Context())
	if err != nil {
		sendCoreError(h.logger, w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "manual sync completed", slog.Int("records", st.Records))
	sendJSON(h.logger, w, toAPIStatus(st), http.StatusOK)
}
