package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/pkg/api"
)

// writeTimeout время на отправку одного события
const writeTimeout = 5 * time.Second

// EventsHandler рассылает уведомления о новых снимках по websocket
type EventsHandler struct {
	logger         *slog.Logger
	roster         Roster
	originPatterns []string
}

// NewEventsHandler создает handler событий. originPatterns - разрешенные Origin (пусто - только свой хост).
func NewEventsHandler(logger *slog.Logger, r Roster, originPatterns []string) *EventsHandler {
	return &EventsHandler{
		logger:         logger,
		roster:         r,
		originPatterns: originPatterns,
	}
}

// Events обрабатывает GET /api/v1/events.
// Сразу после подключения отправляет текущее состояние, затем по событию на каждый опубликованный снимок.
// Медленный клиент получает только последнее событие.
func (h *EventsHandler) Events(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	// Клиент ничего не присылает; CloseRead обрабатывает close frame и отменяет ctx
	ctx := conn.CloseRead(r.Context())

	updates := make(chan *cache.Snapshot, 1)
	unsubscribe := h.roster.Subscribe(func(s *cache.Snapshot) {
		// Вытесняем непрочитанное событие, чтобы не блокировать синхронизацию
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- s:
		default:
		}
	})
	defer unsubscribe()

	h.logger.Debug("Events client connected", "remote_addr", r.RemoteAddr)

	st := h.roster.Stats()
	initial := api.Event{
		FetchedAt: st.FetchedAt,
		Type:      api.EventSnapshot,
		SyncToken: st.SyncToken,
		Records:   st.Records,
	}
	if err := h.send(ctx, conn, initial); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("Events client disconnected", "remote_addr", r.RemoteAddr)
			return
		case snap := <-updates:
			if err := h.send(ctx, conn, toAPIEvent(snap)); err != nil {
				return
			}
		}
	}
}

func (h *EventsHandler) send(ctx context.Context, conn *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to marshal event", "error", err)
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		h.logger.Debug("Failed to send event", "error", err)
		return err
	}
	return nil
}
