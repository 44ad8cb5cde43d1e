package api

import "time"

// Record представляет запись реестра
type Record struct {
	Fields    map[string]string `json:"fields"`
	Age       *int              `json:"age,omitempty"` // полных лет на сегодня
	ID        string            `json:"id"`
	Group     string            `json:"group,omitempty"`
	BirthDate string            `json:"birth_date,omitempty"` // YYYY-MM-DD
	Revision  int64             `json:"revision"`
	Row       int               `json:"row"`
}

// SnapshotInfo свежесть данных, на которых построен ответ
type SnapshotInfo struct {
	AgeSeconds float64 `json:"snapshot_age_seconds"`
	Stale      bool    `json:"stale"`
}

// SearchResponse ответ поиска по префиксу
type SearchResponse struct {
	Records []Record `json:"records"`
	SnapshotInfo
	Count int `json:"count"`
}

// RecordResponse одна запись
type RecordResponse struct {
	Record Record `json:"record"`
	SnapshotInfo
}

// CreateRecordRequest запрос на создание записи
type CreateRecordRequest struct {
	Fields map[string]string `json:"fields"`
}

// UpdateRecordRequest запрос на изменение записи.
// Revision - ревизия, которую видел клиент.
type UpdateRecordRequest struct {
	Fields   map[string]string `json:"fields"`
	Revision int64             `json:"revision"`
}

// WriteResponse результат записи
type WriteResponse struct {
	Record      *Record `json:"record,omitempty"`
	ID          string  `json:"id"`
	State       string  `json:"state"`
	Status      string  `json:"status"`
	NewRevision int64   `json:"new_revision,omitempty"`
}

// SchemaField описание поля схемы
type SchemaField struct {
	Key      string   `json:"key"`
	Header   string   `json:"header"`
	Type     string   `json:"type"`
	Values   []string `json:"values,omitempty"`
	MaxLen   int      `json:"max_len,omitempty"`
	Required bool     `json:"required"`
}

// SchemaResponse схема и словари для формы
type SchemaResponse struct {
	UnassignedGroup string        `json:"unassigned_group"`
	Fields          []SchemaField `json:"fields"`
}

// QuarantinedRow строка, не прошедшая проверку схемы
type QuarantinedRow struct {
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
	Row    int    `json:"row"`
}

// PendingWrite незавершенная запись
type PendingWrite struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	BaseRevision int64  `json:"base_revision"`
}

// StatusResponse состояние зеркала
type StatusResponse struct {
	FetchedAt     time.Time        `json:"fetched_at"`
	SyncToken     string           `json:"sync_token"`
	LastError     string           `json:"last_error,omitempty"`
	Quarantined   []QuarantinedRow `json:"quarantined,omitempty"`
	PendingWrites []PendingWrite   `json:"pending_writes,omitempty"`
	SnapshotInfo
	Records int `json:"records"`
}

// Event уведомление, отправляемое по websocket после публикации нового снимка
type Event struct {
	FetchedAt time.Time `json:"fetched_at"`
	Type      string    `json:"type"`
	SyncToken string    `json:"sync_token"`
	Records   int       `json:"records"`
}

// EventSnapshot тип события публикации снимка
const EventSnapshot = "snapshot"

// HealthResponse ответ health check
type HealthResponse struct {
	Status             string  `json:"status"`
	Version            string  `json:"version,omitempty"`
	SnapshotAgeSeconds float64 `json:"snapshot_age_seconds"`
}
