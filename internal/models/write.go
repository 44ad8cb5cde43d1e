package models

import "fmt"

// NewRecordID target id of a PendingWrite that creates a record
const NewRecordID = "new"

// WriteState состояние записи в конечном автомате
type WriteState string

const (
	WriteProposed     WriteState = "proposed"
	WriteLocalApplied WriteState = "local-applied"
	WriteCommitted    WriteState = "committed"
	WriteRolledBack   WriteState = "rolled-back"
)

// WriteStatus статус, видимый вызывающему
type WriteStatus string

const (
	StatusAppliedLocally      WriteStatus = "applied-locally"
	StatusCommitted           WriteStatus = "committed"
	StatusRejectedConflict    WriteStatus = "rejected-conflict"
	StatusRejectedRemoteError WriteStatus = "rejected-remote-error"
)

// допустимые переходы автомата
var writeTransitions = map[WriteState][]WriteState{
	WriteProposed:     {WriteLocalApplied, WriteRolledBack},
	WriteLocalApplied: {WriteCommitted, WriteRolledBack},
}

// PendingWrite is an in-flight create or update.
type PendingWrite struct {
	Fields       map[string]string `json:"fields"`
	ID           string            `json:"id"`
	State        WriteState        `json:"state"`
	Status       WriteStatus       `json:"status,omitempty"`
	BaseRevision int64             `json:"base_revision"`
	NewRevision  int64             `json:"new_revision,omitempty"`
}

// NewPendingWrite creates a write in the Proposed state.
func NewPendingWrite(id string, baseRevision int64, fields map[string]string) *PendingWrite {
	if id == "" {
		id = NewRecordID
	}
	return &PendingWrite{
		ID:           id,
		BaseRevision: baseRevision,
		Fields:       fields,
		State:        WriteProposed,
	}
}

// IsCreate reports whether the write creates a new record.
func (w *PendingWrite) IsCreate() bool {
	return w.ID == NewRecordID
}

// Transition moves the write to state `to` and records the caller-visible status.
func (w *PendingWrite) Transition(to WriteState, status WriteStatus) error {
	for _, allowed := range writeTransitions[w.State] {
		if allowed == to {
			w.State = to
			w.Status = status
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, w.State, to)
}

// Done reports whether the write reached a terminal state.
func (w *PendingWrite) Done() bool {
	return w.State == WriteCommitted || w.State == WriteRolledBack
}
