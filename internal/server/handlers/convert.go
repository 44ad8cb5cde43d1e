package handlers

import (
	"time"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/query"
	"github.com/GLee998/church-database-bot/internal/roster"
	"github.com/GLee998/church-database-bot/internal/write"
	"github.com/GLee998/church-database-bot/pkg/api"
)

func toAPIRecord(r *models.Record, today models.Date) api.Record {
	out := api.Record{
		Fields:   r.Fields,
		ID:       r.ID,
		Group:    r.Group,
		Revision: r.Revision,
		Row:      r.Row,
	}
	if r.BirthDate != nil {
		age := r.BirthDate.AgeOn(today)
		out.Age = &age
		out.BirthDate = r.BirthDate.String()
	}
	return out
}

func toAPIRecords(records []*models.Record, today models.Date) []api.Record {
	out := make([]api.Record, 0, len(records))
	for _, r := range records {
		out = append(out, toAPIRecord(r, today))
	}
	return out
}

func toAPIResult(res *models.Result, today models.Date) api.AskResponse {
	out := api.AskResponse{
		Kind:      string(res.Kind),
		Operation: string(res.Operation),
		Count:     res.Count,
		Empty:     res.Empty,
	}
	if len(res.Records) > 0 {
		out.Records = toAPIRecords(res.Records, today)
	}
	for _, b := range res.Birthdays {
		out.Birthdays = append(out.Birthdays, api.Birthday{
			Record:    toAPIRecord(b.Record, today),
			Date:      b.Next.String(),
			DaysUntil: b.DaysUntil,
			Age:       b.Age,
		})
	}
	return out
}

func toAPIEntries(entries []query.Entry) []api.Entry {
	out := make([]api.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.Entry{
			Age:       e.Age,
			Label:     e.Label,
			ID:        e.Record.ID,
			Status:    e.Record.Field(models.FieldStatus),
			BirthDate: e.BirthDate,
		})
	}
	return out
}

func toAPIWrite(out *write.Outcome, today models.Date) api.WriteResponse {
	resp := api.WriteResponse{
		ID:          out.Write.ID,
		State:       string(out.Write.State),
		Status:      string(out.Write.Status),
		NewRevision: out.Write.NewRevision,
	}
	if out.Record != nil {
		rec := toAPIRecord(out.Record, today)
		resp.Record = &rec
		resp.ID = rec.ID
	}
	return resp
}

func toAPISchema(s *models.Schema) api.SchemaResponse {
	resp := api.SchemaResponse{UnassignedGroup: s.UnassignedGroup}
	for _, f := range s.Fields {
		resp.Fields = append(resp.Fields, api.SchemaField{
			Key:      f.Key,
			Header:   f.Header,
			Type:     string(f.Type),
			Values:   f.Values,
			MaxLen:   f.MaxLen,
			Required: f.Required,
		})
	}
	return resp
}

func toAPIStatus(st roster.Stats) api.StatusResponse {
	resp := api.StatusResponse{
		FetchedAt:    st.FetchedAt,
		SyncToken:    st.SyncToken,
		LastError:    st.LastError,
		SnapshotInfo: snapshotInfo(st.SnapshotAge, st.Stale),
		Records:      st.Records,
	}
	for _, q := range st.Quarantined {
		resp.Quarantined = append(resp.Quarantined, api.QuarantinedRow{ID: q.ID, Reason: q.Reason, Row: q.Row})
	}
	for _, p := range st.PendingWrites {
		resp.PendingWrites = append(resp.PendingWrites, api.PendingWrite{ID: p.ID, State: string(p.State), BaseRevision: p.BaseRevision})
	}
	return resp
}

func toAPIEvent(snap *cache.Snapshot) api.Event {
	return api.Event{
		FetchedAt: snap.FetchedAt,
		Type:      api.EventSnapshot,
		SyncToken: snap.SyncToken,
		Records:   snap.Len(),
	}
}

// snapshotInfo возраст снимка; для еще не загруженного снимка -1
func snapshotInfo(age time.Duration, stale bool) api.SnapshotInfo {
	seconds := age.Seconds()
	if age == time.Duration(1<<63-1) {
		seconds = -1
	}
	return api.SnapshotInfo{AgeSeconds: seconds, Stale: stale}
}
