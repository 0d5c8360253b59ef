// Package repo provides the ingest repository implementation
package repo

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	perr "vitalog/internal/platform/errors"

	"vitalog/internal/modkit/repokit"
	"vitalog/internal/services/ingest/domain"
)

// Repo is the ingest persistence surface used by the service layer
type Repo interface {
	// CreateAudit inserts a pending audit record and returns its id
	CreateAudit(ctx context.Context, userID uuid.UUID, rawText string) (uuid.UUID, error)

	// GetAudit fetches one audit record scoped to its owner
	GetAudit(ctx context.Context, userID, id uuid.UUID) (domain.AuditRecord, error)

	// UpdateAudit rewrites the mutable fields of an audit record
	UpdateAudit(ctx context.Context, rec domain.AuditRecord) error

	// InsertEvent persists a voice event and returns its id
	InsertEvent(ctx context.Context, ev domain.VoiceEvent) (uuid.UUID, error)
}

type (
	// PG is a Postgres implementation of the ingest repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// CreateAudit inserts the pending ledger row for one processing attempt
func (r *queries) CreateAudit(ctx context.Context, userID uuid.UUID, rawText string) (uuid.UUID, error) {
	const sql = `
		INSERT INTO ingest_audit (id, user_id, raw_text, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`
	id := uuid.New()
	if err := r.q.QueryRow(ctx, sql, id, userID, rawText, domain.AuditPending).Scan(&id); err != nil {
		return uuid.Nil, perr.FromPG(err, "ingest.CreateAudit")
	}
	return id, nil
}

// GetAudit fetches one audit record scoped to its owner
func (r *queries) GetAudit(ctx context.Context, userID, id uuid.UUID) (domain.AuditRecord, error) {
	const sql = `
		SELECT id, user_id, raw_text, COALESCE(event_type, ''), COALESCE(source, ''),
		       COALESCE(metadata, '{}'::jsonb), status, COALESCE(error_text, ''),
		       created_at, updated_at
		FROM ingest_audit
		WHERE user_id = $1 AND id = $2
	`
	var (
		rec  domain.AuditRecord
		meta []byte
	)
	err := r.q.QueryRow(ctx, sql, userID, id).Scan(
		&rec.ID, &rec.UserID, &rec.RawText, &rec.EventType, &rec.Source,
		&meta, &rec.Status, &rec.ErrorText, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.AuditRecord{}, perr.NotFoundf("audit record %s", id)
		}
		return domain.AuditRecord{}, perr.FromPG(err, "ingest.GetAudit")
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &rec.Metadata); err != nil {
			return domain.AuditRecord{}, perr.JSONErrf("audit metadata for %s is corrupt", id)
		}
	}
	return rec, nil
}

// UpdateAudit rewrites the mutable fields of the ledger row
func (r *queries) UpdateAudit(ctx context.Context, rec domain.AuditRecord) error {
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return perr.JSONErrf("audit metadata does not marshal: %v", err)
	}
	const sql = `
		UPDATE ingest_audit
		SET event_type = NULLIF($3, ''),
		    source     = NULLIF($4, ''),
		    metadata   = $5,
		    status     = $6,
		    error_text = NULLIF($7, ''),
		    updated_at = NOW()
		WHERE user_id = $1 AND id = $2
	`
	tag, err := r.q.Exec(ctx, sql,
		rec.UserID, rec.ID, string(rec.EventType), rec.Source, meta, rec.Status, rec.ErrorText,
	)
	if err != nil {
		return perr.FromPG(err, "ingest.UpdateAudit")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("audit record %s", rec.ID)
	}
	return nil
}

// InsertEvent persists the final structured event
func (r *queries) InsertEvent(ctx context.Context, ev domain.VoiceEvent) (uuid.UUID, error) {
	data, err := json.Marshal(ev.EventData)
	if err != nil {
		return uuid.Nil, perr.JSONErrf("event data does not marshal: %v", err)
	}
	const sql = `
		INSERT INTO voice_events (
			id, user_id, event_type, event_data, event_time,
			source_record_id, capture_method, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`
	id := ev.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	if err := r.q.QueryRow(ctx, sql,
		id, ev.UserID, ev.EventType, data, ev.EventTime,
		ev.SourceRecordID, ev.CaptureMethod,
	).Scan(&id); err != nil {
		return uuid.Nil, perr.FromPG(err, "ingest.InsertEvent")
	}
	return id, nil
}
