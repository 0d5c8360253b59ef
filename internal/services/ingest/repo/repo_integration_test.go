//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	perr "vitalog/internal/platform/errors"
	"vitalog/internal/platform/store"

	"vitalog/internal/core/schema"
	"vitalog/internal/modkit/repokit"
	"vitalog/internal/services/ingest/domain"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const ingestDDL = `
	CREATE TABLE IF NOT EXISTS ingest_audit (
		id         UUID        PRIMARY KEY,
		user_id    UUID        NOT NULL,
		raw_text   TEXT        NOT NULL,
		event_type TEXT,
		source     TEXT,
		metadata   JSONB,
		status     TEXT        NOT NULL,
		error_text TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS voice_events (
		id               UUID        PRIMARY KEY,
		user_id          UUID        NOT NULL,
		event_type       TEXT        NOT NULL,
		event_data       JSONB       NOT NULL,
		event_time       TIMESTAMPTZ NOT NULL,
		source_record_id UUID,
		capture_method   TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

func TestRepo_AuditLifecycle_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "vitalog-ingest-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn},
	})
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	if _, err := st.PG.Exec(ctx, ingestDDL); err != nil {
		t.Fatalf("create tables: %v", err)
	}

	r := repokit.MustBind[Repo](NewPG(), st.PG)
	userID := uuid.New()

	auditID, err := r.CreateAudit(ctx, userID, "took 2 lmnt packets")
	if err != nil {
		t.Fatalf("create audit: %v", err)
	}

	rec, err := r.GetAudit(ctx, userID, auditID)
	if err != nil {
		t.Fatalf("get audit: %v", err)
	}
	if rec.Status != domain.AuditPending || rec.RawText != "took 2 lmnt packets" {
		t.Fatalf("unexpected pending record: %+v", rec)
	}

	// wrong owner must not see the record
	if _, err := r.GetAudit(ctx, uuid.New(), auditID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}

	rec.EventType = schema.EventSupplement
	rec.Source = domain.SourceRegistryBypass
	rec.Status = domain.AuditParsed
	rec.Metadata = map[string]any{"confidence": 95}
	if err := r.UpdateAudit(ctx, rec); err != nil {
		t.Fatalf("update audit: %v", err)
	}

	rec, err = r.GetAudit(ctx, userID, auditID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if rec.Status != domain.AuditParsed || rec.Source != domain.SourceRegistryBypass {
		t.Fatalf("update not applied: %+v", rec)
	}
	// jsonb round trip yields float64 for numbers
	if got, ok := rec.Metadata["confidence"].(float64); !ok || got != 95 {
		t.Fatalf("metadata round trip: %#v", rec.Metadata["confidence"])
	}

	// updating an unknown id reports not found via RowsAffected
	ghost := rec
	ghost.ID = uuid.New()
	if err := r.UpdateAudit(ctx, ghost); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found for ghost update, got %v", err)
	}

	evID, err := r.InsertEvent(ctx, domain.VoiceEvent{
		UserID:         userID,
		EventType:      schema.EventSupplement,
		EventData:      map[string]any{"name": "LMNT Electrolyte Drink Mix", "dosage": "2", "units": "packets"},
		EventTime:      time.Now().UTC(),
		SourceRecordID: auditID,
		CaptureMethod:  "voice",
	})
	if err != nil {
		t.Fatalf("insert event: %v", err)
	}
	if evID == uuid.Nil {
		t.Fatal("insert event returned nil id")
	}
}
