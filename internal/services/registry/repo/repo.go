// Package repo provides the registry repository implementation
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"

	"github.com/google/uuid"

	perr "vitalog/internal/platform/errors"
	str "vitalog/internal/platform/strings"

	"vitalog/internal/modkit/repokit"
	"vitalog/internal/services/registry/domain"
)

// Repo is the registry persistence surface used by the service layer
type Repo interface {
	// GetByKey fetches the entry for (userID, productKey). NotFound when absent
	GetByKey(ctx context.Context, userID uuid.UUID, productKey string) (domain.Entry, error)

	// ListFrequent returns entries with timesLogged >= floor ordered by
	// times_logged desc then last_logged_at desc
	ListFrequent(ctx context.Context, userID uuid.UUID, floor, limit int) ([]domain.Entry, error)

	// Upsert inserts or bumps the entry for (userID, productKey)
	Upsert(ctx context.Context, e domain.Entry) error
}

type (
	// PG is a Postgres implementation of the registry repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const entryCols = `
	user_id, product_key, event_type, product_name, COALESCE(brand, ''),
	times_logged, first_logged_at, last_logged_at,
	COALESCE(external_product_id, ''), COALESCE(external_source, '')`

func scanEntry(row interface{ Scan(...any) error }) (domain.Entry, error) {
	var e domain.Entry
	err := row.Scan(
		&e.UserID, &e.ProductKey, &e.EventType, &e.ProductName, &e.Brand,
		&e.TimesLogged, &e.FirstLoggedAt, &e.LastLoggedAt,
		&e.ExternalProductID, &e.ExternalSource,
	)
	return e, err
}

// GetByKey fetches the entry for (userID, productKey)
func (r *queries) GetByKey(ctx context.Context, userID uuid.UUID, productKey string) (domain.Entry, error) {
	const sql = `
		SELECT ` + entryCols + `
		FROM product_registry
		WHERE user_id = $1 AND product_key = $2
	`
	e, err := scanEntry(r.q.QueryRow(ctx, sql, userID, productKey))
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Entry{}, perr.NotFoundf("registry entry %q", productKey)
		}
		return domain.Entry{}, perr.FromPG(err, "registry.GetByKey")
	}
	return e, nil
}

// ListFrequent returns the user's reliable entries, most logged first.
// Ties on times_logged break by most recently logged
func (r *queries) ListFrequent(ctx context.Context, userID uuid.UUID, floor, limit int) ([]domain.Entry, error) {
	const sql = `
		SELECT ` + entryCols + `
		FROM product_registry
		WHERE user_id = $1 AND times_logged >= $2
		ORDER BY times_logged DESC, last_logged_at DESC
		LIMIT $3
	`
	rows, err := r.q.Query(ctx, sql, userID, floor, limit)
	if err != nil {
		return nil, perr.FromPG(err, "registry.ListFrequent")
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, perr.FromPG(err, "registry.ListFrequent scan")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPG(err, "registry.ListFrequent rows")
	}
	return out, nil
}

// Upsert inserts a fresh entry or bumps the counter on conflict.
// Brand and external fields are only overwritten when newly provided
func (r *queries) Upsert(ctx context.Context, e domain.Entry) error {
	const sql = `
		INSERT INTO product_registry (
			user_id, product_key, event_type, product_name, brand,
			times_logged, first_logged_at, last_logged_at,
			external_product_id, external_source
		) VALUES (
			$1, $2, $3, $4, $5,
			1, NOW(), NOW(),
			$6, $7
		)
		ON CONFLICT (user_id, product_key) DO UPDATE
		SET times_logged        = product_registry.times_logged + 1,
		    last_logged_at      = NOW(),
		    event_type          = EXCLUDED.event_type,
		    product_name        = EXCLUDED.product_name,
		    brand               = COALESCE(EXCLUDED.brand, product_registry.brand),
		    external_product_id = COALESCE(EXCLUDED.external_product_id, product_registry.external_product_id),
		    external_source     = COALESCE(EXCLUDED.external_source, product_registry.external_source)
	`
	_, err := r.q.Exec(ctx, sql,
		e.UserID, e.ProductKey, e.EventType, e.ProductName, str.SQLNull(e.Brand),
		str.SQLNull(e.ExternalProductID), str.SQLNull(e.ExternalSource),
	)
	if err != nil {
		return perr.FromPG(err, "registry.Upsert")
	}
	return nil
}
