package domain

import (
	"context"

	"github.com/google/uuid"
)

// LookupPort answers registry lookups for the ingest pipeline
//
// Both lookups fail closed. Missing inputs and read failures yield a nil
// match rather than an error so the pipeline can fall through to the
// classifier, the failure is logged and never surfaced
type LookupPort interface {
	// CheckExact returns the entry whose product key equals the
	// normalized description, or nil
	CheckExact(ctx context.Context, userID uuid.UUID, description string) *Match

	// FuzzyMatch returns the best order-independent word match among the
	// user's frequently logged entries, or nil
	FuzzyMatch(ctx context.Context, userID uuid.UUID, description string) *Match
}

// UpsertPort records confirmed events. Safe to call concurrently for the
// same user, the counter increment is at-least-once
type UpsertPort interface {
	Upsert(ctx context.Context, args UpsertArgs) error
}

// FrequentPort lists a user's most logged products
type FrequentPort interface {
	FrequentItems(ctx context.Context, userID uuid.UUID, limit int) ([]FrequentItem, error)
}
