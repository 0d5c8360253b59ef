// Package service implements registry lookups and confirmed-event upserts
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vitalog/internal/core/textkey"
	"vitalog/internal/modkit"
	"vitalog/internal/modkit/repokit"
	perr "vitalog/internal/platform/errors"
	"vitalog/internal/platform/logger"

	dom "vitalog/internal/services/registry/domain"
	rrepo "vitalog/internal/services/registry/repo"
)

// Tunables for the fuzzy path and the frequent-items context block
const (
	// FuzzyFloor is the reliability floor, entries logged fewer times are
	// never trusted for fuzzy matching
	FuzzyFloor = 3

	// FuzzyCandidates bounds the candidate fetch for one fuzzy lookup
	FuzzyCandidates = 100

	// DefaultFrequentLimit is the frequent-items page size when the
	// caller does not ask for one
	DefaultFrequentLimit = 20
)

// Service implements the registry ports
type Service interface {
	dom.LookupPort
	dom.UpsertPort
	dom.FrequentPort
}

// Svc implements Service against Postgres
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[rrepo.Repo]
	repo   rrepo.Repo
	log    *logger.Logger
}

// New constructs the service
func New(deps modkit.Deps) *Svc {
	b := rrepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
		log:    logger.Named("registry"),
	}
}

// CheckExact looks up the normalized description for the user.
// Fails closed, blank input, unknown user or a read failure all miss
func (s *Svc) CheckExact(ctx context.Context, userID uuid.UUID, description string) *dom.Match {
	key := textkey.Key(description)
	if key == "" || userID == uuid.Nil {
		return nil
	}

	e, err := s.repo.GetByKey(ctx, userID, key)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			s.log.Warn().Err(err).Str("user_id", userID.String()).
				Msg("exact lookup failed, treating as miss")
		}
		return nil
	}
	return &dom.Match{Entry: e, Source: dom.SourceExact}
}

// FuzzyMatch scans the user's reliable entries, most logged first, for an
// order-independent word match against the description
func (s *Svc) FuzzyMatch(ctx context.Context, userID uuid.UUID, description string) *dom.Match {
	key := textkey.Key(description)
	if key == "" || userID == uuid.Nil {
		return nil
	}

	candidates, err := s.repo.ListFrequent(ctx, userID, FuzzyFloor, FuzzyCandidates)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).
			Msg("fuzzy lookup failed, treating as miss")
		return nil
	}

	for _, e := range candidates {
		if wordsMatch(key, e.ProductKey) {
			m := e
			return &dom.Match{Entry: m, Source: dom.SourceFuzzy}
		}
	}
	return nil
}

// wordsMatch reports whether a and b match order-independently. Either one
// contains the other outright, or every word of the shorter side appears as
// a substring of some word on the longer side ("mag" matches "magnesium")
func wordsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	aw := strings.Split(a, " ")
	bw := strings.Split(b, " ")
	short, long := aw, bw
	if len(bw) < len(aw) {
		short, long = bw, aw
	}
	for _, sw := range short {
		found := false
		for _, lw := range long {
			if strings.Contains(lw, sw) || strings.Contains(sw, lw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Upsert records one confirmed event. At-least-once on the counter is
// acceptable under concurrent confirmation of the same product
func (s *Svc) Upsert(ctx context.Context, args dom.UpsertArgs) error {
	key := textkey.Key(args.ProductName)
	if key == "" {
		return perr.InvalidArgf("product name is required")
	}
	if args.UserID == uuid.Nil {
		return perr.InvalidArgf("user id is required")
	}
	return s.repo.Upsert(ctx, dom.Entry{
		UserID:            args.UserID,
		ProductKey:        key,
		EventType:         args.EventType,
		ProductName:       args.ProductName,
		Brand:             args.Brand,
		ExternalProductID: args.ExternalProductID,
		ExternalSource:    args.ExternalSource,
	})
}

// FrequentItems lists the user's most logged products for classifier context
func (s *Svc) FrequentItems(ctx context.Context, userID uuid.UUID, limit int) ([]dom.FrequentItem, error) {
	if userID == uuid.Nil {
		return nil, perr.InvalidArgf("user id is required")
	}
	if limit <= 0 {
		limit = DefaultFrequentLimit
	}
	entries, err := s.repo.ListFrequent(ctx, userID, 1, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dom.FrequentItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, dom.FrequentItem{
			ProductName: e.ProductName,
			Brand:       e.Brand,
			EventType:   e.EventType,
			TimesLogged: e.TimesLogged,
		})
	}
	return out, nil
}
