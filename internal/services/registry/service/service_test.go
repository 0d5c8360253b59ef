package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"vitalog/internal/core/schema"
	perr "vitalog/internal/platform/errors"
	"vitalog/internal/platform/logger"

	dom "vitalog/internal/services/registry/domain"
)

type stubRepo struct {
	entries   map[string]dom.Entry
	frequent  []dom.Entry
	floorSeen int
	getErr    error
	listErr   error
	upserts   []dom.Entry
}

func (s *stubRepo) GetByKey(_ context.Context, _ uuid.UUID, key string) (dom.Entry, error) {
	if s.getErr != nil {
		return dom.Entry{}, s.getErr
	}
	e, ok := s.entries[key]
	if !ok {
		return dom.Entry{}, perr.NotFoundf("registry entry %q", key)
	}
	return e, nil
}

func (s *stubRepo) ListFrequent(_ context.Context, _ uuid.UUID, floor, _ int) ([]dom.Entry, error) {
	s.floorSeen = floor
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.frequent, nil
}

func (s *stubRepo) Upsert(_ context.Context, e dom.Entry) error {
	s.upserts = append(s.upserts, e)
	return nil
}

func newTestSvc(r *stubRepo) *Svc {
	return &Svc{repo: r, log: logger.Named("registry-test")}
}

func entry(name string, times int) dom.Entry {
	return dom.Entry{
		ProductKey:   keyOf(name),
		ProductName:  name,
		EventType:    schema.EventSupplement,
		TimesLogged:  times,
		LastLoggedAt: time.Now(),
	}
}

func keyOf(name string) string {
	// mirror of textkey for fixture brevity, inputs here are already clean
	return name
}

func TestCheckExact(t *testing.T) {
	user := uuid.New()
	repo := &stubRepo{entries: map[string]dom.Entry{
		"now vitamin d 5000 iu": entry("now vitamin d 5000 iu", 10),
	}}
	svc := newTestSvc(repo)

	m := svc.CheckExact(context.Background(), user, "NOW Vitamin D 5000 IU")
	if m == nil {
		t.Fatal("expected exact hit")
	}
	if m.Source != dom.SourceExact {
		t.Fatalf("source = %q", m.Source)
	}

	if m := svc.CheckExact(context.Background(), user, "unknown thing"); m != nil {
		t.Fatalf("expected miss, got %+v", m)
	}
	if m := svc.CheckExact(context.Background(), user, "  "); m != nil {
		t.Fatal("blank description must miss")
	}
	if m := svc.CheckExact(context.Background(), uuid.Nil, "vitamin d"); m != nil {
		t.Fatal("nil user must miss")
	}
}

// Read failures are treated as a miss so the pipeline can fall through.
func TestCheckExact_FailsClosed(t *testing.T) {
	repo := &stubRepo{getErr: perr.DBf("connection reset")}
	svc := newTestSvc(repo)
	if m := svc.CheckExact(context.Background(), uuid.New(), "vitamin d"); m != nil {
		t.Fatalf("read error should be a miss, got %+v", m)
	}
}

func TestFuzzyMatch(t *testing.T) {
	user := uuid.New()
	repo := &stubRepo{frequent: []dom.Entry{
		entry("now magnesium glycinate", 12),
		entry("now vitamin d 5000 iu", 5),
	}}
	svc := newTestSvc(repo)

	// order-independent word match
	m := svc.FuzzyMatch(context.Background(), user, "glycinate magnesium")
	if m == nil || m.Entry.ProductName != "now magnesium glycinate" {
		t.Fatalf("fuzzy = %+v", m)
	}
	if m.Source != dom.SourceFuzzy {
		t.Fatalf("source = %q", m.Source)
	}

	// partial word, "mag" inside "magnesium"
	if m := svc.FuzzyMatch(context.Background(), user, "mag"); m == nil {
		t.Fatal("partial word should match")
	}

	// the floor is passed down to the store, not filtered in memory
	if repo.floorSeen != FuzzyFloor {
		t.Fatalf("floor = %d, want %d", repo.floorSeen, FuzzyFloor)
	}

	if m := svc.FuzzyMatch(context.Background(), user, "creatine"); m != nil {
		t.Fatalf("expected miss, got %+v", m)
	}
}

// Candidates arrive most-logged-first from the store and the first match wins.
func TestFuzzyMatch_MostLoggedWins(t *testing.T) {
	repo := &stubRepo{frequent: []dom.Entry{
		entry("vitamin d 5000 iu", 20),
		entry("vitamin d gummies", 4),
	}}
	svc := newTestSvc(repo)
	m := svc.FuzzyMatch(context.Background(), uuid.New(), "vitamin d")
	if m == nil || m.Entry.ProductName != "vitamin d 5000 iu" {
		t.Fatalf("fuzzy = %+v", m)
	}
}

func TestFuzzyMatch_FailsClosed(t *testing.T) {
	repo := &stubRepo{listErr: perr.DBf("boom")}
	svc := newTestSvc(repo)
	if m := svc.FuzzyMatch(context.Background(), uuid.New(), "vitamin d"); m != nil {
		t.Fatal("list error should be a miss")
	}
}

func TestWordsMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"vitamin d", "now vitamin d 5000 iu", true},
		{"glycinate magnesium", "magnesium glycinate", true},
		{"mag", "magnesium glycinate", true},
		{"creatine", "magnesium glycinate", false},
		{"", "magnesium", false},
	}
	for _, tc := range tests {
		if got := wordsMatch(tc.a, tc.b); got != tc.want {
			t.Fatalf("wordsMatch(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestUpsert_Validation(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestSvc(repo)

	err := svc.Upsert(context.Background(), dom.UpsertArgs{UserID: uuid.New()})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing name should be invalid argument, got %v", err)
	}
	err = svc.Upsert(context.Background(), dom.UpsertArgs{ProductName: "creatine"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing user should be invalid argument, got %v", err)
	}

	err = svc.Upsert(context.Background(), dom.UpsertArgs{
		UserID:      uuid.New(),
		EventType:   schema.EventSupplement,
		ProductName: "NOW Vitamin D 5000 IU",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(repo.upserts) != 1 || repo.upserts[0].ProductKey != "now vitamin d 5000 iu" {
		t.Fatalf("upserts = %+v", repo.upserts)
	}
}

func TestFrequentItems(t *testing.T) {
	repo := &stubRepo{frequent: []dom.Entry{entry("creatine", 9)}}
	svc := newTestSvc(repo)

	items, err := svc.FrequentItems(context.Background(), uuid.New(), 0)
	if err != nil {
		t.Fatalf("frequent: %v", err)
	}
	if len(items) != 1 || items[0].ProductName != "creatine" || items[0].TimesLogged != 9 {
		t.Fatalf("items = %+v", items)
	}
	if repo.floorSeen != 1 {
		t.Fatalf("frequent floor = %d, want 1", repo.floorSeen)
	}

	if _, err := svc.FrequentItems(context.Background(), uuid.Nil, 5); err == nil {
		t.Fatal("nil user should error")
	}
}
