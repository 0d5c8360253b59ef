package service

import (
	"context"
	"sync/atomic"
	"testing"

	dom "vitalog/internal/services/catalog/domain"
)

type stubSource struct {
	name    string
	results map[string][]dom.Result
	calls   atomic.Int32
	panics  bool
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(_ context.Context, query string, _ int) []dom.Result {
	s.calls.Add(1)
	if s.panics {
		panic("source exploded")
	}
	return s.results[query]
}

func TestScore_Table(t *testing.T) {
	tests := []struct {
		name  string
		query string
		cand  string
		brand string
		want  int
	}{
		{
			name:  "exact case-insensitive",
			query: "Creatine Monohydrate",
			cand:  "creatine monohydrate",
			want:  100,
		},
		{
			name:  "substring containment",
			query: "creatine",
			cand:  "creatine monohydrate powder",
			want:  80,
		},
		{
			name:  "word overlap half",
			query: "chocolate whey",
			cand:  "whey isolate vanilla",
			want:  30,
		},
		{
			name:  "brand and phonetic bonuses clamp at one hundred",
			query: "NOW vitamin d",
			cand:  "NOW vitamin d 5000",
			brand: "NOW",
			want:  100, // 80 substring + 20 brand + 15 phonetic, clamped
		},
		{
			name:  "phonetic closeness adds fifteen",
			query: "element",
			cand:  "LMNT",
			want:  15, // no word overlap but vowel-stripped forms match
		},
		{
			name:  "no signal",
			query: "creatine",
			cand:  "almond butter",
			want:  0,
		},
		{
			name:  "empty candidate",
			query: "creatine",
			cand:  "",
			want:  0,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := score(tc.query, tc.cand, tc.brand); got != tc.want {
				t.Fatalf("score(%q, %q, %q) = %d, want %d", tc.query, tc.cand, tc.brand, got, tc.want)
			}
		})
	}
}

func TestSearchAll_DedupFirstSeenWins(t *testing.T) {
	a := &stubSource{name: "a", results: map[string][]dom.Result{
		"creatine": {
			{Source: "a", ID: "1", Name: "Creatine Monohydrate", Brand: "Optimum"},
		},
	}}
	b := &stubSource{name: "b", results: map[string][]dom.Result{
		"creatine": {
			{Source: "b", ID: "2", Name: "creatine monohydrate", Brand: "optimum"},
			{Source: "b", ID: "3", Name: "Creatine HCL", Brand: "Kaged"},
		},
	}}

	out := New(a, b).SearchAll(context.Background(), "creatine")
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2 after dedup: %+v", len(out), out)
	}
	ids := map[string]bool{}
	for _, r := range out {
		ids[r.ID] = true
	}
	if ids["1"] == ids["2"] {
		t.Fatalf("exactly one of the duplicate pair must survive: %+v", out)
	}
}

func TestSearchAll_SourceFailureIsolated(t *testing.T) {
	bad := &stubSource{name: "bad", panics: true}
	good := &stubSource{name: "good", results: map[string][]dom.Result{
		"creatine": {{Source: "good", ID: "1", Name: "Creatine Monohydrate"}},
	}}

	out := New(bad, good).SearchAll(context.Background(), "creatine")
	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("good source results must survive a bad source: %+v", out)
	}
}

func TestSearchAll_PhoneticVariantsFanOut(t *testing.T) {
	src := &stubSource{name: "a", results: map[string][]dom.Result{
		// only the vowel-stripped variant hits
		"lmnt citrus": {{Source: "a", ID: "1", Name: "LMNT Citrus Salt", Brand: "LMNT"}},
	}}

	out := New(src).SearchAll(context.Background(), "element citrus")
	if len(out) != 1 {
		t.Fatalf("variant hit should be returned: %+v", out)
	}
	// original + "lmnt citrus" + "element ctrs" + "lmnt ctrs"
	if got := src.calls.Load(); got != 4 {
		t.Fatalf("source called %d times, want 4", got)
	}
}

func TestSearchAll_CapsResults(t *testing.T) {
	var many []dom.Result
	for i := 0; i < 25; i++ {
		many = append(many, dom.Result{
			Source: "a",
			ID:     string(rune('a' + i)),
			Name:   "protein bar " + string(rune('a'+i)),
		})
	}
	src := &stubSource{name: "a", results: map[string][]dom.Result{"protein bar": many}}

	out := New(src).SearchAll(context.Background(), "protein bar")
	if len(out) != MaxResults {
		t.Fatalf("got %d results, want %d", len(out), MaxResults)
	}
}

func TestSearchAll_OrderedByConfidence(t *testing.T) {
	src := &stubSource{name: "a", results: map[string][]dom.Result{
		"creatine": {
			{Source: "a", ID: "weak", Name: "almond butter"},
			{Source: "a", ID: "strong", Name: "creatine"},
			{Source: "a", ID: "mid", Name: "creatine monohydrate"},
		},
	}}

	out := New(src).SearchAll(context.Background(), "creatine")
	if len(out) != 3 {
		t.Fatalf("got %d results", len(out))
	}
	if out[0].ID != "strong" || out[1].ID != "mid" || out[2].ID != "weak" {
		t.Fatalf("bad order: %+v", out)
	}
}
