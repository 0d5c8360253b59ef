// Package service aggregates external product searches across catalog sources
//
// One search fans the original query plus its phonetic variants out to every
// configured source concurrently, joins all calls, scores each hit against
// the original query, deduplicates on normalized name+brand and returns the
// top results by confidence
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"vitalog/internal/core/phonetic"
	"vitalog/internal/core/textkey"
	"vitalog/internal/platform/logger"

	dom "vitalog/internal/services/catalog/domain"
)

// Aggregation tunables
const (
	// MaxResults caps the ranked output of one aggregated search
	MaxResults = 10

	// PerSourceLimit is the raw-hit cap requested from each source call
	PerSourceLimit = 10

	// MaxConcurrent bounds in-flight source calls for one aggregation
	MaxConcurrent = 8

	// SourceTimeout bounds one source call, a timeout is that call's
	// failure and contributes zero results
	SourceTimeout = 5 * time.Second
)

// Service is the aggregator surface
type Service interface {
	dom.SearchPort
}

// Svc fans queries out to its sources
type Svc struct {
	sources []dom.Source
	timeout time.Duration
	log     *logger.Logger
}

// New constructs the aggregator over the given sources
func New(sources ...dom.Source) *Svc {
	return &Svc{
		sources: sources,
		timeout: SourceTimeout,
		log:     logger.Named("catalog"),
	}
}

// SearchAll runs the full query-variant by source cross product concurrently
// and joins all calls before ranking. No partial results are used
func (s *Svc) SearchAll(ctx context.Context, query string) []dom.Result {
	if query == "" || len(s.sources) == 0 {
		return nil
	}

	queries := append([]string{query}, phonetic.Variants(query)...)

	type call struct {
		src   dom.Source
		query string
	}
	calls := make([]call, 0, len(queries)*len(s.sources))
	for _, q := range queries {
		for _, src := range s.sources {
			calls = append(calls, call{src: src, query: q})
		}
	}

	results := make([][]dom.Result, len(calls))
	sem := make(chan struct{}, MaxConcurrent)
	var wg sync.WaitGroup
	for i, c := range calls {
		wg.Add(1)
		go func(i int, c call) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = s.searchOne(ctx, c.src, c.query)
		}(i, c)
	}
	wg.Wait()

	return s.rank(query, results)
}

// searchOne runs a single source call under the per-call timeout, absorbing
// panics so one misbehaving source cannot abort the aggregation
func (s *Svc) searchOne(ctx context.Context, src dom.Source, query string) (out []dom.Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn().Str("source", src.Name()).Str("query", query).
				Interface("panic", r).Msg("source panicked, dropping its results")
			out = nil
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return src.Search(cctx, query, PerSourceLimit)
}

// rank scores, deduplicates and orders the joined results. The dedup key is
// the normalized name+brand and the first-seen result wins. Ordering is by
// descending confidence, ties keep dedup-pass insertion order
func (s *Svc) rank(query string, batches [][]dom.Result) []dom.Result {
	seen := make(map[string]struct{})
	var out []dom.Result
	for _, batch := range batches {
		for _, r := range batch {
			if r.Name == "" {
				continue
			}
			key := textkey.Key(r.Name) + textkey.Key(r.Brand)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			r.Confidence = score(query, r.Name, r.Brand)
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}
