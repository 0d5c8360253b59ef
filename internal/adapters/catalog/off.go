// Package catalog provides external product database sources for the
// search aggregator. Every source is best-effort, failures and timeouts are
// logged and yield an empty result list
package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"vitalog/internal/platform/logger"

	dom "vitalog/internal/services/catalog/domain"
)

const (
	offBaseDefault = "https://world.openfoodfacts.org"
	offTimeout     = 8 * time.Second
	offUA          = "vitalog"
)

// OFFOptions configures the Open Food Facts source
type OFFOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// OFF searches the Open Food Facts public product database
type OFF struct {
	http *http.Client
	opts OFFOptions
	log  logger.Logger
}

// NewOFF creates the source with sane defaults
func NewOFF(o OFFOptions) *OFF {
	if o.BaseURL == "" {
		o.BaseURL = offBaseDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = offUA
	}
	if o.Timeout <= 0 {
		o.Timeout = offTimeout
	}
	return &OFF{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("catalog.off"),
	}
}

// Name implements domain.Source
func (s *OFF) Name() string { return "openfoodfacts" }

type offEnvelope struct {
	Products []struct {
		Code        string             `json:"code"`
		ProductName string             `json:"product_name"`
		Brands      string             `json:"brands"`
		Categories  string             `json:"categories"`
		ServingSize string             `json:"serving_size"`
		Nutriments  map[string]float64 `json:"nutriments"`
	} `json:"products"`
}

// Search implements domain.Source. Never returns an error, any failure is
// logged and contributes zero results
func (s *OFF) Search(ctx context.Context, query string, limit int) []dom.Result {
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	u := s.opts.BaseURL + "/cgi/search.pl?" + url.Values{
		"search_terms":  {query},
		"search_simple": {"1"},
		"action":        {"process"},
		"json":          {"1"},
		"page_size":     {strconv.Itoa(limit)},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("off request build failed")
		return nil
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("off search failed")
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.log.Warn().Int("status", resp.StatusCode).Str("query", query).Msg("off search non-200")
		return nil
	}

	var env offEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("off response decode failed")
		return nil
	}

	out := make([]dom.Result, 0, len(env.Products))
	for _, p := range env.Products {
		if p.ProductName == "" {
			continue
		}
		out = append(out, dom.Result{
			Source:      s.Name(),
			ID:          p.Code,
			Name:        p.ProductName,
			Brand:       firstCSV(p.Brands),
			Category:    firstCSV(p.Categories),
			ServingSize: p.ServingSize,
			Nutrients:   p.Nutriments,
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}
