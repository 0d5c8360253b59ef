// Package domain defines the external product catalog types and ports
package domain

import "context"

// Result is one external-catalog hit, ephemeral and ranked per search call
type Result struct {
	Source      string             `json:"source"`
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Brand       string             `json:"brand,omitempty"`
	Category    string             `json:"category,omitempty"`
	ServingSize string             `json:"serving_size,omitempty"`
	Nutrients   map[string]float64 `json:"nutrients,omitempty"`
	Confidence  int                `json:"confidence"`
}

// Source is one external product database. Calls are best-effort, a source
// must catch its own failures and return an empty list rather than erroring
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) []Result
}

// SearchPort aggregates across sources with phonetic query variants
type SearchPort interface {
	SearchAll(ctx context.Context, query string) []Result
}
