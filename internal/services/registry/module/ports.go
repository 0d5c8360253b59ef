package module

import "vitalog/internal/services/registry/domain"

// Ports exposes the registry surfaces other modules may depend on
type Ports struct {
	Lookup   domain.LookupPort
	Upsert   domain.UpsertPort
	Frequent domain.FrequentPort
}
