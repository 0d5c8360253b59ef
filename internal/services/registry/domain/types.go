// Package domain defines the product registry types and ports
package domain

import (
	"time"

	"github.com/google/uuid"

	"vitalog/internal/core/schema"
)

// Classification sources reported on registry hits
const (
	SourceExact = "user_registry_exact"
	SourceFuzzy = "user_registry_fuzzy"
)

// Entry is one learned (user, productKey) classification
type Entry struct {
	UserID            uuid.UUID        `json:"user_id"`
	ProductKey        string           `json:"product_key"`
	EventType         schema.EventType `json:"event_type"`
	ProductName       string           `json:"product_name"`
	Brand             string           `json:"brand,omitempty"`
	TimesLogged       int              `json:"times_logged"`
	FirstLoggedAt     time.Time        `json:"first_logged_at"`
	LastLoggedAt      time.Time        `json:"last_logged_at"`
	ExternalProductID string           `json:"external_product_id,omitempty"`
	ExternalSource    string           `json:"external_source,omitempty"`
}

// Match is a registry hit plus the lookup source that produced it
type Match struct {
	Entry  Entry  `json:"entry"`
	Source string `json:"source"`
}

// UpsertArgs records one confirmed event against the registry
type UpsertArgs struct {
	UserID            uuid.UUID
	EventType         schema.EventType
	ProductName       string
	Brand             string
	ExternalProductID string
	ExternalSource    string
}

// FrequentItem is a compact view of an entry used as classifier context
type FrequentItem struct {
	ProductName string           `json:"product_name"`
	Brand       string           `json:"brand,omitempty"`
	EventType   schema.EventType `json:"event_type"`
	TimesLogged int              `json:"times_logged"`
}
