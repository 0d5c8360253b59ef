// Package domain defines the ingest pipeline types and ports
package domain

import (
	"time"

	"github.com/google/uuid"

	"vitalog/internal/core/schema"
	catdom "vitalog/internal/services/catalog/domain"
)

// AuditStatus tracks one processing attempt through its lifecycle
type AuditStatus string

// Audit statuses. pending is the initial state, parsed and error are
// terminal, awaiting_user_clarification resolves to
// awaiting_user_clarification_success once the user confirms
const (
	AuditPending          AuditStatus = "pending"
	AuditParsed           AuditStatus = "parsed"
	AuditAwaiting         AuditStatus = "awaiting_user_clarification"
	AuditAwaitingResolved AuditStatus = "awaiting_user_clarification_success"
	AuditError            AuditStatus = "error"
)

// Classification source tags recorded on audit records
const (
	SourceRegistryBypass      = "registry_bypass"
	SourceRegistryFuzzyBypass = "registry_fuzzy_bypass"
)

// AuditRecord is the processing-attempt ledger row
type AuditRecord struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	RawText   string           `json:"raw_text"`
	EventType schema.EventType `json:"event_type,omitempty"`
	Source    string           `json:"source,omitempty"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	Status    AuditStatus      `json:"status"`
	ErrorText string           `json:"error_text,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// VoiceEvent is the final persisted health-log entry
type VoiceEvent struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	EventType      schema.EventType `json:"event_type"`
	EventData      map[string]any   `json:"event_data"`
	EventTime      time.Time        `json:"event_time"`
	SourceRecordID uuid.UUID        `json:"source_record_id"`
	CaptureMethod  string           `json:"capture_method"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Parsed is the classification carried in a needs-confirmation result
type Parsed struct {
	EventType schema.EventType `json:"event_type"`
	EventData map[string]any   `json:"event_data"`
	EventTime time.Time        `json:"event_time,omitempty"`
}

// ProcessingResult is the orchestrator's discriminated outcome
type ProcessingResult struct {
	Success        bool            `json:"success"`
	Complete       bool            `json:"complete"`
	Event          *VoiceEvent     `json:"event,omitempty"`
	AuditID        uuid.UUID       `json:"audit_id,omitempty"`
	MissingFields  []string        `json:"missing_fields,omitempty"`
	ProductOptions []catdom.Result `json:"product_options,omitempty"`
	Confidence     int             `json:"confidence,omitempty"`
	Parsed         *Parsed         `json:"parsed,omitempty"`
	Source         string          `json:"source,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// ProcessArgs is the orchestrator's public entry input
type ProcessArgs struct {
	UserID        uuid.UUID
	Text          string
	CaptureMethod string
}

// ConfirmArgs resolves an awaiting clarification attempt. Exactly one of
// OptionIndex (a pick among the returned product options, reflected back by
// the client) or manual Fields applies, both may refine EventData
type ConfirmArgs struct {
	UserID  uuid.UUID
	AuditID uuid.UUID

	// Option is the catalog result the user picked, nil for manual entry
	Option *catdom.Result

	// EventType and Fields override or fill the parsed classification
	EventType schema.EventType
	Fields    map[string]any
	EventTime time.Time

	CaptureMethod string
}

// ItemsArgs processes several detected items in one request, the photo
// multi-item flow. Each item runs the same decision pipeline independently
type ItemsArgs struct {
	UserID        uuid.UUID
	Items         []ItemInput
	CaptureMethod string
}

// ItemInput is one detected item with an optional quantity hint
type ItemInput struct {
	Text     string
	Quantity string
}
