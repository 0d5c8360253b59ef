package domain

import catdom "vitalog/internal/services/catalog/domain"

// ProcessRequest is the wire form of one free-text processing attempt
type ProcessRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid4"`
	Text          string `json:"text" validate:"required"`
	CaptureMethod string `json:"capture_method" validate:"omitempty,oneof=voice text photo"`
}

// ConfirmRequest resolves a parked attempt with the user's choice
type ConfirmRequest struct {
	UserID        string         `json:"user_id" validate:"required,uuid4"`
	AuditID       string         `json:"audit_id" validate:"required,uuid4"`
	EventType     string         `json:"event_type" validate:"omitempty"`
	Fields        map[string]any `json:"fields" validate:"omitempty"`
	Option        *catdom.Result `json:"option" validate:"omitempty"`
	EventTime     string         `json:"event_time" validate:"omitempty"`
	CaptureMethod string         `json:"capture_method" validate:"omitempty,oneof=voice text photo"`
}

// ItemsRequest processes several detected items in one call
type ItemsRequest struct {
	UserID        string             `json:"user_id" validate:"required,uuid4"`
	Items         []ItemInputRequest `json:"items" validate:"required,min=1,max=25,dive"`
	CaptureMethod string             `json:"capture_method" validate:"omitempty,oneof=voice text photo"`
}

// ItemInputRequest is one detected item on the wire
type ItemInputRequest struct {
	Text     string `json:"text" validate:"required"`
	Quantity string `json:"quantity" validate:"omitempty"`
}
