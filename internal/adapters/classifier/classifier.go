// Package classifier adapts LLM chat-completion providers into the
// free-text-to-structured-event classifier consumed by the ingest pipeline
package classifier

import (
	"context"
	"time"
)

// Result is the classifier's structured verdict for one input
type Result struct {
	EventType  string         `json:"event_type"`
	EventData  map[string]any `json:"event_data"`
	EventTime  time.Time      `json:"event_time"`
	Confidence int            `json:"confidence"`
}

// Classifier turns free text into a structured event classification.
// History is a short context block of the user's frequently logged products
// used to bias matching. A malformed or unparseable model reply is an error,
// the caller treats any error as fatal to the current attempt
type Classifier interface {
	Classify(ctx context.Context, text string, history []string) (Result, error)
}
