// Package schema holds the static event-type field table
//
// Every event type declares the fields it requires before the event may be
// persisted and the optional fields it may carry. The table is the single
// source of truth for the completeness check made by the ingest orchestrator
package schema

// EventType discriminates health events
type EventType string

// Recognized event types
const (
	EventFood       EventType = "food"
	EventGlucose    EventType = "glucose"
	EventInsulin    EventType = "insulin"
	EventActivity   EventType = "activity"
	EventSupplement EventType = "supplement"
	EventSauna      EventType = "sauna"
	EventMedication EventType = "medication"
	EventSymptom    EventType = "symptom"
)

// FieldSpec lists required and optional eventData fields for one event type
type FieldSpec struct {
	Required []string
	Optional []string
}

var table = map[EventType]FieldSpec{
	EventFood: {
		Required: []string{"description"},
		Optional: []string{"calories", "carbs", "protein", "fat", "serving_size"},
	},
	EventGlucose: {
		Required: []string{"value", "units"},
		Optional: []string{"context"},
	},
	EventInsulin: {
		Required: []string{"value", "units", "insulin_type"},
		Optional: []string{"site"},
	},
	EventActivity: {
		Required: []string{"activity_type", "duration"},
		Optional: []string{"intensity", "distance", "calories_burned"},
	},
	EventSupplement: {
		Required: []string{"name", "dosage"},
		Optional: []string{"units"},
	},
	EventSauna: {
		Required: []string{"duration", "temperature"},
		Optional: []string{"temperature_units"},
	},
	EventMedication: {
		Required: []string{"name", "dosage"},
		Optional: []string{"units", "route"},
	},
	EventSymptom: {
		Required: []string{"description"},
		Optional: []string{"severity", "duration"},
	},
}

// Known reports whether t is a recognized event type
func Known(t EventType) bool {
	_, ok := table[t]
	return ok
}

// Spec returns the field spec for t. ok is false for unknown types
func Spec(t EventType) (FieldSpec, bool) {
	fs, ok := table[t]
	return fs, ok
}

// present means non-nil and, for strings, non-empty
func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// Missing returns the required fields of t absent from data, in table order.
// Unknown types report no missing fields, callers must gate on Known first
func Missing(t EventType, data map[string]any) []string {
	fs, ok := table[t]
	if !ok {
		return nil
	}
	var out []string
	for _, f := range fs.Required {
		if !present(data[f]) {
			out = append(out, f)
		}
	}
	return out
}

// Complete reports whether data satisfies every required field of t
func Complete(t EventType, data map[string]any) bool {
	if !Known(t) {
		return false
	}
	return len(Missing(t, data)) == 0
}
