package schema

import (
	"reflect"
	"testing"
)

func TestKnown(t *testing.T) {
	for _, et := range []EventType{
		EventFood, EventGlucose, EventInsulin, EventActivity,
		EventSupplement, EventSauna, EventMedication, EventSymptom,
	} {
		if !Known(et) {
			t.Fatalf("%s should be known", et)
		}
	}
	if Known(EventType("mood")) {
		t.Fatal("unknown type reported as known")
	}
}

// Completeness law: complete iff every required field is present, non-nil
// and, when a string, non-empty.
func TestComplete_Table(t *testing.T) {
	tests := []struct {
		name     string
		et       EventType
		data     map[string]any
		complete bool
		missing  []string
	}{
		{
			name:     "food with description",
			et:       EventFood,
			data:     map[string]any{"description": "oatmeal"},
			complete: true,
		},
		{
			name:     "food empty description",
			et:       EventFood,
			data:     map[string]any{"description": ""},
			complete: false,
			missing:  []string{"description"},
		},
		{
			name:     "supplement missing dosage",
			et:       EventSupplement,
			data:     map[string]any{"name": "creatine"},
			complete: false,
			missing:  []string{"dosage"},
		},
		{
			name:     "supplement complete",
			et:       EventSupplement,
			data:     map[string]any{"name": "creatine", "dosage": "5 g"},
			complete: true,
		},
		{
			name:     "insulin nil value",
			et:       EventInsulin,
			data:     map[string]any{"value": nil, "units": "u", "insulin_type": "bolus"},
			complete: false,
			missing:  []string{"value"},
		},
		{
			name:     "glucose numeric value",
			et:       EventGlucose,
			data:     map[string]any{"value": 5.4, "units": "mmol/L"},
			complete: true,
		},
		{
			name:     "activity missing both",
			et:       EventActivity,
			data:     map[string]any{},
			complete: false,
			missing:  []string{"activity_type", "duration"},
		},
		{
			name:     "unknown type never complete",
			et:       EventType("mood"),
			data:     map[string]any{"description": "fine"},
			complete: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Complete(tc.et, tc.data); got != tc.complete {
				t.Fatalf("Complete = %v, want %v", got, tc.complete)
			}
			if got := Missing(tc.et, tc.data); !reflect.DeepEqual(got, tc.missing) {
				t.Fatalf("Missing = %v, want %v", got, tc.missing)
			}
		})
	}
}
