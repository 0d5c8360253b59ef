package service

import (
	"testing"

	"vitalog/internal/core/schema"
)

func TestShouldSearch_Table(t *testing.T) {
	tests := []struct {
		name       string
		eventType  schema.EventType
		data       map[string]any
		confidence int
		input      string
		output     string
		want       bool
	}{
		{
			name:       "glucose never searches",
			eventType:  schema.EventGlucose,
			data:       map[string]any{"value": 5.4, "units": "mmol/L"},
			confidence: 50,
			want:       false,
		},
		{
			name:       "activity never searches",
			eventType:  schema.EventActivity,
			data:       map[string]any{"activity_type": "run", "duration": "30 min"},
			confidence: 99,
			want:       false,
		},
		{
			name:       "food always searches",
			eventType:  schema.EventFood,
			data:       map[string]any{"description": "grilled chicken"},
			confidence: 99,
			input:      "grilled chicken",
			output:     "grilled chicken",
			want:       true,
		},
		{
			name:       "confidence at the floor searches",
			eventType:  schema.EventSupplement,
			data:       map[string]any{"name": "vitamin d", "dosage": "1 tablet"},
			confidence: SearchConfidenceFloor,
			input:      "vitamin d",
			output:     "vitamin d",
			want:       true,
		},
		{
			name:       "phonetic transformation searches despite high confidence",
			eventType:  schema.EventSupplement,
			data:       map[string]any{"name": "LMNT citrus", "dosage": "1 packet"},
			confidence: 95,
			input:      "element citrus",
			output:     "LMNT citrus",
			want:       true,
		},
		{
			name:       "known brand with high confidence is trusted",
			eventType:  schema.EventSupplement,
			data:       map[string]any{"name": "Thorne Magnesium", "dosage": "1 capsule"},
			confidence: 90,
			input:      "thorne magnesium",
			output:     "Thorne Magnesium",
			want:       false,
		},
		{
			name:       "known medication brand is trusted",
			eventType:  schema.EventMedication,
			data:       map[string]any{"name": "Tylenol", "dosage": "500 mg"},
			confidence: 92,
			input:      "tylenol",
			output:     "Tylenol",
			want:       false,
		},
		{
			name:       "unbranded supplement defaults to verification",
			eventType:  schema.EventSupplement,
			data:       map[string]any{"name": "magnesium glycinate", "dosage": "400 mg"},
			confidence: 95,
			input:      "magnesium glycinate",
			output:     "magnesium glycinate",
			want:       true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shouldSearch(tc.eventType, tc.data, tc.confidence, tc.input, tc.output)
			if got != tc.want {
				t.Fatalf("shouldSearch = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBrandDetected(t *testing.T) {
	if !brandDetected("Thorne Magnesium Bisglycinate") {
		t.Fatal("thorne is on the allowlist")
	}
	if brandDetected("house brand magnesium") {
		t.Fatal("unknown brand must not match")
	}
}

func TestSearchQuery_Preference(t *testing.T) {
	if q := searchQuery(map[string]any{"description": "d", "name": "n"}, "raw"); q != "d" {
		t.Fatalf("q = %q, want description first", q)
	}
	if q := searchQuery(map[string]any{"name": "n"}, "raw"); q != "n" {
		t.Fatalf("q = %q, want name second", q)
	}
	if q := searchQuery(map[string]any{}, "raw"); q != "raw" {
		t.Fatalf("q = %q, want raw fallback", q)
	}
}
