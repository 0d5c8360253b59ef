package reclassify

import (
	"strings"
	"testing"
)

func TestApply_PatternTier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		rule string
		out  string
	}{
		{
			name: "element word maps to LMNT",
			in:   "element citrus",
			rule: "lmnt",
			out:  "LMNT Electrolyte Drink Mix",
		},
		{
			name: "lmnt spelled out",
			in:   "LMNT raspberry",
			rule: "lmnt",
			out:  "LMNT Electrolyte Drink Mix",
		},
		{
			name: "liquid iv",
			in:   "liquid IV lemon lime",
			rule: "liquid-iv",
			out:  "Liquid I.V. Hydration Multiplier",
		},
		{
			name: "nuun tablets",
			in:   "nuun sport",
			rule: "nuun",
			out:  "Nuun Electrolyte Tablets",
		},
		{
			name: "generic electrolyte keeps description",
			in:   "electrolyte mix",
			rule: "electrolyte",
			out:  "electrolyte mix",
		},
		{
			name: "protein powder",
			in:   "chocolate protein powder",
			rule: "protein-powder",
			out:  "chocolate protein powder",
		},
		{
			name: "whey isolate",
			in:   "whey isolate vanilla",
			rule: "protein-powder",
			out:  "whey isolate vanilla",
		},
		{
			name: "creatine",
			in:   "creatine 5g",
			rule: "creatine",
			out:  "Creatine Monohydrate",
		},
		{
			name: "pre-workout",
			in:   "pre workout blue razz",
			rule: "pre-workout",
			out:  "pre workout blue razz",
		},
		{
			name: "bcaa",
			in:   "BCAAs watermelon",
			rule: "amino-acids",
			out:  "BCAAs watermelon",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(tc.in)
			if !got.Reclassified {
				t.Fatalf("Apply(%q) did not reclassify", tc.in)
			}
			if got.Rule != tc.rule {
				t.Fatalf("rule = %q, want %q", got.Rule, tc.rule)
			}
			if got.Name != tc.out {
				t.Fatalf("name = %q, want %q", got.Name, tc.out)
			}
			if got.Dosage == "" || got.Units == "" {
				t.Fatalf("reclassified outcome must carry dosage and units: %+v", got)
			}
		})
	}
}

// "element" must match as a whole word only.
func TestApply_ElementWordBoundary(t *testing.T) {
	got := Apply("elementary school lunch")
	if got.Reclassified {
		t.Fatalf("elementary should not fire the lmnt rule: %+v", got)
	}
}

func TestApply_ScoringTier(t *testing.T) {
	tests := []struct {
		name         string
		in           string
		score        float64
		reclassified bool
	}{
		{
			// keyword whey/protein 0.5 + form factor shake 0.2, boundary inclusive
			name:         "whey protein shake hits threshold exactly",
			in:           "whey protein shake",
			score:        0.7,
			reclassified: true,
		},
		{
			// only form factor powder
			name:         "cocoa powder stays food",
			in:           "cocoa powder",
			score:        0.2,
			reclassified: false,
		},
		{
			// keyword 0.5 + dosage 0.3
			name:         "magnesium with dosage",
			in:           "magnesium 400 mg",
			score:        0.8,
			reclassified: true,
		},
		{
			name:         "plain food",
			in:           "grilled chicken salad",
			score:        0,
			reclassified: false,
		},
		{
			// keyword 0.5 + dosage 0.3 + form factor 0.2 + category 0.4 capped
			name:         "everything caps at one",
			in:           "multivitamin supplement powder 2 capsules",
			score:        1.0,
			reclassified: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.in); got != tc.score {
				t.Fatalf("Score(%q) = %v, want %v", tc.in, got, tc.score)
			}
			got := Apply(tc.in)
			if got.Reclassified != tc.reclassified {
				t.Fatalf("Apply(%q).Reclassified = %v, want %v", tc.in, got.Reclassified, tc.reclassified)
			}
			if got.Reclassified && got.Rule != "score" {
				t.Fatalf("expected scoring tier, fired %q", got.Rule)
			}
		})
	}
}

// Once reclassified, the outcome is always a name/dosage/units record.
func TestApply_Monotonicity(t *testing.T) {
	for _, in := range []string{"element citrus", "whey protein shake", "creatine", "magnesium 400 mg"} {
		got := Apply(in)
		if !got.Reclassified {
			t.Fatalf("Apply(%q) should reclassify", in)
		}
		if got.Name == "" || got.Dosage == "" || got.Units == "" {
			t.Fatalf("Apply(%q) = %+v, missing supplement fields", in, got)
		}
		if strings.Contains(got.Name, "description") {
			t.Fatalf("name should never be a description key: %+v", got)
		}
	}
}
