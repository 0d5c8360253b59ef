// Package reclassify corrects upstream "food" labels that are really supplements
//
// LLM classifiers reliably confuse drinkable or edible with food when the
// right axis is purpose, nutrition versus supplementation. A deterministic
// pattern tier handles known high-confidence brands cheaply and a weighted
// scoring tier generalizes to unknown brands without hardcoding every name
package reclassify

import (
	"regexp"
	"strings"
)

// Scoring weights and the reclassification threshold. Business heuristics,
// the documented values are the contract
const (
	WeightKeyword    = 0.5
	WeightDosage     = 0.3
	WeightFormFactor = 0.2
	WeightCategory   = 0.4

	// ScoreThreshold is inclusive, a score of exactly 0.7 reclassifies
	ScoreThreshold = 0.7

	// DefaultDosage is used when the scoring tier reclassifies and no
	// dosage was extracted from the text
	DefaultDosage = "1 serving"
	DefaultUnits  = "serving"
)

// Outcome is the reclassifier's verdict for one description
type Outcome struct {
	Reclassified bool

	// Supplement record fields, set only when Reclassified
	Name   string
	Dosage string
	Units  string

	// Rule names the pattern rule that fired, or "score" for the
	// scoring tier. Empty when not reclassified
	Rule string

	// Score is the scoring-tier total. Zero when a pattern rule fired
	Score float64
}

// patternRule maps a brand or category expression to a canonical supplement
// record. Verbatim name "" means keep the caller's original description
type patternRule struct {
	name   string
	re     *regexp.Regexp
	out    string
	dosage string
	units  string
}

// Pattern rules are ordered, the first match wins. Powder forms are listed
// explicitly, a "protein shake" is ambiguous enough to leave to the scoring
// tier instead
var patternRules = []patternRule{
	{
		name:   "lmnt",
		re:     regexp.MustCompile(`(?i)\b(element|lmnt)\b`),
		out:    "LMNT Electrolyte Drink Mix",
		dosage: "1 packet",
		units:  "packet",
	},
	{
		name:   "liquid-iv",
		re:     regexp.MustCompile(`(?i)\bl(iqui|q)d[\s-]*iv\b`),
		out:    "Liquid I.V. Hydration Multiplier",
		dosage: "1 packet",
		units:  "packet",
	},
	{
		name:   "nuun",
		re:     regexp.MustCompile(`(?i)\bnuun\b`),
		out:    "Nuun Electrolyte Tablets",
		dosage: "1 tablet",
		units:  "tablet",
	},
	{
		name:   "electrolyte",
		re:     regexp.MustCompile(`(?i)\belectrolytes?\b`),
		dosage: "1 serving",
		units:  "serving",
	},
	{
		name:   "protein-powder",
		re:     regexp.MustCompile(`(?i)\bprotein\s+powder\b|\b(whey|casein)\s+(isolate|concentrate|powder)\b`),
		dosage: "1 scoop",
		units:  "scoop",
	},
	{
		name:   "creatine",
		re:     regexp.MustCompile(`(?i)\bcreatine\b`),
		out:    "Creatine Monohydrate",
		dosage: "5 g",
		units:  "g",
	},
	{
		name:   "pre-workout",
		re:     regexp.MustCompile(`(?i)\bpre[\s-]?workout\b`),
		dosage: "1 scoop",
		units:  "scoop",
	},
	{
		name:   "amino-acids",
		re:     regexp.MustCompile(`(?i)\bbcaas?\b|\beaas?\b|\bamino\s+acids?\b`),
		dosage: "1 serving",
		units:  "serving",
	},
}

// Scoring-tier signal groups. Each group contributes its weight at most once
var (
	keywordRe = regexp.MustCompile(`(?i)\b(vitamin|supplement|whey|casein|protein|collagen|creatine|` +
		`magnesium|zinc|iron|calcium|potassium|omega|probiotic|prebiotic|melatonin|ashwagandha|` +
		`glutamine|electrolyte|fish\s+oil)s?\b`)
	dosageRe = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(mg|mcg|iu|g|grams?|packs?|packets?|scoops?|` +
		`tablets?|capsules?|softgels?|gumm(y|ies))\b`)
	formFactorRe = regexp.MustCompile(`(?i)\b(powder|shake|drink\s+mix|capsules?|tablets?|softgels?|` +
		`gumm(y|ies)|chewables?)\b`)
	categoryRe = regexp.MustCompile(`(?i)\b(pre[\s-]?workout|post[\s-]?workout|sports?\s+nutrition|` +
		`multivitamins?|nootropics?)\b`)
)

// Score computes the scoring-tier total for description, capped at 1.0
func Score(description string) float64 {
	s := 0.0
	if keywordRe.MatchString(description) {
		s += WeightKeyword
	}
	if dosageRe.MatchString(description) {
		s += WeightDosage
	}
	if formFactorRe.MatchString(description) {
		s += WeightFormFactor
	}
	if categoryRe.MatchString(description) {
		s += WeightCategory
	}
	if s > 1.0 {
		s = 1.0
	}
	return s
}

// Apply runs both tiers against description. The pattern tier short-circuits
// the scoring tier, the scoring tier reclassifies at Score >= ScoreThreshold.
// When reclassified the outcome always carries name, dosage and units
func Apply(description string) Outcome {
	text := strings.TrimSpace(description)
	if text == "" {
		return Outcome{}
	}

	for _, r := range patternRules {
		if !r.re.MatchString(text) {
			continue
		}
		name := r.out
		if name == "" {
			name = text
		}
		return Outcome{
			Reclassified: true,
			Name:         name,
			Dosage:       r.dosage,
			Units:        r.units,
			Rule:         r.name,
		}
	}

	score := Score(text)
	if score >= ScoreThreshold {
		return Outcome{
			Reclassified: true,
			Name:         text,
			Dosage:       DefaultDosage,
			Units:        DefaultUnits,
			Rule:         "score",
			Score:        score,
		}
	}
	return Outcome{Score: score}
}
