package service

import (
	"strings"

	"vitalog/internal/core/phonetic"
	"vitalog/internal/core/schema"
)

// Search-trigger tunables. The documented values are the contract
const (
	// SearchConfidenceFloor triggers catalog verification whenever the
	// classifier confidence is at or below it
	SearchConfidenceFloor = 83

	// CategoryOverrideConfidence gates trusting a catalog category over
	// the classifier's label, the top hit must score strictly above it
	CategoryOverrideConfidence = 80

	// RegistryConfidence is the confidence reported for registry hits
	RegistryConfidence = 95
)

// knownBrands is the static allowlist for the trusted-brand shortcut,
// matched as lowercase substrings of the description
var knownBrands = []string{
	"now foods", "now sports", "thorne", "pure encapsulations", "nature made",
	"garden of life", "optimum nutrition", "solgar", "nordic naturals",
	"lmnt", "nuun", "liquid iv", "centrum", "kirkland",
	"tylenol", "advil", "motrin", "aleve", "metamucil", "zyrtec", "claritin",
}

func brandDetected(description string) bool {
	d := strings.ToLower(description)
	for _, b := range knownBrands {
		if strings.Contains(d, b) {
			return true
		}
	}
	return false
}

// shouldSearch decides whether external catalog verification is needed.
// Rules apply in order, the first match wins:
//  1. only food, supplement and medication ever need product lookup
//  2. food always verifies, products are too varied to trust outright
//  3. at-or-below-floor confidence always verifies
//  4. a phonetic transformation between user input and classifier output
//     means the classifier silently corrected a term, always verify
//  5. a known brand with above-floor confidence is a trusted shortcut
//  6. default to verification
func shouldSearch(
	eventType schema.EventType,
	eventData map[string]any,
	confidence int,
	userInput, classifierOutput string,
) bool {
	switch eventType {
	case schema.EventFood, schema.EventSupplement, schema.EventMedication:
	default:
		return false
	}
	if eventType == schema.EventFood {
		return true
	}
	if confidence <= SearchConfidenceFloor {
		return true
	}
	if phonetic.TransformDetected(userInput, classifierOutput) {
		return true
	}
	if brandDetected(searchQuery(eventData, userInput)) {
		return false
	}
	return true
}

// searchQuery picks the text to search for, description before name before
// the raw input
func searchQuery(eventData map[string]any, rawText string) string {
	if s, ok := eventData["description"].(string); ok && s != "" {
		return s
	}
	if s, ok := eventData["name"].(string); ok && s != "" {
		return s
	}
	return rawText
}
