package service

import (
	"strings"

	"vitalog/internal/core/phonetic"
	"vitalog/internal/core/textkey"
)

// Confidence scoring constants. The documented values are the contract
const (
	scoreExact     = 100
	scoreSubstring = 80
	scoreWordScale = 60
	bonusBrand     = 20
	bonusPhonetic  = 15
)

// score rates a candidate name/brand against the query on a 0-100 scale.
// Exact key equality beats substring containment beats word overlap, brand
// and phonetic closeness add on top, the total clamps to [0, 100]
func score(query, name, brand string) int {
	qk := textkey.Key(query)
	nk := textkey.Key(name)
	if qk == "" || nk == "" {
		return 0
	}

	var s int
	switch {
	case qk == nk:
		s = scoreExact
	case strings.Contains(nk, qk) || strings.Contains(qk, nk):
		s = scoreSubstring
	default:
		s = int(wordOverlap(qk, nk) * scoreWordScale)
	}

	bk := textkey.Key(brand)
	if bk != "" && strings.Contains(qk, bk) {
		s += bonusBrand
	}
	if phonetic.Close(query, name) || (brand != "" && phonetic.Close(query, brand)) {
		s += bonusPhonetic
	}

	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s
}

// wordOverlap is the fraction of query words found among candidate words,
// matching by substring containment in either direction
func wordOverlap(queryKey, nameKey string) float64 {
	qw := strings.Split(queryKey, " ")
	nw := strings.Split(nameKey, " ")
	if len(qw) == 0 {
		return 0
	}
	matched := 0
	for _, q := range qw {
		for _, n := range nw {
			if strings.Contains(n, q) || strings.Contains(q, n) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(qw))
}
