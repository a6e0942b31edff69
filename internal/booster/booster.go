// Package booster adjusts the confidence of ambiguous spans using domain
// vocabulary found near them. It is a pure function over (text, spans): it
// never creates or deletes spans, only raises confidence toward 1.0.
package booster

import (
	"strings"

	"github.com/varalys/piiguard/internal/types"
)

const (
	// window is how far around a span, in bytes, vocabulary is searched.
	window = 64
	// delta is added once per boosted span, capped at 1.0.
	delta = 0.15
)

// vocab maps ambiguous categories to the nearby words that make a match more
// credible. Matching is case-insensitive.
var vocab = map[types.EntityType][]string{
	types.EntityPerson: {
		"plaintiff", "defendant", "attorney", "counsel", "witness", "judge",
		"patient", "client", "deceased", "claimant", "petitioner", "respondent",
		"deponent", "guardian",
	},
	types.EntityOrganization: {
		"employer", "firm", "company", "corporation", "insurer", "hospital",
		"provider", "defendant", "plaintiff",
	},
}

// Boost returns a new slice with adjusted confidences. Spans of categories
// without vocabulary pass through unchanged.
func Boost(text string, spans []types.DetectedSpan) []types.DetectedSpan {
	if len(spans) == 0 {
		return spans
	}
	lower := strings.ToLower(text)
	out := make([]types.DetectedSpan, len(spans))
	for i, s := range spans {
		out[i] = s
		words, ok := vocab[s.Entity]
		if !ok || s.Confidence >= 1.0 {
			continue
		}
		if nearbyVocab(lower, s.Start, s.End, words) {
			c := s.Confidence + delta
			if c > 1.0 {
				c = 1.0
			}
			out[i].Confidence = c
		}
	}
	return out
}

func nearbyVocab(lower string, start, end int, words []string) bool {
	lo := start - window
	if lo < 0 {
		lo = 0
	}
	hi := end + window
	if hi > len(lower) {
		hi = len(lower)
	}
	if lo > len(lower) || lo > hi {
		return false
	}
	neighborhood := lower[lo:hi]
	for _, w := range words {
		if strings.Contains(neighborhood, w) {
			return true
		}
	}
	return false
}
