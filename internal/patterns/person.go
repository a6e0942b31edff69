package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

var (
	reTitledName = regexp.MustCompile(`\b(?:Mr|Mrs|Ms|Dr|Prof|Judge|Justice|Hon)\.?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}\b`)
	reCapName    = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?\b`)
)

// Person matches title-prefixed names and multi-word capitalized sequences.
// Bare lowercase names are an accepted miss; the statistical layer covers
// those when it is enabled.
func Person(text string) []types.DetectedSpan {
	out := findAll(text, reTitledName, types.EntityPerson, 0.85)
	for _, s := range findAll(text, reCapName, types.EntityPerson, 0.75) {
		if coveredBy(s, out) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// coveredBy reports whether s overlaps any span already matched by a stronger
// grammar of the same recognizer.
func coveredBy(s types.DetectedSpan, prior []types.DetectedSpan) bool {
	for _, p := range prior {
		if s.Start < p.End && p.Start < s.End {
			return true
		}
	}
	return false
}
