package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
	v "github.com/varalys/piiguard/internal/validate"
)

var reCard = regexp.MustCompile(`\b(?:\d{4}[- ]?){3}\d{4}\b`)

// CreditCard matches 16-digit card-shaped numbers and keeps only candidates
// that pass the checksum. Invalid candidates are dropped silently: precision
// over recall for this category.
func CreditCard(text string) []types.DetectedSpan {
	var out []types.DetectedSpan
	for _, loc := range reCard.FindAllStringIndex(text, -1) {
		m := text[loc[0]:loc[1]]
		if !v.Luhn(v.Digits(m)) {
			continue
		}
		out = append(out, types.DetectedSpan{
			Entity:     types.EntityCreditCard,
			Text:       m,
			Start:      loc[0],
			End:        loc[1],
			Confidence: 1.0,
			Engine:     types.EnginePattern,
		})
	}
	return out
}
