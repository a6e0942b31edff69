package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

// North American numbers with optional +1 prefix, tolerant of dots, dashes,
// spaces and parenthesized area codes. Broad enough to hit other numeric
// sequences, hence the heuristic confidence.
var rePhone = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[2-9]\d{2}\)?[-.\s]\d{3}[-.\s]?\d{4}\b`)

func Phone(text string) []types.DetectedSpan {
	return findAll(text, rePhone, types.EntityPhone, 0.80)
}
