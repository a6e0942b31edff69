package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

// Anchored fixed-format grammar, hyphen or space separated. No semantic
// validation of area/group numbers.
var reSSN = regexp.MustCompile(`\b\d{3}[- ]\d{2}[- ]\d{4}\b`)

func SSN(text string) []types.DetectedSpan {
	return findAll(text, reSSN, types.EntitySSN, 1.0)
}
