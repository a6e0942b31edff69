package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

var reEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

func Email(text string) []types.DetectedSpan {
	return findAll(text, reEmail, types.EntityEmail, 1.0)
}
