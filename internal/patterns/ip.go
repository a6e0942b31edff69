package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

// Octet ranges are enforced in the grammar itself; version strings like
// "1.2.3.4" still collide, so confidence stays below exact-grammar level.
var reIPv4 = regexp.MustCompile(`\b(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(?:\.(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}\b`)

func IPAddress(text string) []types.DetectedSpan {
	return findAll(text, reIPv4, types.EntityIPAddress, 0.85)
}
