package engine

import (
	"fmt"
	"sort"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/varalys/piiguard/internal/types"
)

// Placeholder returns the fixed replacement token for an entity type.
func Placeholder(e types.EntityType) string {
	return "[" + string(e) + "_REDACTED]"
}

// Redact replaces every span with its per-type placeholder. Replacements run
// from the highest start offset downward so earlier replacements cannot
// invalidate later offsets. Spans overlapping an already-replaced region are
// skipped.
func Redact(text string, spans []types.DetectedSpan) string {
	if len(spans) == 0 {
		return text
	}
	ordered := make([]types.DetectedSpan, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	out := text
	cut := len(text)
	for _, s := range ordered {
		if !s.Valid() || s.End > cut || s.End > len(text) {
			continue
		}
		out = out[:s.Start] + Placeholder(s.Entity) + out[s.End:]
		cut = s.Start
	}
	return out
}

// Anonymize substitutes a stable opaque token per unique literal value and
// returns the rewritten text plus the token-to-original mapping. The mapping
// belongs to the caller; the engine persists nothing.
func Anonymize(text string, spans []types.DetectedSpan) (string, map[string]string) {
	mapping := make(map[string]string)
	if len(spans) == 0 {
		return text, mapping
	}
	tokens := make(map[string]string) // literal -> token
	token := func(s types.DetectedSpan) string {
		if t, ok := tokens[s.Text]; ok {
			return t
		}
		t := fmt.Sprintf("<%s_%08x>", s.Entity, xxhash.Sum64String(s.Text)&0xffffffff)
		tokens[s.Text] = t
		mapping[t] = s.Text
		return t
	}

	ordered := make([]types.DetectedSpan, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	out := text
	cut := len(text)
	for _, s := range ordered {
		if !s.Valid() || s.End > cut || s.End > len(text) {
			continue
		}
		out = out[:s.Start] + token(s) + out[s.End:]
		cut = s.Start
	}
	return out, mapping
}
