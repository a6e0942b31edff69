package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

// findAll emits one span per regex match with byte offsets into text.
func findAll(text string, re *regexp.Regexp, entity types.EntityType, conf float64) []types.DetectedSpan {
	var out []types.DetectedSpan
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, types.DetectedSpan{
			Entity:     entity,
			Text:       text[loc[0]:loc[1]],
			Start:      loc[0],
			End:        loc[1],
			Confidence: conf,
			Engine:     types.EnginePattern,
		})
	}
	return out
}
