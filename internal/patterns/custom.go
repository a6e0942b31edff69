package patterns

import (
	"fmt"
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

const defaultCustomConfidence = 0.85

// Custom is a caller-registered recognizer. It is built through NewCustom so
// a malformed pattern or a label collision is rejected at registration time
// and can never reach a scan.
type Custom struct {
	Label      types.EntityType
	Expr       string
	Confidence float64

	re *regexp.Regexp
}

// NewCustom compiles and validates a custom recognizer. Confidence 0 selects
// the default; values outside [0,1] are rejected.
func NewCustom(label, expr string, confidence float64) (Custom, error) {
	if label == "" {
		return Custom{}, fmt.Errorf("custom pattern: empty label")
	}
	for _, b := range types.BuiltinEntities() {
		if types.EntityType(label) == b {
			return Custom{}, fmt.Errorf("custom pattern %q: collides with built-in category", label)
		}
	}
	if confidence < 0 || confidence > 1 {
		return Custom{}, fmt.Errorf("custom pattern %q: confidence %v outside [0,1]", label, confidence)
	}
	if confidence == 0 {
		confidence = defaultCustomConfidence
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Custom{}, fmt.Errorf("custom pattern %q: %w", label, err)
	}
	return Custom{Label: types.EntityType(label), Expr: expr, Confidence: confidence, re: re}, nil
}

// Scan emits spans for every match of the custom pattern.
func (c Custom) Scan(text string) []types.DetectedSpan {
	if c.re == nil {
		return nil
	}
	return findAll(text, c.re, c.Label, c.Confidence)
}
