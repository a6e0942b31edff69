package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

// Structured identifiers: federal docket numbers, keyword-anchored case
// numbers, and medical record numbers.
var (
	reDocket      = regexp.MustCompile(`\b\d{1,2}:\d{2}-(?:cv|cr|md|mc)-\d{3,6}\b`)
	reCaseKeyword = regexp.MustCompile(`\bCase\s+No\.?\s*[A-Z0-9][A-Z0-9\-]{4,19}\b`)
	reMRN         = regexp.MustCompile(`\b(?:MRN|Medical\s+Record(?:\s+(?:No|Number|#))?)[:#.\s]*\d{6,10}\b`)
)

func CaseNumber(text string) []types.DetectedSpan {
	out := findAll(text, reDocket, types.EntityCaseNumber, 1.0)
	for _, s := range findAll(text, reCaseKeyword, types.EntityCaseNumber, 1.0) {
		if coveredBy(s, out) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func MedicalRecord(text string) []types.DetectedSpan {
	return findAll(text, reMRN, types.EntityMedicalRecord, 1.0)
}
