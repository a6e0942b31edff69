package patterns

import (
	"regexp"

	"github.com/varalys/piiguard/internal/types"
)

var (
	reCorpSuffix = regexp.MustCompile(`\b[A-Z][A-Za-z&'.\-]*(?:\s+[A-Z][A-Za-z&'.\-]*){0,4},?\s+(?:Inc|Incorporated|LLC|LLP|Ltd|Corp|Corporation|Company|Co)\.?\b`)
	reLawFirm    = regexp.MustCompile(`\b(?:Law\s+Offices?\s+of\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,3}|[A-Z][a-z]+(?:,\s+[A-Z][a-z]+)*\s+&\s+[A-Z][a-z]+(?:\s+LLP)?)\b`)
)

// Organization matches corporate-suffix names and law-firm phrasing.
func Organization(text string) []types.DetectedSpan {
	out := findAll(text, reCorpSuffix, types.EntityOrganization, 0.80)
	for _, s := range findAll(text, reLawFirm, types.EntityOrganization, 0.80) {
		if coveredBy(s, out) {
			continue
		}
		out = append(out, s)
	}
	return out
}
