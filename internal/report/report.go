// Package report renders scan results for humans and machines. Literal span
// values are masked in the human table: a tool that finds PII should not
// re-print it in full.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/varalys/piiguard/internal/types"
)

// Result is the machine-readable scan envelope.
type Result struct {
	ScanID    string               `json:"scan_id"`
	Source    string               `json:"source"`
	Mode      types.DetectionMode  `json:"mode"`
	Threshold float64              `json:"threshold"`
	Spans     []types.DetectedSpan `json:"spans"`
	Duration  float64              `json:"duration_seconds"`
}

// PrintOptions control the human rendering.
type PrintOptions struct {
	Unmasked bool
	Duration time.Duration
	Sources  int
}

// PrintJSON writes the result as one indented JSON document.
func PrintJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// PrintTable writes a human-readable span table plus a summary footer.
func PrintTable(w io.Writer, spans []types.DetectedSpan, opts PrintOptions) {
	ordered := make([]types.DetectedSpan, len(spans))
	copy(ordered, spans)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].End < ordered[j].End
	})

	if len(ordered) == 0 {
		fmt.Fprintln(w, "No PII found ✅")
	} else {
		tbl := tablewriter.NewWriter(w)
		tbl.Header("ENTITY", "ENGINE", "CONFIDENCE", "RANGE", "VALUE")
		for _, s := range ordered {
			v := s.Text
			if !opts.Unmasked {
				v = maskValue(v)
			}
			tbl.Append([]string{
				string(s.Entity),
				string(s.Engine),
				fmt.Sprintf("%.2f", s.Confidence),
				fmt.Sprintf("%d:%d", s.Start, s.End),
				v,
			})
		}
		tbl.Render()
	}

	if opts.Duration > 0 || opts.Sources > 0 {
		PrintSummary(w, ordered, opts)
	}
}

// PrintSummary writes the footer: totals, per-entity breakdown, timing.
func PrintSummary(w io.Writer, spans []types.DetectedSpan, opts PrintOptions) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Detections: %d%s\n", len(spans), entityBreakdown(spans))
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.Sources > 0 {
		fmt.Fprintf(w, "Sources scanned: %d\n", opts.Sources)
	}
}

func entityBreakdown(spans []types.DetectedSpan) string {
	if len(spans) == 0 {
		return ""
	}
	counts := make(map[types.EntityType]int)
	order := make([]types.EntityType, 0, 4)
	for _, s := range spans {
		if counts[s.Entity] == 0 {
			order = append(order, s.Entity)
		}
		counts[s.Entity]++
	}
	out := " ("
	for i, e := range order {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s: %d", e, counts[e])
	}
	return out + ")"
}

func maskValue(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}
