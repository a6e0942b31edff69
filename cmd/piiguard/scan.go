package piiguard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/varalys/piiguard/internal/report"
	"github.com/varalys/piiguard/internal/types"
)

var (
	flagInclude      string
	flagUnmasked     bool
	flagFailOnDetect bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path ...]",
		Short: "Scan text for PII",
		Long:  "Scan reads from stdin, files, or directories and reports every detected PII span. Values are masked in the human output; use --unmasked to print them in full.",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagInclude, "include", "", "only scan directory entries matching this glob (e.g. '**/*.txt')")
	cmd.Flags().BoolVar(&flagUnmasked, "unmasked", false, "print detected values in full")
	cmd.Flags().BoolVar(&flagFailOnDetect, "fail-on-detect", false, "exit 1 when any PII is found")
}

func runScan(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	sources, err := gatherSources(args, flagInclude)
	if err != nil {
		return err
	}

	start := time.Now()
	var results []report.Result
	total := 0
	for _, src := range sources {
		spans, err := rt.eng.Detect(context.Background(), src.Text, rt.cfg)
		if err != nil {
			return fmt.Errorf("scan %s: %w", src.Name, err)
		}
		if spans == nil {
			spans = []types.DetectedSpan{} // no `null` in JSON
		}
		total += len(spans)
		results = append(results, report.Result{
			ScanID:    uuid.NewString(),
			Source:    src.Name,
			Mode:      rt.cfg.Mode,
			Threshold: rt.cfg.ConfidenceThreshold,
			Spans:     spans,
		})
	}
	elapsed := time.Since(start)

	if flagJSON {
		for i := range results {
			results[i].Duration = elapsed.Seconds() / float64(len(results))
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		var all []types.DetectedSpan
		for _, res := range results {
			if len(sources) > 1 {
				fmt.Fprintf(os.Stdout, "== %s ==\n", res.Source)
			}
			report.PrintTable(os.Stdout, res.Spans, report.PrintOptions{Unmasked: flagUnmasked})
			all = append(all, res.Spans...)
		}
		report.PrintSummary(os.Stdout, all, report.PrintOptions{Duration: elapsed, Sources: len(sources)})
	}

	if flagFailOnDetect && total > 0 {
		exitCode = 1
	}
	return nil
}
