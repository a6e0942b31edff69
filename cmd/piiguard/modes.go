package piiguard

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/varalys/piiguard/internal/advisor"
	"github.com/varalys/piiguard/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List detection modes and whether this host can run them",
		RunE:  runModes,
	}
	rootCmd.AddCommand(cmd)
}

type modeRow struct {
	Mode       types.DetectionMode `json:"mode"`
	OverheadMB uint64              `json:"overhead_mb"`
	Accuracy   string              `json:"accuracy"`
	Fits       bool                `json:"fits"`
	Note       string              `json:"note,omitempty"`
}

func runModes(cmd *cobra.Command, _ []string) error {
	var rows []modeRow
	for _, mi := range types.Modes() {
		row := modeRow{Mode: mi.Mode, OverheadMB: mi.OverheadMB, Accuracy: mi.Accuracy, Fits: true}
		if ok, msg, err := advisor.CanUseMode(mi.Mode); err == nil {
			row.Fits = ok
			row.Note = msg
		}
		rows = append(rows, row)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.Header("MODE", "OVERHEAD", "EXPECTED RECALL", "FITS HOST")
	for _, r := range rows {
		fits := "yes"
		if !r.Fits {
			fits = "no"
		}
		tbl.Append([]string{
			string(r.Mode),
			fmt.Sprintf("%d MB", r.OverheadMB),
			r.Accuracy,
			fits,
		})
	}
	tbl.Render()

	if mode, note, err := advisor.Recommend(); err == nil {
		fmt.Printf("\nRecommended for this host: %s (%s)\n", mode, note)
	}
	return nil
}
