package piiguard

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varalys/piiguard/internal/advisor"
	"github.com/varalys/piiguard/internal/engine"
	"github.com/varalys/piiguard/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show detection layer health and host memory",
		RunE:  runStatus,
	}
	rootCmd.AddCommand(cmd)
}

type statusOutput struct {
	Engine engine.Status         `json:"engine"`
	Memory *types.MemorySnapshot `json:"memory,omitempty"`

	RecommendedMode types.DetectionMode `json:"recommended_mode"`
	Advisory        string              `json:"advisory,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	out := statusOutput{Engine: rt.eng.Status(), RecommendedMode: types.ModeDisabled}
	if snap, err := advisor.Snapshot(); err == nil {
		out.Memory = &snap
	}
	if mode, note, err := advisor.Recommend(); err == nil {
		out.RecommendedMode = mode
		out.Advisory = note
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("pattern layer:   live\n")
	if out.Engine.ModelLoaded {
		fmt.Printf("model layer:     loaded\n")
	} else if out.Engine.ModelError != "" {
		fmt.Printf("model layer:     unavailable (%s)\n", out.Engine.ModelError)
	} else {
		fmt.Printf("model layer:     not configured\n")
	}
	fmt.Printf("analyzer:        %s\n", out.Engine.AnalyzerState)
	if out.Memory != nil {
		fmt.Printf("memory:          %d MB total, %d MB available, %d MB process RSS\n",
			out.Memory.TotalMB, out.Memory.AvailableMB, out.Memory.ProcessRSSMB)
	}
	fmt.Printf("recommended:     %s", out.RecommendedMode)
	if out.Advisory != "" {
		fmt.Printf(" (%s)", out.Advisory)
	}
	fmt.Println()
	return nil
}
