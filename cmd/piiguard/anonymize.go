package piiguard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varalys/piiguard/internal/engine"
)

var flagMapping string

func init() {
	cmd := &cobra.Command{
		Use:   "anonymize [path]",
		Short: "Replace detected PII with stable opaque tokens",
		Long:  "Anonymize substitutes each unique PII value with a stable opaque token so downstream processing keeps referential integrity. The token-to-original mapping is written separately and never embedded in the output.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnonymize,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagMapping, "mapping", "", "write the token-to-original mapping (JSON) to this file")
}

func runAnonymize(cmd *cobra.Command, args []string) error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.close()

	sources, err := gatherSources(args, "")
	if err != nil {
		return err
	}
	src := sources[0]

	spans, err := rt.eng.Detect(context.Background(), src.Text, rt.cfg)
	if err != nil {
		return err
	}
	out, mapping := engine.Anonymize(src.Text, spans)

	fmt.Fprint(os.Stdout, out)

	if flagMapping != "" {
		b, err := json.MarshalIndent(mapping, "", "  ")
		if err != nil {
			return err
		}
		// The mapping re-identifies people; keep it out of group/world reach.
		if err := os.WriteFile(flagMapping, b, 0o600); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d mapping entrie(s) to %s\n", len(mapping), flagMapping)
	} else if len(mapping) > 0 {
		fmt.Fprintf(os.Stderr, "anonymized %d unique value(s); pass --mapping FILE to keep the reverse mapping\n", len(mapping))
	}
	return nil
}
