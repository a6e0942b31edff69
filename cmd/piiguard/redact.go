package piiguard

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/varalys/piiguard/internal/engine"
)

var (
	flagInPlace bool
	flagCopy    bool
	flagOutput  string
)

func init() {
	cmd := &cobra.Command{
		Use:   "redact [path]",
		Short: "Replace detected PII with placeholder tokens",
		Long:  "Redact reads from stdin or a file, replaces every detected span with its [TYPE_REDACTED] placeholder, and writes the result to stdout, a file, or the clipboard.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRedact,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVarP(&flagInPlace, "write", "w", false, "rewrite the input file in place")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "copy the redacted text to the clipboard instead of printing it")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the redacted text to this file")
}

func runRedact(cmd *cobra.Command, args []string) error {
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
	out := engine.Redact(src.Text, spans)

	switch {
	case flagCopy:
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied redacted text (%d spans) to clipboard\n", len(spans))
	case flagInPlace:
		if src.Name == "stdin" {
			return fmt.Errorf("--write needs a file argument")
		}
		if err := os.WriteFile(src.Name, []byte(out), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "redacted %d span(s) in %s\n", len(spans), src.Name)
	case flagOutput != "":
		if err := os.WriteFile(flagOutput, []byte(out), 0o644); err != nil {
			return err
		}
	default:
		fmt.Fprint(os.Stdout, out)
	}
	return nil
}
