package piiguard

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagLogLevel  string
	flagConfig    string
	flagThreshold float64
	flagMode      string
	flagNoBoost   bool
	flagDisable   string
	flagModelDir  string

	version = "0.1.0"

	// exitCode is set by commands that want a non-zero exit without an error.
	// The exit happens in Execute, after RunE returns, so deferred cleanup
	// (analyzer shutdown included) always runs first.
	exitCode int
)

// rootCmd is the base Cobra command for the piiguard CLI.
var rootCmd = &cobra.Command{
	Use:           "piiguard",
	Short:         "Find and redact PII in text",
	Long:          "Piiguard scans text for personally identifiable information using layered detection (pattern rules, a local sequence-labeling model, and an optional external analyzer) and can redact or anonymize what it finds.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the piiguard CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace|debug|info|warn|error|quiet")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (overrides discovery)")
	rootCmd.PersistentFlags().Float64Var(&flagThreshold, "threshold", -1, "only report spans with confidence >= value (0-1)")
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "detection mode: disabled|lite|full|auto")
	rootCmd.PersistentFlags().BoolVar(&flagNoBoost, "no-context-boost", false, "disable context keyword confidence boosting")
	rootCmd.PersistentFlags().StringVar(&flagDisable, "disable", "", "disable these entity categories (comma-separated, e.g. PHONE,IP_ADDRESS)")
	rootCmd.PersistentFlags().StringVar(&flagModelDir, "model-dir", "", "directory holding the sequence-labeling model artifacts")
}
