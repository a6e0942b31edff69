// Package config holds the engine's detection configuration and the on-disk
// YAML configuration shape. A Detection value is immutable once built:
// callers replace it wholesale rather than mutating fields, which is safe
// because detection is stateless per call.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/varalys/piiguard/internal/patterns"
	"github.com/varalys/piiguard/internal/types"
)

var vld = validator.New(validator.WithRequiredStructEnabled())

// CustomPattern is the caller-facing shape of a user-registered recognizer,
// as it appears in config files. Compilation and collision checks happen in
// Build so malformed entries never reach a scan.
type CustomPattern struct {
	Label      string  `yaml:"label" json:"label"`
	Pattern    string  `yaml:"pattern" json:"pattern"`
	Confidence float64 `yaml:"confidence,omitempty" json:"confidence,omitempty"`
}

// Detection is the validated, compiled configuration one detect call runs
// under.
type Detection struct {
	ConfidenceThreshold float64             `validate:"gte=0,lte=1"`
	Mode                types.DetectionMode `validate:"oneof=disabled lite full"`
	ContextBoost        bool

	disabled map[types.EntityType]bool
	custom   []patterns.Custom
}

// Build validates and compiles a detection configuration. Any malformed
// custom pattern, unknown mode, or out-of-range threshold is rejected here.
func Build(threshold float64, mode types.DetectionMode, boost bool, disabled []string, customs []CustomPattern) (Detection, error) {
	d := Detection{
		ConfidenceThreshold: threshold,
		Mode:                mode,
		ContextBoost:        boost,
	}
	if err := vld.Struct(d); err != nil {
		return Detection{}, fmt.Errorf("config: %w", err)
	}
	if len(disabled) > 0 {
		d.disabled = make(map[types.EntityType]bool, len(disabled))
		for _, e := range disabled {
			d.disabled[types.EntityType(e)] = true
		}
	}
	for i, cp := range customs {
		c, err := patterns.NewCustom(cp.Label, cp.Pattern, cp.Confidence)
		if err != nil {
			return Detection{}, fmt.Errorf("config: pattern %d: %w", i, err)
		}
		d.custom = append(d.custom, c)
	}
	return d, nil
}

// Default is the regex-only baseline configuration.
func Default() Detection {
	d, err := Build(0.5, types.ModeDisabled, true, nil, nil)
	if err != nil {
		panic(err) // static inputs
	}
	return d
}

// Enabled reports whether a built-in category runs under this configuration.
func (d Detection) Enabled(e types.EntityType) bool {
	return !d.disabled[e]
}

// Custom returns the compiled caller-registered recognizers in registration
// order.
func (d Detection) Custom() []patterns.Custom {
	return d.custom
}

// FileConfig is the on-disk YAML configuration shape for piiguard. Pointer
// fields distinguish "unset" from zero values so file settings merge cleanly
// over defaults.
type FileConfig struct {
	ConfidenceThreshold *float64        `yaml:"confidence_threshold"`
	Mode                *string         `yaml:"mode"`
	ContextBoost        *bool           `yaml:"context_boost"`
	DisabledEntities    []string        `yaml:"disabled_entities"`
	Patterns            []CustomPattern `yaml:"patterns"`
	ModelDir            *string         `yaml:"model_dir"`
	LogLevel            *string         `yaml:"log_level"`
	Analyzer            *AnalyzerFile   `yaml:"analyzer"`
}

// AnalyzerFile configures the detached analyzer process.
type AnalyzerFile struct {
	Command      []string `yaml:"command"`
	Host         *string  `yaml:"host"`
	Port         *int     `yaml:"port"`
	StartTimeout *string  `yaml:"start_timeout"`
	Timeout      *string  `yaml:"timeout"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given directory. It supports
// .piiguard.yml/.yaml and piiguard.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".piiguard.yml", ".piiguard.yaml", "piiguard.yml", "piiguard.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "piiguard", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Detection converts the file settings into a validated Detection, merging
// over the built-in defaults.
func (fc FileConfig) Detection() (Detection, error) {
	threshold := 0.5
	if fc.ConfidenceThreshold != nil {
		threshold = *fc.ConfidenceThreshold
	}
	mode := types.ModeDisabled
	if fc.Mode != nil {
		mode = types.DetectionMode(*fc.Mode)
	}
	boost := true
	if fc.ContextBoost != nil {
		boost = *fc.ContextBoost
	}
	return Build(threshold, mode, boost, fc.DisabledEntities, fc.Patterns)
}
