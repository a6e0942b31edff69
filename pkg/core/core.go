package core

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/varalys/piiguard/internal/advisor"
	"github.com/varalys/piiguard/internal/config"
	"github.com/varalys/piiguard/internal/engine"
	"github.com/varalys/piiguard/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = config.Detection
type CustomPattern = config.CustomPattern
type DetectedSpan = types.DetectedSpan
type DetectionMode = types.DetectionMode
type EntityType = types.EntityType
type MemorySnapshot = types.MemorySnapshot
type ModeInfo = types.ModeInfo

const (
	ModeDisabled = types.ModeDisabled
	ModeLite     = types.ModeLite
	ModeFull     = types.ModeFull
)

// DefaultConfig is the regex-only baseline configuration.
func DefaultConfig() Config { return config.Default() }

// NewConfig validates and compiles a detection configuration.
func NewConfig(threshold float64, mode DetectionMode, boost bool, disabled []string, patterns []CustomPattern) (Config, error) {
	return config.Build(threshold, mode, boost, disabled, patterns)
}

// Detect scans text with the baseline pattern layer only. Programs that need
// the model or external layers construct an engine via the piiguard command
// or embed internal/engine behind their own wiring.
func Detect(ctx context.Context, text string, cfg Config) ([]DetectedSpan, error) {
	e := engine.New(engine.Options{Log: zerolog.Nop()})
	defer e.Close()
	return e.Detect(ctx, text, cfg)
}

// Redact replaces every detected span with its per-type placeholder.
func Redact(text string, spans []DetectedSpan) string {
	return engine.Redact(text, spans)
}

// Anonymize substitutes stable opaque tokens and returns the token-to-original
// mapping alongside the rewritten text.
func Anonymize(text string, spans []DetectedSpan) (string, map[string]string) {
	return engine.Anonymize(text, spans)
}

// Entities returns the built-in entity categories.
// Exposed for convenience to avoid importing internals directly.
func Entities() []EntityType { return types.BuiltinEntities() }

// Modes describes the available detection modes and their memory cost.
func Modes() []ModeInfo { return types.Modes() }

// RecommendMode inspects host memory and returns the richest detection mode
// that fits alongside the primary application workload.
func RecommendMode() (DetectionMode, string, error) {
	return advisor.Recommend()
}
