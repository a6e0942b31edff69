package engine

import (
	"context"
	"time"

	"github.com/varalys/piiguard/internal/booster"
	"github.com/varalys/piiguard/internal/config"
	"github.com/varalys/piiguard/internal/ner"
	"github.com/varalys/piiguard/internal/patterns"
	"github.com/varalys/piiguard/internal/presidio"
	"github.com/varalys/piiguard/internal/types"
)

// Layer is the uniform face of one detection engine. The orchestrator only
// ever asks a layer to produce spans, so merge and dedup logic stays
// engine-agnostic and new engines slot in without touching it.
type Layer interface {
	Name() types.Engine
	Detect(ctx context.Context, text string, cfg config.Detection) ([]types.DetectedSpan, error)
}

// patternLayer is the mandatory baseline. It costs no extra memory and is
// never skipped, which guarantees functioning detection with every optional
// layer turned off.
type patternLayer struct{}

func (patternLayer) Name() types.Engine { return types.EnginePattern }

func (patternLayer) Detect(_ context.Context, text string, cfg config.Detection) ([]types.DetectedSpan, error) {
	return patterns.Scan(text, cfg.Enabled, cfg.Custom()), nil
}

type nerLayer struct {
	model *ner.Model
}

func (nerLayer) Name() types.Engine { return types.EngineNER }

func (l nerLayer) Detect(_ context.Context, text string, _ config.Detection) ([]types.DetectedSpan, error) {
	return l.model.Predict(text)
}

type externalLayer struct {
	client  *presidio.Client
	timeout time.Duration
}

func (externalLayer) Name() types.Engine { return types.EngineExternal }

func (l externalLayer) Detect(ctx context.Context, text string, cfg config.Detection) ([]types.DetectedSpan, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.client.Detect(ctx, text, nil, cfg.ConfidenceThreshold)
}

// boost applies the context booster; it is not a Layer because it adjusts
// spans rather than producing them.
func boost(text string, spans []types.DetectedSpan) []types.DetectedSpan {
	return booster.Boost(text, spans)
}
