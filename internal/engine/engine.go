// Package engine is the detection orchestrator: it fans one text out to the
// enabled layers in a fixed order, merges and deduplicates their spans, and
// filters by confidence. Layers run sequentially within a call because later
// layers are deduplicated against earlier ones; independent calls are fully
// re-entrant.
package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/varalys/piiguard/internal/config"
	"github.com/varalys/piiguard/internal/ner"
	"github.com/varalys/piiguard/internal/presidio"
	"github.com/varalys/piiguard/internal/types"
)

const defaultExternalTimeout = 10 * time.Second

// Options configure a detection engine.
type Options struct {
	Log zerolog.Logger

	// ModelDir holds the sequence-labeling artifacts. Empty disables the
	// layer outright; a bad directory degrades it (visible via Status).
	ModelDir string

	// Analyzer is the shared handle to the detached analyzer client. May be
	// nil when the external layer is not configured.
	Analyzer *presidio.Client

	// ExternalTimeout bounds each analyzer call.
	ExternalTimeout time.Duration
}

// Engine orchestrates the detection layers. One Engine serves concurrent
// callers: the pattern layer and booster are pure, the model handle is
// read-only after its guarded load, and the analyzer client does its own
// locking.
type Engine struct {
	log             zerolog.Logger
	modelDir        string
	analyzer        *presidio.Client
	externalTimeout time.Duration

	modelOnce sync.Once
	model     *ner.Model
	modelErr  error
}

// New builds an engine. The model is loaded lazily on the first call that
// needs it, behind a guard so no caller ever observes a half-initialized
// model.
func New(opts Options) *Engine {
	if opts.ExternalTimeout == 0 {
		opts.ExternalTimeout = defaultExternalTimeout
	}
	return &Engine{
		log:             opts.Log,
		modelDir:        opts.ModelDir,
		analyzer:        opts.Analyzer,
		externalTimeout: opts.ExternalTimeout,
	}
}

// Close releases the model handle if it was loaded. The analyzer client is
// owned by the caller and stopped there.
func (e *Engine) Close() error {
	if e.model != nil {
		return e.model.Close()
	}
	return nil
}

func (e *Engine) modelHandle() *ner.Model {
	if e.modelDir == "" {
		return nil
	}
	e.modelOnce.Do(func() {
		e.model, e.modelErr = ner.Load(e.modelDir)
		if e.modelErr != nil {
			e.log.Warn().Err(e.modelErr).Msg("sequence-labeling model unavailable, continuing without it")
		}
	})
	return e.model
}

// Status reports which layers are currently live. Degraded operation is
// observable here, never through a scan error.
type Status struct {
	Patterns      bool           `json:"patterns"`
	ModelLoaded   bool           `json:"model_loaded"`
	ModelError    string         `json:"model_error,omitempty"`
	AnalyzerState presidio.State `json:"analyzer_state"`
}

// Status answers the degraded-state query without touching any layer.
func (e *Engine) Status() Status {
	st := Status{Patterns: true, AnalyzerState: presidio.StateStopped}
	if e.modelDir != "" {
		st.ModelLoaded = e.modelHandle() != nil
		if e.modelErr != nil {
			st.ModelError = e.modelErr.Error()
		}
	}
	if e.analyzer != nil {
		st.AnalyzerState = e.analyzer.Status()
	}
	return st
}

// Detect scans text under cfg and returns merged, deduplicated, threshold-
// filtered spans sorted by offset. Optional-layer failures are logged and the
// layer is omitted for this call; only the mandatory pattern layer or result
// assembly can fail the scan. Empty text returns an empty result, never an
// error.
func (e *Engine) Detect(ctx context.Context, text string, cfg config.Detection) ([]types.DetectedSpan, error) {
	if text == "" {
		return []types.DetectedSpan{}, nil
	}

	var collected []types.DetectedSpan
	for i, l := range e.layers(cfg) {
		spans, err := l.Detect(ctx, text, cfg)
		if err != nil {
			if i == 0 {
				// The baseline layer is the one failure that is a scan failure.
				return nil, err
			}
			e.log.Warn().Err(err).Str("layer", string(l.Name())).Msg("detection layer unavailable this call")
			continue
		}
		collected = append(collected, spans...)
	}

	if cfg.ContextBoost {
		collected = boost(text, collected)
	}
	merged := merge(collected)
	return filter(merged, cfg.ConfidenceThreshold), nil
}

func (e *Engine) layers(cfg config.Detection) []Layer {
	ls := []Layer{patternLayer{}}
	if cfg.Mode.EnablesNER() {
		if m := e.modelHandle(); m != nil {
			ls = append(ls, nerLayer{model: m})
		}
	}
	if cfg.Mode.EnablesExternal() && e.analyzer != nil {
		ls = append(ls, externalLayer{client: e.analyzer, timeout: e.externalTimeout})
	}
	return ls
}

// merge deduplicates spans: identical [start,end) plus entity type means
// duplicate, and the higher-confidence one wins. The same literal value at
// different offsets stays distinct, since each occurrence needs independent
// redaction. Near-miss overlaps from different engines deliberately coexist;
// exact range equality is the only automatic merge key.
func merge(spans []types.DetectedSpan) []types.DetectedSpan {
	if len(spans) == 0 {
		return nil
	}
	best := make(map[string]types.DetectedSpan, len(spans))
	order := make([]string, 0, len(spans))
	for _, s := range spans {
		if !s.Valid() {
			continue
		}
		k := s.Key()
		if prev, ok := best[k]; ok {
			if s.Confidence > prev.Confidence {
				best[k] = s
			}
			continue
		}
		best[k] = s
		order = append(order, k)
	}
	out := make([]types.DetectedSpan, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

func filter(spans []types.DetectedSpan, threshold float64) []types.DetectedSpan {
	out := make([]types.DetectedSpan, 0, len(spans))
	for _, s := range spans {
		if s.Confidence >= threshold {
			out = append(out, s)
		}
	}
	return out
}
