package piiguard

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/varalys/piiguard/internal/advisor"
	"github.com/varalys/piiguard/internal/config"
	"github.com/varalys/piiguard/internal/engine"
	"github.com/varalys/piiguard/internal/logging"
	"github.com/varalys/piiguard/internal/presidio"
	"github.com/varalys/piiguard/internal/types"
)

// runtime bundles everything a command needs after flag and config
// resolution: the logger, the compiled detection config, and a wired engine.
type runtime struct {
	log      zerolog.Logger
	cfg      config.Detection
	eng      *engine.Engine
	analyzer *presidio.Client
}

// setup resolves configuration with CLI > local file > global file precedence
// and builds the engine. The analyzer child process is only started in full
// mode; a failed start degrades the scan rather than aborting it.
func setup() (*runtime, error) {
	fcfg := loadFileConfig()

	log := logging.New(pickString(flagLogLevel, fcfg.LogLevel, nil))

	threshold := 0.5
	if fcfg.ConfidenceThreshold != nil {
		threshold = *fcfg.ConfidenceThreshold
	}
	if flagThreshold >= 0 {
		threshold = flagThreshold
	}

	mode, err := resolveMode(log, fcfg)
	if err != nil {
		return nil, err
	}

	boost := true
	if fcfg.ContextBoost != nil {
		boost = *fcfg.ContextBoost
	}
	if flagNoBoost {
		boost = false
	}

	disabled := fcfg.DisabledEntities
	if flagDisable != "" {
		disabled = nil
		for _, e := range strings.Split(flagDisable, ",") {
			if e = strings.TrimSpace(e); e != "" {
				disabled = append(disabled, e)
			}
		}
	}

	cfg, err := config.Build(threshold, mode, boost, disabled, fcfg.Patterns)
	if err != nil {
		return nil, err
	}

	rt := &runtime{log: log, cfg: cfg}

	if mode.EnablesExternal() && fcfg.Analyzer != nil && len(fcfg.Analyzer.Command) > 0 {
		rt.analyzer = presidio.New(analyzerConfig(fcfg.Analyzer), log)
		if err := rt.analyzer.Start(); err != nil {
			log.Warn().Err(err).Msg("analyzer unavailable, continuing without the external layer")
		}
	}

	rt.eng = engine.New(engine.Options{
		Log:      log,
		ModelDir: pickString(flagModelDir, fcfg.ModelDir, nil),
		Analyzer: rt.analyzer,
	})
	return rt, nil
}

func (rt *runtime) close() {
	if rt.analyzer != nil {
		if err := rt.analyzer.Stop(); err != nil {
			rt.log.Warn().Err(err).Msg("analyzer shutdown")
		}
	}
	if err := rt.eng.Close(); err != nil {
		rt.log.Warn().Err(err).Msg("engine shutdown")
	}
}

// resolveMode maps the flag/file mode setting to a concrete detection mode.
// "auto" asks the resource advisor; explicit modes get a non-fatal headroom
// warning when the host looks too small for them.
func resolveMode(log zerolog.Logger, fcfg config.FileConfig) (types.DetectionMode, error) {
	raw := flagMode
	if raw == "" && fcfg.Mode != nil {
		raw = *fcfg.Mode
	}
	switch raw {
	case "", string(types.ModeDisabled):
		return types.ModeDisabled, nil
	case "auto":
		mode, note, err := advisor.Recommend()
		if err != nil {
			log.Warn().Err(err).Msg("memory telemetry unavailable, using baseline mode")
			return types.ModeDisabled, nil
		}
		log.Info().Str("mode", string(mode)).Msg(note)
		return mode, nil
	case string(types.ModeLite), string(types.ModeFull):
		mode := types.DetectionMode(raw)
		if ok, msg, err := advisor.CanUseMode(mode); err == nil && !ok {
			log.Warn().Str("mode", raw).Msg(msg)
		}
		return mode, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want disabled|lite|full|auto)", raw)
	}
}

// loadFileConfig returns the merged file configuration. An explicit --config
// path wins outright; otherwise local settings shadow global ones field by
// field.
func loadFileConfig() config.FileConfig {
	if flagConfig != "" {
		if cfg, err := config.LoadFile(flagConfig); err == nil {
			return cfg
		}
		return config.FileConfig{}
	}
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal("."); err == nil {
		lcfg = c
	}
	return mergeFileConfigs(lcfg, gcfg)
}

func analyzerConfig(af *config.AnalyzerFile) presidio.Config {
	cfg := presidio.Config{Command: af.Command}
	if af.Host != nil {
		cfg.Host = *af.Host
	}
	if af.Port != nil {
		cfg.Port = *af.Port
	}
	if af.StartTimeout != nil {
		if d, err := time.ParseDuration(*af.StartTimeout); err == nil {
			cfg.StartTimeout = d
		}
	}
	if af.Timeout != nil {
		if d, err := time.ParseDuration(*af.Timeout); err == nil {
			cfg.RequestTimeout = d
		}
	}
	return cfg
}
