package piiguard

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/varalys/piiguard/internal/config"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

// mergeFileConfigs overlays local settings on global ones field by field.
func mergeFileConfigs(local, global config.FileConfig) config.FileConfig {
	out := global
	if local.ConfidenceThreshold != nil {
		out.ConfidenceThreshold = local.ConfidenceThreshold
	}
	if local.Mode != nil {
		out.Mode = local.Mode
	}
	if local.ContextBoost != nil {
		out.ContextBoost = local.ContextBoost
	}
	if len(local.DisabledEntities) > 0 {
		out.DisabledEntities = local.DisabledEntities
	}
	if len(local.Patterns) > 0 {
		out.Patterns = local.Patterns
	}
	if local.ModelDir != nil {
		out.ModelDir = local.ModelDir
	}
	if local.LogLevel != nil {
		out.LogLevel = local.LogLevel
	}
	if local.Analyzer != nil {
		out.Analyzer = local.Analyzer
	}
	return out
}

// source is one unit of input text with a display name.
type source struct {
	Name string
	Text string
}

// gatherSources expands the positional arguments into text sources. No
// arguments (or "-") means stdin; directories are walked and filtered by the
// include glob.
func gatherSources(args []string, include string) ([]source, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []source{{Name: "stdin", Text: string(b)}}, nil
	}

	var out []source
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			s, err := readSource(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			if include != "" {
				rel, _ := filepath.Rel(arg, path)
				if ok, _ := doublestar.Match(include, filepath.ToSlash(rel)); !ok {
					if ok, _ := doublestar.Match(include, d.Name()); !ok {
						return nil
					}
				}
			}
			s, err := readSource(path)
			if err != nil {
				return err
			}
			out = append(out, s)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readSource(path string) (source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return source{}, err
	}
	return source{Name: path, Text: string(b)}, nil
}
