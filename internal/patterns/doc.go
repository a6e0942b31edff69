// Package patterns is the deterministic recognizer layer: fixed grammars per
// entity category plus caller-registered custom patterns. Scans are pure and
// stateless; every recognizer returns raw spans with a category-fixed
// confidence (exact grammars 1.0, heuristic grammars 0.75-0.85) and the
// orchestrator does all merging and filtering. All regexes run on Go's RE2
// engine, so scans are linear in the input and safe on adversarial text.
package patterns
