// Package ner wraps a local token-classification model for open-domain entity
// detection. Model artifacts (tokenizer.json, config.json, model.onnx) are
// loaded from a directory on disk; there is no network fallback and a missing
// artifact fails initialization outright. Inference is read-only after load,
// so one Model handle serves concurrent callers without locking.
package ner
