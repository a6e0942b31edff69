package ner

import (
	"strings"

	"github.com/varalys/piiguard/internal/types"
)

// tagged is one classified token: its winning BIO label, softmax probability,
// and byte offsets into the original text. Special tokens carry zero-length
// offsets.
type tagged struct {
	Label      string
	Score      float64
	Start, End int
}

type decodeState int

const (
	stateIdle decodeState = iota
	stateOpen
)

// decoder streams BIO tags into spans. The only mutable state is the span
// currently open, held explicitly so the transition rules stay testable on
// their own:
//
//	Idle, B-T        -> Open{T}
//	Open{T}, I-T     -> extend, accumulate confidence
//	Open{T}, other   -> emit; reopen immediately when the tag is a B-
//	any, zero-length -> skipped without breaking continuity
type decoder struct {
	text  string
	state decodeState

	entity     string
	start, end int
	scoreSum   float64
	scoreN     int

	out []types.DetectedSpan
}

func newDecoder(text string) *decoder {
	return &decoder{text: text}
}

func (d *decoder) feed(t tagged) {
	if t.Start == t.End {
		// Special tokens ([CLS], [SEP], padding) have no surface form.
		return
	}
	prefix, entity := splitTag(t.Label)

	if d.state == stateOpen {
		if prefix == "I" && entity == d.entity {
			d.end = t.End
			d.scoreSum += t.Score
			d.scoreN++
			return
		}
		d.emit()
	}
	if prefix == "B" {
		d.state = stateOpen
		d.entity = entity
		d.start = t.Start
		d.end = t.End
		d.scoreSum = t.Score
		d.scoreN = 1
	}
	// An orphan I- with no compatible open span is dropped rather than
	// guessed into a new span.
}

// flush emits any span still open at end of input and returns the result.
func (d *decoder) flush() []types.DetectedSpan {
	if d.state == stateOpen {
		d.emit()
	}
	return d.out
}

func (d *decoder) emit() {
	if d.end > len(d.text) {
		d.end = len(d.text)
	}
	if d.start < d.end {
		d.out = append(d.out, types.DetectedSpan{
			Entity:     types.EntityType(d.entity),
			Text:       d.text[d.start:d.end],
			Start:      d.start,
			End:        d.end,
			Confidence: d.scoreSum / float64(d.scoreN),
			Engine:     types.EngineNER,
		})
	}
	d.state = stateIdle
	d.entity = ""
	d.scoreSum = 0
	d.scoreN = 0
}

// splitTag separates the BIO prefix from the entity type. Anything that is
// not B-/I- (including the outside tag "O") has an empty prefix.
func splitTag(label string) (prefix, entity string) {
	if rest, ok := strings.CutPrefix(label, "B-"); ok {
		return "B", rest
	}
	if rest, ok := strings.CutPrefix(label, "I-"); ok {
		return "I", rest
	}
	return "", label
}
