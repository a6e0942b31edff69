package ner

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/varalys/piiguard/internal/types"
)

func TestDecodeSingleSpan(t *testing.T) {
	text := "John Smith called"
	d := newDecoder(text)
	d.feed(tagged{Label: "B-PERSON", Score: 0.9, Start: 0, End: 4})
	d.feed(tagged{Label: "I-PERSON", Score: 0.7, Start: 5, End: 10})
	d.feed(tagged{Label: "O", Score: 0.99, Start: 11, End: 17})
	spans := d.flush()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Entity != types.EntityPerson || s.Text != "John Smith" || s.Start != 0 || s.End != 10 {
		t.Fatalf("unexpected span: %+v", s)
	}
	if math.Abs(s.Confidence-0.8) > 1e-9 {
		t.Fatalf("expected averaged confidence 0.8, got %v", s.Confidence)
	}
	if s.Engine != types.EngineNER {
		t.Fatalf("expected ner engine tag")
	}
}

func TestDecodeFlushesOpenSpanAtEOF(t *testing.T) {
	text := "Acme Corp"
	d := newDecoder(text)
	d.feed(tagged{Label: "B-ORGANIZATION", Score: 0.8, Start: 0, End: 4})
	d.feed(tagged{Label: "I-ORGANIZATION", Score: 0.8, Start: 5, End: 9})
	spans := d.flush()
	if len(spans) != 1 || spans[0].Text != "Acme Corp" {
		t.Fatalf("expected open span flushed at end of input, got %+v", spans)
	}
}

func TestDecodeBackToBackBTags(t *testing.T) {
	text := "Alice Bob"
	d := newDecoder(text)
	d.feed(tagged{Label: "B-PERSON", Score: 0.9, Start: 0, End: 5})
	d.feed(tagged{Label: "B-PERSON", Score: 0.9, Start: 6, End: 9})
	spans := d.flush()
	if len(spans) != 2 {
		t.Fatalf("a new B- must close and immediately reopen, got %+v", spans)
	}
	if spans[0].Text != "Alice" || spans[1].Text != "Bob" {
		t.Fatalf("unexpected spans: %+v", spans)
	}
}

func TestDecodeTypeSwitchClosesSpan(t *testing.T) {
	text := "Alice at Acme"
	d := newDecoder(text)
	d.feed(tagged{Label: "B-PERSON", Score: 0.9, Start: 0, End: 5})
	// Mismatched I- closes the person span and opens nothing.
	d.feed(tagged{Label: "I-ORGANIZATION", Score: 0.5, Start: 6, End: 8})
	d.feed(tagged{Label: "B-ORGANIZATION", Score: 0.8, Start: 9, End: 13})
	spans := d.flush()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %+v", spans)
	}
	if spans[0].Entity != types.EntityPerson || spans[1].Entity != types.EntityOrganization {
		t.Fatalf("unexpected entities: %+v", spans)
	}
	if spans[1].Text != "Acme" {
		t.Fatalf("orphan I- must not extend into the next span: %+v", spans[1])
	}
}

func TestDecodeSkipsSpecialTokens(t *testing.T) {
	text := "Jane Roe"
	d := newDecoder(text)
	d.feed(tagged{Label: "O", Score: 1, Start: 0, End: 0}) // [CLS]
	d.feed(tagged{Label: "B-PERSON", Score: 0.9, Start: 0, End: 4})
	d.feed(tagged{Label: "O", Score: 1, Start: 4, End: 4}) // zero-length mid-stream
	d.feed(tagged{Label: "I-PERSON", Score: 0.9, Start: 5, End: 8})
	d.feed(tagged{Label: "O", Score: 1, Start: 8, End: 8}) // [SEP]
	spans := d.flush()
	if len(spans) != 1 || spans[0].Text != "Jane Roe" {
		t.Fatalf("zero-length offsets must not break continuity, got %+v", spans)
	}
}

func TestDecodeOrphanInsideTag(t *testing.T) {
	d := newDecoder("stray")
	d.feed(tagged{Label: "I-PERSON", Score: 0.9, Start: 0, End: 5})
	if spans := d.flush(); len(spans) != 0 {
		t.Fatalf("orphan I- must not open a span, got %+v", spans)
	}
}

func TestParseLabels(t *testing.T) {
	dir := t.TempDir()
	writeConfig := func(body string) string {
		p := filepath.Join(dir, "config.json")
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	labels, err := parseLabels(writeConfig(`{"id2label":{"0":"O","1":"B-PERSON","2":"I-PERSON"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(labels) != 3 || labels[1] != "B-PERSON" {
		t.Fatalf("unexpected labels: %v", labels)
	}

	if _, err := parseLabels(writeConfig(`{"id2label":{}}`)); err == nil {
		t.Fatalf("expected empty id2label to be rejected")
	}
	if _, err := parseLabels(writeConfig(`{"id2label":{"0":"O","7":"B-X"}}`)); err == nil {
		t.Fatalf("expected non-contiguous ids to be rejected")
	}
}

func TestLoadMissingArtifactsIsFatal(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("expected missing artifacts to fail initialization")
	}
}
