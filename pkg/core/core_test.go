package core

import (
	"context"
	"strings"
	"testing"
)

func TestDetect_Smoke(t *testing.T) {
	spans, err := Detect(context.Background(), "reach me at test@example.com", DefaultConfig())
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if len(spans) != 1 || spans[0].Entity != "EMAIL" {
		t.Fatalf("expected one EMAIL span, got %+v", spans)
	}

	red := Redact("reach me at test@example.com", spans)
	if strings.Contains(red, "test@example.com") {
		t.Fatalf("literal survived: %q", red)
	}

	if len(Entities()) == 0 {
		t.Fatal("expected non-empty entity list")
	}
	if len(Modes()) != 3 {
		t.Fatalf("expected 3 modes, got %+v", Modes())
	}
}

func TestNewConfig_RejectsBadInput(t *testing.T) {
	if _, err := NewConfig(1.5, ModeDisabled, true, nil, nil); err == nil {
		t.Fatal("expected threshold rejection")
	}
	if _, err := NewConfig(0.5, "turbo", true, nil, nil); err == nil {
		t.Fatal("expected mode rejection")
	}
}
