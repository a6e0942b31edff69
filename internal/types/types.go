package types

import "fmt"

// EntityType classifies the kind of sensitive data found.
type EntityType string

const (
	EntitySSN           EntityType = "SSN"
	EntityEmail         EntityType = "EMAIL"
	EntityPhone         EntityType = "PHONE"
	EntityIPAddress     EntityType = "IP_ADDRESS"
	EntityCreditCard    EntityType = "CREDIT_CARD"
	EntityPerson        EntityType = "PERSON"
	EntityOrganization  EntityType = "ORGANIZATION"
	EntityCaseNumber    EntityType = "CASE_NUMBER"
	EntityMedicalRecord EntityType = "MEDICAL_RECORD"
)

// BuiltinEntities lists every entity type the pattern library knows about.
func BuiltinEntities() []EntityType {
	return []EntityType{
		EntitySSN, EntityEmail, EntityPhone, EntityIPAddress, EntityCreditCard,
		EntityPerson, EntityOrganization, EntityCaseNumber, EntityMedicalRecord,
	}
}

// Engine identifies which detection layer produced a span.
type Engine string

const (
	EnginePattern  Engine = "pattern"
	EngineNER      Engine = "ner"
	EngineExternal Engine = "external"
)

// DetectedSpan describes one sensitive value found in scanned text, with byte
// offsets into the original input, a confidence in [0,1], and the engine that
// produced it. Spans are value types; merging builds new spans rather than
// mutating existing ones.
type DetectedSpan struct {
	Entity     EntityType `json:"entity_type"`
	Text       string     `json:"text"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Confidence float64    `json:"confidence"`
	Engine     Engine     `json:"engine"`
}

// Valid reports whether the span's offsets are coherent.
func (s DetectedSpan) Valid() bool {
	return s.Start >= 0 && s.Start <= s.End
}

// Key is the dedupe identity: spans at identical [start,end) with the same
// entity type are duplicates of each other regardless of engine.
func (s DetectedSpan) Key() string {
	return fmt.Sprintf("%d|%d|%s", s.Start, s.End, s.Entity)
}

// DetectionMode selects which optional layers run on top of the pattern
// baseline.
type DetectionMode string

const (
	// ModeDisabled runs pattern rules only.
	ModeDisabled DetectionMode = "disabled"
	// ModeLite adds the embedded sequence-labeling model.
	ModeLite DetectionMode = "lite"
	// ModeFull adds the detached analyzer process on top of Lite.
	ModeFull DetectionMode = "full"
)

// ModeInfo carries the advisory figures shown for a mode. OverheadMB is a
// fixed estimate of extra resident memory; Accuracy is a rough expected
// recall figure for display only.
type ModeInfo struct {
	Mode       DetectionMode
	OverheadMB uint64
	Accuracy   string
}

// Modes returns all detection modes ordered cheapest to richest.
func Modes() []ModeInfo {
	return []ModeInfo{
		{Mode: ModeDisabled, OverheadMB: 0, Accuracy: "~70% (pattern rules only)"},
		{Mode: ModeLite, OverheadMB: 600, Accuracy: "~85% (patterns + local model)"},
		{Mode: ModeFull, OverheadMB: 1600, Accuracy: "~95% (patterns + model + analyzer)"},
	}
}

// Info returns the advisory figures for m, falling back to ModeDisabled for
// unknown values.
func (m DetectionMode) Info() ModeInfo {
	for _, mi := range Modes() {
		if mi.Mode == m {
			return mi
		}
	}
	return Modes()[0]
}

// EnablesNER reports whether the sequence-labeling model runs in this mode.
func (m DetectionMode) EnablesNER() bool { return m == ModeLite || m == ModeFull }

// EnablesExternal reports whether the detached analyzer runs in this mode.
func (m DetectionMode) EnablesExternal() bool { return m == ModeFull }

// MemorySnapshot is a point-in-time view of host memory. It is read fresh on
// every advisory call; availability shifts as the co-resident language model
// loads and unloads, so snapshots must never be cached.
type MemorySnapshot struct {
	TotalMB      uint64 `json:"total_mb"`
	AvailableMB  uint64 `json:"available_mb"`
	UsedMB       uint64 `json:"used_mb"`
	ProcessRSSMB uint64 `json:"process_rss_mb"`
}
