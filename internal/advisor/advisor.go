// Package advisor recommends a detection mode from live memory telemetry. It
// is stateless and holds no reference to the detection engine: callers read a
// recommendation and write the result into their own configuration. The host
// is assumed to run a multi-gigabyte language model alongside the engine, so
// a fixed footprint for it is always reserved.
package advisor

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/varalys/piiguard/internal/types"
)

const (
	// llmFootprintMB is the reserved estimate for the co-resident language
	// model, whether or not it is currently loaded.
	llmFootprintMB = 4096
	// safetyBufferMB keeps the host responsive after everything is loaded.
	safetyBufferMB = 1024
	// lowMemoryTotalMB: hosts below this always get the cheapest mode.
	// Availability on small hosts swings too much to chase it.
	lowMemoryTotalMB = 8192
)

// Snapshot reads fresh memory telemetry. Results are never cached: the
// language model loads and unloads independently, so availability is
// adversarial between calls.
func Snapshot() (types.MemorySnapshot, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return types.MemorySnapshot{}, fmt.Errorf("advisor: read memory: %w", err)
	}
	snap := types.MemorySnapshot{
		TotalMB:     vm.Total / 1024 / 1024,
		AvailableMB: vm.Available / 1024 / 1024,
		UsedMB:      vm.Used / 1024 / 1024,
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			snap.ProcessRSSMB = mi.RSS / 1024 / 1024
		}
	}
	return snap, nil
}

// RecommendMode picks the richest mode whose overhead fits the memory left
// after the language-model footprint and safety buffer, falling back
// progressively. Low-memory hosts always get the cheapest mode regardless of
// current availability: stability over opportunism.
func RecommendMode(totalMB, availableMB uint64) types.DetectionMode {
	if totalMB < lowMemoryTotalMB {
		return types.ModeDisabled
	}
	budget := headroomMB(availableMB)
	modes := types.Modes()
	for i := len(modes) - 1; i >= 0; i-- {
		if modes[i].OverheadMB <= budget {
			return modes[i].Mode
		}
	}
	return types.ModeDisabled
}

// Recommend takes a fresh snapshot and returns the recommended mode plus a
// human-readable note for the settings surface.
func Recommend() (types.DetectionMode, string, error) {
	snap, err := Snapshot()
	if err != nil {
		return types.ModeDisabled, "", err
	}
	m := RecommendMode(snap.TotalMB, snap.AvailableMB)
	note := fmt.Sprintf("%d MB available of %d MB total; %d MB reserved for the language model and %d MB safety buffer",
		snap.AvailableMB, snap.TotalMB, uint64(llmFootprintMB), uint64(safetyBufferMB))
	return m, note, nil
}

// CanUseMode re-checks a specific mode against a fresh snapshot, returning an
// explanatory message when headroom is negative.
func CanUseMode(mode types.DetectionMode) (bool, string, error) {
	snap, err := Snapshot()
	if err != nil {
		return false, "", err
	}
	ok, msg := canUse(mode, snap)
	return ok, msg, nil
}

func canUse(mode types.DetectionMode, snap types.MemorySnapshot) (bool, string) {
	if mode == types.ModeDisabled {
		return true, ""
	}
	if snap.TotalMB < lowMemoryTotalMB {
		return false, fmt.Sprintf("host has %d MB total memory; modes beyond %q need at least %d MB", snap.TotalMB, types.ModeDisabled, uint64(lowMemoryTotalMB))
	}
	need := mode.Info().OverheadMB
	have := headroomMB(snap.AvailableMB)
	if need > have {
		return false, fmt.Sprintf("mode %q needs %d MB but only %d MB remain after the %d MB language-model reservation", mode, need, have, uint64(llmFootprintMB))
	}
	return true, ""
}

func headroomMB(availableMB uint64) uint64 {
	const reserved = llmFootprintMB + safetyBufferMB
	if availableMB <= reserved {
		return 0
	}
	return availableMB - reserved
}
