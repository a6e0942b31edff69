package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalys/piiguard/internal/types"
)

func TestRecommendModeLowMemoryHost(t *testing.T) {
	// 4 GB total always gets the cheapest mode, however much is free.
	assert.Equal(t, types.ModeDisabled, RecommendMode(4096, 4096))
	assert.Equal(t, types.ModeDisabled, RecommendMode(4096, 100))
}

func TestRecommendModeRichHost(t *testing.T) {
	// 32 GB total, 20 GB available: everything fits.
	assert.Equal(t, types.ModeFull, RecommendMode(32768, 20480))
}

func TestRecommendModeFallsBackProgressively(t *testing.T) {
	// Enough for the local model but not the analyzer stack.
	// headroom = available - 5120; lite needs 600, full needs 1600.
	assert.Equal(t, types.ModeLite, RecommendMode(16384, 5120+700))
	assert.Equal(t, types.ModeDisabled, RecommendMode(16384, 5120+100))
	assert.Equal(t, types.ModeFull, RecommendMode(16384, 5120+2000))
}

func TestCanUse(t *testing.T) {
	ok, msg := canUse(types.ModeFull, types.MemorySnapshot{TotalMB: 32768, AvailableMB: 20480})
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = canUse(types.ModeFull, types.MemorySnapshot{TotalMB: 16384, AvailableMB: 6000})
	assert.False(t, ok)
	assert.NotEmpty(t, msg)

	ok, msg = canUse(types.ModeLite, types.MemorySnapshot{TotalMB: 4096, AvailableMB: 4000})
	assert.False(t, ok)
	assert.NotEmpty(t, msg)

	// The baseline never needs headroom.
	ok, _ = canUse(types.ModeDisabled, types.MemorySnapshot{TotalMB: 1024, AvailableMB: 10})
	assert.True(t, ok)
}

func TestSnapshotReadsRealTelemetry(t *testing.T) {
	snap, err := Snapshot()
	require.NoError(t, err)
	assert.Greater(t, snap.TotalMB, uint64(0))
	assert.GreaterOrEqual(t, snap.TotalMB, snap.AvailableMB)
}
