package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-rover/pkg/brain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestJournal_AppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	for i := 1; i <= 3; i++ {
		err := s.Append(0, brain.Decision{
			Action:      brain.ActionForward,
			Speed:       180,
			Number:      i,
			Stage:       brain.StageAToB,
			TraveledCM:  float64(i) * 10,
			Explanation: "ALL PATHS CLEAR!",
			Timestamp:   time.Now(),
		})
		require.NoError(t, err)
	}

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Oldest first.
	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, 3, entries[2].Number)
	assert.Equal(t, brain.ActionForward, entries[0].Action)
	assert.Equal(t, brain.StageAToB, entries[0].Stage)
	assert.InDelta(t, 10.0, entries[0].TraveledCM, 0.001)
}

func TestJournal_RecentLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 1; i <= 10; i++ {
		require.NoError(t, s.Append(0, brain.Decision{
			Action: brain.ActionStop, Number: i, Stage: brain.StageAToB,
			Timestamp: time.Now(),
		}))
	}

	entries, err := s.Recent(4)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, 7, entries[0].Number)
	assert.Equal(t, 10, entries[3].Number)
}

func TestJournal_EpochsKeptSeparate(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Append(0, brain.Decision{Action: brain.ActionForward, Number: 1, Stage: brain.StageAToB, Timestamp: time.Now()}))
	require.NoError(t, s.Append(1, brain.Decision{Action: brain.ActionStop, Number: 1, Stage: brain.StageAToB, Timestamp: time.Now()}))

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Epoch)
	assert.Equal(t, 1, entries[1].Epoch)
}
