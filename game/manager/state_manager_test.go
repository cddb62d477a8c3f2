package manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsPersist(t *testing.T) {
	dir := t.TempDir()
	sm := NewStateManager(dir, nil)
	ended := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	assert.True(t, sm.AddToHistory(ScoreRecord{UUID: "g1", Score: 4, Eaten: 4, EndedAt: ended}))
	assert.False(t, sm.AddToHistory(ScoreRecord{UUID: "g2", Score: 2, Eaten: 2, EndedAt: ended}))
	assert.Equal(t, 4, sm.GetHighScore())

	reloaded := NewStateManager(dir, nil)
	assert.Equal(t, 4, reloaded.GetHighScore())
	require.Len(t, reloaded.GetScoreHistory(), 2)
	assert.Equal(t, "g2", reloaded.GetScoreHistory()[1].UUID)
	assert.True(t, ended.Equal(reloaded.GetScoreHistory()[0].EndedAt))
}

func TestStatsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, statsFile), []byte("{not json"), 0644))

	sm := NewStateManager(dir, nil)
	assert.Zero(t, sm.GetHighScore())
	assert.Empty(t, sm.GetScoreHistory())
}

func TestStatsInMemory(t *testing.T) {
	sm := NewStateManager("", nil)
	sm.AddToHistory(ScoreRecord{Score: 3})
	assert.Equal(t, 3, sm.GetHighScore())
}

func TestStatsSummary(t *testing.T) {
	sm := NewStateManager("", nil)
	assert.Equal(t, Summary{}, sm.Summary())

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, score := range []int{3, 9, 1, 5} {
		sm.AddToHistory(ScoreRecord{
			UUID:      string(rune('a' + i)),
			Score:     score,
			StartedAt: start,
			EndedAt:   start.Add(time.Duration(i+1) * 10 * time.Second),
		})
	}
	// no start time, left out of the duration average
	sm.AddToHistory(ScoreRecord{UUID: "e", Score: 7, EndedAt: start})

	sum := sm.Summary()
	assert.Equal(t, 5, sum.GamesPlayed)
	assert.Equal(t, 9, sum.MaxScore)
	assert.InDelta(t, 5.0, sum.AverageScore, 1e-9)
	assert.InDelta(t, 5.0, sum.MedianScore, 1e-9)
	assert.Equal(t, 25*time.Second, sum.AverageDuration)
}

func TestStatsSummaryEvenMedian(t *testing.T) {
	sm := NewStateManager("", nil)
	for _, score := range []int{2, 8, 4, 6} {
		sm.AddToHistory(ScoreRecord{Score: score})
	}
	assert.InDelta(t, 5.0, sm.Summary().MedianScore, 1e-9)
}
