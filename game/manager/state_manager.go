package manager

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const statsFile = "gamestats.json"

// ScoreRecord is one finished game
type ScoreRecord struct {
	UUID      string    `json:"uuid"`
	Score     int       `json:"score"`
	Eaten     int       `json:"eaten"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt"`
}

// Duration is how long the game lasted, zero when the start is unknown
func (r ScoreRecord) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Summary aggregates the local score history
type Summary struct {
	GamesPlayed     int
	MaxScore        int
	AverageScore    float64
	MedianScore     float64
	AverageDuration time.Duration
}

type GameStats struct {
	HighScore    int           `json:"highScore"`
	ScoreHistory []ScoreRecord `json:"scoreHistory"`
}

// StateManager keeps the local best score and game history on disk
type StateManager struct {
	path         string
	logger       *slog.Logger
	highScore    int
	scoreHistory []ScoreRecord
}

// NewStateManager loads stats from dataDir. An empty dataDir keeps stats in
// memory only.
func NewStateManager(dataDir string, logger *slog.Logger) *StateManager {
	if logger == nil {
		logger = slog.Default()
	}
	sm := &StateManager{
		logger:       logger,
		scoreHistory: make([]ScoreRecord, 0),
	}
	if dataDir == "" {
		return sm
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Warn("Could not create data directory", "dir", dataDir, "error", err)
		return sm
	}
	sm.path = filepath.Join(dataDir, statsFile)

	if err := sm.LoadStats(sm.path); err != nil && !os.IsNotExist(err) {
		logger.Warn("Could not load stats", "path", sm.path, "error", err)
	}
	return sm
}

func (sm *StateManager) SaveStats(filename string) error {
	stats := GameStats{
		HighScore:    sm.highScore,
		ScoreHistory: sm.scoreHistory,
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

func (sm *StateManager) LoadStats(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return fmt.Errorf("failed to parse stats: %w", err)
	}

	sm.highScore = stats.HighScore
	sm.scoreHistory = stats.ScoreHistory
	if sm.scoreHistory == nil {
		sm.scoreHistory = make([]ScoreRecord, 0)
	}
	return nil
}

// AddToHistory records a finished game and raises the high score if beaten.
// It reports whether the game set a new high score.
func (sm *StateManager) AddToHistory(rec ScoreRecord) bool {
	best := rec.Score > sm.highScore
	if best {
		sm.highScore = rec.Score
	}
	sm.scoreHistory = append(sm.scoreHistory, rec)
	sm.save()
	return best
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

func (sm *StateManager) GetScoreHistory() []ScoreRecord {
	return sm.scoreHistory
}

// Summary computes aggregates over every recorded game
func (sm *StateManager) Summary() Summary {
	sum := Summary{GamesPlayed: len(sm.scoreHistory)}
	if sum.GamesPlayed == 0 {
		return sum
	}

	scores := make([]int, 0, len(sm.scoreHistory))
	var total int
	var duration time.Duration
	var timed int
	for _, rec := range sm.scoreHistory {
		scores = append(scores, rec.Score)
		total += rec.Score
		sum.MaxScore = max(sum.MaxScore, rec.Score)
		if d := rec.Duration(); d > 0 {
			duration += d
			timed++
		}
	}

	sum.AverageScore = float64(total) / float64(len(scores))
	sort.Ints(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		sum.MedianScore = float64(scores[mid-1]+scores[mid]) / 2
	} else {
		sum.MedianScore = float64(scores[mid])
	}
	if timed > 0 {
		sum.AverageDuration = duration / time.Duration(timed)
	}
	return sum
}

func (sm *StateManager) save() {
	if sm.path == "" {
		return
	}
	if err := sm.SaveStats(sm.path); err != nil {
		sm.logger.Warn("Could not save stats", "path", sm.path, "error", err)
	}
}
