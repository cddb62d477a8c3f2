package manager

import (
	"context"
	"log/slog"
	"sync"

	"snakeify/api"
	"snakeify/catalog"
)

// Submitter sends a finished session to the score backend
type Submitter interface {
	SubmitScore(ctx context.Context, userID int, sub api.Submission) (*api.Session, error)
}

// Entry is one eaten track in play order
type Entry struct {
	Order    int
	Track    *catalog.Track
	CoverURL string
}

// SessionRecorder keeps the tracks eaten during one game and submits them
// once the game ends.
type SessionRecorder struct {
	submitter Submitter
	userID    int
	logger    *slog.Logger

	entries   []Entry
	finalized bool
	wg        sync.WaitGroup
}

// NewSessionRecorder creates a recorder. Submissions are skipped when userID
// is not positive or submitter is nil.
func NewSessionRecorder(submitter Submitter, userID int, logger *slog.Logger) *SessionRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRecorder{
		submitter: submitter,
		userID:    userID,
		logger:    logger,
	}
}

// Record appends track with the next order number
func (sr *SessionRecorder) Record(track *catalog.Track, coverURL string) Entry {
	e := Entry{Order: len(sr.entries) + 1, Track: track, CoverURL: coverURL}
	sr.entries = append(sr.entries, e)
	return e
}

// Entries returns a copy of the history
func (sr *SessionRecorder) Entries() []Entry {
	out := make([]Entry, len(sr.entries))
	copy(out, sr.entries)
	return out
}

func (sr *SessionRecorder) Len() int {
	return len(sr.entries)
}

// Finalize builds the submission and sends it in the background. Only the
// first call per game submits; the result is never awaited by the caller.
func (sr *SessionRecorder) Finalize(ctx context.Context, score int) api.Submission {
	sub := sr.submission(score)
	if sr.finalized {
		return sub
	}
	sr.finalized = true

	if sr.submitter == nil || sr.userID <= 0 {
		sr.logger.Debug("Score submission skipped", "score", score)
		return sub
	}

	sr.wg.Add(1)
	go func(userID int) {
		defer sr.wg.Done()
		if _, err := sr.submitter.SubmitScore(ctx, userID, sub); err != nil {
			sr.logger.Error("Failed to submit score", "user", userID, "score", sub.Score, "error", err)
		}
	}(sr.userID)
	return sub
}

// Reset starts a new game
func (sr *SessionRecorder) Reset() {
	sr.entries = nil
	sr.finalized = false
}

// Wait blocks until pending submissions finish
func (sr *SessionRecorder) Wait() {
	sr.wg.Wait()
}

func (sr *SessionRecorder) submission(score int) api.Submission {
	songs := make([]api.Song, 0, len(sr.entries))
	for _, e := range sr.entries {
		song := api.Song{
			Order:    e.Order,
			Title:    "Unknown",
			Artist:   e.Track.Artist(),
			CoverURL: e.CoverURL,
		}
		if e.Track != nil {
			song.Title = e.Track.Name
			song.PreviewURL = e.Track.PreviewURL
			song.SpotifyURI = e.Track.URI
		}
		songs = append(songs, song)
	}
	return api.Submission{Score: score, EatenSongs: songs}
}
