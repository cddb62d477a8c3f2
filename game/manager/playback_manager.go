package manager

import (
	"errors"
	"log/slog"

	"golang.org/x/exp/rand"

	"snakeify/audio"
	"snakeify/catalog"
	"snakeify/game/types"
)

// PlaybackManager keeps a current and a preloaded next track. The food on the
// board always announces the next one.
type PlaybackManager struct {
	catalog *catalog.Catalog
	loader  audio.Loader
	rng     *rand.Rand
	logger  *slog.Logger

	current       *catalog.Track
	next          *catalog.Track
	currentHandle audio.Handle
	nextHandle    audio.Handle
}

func NewPlaybackManager(cat *catalog.Catalog, loader audio.Loader, rng *rand.Rand, logger *slog.Logger) *PlaybackManager {
	if logger == nil {
		logger = slog.Default()
	}
	pm := &PlaybackManager{
		catalog: cat,
		loader:  loader,
		rng:     rng,
		logger:  logger,
	}
	pm.Reset()
	return pm
}

// AdvanceTrack releases the current handle, promotes the preloaded next one
// and preloads a freshly drawn successor. It returns the new current track.
func (pm *PlaybackManager) AdvanceTrack() *catalog.Track {
	pm.release(pm.currentHandle)

	pm.current, pm.currentHandle = pm.next, pm.nextHandle
	if pm.currentHandle == nil {
		pm.currentHandle = audio.Silent()
	}
	pm.currentHandle.SetLoop(true)
	pm.play()

	pm.next = pm.catalog.Draw(pm.rng, pm.current)
	pm.nextHandle = pm.load(pm.next)

	pm.logger.Debug("Track advanced", "current", pm.current, "next", pm.next)
	return pm.current
}

// Sync aligns the current handle with the session phase
func (pm *PlaybackManager) Sync(state types.State, paused bool) {
	if pm.currentHandle == nil {
		return
	}
	switch {
	case state == types.StateGameOver:
		pm.currentHandle.Stop()
	case paused:
		pm.currentHandle.Pause()
	case state == types.StatePlaying && pm.current.Playable():
		pm.play()
	}
}

// Reset drops both handles and preloads the first catalog track as next
func (pm *PlaybackManager) Reset() {
	pm.Close()
	pm.current = nil
	pm.next = pm.catalog.First()
	pm.nextHandle = pm.load(pm.next)
}

// Close stops and releases every handle
func (pm *PlaybackManager) Close() {
	pm.release(pm.currentHandle)
	pm.release(pm.nextHandle)
	pm.currentHandle, pm.nextHandle = nil, nil
}

// Upcoming is the track new food binds to
func (pm *PlaybackManager) Upcoming() *catalog.Track {
	if pm.next != nil {
		return pm.next
	}
	return pm.catalog.First()
}

func (pm *PlaybackManager) Current() *catalog.Track {
	return pm.current
}

func (pm *PlaybackManager) Next() *catalog.Track {
	return pm.next
}

func (pm *PlaybackManager) play() {
	if err := pm.currentHandle.Play(); err != nil {
		if errors.Is(err, audio.ErrNoSource) {
			pm.logger.Debug("Track has no preview", "track", pm.current)
			return
		}
		pm.logger.Warn("Playback failed", "track", pm.current, "error", err)
	}
}

func (pm *PlaybackManager) load(track *catalog.Track) audio.Handle {
	if track == nil || !track.Playable() || pm.loader == nil {
		return audio.Silent()
	}
	return pm.loader.Load(track.PreviewURL)
}

func (pm *PlaybackManager) release(h audio.Handle) {
	if h == nil {
		return
	}
	h.Stop()
	h.Close()
}
