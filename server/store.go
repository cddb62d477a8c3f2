package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"snakeify/api"
)

// Store persists users and game sessions
type Store interface {
	UpsertUser(u api.NewUser) (*api.User, error)
	CreateSession(userID int, sub api.Submission) (*api.Session, error)
	Leaderboard(limit int) ([]api.LeaderboardEntry, error)
	History(sessionID int) ([]api.Song, error)
}

type storeData struct {
	Users    []*api.User    `json:"users"`
	Sessions []*api.Session `json:"sessions"`
}

// MemoryStore keeps everything in memory and, when path is set, rewrites a
// JSON file after every change.
type MemoryStore struct {
	mu       sync.RWMutex
	path     string
	logger   *slog.Logger
	users    map[int]*api.User
	bySpotID map[string]*api.User
	sessions map[int]*api.Session
	nextUser int
	nextSess int
	now      func() time.Time
}

func NewMemoryStore(path string, logger *slog.Logger) (*MemoryStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &MemoryStore{
		path:     path,
		logger:   logger,
		users:    make(map[int]*api.User),
		bySpotID: make(map[string]*api.User),
		sessions: make(map[int]*api.Session),
		nextUser: 1,
		nextSess: 1,
		now:      time.Now,
	}
	if path == "" {
		return s, nil
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MemoryStore) UpsertUser(u api.NewUser) (*api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.bySpotID[u.SpotifyID]; ok {
		prev := *existing
		existing.DisplayName = u.DisplayName
		if u.ProfileImage != "" {
			existing.ProfileImage = u.ProfileImage
		}
		if err := s.save(); err != nil {
			*existing = prev
			return nil, err
		}
		cp := *existing
		return &cp, nil
	}

	user := &api.User{
		ID:           s.nextUser,
		SpotifyID:    u.SpotifyID,
		DisplayName:  u.DisplayName,
		ProfileImage: u.ProfileImage,
	}
	s.nextUser++
	s.users[user.ID] = user
	s.bySpotID[user.SpotifyID] = user

	if err := s.save(); err != nil {
		delete(s.users, user.ID)
		delete(s.bySpotID, user.SpotifyID)
		s.nextUser--
		return nil, err
	}
	cp := *user
	return &cp, nil
}

func (s *MemoryStore) CreateSession(userID int, sub api.Submission) (*api.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}

	songs := make([]api.Song, len(sub.EatenSongs))
	copy(songs, sub.EatenSongs)
	session := &api.Session{
		ID:         s.nextSess,
		UserID:     userID,
		Score:      sub.Score,
		EatenSongs: songs,
		CreatedAt:  s.now().UTC(),
	}
	s.nextSess++
	s.sessions[session.ID] = session

	if err := s.save(); err != nil {
		delete(s.sessions, session.ID)
		s.nextSess--
		return nil, err
	}
	cp := *session
	return &cp, nil
}

// Leaderboard returns each user's best session, highest score first. Ties
// go to the earlier session.
func (s *MemoryStore) Leaderboard(limit int) ([]api.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := make(map[int]*api.Session)
	for _, sess := range s.sessions {
		cur, ok := best[sess.UserID]
		if !ok || sess.Score > cur.Score || (sess.Score == cur.Score && sess.ID < cur.ID) {
			best[sess.UserID] = sess
		}
	}

	entries := make([]api.LeaderboardEntry, 0, len(best))
	for userID, sess := range best {
		user, ok := s.users[userID]
		if !ok {
			continue
		}
		entries = append(entries, api.LeaderboardEntry{
			ID:    sess.ID,
			Score: sess.Score,
			User: api.UserSummary{
				ID:           user.ID,
				DisplayName:  user.DisplayName,
				ProfileImage: user.ProfileImage,
			},
			CreatedAt: sess.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].ID < entries[j].ID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *MemoryStore) History(sessionID int) ([]api.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %d: %w", sessionID, ErrSessionNotFound)
	}
	songs := make([]api.Song, len(sess.EatenSongs))
	copy(songs, sess.EatenSongs)
	return songs, nil
}

func (s *MemoryStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("Starting with an empty store", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}

	var d storeData
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("failed to parse store: %w", err)
	}
	for _, u := range d.Users {
		s.users[u.ID] = u
		s.bySpotID[u.SpotifyID] = u
		s.nextUser = max(s.nextUser, u.ID+1)
	}
	for _, sess := range d.Sessions {
		s.sessions[sess.ID] = sess
		s.nextSess = max(s.nextSess, sess.ID+1)
	}

	s.logger.Info("Store loaded", "path", s.path, "users", len(s.users), "sessions", len(s.sessions))
	return nil
}

// save must be called with the lock held. Callers undo their change when it
// fails so memory never holds what the file does not.
func (s *MemoryStore) save() error {
	if s.path == "" {
		return nil
	}

	d := storeData{
		Users:    make([]*api.User, 0, len(s.users)),
		Sessions: make([]*api.Session, 0, len(s.sessions)),
	}
	for _, u := range s.users {
		d.Users = append(d.Users, u)
	}
	for _, sess := range s.sessions {
		d.Sessions = append(d.Sessions, sess)
	}
	sort.Slice(d.Users, func(i, j int) bool { return d.Users[i].ID < d.Users[j].ID })
	sort.Slice(d.Sessions, func(i, j int) bool { return d.Sessions[i].ID < d.Sessions[j].ID })

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return os.Rename(tmp, s.path)
}
