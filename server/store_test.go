package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snakeify/api"
)

func newUser(id string) api.NewUser {
	return api.NewUser{SpotifyID: id, DisplayName: "Player " + id}
}

func TestUpsertUserIsIdempotent(t *testing.T) {
	s, err := NewMemoryStore("", nil)
	require.NoError(t, err)

	first, err := s.UpsertUser(newUser("abc"))
	require.NoError(t, err)
	again, err := s.UpsertUser(api.NewUser{SpotifyID: "abc", DisplayName: "Renamed"})
	require.NoError(t, err)
	other, err := s.UpsertUser(newUser("xyz"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Renamed", again.DisplayName)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestCreateSessionUnknownUser(t *testing.T) {
	s, err := NewMemoryStore("", nil)
	require.NoError(t, err)

	_, err = s.CreateSession(42, api.Submission{Score: 1})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLeaderboardKeepsBestPerUser(t *testing.T) {
	s, err := NewMemoryStore("", nil)
	require.NoError(t, err)

	a, _ := s.UpsertUser(newUser("a"))
	b, _ := s.UpsertUser(newUser("b"))
	c, _ := s.UpsertUser(newUser("c"))

	for _, sub := range []struct {
		user  int
		score int
	}{
		{a.ID, 3}, {a.ID, 9}, {b.ID, 5}, {b.ID, 2}, {c.ID, 7},
	} {
		_, err := s.CreateSession(sub.user, api.Submission{Score: sub.score})
		require.NoError(t, err)
	}

	entries, err := s.Leaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []int{9, 7, 5}, []int{entries[0].Score, entries[1].Score, entries[2].Score})
	assert.Equal(t, a.ID, entries[0].User.ID)
	assert.Equal(t, "Player a", entries[0].User.DisplayName)

	top, err := s.Leaderboard(2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestLeaderboardTieGoesToEarlierSession(t *testing.T) {
	s, err := NewMemoryStore("", nil)
	require.NoError(t, err)
	a, _ := s.UpsertUser(newUser("a"))
	b, _ := s.UpsertUser(newUser("b"))

	first, _ := s.CreateSession(b.ID, api.Submission{Score: 4})
	_, _ = s.CreateSession(a.ID, api.Submission{Score: 4})

	entries, err := s.Leaderboard(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
}

func TestHistoryReturnsCopy(t *testing.T) {
	s, err := NewMemoryStore("", nil)
	require.NoError(t, err)
	u, _ := s.UpsertUser(newUser("a"))

	sess, err := s.CreateSession(u.ID, api.Submission{
		Score:      1,
		EatenSongs: []api.Song{{Order: 1, Title: "Alpha", Artist: "One"}},
	})
	require.NoError(t, err)

	songs, err := s.History(sess.ID)
	require.NoError(t, err)
	songs[0].Title = "changed"

	again, err := s.History(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", again[0].Title)

	_, err = s.History(sess.ID + 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.json")

	s, err := NewMemoryStore(path, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	u, err := s.UpsertUser(newUser("a"))
	require.NoError(t, err)
	sess, err := s.CreateSession(u.ID, api.Submission{
		Score:      2,
		EatenSongs: []api.Song{{Order: 1, Title: "Alpha"}, {Order: 2, Title: "Beta"}},
	})
	require.NoError(t, err)

	reloaded, err := NewMemoryStore(path, nil)
	require.NoError(t, err)

	songs, err := reloaded.History(sess.ID)
	require.NoError(t, err)
	assert.Len(t, songs, 2)

	entries, err := reloaded.Leaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Score)
	assert.True(t, entries[0].CreatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))

	// IDs continue after the persisted ones
	u2, err := reloaded.UpsertUser(newUser("b"))
	require.NoError(t, err)
	assert.Greater(t, u2.ID, u.ID)
	next, err := reloaded.CreateSession(u2.ID, api.Submission{Score: 1})
	require.NoError(t, err)
	assert.Greater(t, next.ID, sess.ID)
}

func TestFailedSaveLeavesStoreUnchanged(t *testing.T) {
	dir := t.TempDir()
	s, err := NewMemoryStore(filepath.Join(dir, "scores.json"), nil)
	require.NoError(t, err)
	u, err := s.UpsertUser(newUser("a"))
	require.NoError(t, err)

	// a regular file where the store directory should be
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	s.path = filepath.Join(blocker, "scores.json")

	_, err = s.CreateSession(u.ID, api.Submission{Score: 3})
	require.Error(t, err)
	entries, err := s.Leaderboard(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, err = s.History(1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.UpsertUser(newUser("b"))
	require.Error(t, err)
	_, err = s.UpsertUser(api.NewUser{SpotifyID: "a", DisplayName: "Renamed"})
	require.Error(t, err)
	assert.Equal(t, "Player a", s.users[u.ID].DisplayName)
	assert.Len(t, s.users, 1)

	s.path = filepath.Join(dir, "scores.json")
	b, err := s.UpsertUser(newUser("b"))
	require.NoError(t, err)
	assert.Equal(t, u.ID+1, b.ID)
	sess, err := s.CreateSession(u.ID, api.Submission{Score: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, sess.ID)
}
