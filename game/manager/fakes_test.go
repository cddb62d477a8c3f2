package manager

import (
	"context"
	"sync"

	"snakeify/api"
	"snakeify/audio"
	"snakeify/catalog"
	"snakeify/media"
)

func testTrack(id string, preview bool) *catalog.Track {
	t := &catalog.Track{
		ID:      id,
		Name:    "Song " + id,
		Artists: []catalog.Artist{{Name: "Artist " + id}},
		Album: catalog.Album{Images: []catalog.Image{
			{URL: "https://img/" + id + "/640"},
			{URL: "https://img/" + id + "/64"},
		}},
		URI: "spotify:track:" + id,
	}
	if preview {
		t.PreviewURL = "https://audio/" + id + ".mp3"
	}
	return t
}

func testCatalog(ids ...string) *catalog.Catalog {
	tracks := make([]*catalog.Track, 0, len(ids))
	for _, id := range ids {
		tracks = append(tracks, testTrack(id, true))
	}
	cat, err := catalog.New(tracks)
	if err != nil {
		panic(err)
	}
	return cat
}

type fakeHandle struct {
	url     string
	playErr error
	loop    bool
	plays   int
	pauses  int
	stops   int
	closed  bool
}

func (h *fakeHandle) Play() error {
	h.plays++
	return h.playErr
}
func (h *fakeHandle) Pause()            { h.pauses++ }
func (h *fakeHandle) Stop()             { h.stops++ }
func (h *fakeHandle) SetLoop(loop bool) { h.loop = loop }
func (h *fakeHandle) Close()            { h.closed = true }
func (h *fakeHandle) Source() string    { return h.url }

type fakeLoader struct {
	handles []*fakeHandle
}

func (l *fakeLoader) Load(url string) audio.Handle {
	h := &fakeHandle{url: url}
	l.handles = append(l.handles, h)
	return h
}

func (l *fakeLoader) handleFor(url string) *fakeHandle {
	for i := len(l.handles) - 1; i >= 0; i-- {
		if l.handles[i].url == url {
			return l.handles[i]
		}
	}
	return nil
}

type fakeImages struct {
	urls []string
}

func (f *fakeImages) LoadImage(url string) *media.Image {
	f.urls = append(f.urls, url)
	return media.NewImage(url, []byte("img"))
}

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []api.Submission
	users []int
	err   error
}

func (f *fakeSubmitter) SubmitScore(_ context.Context, userID int, sub api.Submission) (*api.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sub)
	f.users = append(f.users, userID)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Session{ID: len(f.calls), UserID: userID, Score: sub.Score}, nil
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
