package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu    sync.Mutex
	data  map[string][]byte
	calls map[string]int
}

func newStubFetcher(data map[string][]byte) *stubFetcher {
	return &stubFetcher{data: data, calls: make(map[string]int)}
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[url]++
	if d, ok := s.data[url]; ok {
		return d, nil
	}
	return nil, errors.New("not found")
}

func (s *stubFetcher) count(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[url]
}

func TestHTTPFetcherCachesToDisk(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "artwork-bytes")
	}))
	defer srv.Close()

	f := NewHTTPFetcher(t.TempDir(), 5*time.Second, nil)

	data, err := f.Fetch(context.Background(), srv.URL+"/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "artwork-bytes", string(data))
	assert.True(t, f.Cached(srv.URL+"/a.jpg"))

	data, err = f.Fetch(context.Background(), srv.URL+"/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "artwork-bytes", string(data))
	assert.Equal(t, int32(1), hits.Load())

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrStatus)
	assert.False(t, f.Cached(srv.URL+"/missing"))
}

func TestImageLoaderSharesHandles(t *testing.T) {
	stub := newStubFetcher(map[string][]byte{"u": []byte("img")})
	l := NewImageLoader(context.Background(), stub, nil)

	a := l.LoadImage("u")
	b := l.LoadImage("u")
	assert.Same(t, a, b)

	require.Eventually(t, a.Loaded, time.Second, 5*time.Millisecond)
	require.NoError(t, a.Err())
	data, ok := a.Bytes()
	assert.True(t, ok)
	assert.Equal(t, "img", string(data))
	assert.Equal(t, 1, stub.count("u"))

	assert.Nil(t, l.LoadImage(""))
}

func TestImageLoaderRetriesFailures(t *testing.T) {
	stub := newStubFetcher(nil)
	l := NewImageLoader(context.Background(), stub, nil)

	first := l.LoadImage("broken")
	require.Eventually(t, first.Loaded, time.Second, 5*time.Millisecond)
	assert.Error(t, first.Err())
	_, ok := first.Bytes()
	assert.False(t, ok)

	second := l.LoadImage("broken")
	assert.NotSame(t, first, second)
	require.Eventually(t, second.Loaded, time.Second, 5*time.Millisecond)
	assert.Error(t, second.Err())
	assert.Equal(t, 2, stub.count("broken"))
}

func TestImageStates(t *testing.T) {
	ready := NewImage("r", []byte{1})
	assert.True(t, ready.Loaded())
	assert.NoError(t, ready.Err())

	failed := FailedImage("f", errors.New("boom"))
	assert.True(t, failed.Loaded())
	assert.Error(t, failed.Err())

	var none *Image
	assert.False(t, none.Loaded())
	assert.Empty(t, none.URL())
}

func TestPrefetchCountsAndJoinsErrors(t *testing.T) {
	stub := newStubFetcher(map[string][]byte{"a": {1}, "b": {2}})
	bar := progressbar.NewOptions(3, progressbar.OptionSetWriter(io.Discard))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	err := Prefetch(context.Background(), stub, []string{"a", "b", "c"}, 2, bar, logger)
	assert.Error(t, err)
	assert.Equal(t, 1, stub.count("a"))
	assert.Equal(t, 1, stub.count("c"))
	assert.True(t, bar.IsFinished())
	assert.Contains(t, logs.String(), "Prefetch failed")
	assert.Contains(t, logs.String(), "url=c")
}

func TestDominantColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	c, err := DominantColor(buf.Bytes())
	require.NoError(t, err)
	r, g, b := c.RGB255()
	assert.InDelta(t, 200, int(r), 1)
	assert.InDelta(t, 40, int(g), 1)
	assert.InDelta(t, 10, int(b), 1)

	_, err = DominantColor([]byte("not an image"))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, err = Decode([]byte("nope"))
	assert.Error(t, err)
}
