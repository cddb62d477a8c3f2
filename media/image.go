package media

import (
	"context"
	"log/slog"
	"sync"
)

// Image is an artwork handle whose bytes load in the background. A handle is
// safe to share between segments and renderers.
type Image struct {
	url  string
	done chan struct{}

	mu   sync.RWMutex
	data []byte
	err  error
}

// NewImage returns a handle that is already loaded with data
func NewImage(url string, data []byte) *Image {
	img := &Image{url: url, done: make(chan struct{}), data: data}
	close(img.done)
	return img
}

// FailedImage returns a handle whose load already failed
func FailedImage(url string, err error) *Image {
	img := &Image{url: url, done: make(chan struct{}), err: err}
	close(img.done)
	return img
}

func (i *Image) URL() string {
	if i == nil {
		return ""
	}
	return i.url
}

// Bytes returns the image data once loaded
func (i *Image) Bytes() ([]byte, bool) {
	if i == nil {
		return nil, false
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.data, i.data != nil
}

// Err returns the load error, nil while loading or after success
func (i *Image) Err() error {
	if i == nil {
		return nil
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.err
}

// Loaded reports whether the load finished, successfully or not
func (i *Image) Loaded() bool {
	if i == nil {
		return false
	}
	select {
	case <-i.done:
		return true
	default:
		return false
	}
}

func (i *Image) finish(data []byte, err error) {
	i.mu.Lock()
	i.data, i.err = data, err
	i.mu.Unlock()
	close(i.done)
}

// ImageLoader starts background image loads and shares handles per URL
type ImageLoader struct {
	ctx     context.Context
	fetcher Fetcher
	logger  *slog.Logger

	mu     sync.Mutex
	images map[string]*Image
}

// NewImageLoader creates a loader whose fetches are bound to ctx
func NewImageLoader(ctx context.Context, fetcher Fetcher, logger *slog.Logger) *ImageLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageLoader{
		ctx:     ctx,
		fetcher: fetcher,
		logger:  logger,
		images:  make(map[string]*Image),
	}
}

// LoadImage returns the handle for url, starting the fetch on first use.
// Failed loads are dropped from the table so a later call retries.
func (l *ImageLoader) LoadImage(url string) *Image {
	if url == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if img, ok := l.images[url]; ok && (!img.Loaded() || img.Err() == nil) {
		return img
	}

	img := &Image{url: url, done: make(chan struct{})}
	l.images[url] = img

	go func() {
		data, err := l.fetcher.Fetch(l.ctx, url)
		if err != nil {
			l.logger.Warn("Artwork load failed", "url", url, "error", err)
		}
		img.finish(data, err)
	}()
	return img
}
