package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrStatus is returned when a fetch answers with a non-200 status
var ErrStatus = errors.New("unexpected status")

// Fetcher retrieves the bytes behind a media URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher downloads media over HTTP, keeping a copy in a cache directory
// when one is configured
type HTTPFetcher struct {
	client   *http.Client
	cacheDir string
	logger   *slog.Logger
}

// NewHTTPFetcher creates a fetcher. An empty cacheDir disables the disk cache.
func NewHTTPFetcher(cacheDir string, timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		cacheDir: cacheDir,
		logger:   logger,
	}
}

// Fetch returns the cached copy when present, otherwise downloads and caches it
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok := f.cached(url); ok {
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %w: %d", url, ErrStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	f.store(url, data)
	return data, nil
}

// Cached reports whether url already has a cached copy
func (f *HTTPFetcher) Cached(url string) bool {
	if f.cacheDir == "" {
		return false
	}
	_, err := os.Stat(f.cachePath(url))
	return err == nil
}

func (f *HTTPFetcher) cached(url string) ([]byte, bool) {
	if f.cacheDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(f.cachePath(url))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (f *HTTPFetcher) store(url string, data []byte) {
	if f.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(f.cacheDir, 0755); err != nil {
		f.logger.Warn("Failed to create media cache", "dir", f.cacheDir, "error", err)
		return
	}

	// Write through a temp file so a crash never leaves a truncated entry
	path := f.cachePath(url)
	tmp := path + ".part"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		f.logger.Warn("Failed to cache media", "url", url, "error", err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		f.logger.Warn("Failed to cache media", "url", url, "error", err)
		os.Remove(tmp)
	}
}

func (f *HTTPFetcher) cachePath(url string) string {
	sum := sha1.Sum([]byte(url))
	return filepath.Join(f.cacheDir, hex.EncodeToString(sum[:]))
}
