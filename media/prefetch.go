package media

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Prefetch warms the fetcher's cache for urls with at most workers concurrent
// downloads. Individual failures are logged and joined into the returned error.
func Prefetch(ctx context.Context, f Fetcher, urls []string, workers int, bar *progressbar.ProgressBar, logger *slog.Logger) error {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	sem := make(chan struct{}, workers)

	for _, u := range urls {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			defer func() { <-sem }()
			if bar != nil {
				defer bar.Add(1)
			}

			if _, err := f.Fetch(ctx, u); err != nil {
				logger.Warn("Prefetch failed", "url", u, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(u)
	}

	wg.Wait()
	return errors.Join(errs...)
}
