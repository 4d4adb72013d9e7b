package artwork

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nasum/internal/config"
	"nasum/internal/fileutil"
	"nasum/internal/logging"
	"nasum/internal/services"
)

// HTTPDoer describes the HTTP client used to download artwork.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads missing artwork into a Store.
type Fetcher struct {
	store     *Store
	sourceURL string
	client    HTTPDoer
	timeout   time.Duration
	logger    *slog.Logger
}

// NewFetcher constructs a Fetcher for the configured source URL. A nil client
// uses http.DefaultClient.
func NewFetcher(cfg *config.Config, store *Store, client HTTPDoer, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		store:     store,
		sourceURL: strings.TrimSpace(cfg.Artwork.SourceURL),
		client:    client,
		timeout:   time.Duration(cfg.Artwork.TimeoutSeconds) * time.Second,
		logger:    logging.NewComponentLogger(logger, "artwork"),
	}
}

// Result describes the outcome of one fetch.
type Result struct {
	Number  string
	Path    string
	Fetched bool
}

// Fetch downloads the artwork for number unless it is already cached.
func (f *Fetcher) Fetch(ctx context.Context, number string) (Result, error) {
	ctx = services.WithEpisode(ctx, number)
	logger := logging.WithContext(ctx, f.logger)
	result := Result{Number: number, Path: f.store.Path(number)}

	if path, ok := f.store.Lookup(number); ok {
		logger.Debug("artwork cached", logging.String("path", path))
		return result, nil
	}
	if f.sourceURL == "" {
		return result, services.Wrap(services.ErrConfiguration, "artwork", "fetch", "artwork.source_url is not set", nil)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	url := strings.ReplaceAll(f.sourceURL, "{n}", number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result, services.Wrap(services.ErrConfiguration, "artwork", "build request", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result, services.Wrap(services.ErrTimeout, "artwork", "download", url, err)
		}
		return result, services.Wrap(services.ErrTransient, "artwork", "download", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return result, services.Wrap(services.ErrNotFound, "artwork", "download", fmt.Sprintf("%s returned 404", url), nil)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return result, services.Wrap(services.ErrTransient, "artwork", "download", fmt.Sprintf("%s returned %d", url, resp.StatusCode), nil)
	}

	err = fileutil.WriteAtomic(result.Path, 0o644, func(w io.Writer) error {
		_, err := io.Copy(w, resp.Body)
		return err
	})
	if err != nil {
		return result, services.Wrap(services.ErrTransient, "artwork", "save", result.Path, err)
	}
	result.Fetched = true
	logger.Info("artwork downloaded", logging.String("path", result.Path), logging.String("url", url))
	return result, nil
}
