// scraper/csv_downloader.go
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultUserAgent = "phonemodels-sync/1.0"

// ErrUnexpectedStatus is returned when the CSV source answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Fetcher downloads a CSV resource with a single GET request. It never retries.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewFetcher creates a Fetcher whose client gives up after timeout.
// A zero timeout means the request is only bounded by its context.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: defaultUserAgent,
	}
}

// Fetch returns the raw response body of url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	log.Debugf("Scraper: fetching CSV from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GET request for %s: %w", url, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to download %s: %w: %d", url, ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	log.Debugf("Scraper: fetched %d bytes from %s", len(body), url)
	return body, nil
}
