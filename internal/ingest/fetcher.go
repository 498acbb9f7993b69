package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultDatasetURL points at the Amsterdam open data container endpoint.
const DefaultDatasetURL = "https://api.data.amsterdam.nl/v1/huishoudelijkafval/container/"

// Fetcher retrieves the raw dataset document from its source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPFetcher pulls the dataset over HTTP.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// HTTPFetcherOption configures the fetcher at construction time.
type HTTPFetcherOption func(*HTTPFetcher)

// WithHTTPClient swaps the underlying client, mostly for tests.
func WithHTTPClient(client *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// NewHTTPFetcher builds a fetcher for the given dataset URL. An empty URL
// falls back to the Amsterdam endpoint.
func NewHTTPFetcher(url string, opts ...HTTPFetcherOption) *HTTPFetcher {
	if url == "" {
		url = DefaultDatasetURL
	}
	f := &HTTPFetcher{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return body, nil
}
