package retriever

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Gbsyi/swagger-codegen-bin/apperr"
	"github.com/Gbsyi/swagger-codegen-bin/logger"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "swagger-codegen-bin/dev"
)

// Options configures retrieval behavior
type Options struct {
	HTTPTimeout time.Duration
	UserAgent   string
	// Client overrides the HTTP client; HTTPTimeout is ignored when set
	Client *http.Client
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		HTTPTimeout: defaultHTTPTimeout,
		UserAgent:   defaultUserAgent,
	}
}

// Document is the raw API specification exactly as served
type Document struct {
	URL         string
	ContentType string
	Body        json.RawMessage
}

// Size returns the body length in bytes
func (d Document) Size() int {
	return len(d.Body)
}

func (o Options) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return &http.Client{Timeout: o.HTTPTimeout}
}

// Fetch downloads the specification document from url in a single attempt.
// Every failure is reported as apperr.SpecFetchFailed.
func Fetch(ctx context.Context, url string, opts Options) (Document, error) {
	logger.Debug("fetching api info", "url", url, "timeout", opts.HTTPTimeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, apperr.New(apperr.SpecFetchFailed, fmt.Errorf("failed to create request for %s: %w", url, err))
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	resp, err := opts.client().Do(req)
	if err != nil {
		logger.Debug("HTTP request failed", "url", url, "error", err)
		return Document{}, apperr.New(apperr.SpecFetchFailed, fmt.Errorf("failed to fetch %s: %w", url, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Debug("failed to read response", "url", url, "error", err)
		return Document{}, apperr.New(apperr.SpecFetchFailed, fmt.Errorf("failed to read response from %s: %w", url, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug("unexpected status", "url", url, "status", resp.StatusCode)
		return Document{}, apperr.New(apperr.SpecFetchFailed, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode))
	}

	logger.Debug("successfully fetched api info", "url", url, "status", resp.StatusCode, "bytes", len(data))
	return Document{
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        json.RawMessage(data),
	}, nil
}
