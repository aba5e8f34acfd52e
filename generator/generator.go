package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tailscale/hujson"

	"github.com/Gbsyi/swagger-codegen-bin/apperr"
	"github.com/Gbsyi/swagger-codegen-bin/logger"
)

const (
	// DefaultEndpoint is the Swagger Generator 3 generate endpoint
	DefaultEndpoint = "https://generator3.swagger.io/api/generate"

	DefaultTimeout   = 120 * time.Second
	defaultUserAgent = "swagger-codegen-bin/dev"

	// errorBodyLimit bounds how much of a failed response is quoted back
	errorBodyLimit = 512
)

// utf8BOM is dropped from the start of the spec; servers on Windows often send it
var utf8BOM = []byte("\xef\xbb\xbf")

// Request is the body posted to the generation service
type Request struct {
	Lang string          `json:"lang"`
	Type string          `json:"type"`
	Spec json.RawMessage `json:"spec"`
}

// Client posts specifications to a code-generation service
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client
type Option func(c *Client)

// NewClient returns a client for DefaultEndpoint unless overridden
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithEndpoint sets the generate endpoint URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the underlying HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Endpoint returns the configured generate URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// NewRequest builds a request embedding spec as a raw JSON value.
// Strict JSON is used byte for byte; JSONC-style input (comments,
// trailing commas) is standardized first.
func NewRequest(lang, genType string, spec []byte) (Request, error) {
	raw, err := rawSpec(spec)
	if err != nil {
		return Request{}, apperr.New(apperr.SpecInvalid, err)
	}
	return Request{Lang: lang, Type: genType, Spec: raw}, nil
}

func rawSpec(spec []byte) (json.RawMessage, error) {
	spec = bytes.TrimPrefix(spec, utf8BOM)
	if json.Valid(spec) {
		return json.RawMessage(spec), nil
	}

	logger.Debug("api info is not strict JSON, standardizing")
	std, err := hujson.Standardize(bytes.Clone(spec))
	if err != nil {
		return nil, err
	}
	if !json.Valid(std) {
		return nil, fmt.Errorf("standardized document is still not JSON")
	}
	return json.RawMessage(std), nil
}

// Body encodes the request with Spec spliced in verbatim. json.Marshal would
// compact and HTML-escape the raw value.
func (r Request) Body() ([]byte, error) {
	lang, err := json.Marshal(r.Lang)
	if err != nil {
		return nil, err
	}
	genType, err := json.Marshal(r.Type)
	if err != nil {
		return nil, err
	}
	spec := r.Spec
	if len(spec) == 0 {
		spec = json.RawMessage("null")
	}

	var buf bytes.Buffer
	buf.Grow(len(lang) + len(genType) + len(spec) + 32)
	buf.WriteString(`{"lang":`)
	buf.Write(lang)
	buf.WriteString(`,"type":`)
	buf.Write(genType)
	buf.WriteString(`,"spec":`)
	buf.Write(spec)
	buf.WriteString(`}`)
	return buf.Bytes(), nil
}

// Generate posts req and returns the archive bytes from the response body
func (c *Client) Generate(ctx context.Context, req Request) ([]byte, error) {
	body, err := req.Body()
	if err != nil {
		return nil, apperr.New(apperr.ArchiveRequestFailed, fmt.Errorf("failed to marshal request: %w", err))
	}

	logger.Debug("requesting archive", "endpoint", c.endpoint, "lang", req.Lang, "type", req.Type, "bytes", len(body))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.New(apperr.ArchiveRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/octet-stream")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Debug("generate request failed", "endpoint", c.endpoint, "error", err)
		return nil, apperr.New(apperr.ArchiveRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		logger.Debug("generate request rejected", "status", resp.StatusCode, "body", string(snippet))
		return nil, apperr.New(apperr.ArchiveRequestFailed, statusError(resp.StatusCode, snippet))
	}

	archive, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Debug("failed to read archive", "error", err)
		return nil, apperr.New(apperr.ArchiveReceiveFailed, err)
	}

	logger.Debug("received archive", "bytes", len(archive), "content_type", resp.Header.Get("Content-Type"))
	return archive, nil
}

func statusError(status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("status %d", status)
	}
	return fmt.Errorf("status %d: %s", status, msg)
}
