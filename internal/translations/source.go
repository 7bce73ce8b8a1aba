package translations

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds the translation fetch.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is sent with HTTP fetches.
const DefaultUserAgent = "Mozilla/5.0 (compatible; PortfolioSite/1.0)"

// maxResourceSize caps the translation resource read from any source.
const maxResourceSize = 4 << 20

// Source yields the raw translation resource.
type Source interface {
	// Name identifies the source in logs; its extension selects the format.
	Name() string
	// Fetch returns the raw resource bytes.
	Fetch(ctx context.Context) ([]byte, error)
}

// FSSource reads the resource from a file system, typically the embedded web assets.
type FSSource struct {
	FS   fs.FS
	Path string
}

// Name implements Source.
func (s FSSource) Name() string {
	return s.Path
}

// Fetch implements Source.
func (s FSSource) Fetch(_ context.Context) ([]byte, error) {
	if s.FS == nil {
		return nil, fmt.Errorf("no file system configured for %s", s.Path)
	}
	data, err := fs.ReadFile(s.FS, s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, nil
}

// FileSource reads the resource from disk.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s FileSource) Name() string {
	return s.Path
}

// Fetch implements Source.
func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file %s: %w", s.Path, err)
	}
	return data, nil
}

// HTTPOptions configures HTTPSource.
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client
}

// DefaultHTTPOptions returns sensible defaults for fetching.
func DefaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// HTTPSource fetches the resource over HTTP. Any non-2xx status is an error.
type HTTPSource struct {
	URL  string
	opts *HTTPOptions
}

// NewHTTPSource creates an HTTPSource. nil opts uses DefaultHTTPOptions.
func NewHTTPSource(rawURL string, opts *HTTPOptions) *HTTPSource {
	if opts == nil {
		opts = DefaultHTTPOptions()
	}
	return &HTTPSource{URL: rawURL, opts: opts}
}

// Name implements Source.
func (s *HTTPSource) Name() string {
	return s.URL
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	parsed, err := url.Parse(s.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &FetchError{URL: s.URL, Message: "invalid URL", Cause: err}
	}

	timeout := s.opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Message: "failed to create request", Cause: err}
	}
	userAgent := s.opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/toml;q=0.9, */*;q=0.1")

	client := s.opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			URL:        s.URL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize))
	if err != nil {
		return nil, &FetchError{URL: s.URL, StatusCode: resp.StatusCode, Message: "failed to read body", Cause: err}
	}
	return body, nil
}

// ResolveSource maps a configured location to a Source: http(s) URLs are
// fetched, other non-empty values are read from disk, and an empty location
// falls back to the embedded file.
func ResolveSource(location string, embedded fs.FS, embeddedPath string) Source {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return FSSource{FS: embedded, Path: embeddedPath}
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, nil)
	default:
		return FileSource{Path: location}
	}
}
