package natalie

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brogergvhs/nataliefeed/internal/news"
)

const (
	DefaultURL        = "https://natalie.mu/comic/tag/564"
	DefaultLinkPrefix = "https://natalie.mu/comic/news/"
)

type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type Progress interface {
	SetTotal(total int)
	Increment()
	MarkDone()
}

type Options struct {
	// PageURL resolves protocol-relative and relative thumbnail URLs.
	PageURL    string
	LinkPrefix string

	FutureTolerance time.Duration
	Now             func() time.Time

	Log      Logger
	Progress Progress
}

type Scraper struct {
	client *http.Client
	opts   Options
}

func NewScraper(c *http.Client, opts Options) *Scraper {
	if opts.PageURL == "" {
		opts.PageURL = DefaultURL
	}
	if opts.LinkPrefix == "" {
		opts.LinkPrefix = DefaultLinkPrefix
	}
	if opts.FutureTolerance == 0 {
		opts.FutureTolerance = news.DefaultFutureTolerance
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = nopLogger{}
	}

	return &Scraper{client: c, opts: opts}
}

// StatusError is returned by Fetch for any non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.Status)
}

// Fetch performs a single GET and returns the body. There is no retry.
func (s *Scraper) Fetch(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}

	// *url.Error already names the method and URL.
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.opts.Log.Debugf("Warning: failed to close response body for %s: %v\n", target, cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: target, Status: resp.StatusCode}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body from %s: %w", target, err)
	}

	s.opts.Log.Debugf("Fetched %d bytes from %s\n", len(b), target)

	return string(b), nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
