package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/SscSPs/rate_tracker/internal/apperrors"
)

// DefaultMaxRedirects bounds the redirect chain followed by a Downloader.
const DefaultMaxRedirects = 5

// Downloader fetches the rate document over HTTP, following redirects itself
// so every hop is logged and bounded.
type Downloader struct {
	client       *http.Client
	url          string
	maxRedirects int
	logger       *slog.Logger
}

// NewDownloader creates a Downloader. A nil client uses http.DefaultClient's transport.
func NewDownloader(client *http.Client, sourceURL string, maxRedirects int, logger *slog.Logger) *Downloader {
	if client == nil {
		client = &http.Client{}
	}
	// Redirects are handled in Download.
	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	if maxRedirects < 0 {
		maxRedirects = DefaultMaxRedirects
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{client: &c, url: sourceURL, maxRedirects: maxRedirects, logger: logger}
}

// Download returns the document body. The caller must close it.
// Every failure wraps apperrors.ErrSourceUnavailable.
func (d *Downloader) Download(ctx context.Context) (io.ReadCloser, error) {
	current := d.url
	for hop := 0; hop <= d.maxRedirects; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid source URL %q: %w", apperrors.ErrSourceUnavailable, current, err)
		}
		req.Header.Set("Accept", "application/xml")

		resp, err := d.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: request to %s failed: %w", apperrors.ErrSourceUnavailable, current, err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			d.logger.Info("Downloaded rate document", slog.String("url", current))
			return resp.Body, nil
		case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
			http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
			location := resp.Header.Get("Location")
			resp.Body.Close()
			next, err := resolve(current, location)
			if err != nil {
				return nil, fmt.Errorf("%w: bad redirect from %s: %w", apperrors.ErrSourceUnavailable, current, err)
			}
			d.logger.Info("Following redirect", slog.String("from", current), slog.String("to", next))
			current = next
		default:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s responded with HTTP %d", apperrors.ErrSourceUnavailable, current, resp.StatusCode)
		}
	}
	return nil, fmt.Errorf("%w: too many redirects (more than %d)", apperrors.ErrSourceUnavailable, d.maxRedirects)
}

func resolve(base, location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("missing Location header")
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	l, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(l).String(), nil
}

// OpenFile opens a local rate document.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSourceUnavailable, err)
	}
	return f, nil
}
