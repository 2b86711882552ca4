package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-reldate/internal/config"
)

// HolidayFetcher defines the contract for retrieving a remote holiday
// calendar (an iCalendar stream).
type HolidayFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads holiday calendars over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher bounded by config.HTTPTimeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch opens the iCalendar document at targetURL, sending Basic Auth when
// a user or password is given. Only http and https are accepted. The body
// is cut at config.MaxHTTPResponseSize and must be closed by the caller.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	// Logged without query or credentials.
	log := slog.With(
		config.LogKeyComponent, config.CompFetcher,
		config.LogKeyURL, (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String(),
	)
	log.Debug(config.MsgDownloadStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeCalendar)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgBadStatus, config.LogKeyStatus, resp.StatusCode)
		return nil, fmt.Errorf("%s: %d %s", config.ErrHTTPStatus, resp.StatusCode, resp.Status)
	}

	log.Info(config.MsgDownloading, config.LogKeyContentLen, resp.ContentLength)

	return limitedBody{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedBody reads through a size limit and closes the underlying body.
type limitedBody struct {
	io.Reader
	io.Closer
}
