package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// snapshot is one published feed with its validators.
type snapshot struct {
	data     []byte
	etag     string
	modified time.Time // truncated to seconds, the resolution of HTTP dates
}

func newSnapshot(data []byte, now time.Time) *snapshot {
	sum := sha256.Sum256(data)
	return &snapshot{
		data:     data,
		etag:     fmt.Sprintf(config.FormatETag, hex.EncodeToString(sum[:])),
		modified: now.UTC().Truncate(time.Second),
	}
}

// notModified evaluates the conditional headers of r. If-None-Match takes
// precedence over If-Modified-Since.
func (f *snapshot) notModified(r *http.Request) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == f.etag
	}
	since, err := http.ParseTime(r.Header.Get(config.HeaderIfModifiedSince))
	if err != nil {
		return false
	}
	return !f.modified.After(since)
}

// Update publishes data as the new feed. Readers see either the previous or
// the new snapshot, never a mix.
func (s *CalendarServer) Update(data []byte) {
	snap := newSnapshot(data, time.Now())
	s.feed.Store(snap)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, snap.etag,
	)
}

// handleFeed serves the latest snapshot with ETag and Last-Modified
// validators, or 503 until the first sync has published one.
func (s *CalendarServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	snap := s.feed.Load()
	if snap == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, config.MimeTextCalendar)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, snap.etag)
	h.Set(config.HeaderLastModified, snap.modified.Format(http.TimeFormat))

	if snap.notModified(r) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if r.Method == http.MethodHead {
		return
	}
	if _, err := bytes.NewReader(snap.data).WriteTo(w); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
