package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// CalendarServer publishes the observance feed at "/" and evaluates
// expressions at "/eval". The feed is replaced with Update, typically by
// engine.Generator.Watch.
type CalendarServer struct {
	Port string

	// Now supplies the anchor of /eval requests that do not name one.
	Now func() time.Time

	// feed is read on every request and swapped after each sync.
	feed atomic.Pointer[snapshot]
}

// NewCalendarServer returns a server for port with no feed published yet.
func NewCalendarServer(port string) *CalendarServer {
	return &CalendarServer{Port: port, Now: time.Now}
}

// ValidatePort checks that port is a decimal number in the TCP port range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(config.ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %q", config.ErrPortNumber, port)
	}
	if n < config.MinPort || n > config.MaxPort {
		return fmt.Errorf("%s: %d", config.ErrPortRange, n)
	}
	return nil
}

// Handler routes the feed and the evaluation endpoint.
func (s *CalendarServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleFeed)
	mux.HandleFunc(config.RouteEval, s.handleEval)
	return mux
}

// Start listens on the loopback interface and serves until ctx is
// cancelled, then shuts down within config.ShutdownTimeout. A clean
// shutdown returns nil.
func (s *CalendarServer) Start(ctx context.Context) error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(config.LocalhostBindAddr, s.Port),
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}
	log := slog.With(config.LogKeyComponent, config.CompServer)

	failed := make(chan error, config.ChannelBufferSize)
	go func() {
		log.Info(config.MsgServerListen, config.LogKeyPort, s.Port)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)

	case <-ctx.Done():
	}

	log.Info(config.MsgServerStop)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
	}
	return nil
}

// allowRead answers 405 to anything but GET and HEAD.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}
