package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-datepicker/internal/config"
	"github.com/tartampluch/go-datepicker/internal/export"
)

// Encoder renders a selection snapshot as iCalendar data.
type Encoder interface {
	Encode(s export.Snapshot) ([]byte, error)
}

// selectionDoc is the JSON view of the selection.
type selectionDoc struct {
	Ranged bool     `json:"ranged"`
	Dates  []string `json:"dates"`
}

// feedItem holds both renderings of one selection and its cache metadata.
type feedItem struct {
	ics          []byte
	json         []byte
	etag         string
	lastModified string // RFC1123, as required by HTTP headers
}

// SelectionServer publishes the picker's current selection on localhost,
// as an iCalendar feed and as JSON.
type SelectionServer struct {
	// feed is swapped atomically: the picker publishes from the UI goroutine
	// while HTTP handlers read concurrently.
	feed    atomic.Pointer[feedItem]
	encoder Encoder
	Port    string
}

// NewSelectionServer creates a server rendering feeds with enc.
func NewSelectionServer(port string, enc Encoder) *SelectionServer {
	return &SelectionServer{
		Port:    port,
		encoder: enc,
	}
}

// Handler returns the HTTP routes of the server.
func (s *SelectionServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleCalendar)
	mux.HandleFunc(config.RouteICS, s.handleCalendar)
	mux.HandleFunc(config.RouteJSON, s.handleJSON)
	return mux
}

// Start serves until ctx is cancelled.
func (s *SelectionServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish renders snap and replaces the served feed.
func (s *SelectionServer) Publish(snap export.Snapshot) error {
	ics, err := s.encoder.Encode(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportFailed, err)
	}

	doc := selectionDoc{Ranged: snap.Ranged, Dates: make([]string, len(snap.Dates))}
	for i, d := range snap.Dates {
		doc.Dates[i] = d.Format(config.DateFormatDisplay)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrExportFailed, err)
	}

	// The JSON document identifies the selection; the ICS also carries
	// DTSTAMP, which changes on every encode.
	hash := sha256.Sum256(js)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	if cur := s.feed.Load(); cur != nil && cur.etag == etag {
		return nil
	}

	s.feed.Store(&feedItem{
		ics:          ics,
		json:         js,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyCount, len(snap.Dates),
		config.LogKeySizeBytes, len(ics),
		config.LogKeyETag, etag,
	)
	return nil
}

func (s *SelectionServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteRoot && r.URL.Path != config.RouteICS {
		http.NotFound(w, r)
		return
	}
	s.serve(w, r, config.MimeTextCalendar, func(item *feedItem) []byte { return item.ics })
}

func (s *SelectionServer) handleJSON(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, config.MimeJSON, func(item *feedItem) []byte { return item.json })
}

// serve writes one rendering of the current feed with HTTP caching support.
func (s *SelectionServer) serve(w http.ResponseWriter, r *http.Request, mime string, body func(*feedItem) []byte) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.feed.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, mime)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(body(item))); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
