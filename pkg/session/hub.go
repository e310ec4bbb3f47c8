package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// ErrSessionLimit is returned when the hub is full.
var ErrSessionLimit = errors.New("session limit reached")

// HubConfig holds hub configuration.
type HubConfig struct {
	// Session configures every new session.
	Session Options
	// MaxSessions bounds concurrent sessions; zero means 1000.
	MaxSessions int
	// AllowedOrigins lists origins allowed to connect besides the page's
	// own host. "*" allows any.
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Hub accepts websocket connections and runs one session per connection.
type Hub struct {
	cfg      HubConfig
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu       sync.Mutex
	sessions map[string]context.CancelFunc
	closed   bool
	wg       sync.WaitGroup

	acceptedCount int64
	closedCount   int64
	rejectedCount int64
}

// NewHub creates a hub.
func NewHub(cfg HubConfig) *Hub {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Session.Logger == nil {
		cfg.Session.Logger = cfg.Logger
	}

	h := &Hub{
		cfg:      cfg,
		log:      cfg.Logger,
		sessions: make(map[string]context.CancelFunc),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 16 * 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	if slices.Contains(h.cfg.AllowedOrigins, "*") || slices.Contains(h.cfg.AllowedOrigins, origin) {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && strings.EqualFold(u.Host, r.Host)
}

// ServeHTTP upgrades the request and serves a session until it ends.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(h.cfg.Session)
	if err := h.add(s.ID, cancel); err != nil {
		cancel()
		s.Close()
		atomic.AddInt64(&h.rejectedCount, 1)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer h.remove(s.ID)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.Close()
		atomic.AddInt64(&h.rejectedCount, 1)
		h.log.Debug("websocket upgrade failed", "error", err)
		return
	}

	atomic.AddInt64(&h.acceptedCount, 1)
	h.log.Info("session started", "session", s.ID, "remote", r.RemoteAddr)
	if err := s.Serve(ctx, conn); err != nil {
		h.log.Warn("session ended with error", "session", s.ID, "error", err)
	}
	atomic.AddInt64(&h.closedCount, 1)
	h.log.Info("session ended", "session", s.ID)
}

func (h *Hub) add(id string, cancel context.CancelFunc) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errors.New("hub closed")
	}
	if len(h.sessions) >= h.cfg.MaxSessions {
		return ErrSessionLimit
	}
	h.sessions[id] = cancel
	h.wg.Add(1)
	return nil
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	cancel, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if ok {
		cancel()
		h.wg.Done()
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close ends every session and waits for them to finish or ctx to expire.
// New connections are refused afterwards.
func (h *Hub) Close(ctx context.Context) error {
	h.mu.Lock()
	h.closed = true
	for _, cancel := range h.sessions {
		cancel()
	}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats holds hub counters.
type Stats struct {
	Active   int   `json:"active"`
	Accepted int64 `json:"accepted"`
	Closed   int64 `json:"closed"`
	Rejected int64 `json:"rejected"`
}

// Stats returns current hub statistics.
func (h *Hub) Stats() Stats {
	return Stats{
		Active:   h.Count(),
		Accepted: atomic.LoadInt64(&h.acceptedCount),
		Closed:   atomic.LoadInt64(&h.closedCount),
		Rejected: atomic.LoadInt64(&h.rejectedCount),
	}
}
