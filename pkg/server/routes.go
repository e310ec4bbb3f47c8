package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/CAFxX/httpcompression"

	"webdesk/pkg/router"
	"webdesk/pkg/session"
	"webdesk/pkg/wm"
)

//go:embed web
var embedded embed.FS

// Assets returns the embedded desktop page.
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, "web")
	if err != nil {
		panic(err)
	}
	return sub
}

// HandlerConfig wires the HTTP routes.
type HandlerConfig struct {
	Hub *session.Hub
	// Static serves the page; nil uses the embedded assets.
	Static fs.FS
	// CacheControl overrides the asset Cache-Control header, e.g.
	// "no-cache" while serving a directory that is being edited.
	CacheControl string
	// Ready backs /ready; nil always reports ready.
	Ready          func() bool
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewHandler returns the router serving the desktop page, its assets, the
// session websocket and the operational endpoints.
func NewHandler(cfg HandlerConfig) (*router.Router, error) {
	if cfg.Static == nil {
		cfg.Static = Assets()
	}
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, fmt.Errorf("compression adapter: %w", err)
	}

	r := router.New()
	r.Use(
		router.RecoveryMiddleware(cfg.Logger),
		router.RequestIDMiddleware(),
		router.LoggingMiddleware(cfg.Logger),
		router.CORSMiddleware(cfg.AllowedOrigins...),
	)

	r.SetNotFoundHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	}))

	files := NewStaticFileHandler(cfg.Static)
	if cfg.CacheControl != "" {
		files.SetCacheControl(cfg.CacheControl)
	}
	// Only the page assets are compressed; /ws must reach the hub unwrapped.
	static := compress(files)
	r.GET("/", static)
	r.GET("/static/*", http.StripPrefix("/static", static))

	r.GET("/ws", cfg.Hub)
	r.GET("/api/windows", DecodeHandler())
	r.GET("/api/windows/:id", WindowHandler())
	r.POST("/api/encode", EncodeHandler())

	r.GET("/health", HealthHandler())
	r.GET("/ready", ReadyHandler(cfg.Ready))
	r.GET("/metrics", MetricsHandler(cfg.Hub))
	return r, nil
}

// DecodeHandler returns a handler that decodes the windows query
// parameter and answers the records as JSON.
func DecodeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		windows := wm.Decode(r.URL.Query().Get(wm.QueryParam))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(windows)
	})
}

// WindowHandler returns a handler answering the one record named by the
// :id route parameter, decoded from the windows query parameter.
func WindowHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, _ := router.ParamsFromContext(r.Context())
		id := params.Get("id")
		for _, win := range wm.Decode(r.URL.Query().Get(wm.QueryParam)) {
			if win.ID == id {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(win)
				return
			}
		}
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("window %q not found", id))
	})
}

// encodeResponse is the body answered by EncodeHandler.
type encodeResponse struct {
	Value string `json:"value"`
	Query string `json:"query"`
}

// EncodeHandler returns a handler that encodes a JSON list of records into
// the windows query value.
func EncodeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var windows []wm.Window
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&windows); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid json: "+err.Error())
			return
		}
		if err := wm.Normalize(windows); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		value := wm.Encode(windows)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(encodeResponse{
			Value: value,
			Query: url.Values{wm.QueryParam: {value}}.Encode(),
		})
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// MetricsHandler returns a handler exposing session counters in the
// Prometheus text format.
func MetricsHandler(hub *session.Hub) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)
		if hub == nil {
			w.Write([]byte("# No metrics configured\n"))
			return
		}
		st := hub.Stats()
		fmt.Fprintf(w, "# TYPE webdesk_sessions_active gauge\nwebdesk_sessions_active %d\n", st.Active)
		fmt.Fprintf(w, "# TYPE webdesk_sessions_accepted_total counter\nwebdesk_sessions_accepted_total %d\n", st.Accepted)
		fmt.Fprintf(w, "# TYPE webdesk_sessions_closed_total counter\nwebdesk_sessions_closed_total %d\n", st.Closed)
		fmt.Fprintf(w, "# TYPE webdesk_sessions_rejected_total counter\nwebdesk_sessions_rejected_total %d\n", st.Rejected)
	})
}
