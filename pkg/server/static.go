package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"
)

// StaticFileHandler serves files from an fs.FS with ETags, cache headers
// and MIME types. File contents are read once and cached.
type StaticFileHandler struct {
	fsys         fs.FS
	cacheControl string
	indexFile    string
	modTime      time.Time

	mu    sync.RWMutex
	cache map[string]*staticFile
}

type staticFile struct {
	name string
	data []byte
	etag string
}

// NewStaticFileHandler creates a static file handler rooted at fsys.
// Request paths are taken relative to the root, so mount it behind
// http.StripPrefix when it serves a sub path.
func NewStaticFileHandler(fsys fs.FS) *StaticFileHandler {
	return &StaticFileHandler{
		fsys:         fsys,
		cacheControl: "public, max-age=3600",
		indexFile:    "index.html",
		modTime:      time.Now(),
		cache:        make(map[string]*staticFile),
	}
}

// SetCacheControl sets the Cache-Control header value.
func (h *StaticFileHandler) SetCacheControl(value string) {
	h.cacheControl = value
}

// ServeHTTP implements http.Handler interface.
func (h *StaticFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = h.indexFile
	}

	f, err := h.load(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(f.name))
	if h.cacheControl != "" {
		w.Header().Set("Cache-Control", h.cacheControl)
	}
	w.Header().Set("ETag", f.etag)

	// ServeContent answers If-None-Match, If-Modified-Since and Range.
	http.ServeContent(w, r, f.name, h.modTime, bytes.NewReader(f.data))
}

func (h *StaticFileHandler) load(requested string) (*staticFile, error) {
	h.mu.RLock()
	f, ok := h.cache[requested]
	h.mu.RUnlock()
	if ok {
		return f, nil
	}

	name := requested
	if !fs.ValidPath(name) {
		return nil, fs.ErrNotExist
	}
	info, err := fs.Stat(h.fsys, name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		name = path.Join(name, h.indexFile)
	}
	data, err := fs.ReadFile(h.fsys, name)
	if err != nil {
		return nil, err
	}

	f = &staticFile{name: name, data: data, etag: fileHash(data)}
	h.mu.Lock()
	h.cache[requested] = f
	h.mu.Unlock()
	return f, nil
}

// fileHash computes the quoted ETag for data.
func fileHash(data []byte) string {
	hash := sha256.Sum256(data)
	return `"` + hex.EncodeToString(hash[:8]) + `"`
}

func contentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if t, ok := MimeTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// MimeTypes maps file extensions to MIME types.
var MimeTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json",
	".png":   "image/png",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff2": "font/woff2",
	".txt":   "text/plain; charset=utf-8",
	".md":    "text/markdown; charset=utf-8",
}
