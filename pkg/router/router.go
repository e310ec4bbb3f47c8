package router

import (
	"net/http"
	"regexp"
	"strings"
	"sync"
)

// Route represents an HTTP route with its handler and metadata.
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
	Params  []string
	Regex   *regexp.Regexp
}

// Router is a custom HTTP router that supports pattern matching
// with parameters and middleware.
type Router struct {
	mu         sync.RWMutex
	routes     map[string][]Route
	middleware []Middleware
	notFound   http.Handler
	notAllowed http.Handler
}

// New creates a new Router instance.
func New() *Router {
	return &Router{
		routes:   make(map[string][]Route),
		notFound: http.NotFoundHandler(),
		notAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}),
	}
}

// GET is a shortcut for adding a route with GET method. GET routes also
// answer HEAD requests.
func (r *Router) GET(pattern string, handler http.Handler) {
	r.AddRoute(http.MethodGet, pattern, handler)
}

// POST is a shortcut for adding a route with POST method.
func (r *Router) POST(pattern string, handler http.Handler) {
	r.AddRoute(http.MethodPost, pattern, handler)
}

// AddRoute adds a new route with the specified method and pattern.
func (r *Router) AddRoute(method, pattern string, handler http.Handler) {
	params, re := compilePattern(pattern)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[method] = append(r.routes[method], Route{
		Method:  method,
		Pattern: pattern,
		Handler: handler,
		Params:  params,
		Regex:   re,
	})
}

var paramSegment = regexp.MustCompile(`^:([A-Za-z_][A-Za-z0-9_]*)$`)

// compilePattern converts a route pattern to a regex and extracts parameter
// names. A trailing /* captures the rest of the path as "wildcard".
func compilePattern(pattern string) ([]string, *regexp.Regexp) {
	var params []string
	wildcard := strings.HasSuffix(pattern, "/*")
	if wildcard {
		pattern = strings.TrimSuffix(pattern, "/*")
	}

	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if m := paramSegment.FindStringSubmatch(part); m != nil {
			params = append(params, m[1])
			parts[i] = "(?P<" + m[1] + ">[^/]+)"
			continue
		}
		parts[i] = regexp.QuoteMeta(part)
	}

	expr := "^" + strings.Join(parts, "/")
	if wildcard {
		params = append(params, "wildcard")
		expr += "(?P<wildcard>/.*)?"
	}
	return params, regexp.MustCompile(expr + "$")
}

// ServeHTTP implements http.Handler interface.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	middleware := r.middleware
	handler, params, status := r.lookup(req.Method, req.URL.Path)
	r.mu.RUnlock()

	switch status {
	case http.StatusNotFound:
		handler = r.notFound
	case http.StatusMethodNotAllowed:
		handler = r.notAllowed
	default:
		req = req.WithContext(WithParams(req.Context(), params))
	}

	Chain(middleware...)(handler).ServeHTTP(w, req)
}

// lookup finds the handler for method and path. When the path matches
// only under another method the status is 405.
func (r *Router) lookup(method, path string) (http.Handler, Params, int) {
	candidates := r.routes[method]
	if method == http.MethodHead {
		candidates = append(candidates[:len(candidates):len(candidates)], r.routes[http.MethodGet]...)
	}
	for _, route := range candidates {
		if params := matchRoute(path, route); params != nil {
			return route.Handler, params, http.StatusOK
		}
	}

	for m, routes := range r.routes {
		if m == method {
			continue
		}
		for _, route := range routes {
			if matchRoute(path, route) != nil {
				return nil, nil, http.StatusMethodNotAllowed
			}
		}
	}
	return nil, nil, http.StatusNotFound
}

// matchRoute checks if the URL path matches the route pattern.
func matchRoute(path string, route Route) Params {
	matches := route.Regex.FindStringSubmatch(path)
	if matches == nil {
		return nil
	}

	params := make(Params)
	for i, name := range route.Regex.SubexpNames() {
		if name != "" {
			params[name] = matches[i]
		}
	}
	return params
}

// Use adds a middleware to the router's global middleware chain. Global
// middleware also wraps the not found and method not allowed handlers.
func (r *Router) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, middlewares...)
}

// SetNotFoundHandler sets the handler for routes that don't match.
func (r *Router) SetNotFoundHandler(handler http.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = handler
}

// Routes returns a copy of all registered routes.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var routes []Route
	for _, methodRoutes := range r.routes {
		routes = append(routes, methodRoutes...)
	}
	return routes
}
