package wm

import (
	"net/url"
	"sync"
)

// Navigator reads and replaces the page's query string without a reload.
// Implementations must not call back into the Manager.
type Navigator interface {
	Query() url.Values
	Replace(q url.Values)
}

// MemoryNavigator is a Navigator that keeps the query string in memory.
// It backs the CLI and tests, and records how many writes it received.
type MemoryNavigator struct {
	mu     sync.Mutex
	query  url.Values
	writes int
}

// NewMemoryNavigator creates a navigator holding the given raw query string.
// An unparsable query starts empty.
func NewMemoryNavigator(rawQuery string) *MemoryNavigator {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		q = url.Values{}
	}
	return &MemoryNavigator{query: q}
}

// Query returns a copy of the current query values.
func (n *MemoryNavigator) Query() url.Values {
	n.mu.Lock()
	defer n.mu.Unlock()
	return cloneValues(n.query)
}

// Replace stores q as the current query.
func (n *MemoryNavigator) Replace(q url.Values) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.query = cloneValues(q)
	n.writes++
}

// Writes returns the number of Replace calls so far.
func (n *MemoryNavigator) Writes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.writes
}

// Encoded returns the current value of the windows parameter.
func (n *MemoryNavigator) Encoded() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.query.Get(QueryParam)
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
