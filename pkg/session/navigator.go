package session

import (
	"net/url"
	"strings"
	"sync"
)

// pageNavigator mirrors the page's query string. Replace records the new
// query and tells the page to install it without a reload.
type pageNavigator struct {
	mu    sync.Mutex
	query url.Values
	out   *outbox
}

func newPageNavigator(out *outbox) *pageNavigator {
	return &pageNavigator{query: url.Values{}, out: out}
}

func (n *pageNavigator) Query() url.Values {
	n.mu.Lock()
	defer n.mu.Unlock()
	return cloneValues(n.query)
}

func (n *pageNavigator) Replace(q url.Values) {
	n.mu.Lock()
	n.query = cloneValues(q)
	encoded := q.Encode()
	n.mu.Unlock()

	n.out.push(ServerMessage{Type: TypeReplaceQuery, Query: encoded})
}

// reported stores the query string the page reported after a load or a
// back/forward navigation. The page already shows it, so nothing is sent.
func (n *pageNavigator) reported(raw string) url.Values {
	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		q = url.Values{}
	}
	n.mu.Lock()
	n.query = q
	n.mu.Unlock()
	return cloneValues(q)
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
