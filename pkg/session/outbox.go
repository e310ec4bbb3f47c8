package session

import "sync"

// outbox queues messages for the single writer goroutine. Pushing never
// blocks, so it is safe from manager callbacks and timer goroutines.
type outbox struct {
	mu     sync.Mutex
	queue  []ServerMessage
	notify chan struct{}
}

func newOutbox() *outbox {
	return &outbox{notify: make(chan struct{}, 1)}
}

// push appends msg. A state message replaces a state message still
// waiting at the tail, since only the latest snapshot matters.
func (o *outbox) push(msg ServerMessage) {
	o.mu.Lock()
	if n := len(o.queue); msg.Type == TypeState && n > 0 && o.queue[n-1].Type == TypeState {
		o.queue[n-1] = msg
	} else {
		o.queue = append(o.queue, msg)
	}
	o.mu.Unlock()

	select {
	case o.notify <- struct{}{}:
	default:
	}
}

// drain returns and clears the queued messages.
func (o *outbox) drain() []ServerMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.queue
	o.queue = nil
	return out
}
