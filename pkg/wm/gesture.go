package wm

import "sync"

// GestureKind distinguishes the two pointer gestures a window accepts.
type GestureKind int

const (
	// GestureDrag moves a window by its title bar.
	GestureDrag GestureKind = iota
	// GestureResize moves one of the resize handles.
	GestureResize
)

// String returns a string representation of the gesture kind.
func (k GestureKind) String() string {
	switch k {
	case GestureDrag:
		return "drag"
	case GestureResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Gesture is the snapshot taken when a gesture starts. Every pointer
// update is computed against it, never against intermediate results.
type Gesture struct {
	Kind      GestureKind
	WindowID  string
	Edge      Edge
	Origin    Point
	StartPos  Point
	StartSize Size
}

// Controller is the gesture state machine: Idle, then Active with a start
// snapshot, then Idle again. At most one gesture is active at a time and
// End always returns to Idle with the last computed geometry; there is no
// abort.
type Controller struct {
	m *Manager

	mu     sync.Mutex
	active *Gesture
}

// NewController creates a gesture controller for m.
func NewController(m *Manager) *Controller {
	return &Controller{m: m}
}

// Active returns the current gesture, if any.
func (c *Controller) Active() (Gesture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Gesture{}, false
	}
	return *c.active, true
}

// StartDrag begins moving window id from the given pointer position.
func (c *Controller) StartDrag(id string, pointer Point) error {
	return c.start(GestureDrag, id, EdgeNone, pointer)
}

// StartResize begins resizing window id by edge from the given pointer position.
func (c *Controller) StartResize(id string, edge Edge, pointer Point) error {
	return c.start(GestureResize, id, edge, pointer)
}

func (c *Controller) start(kind GestureKind, id string, edge Edge, pointer Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return ErrGestureActive
	}
	w := c.m.Get(id)
	if !w.Open {
		return ErrWindowNotOpen
	}
	if c.m.IsFullscreen(id) {
		return ErrGestureLocked
	}

	c.m.Focus(id)
	c.active = &Gesture{
		Kind:      kind,
		WindowID:  id,
		Edge:      edge,
		Origin:    pointer,
		StartPos:  w.Pos,
		StartSize: w.Size,
	}
	return nil
}

// Move applies the pointer position to the active gesture.
func (c *Controller) Move(pointer Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return ErrNoGesture
	}
	if !c.apply(*c.active, pointer) {
		c.active = nil
	}
	return nil
}

// End applies the final pointer position and returns to Idle.
func (c *Controller) End(pointer Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return ErrNoGesture
	}
	g := *c.active
	c.active = nil
	c.apply(g, pointer)
	return nil
}

// apply moves or resizes the gesture's window. It reports false, leaving
// the window untouched, once the window has been closed underneath the
// gesture.
func (c *Controller) apply(g Gesture, pointer Point) bool {
	w := c.m.Get(g.WindowID)
	if !w.Open {
		return false
	}
	switch g.Kind {
	case GestureDrag:
		// Clamp against the current size; the window may have been resized
		// from the menu since the gesture started.
		c.m.Move(g.WindowID, DragWindow(g.StartPos, pointer.Sub(g.Origin), w.Size, c.m.Viewport()))
	case GestureResize:
		size, pos := Resize(g.Origin, pointer, g.Edge, g.StartSize, g.StartPos, c.m.Bounds())
		c.m.MoveAndResize(g.WindowID, size, pos)
	}
	return true
}
