package wm

import (
	"log/slog"
	"net/url"
	"slices"
	"sync"
	"time"
)

const (
	keyPosition = "persist:position"
	keySize     = "persist:size"
)

func settleKey(id string) string { return "settle:" + id }

// Config holds configuration for the window manager.
type Config struct {
	Viewport    Viewport
	Bounds      SizeBounds
	DefaultSize Size
	Timings     Timings

	// Clock drives debounce and settle timers; nil means wall time.
	Clock Clock
	// Navigator receives persisted state; nil keeps it in memory.
	Navigator Navigator
	Logger    *slog.Logger
	// OnChange is called after any change to the window list, focus or
	// sidebar flag, including changes made by timers. It runs without the
	// manager lock held.
	OnChange func()
}

// Manager owns the window records, the focused id and the sidebar flag.
// All mutations go through its methods.
type Manager struct {
	mu          sync.Mutex
	windows     []Window
	focused     string
	sidebarOpen bool
	// saved holds the pre-fullscreen frame; a window is fullscreen while it has an entry.
	saved map[string]Frame
	// gestureWrite suppresses ApplyQuery while a debounced write is pending.
	gestureWrite bool

	viewport    Viewport
	bounds      SizeBounds
	defaultSize Size
	timings     Timings

	nav      Navigator
	sched    *Scheduler
	log      *slog.Logger
	onChange func()
}

// NewManager creates a new window manager with the given configuration.
func NewManager(cfg Config) *Manager {
	if cfg.Bounds == (SizeBounds{}) {
		cfg.Bounds = SizeBounds{Min: MinSize, Max: MaxSize}
	}
	if cfg.DefaultSize == (Size{}) {
		cfg.DefaultSize = DefaultSize
	}
	if cfg.Navigator == nil {
		cfg.Navigator = NewMemoryNavigator("")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Manager{
		windows:     make([]Window, 0),
		saved:       make(map[string]Frame),
		viewport:    cfg.Viewport,
		bounds:      cfg.Bounds,
		defaultSize: cfg.Bounds.Clamp(cfg.DefaultSize),
		timings:     cfg.Timings.withDefaults(),
		nav:         cfg.Navigator,
		sched:       NewScheduler(cfg.Clock),
		log:         cfg.Logger,
		onChange:    cfg.OnChange,
	}
}

// Shutdown stops pending timers. A pending debounced write is flushed first.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	flush := m.gestureWrite
	m.gestureWrite = false
	if flush {
		m.persistLocked()
	}
	m.mu.Unlock()
	m.sched.Stop()
}

// update runs fn under the lock and notifies listeners when it reports a change.
func (m *Manager) update(fn func() bool) {
	m.mu.Lock()
	changed := fn()
	m.mu.Unlock()
	if changed && m.onChange != nil {
		m.onChange()
	}
}

func (m *Manager) index(id string) int {
	return slices.IndexFunc(m.windows, func(w Window) bool { return w.ID == id })
}

func (m *Manager) defaultWindow(id string) Window {
	return Window{
		ID:   id,
		Pos:  m.viewport.Center(m.defaultSize),
		Size: m.defaultSize,
	}
}

// Open opens the window id. An already open window is focused and
// unminimized without any geometry change; otherwise the window gets the
// default size at a collision-avoided position.
func (m *Manager) Open(id string) {
	m.update(func() bool {
		i := m.index(id)
		if i >= 0 && m.windows[i].Open {
			m.focused = id
			m.windows[i].Minimized = false
			m.persistLocked()
			return true
		}

		w := Window{
			ID:   id,
			Pos:  Place(m.viewport, m.defaultSize, id, m.windows),
			Size: m.defaultSize,
			Open: true,
		}
		if i >= 0 {
			m.windows[i] = w
		} else {
			m.windows = append(m.windows, w)
		}
		m.sched.Cancel(settleKey(id))
		delete(m.saved, id)
		m.focused = id
		m.persistLocked()
		m.log.Debug("window opened", "id", id, "x", w.Pos.X, "y", w.Pos.Y)
		return true
	})
}

// Close closes the window id. The record survives; once the close
// animation has settled its geometry returns to the default.
func (m *Manager) Close(id string) {
	m.update(func() bool {
		i := m.index(id)
		if i < 0 || !m.windows[i].Open {
			return false
		}
		m.windows[i].Open = false
		delete(m.saved, id)
		if m.focused == id {
			m.focused = ""
		}
		m.persistLocked()
		m.sched.Schedule(settleKey(id), m.timings.CloseSettle, func() { m.settle(id) })
		return true
	})
}

func (m *Manager) settle(id string) {
	m.update(func() bool {
		i := m.index(id)
		if i < 0 || m.windows[i].Open {
			return false
		}
		d := m.defaultWindow(id)
		m.windows[i].Pos = d.Pos
		m.windows[i].Size = d.Size
		return true
	})
}

// Move sets the position of an open window. The write to the query
// string is debounced.
func (m *Manager) Move(id string, pos Point) {
	m.update(func() bool {
		i := m.index(id)
		if i < 0 || !m.windows[i].Open {
			return false
		}
		m.windows[i].Pos = pos
		m.schedulePersist(keyPosition, m.timings.PositionDebounce)
		return true
	})
}

// Resize sets the size of an open window, clamped into bounds. The
// write to the query string is debounced.
func (m *Manager) Resize(id string, size Size) {
	m.update(func() bool {
		i := m.index(id)
		if i < 0 || !m.windows[i].Open {
			return false
		}
		m.windows[i].Size = m.bounds.Clamp(size)
		m.schedulePersist(keySize, m.timings.SizeDebounce)
		return true
	})
}

// MoveAndResize sets size and position together, as a west-edge resize needs.
func (m *Manager) MoveAndResize(id string, size Size, pos Point) {
	m.update(func() bool {
		return m.setFrameLocked(id, Frame{Pos: pos, Size: size})
	})
}

// setFrameLocked ignores closed windows so a late write cannot undo the
// settle reset.
func (m *Manager) setFrameLocked(id string, f Frame) bool {
	i := m.index(id)
	if i < 0 || !m.windows[i].Open {
		return false
	}
	m.windows[i].Size = m.bounds.Clamp(f.Size)
	m.windows[i].Pos = f.Pos
	m.schedulePersist(keySize, m.timings.SizeDebounce)
	return true
}

// Get returns the record for id, or a default closed record when the
// window has never been opened. It never changes state.
func (m *Manager) Get(id string) Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(id); i >= 0 {
		return m.windows[i]
	}
	return m.defaultWindow(id)
}

// Windows returns a copy of all records in list order.
func (m *Manager) Windows() []Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.windows)
}

// IsOpen reports whether the window id is open.
func (m *Manager) IsOpen(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	return i >= 0 && m.windows[i].Open
}

// Focused returns the focused window id, or "" when none is focused.
func (m *Manager) Focused() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focused
}

// Focus focuses an open window. Closed or unknown ids are ignored.
func (m *Manager) Focus(id string) {
	m.update(func() bool {
		i := m.index(id)
		if i < 0 || !m.windows[i].Open || m.focused == id {
			return false
		}
		m.focused = id
		return true
	})
}

// SetMinimized sets the minimized flag. Geometry is untouched so the window
// comes back exactly where it was. Minimizing the focused window clears
// focus. A fullscreen window cannot be minimized. The change is persisted
// immediately.
func (m *Manager) SetMinimized(id string, minimized bool) {
	m.update(func() bool {
		i := m.index(id)
		if i < 0 {
			return false
		}
		if _, fullscreen := m.saved[id]; minimized && fullscreen {
			return false
		}
		m.windows[i].Minimized = minimized
		if minimized && m.focused == id {
			m.focused = ""
		}
		m.persistLocked()
		return true
	})
}

// SidebarOpen reports whether the active-windows side panel is open.
func (m *Manager) SidebarOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sidebarOpen
}

// SetSidebarOpen opens or closes the side panel. Opening it pushes
// windows that would be hidden behind it to the left and persists.
func (m *Manager) SetSidebarOpen(open bool) {
	m.update(func() bool {
		m.sidebarOpen = open
		if open {
			m.windows = PushOver(m.viewport, m.windows)
			m.persistLocked()
		}
		return true
	})
}

// Viewport returns the current viewport.
func (m *Manager) Viewport() Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport
}

// SetViewport records a new page size. The reserved strip is kept.
func (m *Manager) SetViewport(size Size) {
	m.update(func() bool {
		if m.viewport.Width == size.Width && m.viewport.Height == size.Height {
			return false
		}
		m.viewport.Width = size.Width
		m.viewport.Height = size.Height
		return true
	})
}

// Bounds returns the size bounds windows are clamped into.
func (m *Manager) Bounds() SizeBounds {
	return m.bounds
}

// ApplyQuery replaces the window list with the state decoded from q, as
// happens on load and on back/forward navigation. Positions are clamped
// into the current viewport. It is ignored while a write issued by a
// gesture is still pending, and reports whether the state was applied.
func (m *Manager) ApplyQuery(q url.Values) bool {
	applied := false
	m.update(func() bool {
		if m.gestureWrite {
			m.log.Debug("query ignored while a gesture write is pending")
			return false
		}
		raw := q.Get(QueryParam)
		decoded := Decode(raw)
		if raw != "" && len(decoded) == 0 {
			m.log.Debug("persisted window state is malformed, starting empty", "value", raw)
		}
		m.windows = ClampWindows(m.viewport, m.bounds, decoded)

		if i := m.index(m.focused); i < 0 || !m.windows[i].Open {
			m.focused = ""
		}
		for id := range m.saved {
			if i := m.index(id); i < 0 || !m.windows[i].Open {
				delete(m.saved, id)
			}
		}
		applied = true
		return true
	})
	return applied
}

// Encoded returns the current window list in query string form.
func (m *Manager) Encoded() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Encode(m.windows)
}

func (m *Manager) schedulePersist(key string, delay time.Duration) {
	m.gestureWrite = true
	m.sched.Schedule(key, delay, m.flushGestureWrite)
}

func (m *Manager) flushGestureWrite() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.persistLocked()
	m.gestureWrite = m.sched.Pending(keyPosition) || m.sched.Pending(keySize)
}

func (m *Manager) persistLocked() {
	q := m.nav.Query()
	q.Set(QueryParam, Encode(m.windows))
	m.nav.Replace(q)
	m.log.Debug("window state persisted", "windows", len(m.windows))
}
