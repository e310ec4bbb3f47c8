package session

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"webdesk/pkg/wm"
)

// Options configure the window manager of each session.
type Options struct {
	// ReservedTop is the height of the strip windows never cover; nil
	// means wm.DefaultReservedTop.
	ReservedTop *int
	Bounds      wm.SizeBounds
	DefaultSize wm.Size
	Timings     wm.Timings
	Icons       []wm.Icon
	// Clock drives debounce timers; nil means wall time.
	Clock  wm.Clock
	Logger *slog.Logger
}

// Session is the Go side of one browser tab.
type Session struct {
	ID string

	manager  *wm.Manager
	gestures *wm.Controller
	icons    *wm.IconBoard
	nav      *pageNavigator
	out      *outbox
	log      *slog.Logger
}

// New creates a session with a fresh window manager. Nothing is sent
// until the page says hello.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	top := wm.DefaultReservedTop
	if opts.ReservedTop != nil {
		top = *opts.ReservedTop
	}
	if opts.Icons == nil {
		opts.Icons = wm.DefaultIcons()
	}

	id := uuid.NewString()
	s := &Session{
		ID:    id,
		icons: wm.NewIconBoard(opts.Icons),
		out:   newOutbox(),
		log:   opts.Logger.With("session", id),
	}
	s.nav = newPageNavigator(s.out)
	s.manager = wm.NewManager(wm.Config{
		Viewport:    wm.Viewport{ReservedTop: top},
		Bounds:      opts.Bounds,
		DefaultSize: opts.DefaultSize,
		Timings:     opts.Timings,
		Clock:       opts.Clock,
		Navigator:   s.nav,
		Logger:      s.log,
		OnChange:    s.publish,
	})
	s.gestures = wm.NewController(s.manager)
	return s
}

// Manager returns the session's window manager.
func (s *Session) Manager() *wm.Manager {
	return s.manager
}

// Close stops the session's timers, flushing a pending write first.
func (s *Session) Close() {
	s.manager.Shutdown()
}

func (s *Session) publish() {
	s.out.push(ServerMessage{Type: TypeState, State: snapshot(s.manager, s.icons)})
}

// Handle applies one message from the page. Errors leave the session
// usable; the caller reports them to the page.
func (s *Session) Handle(msg ClientMessage) error {
	m := s.manager

	switch msg.Type {
	case TypeHello:
		if msg.Viewport == nil {
			return fmt.Errorf("%w: hello without viewport", ErrBadMessage)
		}
		s.resize(msg)
		m.ApplyQuery(s.nav.reported(msg.Query))
	case TypeViewport:
		if msg.Viewport == nil && msg.Container == nil {
			return fmt.Errorf("%w: viewport without sizes", ErrBadMessage)
		}
		s.resize(msg)
		s.publish()
	case TypeNavigate:
		m.ApplyQuery(s.nav.reported(msg.Query))
	case TypeOpen:
		return s.withID(msg, m.Open)
	case TypeClose:
		return s.withID(msg, m.Close)
	case TypeFocus:
		return s.withID(msg, m.Focus)
	case TypeMinimize:
		return s.withID(msg, func(id string) { m.SetMinimized(id, msg.Minimized) })
	case TypeSidebar:
		m.SetSidebarOpen(msg.Open)
	case TypeFullscreen:
		return s.withID(msg, func(id string) { m.ToggleFullscreen(id) })
	case TypeHalf:
		side, err := parseSide(msg.Side)
		if err != nil {
			return err
		}
		return s.withID(msg, func(id string) { m.FillHalf(id, side) })
	case TypeReset:
		return s.withID(msg, m.ResetGeometry)
	case TypeAdjust:
		return s.withID(msg, func(id string) { m.AdjustSize(id, msg.Width, msg.Height) })
	case TypeGestureStart:
		return s.startGesture(msg)
	case TypeGestureMove:
		return s.gestures.Move(msg.Pointer)
	case TypeGestureEnd:
		return s.gestures.End(msg.Pointer)
	case TypeIconDrop:
		if _, ok := s.icons.Drop(msg.ID, msg.Delta); ok {
			s.publish()
		}
	case TypeIconClick:
		icon, ok := s.icons.Lookup(msg.ID)
		if !ok {
			return fmt.Errorf("%w: unknown icon %q", ErrBadMessage, msg.ID)
		}
		m.Open(icon.Window)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

func (s *Session) resize(msg ClientMessage) {
	if msg.Viewport != nil {
		s.manager.SetViewport(*msg.Viewport)
	}
	if msg.Container != nil {
		s.icons.SetContainer(*msg.Container)
	}
}

func (s *Session) withID(msg ClientMessage, fn func(id string)) error {
	if msg.ID == "" {
		return fmt.Errorf("%w: %s without id", ErrBadMessage, msg.Type)
	}
	fn(msg.ID)
	return nil
}

func (s *Session) startGesture(msg ClientMessage) error {
	switch msg.Kind {
	case "drag":
		return s.gestures.StartDrag(msg.ID, msg.Pointer)
	case "resize":
		edge, err := wm.ParseEdge(msg.Edge)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		return s.gestures.StartResize(msg.ID, edge, msg.Pointer)
	default:
		return fmt.Errorf("%w: gesture kind %q", ErrBadMessage, msg.Kind)
	}
}
