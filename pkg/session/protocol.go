package session

import (
	"errors"
	"fmt"

	"webdesk/pkg/wm"
)

// Client message types.
const (
	TypeHello        = "hello"
	TypeViewport     = "viewport"
	TypeNavigate     = "navigate"
	TypeOpen         = "open"
	TypeClose        = "close"
	TypeFocus        = "focus"
	TypeMinimize     = "minimize"
	TypeSidebar      = "sidebar"
	TypeFullscreen   = "fullscreen"
	TypeHalf         = "half"
	TypeReset        = "reset"
	TypeAdjust       = "adjust"
	TypeGestureStart = "gesture.start"
	TypeGestureMove  = "gesture.move"
	TypeGestureEnd   = "gesture.end"
	TypeIconDrop     = "icon.drop"
	TypeIconClick    = "icon.click"
)

// Server message types.
const (
	TypeState        = "state"
	TypeReplaceQuery = "replaceQuery"
	TypeError        = "error"
)

var (
	// ErrUnknownMessage is returned for a message type the session does not handle.
	ErrUnknownMessage = errors.New("unknown message type")
	// ErrBadMessage is returned when a message is missing a required field.
	ErrBadMessage = errors.New("malformed message")
)

// ClientMessage is a message sent by the page. Fields not used by a type
// are left empty.
type ClientMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`

	// hello, viewport
	Viewport  *wm.Size `json:"viewport,omitempty"`
	Container *wm.Size `json:"container,omitempty"`
	// hello, navigate
	Query string `json:"query,omitempty"`

	// minimize, sidebar
	Minimized bool `json:"minimized,omitempty"`
	Open      bool `json:"open,omitempty"`
	// half
	Side string `json:"side,omitempty"`
	// adjust
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// gesture.*
	Kind    string   `json:"kind,omitempty"`
	Edge    string   `json:"edge,omitempty"`
	Pointer wm.Point `json:"pointer"`
	// icon.drop
	Delta wm.Point `json:"delta"`
}

// ServerMessage is a message sent to the page.
type ServerMessage struct {
	Type  string    `json:"type"`
	State *Snapshot `json:"state,omitempty"`
	Query string    `json:"query,omitempty"`
	Error string    `json:"error,omitempty"`
}

func parseSide(s string) (wm.Side, error) {
	switch s {
	case "left":
		return wm.SnapLeft, nil
	case "right":
		return wm.SnapRight, nil
	default:
		return 0, fmt.Errorf("%w: side %q", ErrBadMessage, s)
	}
}
