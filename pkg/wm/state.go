package wm

import (
	"errors"
	"time"
)

// Point is a top-left position in viewport pixels.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size holds window or container dimensions.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// SizeBounds limits window sizes per axis.
type SizeBounds struct {
	Min Size
	Max Size
}

// Clamp returns s with each axis clamped into [Min, Max] independently.
func (b SizeBounds) Clamp(s Size) Size {
	return Size{
		Width:  clamp(s.Width, b.Min.Width, b.Max.Width),
		Height: clamp(s.Height, b.Min.Height, b.Max.Height),
	}
}

// Window is one movable, resizable panel on the desktop.
type Window struct {
	ID        string `json:"id" yaml:"id"`
	Pos       Point  `json:"pos" yaml:"pos"`
	Size      Size   `json:"size" yaml:"size"`
	Open      bool   `json:"open" yaml:"open"`
	Minimized bool   `json:"minimized" yaml:"minimized"`
}

// Frame returns the window geometry as a frame.
func (w Window) Frame() Frame {
	return Frame{Pos: w.Pos, Size: w.Size}
}

// Frame is a saved position and size, used for fullscreen restore.
type Frame struct {
	Pos  Point
	Size Size
}

// Side selects a half of the screen for FillHalf.
type Side int

const (
	// SnapLeft fills the left half of the screen.
	SnapLeft Side = iota
	// SnapRight fills the right half of the screen.
	SnapRight
)

// String returns a string representation of the side.
func (s Side) String() string {
	switch s {
	case SnapLeft:
		return "left"
	case SnapRight:
		return "right"
	default:
		return "unknown"
	}
}

const (
	// DefaultReservedTop is the height of the navigation bar windows may never cover.
	DefaultReservedTop = 48
	// CollisionOffset is both the placement tolerance and the cascade step.
	CollisionOffset = 30
	// MaxPlacementAttempts bounds the cascade loop in Place.
	MaxPlacementAttempts = 20
	// SidebarWidth is the width of the active-windows side panel.
	SidebarWidth = 300
	// SidebarBuffer is extra room kept between pushed windows and the side panel.
	SidebarBuffer = 20
	// SizeStep is the increment used by the window menu size adjustments.
	SizeStep = 40

	restoreMargin = 60
	restoreTopGap = 20
)

var (
	// DefaultSize is the size every window opens with.
	DefaultSize = Size{Width: 600, Height: 325}
	// MinSize is the smallest size a window may take.
	MinSize = Size{Width: 340, Height: 150}
	// MaxSize is large enough for fullscreen on any realistic viewport.
	MaxSize = Size{Width: 10000, Height: 9000}
	// IconFootprint is the area a desktop icon occupies.
	IconFootprint = Size{Width: 80, Height: 80}
)

// Timings holds the debounce and settle delays.
type Timings struct {
	PositionDebounce time.Duration
	SizeDebounce     time.Duration
	CloseSettle      time.Duration
}

// DefaultTimings returns the delays used when a Config leaves them unset.
func DefaultTimings() Timings {
	return Timings{
		PositionDebounce: 100 * time.Millisecond,
		SizeDebounce:     150 * time.Millisecond,
		CloseSettle:      300 * time.Millisecond,
	}
}

func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	if t.PositionDebounce <= 0 {
		t.PositionDebounce = d.PositionDebounce
	}
	if t.SizeDebounce <= 0 {
		t.SizeDebounce = d.SizeDebounce
	}
	if t.CloseSettle <= 0 {
		t.CloseSettle = d.CloseSettle
	}
	return t
}

// ErrGestureActive is returned when a gesture starts while another is in progress.
var ErrGestureActive = errors.New("gesture already in progress")

// ErrNoGesture is returned by Move and End when no gesture is active.
var ErrNoGesture = errors.New("no gesture in progress")

// ErrWindowNotOpen is returned when a gesture targets a closed window.
var ErrWindowNotOpen = errors.New("window not open")

// ErrGestureLocked is returned when a gesture targets a fullscreen window.
var ErrGestureLocked = errors.New("window is fullscreen")

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
