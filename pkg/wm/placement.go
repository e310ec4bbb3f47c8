package wm

// Viewport is the visible page area. ReservedTop is the strip at the top
// (the navigation bar) that windows may never cover.
type Viewport struct {
	Width       int `json:"width"`
	Height      int `json:"height"`
	ReservedTop int `json:"reservedTop"`
}

// Center returns the position that centers a window of the given size,
// clamped so it stays below the reserved strip and inside the viewport.
// When the viewport is too short the reserved strip wins.
func (v Viewport) Center(size Size) Point {
	return v.ClampPosition(Point{
		X: (v.Width - size.Width) / 2,
		Y: (v.Height - size.Height) / 2,
	}, size)
}

// ClampPosition clamps pos into [0, W-w] x [ReservedTop, H-h].
func (v Viewport) ClampPosition(pos Point, size Size) Point {
	return Point{
		X: clamp(pos.X, 0, v.Width-size.Width),
		Y: clamp(pos.Y, v.ReservedTop, v.Height-size.Height),
	}
}

// Usable returns the area below the reserved strip.
func (v Viewport) Usable() Size {
	return Size{Width: v.Width, Height: v.Height - v.ReservedTop}
}

// Place returns a start position for a window of the given size that does
// not sit within CollisionOffset (on both axes) of any other open window.
// The candidate cascades by (+30,+30) at most MaxPlacementAttempts times;
// after that overlap is accepted.
func Place(v Viewport, size Size, id string, windows []Window) Point {
	pos := v.Center(size)
	for attempt := 0; attempt < MaxPlacementAttempts && collides(pos, id, windows); attempt++ {
		pos = pos.Add(Point{X: CollisionOffset, Y: CollisionOffset})
	}
	return pos
}

func collides(pos Point, id string, windows []Window) bool {
	for _, w := range windows {
		if !w.Open || w.ID == id {
			continue
		}
		if abs(w.Pos.X-pos.X) < CollisionOffset && abs(w.Pos.Y-pos.Y) < CollisionOffset {
			return true
		}
	}
	return false
}

// ClampWindows returns a copy of windows with every position clamped into
// the viewport and every size clamped into bounds. It is applied to state
// decoded from the query string, which may have been saved on a different
// viewport.
func ClampWindows(v Viewport, bounds SizeBounds, windows []Window) []Window {
	out := make([]Window, len(windows))
	for i, w := range windows {
		w.Size = bounds.Clamp(w.Size)
		w.Pos = v.ClampPosition(w.Pos, w.Size)
		out[i] = w
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
