package wm

import "fmt"

// Edge is the window border a resize gesture grabs. There is no edge on
// the top border; the top of a window never moves during a resize.
type Edge int

const (
	// EdgeNone means no resize edge (a drag gesture).
	EdgeNone Edge = iota
	// EdgeEast is the right border.
	EdgeEast
	// EdgeSouth is the bottom border.
	EdgeSouth
	// EdgeSouthEast is the bottom-right corner.
	EdgeSouthEast
	// EdgeWest is the left border.
	EdgeWest
	// EdgeSouthWest is the bottom-left corner.
	EdgeSouthWest
)

// String returns the handle name used on the wire.
func (e Edge) String() string {
	switch e {
	case EdgeEast:
		return "e"
	case EdgeSouth:
		return "s"
	case EdgeSouthEast:
		return "se"
	case EdgeWest:
		return "w"
	case EdgeSouthWest:
		return "sw"
	default:
		return ""
	}
}

// ParseEdge converts a handle name into an Edge.
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "e":
		return EdgeEast, nil
	case "s":
		return EdgeSouth, nil
	case "se":
		return EdgeSouthEast, nil
	case "w":
		return EdgeWest, nil
	case "sw":
		return EdgeSouthWest, nil
	default:
		return EdgeNone, fmt.Errorf("unknown resize edge %q", s)
	}
}

func (e Edge) horizontal() bool {
	return e == EdgeEast || e == EdgeSouthEast || e == EdgeWest || e == EdgeSouthWest
}

func (e Edge) vertical() bool {
	return e == EdgeSouth || e == EdgeSouthEast || e == EdgeSouthWest
}

func (e Edge) west() bool {
	return e == EdgeWest || e == EdgeSouthWest
}

// Resize computes the size and position produced by dragging edge from
// pointer start to pointer current. Width and height are clamped into bounds
// before the west-edge compensation is applied, so x moves by the applied
// width change and the east border stays put.
func Resize(start, current Point, edge Edge, startSize Size, startPos Point, bounds SizeBounds) (Size, Point) {
	delta := current.Sub(start)
	size, pos := startSize, startPos

	if edge.horizontal() {
		dw := delta.X
		if edge.west() {
			dw = -dw
		}
		size.Width = clamp(startSize.Width+dw, bounds.Min.Width, bounds.Max.Width)
		if edge.west() {
			pos.X = startPos.X - (size.Width - startSize.Width)
		}
	}
	if edge.vertical() {
		size.Height = clamp(startSize.Height+delta.Y, bounds.Min.Height, bounds.Max.Height)
	}
	return size, pos
}
