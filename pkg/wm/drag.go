package wm

// DragWindow returns start moved by delta, kept below the reserved strip and
// inside the right and bottom viewport edges for a window of the given size.
// The reserved strip takes precedence over the bottom edge.
func DragWindow(start, delta Point, size Size, v Viewport) Point {
	p := start.Add(delta)

	if p.Y < v.ReservedTop {
		p.Y = v.ReservedTop
	} else if p.Y+size.Height > v.Height {
		p.Y = v.Height - size.Height
	}

	if p.X < 0 {
		p.X = 0
	} else if p.X+size.Width > v.Width {
		p.X = v.Width - size.Width
	}
	return p
}

// DragIcon returns start moved by delta, clamped inside container minus
// the icon footprint.
func DragIcon(start, delta Point, container Size) Point {
	p := start.Add(delta)
	return Point{
		X: max(0, min(p.X, container.Width-IconFootprint.Width)),
		Y: max(0, min(p.Y, container.Height-IconFootprint.Height)),
	}
}
