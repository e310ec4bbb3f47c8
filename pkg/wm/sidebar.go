package wm

// PushOver returns a copy of windows where every open, visible window whose
// right edge reaches under the side panel is moved left so it ends
// SidebarBuffer pixels before the panel. Windows wider than the remaining
// space end up at x=0 and still overlap the panel; windows already at x=0
// are therefore never moved.
func PushOver(v Viewport, windows []Window) []Window {
	limit := v.Width - (SidebarWidth + SidebarBuffer)
	out := make([]Window, len(windows))
	for i, w := range windows {
		if w.Open && !w.Minimized && w.Pos.X+w.Size.Width > limit {
			w.Pos.X = max(0, limit-w.Size.Width)
		}
		out[i] = w
	}
	return out
}
