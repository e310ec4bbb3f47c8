package wm

// IsFullscreen reports whether the window id is currently fullscreen.
func (m *Manager) IsFullscreen(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.saved[id]
	return ok
}

// ToggleFullscreen fills the viewport below the reserved strip, saving the
// current frame in a single slot. Toggling again restores the saved frame,
// re-clamped to the current viewport. It reports the new fullscreen state.
// Closed windows are left alone.
func (m *Manager) ToggleFullscreen(id string) bool {
	fullscreen := false
	m.update(func() bool {
		i := m.index(id)
		if i < 0 || !m.windows[i].Open {
			return false
		}

		if saved, ok := m.saved[id]; ok {
			delete(m.saved, id)
			return m.setFrameLocked(id, m.restoreFrame(saved))
		}

		m.saved[id] = m.windows[i].Frame()
		fullscreen = true
		return m.setFrameLocked(id, Frame{
			Pos:  Point{X: 0, Y: m.viewport.ReservedTop},
			Size: m.viewport.Usable(),
		})
	})
	return fullscreen
}

// restoreFrame fits a saved frame into the current viewport, keeping a
// margin so a restored window never looks maximized.
func (m *Manager) restoreFrame(saved Frame) Frame {
	v := m.viewport
	size := m.bounds.Clamp(Size{
		Width:  min(saved.Size.Width, v.Width-restoreMargin),
		Height: min(saved.Size.Height, v.Height-v.ReservedTop-restoreMargin),
	})
	return Frame{
		Size: size,
		Pos: Point{
			X: clamp(saved.Pos.X, 0, v.Width-size.Width),
			Y: clamp(saved.Pos.Y, v.ReservedTop+restoreTopGap, v.Height-size.Height),
		},
	}
}

// FillHalf snaps the window to the left or right half of the viewport at
// full usable height. It leaves fullscreen without restoring and discards
// the saved frame, so a later fullscreen toggle saves the snapped frame.
func (m *Manager) FillHalf(id string, side Side) {
	m.update(func() bool {
		i := m.index(id)
		if i < 0 || !m.windows[i].Open {
			return false
		}
		delete(m.saved, id)

		half := m.viewport.Width / 2
		pos := Point{X: 0, Y: m.viewport.ReservedTop}
		if side == SnapRight {
			pos.X = half
		}
		return m.setFrameLocked(id, Frame{
			Pos:  pos,
			Size: Size{Width: half, Height: m.viewport.Usable().Height},
		})
	})
}

// ResetGeometry puts the window back to the default size at the center of
// the viewport and leaves fullscreen.
func (m *Manager) ResetGeometry(id string) {
	m.update(func() bool {
		if i := m.index(id); i < 0 || !m.windows[i].Open {
			return false
		}
		delete(m.saved, id)
		d := m.defaultWindow(id)
		return m.setFrameLocked(id, d.Frame())
	})
}

// AdjustSize grows or shrinks the window by whole SizeStep increments
// (negative steps shrink). The top-left corner stays in place and the
// window leaves fullscreen.
func (m *Manager) AdjustSize(id string, widthSteps, heightSteps int) {
	m.update(func() bool {
		i := m.index(id)
		if i < 0 || !m.windows[i].Open {
			return false
		}
		delete(m.saved, id)
		w := m.windows[i]
		return m.setFrameLocked(id, Frame{
			Pos: w.Pos,
			Size: Size{
				Width:  w.Size.Width + widthSteps*SizeStep,
				Height: w.Size.Height + heightSteps*SizeStep,
			},
		})
	})
}
