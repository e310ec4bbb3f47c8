/*
Package wm provides window management for the webdesk simulated desktop.

This package implements the backend window management capabilities, including:
  - Window record lifecycle (open, close, settle reset) and focus
  - Geometry math for drag, edge resize, fullscreen and half-screen snapping
  - Collision-avoided placement of newly opened windows
  - A compact, reversible encoding of the window list for the page query string
  - Debounced persistence through a Navigator

The window manager coordinates with the frontend JavaScript renderer, which
only reports pointer gestures and discrete actions; every window record is
owned by a Manager.

Example usage:

	nav := wm.NewMemoryNavigator("")
	manager := wm.NewManager(wm.Config{
		Viewport:  wm.Viewport{Width: 1920, Height: 1080, ReservedTop: 48},
		Navigator: nav,
	})
	manager.Open("intro.md")
	manager.ToggleFullscreen("intro.md")
*/
package wm
