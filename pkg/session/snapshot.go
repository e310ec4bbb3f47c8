package session

import (
	"path"
	"strings"

	"webdesk/pkg/wm"
)

// Snapshot is everything the page needs to render the desktop.
type Snapshot struct {
	Viewport    wm.Viewport    `json:"viewport"`
	Windows     []WindowView   `json:"windows"`
	Focused     string         `json:"focused,omitempty"`
	SidebarOpen bool           `json:"sidebarOpen"`
	Sidebar     []SidebarEntry `json:"sidebar"`
	Icons       []wm.Icon      `json:"icons"`
}

// WindowView is a window record plus its display flags.
type WindowView struct {
	wm.Window
	Focused    bool `json:"focused"`
	Fullscreen bool `json:"fullscreen"`
}

// SidebarEntry is one row of the active-windows side panel.
type SidebarEntry struct {
	ID string `json:"id"`
	// Kind picks the row icon: "file" for documents, "app" otherwise.
	Kind string `json:"kind"`
	// Active is set for the focused window unless it is minimized.
	Active    bool `json:"active"`
	Minimized bool `json:"minimized"`
}

func snapshot(m *wm.Manager, icons *wm.IconBoard) *Snapshot {
	windows := m.Windows()
	focused := m.Focused()

	s := &Snapshot{
		Viewport:    m.Viewport(),
		Windows:     make([]WindowView, 0, len(windows)),
		Focused:     focused,
		SidebarOpen: m.SidebarOpen(),
		Sidebar:     make([]SidebarEntry, 0, len(windows)),
		Icons:       icons.Icons(),
	}
	for _, w := range windows {
		s.Windows = append(s.Windows, WindowView{
			Window:     w,
			Focused:    w.ID == focused,
			Fullscreen: m.IsFullscreen(w.ID),
		})
		if !w.Open {
			continue
		}
		s.Sidebar = append(s.Sidebar, SidebarEntry{
			ID:        w.ID,
			Kind:      entryKind(w.ID),
			Active:    w.ID == focused && !w.Minimized,
			Minimized: w.Minimized,
		})
	}
	return s
}

func entryKind(id string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(id), ".")) {
	case "txt", "md", "pdf":
		return "file"
	default:
		return "app"
	}
}
