package wm

import (
	"slices"
	"sync"
)

// Icon is a desktop shortcut that opens a window when clicked. Icon
// positions live in memory only.
type Icon struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Window string `json:"window" yaml:"window"`
	Pos    Point  `json:"pos" yaml:"pos"`
}

// DefaultIcons returns the stock desktop shortcuts.
func DefaultIcons() []Icon {
	return []Icon{
		{ID: "introduction", Label: "intro.md", Window: "intro.md", Pos: Point{X: 20, Y: 25}},
		{ID: "about-me", Label: "about-me.md", Window: "about-me.md", Pos: Point{X: 20, Y: 125}},
	}
}

// IconBoard tracks where desktop icons sit inside their container.
type IconBoard struct {
	mu        sync.Mutex
	icons     []Icon
	container Size
}

// NewIconBoard creates a board holding a copy of icons.
func NewIconBoard(icons []Icon) *IconBoard {
	return &IconBoard{icons: slices.Clone(icons)}
}

// Icons returns a copy of the icons in display order.
func (b *IconBoard) Icons() []Icon {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.icons)
}

// Lookup returns the icon with the given id.
func (b *IconBoard) Lookup(id string) (Icon, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.index(id); i >= 0 {
		return b.icons[i], true
	}
	return Icon{}, false
}

// SetContainer records the size of the desktop area icons live in.
func (b *IconBoard) SetContainer(size Size) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.container = size
}

// Drop commits an icon drag that ended with the given total delta and
// returns the clamped position. Unknown ids are ignored. Without a known
// container size the drop is ignored too, as there is nothing to clamp to.
func (b *IconBoard) Drop(id string, delta Point) (Point, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 || b.container == (Size{}) {
		return Point{}, false
	}
	b.icons[i].Pos = DragIcon(b.icons[i].Pos, delta, b.container)
	return b.icons[i].Pos, true
}

func (b *IconBoard) index(id string) int {
	return slices.IndexFunc(b.icons, func(ic Icon) bool { return ic.ID == id })
}
