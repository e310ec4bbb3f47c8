package wm

import (
	"testing"
)

func TestDefaultIcons(t *testing.T) {
	icons := DefaultIcons()
	if len(icons) != 2 {
		t.Fatalf("expected 2 icons, got %d", len(icons))
	}
	if icons[0].Window != "intro.md" || icons[0].Pos != (Point{X: 20, Y: 25}) {
		t.Errorf("unexpected first icon %+v", icons[0])
	}
	if icons[1].Window != "about-me.md" || icons[1].Pos != (Point{X: 20, Y: 125}) {
		t.Errorf("unexpected second icon %+v", icons[1])
	}
}

func TestIconBoardDrop(t *testing.T) {
	b := NewIconBoard(DefaultIcons())

	if _, ok := b.Drop("introduction", Point{X: 10, Y: 10}); ok {
		t.Error("drop without a container must be ignored")
	}

	b.SetContainer(Size{Width: 1920, Height: 1032})
	pos, ok := b.Drop("introduction", Point{X: 100, Y: 50})
	if !ok {
		t.Fatal("expected drop to apply")
	}
	if pos != (Point{X: 120, Y: 75}) {
		t.Errorf("expected (120, 75), got %+v", pos)
	}
	if ic, _ := b.Lookup("introduction"); ic.Pos != pos {
		t.Errorf("board did not keep the new position, got %+v", ic.Pos)
	}

	pos, _ = b.Drop("about-me", Point{X: 5000, Y: -5000})
	if pos != (Point{X: 1840, Y: 0}) {
		t.Errorf("expected clamp to (1840, 0), got %+v", pos)
	}

	if _, ok := b.Drop("missing", Point{}); ok {
		t.Error("unknown icon must be ignored")
	}
}

func TestIconBoardIsolation(t *testing.T) {
	src := DefaultIcons()
	b := NewIconBoard(src)
	src[0].Pos = Point{X: 999, Y: 999}

	icons := b.Icons()
	if icons[0].Pos == src[0].Pos {
		t.Error("board must copy its input")
	}
	icons[1].Pos = Point{}
	if ic, _ := b.Lookup("about-me"); ic.Pos != (Point{X: 20, Y: 125}) {
		t.Error("Icons must return a copy")
	}
}
