package wm

import (
	"testing"
	"time"
)

func TestToggleFullscreen(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("intro.md")
	before := m.Get("intro.md")

	if !m.ToggleFullscreen("intro.md") {
		t.Fatal("expected fullscreen")
	}
	got := m.Get("intro.md")
	if got.Pos != (Point{X: 0, Y: 48}) || got.Size != (Size{Width: 1920, Height: 1032}) {
		t.Errorf("expected window to fill the viewport below the strip, got %+v", got)
	}
	if !m.IsFullscreen("intro.md") {
		t.Error("expected IsFullscreen")
	}

	if m.ToggleFullscreen("intro.md") {
		t.Fatal("expected restore")
	}
	if got := m.Get("intro.md"); got.Pos != before.Pos || got.Size != before.Size {
		t.Errorf("expected restored frame %+v, got %+v", before.Frame(), got.Frame())
	}
}

func TestFullscreenRestoreAfterViewportShrink(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("intro.md")
	m.ToggleFullscreen("intro.md")

	m.SetViewport(Size{Width: 800, Height: 600})
	m.ToggleFullscreen("intro.md")

	got := m.Get("intro.md")
	if got.Size != DefaultSize {
		t.Errorf("expected size %+v, got %+v", DefaultSize, got.Size)
	}
	if got.Pos != (Point{X: 200, Y: 275}) {
		t.Errorf("expected restored position (200, 275), got %+v", got.Pos)
	}
	if m.Viewport().ReservedTop != 48 {
		t.Error("SetViewport must keep the reserved strip")
	}
}

func TestRestoreCapsOversizedFrame(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("intro.md")
	m.MoveAndResize("intro.md", Size{Width: 1900, Height: 1000}, Point{X: 0, Y: 48})
	m.ToggleFullscreen("intro.md")
	m.ToggleFullscreen("intro.md")

	got := m.Get("intro.md")
	if got.Size != (Size{Width: 1860, Height: 972}) {
		t.Errorf("expected size capped to (1860, 972), got %+v", got.Size)
	}
	if got.Pos.Y != 68 {
		t.Errorf("expected y pushed below the strip gap to 68, got %d", got.Pos.Y)
	}
}

func TestToggleFullscreenClosedWindow(t *testing.T) {
	m, _, _ := newTestManager(t)
	if m.ToggleFullscreen("never") {
		t.Error("closed window must not go fullscreen")
	}
	if len(m.Windows()) != 0 {
		t.Error("toggle must not create records")
	}
}

func TestCloseLeavesFullscreen(t *testing.T) {
	m, _, clock := newTestManager(t)
	m.Open("intro.md")
	m.ToggleFullscreen("intro.md")
	m.Close("intro.md")
	clock.Advance(time.Second)

	m.Open("intro.md")
	if m.IsFullscreen("intro.md") {
		t.Error("a reopened window must not be fullscreen")
	}
	if got := m.Get("intro.md"); got.Size != DefaultSize {
		t.Errorf("expected default size on reopen, got %+v", got.Size)
	}
}

func TestFillHalf(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("intro.md")

	m.FillHalf("intro.md", SnapLeft)
	got := m.Get("intro.md")
	if got.Pos != (Point{X: 0, Y: 48}) || got.Size != (Size{Width: 960, Height: 1032}) {
		t.Errorf("unexpected left half %+v", got.Frame())
	}

	m.FillHalf("intro.md", SnapRight)
	got = m.Get("intro.md")
	if got.Pos != (Point{X: 960, Y: 48}) || got.Size != (Size{Width: 960, Height: 1032}) {
		t.Errorf("unexpected right half %+v", got.Frame())
	}
	if m.IsFullscreen("intro.md") {
		t.Error("half fill must not mark the window fullscreen")
	}
}

func TestFillHalfDiscardsSavedFrame(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("intro.md")
	m.ToggleFullscreen("intro.md")
	m.FillHalf("intro.md", SnapLeft)

	if m.IsFullscreen("intro.md") {
		t.Fatal("half fill must leave fullscreen")
	}
	if !m.ToggleFullscreen("intro.md") {
		t.Fatal("expected fullscreen")
	}
	m.ToggleFullscreen("intro.md")
	if got := m.Get("intro.md"); got.Pos != (Point{X: 0, Y: 68}) || got.Size.Width != 960 {
		t.Errorf("expected the snapped frame restored, got %+v", got.Frame())
	}
}

func TestResetGeometry(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("intro.md")
	m.MoveAndResize("intro.md", Size{Width: 1000, Height: 800}, Point{X: 3, Y: 50})
	m.ToggleFullscreen("intro.md")

	m.ResetGeometry("intro.md")
	got := m.Get("intro.md")
	if got.Pos != testViewport.Center(DefaultSize) || got.Size != DefaultSize {
		t.Errorf("expected default centered geometry, got %+v", got.Frame())
	}
	if m.IsFullscreen("intro.md") {
		t.Error("reset must leave fullscreen")
	}
}

func TestAdjustSize(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Open("intro.md")
	pos := m.Get("intro.md").Pos

	m.AdjustSize("intro.md", 2, -1)
	got := m.Get("intro.md")
	if got.Size != (Size{Width: 680, Height: 285}) {
		t.Errorf("expected (680, 285), got %+v", got.Size)
	}
	if got.Pos != pos {
		t.Error("adjusting size must keep the top-left corner")
	}

	m.AdjustSize("intro.md", -100, -100)
	if got := m.Get("intro.md").Size; got != MinSize {
		t.Errorf("expected clamp to %+v, got %+v", MinSize, got)
	}
}

func TestResetGeometryIgnoresClosedWindow(t *testing.T) {
	m, nav, clock := newTestManager(t)
	m.Open("intro.md")
	m.MoveAndResize("intro.md", Size{Width: 1000, Height: 800}, Point{X: 3, Y: 50})
	clock.Advance(time.Second)
	m.Close("intro.md")
	writes := nav.Writes()

	m.ResetGeometry("intro.md")
	clock.Advance(150 * time.Millisecond)
	if nav.Writes() != writes {
		t.Errorf("reset of a closed window must not persist, got %d writes", nav.Writes()-writes)
	}
	if m.IsOpen("intro.md") {
		t.Error("reset must not reopen the window")
	}

	clock.Advance(150 * time.Millisecond)
	if got := m.Get("intro.md"); got.Size != DefaultSize || got.Pos != testViewport.Center(DefaultSize) {
		t.Errorf("expected the settle reset, got %+v", got.Frame())
	}
}
