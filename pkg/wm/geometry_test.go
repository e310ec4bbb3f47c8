package wm

import (
	"testing"
)

func TestViewportCenter(t *testing.T) {
	tests := []struct {
		name     string
		viewport Viewport
		size     Size
		expected Point
	}{
		{"full hd", testViewport, DefaultSize, Point{X: 660, Y: 377}},
		{"reserved strip wins on short viewport", Viewport{Width: 1000, Height: 300, ReservedTop: 48}, DefaultSize, Point{X: 200, Y: 48}},
		{"narrow viewport pins left", Viewport{Width: 400, Height: 1080, ReservedTop: 48}, DefaultSize, Point{X: 0, Y: 377}},
		{"center below strip", Viewport{Width: 800, Height: 400, ReservedTop: 48}, Size{Width: 400, Height: 340}, Point{X: 200, Y: 48}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.viewport.Center(tt.size); got != tt.expected {
				t.Errorf("Center(%+v) = %+v, expected %+v", tt.size, got, tt.expected)
			}
		})
	}
}

func TestPlaceWithoutCollision(t *testing.T) {
	got := Place(testViewport, DefaultSize, "intro.md", nil)
	if got != (Point{X: 660, Y: 377}) {
		t.Errorf("expected center (660, 377), got %+v", got)
	}
}

func TestPlaceCascade(t *testing.T) {
	center := testViewport.Center(DefaultSize)

	for _, k := range []int{1, 2, 5, 20, 25} {
		var windows []Window
		for i := 0; i < k; i++ {
			windows = append(windows, Window{
				ID:   "w" + string(rune('a'+i)),
				Pos:  center.Add(Point{X: CollisionOffset * i, Y: CollisionOffset * i}),
				Size: DefaultSize,
				Open: true,
			})
		}

		steps := min(k, MaxPlacementAttempts)
		expected := center.Add(Point{X: CollisionOffset * steps, Y: CollisionOffset * steps})
		if got := Place(testViewport, DefaultSize, "new", windows); got != expected {
			t.Errorf("k=%d: expected %+v, got %+v", k, expected, got)
		}
	}
}

func TestPlaceTolerance(t *testing.T) {
	center := testViewport.Center(DefaultSize)
	tests := []struct {
		name    string
		other   Window
		shifted bool
	}{
		{"within tolerance", Window{ID: "a", Pos: center.Add(Point{X: 29, Y: -29}), Open: true}, true},
		{"x at tolerance", Window{ID: "a", Pos: center.Add(Point{X: 30, Y: 0}), Open: true}, false},
		{"only one axis close", Window{ID: "a", Pos: center.Add(Point{X: 0, Y: 100}), Open: true}, false},
		{"closed window ignored", Window{ID: "a", Pos: center}, false},
		{"self ignored", Window{ID: "new", Pos: center, Open: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Place(testViewport, DefaultSize, "new", []Window{tt.other})
			if shifted := got != center; shifted != tt.shifted {
				t.Errorf("expected shifted=%v, got position %+v", tt.shifted, got)
			}
		})
	}
}

func TestClampWindows(t *testing.T) {
	bounds := SizeBounds{Min: MinSize, Max: MaxSize}
	v := Viewport{Width: 1024, Height: 768, ReservedTop: 48}
	in := []Window{
		{ID: "far", Pos: Point{X: 1800, Y: 1000}, Size: DefaultSize, Open: true},
		{ID: "under-strip", Pos: Point{X: -20, Y: 10}, Size: DefaultSize},
		{ID: "tiny", Pos: Point{X: 100, Y: 100}, Size: Size{Width: 10, Height: 20}},
	}

	got := ClampWindows(v, bounds, in)
	expected := []Point{{X: 424, Y: 443}, {X: 0, Y: 48}, {X: 100, Y: 100}}
	for i, w := range got {
		if w.Pos != expected[i] {
			t.Errorf("%s: expected %+v, got %+v", w.ID, expected[i], w.Pos)
		}
	}
	if got[2].Size != MinSize {
		t.Errorf("expected tiny window clamped to %+v, got %+v", MinSize, got[2].Size)
	}
	if in[0].Pos.X != 1800 {
		t.Error("ClampWindows must not modify its input")
	}
}

func TestDragWindow(t *testing.T) {
	tests := []struct {
		name     string
		start    Point
		delta    Point
		expected Point
	}{
		{"free move", Point{X: 100, Y: 100}, Point{X: 50, Y: 25}, Point{X: 150, Y: 125}},
		{"stops at reserved strip", Point{X: 100, Y: 60}, Point{X: 0, Y: -50}, Point{X: 100, Y: 48}},
		{"stops at bottom", Point{X: 100, Y: 700}, Point{X: 0, Y: 200}, Point{X: 100, Y: 755}},
		{"stops at left", Point{X: 10, Y: 100}, Point{X: -40, Y: 0}, Point{X: 0, Y: 100}},
		{"stops at right", Point{X: 1300, Y: 100}, Point{X: 100, Y: 0}, Point{X: 1320, Y: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DragWindow(tt.start, tt.delta, DefaultSize, testViewport); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestDragIcon(t *testing.T) {
	container := Size{Width: 1920, Height: 1032}
	tests := []struct {
		start, delta, expected Point
	}{
		{Point{X: 20, Y: 25}, Point{X: 100, Y: 100}, Point{X: 120, Y: 125}},
		{Point{X: 20, Y: 25}, Point{X: -100, Y: -100}, Point{X: 0, Y: 0}},
		{Point{X: 1800, Y: 900}, Point{X: 500, Y: 500}, Point{X: 1840, Y: 952}},
	}

	for _, tt := range tests {
		if got := DragIcon(tt.start, tt.delta, container); got != tt.expected {
			t.Errorf("DragIcon(%+v, %+v) = %+v, expected %+v", tt.start, tt.delta, got, tt.expected)
		}
	}
}

func TestPushOver(t *testing.T) {
	in := []Window{
		{ID: "clipping", Pos: Point{X: 1500, Y: 100}, Size: DefaultSize, Open: true},
		{ID: "clear", Pos: Point{X: 100, Y: 100}, Size: DefaultSize, Open: true},
		{ID: "minimized", Pos: Point{X: 1500, Y: 100}, Size: DefaultSize, Open: true, Minimized: true},
		{ID: "closed", Pos: Point{X: 1500, Y: 100}, Size: DefaultSize},
		{ID: "wide", Pos: Point{X: 0, Y: 100}, Size: Size{Width: 1800, Height: 400}, Open: true},
		{ID: "wide-offset", Pos: Point{X: 50, Y: 100}, Size: Size{Width: 1800, Height: 400}, Open: true},
	}

	got := PushOver(testViewport, in)
	expected := []int{1000, 100, 1500, 1500, 0, 0}
	for i, w := range got {
		if w.Pos.X != expected[i] {
			t.Errorf("%s: expected x %d, got %d", w.ID, expected[i], w.Pos.X)
		}
		if w.Pos.Y != in[i].Pos.Y {
			t.Errorf("%s: y must not change", w.ID)
		}
	}
}
