package wm

import (
	"testing"
)

func TestResize(t *testing.T) {
	bounds := SizeBounds{Min: MinSize, Max: MaxSize}
	startSize := DefaultSize
	startPos := Point{X: 100, Y: 100}
	origin := Point{X: 700, Y: 425}

	tests := []struct {
		name     string
		edge     Edge
		delta    Point
		wantSize Size
		wantPos  Point
	}{
		{"east grows right", EdgeEast, Point{X: 50, Y: 80}, Size{Width: 650, Height: 325}, Point{X: 100, Y: 100}},
		{"south only touches height", EdgeSouth, Point{X: 50, Y: 80}, Size{Width: 600, Height: 405}, Point{X: 100, Y: 100}},
		{"south-east", EdgeSouthEast, Point{X: 50, Y: -10}, Size{Width: 650, Height: 315}, Point{X: 100, Y: 100}},
		{"west grows left", EdgeWest, Point{X: -40, Y: 30}, Size{Width: 640, Height: 325}, Point{X: 60, Y: 100}},
		{"west shrinks right", EdgeWest, Point{X: 60, Y: 0}, Size{Width: 540, Height: 325}, Point{X: 160, Y: 100}},
		{"south-west", EdgeSouthWest, Point{X: -20, Y: 20}, Size{Width: 620, Height: 345}, Point{X: 80, Y: 100}},
		{"height clamped to min", EdgeSouth, Point{X: 0, Y: -500}, Size{Width: 600, Height: 150}, Point{X: 100, Y: 100}},
		{"west clamped to min moves by applied change", EdgeWest, Point{X: 400, Y: 0}, Size{Width: 340, Height: 325}, Point{X: 360, Y: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, pos := Resize(origin, origin.Add(tt.delta), tt.edge, startSize, startPos, bounds)
			if size != tt.wantSize {
				t.Errorf("expected size %+v, got %+v", tt.wantSize, size)
			}
			if pos != tt.wantPos {
				t.Errorf("expected pos %+v, got %+v", tt.wantPos, pos)
			}
		})
	}
}

func TestResizeWestAtMaxWidth(t *testing.T) {
	bounds := SizeBounds{Min: MinSize, Max: MaxSize}
	startSize := Size{Width: MaxSize.Width - 30, Height: 325}
	startPos := Point{X: 500, Y: 100}

	size, pos := Resize(Point{X: 600, Y: 200}, Point{X: 560, Y: 200}, EdgeWest, startSize, startPos, bounds)
	if size.Width != MaxSize.Width {
		t.Errorf("expected width %d, got %d", MaxSize.Width, size.Width)
	}
	if pos.X != 470 {
		t.Errorf("expected x to move by the applied 30px to 470, got %d", pos.X)
	}
}

func TestResizeNeverMovesTop(t *testing.T) {
	bounds := SizeBounds{Min: MinSize, Max: MaxSize}
	for _, edge := range []Edge{EdgeEast, EdgeSouth, EdgeSouthEast, EdgeWest, EdgeSouthWest} {
		_, pos := Resize(Point{}, Point{X: -300, Y: -300}, edge, DefaultSize, Point{X: 400, Y: 200}, bounds)
		if pos.Y != 200 {
			t.Errorf("edge %s moved y to %d", edge, pos.Y)
		}
	}
}

func TestParseEdge(t *testing.T) {
	for _, edge := range []Edge{EdgeEast, EdgeSouth, EdgeSouthEast, EdgeWest, EdgeSouthWest} {
		got, err := ParseEdge(edge.String())
		if err != nil {
			t.Fatalf("ParseEdge(%q) failed: %v", edge.String(), err)
		}
		if got != edge {
			t.Errorf("expected %v, got %v", edge, got)
		}
	}

	for _, bad := range []string{"", "n", "ne", "nw", "E"} {
		if _, err := ParseEdge(bad); err == nil {
			t.Errorf("expected error for edge %q", bad)
		}
	}
}
