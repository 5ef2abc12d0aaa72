package grid

import (
	"math"
	"testing"

	"github.com/matzehuels/roomgrid/pkg/errors"
)

// testCanvas is a 60x40 grid of 10px cells.
var testCanvas = Size{W: 600, H: 400}

func TestMapPointer(t *testing.T) {
	tests := []struct {
		name string
		in   MapInput
		want Point
	}{
		{
			name: "snapped inside canvas",
			in:   MapInput{Client: Point{137, 88}, Offset: Point{100, 50}, Item: Size{20, 20}, CellSize: 10, Snap: true, Canvas: testCanvas},
			want: Point{30, 30},
		},
		{
			name: "unsnapped keeps sub-pixel position",
			in:   MapInput{Client: Point{137.5, 88.25}, Offset: Point{100, 50}, Item: Size{20, 20}, CellSize: 10, Canvas: testCanvas},
			want: Point{37.5, 38.25},
		},
		{
			name: "clamped to right and bottom edge",
			in:   MapInput{Client: Point{5000, 5000}, Item: Size{20, 30}, CellSize: 10, Snap: true, Canvas: testCanvas},
			want: Point{580, 370},
		},
		{
			name: "clamped to left and top edge",
			in:   MapInput{Client: Point{40, 10}, Offset: Point{100, 50}, Item: Size{20, 20}, CellSize: 10, Snap: true, Canvas: testCanvas},
			want: Point{0, 0},
		},
		{
			name: "item wider than canvas",
			in:   MapInput{Client: Point{300, 200}, Item: Size{700, 20}, CellSize: 10, Snap: true, Canvas: testCanvas},
			want: Point{0, 200},
		},
		{
			name: "item taller than canvas unsnapped",
			in:   MapInput{Client: Point{123, 321}, Item: Size{20, 900}, CellSize: 10, Canvas: testCanvas},
			want: Point{123, 0},
		},
		{
			name: "far-off pointer clamps to the far edge",
			in:   MapInput{Client: Point{1e300, -1e300}, Item: Size{20, 20}, CellSize: 10, Snap: true, Canvas: testCanvas},
			want: Point{580, 0},
		},
		{
			name: "item exactly canvas size",
			in:   MapInput{Client: Point{50, 50}, Item: testCanvas, CellSize: 10, Snap: true, Canvas: testCanvas},
			want: Point{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapPointer(tt.in)
			if err != nil {
				t.Fatalf("MapPointer() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("MapPointer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapPointerStaysInBounds(t *testing.T) {
	items := []Size{{10, 10}, {20, 40}, {600, 10}, {650, 450}, {13.3, 7.7}}
	for _, snap := range []bool{true, false} {
		for _, item := range items {
			for cx := -200.0; cx <= 900; cx += 37.3 {
				for cy := -150.0; cy <= 700; cy += 41.9 {
					in := MapInput{Client: Point{cx, cy}, Offset: Point{25, 15}, Item: item, CellSize: 10, Snap: snap, Canvas: testCanvas}
					got, err := MapPointer(in)
					if err != nil {
						t.Fatalf("MapPointer(%+v) error: %v", in, err)
					}
					maxX := math.Max(0, testCanvas.W-item.W)
					maxY := math.Max(0, testCanvas.H-item.H)
					if got.X < 0 || got.X > maxX || got.Y < 0 || got.Y > maxY {
						t.Fatalf("MapPointer(%+v) = %v, outside [0,%v]x[0,%v]", in, got, maxX, maxY)
					}
				}
			}
		}
	}
}

func TestMapPointerSnapIdempotent(t *testing.T) {
	for _, cell := range []float64{10, 10.0 / 3, 11.666666666666666, 0.7} {
		canvas := Cells{W: 60, H: 40}.Px(cell)
		for cx := 0.0; cx < canvas.W; cx += cell / 2.7 {
			in := MapInput{Client: Point{cx, cx / 2}, Item: Cells{W: 2, H: 2}.Px(cell), CellSize: cell, Snap: true, Canvas: canvas}
			first, err := MapPointer(in)
			if err != nil {
				t.Fatal(err)
			}
			in.Client = first
			second, err := MapPointer(in)
			if err != nil {
				t.Fatal(err)
			}
			if !approx(first.X, second.X) || !approx(first.Y, second.Y) {
				t.Fatalf("cell %v: remapping %v gave %v", cell, first, second)
			}
		}
	}
}

func TestMapPointerIsStateless(t *testing.T) {
	in := MapInput{Client: Point{257.3, 119.8}, Offset: Point{12, 7}, Item: Size{30, 20}, CellSize: 10, Snap: true, Canvas: testCanvas}

	want, err := MapPointer(in)
	if err != nil {
		t.Fatal(err)
	}

	off := in
	off.Snap = false
	if _, err := MapPointer(off); err != nil {
		t.Fatal(err)
	}

	got, err := MapPointer(in)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("after toggling snap: %v, want %v", got, want)
	}
	if want != (Point{240, 110}) {
		t.Errorf("snapped origin = %v, want (240, 110)", want)
	}
}

func TestMapPointerInvariantViolations(t *testing.T) {
	base := MapInput{Client: Point{10, 10}, Item: Size{10, 10}, CellSize: 10, Snap: true, Canvas: testCanvas}

	tests := []struct {
		name   string
		mutate func(*MapInput)
	}{
		{"zero cell size", func(in *MapInput) { in.CellSize = 0 }},
		{"negative cell size", func(in *MapInput) { in.CellSize = -4 }},
		{"NaN pointer", func(in *MapInput) { in.Client.X = math.NaN() }},
		{"infinite pointer", func(in *MapInput) { in.Client.Y = math.Inf(1) }},
		{"infinite offset", func(in *MapInput) { in.Offset.X = math.Inf(-1) }},
		{"negative item", func(in *MapInput) { in.Item.W = -1 }},
		{"negative canvas", func(in *MapInput) { in.Canvas.H = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := MapPointer(in)
			if !errors.Is(err, errors.ErrCodeInvariant) {
				t.Errorf("MapPointer() error = %v, want %s", err, errors.ErrCodeInvariant)
			}
		})
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		v, cell, want float64
	}{
		{0, 10, 0},
		{9.99, 10, 0},
		{9.99999999995, 10, 10},
		{10, 10, 10},
		{25, 10, 20},
		{-0.5, 10, -10},
		{3 * 0.1, 0.1, 0.30000000000000004},
	}
	for _, tt := range tests {
		if got := Snap(tt.v, tt.cell); got != tt.want {
			t.Errorf("Snap(%v, %v) = %v, want %v", tt.v, tt.cell, got, tt.want)
		}
	}
}

func TestCellAtAndOrigin(t *testing.T) {
	c := CellAt(Point{35, 79.9}, 10)
	if c != (Cell{3, 7}) {
		t.Errorf("CellAt = %v, want (3,7)", c)
	}
	if p := CellOrigin(c, 10); p != (Point{30, 70}) {
		t.Errorf("CellOrigin = %v, want (30, 70)", p)
	}
	if !IsAligned(Point{30, 70}, 10) {
		t.Error("(30, 70) should be aligned to a 10px grid")
	}
	if IsAligned(Point{35, 70}, 10) {
		t.Error("(35, 70) should not be aligned to a 10px grid")
	}
}
