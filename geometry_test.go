package pixelbatt

import (
	"image"
	"math"
	"math/big"
	"testing"
)

func TestPercentToPixels(t *testing.T) {
	for _, tc := range []struct {
		total int
		pct   int
		px    int
	}{
		{0, 50, 0},
		{-10, 50, 0},
		{1920, 0, 0},
		{1920, 50, 960},
		{1920, 9, 172},
		{1920, 100, 1920},
		{1920, -5, 0},
		{1920, 150, 1920},
		{math.MaxInt32 / 100, 100, math.MaxInt32 / 100},
		{math.MaxInt32/100 + 1, 100, math.MaxInt32/100 + 1},
		{30_000_000, 50, 15_000_000},
		{30_000_001, 50, 15_000_000},
		{30_000_099, 99, 29_700_098},
		{math.MaxInt32, 100, math.MaxInt32},
		{math.MaxInt32, 50, math.MaxInt32 / 2},
	} {
		if px := PercentToPixels(tc.total, tc.pct); px != tc.px {
			t.Errorf("PercentToPixels(%d, %d): expected %d, got %d", tc.total, tc.pct, tc.px, px)
		}
	}
}

func TestPercentToPixelsProperties(t *testing.T) {
	for _, total := range []int{
		1, 2, 3, 99, 100, 101, 1080, 1920, 7680,
		math.MaxInt32/100 - 1,
		math.MaxInt32 / 100,
		math.MaxInt32/100 + 1,
		30_000_000,
		1_000_000_007,
		math.MaxInt32,
	} {
		prev := 0
		for pct := 0; pct <= 100; pct++ {
			px := PercentToPixels(total, pct)
			if px < 0 || px > total {
				t.Fatalf("PercentToPixels(%d, %d) = %d: out of range", total, pct, px)
			}
			if px < prev {
				t.Fatalf("PercentToPixels(%d, %d) = %d: not monotonic (previous %d)", total, pct, px, prev)
			}
			prev = px

			exact := new(big.Int).Div(new(big.Int).Mul(big.NewInt(int64(total)), big.NewInt(int64(pct))), big.NewInt(100)).Int64()
			if d := exact - int64(px); d < 0 || d > int64(total/100) {
				t.Fatalf("PercentToPixels(%d, %d) = %d: differs from exact result %d by more than %d", total, pct, px, exact, total/100)
			}
		}
		if px := PercentToPixels(total, 0); px != 0 {
			t.Errorf("PercentToPixels(%d, 0): expected 0, got %d", total, px)
		}
		if px := PercentToPixels(total, 100); px != total {
			t.Errorf("PercentToPixels(%d, 100): expected %d, got %d", total, total, px)
		}
	}
}

func TestBarBounds(t *testing.T) {
	screen := image.Rect(0, 0, 1920, 1080)
	for _, tc := range []struct {
		edge   Edge
		bounds image.Rectangle
	}{
		{EdgeTop, image.Rect(0, 0, 1920, 4)},
		{EdgeBottom, image.Rect(0, 1076, 1920, 1080)},
		{EdgeLeft, image.Rect(0, 0, 4, 1080)},
		{EdgeRight, image.Rect(1916, 0, 1920, 1080)},
	} {
		if r := BarBounds(screen, tc.edge, 4); r != tc.bounds {
			t.Errorf("%s: expected %v, got %v", tc.edge, tc.bounds, r)
		}
	}
}

func TestSplitBar(t *testing.T) {
	for _, tc := range []struct {
		size   image.Point
		edge   Edge
		pct    int
		filled image.Rectangle
		rest   image.Rectangle
	}{
		{image.Pt(1920, 4), EdgeBottom, 50, image.Rect(0, 0, 960, 4), image.Rect(960, 0, 1920, 4)},
		{image.Pt(1920, 4), EdgeTop, 0, image.Rect(0, 0, 0, 4), image.Rect(0, 0, 1920, 4)},
		{image.Pt(2, 1000), EdgeLeft, 10, image.Rect(0, 900, 2, 1000), image.Rect(0, 0, 2, 900)},
		{image.Pt(2, 1000), EdgeRight, 100, image.Rect(0, 0, 2, 1000), image.Rect(0, 0, 2, 0)},
	} {
		filled, rest := SplitBar(tc.size, tc.edge, tc.pct)
		if filled != tc.filled || rest != tc.rest {
			t.Errorf("%s %v %d%%: expected %v %v, got %v %v", tc.edge, tc.size, tc.pct, tc.filled, tc.rest, filled, rest)
		}
	}
}

func TestPopupBounds(t *testing.T) {
	for _, tc := range []struct {
		name    string
		screen  image.Rectangle
		content image.Point
		bounds  image.Rectangle
	}{
		{"centered", image.Rect(0, 0, 1920, 1080), image.Pt(296, 26), image.Rect(810, 525, 1110, 555)},
		{"too wide", image.Rect(0, 0, 200, 100), image.Pt(500, 20), image.Rect(1, 38, 199, 62)},
		{"too tall", image.Rect(0, 0, 200, 10), image.Pt(20, 50), image.Rect(88, 1, 112, 9)},
		{"tiny screen", image.Rect(0, 0, 1, 1), image.Pt(20, 20), image.Rect(0, 0, 1, 1)},
		{"offset screen", image.Rect(100, 100, 300, 200), image.Pt(16, 16), image.Rect(190, 140, 210, 160)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := PopupBounds(tc.screen, tc.content, image.Pt(2, 2))
			if r != tc.bounds {
				t.Errorf("expected %v, got %v", tc.bounds, r)
			}
			if r.Min.X < tc.screen.Min.X || r.Min.Y < tc.screen.Min.Y {
				t.Errorf("negative origin %v", r.Min)
			}
		})
	}
}

func TestEdgeHorizontalExhaustive(t *testing.T) {
	for _, e := range []Edge{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom} {
		p, err := ParseEdge(e.String())
		if err != nil || p != e {
			t.Errorf("ParseEdge(%q): expected %v, got %v %v", e.String(), e, p, err)
		}
		_ = e.Horizontal()
	}
	if _, err := ParseEdge("middle"); err == nil {
		t.Errorf("expected error for invalid edge")
	}
}
