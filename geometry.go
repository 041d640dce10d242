package pixelbatt

import (
	"image"
	"math"
)

// PercentToPixels returns the number of pixels of total corresponding to pct,
// rounded down. The percentage is clamped to [0, 100].
//
// Screens can be very large, so this must not overflow for any total up to
// math.MaxInt32 even when only 32-bit arithmetic is available. Below the
// crossover point (total <= math.MaxInt32/100), total*pct fits in 32 bits and
// the exact result is computed with a wide multiply. Above it, the total is
// divided by 100 first, which drops the sub-percent part of total; the
// remainder term (total%100)*pct is at most 99*100 and is added back
// separately, so both branches return the same value and pct=100 always maps
// to total.
func PercentToPixels(total, pct int) int {
	if total <= 0 {
		return 0
	}
	pct = clamp(pct, 0, 100)
	if total > math.MaxInt32/100 {
		return (total/100)*pct + (total%100)*pct/100
	}
	return int(int64(total) * int64(pct) / 100)
}

// BarBounds returns the rectangle occupied by a bar of the specified thickness
// on the edge of a screen with the specified bounds.
func BarBounds(screen image.Rectangle, edge Edge, thickness int) image.Rectangle {
	switch edge {
	case EdgeTop:
		return image.Rect(screen.Min.X, screen.Min.Y, screen.Max.X, screen.Min.Y+thickness)
	case EdgeBottom:
		return image.Rect(screen.Min.X, screen.Max.Y-thickness, screen.Max.X, screen.Max.Y)
	case EdgeLeft:
		return image.Rect(screen.Min.X, screen.Min.Y, screen.Min.X+thickness, screen.Max.Y)
	case EdgeRight:
		return image.Rect(screen.Max.X-thickness, screen.Min.Y, screen.Max.X, screen.Max.Y)
	}
	panic("pixelbatt: invalid edge " + edge.String())
}

// SplitBar splits a bar of the specified size (in surface coordinates) into
// the filled region for pct and the remaining region. Horizontal bars fill
// from the left, and vertical bars fill from the bottom.
func SplitBar(size image.Point, edge Edge, pct int) (filled, rest image.Rectangle) {
	if edge.Horizontal() {
		p := PercentToPixels(size.X, pct)
		filled = image.Rect(0, 0, p, size.Y)
		rest = image.Rect(p, 0, size.X, size.Y)
	} else {
		p := PercentToPixels(size.Y, pct)
		filled = image.Rect(0, size.Y-p, size.X, size.Y)
		rest = image.Rect(0, 0, size.X, size.Y-p)
	}
	return
}

// PopupBounds returns the bounds of a popup centered on the screen with
// content of the specified size plus pad on each side. The popup is clamped to
// at most the screen size minus two pixels in each dimension.
func PopupBounds(screen image.Rectangle, content, pad image.Point) image.Rectangle {
	w := clamp(content.X+2*pad.X, 1, max(screen.Dx()-2, 1))
	h := clamp(content.Y+2*pad.Y, 1, max(screen.Dy()-2, 1))
	x := max((screen.Dx()-w)/2, 0)
	y := max((screen.Dy()-h)/2, 0)
	return image.Rect(x, y, x+w, y+h).Add(screen.Min)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
