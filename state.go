package pixelbatt

import (
	"fmt"
	"image"

	"github.com/pgaskin/pixelbatt/power"
)

// Color bands. While discharging, the drained part of the bar turns from
// caution to alert below alertPercent. While charging, it turns from caution
// to full at fullPercent.
const (
	alertPercent = 25
	fullPercent  = 75
)

// RenderState holds the facts the bar is drawn from.
type RenderState struct {
	Edge      Edge
	Thickness int
	Screen    image.Rectangle
	Snapshot  power.Snapshot

	fill Color
	rest Color
}

// NewRenderState creates a RenderState for a bar on the specified edge of
// screen. The thickness must already be clamped to the screen.
func NewRenderState(screen image.Rectangle, edge Edge, thickness int) *RenderState {
	s := &RenderState{
		Edge:      edge,
		Thickness: thickness,
		Screen:    screen,
	}
	s.Update(power.Snapshot{})
	return s
}

// Update replaces the current snapshot, clamping the percentage, and
// recomputes the colors.
func (s *RenderState) Update(snap power.Snapshot) {
	snap.Percent = clamp(snap.Percent, 0, 100)
	snap.MinutesRemaining = max(snap.MinutesRemaining, 0)
	s.Snapshot = snap
	s.fill, s.rest = bandColors(snap)
}

func bandColors(snap power.Snapshot) (fill, rest Color) {
	switch {
	case !snap.Valid:
		return Blue, Blue
	case snap.OnAC:
		if snap.Percent < fullPercent {
			return Green, Yellow
		}
		return Green, Olive
	default:
		if snap.Percent < alertPercent {
			return Magenta, Red
		}
		return Magenta, Yellow
	}
}

// Colors returns the colors of the filled and remaining parts of the bar.
func (s *RenderState) Colors() (fill, rest Color) {
	return s.fill, s.rest
}

// Bounds returns the bounds of the bar on the screen.
func (s *RenderState) Bounds() image.Rectangle {
	return BarBounds(s.Screen, s.Edge, s.Thickness)
}

// Redraw paints the bar. It is idempotent.
func (s *RenderState) Redraw(p Painter) {
	filled, rest := SplitBar(s.Bounds().Size(), s.Edge, s.Snapshot.Percent)
	p.Fill(filled, s.fill)
	p.Fill(rest, s.rest)
}

// ShouldHide returns true if the bar should be hidden according to the
// specified threshold. A threshold of zero never hides the bar.
func (s *RenderState) ShouldHide(threshold int) bool {
	return threshold > 0 && s.Snapshot.Valid && s.Snapshot.OnAC && s.Snapshot.Percent > threshold
}

// LowBattery returns true if the battery is discharging at or below the
// specified threshold.
func (s *RenderState) LowBattery(threshold int) bool {
	return s.Snapshot.Valid && !s.Snapshot.OnAC && s.Snapshot.Percent <= threshold
}

// Message returns the popup text.
func (s *RenderState) Message() string {
	if !s.Snapshot.Valid {
		return "No battery"
	}
	state := "Discharging"
	if s.Snapshot.OnAC {
		state = "Charging"
	}
	if m := s.Snapshot.MinutesRemaining; m > 0 {
		return fmt.Sprintf("%s: %d%% - %d minutes", state, s.Snapshot.Percent, m)
	}
	return fmt.Sprintf("%s: %d%%", state, s.Snapshot.Percent)
}
