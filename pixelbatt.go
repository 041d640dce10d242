// Package pixelbatt draws a thin battery bar along one edge of the screen. The
// filled proportion and colors of the bar show the remaining charge and whether
// the machine is on AC power, and a small popup shows the exact numbers when
// the pointer hovers over the bar or the battery is low.
//
// The package contains the event loop and the derived visual state. The
// display server and the power state source are behind the Display and
// power.Sampler interfaces; see the xbar and power packages.
package pixelbatt

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
)

// Edge is the screen edge the bar is placed on.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// ParseEdge parses the name of an edge.
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "left":
		return EdgeLeft, nil
	case "right":
		return EdgeRight, nil
	case "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	}
	return 0, errors.Errorf("invalid edge %q (must be top, bottom, left, or right)", s)
}

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// Horizontal returns true if the bar runs along the width of the screen (i.e.,
// it fills left-to-right). Vertical bars fill bottom-to-top.
func (e Edge) Horizontal() bool {
	switch e {
	case EdgeTop, EdgeBottom:
		return true
	case EdgeLeft, EdgeRight:
		return false
	}
	panic("pixelbatt: invalid edge " + e.String())
}

// Color is a color from the fixed palette allocated on the display.
type Color int

const (
	Black Color = iota
	Magenta
	Green
	Yellow
	Red
	Blue
	Olive

	numColors
)

// Palette contains every color which must be allocated by a Display.
var Palette = [numColors]Color{Black, Magenta, Green, Yellow, Red, Blue, Olive}

// Name returns the X11 color name.
func (c Color) Name() string {
	switch c {
	case Black:
		return "black"
	case Magenta:
		return "magenta"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Olive:
		return "olive drab"
	}
	return ""
}

func (c Color) String() string {
	if n := c.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// EventKind is the kind of a display event. Only these four kinds are selected
// on the bar surface.
type EventKind int

const (
	EventExpose EventKind = iota
	EventPointerEnter
	EventPointerLeave
	EventVisibilityChange
)

func (k EventKind) String() string {
	switch k {
	case EventExpose:
		return "expose"
	case EventPointerEnter:
		return "pointer-enter"
	case EventPointerLeave:
		return "pointer-leave"
	case EventVisibilityChange:
		return "visibility-change"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is an event received on the bar surface.
type Event struct {
	Kind EventKind
}

// Painter fills rectangles on a surface. Drawing is assumed to always succeed
// once the surface exists.
type Painter interface {
	Fill(r image.Rectangle, c Color)
}

// Surface is a native undecorated window.
type Surface interface {
	Painter

	// SetBounds moves and resizes the surface.
	SetBounds(r image.Rectangle) error

	// Map shows the surface, raising it to the top of the stack if raise is
	// true.
	Map(raise bool) error

	// Unmap hides the surface without destroying it.
	Unmap() error

	// Raise raises the surface to the top of the stack.
	Raise() error

	// DrawText replaces the contents of the surface with bg and draws text in
	// fg with the baseline origin at dot.
	DrawText(face font.Face, dot image.Point, text string, fg, bg Color) error

	// Destroy releases the surface. It must not be used afterwards.
	Destroy() error
}

// SurfaceOptions configures a new Surface.
type SurfaceOptions struct {
	Name        string
	Bounds      image.Rectangle
	Background  Color
	Border      Color
	BorderWidth int
	StayOnTop   bool

	// Events selects expose, pointer-enter, pointer-leave, and
	// visibility-change events on the surface.
	Events bool
}

// Display is a connection to a display server.
type Display interface {
	// Bounds returns the pixel extent of the screen.
	Bounds() image.Rectangle

	// CreateSurface creates a new unmapped surface.
	CreateSurface(opt SurfaceOptions) (Surface, error)

	// Events returns batches of events in arrival order. Each batch contains
	// every event which was pending when the batch was read.
	Events() <-chan []Event

	// Err returns a channel which receives a fatal connection error.
	Err() <-chan error

	// Flush sends all buffered requests to the display server.
	Flush() error

	// Close closes the connection.
	Close() error
}
