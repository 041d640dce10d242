package pixelbatt

import (
	"image"

	"golang.org/x/image/font"
)

type fakeFill struct {
	Rect  image.Rectangle
	Color Color
}

type fakeDisplay struct {
	bounds    image.Rectangle
	events    chan []Event
	errs      chan error
	surfaces  []*fakeSurface
	createErr error
	flushes   int
	closed    int
}

func newFakeDisplay(w, h int) *fakeDisplay {
	return &fakeDisplay{
		bounds: image.Rect(0, 0, w, h),
		events: make(chan []Event, 16),
		errs:   make(chan error, 1),
	}
}

func (d *fakeDisplay) Bounds() image.Rectangle {
	return d.bounds
}

func (d *fakeDisplay) CreateSurface(opt SurfaceOptions) (Surface, error) {
	if d.createErr != nil {
		return nil, d.createErr
	}
	s := &fakeSurface{opt: opt, bounds: opt.Bounds}
	d.surfaces = append(d.surfaces, s)
	return s, nil
}

func (d *fakeDisplay) Events() <-chan []Event {
	return d.events
}

func (d *fakeDisplay) Err() <-chan error {
	return d.errs
}

func (d *fakeDisplay) Flush() error {
	d.flushes++
	return nil
}

func (d *fakeDisplay) Close() error {
	d.closed++
	return nil
}

// surface returns the surface with the specified name, or nil.
func (d *fakeDisplay) surface(name string) *fakeSurface {
	for _, s := range d.surfaces {
		if s.opt.Name == name {
			return s
		}
	}
	return nil
}

type fakeSurface struct {
	opt       SurfaceOptions
	bounds    image.Rectangle
	mapped    bool
	maps      int
	unmaps    int
	raises    int
	moves     int
	destroyed int
	fills     []fakeFill
	texts     []string
}

func (s *fakeSurface) Fill(r image.Rectangle, c Color) {
	s.fills = append(s.fills, fakeFill{r, c})
}

// lastFills returns the last n fills.
func (s *fakeSurface) lastFills(n int) []fakeFill {
	if len(s.fills) < n {
		return nil
	}
	return s.fills[len(s.fills)-n:]
}

func (s *fakeSurface) SetBounds(r image.Rectangle) error {
	s.bounds = r
	s.moves++
	return nil
}

func (s *fakeSurface) Map(raise bool) error {
	s.mapped = true
	s.maps++
	if raise {
		s.raises++
	}
	return nil
}

func (s *fakeSurface) Unmap() error {
	s.mapped = false
	s.unmaps++
	return nil
}

func (s *fakeSurface) Raise() error {
	s.raises++
	return nil
}

func (s *fakeSurface) DrawText(face font.Face, dot image.Point, text string, fg, bg Color) error {
	s.texts = append(s.texts, text)
	return nil
}

func (s *fakeSurface) Destroy() error {
	s.destroyed++
	return nil
}
