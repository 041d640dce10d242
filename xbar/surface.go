package xbar

import (
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/pgaskin/pixelbatt"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type surface struct {
	d      *Display
	win    xproto.Window
	bounds image.Rectangle
}

// CreateSurface creates an unmapped override-redirect window. Window manager
// hints are set, but most window managers ignore override-redirect windows
// anyways.
func (d *Display) CreateSurface(opt pixelbatt.SurfaceOptions) (pixelbatt.Surface, error) {
	if opt.Bounds.Empty() {
		return nil, errors.Errorf("invalid bounds %s", opt.Bounds)
	}

	win, err := xproto.NewWindowId(d.conn)
	if err != nil {
		return nil, errors.Wrap(err, "allocate window")
	}

	var mask uint32 = xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwBackingStore | xproto.CwOverrideRedirect | xproto.CwColormap
	values := []uint32{d.pixel[opt.Background], d.pixel[opt.Border], xproto.BackingStoreWhenMapped, 1}
	if opt.Events {
		mask |= xproto.CwEventMask
		values = append(values, xproto.EventMaskExposure|xproto.EventMaskEnterWindow|xproto.EventMaskLeaveWindow|xproto.EventMaskVisibilityChange)
	}
	values = append(values, uint32(d.screen.DefaultColormap))

	if err := xproto.CreateWindowChecked(
		d.conn,
		d.screen.RootDepth, win, d.screen.Root,
		int16(opt.Bounds.Min.X), int16(opt.Bounds.Min.Y),
		uint16(opt.Bounds.Dx()), uint16(opt.Bounds.Dy()),
		uint16(opt.BorderWidth),
		xproto.WindowClassInputOutput, d.screen.RootVisual,
		mask, values,
	).Check(); err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	s := &surface{d: d, win: win, bounds: opt.Bounds}

	if err := s.setHints(opt); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *surface) setHints(opt pixelbatt.SurfaceOptions) error {
	xu := s.d.xu
	if err := icccm.WmNameSet(xu, s.win, opt.Name); err != nil {
		return errors.Wrap(err, "set WM_NAME")
	}
	if err := ewmh.WmNameSet(xu, s.win, opt.Name); err != nil {
		return errors.Wrap(err, "set _NET_WM_NAME")
	}
	if err := icccm.WmClassSet(xu, s.win, &icccm.WmClass{
		Instance: opt.Name,
		Class:    "pixelbatt",
	}); err != nil {
		return errors.Wrap(err, "set WM_CLASS")
	}
	if err := ewmh.WmWindowTypeSet(xu, s.win, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		return errors.Wrap(err, "set _NET_WM_WINDOW_TYPE")
	}
	if opt.StayOnTop {
		if err := ewmh.WmStateSet(xu, s.win, []string{"_NET_WM_STATE_STICKY", "_NET_WM_STATE_ABOVE"}); err != nil {
			return errors.Wrap(err, "set _NET_WM_STATE")
		}
	}
	return nil
}

func (s *surface) Fill(r image.Rectangle, c pixelbatt.Color) {
	r = r.Intersect(image.Rectangle{Max: s.bounds.Size()})
	if r.Empty() {
		return
	}
	// errors are reported asynchronously
	xproto.PolyFillRectangle(s.d.conn, xproto.Drawable(s.win), s.d.gc[c], []xproto.Rectangle{{
		X:      int16(r.Min.X),
		Y:      int16(r.Min.Y),
		Width:  uint16(r.Dx()),
		Height: uint16(r.Dy()),
	}})
}

func (s *surface) SetBounds(r image.Rectangle) error {
	if r.Empty() {
		return errors.Errorf("invalid bounds %s", r)
	}
	if err := xproto.ConfigureWindowChecked(s.d.conn, s.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(r.Min.X)), uint32(int32(r.Min.Y)), uint32(r.Dx()), uint32(r.Dy())},
	).Check(); err != nil {
		return errors.Wrap(err, "configure window")
	}
	s.bounds = r
	return nil
}

func (s *surface) Map(raise bool) error {
	if err := xproto.MapWindowChecked(s.d.conn, s.win).Check(); err != nil {
		return errors.Wrap(err, "map window")
	}
	if raise {
		return s.Raise()
	}
	return nil
}

func (s *surface) Unmap() error {
	if err := xproto.UnmapWindowChecked(s.d.conn, s.win).Check(); err != nil {
		return errors.Wrap(err, "unmap window")
	}
	return nil
}

func (s *surface) Raise() error {
	if err := xproto.ConfigureWindowChecked(s.d.conn, s.win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check(); err != nil {
		return errors.Wrap(err, "raise window")
	}
	return nil
}

// DrawText replaces the contents of the surface with text drawn in fg on bg.
// The text is not antialiased since only palette colors can be used.
func (s *surface) DrawText(face font.Face, dot image.Point, text string, fg, bg pixelbatt.Color) error {
	size := s.bounds.Size()
	mask := image.NewAlpha(image.Rectangle{Max: size})
	(&font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}).DrawString(text)

	data, err := s.d.format.encode(mask, s.d.pixel[fg], s.d.pixel[bg])
	if err != nil {
		return err
	}
	stride := s.d.format.stride(size.X)
	for _, b := range bands(size.Y, stride, s.d.maxReq-putImageHeader) {
		if err := xproto.PutImageChecked(s.d.conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.win), s.d.gc[bg],
			uint16(size.X), uint16(b[1]-b[0]), 0, int16(b[0]), 0, s.d.format.depth,
			data[b[0]*stride:b[1]*stride],
		).Check(); err != nil {
			return errors.Wrap(err, "put image")
		}
	}
	return nil
}

func (s *surface) Destroy() error {
	if s.win == 0 {
		return nil
	}
	err := xproto.DestroyWindowChecked(s.d.conn, s.win).Check()
	s.win = 0
	if err != nil {
		return errors.Wrap(err, "destroy window")
	}
	return nil
}
