// Package xbar implements a pixelbatt.Display on an X11 server using
// override-redirect windows.
package xbar

import (
	"image"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/pgaskin/pixelbatt"
	"github.com/pgaskin/pixelbatt/internal/logutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Display is a connection to an X11 server with the palette allocated on the
// default colormap of the default screen. Events are read in another
// goroutine.
type Display struct {
	conn   *xgb.Conn
	xu     *xgbutil.XUtil
	screen *xproto.ScreenInfo
	format imageFormat
	maxReq int
	log    logrus.FieldLogger

	pixel [len(pixelbatt.Palette)]uint32
	gc    [len(pixelbatt.Palette)]xproto.Gcontext

	events chan []pixelbatt.Event
	errs   chan error
	done   chan struct{}
	closed bool
}

var _ pixelbatt.Display = (*Display)(nil)

// Open connects to display (empty for $DISPLAY) and allocates every color in
// the palette. Failing to allocate a color is an error. If log is not nil, it
// is used for warnings about failed requests.
func Open(display string, log logrus.FieldLogger) (*Display, error) {
	log = logutil.OrDiscard(log)

	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}

	d := &Display{
		conn:   conn,
		log:    log,
		events: make(chan []pixelbatt.Event, 16),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
	}

	setup := xproto.Setup(conn)
	d.screen = setup.DefaultScreen(conn)
	d.maxReq = int(setup.MaximumRequestLength) * 4

	if d.format, err = findFormat(setup, d.screen.RootDepth); err != nil {
		conn.Close()
		return nil, err
	}

	if d.xu, err = xgbutil.NewConnXgb(conn); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "initialize xgbutil")
	}

	for _, c := range pixelbatt.Palette {
		if err := d.allocColor(c); err != nil {
			d.Close()
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"display": display,
		"width":   d.screen.WidthInPixels,
		"height":  d.screen.HeightInPixels,
		"depth":   d.screen.RootDepth,
		"bpp":     d.format.bpp,
	}).Debug("x11: connected")

	go d.pump()
	return d, nil
}

func (d *Display) allocColor(c pixelbatt.Color) error {
	cmap := d.screen.DefaultColormap

	xl, err := xproto.LookupColor(d.conn, cmap, uint16(len(c.Name())), c.Name()).Reply()
	if err != nil {
		return errors.Wrapf(err, "look up color %q", c.Name())
	}
	xc, err := xproto.AllocColor(d.conn, cmap, xl.ExactRed, xl.ExactGreen, xl.ExactBlue).Reply()
	if err != nil {
		return errors.Wrapf(err, "allocate color %q", c.Name())
	}

	gc, err := xproto.NewGcontextId(d.conn)
	if err != nil {
		return errors.Wrapf(err, "allocate gc for color %q", c.Name())
	}
	if err := xproto.CreateGCChecked(d.conn, gc, xproto.Drawable(d.screen.Root), xproto.GcForeground|xproto.GcGraphicsExposures, []uint32{xc.Pixel, 0}).Check(); err != nil {
		return errors.Wrapf(err, "create gc for color %q", c.Name())
	}

	d.pixel[c], d.gc[c] = xc.Pixel, gc
	return nil
}

// Bounds returns the size of the default screen.
func (d *Display) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(d.screen.WidthInPixels), int(d.screen.HeightInPixels))
}

// Events returns batches of events on the surfaces created with event
// delivery enabled.
func (d *Display) Events() <-chan []pixelbatt.Event {
	return d.events
}

// Err returns the error which caused the connection to close.
func (d *Display) Err() <-chan error {
	return d.errs
}

// Flush waits for the server to process every request sent so far.
func (d *Display) Flush() error {
	if d.closed {
		return errors.New("display closed")
	}
	d.conn.Sync()
	return nil
}

// Close frees the palette and closes the connection. Surfaces should be
// destroyed first.
func (d *Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	close(d.done)
	for _, gc := range d.gc {
		if gc != 0 {
			xproto.FreeGC(d.conn, gc)
		}
	}
	d.conn.Close()
	return nil
}

// pump reads events until the connection is closed. Events which were read
// together are sent as one batch. Errors from unchecked requests are logged.
func (d *Display) pump() {
	for {
		ev, xerr := d.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			select {
			case d.errs <- errors.New("connection closed"):
			case <-d.done:
			}
			return
		}
		var batch []pixelbatt.Event
		for ev != nil || xerr != nil {
			if xerr != nil {
				d.log.WithError(xerr).Warn("x11: request failed")
			} else if e, ok := translateEvent(ev); ok {
				batch = append(batch, e)
			}
			ev, xerr = d.conn.PollForEvent()
		}
		if len(batch) != 0 {
			select {
			case d.events <- batch:
			case <-d.done:
				return
			}
		}
	}
}

func translateEvent(ev xgb.Event) (pixelbatt.Event, bool) {
	switch ev := ev.(type) {
	case xproto.ExposeEvent:
		if ev.Count == 0 {
			return pixelbatt.Event{Kind: pixelbatt.EventExpose}, true
		}
	case xproto.EnterNotifyEvent:
		return pixelbatt.Event{Kind: pixelbatt.EventPointerEnter}, true
	case xproto.LeaveNotifyEvent:
		return pixelbatt.Event{Kind: pixelbatt.EventPointerLeave}, true
	case xproto.VisibilityNotifyEvent:
		return pixelbatt.Event{Kind: pixelbatt.EventVisibilityChange}, true
	}
	return pixelbatt.Event{}, false
}
