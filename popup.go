package pixelbatt

import (
	"image"

	"github.com/pgaskin/pixelbatt/internal/logutil"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
)

// popupPad is the space between the text and the popup border.
var popupPad = image.Pt(2, 2)

// PopupController shows the current power state in a popup in the middle of
// the screen. The popup surface is created on the first Show and reused
// afterwards, and the font is opened once.
type PopupController struct {
	display Display
	font    string
	open    func(string) (font.Face, error)
	log     logrus.FieldLogger

	face    font.Face
	surface Surface
	bounds  image.Rectangle
	shown   bool
	text    string
}

// NewPopupController creates a hidden popup using the font descriptor fontDesc
// (see LoadFont).
func NewPopupController(d Display, fontDesc string, log logrus.FieldLogger) *PopupController {
	return &PopupController{
		display: d,
		font:    fontDesc,
		open:    LoadFont,
		log:     logutil.OrDiscard(log),
	}
}

// Shown returns true if the popup is currently visible.
func (p *PopupController) Shown() bool {
	return p.shown
}

// Text returns the text last shown in the popup.
func (p *PopupController) Text() string {
	return p.text
}

// Show shows the popup (or refreshes it if it is already shown) with the
// message for s. Failing to open the font is fatal.
func (p *PopupController) Show(s *RenderState) error {
	if p.face == nil {
		face, err := p.open(p.font)
		if err != nil {
			return platformErr("open font", p.font, err)
		}
		p.face = face
	}

	text := s.Message()
	metrics := p.face.Metrics()
	content := image.Pt(font.MeasureString(p.face, text).Ceil(), (metrics.Ascent + metrics.Descent).Ceil())
	bounds := PopupBounds(s.Screen, content, popupPad)

	if p.surface == nil {
		sf, err := p.display.CreateSurface(SurfaceOptions{
			Name:        "pixelbatt-popup",
			Bounds:      bounds,
			Background:  Black,
			Border:      Magenta,
			BorderWidth: 1,
			StayOnTop:   true,
		})
		if err != nil {
			return platformErr("create surface", "popup", err)
		}
		p.surface = sf
	} else if bounds != p.bounds {
		if err := p.surface.SetBounds(bounds); err != nil {
			return platformErr("move surface", "popup", err)
		}
	}
	p.bounds = bounds

	if err := p.surface.Map(true); err != nil {
		return platformErr("map surface", "popup", err)
	}
	if err := p.surface.DrawText(p.face, popupPad.Add(image.Pt(0, metrics.Ascent.Ceil())), text, Green, Black); err != nil {
		return platformErr("draw text", "popup", err)
	}
	if !p.shown || p.text != text {
		p.log.WithField("text", text).Debug("popup: show")
	}
	p.shown, p.text = true, text
	return nil
}

// Hide hides the popup. It does nothing if the popup is already hidden.
func (p *PopupController) Hide() error {
	if !p.shown {
		return nil
	}
	if err := p.surface.Unmap(); err != nil {
		return platformErr("unmap surface", "popup", err)
	}
	p.shown = false
	p.log.Debug("popup: hide")
	return nil
}

// Close releases the popup surface and the font, if they were allocated.
func (p *PopupController) Close() error {
	var err error
	if p.surface != nil {
		if e := p.surface.Destroy(); e != nil {
			err = platformErr("destroy surface", "popup", e)
		}
		p.surface = nil
	}
	if p.face != nil {
		if e := p.face.Close(); e != nil && err == nil {
			err = platformErr("close font", p.font, e)
		}
		p.face = nil
	}
	p.shown = false
	return err
}
