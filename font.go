package pixelbatt

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFont is the default font descriptor.
const DefaultFont = "monospace:bold:size=18"

// FontSpec is a parsed fontconfig-style font descriptor, like
// "monospace:bold:size=18" or "sans-12:italic".
type FontSpec struct {
	Family    string
	Bold      bool
	Italic    bool
	Medium    bool
	Size      float64 // points at 96 DPI
	PixelSize float64 // overrides Size if nonzero
}

// ParseFontDescriptor parses a font descriptor. Unknown properties are
// ignored.
func ParseFontDescriptor(desc string) (FontSpec, error) {
	spec := FontSpec{Size: 12}
	parts := strings.Split(desc, ":")
	spec.Family = strings.TrimSpace(parts[0])
	if i := strings.LastIndexByte(spec.Family, '-'); i > 0 {
		if v, err := strconv.ParseFloat(spec.Family[i+1:], 64); err == nil {
			spec.Family, spec.Size = spec.Family[:i], v
		}
	}
	if spec.Family == "" {
		return spec, errors.Errorf("missing font family in %q", desc)
	}
	for _, prop := range parts[1:] {
		k, v, ok := strings.Cut(strings.ToLower(strings.TrimSpace(prop)), "=")
		if !ok {
			k, v = "style", k
		}
		switch k {
		case "style", "weight", "slant":
			for _, s := range strings.Fields(v) {
				switch s {
				case "bold":
					spec.Bold = true
				case "italic", "oblique":
					spec.Italic = true
				case "medium":
					spec.Medium = true
				}
			}
		case "size", "pixelsize":
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 {
				return spec, errors.Errorf("invalid font %s %q", k, v)
			}
			if k == "size" {
				spec.Size = f
			} else {
				spec.PixelSize = f
			}
		}
	}
	return spec, nil
}

// LoadFont opens the font for a descriptor. The generic monospace and sans
// families use the Go fonts, and a family containing a slash is loaded from a
// TrueType or OpenType file. Any other family is an error, since there is no
// fallback.
func LoadFont(desc string) (font.Face, error) {
	spec, err := ParseFontDescriptor(desc)
	if err != nil {
		return nil, err
	}
	buf, err := spec.data()
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(buf)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	opt := &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     96,
		Hinting: font.HintingFull,
	}
	if spec.PixelSize != 0 {
		opt.Size, opt.DPI = spec.PixelSize, 72
	}
	face, err := opentype.NewFace(f, opt)
	if err != nil {
		return nil, errors.Wrap(err, "create font face")
	}
	return face, nil
}

func (s FontSpec) data() ([]byte, error) {
	if strings.ContainsRune(s.Family, '/') {
		buf, err := os.ReadFile(s.Family)
		if err != nil {
			return nil, errors.Wrap(err, "read font")
		}
		return buf, nil
	}
	switch strings.ToLower(s.Family) {
	case "monospace", "mono", "go mono":
		switch {
		case s.Bold && s.Italic:
			return gomonobolditalic.TTF, nil
		case s.Bold:
			return gomonobold.TTF, nil
		case s.Italic:
			return gomonoitalic.TTF, nil
		default:
			return gomono.TTF, nil
		}
	case "sans", "sans-serif", "go":
		switch {
		case s.Bold && s.Italic:
			return gobolditalic.TTF, nil
		case s.Bold:
			return gobold.TTF, nil
		case s.Medium && s.Italic:
			return gomediumitalic.TTF, nil
		case s.Medium:
			return gomedium.TTF, nil
		case s.Italic:
			return goitalic.TTF, nil
		default:
			return goregular.TTF, nil
		}
	}
	return nil, errors.Errorf("unknown font family %q", s.Family)
}
