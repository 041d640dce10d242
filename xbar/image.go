package xbar

import (
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/pkg/errors"
)

// putImageHeader is the size of a PutImage request without the data.
const putImageHeader = 24

// imageFormat describes how ZPixmap images are laid out by the server.
type imageFormat struct {
	depth byte
	bpp   int
	pad   int // scanline pad in bits
	order byte
}

func findFormat(setup *xproto.SetupInfo, depth byte) (imageFormat, error) {
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			format := imageFormat{
				depth: depth,
				bpp:   int(f.BitsPerPixel),
				pad:   int(f.ScanlinePad),
				order: setup.ImageByteOrder,
			}
			switch format.bpp {
			case 8, 16, 24, 32:
			default:
				return format, errors.Errorf("unsupported pixmap format: %d bits per pixel", format.bpp)
			}
			switch format.pad {
			case 8, 16, 32:
			default:
				return format, errors.Errorf("unsupported pixmap format: scanline pad %d", format.pad)
			}
			return format, nil
		}
	}
	return imageFormat{}, errors.Errorf("no pixmap format for depth %d", depth)
}

// stride returns the number of bytes in a row of width pixels.
func (f imageFormat) stride(width int) int {
	return (width*f.bpp + f.pad - 1) / f.pad * (f.pad / 8)
}

// encode converts mask to ZPixmap data, using fg for pixels at least half
// opaque, and bg for everything else.
func (f imageFormat) encode(mask *image.Alpha, fg, bg uint32) ([]byte, error) {
	if f.bpp%8 != 0 || f.bpp == 0 || f.bpp > 32 {
		return nil, errors.Errorf("unsupported pixmap format: %d bits per pixel", f.bpp)
	}
	var (
		r      = mask.Bounds()
		bypp   = f.bpp / 8
		stride = f.stride(r.Dx())
		buf    = make([]byte, stride*r.Dy())
	)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := buf[(y-r.Min.Y)*stride:]
		for x := r.Min.X; x < r.Max.X; x++ {
			px := bg
			if mask.AlphaAt(x, y).A >= 0x80 {
				px = fg
			}
			b := row[(x-r.Min.X)*bypp:][:bypp]
			for i := range b {
				if f.order == xproto.ImageOrderLSBFirst {
					b[i] = byte(px >> (8 * i))
				} else {
					b[i] = byte(px >> (8 * (bypp - 1 - i)))
				}
			}
		}
	}
	return buf, nil
}

// bands splits height rows of stride bytes into ranges of rows which each fit
// in limit bytes. At least one row is always included in a band.
func bands(height, stride, limit int) [][2]int {
	n := 1
	if stride > 0 && limit > stride {
		n = limit / stride
	}
	var bs [][2]int
	for y := 0; y < height; y += n {
		bs = append(bs, [2]int{y, min(y+n, height)})
	}
	return bs
}
