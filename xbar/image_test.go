package xbar

import (
	"bytes"
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestFindFormat(t *testing.T) {
	setup := &xproto.SetupInfo{
		ImageByteOrder: xproto.ImageOrderMSBFirst,
		PixmapFormats: []xproto.Format{
			{Depth: 1, BitsPerPixel: 1, ScanlinePad: 32},
			{Depth: 24, BitsPerPixel: 32, ScanlinePad: 32},
			{Depth: 15, BitsPerPixel: 12, ScanlinePad: 32},
		},
	}
	if f, err := findFormat(setup, 24); err != nil {
		t.Errorf("unexpected error: %v", err)
	} else if f != (imageFormat{depth: 24, bpp: 32, pad: 32, order: xproto.ImageOrderMSBFirst}) {
		t.Errorf("unexpected format %+v", f)
	}
	if _, err := findFormat(setup, 15); err == nil {
		t.Errorf("expected error for 12 bits per pixel")
	}
	if _, err := findFormat(setup, 8); err == nil {
		t.Errorf("expected error for missing depth")
	}
}

func TestStride(t *testing.T) {
	for _, tc := range []struct {
		bpp, pad, width, stride int
	}{
		{32, 32, 3, 12},
		{24, 32, 3, 12},
		{24, 32, 4, 12},
		{24, 8, 3, 9},
		{16, 32, 3, 8},
		{16, 16, 3, 6},
		{8, 32, 5, 8},
		{8, 8, 5, 5},
	} {
		if act := (imageFormat{bpp: tc.bpp, pad: tc.pad}).stride(tc.width); act != tc.stride {
			t.Errorf("stride(bpp=%d, pad=%d, width=%d): expected %d, got %d", tc.bpp, tc.pad, tc.width, tc.stride, act)
		}
	}
}

func TestEncode(t *testing.T) {
	// 3x2, with the first and last pixel set
	mask := image.NewAlpha(image.Rect(0, 0, 3, 2))
	mask.SetAlpha(0, 0, color.Alpha{0xFF})
	mask.SetAlpha(1, 0, color.Alpha{0x7F})
	mask.SetAlpha(2, 1, color.Alpha{0x80})

	const fg, bg = 0x00A1B2C3, 0x00010203

	for _, tc := range []struct {
		name   string
		format imageFormat
		data   []byte
	}{
		{
			name:   "32/LSB",
			format: imageFormat{depth: 24, bpp: 32, pad: 32, order: xproto.ImageOrderLSBFirst},
			data: []byte{
				0xC3, 0xB2, 0xA1, 0x00, 0x03, 0x02, 0x01, 0x00, 0x03, 0x02, 0x01, 0x00,
				0x03, 0x02, 0x01, 0x00, 0x03, 0x02, 0x01, 0x00, 0xC3, 0xB2, 0xA1, 0x00,
			},
		},
		{
			name:   "32/MSB",
			format: imageFormat{depth: 24, bpp: 32, pad: 32, order: xproto.ImageOrderMSBFirst},
			data: []byte{
				0x00, 0xA1, 0xB2, 0xC3, 0x00, 0x01, 0x02, 0x03, 0x00, 0x01, 0x02, 0x03,
				0x00, 0x01, 0x02, 0x03, 0x00, 0x01, 0x02, 0x03, 0x00, 0xA1, 0xB2, 0xC3,
			},
		},
		{
			name:   "24/LSB/padded",
			format: imageFormat{depth: 24, bpp: 24, pad: 32, order: xproto.ImageOrderLSBFirst},
			data: []byte{
				0xC3, 0xB2, 0xA1, 0x03, 0x02, 0x01, 0x03, 0x02, 0x01, 0x00, 0x00, 0x00,
				0x03, 0x02, 0x01, 0x03, 0x02, 0x01, 0xC3, 0xB2, 0xA1, 0x00, 0x00, 0x00,
			},
		},
		{
			name:   "16/MSB",
			format: imageFormat{depth: 16, bpp: 16, pad: 16, order: xproto.ImageOrderMSBFirst},
			data: []byte{
				0xB2, 0xC3, 0x02, 0x03, 0x02, 0x03,
				0x02, 0x03, 0x02, 0x03, 0xB2, 0xC3,
			},
		},
		{
			name:   "8/padded",
			format: imageFormat{depth: 8, bpp: 8, pad: 32, order: xproto.ImageOrderLSBFirst},
			data: []byte{
				0xC3, 0x03, 0x03, 0x00,
				0x03, 0x03, 0xC3, 0x00,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.format.encode(mask, fg, bg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(data, tc.data) {
				t.Errorf("expected\n% X\ngot\n% X", tc.data, data)
			}
		})
	}

	if _, err := (imageFormat{bpp: 4, pad: 8}).encode(mask, fg, bg); err == nil {
		t.Errorf("expected error for 4 bits per pixel")
	}
}

func TestBands(t *testing.T) {
	for _, tc := range []struct {
		name                  string
		height, stride, limit int
		bands                 [][2]int
	}{
		{"fits", 10, 100, 1000, [][2]int{{0, 10}}},
		{"exact", 10, 100, 500, [][2]int{{0, 5}, {5, 10}}},
		{"uneven", 10, 100, 450, [][2]int{{0, 4}, {4, 8}, {8, 10}}},
		{"row too large", 3, 100, 50, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{"empty", 0, 100, 1000, nil},
		{"max request", 1080, 1920 * 4, 262140 - putImageHeader, [][2]int{{0, 34}, {34, 68}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			act := bands(tc.height, tc.stride, tc.limit)
			if tc.name == "max request" {
				// only check the start, and that everything is covered
				if len(act) < 2 || !slices.Equal(act[:2], tc.bands) || act[len(act)-1][1] != tc.height {
					t.Errorf("unexpected bands %v", act)
				}
				return
			}
			if !slices.Equal(act, tc.bands) {
				t.Errorf("expected %v, got %v", tc.bands, act)
			}
		})
	}
}
