package render

import (
	"image"

	"github.com/npillmayer/bakefont/core"
)

// bitmap is a raw engine bitmap: pitch bytes per row, either 8-bit
// greyscale or 1-bit packed MSB-first rows.
type bitmap struct {
	width, height int
	pitch         int // bytes per row; may exceed the pixel width
	mono          bool
	pix           []byte
}

// coverage captures the face's coverage mask for one glyph as an
// engine bitmap. In antialiased mode rows are 8-bit greyscale; in
// monochrome mode coverage is thresholded and rows are re-packed
// 1-bit MSB-first, the layout FreeType delivers for mono rendering.
// The mask's backing store is reused by the face between glyphs, so
// rows are always copied out.
func coverage(alpha *image.Alpha, maskp image.Point, w, h int, antialias bool) *bitmap {
	if antialias {
		bm := &bitmap{width: w, height: h, pitch: w}
		bm.pix = make([]byte, h*w)
		for y := 0; y < h; y++ {
			src := alpha.Pix[(maskp.Y+y)*alpha.Stride+maskp.X:]
			copy(bm.pix[y*w:(y+1)*w], src[:w])
		}
		return bm
	}
	pitch := (w + 7) / 8
	bm := &bitmap{width: w, height: h, pitch: pitch, mono: true}
	bm.pix = make([]byte, h*pitch)
	for y := 0; y < h; y++ {
		src := alpha.Pix[(maskp.Y+y)*alpha.Stride+maskp.X:]
		for x := 0; x < w; x++ {
			if src[x] >= 0x80 {
				bm.pix[y*pitch+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return bm
}

// gray decodes an engine bitmap into a tightly packed row-major 8-bit
// greyscale buffer of height × width bytes. Monochrome rows unpack
// MSB-first, each set bit to 255.
func (bm *bitmap) gray() ([]byte, error) {
	if bm.pitch < 0 {
		// FreeType flips such bitmaps bottom-up
		return nil, core.Error(core.EINTERNAL,
			"negative bitmap pitch %d not implemented", bm.pitch)
	}
	if bm.width == 0 || bm.height == 0 {
		return nil, nil
	}
	dest := make([]byte, bm.width*bm.height)
	for y := 0; y < bm.height; y++ {
		row := bm.pix[y*bm.pitch:]
		if bm.mono {
			for x := 0; x < bm.width; x++ {
				if row[x/8]&(0x80>>(x%8)) != 0 {
					dest[y*bm.width+x] = 255
				}
			}
		} else {
			copy(dest[y*bm.width:(y+1)*bm.width], row[:bm.width])
		}
	}
	return dest, nil
}
