/*
Package atlas materialises packing results: it composites the RGBA
texture atlas and writes the binary metadata file describing fonts,
rasterisation modes and glyph positions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package atlas

import (
	"image"

	"github.com/npillmayer/bakefont/pack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bakefont.atlas'.
func tracer() tracing.Trace {
	return tracing.Select("bakefont.atlas")
}

// Image composites the texture atlas. The four 8-bit channels R, G, B
// and A are independent greyscale sub-atlases; every placed glyph's
// bitmap is painted into the channel selected by its z coordinate.
// Image is a pure function of the packing result.
func Image(res *pack.Result) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, res.Width, res.Height))
	for _, g := range res.Glyphs {
		if g.Bitmap == nil {
			continue
		}
		for y := 0; y < g.H; y++ {
			row := img.Pix[(g.Y+y)*img.Stride:]
			for x := 0; x < g.W; x++ {
				row[(g.X+x)*4+g.Z] = g.Bitmap[y*g.W+x]
			}
		}
	}
	return img
}
