/*
Package render rasterises character sets into greyscale glyph bitmaps.

A render task pairs a named font with a pixel size, a character set and
a rasterisation mode (antialiased or monochrome). Running the task
selects the size on the font and produces one glyph per code point,
carrying the bitmap and the typographic metrics the atlas writer emits.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package render

import (
	"image"

	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/bakefont/core/charset"
	"github.com/npillmayer/bakefont/core/fp26"
	"github.com/npillmayer/bakefont/core/font"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/runenames"
)

// tracer traces with key 'bakefont.render'.
func tracer() tracing.Trace {
	return tracing.Select("bakefont.render")
}

// Task describes one rasterisation run: a font at a pixel size over a
// character set. Valid sizes satisfy 1.0 < size < 255.0; fractional
// sizes are permitted and truncate to 1/64 pixel.
type Task struct {
	Font        *font.Font
	Size        float64
	Charset     charset.Set
	CharsetName string
	Antialias   bool
}

// Result is the outcome of a render task.
type Result struct {
	Font        *font.Font
	SizeFP      fp26.F26 // pixel size, 26.6
	Antialias   bool
	CharsetName string
	Glyphs      []*Glyph
}

// Metrics are the typographic glyph metrics, 26.6 fixed point, carried
// from the font engine.
type Metrics struct {
	HoriBearingX fp26.F26
	HoriBearingY fp26.F26
	HoriAdvance  fp26.F26
	VertBearingX fp26.F26
	VertBearingY fp26.F26
	VertAdvance  fp26.F26
}

// Glyph is one rasterised glyph. Width and height are zero if the font
// has no glyph for the code point, or the glyph has no visible ink;
// Bitmap is nil in that case. A Glyph is immutable after rendering.
type Glyph struct {
	Code       rune
	W, H       int
	Bitmap     []byte // row-major 8-bit greyscale, H rows of W bytes
	HasMetrics bool
	Metrics    Metrics
}

// Width returns the bitmap width in pixels.
func (g *Glyph) Width() int { return g.W }

// Height returns the bitmap height in pixels.
func (g *Glyph) Height() int { return g.H }

// errSize produces a user level error for an out-of-domain size.
func errSize(size float64) error {
	return core.Error(core.EINVALID, "font size must be 1.0 < size < 255.0, is %g", size)
}

// Run rasterises a task. The font's current pixel size is set to the
// task size before any glyph is loaded.
func Run(task Task) (*Result, error) {
	if task.Size <= 1.0 || task.Size >= 255.0 {
		return nil, errSize(task.Size)
	}
	sf := task.Font.Scalable
	if sf == nil || sf.SFNT == nil {
		return nil, core.Error(core.EINVALID, "font %s is not scalable", task.Font.Name)
	}
	px := fp26.FromFloat(task.Size)
	task.Font.SetSize(px)
	face, err := opentype.NewFace(sf.SFNT, &opentype.FaceOptions{
		Size:    px.Float(),
		DPI:     72, // at 72dpi, 1pt == 1px
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot scale font %s", task.Font.Name)
	}
	defer face.Close()
	result := &Result{
		Font:        task.Font,
		SizeFP:      px,
		Antialias:   task.Antialias,
		CharsetName: task.CharsetName,
	}
	lineHeight := face.Metrics().Height
	var buf sfnt.Buffer
	for _, r := range task.Charset.Sorted() {
		g, err := renderGlyph(sf, &buf, face, r, task.Antialias, lineHeight)
		if err != nil {
			return nil, err
		}
		result.Glyphs = append(result.Glyphs, g)
	}
	tracer().Infof("rendered %d glyphs for %s at %s", len(result.Glyphs),
		task.Font.Name, px)
	return result, nil
}

// renderGlyph rasterises a single code point. Code points absent from
// the font yield a zero-size glyph and a notice; they are not errors.
func renderGlyph(sf *font.ScalableFont, buf *sfnt.Buffer, face xfont.Face,
	r rune, antialias bool, lineHeight fixed.Int26_6) (*Glyph, error) {
	//
	idx, err := sf.SFNT.GlyphIndex(buf, r)
	if err != nil || idx == 0 {
		tracer().Infof("notice: no glyph in font at Unicode code point U+%04X (%s)",
			r, runenames.Name(r))
		return &Glyph{Code: r}, nil
	}
	dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, 0), r)
	if !ok {
		tracer().Infof("notice: no glyph in font at Unicode code point U+%04X (%s)",
			r, runenames.Name(r))
		return &Glyph{Code: r}, nil
	}
	bounds, advance, _ := face.GlyphBounds(r)
	g := &Glyph{
		Code:       r,
		HasMetrics: true,
		Metrics:    glyphMetrics(bounds, advance, lineHeight),
	}
	w, h := dr.Dx(), dr.Dy()
	if w == 0 || h == 0 { // no visible ink, e.g. a space
		return g, nil
	}
	if w > 255 || h > 255 {
		return nil, core.Error(core.EINVALID,
			"glyph U+%04X is %dx%d px, glyph records cap at 255", r, w, h)
	}
	bm := coverage(mask.(*image.Alpha), maskp, w, h, antialias)
	g.Bitmap, err = bm.gray()
	if err != nil {
		return nil, err
	}
	g.W, g.H = w, h
	return g, nil
}

// glyphMetrics converts engine values to the six written metrics.
// Vertical metrics are always synthesised the way FreeType does for
// fonts without vertical metric tables: the vertical advance is the line
// height, the glyph centered on it. Vertical tables are not read.
func glyphMetrics(bounds fixed.Rectangle26_6, advance, lineHeight fixed.Int26_6) Metrics {
	width := bounds.Max.X - bounds.Min.X
	height := bounds.Max.Y - bounds.Min.Y
	return Metrics{
		HoriBearingX: fp26.FromFixed(bounds.Min.X),
		HoriBearingY: fp26.FromFixed(-bounds.Min.Y),
		HoriAdvance:  fp26.FromFixed(advance),
		VertBearingX: fp26.FromFixed(-width / 2),
		VertBearingY: fp26.FromFixed((lineHeight - height) / 2),
		VertAdvance:  fp26.FromFixed(lineHeight),
	}
}
