/*
Package font is for typeface and font handling.

A scalable font is a vector font resource, parsed once and shared.
A Font is a scalable font under a caller-assigned name, together with
the currently selected rasterisation size. Names act as lookup keys in
baked output and must be unique within one bake.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"bytes"
	"io/ioutil"
	"strings"
	"sync"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/bakefont/core/fp26"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'bakefont.core'.
func tracer() tracing.Trace {
	return tracing.Select("bakefont.core")
}

// ScalableFont is a parsed scalable font resource.
type ScalableFont struct {
	Fontname string     // full font name, as recorded in the font file
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
	details  Details
}

// Details is a snapshot of per-font properties consumed by the atlas
// metadata writer. Dimensions are in font units; convert to pixels by
// multiplying with size/UnitsPerEm.
type Details struct {
	Family             string // family name, e.g. "Gentium Plus"
	UnitsPerEm         int32
	Height             int32 // line height (baseline distance)
	UnderlinePosition  int16 // center of the underline bar, relative to baseline
	UnderlineThickness int16
	Monospace          bool
	Kerning            bool
	Horizontal         bool
	Vertical           bool
}

// Details returns the font's property snapshot.
func (sf *ScalableFont) Details() Details {
	return sf.details
}

// Font is a scalable font under a bake-local name, carrying the
// currently selected rasterisation size. The size state is mutable and
// is set by the renderer before each task; a Font must not be shared
// between concurrent render tasks.
type Font struct {
	Name     string
	Scalable *ScalableFont
	size     fp26.F26 // currently selected pixel size
}

// NewFont names a scalable font for a bake.
func NewFont(name string, sf *ScalableFont) *Font {
	return &Font{Name: name, Scalable: sf}
}

// SetSize selects the current rasterisation pixel size.
// This mutates the font's internal state.
func (f *Font) SetSize(px fp26.F26) {
	f.size = px
}

// Size returns the currently selected pixel size.
func (f *Font) Size() fp26.F26 {
	return f.size
}

// LoadOpenTypeFont loads an OpenType or TrueType font from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := ioutil.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	sf, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	sf.Filepath = fontfile
	return sf, nil
}

// ParseOpenTypeFont parses an OpenType or TrueType font from memory.
// Fonts without scalable outlines are rejected.
func ParseOpenTypeFont(fbytes []byte) (*ScalableFont, error) {
	sf := &ScalableFont{Binary: fbytes}
	var err error
	sf.SFNT, err = sfnt.Parse(fbytes)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "unsupported font format")
	}
	sf.Fontname, _ = sf.SFNT.Name(nil, sfnt.NameIDFull)
	otf, err := hbtt.Parse(bytes.NewReader(fbytes), true)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "unsupported font format")
	}
	if !isScalable(otf) {
		return nil, core.Error(core.EINVALID, "font %s is not scalable", sf.Fontname)
	}
	sf.details = details(sf.SFNT, otf)
	tracer().Debugf("parsed font %s (%d units/em)", sf.Fontname, sf.details.UnitsPerEm)
	return sf, nil
}

func isScalable(otf *hbtt.Font) bool {
	return otf.HasTable(hbtt.MustNewTag("glyf")) ||
		otf.HasTable(hbtt.MustNewTag("CFF ")) ||
		otf.HasTable(hbtt.MustNewTag("CFF2"))
}

// details collects the writer-visible font properties. The sfnt parse
// covers naming and scaled metrics; the textlayout parse covers the
// post table and table presence, which the sfnt API does not expose.
func details(sf *sfnt.Font, otf *hbtt.Font) Details {
	d := Details{
		UnitsPerEm: int32(sf.UnitsPerEm()),
		Horizontal: otf.HasTable(hbtt.MustNewTag("hhea")),
		Vertical:   otf.HasTable(hbtt.MustNewTag("vhea")),
		Kerning: otf.HasTable(hbtt.MustNewTag("kern")) ||
			otf.HasTable(hbtt.MustNewTag("GPOS")),
	}
	d.Family, _ = sf.Name(nil, sfnt.NameIDFamily)
	// querying metrics at ppem = units/em yields font-unit values
	var buf sfnt.Buffer
	if m, err := sf.Metrics(&buf, fixed.Int26_6(sf.UnitsPerEm()), xfont.HintingNone); err == nil {
		d.Height = int32(m.Height)
	}
	if post, err := otf.PostTable(); err == nil {
		d.Monospace = post.IsFixedPitch
		d.UnderlinePosition = post.UnderlinePosition
		d.UnderlineThickness = post.UnderlineThickness
	}
	return d
}

// NormalizeFontname trims surrounding blanks from a font name, replaces
// inner blanks with underscores, strips the extension and lowercases it.
// Directory parts of a path are not removed.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
// Currently we use Go Sans.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}
