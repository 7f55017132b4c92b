package atlas

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/bakefont/core/fp26"
	"github.com/npillmayer/bakefont/pack"
)

// The metadata file layout, little-endian throughout.
//
// Header, 48 bytes:
//
//    offset | size | content
//         0 |   12 | magic "BAKEFONTv3r0"
//        12 |    2 | uint16 atlas width in pixels
//        14 |    2 | uint16 atlas height in pixels
//        16 |    4 | uint32 absolute offset of the font table
//        20 |    4 | uint32 byte size of the font table
//        24 |    4 | uint32 absolute offset of the glyph section
//        28 |    4 | uint32 byte size of the glyph section
//        32 |    4 | uint32 absolute offset of the kerning section
//        36 |    4 | uint32 byte size of the kerning section (0)
//        40 |    8 | reserved, zero
//
// The font table opens with the marker "FONTDATA" and a uint32 count,
// followed by one length-prefixed record per font id. The glyph
// section opens with "GSETDATA" and the uint32 glyph record size,
// followed by one "GSET" block per font id whose records are sorted
// ascending by code point, enabling binary search at runtime. The
// kerning section is reserved; its offset points past the glyph
// section and its size is zero.

const magic = "BAKEFONTv3r0"

const glyphRecordSize = 36

const headerSize = 48

// Encode serialises a packing result into the binary metadata format.
func Encode(res *pack.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(magic)
	u16(buf, uint16(res.Width))
	u16(buf, uint16(res.Height))
	buf.Write(make([]byte, 24+8)) // offsets, back-patched below, and reserved
	//
	fontTableOffset := buf.Len()
	if err := fontTable(buf, res); err != nil {
		return nil, err
	}
	glyphSectionOffset := buf.Len()
	glyphSection(buf, res)
	kerningOffset := buf.Len()
	// no kerning pairs are emitted in this version
	//
	data := buf.Bytes()
	patch := func(at int, v int) {
		binary.LittleEndian.PutUint32(data[at:], uint32(v))
	}
	patch(16, fontTableOffset)
	patch(20, glyphSectionOffset-fontTableOffset)
	patch(24, glyphSectionOffset)
	patch(28, kerningOffset-glyphSectionOffset)
	patch(32, kerningOffset)
	patch(36, 0)
	tracer().Debugf("encoded %d fonts, %d glyphs in %d bytes",
		len(res.Modes), len(res.Glyphs), len(data))
	return data, nil
}

// fontTable emits the marker, the font count and one record per mode.
func fontTable(buf *bytes.Buffer, res *pack.Result) error {
	buf.WriteString("FONTDATA")
	u32(buf, uint32(len(res.Modes)))
	for id, mode := range res.Modes {
		record := &bytes.Buffer{}
		if err := b8string(record, mode.FontName); err != nil {
			return err
		}
		if err := b8string(record, mode.Details.Family); err != nil {
			return err
		}
		u32(record, uint32(id))
		record.Write(flags(mode))
		d := mode.Details
		i32(record, fontScaled(d.Height, mode.Size, d.UnitsPerEm).Bits())
		record.Write(make([]byte, 2*4)) // bbox xMin, yMin, xMax, yMax: placeholders
		record.Write(make([]byte, 2*2)) // max advance width/height: placeholders
		i32(record, fontScaled(int32(d.UnderlinePosition), mode.Size, d.UnitsPerEm).Bits())
		i32(record, fontScaled(int32(d.UnderlineThickness), mode.Size, d.UnitsPerEm).Bits())
		u32(buf, uint32(record.Len()))
		buf.Write(record.Bytes())
	}
	return nil
}

// flags encodes the per-font property flags: uppercase asserts the
// property, lowercase denies it.
func flags(mode pack.Mode) []byte {
	f := []byte("mkhva\x00\x00\x00")
	if mode.Details.Monospace {
		f[0] = 'M'
	}
	if mode.Details.Kerning {
		f[1] = 'K'
	}
	if mode.Details.Horizontal {
		f[2] = 'H'
	}
	if mode.Details.Vertical {
		f[3] = 'V'
	}
	if mode.Antialias {
		f[4] = 'A'
	}
	return f
}

// glyphSection emits one GSET block per font id, glyph records sorted
// ascending by code point.
func glyphSection(buf *bytes.Buffer, res *pack.Result) {
	buf.WriteString("GSETDATA")
	u32(buf, glyphRecordSize)
	for id, mode := range res.Modes {
		buf.WriteString("GSET")
		u32(buf, uint32(id))
		u32(buf, uint32(len(mode.Glyphs)))
		glyphs := make([]*pack.PlacedGlyph, len(mode.Glyphs))
		copy(glyphs, mode.Glyphs)
		sort.Slice(glyphs, func(i, j int) bool {
			return glyphs[i].Code < glyphs[j].Code
		})
		for _, g := range glyphs {
			glyphRecord(buf, g)
		}
	}
}

func glyphRecord(buf *bytes.Buffer, g *pack.PlacedGlyph) {
	u32(buf, uint32(g.Code))
	u16(buf, uint16(g.X))
	u16(buf, uint16(g.Y))
	buf.WriteByte(byte(g.Z))
	buf.WriteByte(byte(g.W))
	buf.WriteByte(byte(g.H))
	buf.WriteByte(0)
	m := g.Metrics // zero when the font has no glyph for the code point
	i32(buf, m.HoriBearingX.Bits())
	i32(buf, m.HoriBearingY.Bits())
	i32(buf, m.HoriAdvance.Bits())
	i32(buf, m.VertBearingX.Bits())
	i32(buf, m.VertBearingY.Bits())
	i32(buf, m.VertAdvance.Bits())
}

// fontScaled converts a font-unit value to pixels for a rasterisation
// size: pixels = value · size / unitsPerEm.
func fontScaled(value int32, size fp26.F26, unitsPerEm int32) fp26.F26 {
	if unitsPerEm == 0 {
		return 0
	}
	return fp26.FromFloat(float64(value) * size.Float() / float64(unitsPerEm))
}

// --- Primitive emitters ----------------------------------------------------

func u16(buf *bytes.Buffer, v uint16) {
	binary.Write(buf, binary.LittleEndian, v)
}

func u32(buf *bytes.Buffer, v uint32) {
	binary.Write(buf, binary.LittleEndian, v)
}

func i32(buf *bytes.Buffer, v int32) {
	binary.Write(buf, binary.LittleEndian, v)
}

// b8string emits a uint8 length-prefixed UTF-8 string plus a C-style
// NUL terminator.
func b8string(buf *bytes.Buffer, s string) error {
	if len(s) > 255 {
		return core.Error(core.EINVALID, "font name exceeds 255 bytes: %.20s…", s)
	}
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
	buf.WriteByte(0)
	return nil
}
