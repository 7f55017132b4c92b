package pack

import (
	"sort"

	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/bakefont/core/fp26"
	"github.com/npillmayer/bakefont/core/font"
	"github.com/npillmayer/bakefont/render"
)

// depth is the number of atlas layers, one per RGBA channel.
const depth = 4

// maxAtlasEdge is the hard stop for the default candidate sequence.
const maxAtlasEdge = 32 * 1024

// SizeSequence lazily yields candidate atlas sizes. It returns ok=false
// when exhausted.
type SizeSequence func() (width, height int, ok bool)

// DefaultSizes yields doubling square sizes 64×64, 128×128, … up to
// 32768×32768, then stops.
func DefaultSizes() SizeSequence {
	size := 64
	return func() (int, int, bool) {
		if size > maxAtlasEdge {
			return 0, 0, false
		}
		w := size
		size *= 2
		return w, w, true
	}
}

// FixedSizes yields exactly the given (width, height) pairs.
func FixedSizes(sizes ...[2]int) SizeSequence {
	i := 0
	return func() (int, int, bool) {
		if i >= len(sizes) {
			return 0, 0, false
		}
		w, h := sizes[i][0], sizes[i][1]
		i++
		return w, h, true
	}
}

// PlacedGlyph is a rendered glyph plus its position in the atlas:
// pixel coordinates x, y within layer z, where z selects the RGBA
// channel 0…3.
type PlacedGlyph struct {
	*render.Glyph
	FontID  int
	X, Y, Z int
}

// Mode is one interned (font, size) rasterisation mode. Its index in
// Result.Modes is the font id used throughout the atlas metadata.
type Mode struct {
	FontName  string
	Size      fp26.F26
	Antialias bool
	Details   font.Details   // font properties, snapshotted at pack time
	Glyphs    []*PlacedGlyph // this mode's share of Result.Glyphs
}

// Result is a finished packing.
type Result struct {
	Width, Height, Depth int
	Glyphs               []*PlacedGlyph // unique by (font id, code point)
	Modes                []Mode         // index == font id
}

// errNoFit produces the user level error for an unpackable glyph set.
func errNoFit() error {
	return core.Error(core.EFULL, "unable to fit all glyphs into any candidate atlas size")
}

type modeKey struct {
	name string
	size fp26.F26
}

// Pack arranges the glyphs of all render results into the smallest
// fitting candidate atlas. A nil sizes sequence uses DefaultSizes.
//
// Glyphs are deduplicated by (font id, code point), keeping the first
// occurrence and cloning its bitmap, then packed in order of
// decreasing bitmap height. For each candidate size a quick area check
// runs before the tree is built; a candidate is abandoned on the first
// glyph that does not fit. Placed glyphs store z = 3 − layer, so that
// glyphs fill the alpha channel last and an RGB-only view of the atlas
// does not look empty.
func Pack(results []*render.Result, sizes SizeSequence) (*Result, error) {
	if sizes == nil {
		sizes = DefaultSizes()
	}
	res := &Result{Depth: depth}
	res.Modes = internModes(results)
	ids := make(map[modeKey]int, len(res.Modes))
	for i, m := range res.Modes {
		ids[modeKey{m.FontName, m.Size}] = i
	}
	// deduplicate on code | fontId<<32, keeping the first occurrence;
	// the rasterisation size is subsumed by the font id
	seen := make(map[uint64]bool)
	for _, r := range results {
		id := ids[modeKey{r.Font.Name, r.SizeFP}]
		for _, g := range r.Glyphs {
			k := uint64(uint32(g.Code)) | uint64(id)<<32
			if seen[k] {
				continue
			}
			seen[k] = true
			pg := &PlacedGlyph{Glyph: cloneGlyph(g), FontID: id}
			res.Glyphs = append(res.Glyphs, pg)
			res.Modes[id].Glyphs = append(res.Modes[id].Glyphs, pg)
		}
	}
	// the shelf heuristic wants tall glyphs first
	byHeight := make([]*PlacedGlyph, len(res.Glyphs))
	copy(byHeight, res.Glyphs)
	sort.SliceStable(byHeight, func(i, j int) bool {
		return byHeight[i].H > byHeight[j].H
	})
	totalArea := 0
	for _, g := range byHeight {
		totalArea += g.W * g.H
	}
	for {
		w, h, ok := sizes()
		if !ok {
			return nil, errNoFit()
		}
		if totalArea > w*h*depth {
			tracer().Infof("fitting: skip size %dx%d (would never fit)", w, h)
			continue
		}
		tracer().Infof("fitting: trying size %dx%d", w, h)
		if fitAll(w, h, byHeight) {
			res.Width, res.Height = w, h
			return res, nil
		}
	}
}

// internModes collects the unique (font name, size) pairs of all
// results, sorted lexicographically by name, then size. Antialias flag
// and font details are snapshotted from the first result of each pair.
func internModes(results []*render.Result) []Mode {
	var modes []Mode
	index := make(map[modeKey]bool)
	for _, r := range results {
		k := modeKey{r.Font.Name, r.SizeFP}
		if index[k] {
			continue
		}
		index[k] = true
		modes = append(modes, Mode{
			FontName:  r.Font.Name,
			Size:      r.SizeFP,
			Antialias: r.Antialias,
			Details:   r.Font.Scalable.Details(),
		})
	}
	sort.SliceStable(modes, func(i, j int) bool {
		if modes[i].FontName != modes[j].FontName {
			return modes[i].FontName < modes[j].FontName
		}
		return modes[i].Size < modes[j].Size
	})
	return modes
}

// fitAll drives one candidate size. Glyphs without ink are not offered
// to the tree.
func fitAll(w, h int, glyphs []*PlacedGlyph) bool {
	tree := NewTriTree(BBox{0, 0, 0, w, h, depth})
	for _, g := range glyphs {
		if g.W == 0 || g.H == 0 {
			continue
		}
		fit, ok := tree.Fit(g)
		if !ok {
			return false
		}
		g.X, g.Y = fit.X0, fit.Y0
		g.Z = (depth - 1) - fit.Z0
	}
	return true
}

func cloneGlyph(g *render.Glyph) *render.Glyph {
	clone := *g
	if g.Bitmap != nil {
		clone.Bitmap = append([]byte(nil), g.Bitmap...)
	}
	return &clone
}
