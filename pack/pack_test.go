package pack

import (
	"testing"

	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/bakefont/core/fp26"
	"github.com/npillmayer/bakefont/core/font"
	"github.com/npillmayer/bakefont/render"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGlyph builds a rendered glyph with a constant-value bitmap.
func fakeGlyph(code rune, w, h int, shade byte) *render.Glyph {
	g := &render.Glyph{Code: code, W: w, H: h}
	if w > 0 && h > 0 {
		g.Bitmap = make([]byte, w*h)
		for i := range g.Bitmap {
			g.Bitmap[i] = shade
		}
	}
	return g
}

func fakeResult(name string, size float64, glyphs ...*render.Glyph) *render.Result {
	return &render.Result{
		Font:      font.NewFont(name, font.FallbackFont()),
		SizeFP:    fp26.FromFloat(size),
		Antialias: true,
		Glyphs:    glyphs,
	}
}

func TestPackEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	res, err := Pack(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 64, res.Width, "empty bake settles on the smallest candidate")
	assert.Equal(t, 64, res.Height)
	assert.Equal(t, 4, res.Depth)
	assert.Empty(t, res.Glyphs)
	assert.Empty(t, res.Modes)
}

func TestPackRetriesCandidates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	// 10x10 passes the area check for 8x8 but fails the tree there
	r := fakeResult("sans", 16, fakeGlyph('A', 10, 10, 1))
	res, err := Pack([]*render.Result{r}, FixedSizes([2]int{8, 8}, [2]int{16, 16}))
	require.NoError(t, err)
	assert.Equal(t, 16, res.Width)
	require.Equal(t, 1, len(res.Glyphs))
	g := res.Glyphs[0]
	assert.Equal(t, 0, g.X)
	assert.Equal(t, 0, g.Y)
	assert.Equal(t, 3, g.Z, "layers are inverted, alpha fills last")
}

func TestPackNoFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	r := fakeResult("sans", 16, fakeGlyph('A', 20, 20, 1))
	_, err := Pack([]*render.Result{r}, FixedSizes([2]int{16, 16}))
	require.Error(t, err)
	assert.Equal(t, core.EFULL, core.Code(err))
}

func TestPackHeightHeuristic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	// the tall glyph must go first or the two wide ones block it
	r := fakeResult("sans", 16,
		fakeGlyph('a', 8, 1, 1), fakeGlyph('b', 8, 1, 2), fakeGlyph('c', 1, 8, 3))
	res, err := Pack([]*render.Result{r}, FixedSizes([2]int{9, 9}))
	require.NoError(t, err)
	require.Equal(t, 3, len(res.Glyphs))
	for _, g := range res.Glyphs {
		assert.Equal(t, 3, g.Z, "everything fits into the first layer")
		assert.LessOrEqual(t, g.X+g.W, 9)
		assert.LessOrEqual(t, g.Y+g.H, 9)
	}
	assertNoOverlap(t, res)
}

func TestPackDedup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	// overlapping charsets for the same (font, size): first occurrence wins
	r1 := fakeResult("sans", 16, fakeGlyph('a', 4, 4, 11), fakeGlyph('b', 4, 4, 12))
	r2 := fakeResult("sans", 16, fakeGlyph('b', 4, 4, 99), fakeGlyph('c', 4, 4, 13))
	res, err := Pack([]*render.Result{r1, r2}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, len(res.Glyphs), "expected |union| placed glyphs")
	for _, g := range res.Glyphs {
		if g.Code == 'b' {
			assert.EqualValues(t, 12, g.Bitmap[0], "first-seen 'b' must be retained")
		}
	}
	require.Equal(t, 1, len(res.Modes))
	assert.Equal(t, 3, len(res.Modes[0].Glyphs))
}

func TestPackClonesBitmaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	g := fakeGlyph('a', 2, 2, 7)
	res, err := Pack([]*render.Result{fakeResult("sans", 16, g)}, nil)
	require.NoError(t, err)
	g.Bitmap[0] = 200 // stomp on the input
	assert.EqualValues(t, 7, res.Glyphs[0].Bitmap[0])
}

func TestPackInternsModesSorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	results := []*render.Result{
		fakeResult("serif", 16, fakeGlyph('a', 2, 2, 1)),
		fakeResult("sans", 20, fakeGlyph('a', 2, 2, 1)),
		fakeResult("sans", 12, fakeGlyph('a', 2, 2, 1)),
	}
	res, err := Pack(results, nil)
	require.NoError(t, err)
	require.Equal(t, 3, len(res.Modes))
	assert.Equal(t, "sans", res.Modes[0].FontName)
	assert.Equal(t, 12.0, res.Modes[0].Size.Float())
	assert.Equal(t, "sans", res.Modes[1].FontName)
	assert.Equal(t, 20.0, res.Modes[1].Size.Float())
	assert.Equal(t, "serif", res.Modes[2].FontName)
	for i, m := range res.Modes {
		for _, g := range m.Glyphs {
			assert.Equal(t, i, g.FontID)
		}
	}
}

func TestPackCompleteness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	var glyphs []*render.Glyph
	code := rune('!')
	for i := 0; i < 60; i++ {
		glyphs = append(glyphs, fakeGlyph(code, 3+i%13, 2+i%17, byte(i+1)))
		code++
	}
	glyphs = append(glyphs, fakeGlyph(code, 0, 0, 0)) // a glyph without ink
	res, err := Pack([]*render.Result{fakeResult("sans", 16, glyphs...)}, nil)
	require.NoError(t, err)
	require.Equal(t, 61, len(res.Glyphs))
	for _, g := range res.Glyphs {
		if g.W == 0 {
			continue
		}
		assert.GreaterOrEqual(t, g.X, 0)
		assert.GreaterOrEqual(t, g.Y, 0)
		assert.LessOrEqual(t, g.X+g.W, res.Width)
		assert.LessOrEqual(t, g.Y+g.H, res.Height)
		assert.GreaterOrEqual(t, g.Z, 0)
		assert.LessOrEqual(t, g.Z, 3)
	}
	assertNoOverlap(t, res)
}

// assertNoOverlap checks pairwise non-overlap of inked glyphs per layer.
func assertNoOverlap(t *testing.T, res *Result) {
	t.Helper()
	for i, a := range res.Glyphs {
		if a.W == 0 {
			continue
		}
		for _, b := range res.Glyphs[i+1:] {
			if b.W == 0 || a.Z != b.Z {
				continue
			}
			if a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H {
				t.Fatalf("glyphs %q and %q overlap in layer %d", a.Code, b.Code, a.Z)
			}
		}
	}
}
