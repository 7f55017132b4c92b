package pack

import (
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// box is a packable test double.
type box struct{ w, h int }

func (b box) Width() int  { return b.w }
func (b box) Height() int { return b.h }

func TestTriTreeSplitShapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	tree := NewTriTree(BBox{0, 0, 0, 10, 10, 4})
	fit, ok := tree.Fit(box{4, 3})
	if !ok {
		t.Fatal("expected 4x3 to fit into 10x10x4")
	}
	if fit != (BBox{0, 0, 0, 4, 3, 1}) {
		t.Errorf("placed bbox is %s", fit)
	}
	if tree.right.bbox != (BBox{4, 0, 0, 10, 3, 1}) {
		t.Errorf("right child is %s", tree.right.bbox)
	}
	if tree.down.bbox != (BBox{0, 3, 0, 10, 10, 1}) {
		t.Errorf("down child is %s", tree.down.bbox)
	}
	if tree.out.bbox != (BBox{0, 0, 1, 10, 10, 4}) {
		t.Errorf("out child is %s", tree.out.bbox)
	}
}

func TestTriTreeRejectWithoutSplitting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	tree := NewTriTree(BBox{0, 0, 0, 8, 8, 1})
	if _, ok := tree.Fit(box{9, 1}); ok {
		t.Fatal("expected 9x1 not to fit into 8x8x1")
	}
	if !tree.IsEmpty() {
		t.Error("a failed fit must not split the node")
	}
}

func TestTriTreeExactFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	tree := NewTriTree(BBox{0, 0, 0, 8, 8, 1})
	fit, ok := tree.Fit(box{8, 8})
	if !ok {
		t.Fatal("expected an exact-size item to fit")
	}
	if fit.Width() != 8 || fit.Height() != 8 {
		t.Errorf("placed bbox is %s", fit)
	}
	// the children are degenerate but structurally valid
	if _, ok := tree.Fit(box{1, 1}); ok {
		t.Error("expected a full single-layer node to reject further items")
	}
}

func TestTriTreeLayerOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	tree := NewTriTree(BBox{0, 0, 0, 4, 4, 2})
	for i := 0; i < 2; i++ {
		fit, ok := tree.Fit(box{4, 4})
		if !ok {
			t.Fatalf("expected full-size item %d to fit into layer %d", i, i)
		}
		if fit.Z0 != i {
			t.Errorf("expected item %d in layer %d, is in %d", i, i, fit.Z0)
		}
	}
	if _, ok := tree.Fit(box{4, 4}); ok {
		t.Error("expected a third full-size item to be rejected")
	}
}

func TestTriTreeNonOverlapProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t)
	defer teardown()
	//
	root := BBox{0, 0, 0, 128, 128, 4}
	tree := NewTriTree(root)
	rng := rand.New(rand.NewSource(42))
	var placed []BBox
	for i := 0; i < 400; i++ {
		item := box{1 + rng.Intn(40), 1 + rng.Intn(40)}
		fit, ok := tree.Fit(item)
		if !ok {
			continue
		}
		if fit.Width() != item.w || fit.Height() != item.h || fit.Depth() != 1 {
			t.Fatalf("placed bbox %s does not match item %dx%d", fit, item.w, item.h)
		}
		if !root.Contains(fit) {
			t.Fatalf("placed bbox %s escapes the root", fit)
		}
		placed = append(placed, fit)
	}
	if len(placed) == 0 {
		t.Fatal("expected at least some items to fit")
	}
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			if placed[i].Overlaps(placed[j]) {
				t.Fatalf("placed bboxes %s and %s overlap", placed[i], placed[j])
			}
		}
	}
	t.Logf("placed %d items without overlap", len(placed))
}
