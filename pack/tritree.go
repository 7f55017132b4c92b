/*
Package pack places glyph bitmaps into a layered texture atlas.

The atlas is modelled as a cuboid of W × H pixels by D layers and is
partitioned by a trinary tree: every node's bounding box is either free
space, or split into an occupied sub-cuboid plus three child boxes to
the right of, below and outward of the occupied region.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pack

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'bakefont.pack'.
func tracer() tracing.Trace {
	return tracing.Select("bakefont.pack")
}

// HasSize is the capability a packable item has to offer: a pixel
// width and height. Depth is always 1.
type HasSize interface {
	Width() int
	Height() int
}

// TriTree is a node of the trinary packing tree. A node without
// children represents a maximal free cuboid; a split node delegates to
// its three children.
type TriTree struct {
	bbox  BBox
	right *TriTree // right of the item, same strip, same layer
	down  *TriTree // full strip below the item, same layer
	out   *TriTree // all layers further out
}

// NewTriTree creates a packing tree over a free bounding cuboid.
func NewTriTree(bbox BBox) *TriTree {
	return &TriTree{bbox: bbox}
}

// BBox returns the node's bounding cuboid.
func (t *TriTree) BBox() BBox {
	return t.bbox
}

// IsEmpty is true iff the node's box is entirely free space.
func (t *TriTree) IsEmpty() bool {
	return t.right == nil && t.down == nil && t.out == nil
}

// Fit places an item into the tree. On success it returns the occupied
// bounding box, with depth 1. On failure the tree is unchanged.
//
// A split node tries its children in the fixed order right, down, out;
// this order is part of the contract. An empty node accepts any item
// not exceeding its width and height, occupying the top-left corner of
// its nearest layer, and splits the remaining space into three empty
// children. The bottom strip spans the node's full width while the
// rightward strip only spans the item's height, which preserves tall
// free regions; for this to pay off, callers feed items sorted by
// decreasing height.
func (t *TriTree) Fit(item HasSize) (BBox, bool) {
	if !t.IsEmpty() {
		if fit, ok := t.right.Fit(item); ok {
			return fit, true
		}
		if fit, ok := t.down.Fit(item); ok {
			return fit, true
		}
		return t.out.Fit(item)
	}
	w, h := item.Width(), item.Height()
	if w > t.bbox.Width() || h > t.bbox.Height() || t.bbox.Depth() < 1 {
		return BBox{}, false
	}
	b := t.bbox
	t.right = NewTriTree(BBox{b.X0 + w, b.Y0, b.Z0, b.X1, b.Y0 + h, b.Z0 + 1})
	t.down = NewTriTree(BBox{b.X0, b.Y0 + h, b.Z0, b.X1, b.Y1, b.Z0 + 1})
	t.out = NewTriTree(BBox{b.X0, b.Y0, b.Z0 + 1, b.X1, b.Y1, b.Z1})
	return BBox{b.X0, b.Y0, b.Z0, b.X0 + w, b.Y0 + h, b.Z0 + 1}, true
}
