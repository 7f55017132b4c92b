package pack

import "fmt"

// BBox is an axis-aligned bounding cuboid with half-open extents:
// a point (x,y,z) lies inside iff X0 ≤ x < X1, Y0 ≤ y < Y1, Z0 ≤ z < Z1.
// Invariant: X0 ≤ X1, Y0 ≤ Y1, Z0 ≤ Z1.
type BBox struct {
	X0, Y0, Z0 int
	X1, Y1, Z1 int
}

// Width returns the x-extent of the box.
func (b BBox) Width() int { return b.X1 - b.X0 }

// Height returns the y-extent of the box.
func (b BBox) Height() int { return b.Y1 - b.Y0 }

// Depth returns the z-extent of the box, i.e. the number of layers.
func (b BBox) Depth() int { return b.Z1 - b.Z0 }

// Overlaps checks two boxes for a non-empty intersection.
func (b BBox) Overlaps(other BBox) bool {
	return b.X0 < other.X1 && other.X0 < b.X1 &&
		b.Y0 < other.Y1 && other.Y0 < b.Y1 &&
		b.Z0 < other.Z1 && other.Z0 < b.Z1
}

// Contains checks whether other lies completely within b.
func (b BBox) Contains(other BBox) bool {
	return b.X0 <= other.X0 && other.X1 <= b.X1 &&
		b.Y0 <= other.Y0 && other.Y1 <= b.Y1 &&
		b.Z0 <= other.Z0 && other.Z1 <= b.Z1
}

// Stringer implementation.
func (b BBox) String() string {
	return fmt.Sprintf("(%d,%d,%d)-(%d,%d,%d)", b.X0, b.Y0, b.Z0, b.X1, b.Y1, b.Z1)
}
