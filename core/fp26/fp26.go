/*
Package fp26 implements the 26.6 fixed-point number encoding.

FreeType and the bakefont file format represent fractional pixel values
as signed 32-bit integers where the lower 6 bits carry the fractional
component. Divide by 64 to recover the real value.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fp26

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// F26 is a signed 26.6 fixed-point number.
type F26 int32

// FromInt encodes an integer value, i.e. multiplies by 64.
func FromInt(n int) F26 {
	return F26(int32(n) * 64)
}

// FromFloat encodes a float value, truncating the sub-1/64 remainder
// toward zero. Integral values round-trip exactly.
func FromFloat(x float64) F26 {
	return F26(int32(x * 64.0))
}

// Float decodes f to a float, i.e. divides by 64.
func (f F26) Float() float64 {
	return float64(f) / 64.0
}

// Fixed converts f to the x/image fixed-point type.
func (f F26) Fixed() fixed.Int26_6 {
	return fixed.Int26_6(f)
}

// FromFixed converts an x/image fixed-point value. The two types share
// their bit layout.
func FromFixed(x fixed.Int26_6) F26 {
	return F26(x)
}

// Bits returns the raw encoded value.
func (f F26) Bits() int32 {
	return int32(f)
}

// Stringer implementation.
func (f F26) String() string {
	return fmt.Sprintf("%g", f.Float())
}
