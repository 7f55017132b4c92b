/*
Package charset builds sets of Unicode code points.

A character set is assembled from a sequence of heterogeneous inputs:
single code points, characters, inclusive ranges, strings and other
sets. Duplicates coalesce silently; membership is unordered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package charset

import (
	"sort"
	"unicode"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/bakefont/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bakefont.core'.
func tracer() tracing.Trace {
	return tracing.Select("bakefont.core")
}

// Set is a set of Unicode code points.
type Set struct {
	chars *hashset.Set
}

// Input is one constructor argument for a character set. Inputs are
// created with Code, Char, Range, Text and Of.
type Input interface {
	addTo(s Set) error
}

// New builds a character set as the union of all inputs.
// It fails on the first invalid input and returns no partial set.
func New(inputs ...Input) (Set, error) {
	s := Set{chars: hashset.New()}
	for _, input := range inputs {
		if err := input.addTo(s); err != nil {
			return Set{}, err
		}
	}
	return s, nil
}

// Len returns the number of code points in the set.
func (s Set) Len() int {
	if s.chars == nil {
		return 0
	}
	return s.chars.Size()
}

// Contains checks membership of a single code point.
func (s Set) Contains(r rune) bool {
	if s.chars == nil {
		return false
	}
	return s.chars.Contains(r)
}

// Chars returns the members of the set. Order is unspecified.
func (s Set) Chars() []rune {
	if s.chars == nil {
		return nil
	}
	values := s.chars.Values()
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = v.(rune)
	}
	return runes
}

// Sorted returns the members of the set in ascending code-point order.
func (s Set) Sorted() []rune {
	runes := s.Chars()
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

func (s Set) add(r rune) {
	s.chars.Add(r)
}

// errRangeArg produces a user level error for a malformed input.
func errRangeArg(format string, v ...interface{}) error {
	return core.Error(core.EINVALID, format, v...)
}

// checkScalar rejects values outside the Unicode scalar range.
func checkScalar(c rune) error {
	if c < 0 || c > unicode.MaxRune {
		return errRangeArg("invalid range argument U+%X: beyond U+10FFFF", c)
	}
	if c >= 0xD800 && c <= 0xDFFF {
		return errRangeArg("invalid range argument U+%04X: surrogate", c)
	}
	return nil
}

// --- Inputs ----------------------------------------------------------------

type codeInput rune
type textInput string
type rangeInput struct{ lo, hi rune }
type setInput struct{ other Set }

// Code contributes a single Unicode code point, given numerically.
func Code(c uint32) Input {
	return codeInput(c)
}

// Char contributes a single character.
func Char(r rune) Input {
	return codeInput(r)
}

// Text contributes every character of a string.
func Text(text string) Input {
	return textInput(text)
}

// Range contributes an inclusive range of code points. Endpoints may be
// given in either order.
func Range(lo, hi rune) Input {
	return rangeInput{lo, hi}
}

// Of contributes all members of another set (union).
func Of(other Set) Input {
	return setInput{other}
}

func (c codeInput) addTo(s Set) error {
	if err := checkScalar(rune(c)); err != nil {
		return err
	}
	s.add(rune(c))
	return nil
}

func (t textInput) addTo(s Set) error {
	for _, r := range string(t) {
		s.add(r)
	}
	return nil
}

func (rg rangeInput) addTo(s Set) error {
	lo, hi := rg.lo, rg.hi
	if lo > hi {
		lo, hi = hi, lo
	}
	if err := checkScalar(lo); err != nil {
		return err
	}
	if err := checkScalar(hi); err != nil {
		return err
	}
	tracer().Debugf("charset range U+%04X..U+%04X", lo, hi)
	for r := lo; r <= hi; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue // surrogates are not scalar values
		}
		s.add(r)
	}
	return nil
}

func (si setInput) addTo(s Set) error {
	if si.other.chars == nil {
		return errRangeArg("invalid argument: uninitialized character set")
	}
	for _, r := range si.other.Chars() {
		s.add(r)
	}
	return nil
}

// --- Predefined sets -------------------------------------------------------

// ASCII returns the printable ASCII characters, U+0020..U+007E.
func ASCII() Set {
	s, _ := New(Range(0x20, 0x7E))
	return s
}

// Latin1 returns printable ASCII plus the Latin-1 supplement,
// U+00A0..U+00FF.
func Latin1() Set {
	s, _ := New(Range(0x20, 0x7E), Range(0xA0, 0xFF))
	return s
}
