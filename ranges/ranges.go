// seehuhn.de/go/fontmerge - a tool for building composite font families
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package ranges defines the Unicode interval tables which drive glyph
// selection, together with the category and eligibility predicates built
// on top of them.
package ranges

// Range is an inclusive interval of Unicode code points.
type Range struct {
	Lo, Hi rune
}

// Contains reports whether r falls inside the interval.
func (rg Range) Contains(r rune) bool {
	return rg.Lo <= r && r <= rg.Hi
}

// A Set is a list of disjoint inclusive ranges.
type Set []Range

// Contains reports whether r falls inside any range of the set.
func (s Set) Contains(r rune) bool {
	for _, rg := range s {
		if rg.Contains(r) {
			return true
		}
	}
	return false
}

// Runes calls yield for every code point in the set, in set order.
// Iteration stops early if yield returns false.
func (s Set) Runes(yield func(rune) bool) {
	for _, rg := range s {
		for r := rg.Lo; r <= rg.Hi; r++ {
			if !yield(r) {
				return
			}
		}
	}
}

// Append returns a slice holding every code point of the set, appended
// to dst.
func (s Set) Append(dst []rune) []rune {
	s.Runes(func(r rune) bool {
		dst = append(dst, r)
		return true
	})
	return dst
}

// Category classifies a code point by the script bucket which decides
// its source font and geometry.
type Category uint8

const (
	// Other covers every code point no more specific category claims.
	// Glyphs in this category come from the base source.
	Other Category = iota

	// Hangul covers Hangul syllables, jamo and compatibility jamo.
	Hangul

	// Enclosed covers circled and parenthesized symbols and similar
	// enclosed alphanumerics.
	Enclosed

	// Kana covers Hiragana, Katakana and their phonetic extensions.
	Kana

	// Ideograph covers the CJK unified and compatibility ideographs.
	Ideograph

	// Digit covers the ASCII, fullwidth, superscript and subscript
	// digits.
	Digit
)

func (c Category) String() string {
	switch c {
	case Hangul:
		return "hangul"
	case Enclosed:
		return "enclosed"
	case Kana:
		return "kana"
	case Ideograph:
		return "ideograph"
	case Digit:
		return "digit"
	default:
		return "base"
	}
}

// Digits are the code points sourced from the digit font.
var Digits = Set{
	{0x0030, 0x0039},
	{0xFF10, 0xFF19},
	{0x2070, 0x2079},
	{0x2080, 0x2089},
}

// HangulSyllables is the only Hangul sub-range which receives the
// Hangul baseline shift.
var HangulSyllables = Range{0xAC00, 0xD7A3}

// HangulMain are the code points sourced from the Hangul font.
var HangulMain = Set{
	{0xAC00, 0xD7A3},
	{0x3130, 0x318F},
	{0x1100, 0x11FF},
	{0xA960, 0xA97F},
	{0xD7B0, 0xD7FF},
}

// EnclosedSymbols are enclosed alphanumerics, also sourced from the
// Hangul font but with their own geometry.
var EnclosedSymbols = Set{
	{0x2460, 0x24FF},
	{0x3200, 0x32FF},
	{0x2776, 0x2793},
	{0x1F100, 0x1F1FF},
	{0x1F200, 0x1F2FF},
}

// KanaRanges are Hiragana, Katakana and phonetic extensions.
var KanaRanges = Set{
	{0x3040, 0x309F},
	{0x30A0, 0x30FF},
	{0x31F0, 0x31FF},
	{0xFF65, 0xFF9F},
	{0x1B000, 0x1B0FF},
	{0x1B100, 0x1B12F},
	{0x1B130, 0x1B16F},
}

// IdeographRanges are the CJK unified ideographs, including the
// compatibility blocks and extensions B to I.
var IdeographRanges = Set{
	{0x3400, 0x4DBF},
	{0x4E00, 0x9FFF},
	{0xF900, 0xFAFF},
	{0x2F800, 0x2FA1F},
	{0x20000, 0x2A6DF},
	{0x2A700, 0x2B73F},
	{0x2B740, 0x2B81F},
	{0x2B820, 0x2CEAF},
	{0x2CEB0, 0x2EBEF},
	{0x30000, 0x3134F},
	{0x31350, 0x323AF},
	{0x2EBF0, 0x2EE5F},
}

// JPExcluded are punctuation and symbol ranges which must never be
// sourced from the Japanese font, to avoid wrong glyph shapes next to
// Korean and Latin text.
var JPExcluded = Set{
	{0x2000, 0x206F},
	{0x3000, 0x303F},
	{0xFE10, 0xFE1F},
	{0xFE30, 0xFE4F},
	{0xFF00, 0xFF0F},
	{0xFF1A, 0xFF60},
}

// ProtectedDefault are the code point ranges exempt from feature
// baking, so that always-on substitutions cannot corrupt glyph shapes
// applications rely on.
var ProtectedDefault = Set{
	{0x0020, 0x007E}, // Basic Latin
	{0x00A0, 0x00FF}, // Latin-1 Supplement
	{0x0100, 0x017F}, // Latin Extended-A
	{0x0180, 0x024F}, // Latin Extended-B
	{0x1E00, 0x1EFF}, // Latin Extended Additional
	{0x2000, 0x206F}, // General Punctuation
	{0x20A0, 0x20CF}, // Currency Symbols
	{0x2100, 0x214F}, // Letterlike Symbols
	{0x2150, 0x218F}, // Number Forms
}

// Classify returns the category of a code point.  The function is total
// over the code point space; where the tables overlap, the category
// priority order Hangul > Enclosed > Kana > Ideograph > Digit decides.
func Classify(r rune) Category {
	switch {
	case HangulMain.Contains(r):
		return Hangul
	case EnclosedSymbols.Contains(r):
		return Enclosed
	case KanaRanges.Contains(r):
		return Kana
	case IdeographRanges.Contains(r):
		return Ideograph
	case Digits.Contains(r):
		return Digit
	default:
		return Other
	}
}

// JPAllowed reports whether the Japanese source may provide the glyph
// for r.  Digits remain allowed so the digit source keeps priority over
// the exclusion list.
func JPAllowed(r rune) bool {
	if JPExcluded.Contains(r) && !Digits.Contains(r) {
		return false
	}
	return true
}
