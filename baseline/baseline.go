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

// Package baseline nudges punctuation classes vertically so they centre
// on the taller CJK line instead of the Latin x-height.
package baseline

import (
	"math"

	"seehuhn.de/go/fontmerge/merge"
	"seehuhn.de/go/fontmerge/outline"
)

// MathCodepoints are the mathematical operators which get raised.
var MathCodepoints = []rune{
	0x2212, 0x002B, 0x00F7, 0x00B1, 0x00D7, 0x003D, 0x2260,
	0x2248, 0x007E, 0x003C, 0x003E, 0x2264, 0x2265,
}

// BracketCodepoints are paired delimiters which get raised.
var BracketCodepoints = []rune{
	0x0028, 0x0029, 0x003C, 0x003E, 0x007B, 0x007D,
	0x005B, 0x005D, 0x00AB, 0x00BB, 0x2039, 0x203A,
}

// DashArrowCodepoints are dashes and arrows which get raised, by a
// smaller amount than the operators.
var DashArrowCodepoints = []rune{
	0x002D, 0x2013, 0x2014, 0x2192, 0x2190, 0x27F6, 0x27F5, 0x27FA,
}

// Offsets are the upward shifts per class, as a percentage of the
// target's units per em.
type Offsets struct {
	MathPct      float64 `json:"mathPct"`
	BracketPct   float64 `json:"bracketPct"`
	DashArrowPct float64 `json:"dashArrowPct"`
}

// DefaultOffsets are the production shift amounts.
var DefaultOffsets = Offsets{
	MathPct:      7.78,
	BracketPct:   7.78,
	DashArrowPct: 5.8,
}

// Tweak shifts every populated code point of the three classes upward
// and returns the number of glyphs moved.  A code point listed in more
// than one class is shifted once, with the amount of the class listed
// last (math, then brackets, then dashes and arrows).
func Tweak(t *merge.Target, off Offsets) int {
	upm := float64(t.UnitsPerEm())
	shifts := make(map[rune]float64)
	assign := func(rr []rune, pct float64) {
		dy := math.Round(pct / 100 * upm)
		for _, r := range rr {
			shifts[r] = dy
		}
	}
	assign(MathCodepoints, off.MathPct)
	assign(BracketCodepoints, off.BracketPct)
	assign(DashArrowCodepoints, off.DashArrowPct)

	n := 0
	for r, dy := range shifts {
		if dy == 0 {
			continue
		}
		g, ok := t.Glyph(r)
		if !ok || g.IsEmpty() {
			continue
		}
		cat, _ := t.Claim(r)
		t.Set(r, outline.Shift(g, dy), cat)
		n++
	}
	return n
}
