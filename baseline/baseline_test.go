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

package baseline

import (
	"testing"

	"seehuhn.de/go/fontmerge/internal/fonttest"
	"seehuhn.de/go/fontmerge/merge"
	"seehuhn.de/go/fontmerge/source"
)

func testTarget(t *testing.T) *merge.Target {
	t.Helper()
	info := fonttest.New(1000, []fonttest.Glyph{
		{Rune: '+', Name: "plus", Width: 600, Height: 500},
		{Rune: '<', Name: "less", Width: 600, Height: 500},
		{Rune: '-', Name: "hyphen", Width: 400, Height: 300},
		{Rune: 'A', Name: "A", Width: 600, Height: 700},
	})
	base, err := source.New(info, "base.otf")
	if err != nil {
		t.Fatal(err)
	}
	tgt, err := merge.Merge(merge.Sources{Base: base}, merge.Options{
		Plan: &merge.Plan{},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tgt
}

func TestTweak(t *testing.T) {
	tgt := testTarget(t)

	n := Tweak(tgt, DefaultOffsets)
	if n != 3 {
		t.Errorf("Tweak moved %d glyphs, want 3", n)
	}

	// math: 7.78% of 1000, rounded
	plus, _ := tgt.Glyph('+')
	if y := plus.Cmds[0].Pts[0].Y; y != 78 {
		t.Errorf("plus bottom = %g, want 78", y)
	}
	if plus.Width != 600 {
		t.Errorf("plus advance changed: %g", plus.Width)
	}
	if x := plus.Cmds[0].Pts[0].X; x != 50 {
		t.Errorf("plus X moved: %g", x)
	}

	// dashes use the smaller offset
	hyphen, _ := tgt.Glyph('-')
	if y := hyphen.Cmds[0].Pts[0].Y; y != 58 {
		t.Errorf("hyphen bottom = %g, want 58", y)
	}

	// letters are untouched
	a, _ := tgt.Glyph('A')
	if y := a.Cmds[0].Pts[0].Y; y != 0 {
		t.Errorf("'A' moved: %g", y)
	}
}

// '<' is both a math operator and a bracket; it must be shifted exactly
// once.
func TestOverlapShiftedOnce(t *testing.T) {
	tgt := testTarget(t)

	off := Offsets{MathPct: 5, BracketPct: 7}
	Tweak(tgt, off)

	less, _ := tgt.Glyph('<')
	if y := less.Cmds[0].Pts[0].Y; y != 70 {
		t.Errorf("'<' bottom = %g, want 70 (bracket offset, applied once)", y)
	}
}

func TestZeroOffsets(t *testing.T) {
	tgt := testTarget(t)

	if n := Tweak(tgt, Offsets{}); n != 0 {
		t.Errorf("zero offsets moved %d glyphs", n)
	}
	plus, _ := tgt.Glyph('+')
	if y := plus.Cmds[0].Pts[0].Y; y != 0 {
		t.Errorf("plus moved: %g", y)
	}
}
