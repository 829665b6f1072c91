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

package ranges

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetRunes(t *testing.T) {
	s := Set{{0x41, 0x43}, {0x61, 0x62}}

	got := s.Append(nil)
	want := []rune{0x41, 0x42, 0x43, 0x61, 0x62}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Append mismatch (-want +got):\n%s", d)
	}

	var first []rune
	s.Runes(func(r rune) bool {
		first = append(first, r)
		return len(first) < 2
	})
	if d := cmp.Diff([]rune{0x41, 0x42}, first); d != "" {
		t.Errorf("early stop mismatch (-want +got):\n%s", d)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		r    rune
		want Category
	}{
		{0x0041, Other},
		{0x0030, Digit},
		{0xFF11, Digit},
		{0x2070, Digit},
		{0xAC00, Hangul},
		{0xD7A3, Hangul},
		{0x1100, Hangul},
		{0x3131, Hangul},
		{0x2460, Enclosed},
		{0x3231, Enclosed},
		{0x1F201, Enclosed},
		{0x3042, Kana},
		{0x30A2, Kana},
		{0xFF66, Kana},
		{0x4E00, Ideograph},
		{0x3400, Ideograph},
		{0x20000, Ideograph},
		{0x2018, Other},
	}
	for _, c := range cases {
		if got := Classify(c.r); got != c.want {
			t.Errorf("Classify(U+%04X) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestJPAllowed(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{0x3042, true},  // hiragana
		{0x3001, false}, // ideographic comma, excluded
		{0x2014, false}, // em dash, excluded
		{0xFF01, false}, // fullwidth exclamation, excluded
		{0xFF11, true},  // fullwidth digit, digits stay allowed
		{0x4E00, true},
	}
	for _, c := range cases {
		if got := JPAllowed(c.r); got != c.want {
			t.Errorf("JPAllowed(U+%04X) = %t, want %t", c.r, got, c.want)
		}
	}
}

func TestExtraSet(t *testing.T) {
	set := ExtraSet("㈱ ∇\n─")

	for _, r := range []rune{'㈱', '∇', '─'} {
		if !set[r] {
			t.Errorf("ExtraSet missing U+%04X", r)
		}
	}
	if set[' '] || set['\n'] {
		t.Error("ExtraSet contains whitespace")
	}

	// the enclosed CJK block is always included
	if !set[0x3231] || !set[0x33A1] {
		t.Error("ExtraSet missing enclosed CJK block code points")
	}
	if set[0x4E00] {
		t.Error("ExtraSet contains code point outside whitelist")
	}
}

func TestCategoryString(t *testing.T) {
	if Other.String() != "base" || Kana.String() != "kana" {
		t.Error("unexpected category names")
	}
}
