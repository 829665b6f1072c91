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

import "unicode"

// ExtraSet builds the whitelist of additional code points to merge from
// the Japanese source.  The exact string contributes its runes verbatim
// (whitespace ignored); on top of that, every assigned code point in
// the CJK compatibility and enclosed CJK blocks (U+3200 to U+33FF) is
// included, since those symbols are only available there.
func ExtraSet(exact string) map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range exact {
		if unicode.IsSpace(r) {
			continue
		}
		set[r] = true
	}
	for r := rune(0x3200); r <= 0x33FF; r++ {
		if unicode.IsGraphic(r) {
			set[r] = true
		}
	}
	return set
}
