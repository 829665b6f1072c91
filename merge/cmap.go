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

package merge

import "seehuhn.de/go/sfnt/glyph"

// encodeFormat12 encodes a format 12 cmap subtable covering all of rr.
// The code points must be sorted; runs where the glyph ID increases in
// step with the code point share a group.
func encodeFormat12(rr []rune, gids map[rune]glyph.ID) []byte {
	type segment struct {
		startCode, endCode uint32
		startGID           uint32
	}
	var ss []segment
	for _, r := range rr {
		c := uint32(r)
		g := uint32(gids[r])
		n := len(ss)
		if n > 0 && ss[n-1].endCode+1 == c &&
			ss[n-1].startGID+(c-ss[n-1].startCode) == g {
			ss[n-1].endCode = c
			continue
		}
		ss = append(ss, segment{startCode: c, endCode: c, startGID: g})
	}

	L := 16 + 12*uint32(len(ss))
	buf := make([]byte, 0, L)
	buf = append(buf,
		0, 12, // format
		0, 0, // reserved
		byte(L>>24), byte(L>>16), byte(L>>8), byte(L),
		0, 0, 0, 0, // language
		byte(len(ss)>>24), byte(len(ss)>>16), byte(len(ss)>>8), byte(len(ss)),
	)
	for _, s := range ss {
		buf = append(buf,
			byte(s.startCode>>24), byte(s.startCode>>16), byte(s.startCode>>8), byte(s.startCode),
			byte(s.endCode>>24), byte(s.endCode>>16), byte(s.endCode>>8), byte(s.endCode),
			byte(s.startGID>>24), byte(s.startGID>>16), byte(s.startGID>>8), byte(s.startGID),
		)
	}
	return buf
}
