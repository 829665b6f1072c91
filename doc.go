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

// Package fontmerge builds composite font families.
//
// For every configured style, glyph outlines from a Latin base font, a
// Hangul font, a Japanese font and a digit font are merged into one
// font, with per-script scaling and baseline adjustment.  Always-on
// substitution features of the base font are baked into the default
// outlines, selected punctuation classes are raised to centre on the
// CJK line, and the result is written as a CFF-flavoured OpenType file.
//
// The subpackages do the actual work; this package provides the
// configuration and the pipeline which runs all build stages for each
// style.
package fontmerge
