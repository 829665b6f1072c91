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

// Package source provides read-only access to the fonts glyphs are
// merged from.  A Font resolves code points to glyphs uniformly for
// simple and CID-keyed sources, and hands out outlines in the package
// outline representation.
package source

import (
	"fmt"
	"sync"
	"unicode/utf16"

	"golang.org/x/text/language"

	"seehuhn.de/go/postscript/cid"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/fontmerge/outline"
)

// Error reports that a source font could not be opened or lacks the
// tables the pipeline needs.  It aborts the build of the style which
// uses the font.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("source font %q: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Font is an opened source font.  All methods are read-only; a Font can
// be shared by concurrent readers.
type Font struct {
	info *sfnt.Font
	cmap cmap.Subtable
	path string

	namesOnce sync.Once
	names     map[string]glyph.ID
}

// Open reads a font file from disk.
func Open(path string) (*Font, error) {
	info, err := sfnt.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return New(info, path)
}

// New wraps an already parsed font.
func New(info *sfnt.Font, path string) (*Font, error) {
	sub, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("no usable cmap: %w", err)}
	}
	return &Font{info: info, cmap: sub, path: path}, nil
}

// Path returns the file name the font was opened from.
func (f *Font) Path() string {
	return f.path
}

// Info exposes the underlying engine font.
func (f *Font) Info() *sfnt.Font {
	return f.info
}

// UnitsPerEm returns the design grid size of the font.
func (f *Font) UnitsPerEm() uint16 {
	return f.info.UnitsPerEm
}

// Resolve maps a code point to a glyph.  The second return value is
// false if the font does not cover the code point; resolution never
// fails otherwise.  For CID-keyed fonts the engine's character map
// already encapsulates the charset lookup, so no separate CID path is
// needed.
func (f *Font) Resolve(r rune) (glyph.ID, bool) {
	gid := f.cmap.Lookup(r)
	if gid == 0 {
		return 0, false
	}
	return gid, true
}

// Outline extracts the outline of a glyph, converted to cubics.
func (f *Font) Outline(gid glyph.ID) *outline.Glyph {
	if int(gid) >= f.info.NumGlyphs() {
		return nil
	}
	p := f.info.Outlines.Path(gid)
	return outline.FromPath(f.info.GlyphName(gid), f.info.GlyphWidth(gid), p)
}

// OutlineFor resolves a code point and extracts its outline in one
// step.  It returns nil if the code point is not covered.
func (f *Font) OutlineFor(r rune) *outline.Glyph {
	gid, ok := f.Resolve(r)
	if !ok {
		return nil
	}
	return f.Outline(gid)
}

// Coverage returns all code points the font maps to a glyph, in
// increasing order.
func (f *Font) Coverage() []rune {
	var rr []rune
	low, high := f.cmap.CodeRange()
	for r := low; r <= high; r++ {
		if utf16.IsSurrogate(r) {
			continue
		}
		if f.cmap.Lookup(r) != 0 {
			rr = append(rr, r)
		}
	}
	return rr
}

// GlyphName returns the name of a glyph, or "" if the font does not
// record names.
func (f *Font) GlyphName(gid glyph.ID) string {
	return f.info.GlyphName(gid)
}

// NameIndex returns a map from glyph name to glyph, for looking up
// suffixed alternate glyphs which no character maps to.
func (f *Font) NameIndex() map[string]glyph.ID {
	f.namesOnce.Do(func() {
		f.names = make(map[string]glyph.ID)
		n := f.info.NumGlyphs()
		for i := 0; i < n; i++ {
			gid := glyph.ID(i)
			if name := f.info.GlyphName(gid); name != "" {
				if _, seen := f.names[name]; !seen {
					f.names[name] = gid
				}
			}
		}
	})
	return f.names
}

// IsCIDKeyed reports whether the font carries CID-keyed CFF outlines.
func (f *Font) IsCIDKeyed() bool {
	o, ok := f.info.Outlines.(*cff.Outlines)
	return ok && o.IsCIDKeyed()
}

// CID returns the character identifier of a glyph in a CID-keyed font.
// For non-CID-keyed fonts the glyph ID doubles as the CID.  Used for
// diagnostics only; glyph selection always goes through the cmap.
func (f *Font) CID(gid glyph.ID) cid.CID {
	if o, ok := f.info.Outlines.(*cff.Outlines); ok && int(gid) < len(o.GIDToCID) {
		return o.GIDToCID[gid]
	}
	return cid.CID(gid)
}

// FD returns the index of the font dict a glyph selects.
func (f *Font) FD(gid glyph.ID) int {
	if o, ok := f.info.Outlines.(*cff.Outlines); ok && o.FDSelect != nil {
		return o.FDSelect(gid)
	}
	return 0
}

// GsubLookups selects the GSUB lookups for the given feature tags.  The
// boolean is false if the font has no substitution table at all.
func (f *Font) GsubLookups(loc language.Tag, tags map[string]bool) ([]gtab.LookupIndex, bool) {
	if f.info.Gsub == nil {
		return nil, false
	}
	return f.info.Gsub.FindLookups(loc, tags), true
}

// Substitute runs a single code point through the given GSUB lookups
// and returns the resulting glyph.  The boolean is false if the code
// point is not covered or the lookups do not map it to a single glyph.
func (f *Font) Substitute(r rune, lookups []gtab.LookupIndex) (glyph.ID, bool) {
	gid, ok := f.Resolve(r)
	if !ok || f.info.Gsub == nil {
		return 0, false
	}
	ctx := gtab.NewContext(f.info.Gsub.LookupList, f.info.Gdef, lookups)
	seq := ctx.Apply([]glyph.Info{{GID: gid, Text: []rune{r}}})
	if len(seq) != 1 {
		return 0, false
	}
	return seq[0].GID, true
}
