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

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/fontmerge/outline"
	"seehuhn.de/go/fontmerge/ranges"
	"seehuhn.de/go/fontmerge/source"
)

// Target is the in-progress composite font for one style: a mapping
// from code point to glyph outline, plus the category which claimed
// each slot.  Outlines stored in a Target are already transformed into
// the target's design space; no later stage re-applies geometry.
type Target struct {
	base       *source.Font
	upm        uint16
	transforms map[ranges.Category]outline.Transform

	glyphs map[rune]*outline.Glyph
	claims map[rune]ranges.Category
}

// NewTarget starts an empty target on the base source's design grid.
// The transforms map must have an entry for every category that will be
// merged, keyed by claim category (ranges.Other for the base).
func NewTarget(base *source.Font, transforms map[ranges.Category]outline.Transform) *Target {
	return &Target{
		base:       base,
		upm:        base.UnitsPerEm(),
		transforms: transforms,
		glyphs:     make(map[rune]*outline.Glyph),
		claims:     make(map[rune]ranges.Category),
	}
}

// UnitsPerEm returns the target design grid size.
func (t *Target) UnitsPerEm() uint16 {
	return t.upm
}

// Base returns the base source font.
func (t *Target) Base() *source.Font {
	return t.base
}

// Transform returns the geometry transform for a claim category.
func (t *Target) Transform(cat ranges.Category) outline.Transform {
	if tr, ok := t.transforms[cat]; ok {
		return tr
	}
	return outline.Identity
}

// Set stores a transformed outline for a code point, claiming the slot
// for the given category.  Any previous outline is replaced.
func (t *Target) Set(r rune, g *outline.Glyph, cat ranges.Category) {
	t.glyphs[r] = g
	t.claims[r] = cat
}

// ReplaceOutline swaps the contours at a populated code point while
// keeping the stored advance width and claim.  It does nothing if the
// code point is not populated.
func (t *Target) ReplaceOutline(r rune, g *outline.Glyph) {
	old, ok := t.glyphs[r]
	if !ok {
		return
	}
	repl := g.Clone()
	repl.Name = old.Name
	repl.Width = old.Width
	t.glyphs[r] = repl
}

// Glyph returns the stored outline for a code point.
func (t *Target) Glyph(r rune) (*outline.Glyph, bool) {
	g, ok := t.glyphs[r]
	return g, ok
}

// Claim returns the category which populated a code point.
func (t *Target) Claim(r rune) (ranges.Category, bool) {
	c, ok := t.claims[r]
	return c, ok
}

// Len returns the number of populated code points.
func (t *Target) Len() int {
	return len(t.glyphs)
}

// Runes returns the populated code points in increasing order.
func (t *Target) Runes() []rune {
	rr := maps.Keys(t.glyphs)
	sort.Slice(rr, func(i, j int) bool { return rr[i] < rr[j] })
	return rr
}

// Naming carries the name-table and style fields for the finalized
// font.
type Naming struct {
	Family    string
	Subfamily string
	Version   head.Version
	Weight    os2.Weight
	IsBold    bool
	IsRegular bool
}

// Finalize builds the output font: a CFF font holding ".notdef" plus
// the populated code points in rune order, with a fresh character map
// and the base font's vertical metrics.  No layout tables are carried
// over; always-on substitutions have been baked into the outlines, and
// the remaining lookups would reference glyphs that no longer exist.
func (t *Target) Finalize(n Naming) (*sfnt.Font, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("merge: no glyphs to emit")
	}

	rr := t.Runes()

	notdef := t.base.Outline(0)
	if notdef == nil {
		notdef = &outline.Glyph{}
	}
	notdef = t.Transform(ranges.Other).Apply(notdef)

	glyphs := make([]*cff.Glyph, 0, len(rr)+1)
	glyphs = append(glyphs, notdef.ToCFF(".notdef"))

	used := map[string]bool{".notdef": true}
	gids := make(map[rune]glyph.ID, len(rr))
	for _, r := range rr {
		g := t.glyphs[r]
		name := g.Name
		if name == "" {
			name = uniName(r)
		}
		base := name
		for alt := 1; used[name]; alt++ {
			name = fmt.Sprintf("%s.alt%d", base, alt)
		}
		used[name] = true

		gids[r] = glyph.ID(len(glyphs))
		glyphs = append(glyphs, g.ToCFF(name))
	}

	outlines := &cff.Outlines{
		Glyphs:   glyphs,
		Private:  []*type1.PrivateDict{{}},
		FDSelect: func(glyph.ID) int { return 0 },
	}
	outlines.Encoding = cff.StandardEncoding(outlines.Glyphs)

	q := 1 / float64(t.upm)
	b := t.base.Info()
	now := time.Now()

	info := &sfnt.Font{
		FamilyName: n.Family,
		Width:      b.Width,
		Weight:     n.Weight,
		IsBold:     n.IsBold,
		IsRegular:  n.IsRegular,

		Version:          n.Version,
		CreationTime:     now,
		ModificationTime: now,
		PermUse:          b.PermUse,

		UnitsPerEm: t.upm,
		FontMatrix: matrix.Matrix{q, 0, 0, q, 0, 0},

		Ascent:    b.Ascent,
		Descent:   b.Descent,
		LineGap:   b.LineGap,
		CapHeight: b.CapHeight,
		XHeight:   b.XHeight,

		ItalicAngle:        b.ItalicAngle,
		UnderlinePosition:  b.UnderlinePosition,
		UnderlineThickness: b.UnderlineThickness,

		CMapTable: makeCMap(rr, gids),
		Outlines:  outlines,
	}

	return info, nil
}

// makeCMap builds the cmap table: a format 4 subtable for the BMP, plus
// a format 12 subtable when supplementary-plane code points are mapped.
func makeCMap(rr []rune, gids map[rune]glyph.ID) cmap.Table {
	bmp := cmap.Format4{}
	hasSupplementary := false
	for _, r := range rr {
		if r > 0xFFFF {
			hasSupplementary = true
			continue
		}
		bmp[uint16(r)] = gids[r]
	}
	sub4 := bmp.Encode(0)

	if !hasSupplementary {
		return cmap.Table{
			{PlatformID: 0, EncodingID: 3}: sub4,
			{PlatformID: 3, EncodingID: 1}: sub4,
		}
	}

	sub12 := encodeFormat12(rr, gids)
	return cmap.Table{
		{PlatformID: 0, EncodingID: 4}:  sub12,
		{PlatformID: 3, EncodingID: 1}:  sub4,
		{PlatformID: 3, EncodingID: 10}: sub12,
	}
}

// uniName returns the conventional glyph name for an unnamed glyph.
func uniName(r rune) string {
	if r > 0xFFFF {
		return fmt.Sprintf("u%X", r)
	}
	return fmt.Sprintf("uni%04X", r)
}
