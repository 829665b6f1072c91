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

// Package fonttest builds small synthetic fonts for tests.
//
// Glyph outlines are axis-aligned boxes, so tests can tell glyphs apart
// by their coordinates and verify transforms exactly.
package fonttest

import (
	"bytes"
	"sort"
	"testing"

	"golang.org/x/exp/maps"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/postscript/cid"
	"seehuhn.de/go/postscript/type1"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"
	"seehuhn.de/go/sfnt/os2"
)

// Glyph describes one glyph of a synthetic font.
type Glyph struct {
	// Rune is the code point mapped to the glyph; zero leaves the glyph
	// unmapped, reachable only by name or through a substitution.
	Rune rune

	Name  string
	Width float64

	// Height is the height of the box outline.  Zero gives a glyph
	// without contours.
	Height float64
}

// New builds a CFF font with the given glyphs.  Every glyph with a
// non-zero Height is drawn as a box from (50, 0) to (Width-50, Height).
func New(upm uint16, glyphs []Glyph) *sfnt.Font {
	u := float64(upm)

	cffGlyphs := []*cff.Glyph{cff.NewGlyph(".notdef", u / 2)}
	bmp := cmap.Format4{}
	for i, g := range glyphs {
		cg := cff.NewGlyph(g.Name, g.Width)
		if g.Height > 0 {
			cg.MoveTo(50, 0)
			cg.LineTo(g.Width-50, 0)
			cg.LineTo(g.Width-50, g.Height)
			cg.LineTo(50, g.Height)
		}
		cffGlyphs = append(cffGlyphs, cg)
		if g.Rune != 0 {
			bmp[uint16(g.Rune)] = glyph.ID(i + 1)
		}
	}

	outlines := &cff.Outlines{
		Glyphs:   cffGlyphs,
		Private:  []*type1.PrivateDict{{}},
		FDSelect: func(glyph.ID) int { return 0 },
	}
	outlines.Encoding = cff.StandardEncoding(outlines.Glyphs)

	sub4 := bmp.Encode(0)
	q := 1 / u
	return &sfnt.Font{
		FamilyName: "Test",
		Weight:     os2.Weight(400),
		IsRegular:  true,

		UnitsPerEm: upm,
		FontMatrix: matrix.Matrix{q, 0, 0, q, 0, 0},

		Ascent:    700,
		Descent:   -200,
		CapHeight: 700,

		CMapTable: cmap.Table{
			{PlatformID: 0, EncodingID: 3}: sub4,
			{PlatformID: 3, EncodingID: 1}: sub4,
		},
		Outlines: outlines,
	}
}

// AddFeature attaches a single-substitution GSUB feature to the font.
// The subs map is keyed by glyph name, giving the name of the
// replacement glyph.  Both glyphs must exist.
func AddFeature(info *sfnt.Font, tag string, subs map[string]string) {
	byName := make(map[string]glyph.ID)
	n := info.NumGlyphs()
	for i := 0; i < n; i++ {
		byName[info.GlyphName(glyph.ID(i))] = glyph.ID(i)
	}

	from := maps.Keys(subs)
	sort.Slice(from, func(i, j int) bool { return byName[from[i]] < byName[from[j]] })

	cov := coverage.Table{}
	var repl []glyph.ID
	for i, name := range from {
		cov[byName[name]] = i
		repl = append(repl, byName[subs[name]])
	}

	if info.Gsub == nil {
		info.Gsub = &gtab.Info{
			ScriptList: gtab.ScriptListInfo{
				language.Und: &gtab.Features{Required: 0xFFFF},
			},
		}
	}

	lookupIdx := gtab.LookupIndex(len(info.Gsub.LookupList))
	info.Gsub.LookupList = append(info.Gsub.LookupList, &gtab.LookupTable{
		Meta: &gtab.LookupMetaInfo{LookupType: 1},
		Subtables: []gtab.Subtable{
			&gtab.Gsub1_2{
				Cov:                cov,
				SubstituteGlyphIDs: repl,
			},
		},
	})

	featureIdx := gtab.FeatureIndex(len(info.Gsub.FeatureList))
	info.Gsub.FeatureList = append(info.Gsub.FeatureList, &gtab.Feature{
		Tag:     tag,
		Lookups: []gtab.LookupIndex{lookupIdx},
	})
	ff := info.Gsub.ScriptList[language.Und]
	ff.Optional = append(ff.Optional, featureIdx)
}

// ToCID converts the font to use CFF CIDFont operators, with the glyph
// IDs doubling as CIDs.
func ToCID(info *sfnt.Font) *sfnt.Font {
	outlines := info.Outlines.(*cff.Outlines)
	outlines.Encoding = nil
	outlines.ROS = &cid.SystemInfo{
		Registry:   "Seehuhn",
		Ordering:   "Test",
		Supplement: 0,
	}
	outlines.GIDToCID = make([]cid.CID, len(outlines.Glyphs))
	for i := range outlines.GIDToCID {
		outlines.GIDToCID[i] = cid.CID(i)
	}
	outlines.FontMatrices = []matrix.Matrix{matrix.Identity}
	return info
}

// Regular returns the Go Regular font, as a real TrueType source with
// quadratic outlines.
func Regular(t *testing.T) *sfnt.Font {
	t.Helper()
	info, err := sfnt.Read(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatal(err)
	}
	return info
}
