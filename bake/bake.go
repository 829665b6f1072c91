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

// Package bake applies always-on substitutions to the merged glyphs.
//
// The output font carries no layout tables, so every feature the family
// wants permanently enabled is resolved here and the substitute outline
// written into the code point's slot.  Baking never changes advance
// widths: the substitute contours are placed under the width the slot
// already has.
package bake

import (
	"fmt"

	"golang.org/x/text/language"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/fontmerge/diag"
	"seehuhn.de/go/fontmerge/merge"
	"seehuhn.de/go/fontmerge/ranges"
	"seehuhn.de/go/fontmerge/source"
)

// RuleLoadError reports that the base font has no usable substitution
// table.  The error is recoverable: the style can still be emitted,
// just without baked features.
type RuleLoadError struct {
	Path string
	Err  error
}

func (e *RuleLoadError) Error() string {
	return fmt.Sprintf("bake: no substitution rules in %q: %v", e.Path, e.Err)
}

func (e *RuleLoadError) Unwrap() error {
	return e.Err
}

// Config selects which substitutions are baked.
type Config struct {
	// Tags are the feature tags baked into the outlines, for example
	// "ss01" or "case".
	Tags map[string]bool

	// Swash additionally enables the "swsh" feature.
	Swash bool

	// Suffixes are glyph name suffixes scanned as a fallback for
	// features the substitution table does not expose, for example
	// "ss06".  A glyph named "g.ss06" then replaces "g".
	Suffixes []string

	// SlashZero replaces the digit zero (ASCII and fullwidth) with the
	// glyph named "zero.slash", if the base font has one.
	SlashZero bool

	// Protected code points are exempt from baking.  The quote fix runs
	// after protection on purpose.
	Protected ranges.Set

	// QuoteFix lists code points whose glyphs are recopied from the base
	// font after baking, undoing substitutions applied by earlier tools
	// in the chain.
	QuoteFix []rune

	// Language selects the script and language system of the
	// substitution table.
	Language language.Tag
}

// DefaultQuoteFix are the code points the quote fix recopies: the curly
// single and double quotes.
var DefaultQuoteFix = []rune{0x2018, 0x2019, 0x201C, 0x201D}

// Result summarizes one bake run.
type Result struct {
	// Applied counts slots whose outline was replaced.
	Applied int

	// Skipped counts substitutions dropped because the substitute glyph
	// was missing or empty.
	Skipped int
}

// Bake resolves the configured features against the base font and
// rewrites the affected slots of t.  A *RuleLoadError return means no
// substitutions were available; t is then unchanged except for the
// quote fix, which runs regardless.
func Bake(t *merge.Target, base *source.Font, cfg Config, log *diag.Log) (Result, error) {
	b := &baker{t: t, base: base, cfg: cfg, log: log}

	tags := make(map[string]bool, len(cfg.Tags)+1)
	for tag, on := range cfg.Tags {
		if on {
			tags[tag] = true
		}
	}
	if cfg.Swash {
		tags["swsh"] = true
	}

	lookups, ok := base.GsubLookups(cfg.Language, tags)
	if !ok {
		b.quoteFix()
		return b.res, &RuleLoadError{Path: base.Path(), Err: fmt.Errorf("font has no GSUB table")}
	}

	for _, r := range t.Runes() {
		if b.exempt(r) {
			continue
		}
		b.bakeRune(r, lookups)
	}
	if cfg.SlashZero {
		b.slashZero()
	}
	b.quoteFix()

	return b.res, nil
}

type baker struct {
	t    *merge.Target
	base *source.Font
	cfg  Config
	log  *diag.Log
	res  Result
}

// exempt reports whether a code point must not be touched by generic
// baking.  Digits stay exempt even outside the protected ranges, since
// the digit source's shapes are the point of merging them.
func (b *baker) exempt(r rune) bool {
	return b.cfg.Protected.Contains(r) || ranges.Digits.Contains(r)
}

// bakeRune applies the selected lookups to one code point and replaces
// its outline when the substitution picks a different glyph.  The glyph
// name suffix scan is the fallback when the lookups leave the glyph
// alone.
func (b *baker) bakeRune(r rune, lookups []gtab.LookupIndex) {
	def, ok := b.base.Resolve(r)
	if !ok {
		return
	}
	alt, ok := b.base.Substitute(r, lookups)
	if ok && alt != def {
		b.replace(r, alt)
		return
	}
	if len(b.cfg.Suffixes) == 0 {
		return
	}
	name := b.base.GlyphName(def)
	if name == "" {
		return
	}
	idx := b.base.NameIndex()
	for _, suffix := range b.cfg.Suffixes {
		if gid, ok := idx[name+"."+suffix]; ok {
			b.replace(r, gid)
			return
		}
	}
}

// replace writes the outline of the base glyph gid into the slot at r.
// The alternate is a base font glyph, so it gets the base geometry no
// matter which category claimed the slot.  The stored advance width
// stays.
func (b *baker) replace(r rune, gid glyph.ID) {
	g := b.base.Outline(gid)
	if g.IsEmpty() {
		b.log.Add(diag.BakeSkipped, r, b.base.GlyphName(gid))
		b.res.Skipped++
		return
	}
	if _, ok := b.t.Glyph(r); !ok {
		return
	}
	b.t.ReplaceOutline(r, b.t.Transform(ranges.Other).Apply(g))
	b.res.Applied++
}

// slashZero force-bakes the slashed zero onto the ASCII and fullwidth
// zero, bypassing the protected ranges.  Corrective fixes like this one
// are the reason protection is a bake concern rather than a merge
// concern.
func (b *baker) slashZero() {
	gid, ok := b.base.NameIndex()["zero.slash"]
	if !ok {
		b.log.Add(diag.BakeSkipped, '0', "zero.slash")
		b.res.Skipped++
		return
	}
	g := b.base.Outline(gid)
	if g.IsEmpty() {
		b.log.Add(diag.BakeSkipped, '0', "zero.slash")
		b.res.Skipped++
		return
	}
	tr := b.t.Transform(ranges.Other)
	for _, r := range []rune{0x0030, 0xFF10} {
		if _, ok := b.t.Glyph(r); !ok {
			continue
		}
		b.t.ReplaceOutline(r, tr.Apply(g))
		b.res.Applied++
	}
}

// quoteFix recopies the configured quote code points from the base
// font, outline and width both, so that no substitution baked by this
// run or by an upstream tool survives on them.
func (b *baker) quoteFix() {
	tr := b.t.Transform(ranges.Other)
	for _, r := range b.cfg.QuoteFix {
		g := b.base.OutlineFor(r)
		if g.IsEmpty() {
			continue
		}
		b.t.Set(r, tr.Apply(g), ranges.Other)
		b.res.Applied++
	}
}
