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

// Package merge populates the composite font from the source fonts.
//
// Sources are visited in fixed priority order: Hangul, enclosed
// symbols, Japanese, Japanese extras, digits, base.  The first source
// to provide a non-empty glyph for a code point claims the slot;
// later sources never overwrite a claim.  Each copied glyph is
// transformed exactly once, with the geometry of the category that
// claimed it.
package merge

import (
	"errors"
	"sort"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/fontmerge/diag"
	"seehuhn.de/go/fontmerge/outline"
	"seehuhn.de/go/fontmerge/ranges"
	"seehuhn.de/go/fontmerge/source"
)

// Sources are the opened fonts one style is merged from.  Base is
// required; a nil entry elsewhere skips the corresponding passes.
type Sources struct {
	Base     *source.Font
	Hangul   *source.Font
	Japanese *source.Font
	Digit    *source.Font
}

// Plan lists the code point ranges each pass visits.  DefaultPlan
// covers the full production tables; tests use small plans to keep
// fixture fonts tiny.  An empty field skips the corresponding pass.
type Plan struct {
	Hangul   ranges.Set
	Enclosed ranges.Set
	JP       ranges.Set
	Digit    ranges.Set
}

// DefaultPlan returns the full production code point plan.
func DefaultPlan() Plan {
	var jp ranges.Set
	jp = append(jp, ranges.KanaRanges...)
	jp = append(jp, ranges.IdeographRanges...)
	return Plan{
		Hangul:   ranges.HangulMain,
		Enclosed: ranges.EnclosedSymbols,
		JP:       jp,
		Digit:    ranges.Digits,
	}
}

// Options configure a merge run.
type Options struct {
	// Transforms maps each claim category to its geometry.  Categories
	// without an entry are copied unchanged.
	Transforms map[ranges.Category]outline.Transform

	// Plan overrides the code point plan; nil selects DefaultPlan.
	Plan *Plan

	// Extras is an additional whitelist of code points taken from the
	// Japanese source, typically built with ranges.ExtraSet.
	Extras map[rune]bool

	// ExtrasOverwrite lets extras replace glyphs an earlier pass already
	// claimed.
	ExtrasOverwrite bool

	// PreserveDigits skips the digit pass, keeping the base font's
	// digits.
	PreserveDigits bool

	// Progress, if non-nil, is called after every newly populated slot
	// with the running glyph count.
	Progress func(n int)
}

// Merge runs all passes and returns the populated target.
func Merge(src Sources, opt Options, log *diag.Log) (*Target, error) {
	if src.Base == nil {
		return nil, errors.New("merge: no base source")
	}
	plan := DefaultPlan()
	if opt.Plan != nil {
		plan = *opt.Plan
	}

	m := &merger{
		src:  src,
		plan: plan,
		opt:  opt,
		log:  log,
		t:    NewTarget(src.Base, opt.Transforms),
	}

	m.passSet(src.Hangul, plan.Hangul, ranges.Hangul)
	m.passSet(src.Hangul, plan.Enclosed, ranges.Enclosed)
	m.passJP()
	m.passExtras()
	if !opt.PreserveDigits {
		m.passSet(src.Digit, plan.Digit, ranges.Digit)
		m.synthFullwidthDigits()
	}
	m.passBase()
	m.sweepMissing()

	return m.t, nil
}

type merger struct {
	src  Sources
	plan Plan
	opt  Options
	log  *diag.Log
	t    *Target
}

// transformFor selects the geometry for one copied glyph.  The Hangul
// baseline shift applies to precomposed syllables only; jamo keep the
// scale but sit on the unshifted baseline.
func (m *merger) transformFor(r rune, cat ranges.Category) outline.Transform {
	tr := m.t.Transform(cat)
	if cat == ranges.Hangul && !ranges.HangulSyllables.Contains(r) {
		tr.YShift = 0
	}
	return tr
}

// copy transfers one glyph from f into the target.  It returns true if
// the slot was populated.
func (m *merger) copy(f *source.Font, r rune, cat ranges.Category, keepEmpty, overwrite bool) bool {
	if _, claimed := m.t.Claim(r); claimed && !overwrite {
		if cat != ranges.Other {
			m.log.Add(diag.Shadowed, r, cat.String())
		}
		return false
	}
	g := f.OutlineFor(r)
	if g == nil {
		return false
	}
	if g.IsEmpty() && !keepEmpty {
		m.log.Add(diag.EmptySkipped, r, cat.String())
		return false
	}
	m.t.Set(r, m.transformFor(r, cat).Apply(g), cat)
	m.log.Copied(cat.String())
	if m.opt.Progress != nil {
		m.opt.Progress(m.t.Len())
	}
	return true
}

func (m *merger) passSet(f *source.Font, set ranges.Set, cat ranges.Category) {
	if f == nil {
		return
	}
	set.Runes(func(r rune) bool {
		m.copy(f, r, cat, false, false)
		return true
	})
}

// passJP copies kana and ideographs from the Japanese source.  Digits,
// Hangul and the exclusion list are left for their own passes.
func (m *merger) passJP() {
	if m.src.Japanese == nil {
		return
	}
	m.plan.JP.Runes(func(r rune) bool {
		if ranges.Digits.Contains(r) || ranges.HangulMain.Contains(r) || !ranges.JPAllowed(r) {
			return true
		}
		cat := ranges.Classify(r)
		if cat != ranges.Kana && cat != ranges.Ideograph {
			cat = ranges.Kana
		}
		m.copy(m.src.Japanese, r, cat, false, false)
		return true
	})
}

// passExtras copies the whitelisted additional code points from the
// Japanese source.  Without ExtrasOverwrite an extra only fills slots
// neither an earlier pass nor the base font can provide.
func (m *merger) passExtras() {
	if m.src.Japanese == nil || len(m.opt.Extras) == 0 {
		return
	}
	rr := maps.Keys(m.opt.Extras)
	sort.Slice(rr, func(i, j int) bool { return rr[i] < rr[j] })
	for _, r := range rr {
		if ranges.Digits.Contains(r) || ranges.HangulMain.Contains(r) {
			continue
		}
		if !m.opt.ExtrasOverwrite {
			if _, claimed := m.t.Claim(r); claimed {
				continue
			}
			if g := m.src.Base.OutlineFor(r); !g.IsEmpty() {
				continue
			}
		}
		// extras keep the Japanese source's geometry even when the
		// code point falls in another category's tables
		cat := ranges.Classify(r)
		if cat != ranges.Ideograph {
			cat = ranges.Kana
		}
		m.copy(m.src.Japanese, r, cat, false, m.opt.ExtrasOverwrite)
	}
}

// synthFullwidthDigits fills missing fullwidth digits by cloning the
// ASCII digit glyphs, keeping the ASCII advance width.
func (m *merger) synthFullwidthDigits() {
	for d := rune(0); d < 10; d++ {
		full := 0xFF10 + d
		if !m.plan.Digit.Contains(full) {
			continue
		}
		if _, ok := m.t.Glyph(full); ok {
			continue
		}
		g, ok := m.t.Glyph('0' + d)
		if !ok {
			continue
		}
		m.t.Set(full, g.Clone(), ranges.Digit)
	}
}

// passBase copies everything the base font covers into the remaining
// slots.  Empty base glyphs are kept, so the space character and
// friends survive with their advance widths.
func (m *merger) passBase() {
	for _, r := range m.src.Base.Coverage() {
		if _, claimed := m.t.Claim(r); claimed {
			continue
		}
		m.copy(m.src.Base, r, ranges.Other, true, false)
	}
}

// sweepMissing reports every planned code point which no source could
// provide.
func (m *merger) sweepMissing() {
	check := func(set ranges.Set, cat ranges.Category) {
		set.Runes(func(r rune) bool {
			if cat != ranges.Hangul && ranges.HangulMain.Contains(r) {
				return true
			}
			if cat == ranges.Kana && (ranges.Digits.Contains(r) || !ranges.JPAllowed(r)) {
				return true
			}
			if _, ok := m.t.Glyph(r); !ok {
				m.log.Add(diag.Missing, r, cat.String())
			}
			return true
		})
	}
	check(m.plan.Hangul, ranges.Hangul)
	check(m.plan.Enclosed, ranges.Enclosed)
	check(m.plan.JP, ranges.Kana)
	if !m.opt.PreserveDigits {
		check(m.plan.Digit, ranges.Digit)
	}
}
