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

package fontmerge

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/text/language"

	"seehuhn.de/go/sfnt/head"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/fontmerge/bake"
	"seehuhn.de/go/fontmerge/baseline"
	"seehuhn.de/go/fontmerge/diag"
	"seehuhn.de/go/fontmerge/merge"
	"seehuhn.de/go/fontmerge/outline"
	"seehuhn.de/go/fontmerge/ranges"
	"seehuhn.de/go/fontmerge/source"
)

// State tracks how far the build of one style has progressed.
type State int

// The build states, in order.  Failed can be entered from any state.
const (
	StateInit State = iota
	StateSourcesOpened
	StateMerged
	StateBaked
	StateTweaked
	StateFinalized
	StateEmitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSourcesOpened:
		return "sources-opened"
	case StateMerged:
		return "merged"
	case StateBaked:
		return "baked"
	case StateTweaked:
		return "tweaked"
	case StateFinalized:
		return "finalized"
	case StateEmitted:
		return "emitted"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// auditRunes are representative code points checked after tweaking:
// a hiragana, a halfwidth katakana, a common ideograph and an enclosed
// Hangul symbol.  A missing audit glyph is reported but does not fail
// the build.
var auditRunes = []rune{0x3053, 0xFF71, 0x6F22, 0x3260}

// StyleResult reports the outcome of building one style.
type StyleResult struct {
	Style string
	State State

	// Path is the emitted font file, once State is StateEmitted.
	Path string

	Glyphs  int
	Baked   bake.Result
	Tweaked int
	Log     *diag.Log

	Err error
}

// Pipeline builds all styles of a configuration.
type Pipeline struct {
	Config *Config

	// Progress receives the per-style progress lines.  Nil silences
	// progress output.
	Progress io.Writer

	// Animate rewrites the current progress line in place instead of
	// printing one line per update.  Only useful when Progress is a
	// terminal.
	Animate bool
}

// New returns a pipeline for the given configuration.
func New(cfg *Config) *Pipeline {
	return &Pipeline{Config: cfg}
}

// Run builds every configured style.  Styles are isolated: a failure
// aborts only the style it occurred in, and the remaining styles are
// still built.  The returned error is non-nil if any style failed.
func (p *Pipeline) Run() ([]*StyleResult, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.Config.OutputDir, 0o755); err != nil {
		return nil, err
	}

	var results []*StyleResult
	var failed []error
	for _, st := range p.Config.Styles {
		res := p.runStyle(st)
		results = append(results, res)
		if res.Err != nil {
			failed = append(failed, fmt.Errorf("style %s (%s): %w", st.Name, res.State, res.Err))
		}
	}
	if len(failed) > 0 {
		return results, errors.Join(failed...)
	}
	return results, nil
}

func (p *Pipeline) runStyle(st Style) *StyleResult {
	cfg := p.Config
	res := &StyleResult{Style: st.Name, State: StateInit}
	fail := func(err error) *StyleResult {
		res.State = StateFailed
		res.Err = err
		return res
	}

	p.printf(st.Name, "opening sources")
	srcs, err := p.openSources(st)
	if err != nil {
		return fail(err)
	}
	res.State = StateSourcesOpened

	log := diag.New(cfg.Verbose, cfg.MaxLogEntries)
	res.Log = log

	target, err := merge.Merge(srcs, merge.Options{
		Transforms:      p.transforms(srcs),
		Plan:            cfg.Plan,
		Extras:          ranges.ExtraSet(cfg.JPExtraGlyphs),
		ExtrasOverwrite: cfg.JPExtraOverwrite,
		PreserveDigits:  cfg.PreserveDigits,
		Progress:        p.glyphProgress(st.Name),
	}, log)
	if err != nil {
		return fail(err)
	}
	res.State = StateMerged
	res.Glyphs = target.Len()
	p.printf(st.Name, "merged %d glyphs", target.Len())

	baked, err := bake.Bake(target, srcs.Base, bake.Config{
		Tags:      cfg.featureTags(),
		Swash:     cfg.Swash,
		Suffixes:  cfg.ExtraSuffixes,
		SlashZero: cfg.SlashZero,
		Protected: cfg.Protected,
		QuoteFix:  cfg.QuoteFix,
		Language:  language.Und,
	}, log)
	res.Baked = baked
	if err != nil {
		var rle *bake.RuleLoadError
		if !errors.As(err, &rle) {
			return fail(err)
		}
		// no substitution rules: emit without baked features
		p.printf(st.Name, "warning: %v", err)
	}
	res.State = StateBaked
	p.printf(st.Name, "baked %d substitutions", baked.Applied)

	res.Tweaked = baseline.Tweak(target, cfg.Baseline)
	res.State = StateTweaked
	p.printf(st.Name, "raised %d baseline glyphs", res.Tweaked)

	for _, r := range auditRunes {
		if _, ok := target.Glyph(r); !ok {
			p.printf(st.Name, "audit: %s missing", diag.FormatRune(r))
		}
	}

	version, err := parseVersion(cfg.Version)
	if err != nil {
		p.printf(st.Name, "warning: %v", err)
	}
	info, err := target.Finalize(merge.Naming{
		Family:    cfg.Family,
		Subfamily: st.Name,
		Version:   version,
		Weight:    os2.Weight(st.Weight),
		IsBold:    st.Bold,
		IsRegular: !st.Bold,
	})
	if err != nil {
		return fail(err)
	}
	res.State = StateFinalized

	outPath := filepath.Join(cfg.OutputDir, cfg.FileBase+"-"+st.Name+".otf")
	emit := func(w io.Writer) error {
		_, err := info.Write(w)
		return err
	}
	if err := writeAtomic(outPath, emit); err != nil {
		return fail(err)
	}
	res.Path = outPath
	res.State = StateEmitted
	p.printf(st.Name, "wrote %s", outPath)

	logPath := filepath.Join(cfg.OutputDir, cfg.FileBase+"-"+st.Name+".map.log")
	if err := p.writeLog(logPath, st.Name, log); err != nil {
		p.printf(st.Name, "warning: mapping log: %v", err)
	}

	return res
}

// openSources opens the four source fonts of a style.  A missing path
// for a non-base source skips the corresponding merge passes.
func (p *Pipeline) openSources(st Style) (merge.Sources, error) {
	var srcs merge.Sources
	var err error

	srcs.Base, err = source.Open(st.BasePath)
	if err != nil {
		return srcs, err
	}
	open := func(path string) (*source.Font, error) {
		if path == "" {
			return nil, nil
		}
		return source.Open(path)
	}
	if srcs.Hangul, err = open(st.HangulPath); err != nil {
		return srcs, err
	}
	if srcs.Japanese, err = open(st.JapanesePath); err != nil {
		return srcs, err
	}
	if srcs.Digit, err = open(st.DigitPath); err != nil {
		return srcs, err
	}
	return srcs, nil
}

// transforms builds the per-category geometry for one style, combining
// each source's units-per-em ratio with the configured multipliers.
func (p *Pipeline) transforms(srcs merge.Sources) map[ranges.Category]outline.Transform {
	g := p.Config.Geometry
	baseUPM := srcs.Base.UnitsPerEm()
	upm := func(f *source.Font) uint16 {
		if f == nil {
			return baseUPM
		}
		return f.UnitsPerEm()
	}

	jp := outline.NewTransform(upm(srcs.Japanese), baseUPM, g.JPX, g.JPY, 0)
	return map[ranges.Category]outline.Transform{
		ranges.Other:     outline.NewTransform(baseUPM, baseUPM, g.BaseX, g.BaseY, 0),
		ranges.Digit:     outline.NewTransform(upm(srcs.Digit), baseUPM, g.DigitX, g.DigitY, 0),
		ranges.Hangul:    outline.NewTransform(upm(srcs.Hangul), baseUPM, g.HangulX, g.HangulY, g.HangulBaselinePct),
		ranges.Enclosed:  outline.NewTransform(upm(srcs.Hangul), baseUPM, g.EnclosedX, g.EnclosedY, g.EnclosedBaselinePct),
		ranges.Kana:      jp,
		ranges.Ideograph: jp,
	}
}

// glyphProgress returns the throttled per-glyph progress callback, or
// nil if progress is disabled.
func (p *Pipeline) glyphProgress(style string) func(int) {
	every := p.Config.ProgressEvery
	if p.Progress == nil || every <= 0 {
		return nil
	}
	return func(n int) {
		if n%every != 0 {
			return
		}
		if p.Animate {
			fmt.Fprintf(p.Progress, "\r%s: %d glyphs", style, n)
		} else {
			fmt.Fprintf(p.Progress, "%s: %d glyphs\n", style, n)
		}
	}
}

func (p *Pipeline) printf(style, format string, args ...interface{}) {
	if p.Progress == nil {
		return
	}
	if p.Animate {
		fmt.Fprint(p.Progress, "\r\033[K")
	}
	fmt.Fprintf(p.Progress, "%s: %s\n", style, fmt.Sprintf(format, args...))
}

// parseVersion converts a version string like "1.000" into the 16.16
// fixed point font revision.  An empty string means version 0.
func parseVersion(s string) (head.Version, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v >= 0x8000 {
		return 0, fmt.Errorf("invalid font version %q", s)
	}
	return head.Version(math.Round(v * 65536)), nil
}

// writeAtomic writes a file via a temporary name in the same directory
// and renames it into place, so that a crash cannot leave a truncated
// font behind.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// writeLog writes the mapping log for one style.
func (p *Pipeline) writeLog(path, style string, log *diag.Log) error {
	cfg := p.Config
	tmp := func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "# %s %s (%s)\n# generated %s\n\n",
			cfg.Family, style, cfg.Version, time.Now().Format(time.RFC3339))
		if err != nil {
			return err
		}
		_, err = log.WriteTo(w)
		return err
	}
	return writeAtomic(path, tmp)
}
