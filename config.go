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
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"seehuhn.de/go/fontmerge/baseline"
	"seehuhn.de/go/fontmerge/merge"
	"seehuhn.de/go/fontmerge/ranges"
)

// Geometry holds the per-category scale multipliers and baseline shifts.
// Multipliers apply on top of the units-per-em ratio between a source
// and the base; baseline shifts are percentages of the base UPM.
type Geometry struct {
	BaseX float64 `json:"baseX"`
	BaseY float64 `json:"baseY"`

	DigitX float64 `json:"digitX"`
	DigitY float64 `json:"digitY"`

	HangulX           float64 `json:"hangulX"`
	HangulY           float64 `json:"hangulY"`
	HangulBaselinePct float64 `json:"hangulBaselinePct"`

	EnclosedX           float64 `json:"enclosedX"`
	EnclosedY           float64 `json:"enclosedY"`
	EnclosedBaselinePct float64 `json:"enclosedBaselinePct"`

	JPX float64 `json:"jpX"`
	JPY float64 `json:"jpY"`
}

// Style names one output font and the four source files it is merged
// from.
type Style struct {
	// Name is the subfamily name, and the suffix of the output file.
	Name string `json:"name"`

	// Weight is the OS/2 usWeightClass value, for example 500 for
	// Medium.
	Weight int `json:"weight"`

	// Bold marks the style for the bold bit of the head and OS/2
	// tables.
	Bold bool `json:"bold"`

	BasePath     string `json:"base"`
	HangulPath   string `json:"hangul"`
	JapanesePath string `json:"japanese"`
	DigitPath    string `json:"digit"`
}

// Config collects everything one build run needs.  A Config is treated
// as immutable once the pipeline starts.
type Config struct {
	// Family is the family name written into each output font.
	Family string `json:"family"`

	// Version is the version string written into each output font.
	Version string `json:"version"`

	// FileBase is the family part of the output file names; output
	// files are named "<FileBase>-<StyleName>.otf".
	FileBase string `json:"fileBase"`

	// OutputDir receives the generated fonts and the mapping logs.
	OutputDir string `json:"outputDir"`

	Styles []Style `json:"styles"`

	Geometry Geometry         `json:"geometry"`
	Baseline baseline.Offsets `json:"baseline"`

	// PreserveDigits keeps the base font's digits instead of merging
	// the digit source.
	PreserveDigits bool `json:"preserveDigits"`

	// StylisticSets and FeatureTags are the always-on features baked
	// into the outlines.
	StylisticSets []string `json:"stylisticSets"`
	FeatureTags   []string `json:"featureTags"`
	Swash         bool     `json:"swash"`
	SlashZero     bool     `json:"slashZero"`

	// ExtraSuffixes are glyph name suffixes scanned as a bake fallback.
	ExtraSuffixes []string `json:"extraSuffixes"`

	// Plan optionally narrows the code point ranges the merge passes
	// visit; nil uses the full built-in tables.
	Plan *merge.Plan `json:"plan,omitempty"`

	// Protected are the code point ranges exempt from baking.
	Protected ranges.Set `json:"protected"`

	// QuoteFix lists code points recopied from the base after baking.
	QuoteFix []rune `json:"quoteFix"`

	// JPExtraGlyphs are additional code points taken from the Japanese
	// source, given as a literal string of characters.
	JPExtraGlyphs    string `json:"jpExtraGlyphs"`
	JPExtraOverwrite bool   `json:"jpExtraOverwrite"`

	// ProgressEvery throttles per-glyph progress output; a progress
	// line is printed every that many merged glyphs.  Zero disables
	// per-glyph progress.
	ProgressEvery int `json:"progressEvery"`

	// Verbose retains individual diagnostic events in the mapping log,
	// up to MaxLogEntries per style.
	Verbose       bool `json:"verbose"`
	MaxLogEntries int  `json:"maxLogEntries"`
}

// jpExtraGlyphsDefault is the stock whitelist of symbols which are only
// available in the Japanese source: corporate marks, units, box drawing
// and block elements, math and game symbols, and the kana iteration
// marks.
const jpExtraGlyphsDefault = "㈱㈲㍿㍑㌔㌢㌦㌧㌫" +
	"｡｢｣､" +
	"♠♣♦" +
	"∇∈∉⊂⊃⊆⊇∧∨¬" +
	"々〻〆〇" +
	"〰〽〒〠〓" +
	"⓵⓶⓷⓸⓹" +
	"㊀㊁㊂㊃㊄" +
	"㈠㈡㈢㈣㈤" +
	"─━│┃┌┏┐┓└┗┘┛├┣┤┫┬┳┴┻┼╋" +
	"░▒▓█▁▂▃▄▅▆▇▉▊▋▌▍▎▏" +
	"⤴⤵" +
	"∓≡" +
	"⇄⇆⇋⇌" +
	"∩∪∴∵∝∟∠∃∀" +
	"▫♤♧♢♡" +
	"⊕⊗⊙⊠⊥⊖⊘" +
	"┌┍┎┏┐┑┒┓└┕┖┗┘┙┚┛├┝┞┟┤┥┦┧" +
	"┬┭┮┯┰┱┲┳┴┵┶┷┸┹┺┻┼┽┾┿╀╁╂╃╄╅╆╇╈╉╊╋" +
	"▣▤▥▦▧▨▩▱✂" +
	"ᆞᆢ"

// DefaultConfig returns the stock build configuration.  Source paths
// and style names must still be filled in.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "dist",

		Geometry: Geometry{
			BaseX:  0.96,
			BaseY:  1.00,
			DigitX: 0.96,
			DigitY: 1.00,

			HangulX:           0.94 * 0.94,
			HangulY:           0.94,
			HangulBaselinePct: 5.5,

			EnclosedX:           0.94 * 0.94 * 0.8957,
			EnclosedY:           0.94 * 0.8957,
			EnclosedBaselinePct: 10,

			JPX: 0.9375 * 0.96,
			JPY: 0.9375,
		},
		Baseline: baseline.DefaultOffsets,

		StylisticSets: []string{"ss01", "ss02", "ss03", "ss06", "ss08"},
		FeatureTags:   []string{"case"},
		SlashZero:     true,

		Protected: ranges.ProtectedDefault,
		QuoteFix:  []rune{0x2018, 0x2019, 0x201C, 0x201D},

		JPExtraGlyphs: jpExtraGlyphsDefault,

		ProgressEvery: 100,
		MaxLogEntries: 1000,
	}
}

// LoadConfig reads a JSON configuration file on top of the defaults.
// Fields absent from the file keep their default values; slices given
// in the file replace the defaults wholesale.
func LoadConfig(path string) (*Config, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(body, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is complete enough to run.
func (c *Config) Validate() error {
	if c.Family == "" {
		return errors.New("config: no family name")
	}
	if c.FileBase == "" {
		return errors.New("config: no output file base")
	}
	if len(c.Styles) == 0 {
		return errors.New("config: no styles")
	}
	for i, st := range c.Styles {
		if st.Name == "" {
			return fmt.Errorf("config: style %d has no name", i)
		}
		if st.BasePath == "" {
			return fmt.Errorf("config: style %q has no base font", st.Name)
		}
	}
	return nil
}

// featureTags collects the always-on feature tags as a set.
func (c *Config) featureTags() map[string]bool {
	tags := make(map[string]bool, len(c.StylisticSets)+len(c.FeatureTags))
	for _, tag := range c.StylisticSets {
		tags[tag] = true
	}
	for _, tag := range c.FeatureTags {
		tags[tag] = true
	}
	return tags
}
