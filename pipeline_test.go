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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/fontmerge/internal/fonttest"
	"seehuhn.de/go/fontmerge/merge"
	"seehuhn.de/go/fontmerge/ranges"
)

func writeFont(t *testing.T, dir, name string, info *sfnt.Font) string {
	t.Helper()
	path := filepath.Join(dir, name)
	fd, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := info.Write(fd); err != nil {
		t.Fatal(err)
	}
	if err := fd.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// testConfig builds a configuration with four single-glyph sources and
// a plan covering exactly those four code points.
func testConfig(t *testing.T, styles []Style) *Config {
	t.Helper()
	dir := t.TempDir()

	base := writeFont(t, dir, "base.otf", fonttest.New(1000, []fonttest.Glyph{
		{Rune: 'A', Name: "A", Width: 600, Height: 700},
	}))
	hangul := writeFont(t, dir, "hangul.otf", fonttest.New(1000, []fonttest.Glyph{
		{Rune: 0xAC00, Name: "ga", Width: 1000, Height: 760},
	}))
	jp := writeFont(t, dir, "jp.otf", fonttest.New(1000, []fonttest.Glyph{
		{Rune: 0x3042, Name: "a_hira", Width: 1000, Height: 730},
	}))
	digit := writeFont(t, dir, "digit.otf", fonttest.New(1000, []fonttest.Glyph{
		{Rune: '0', Name: "zero", Width: 550, Height: 690},
	}))

	cfg := DefaultConfig()
	cfg.Family = "Composite Sans"
	cfg.FileBase = "CompositeSans"
	cfg.Version = "1.000"
	cfg.OutputDir = filepath.Join(dir, "dist")
	cfg.Plan = &merge.Plan{
		Hangul: ranges.Set{{Lo: 0xAC00, Hi: 0xAC00}},
		JP:     ranges.Set{{Lo: 0x3042, Hi: 0x3042}},
		Digit:  ranges.Set{{Lo: 0x0030, Hi: 0x0030}},
	}
	for i := range styles {
		styles[i].BasePath = base
		styles[i].HangulPath = hangul
		styles[i].JapanesePath = jp
		styles[i].DigitPath = digit
	}
	cfg.Styles = styles
	return cfg
}

func TestPipelineEndToEnd(t *testing.T) {
	cfg := testConfig(t, []Style{
		{Name: "Light", Weight: 300},
		{Name: "Regular", Weight: 400},
		{Name: "Bold", Weight: 700, Bold: true},
	})

	results, err := New(cfg).Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("%d results", len(results))
	}

	for _, res := range results {
		if res.State != StateEmitted {
			t.Fatalf("%s: state %s, err %v", res.Style, res.State, res.Err)
		}
		if res.Glyphs != 4 {
			t.Errorf("%s: %d glyphs, want 4", res.Style, res.Glyphs)
		}
		if !res.Log.IsClean() {
			t.Errorf("%s: diagnostics not clean", res.Style)
		}
		if !strings.HasSuffix(res.Path, "CompositeSans-"+res.Style+".otf") {
			t.Errorf("%s: output path %q", res.Style, res.Path)
		}

		info, err := sfnt.ReadFile(res.Path)
		if err != nil {
			t.Fatalf("%s: %v", res.Style, err)
		}
		if info.NumGlyphs() != 5 {
			t.Errorf("%s: %d glyphs in output, want 5", res.Style, info.NumGlyphs())
		}
		if info.FamilyName != "Composite Sans" {
			t.Errorf("%s: family %q", res.Style, info.FamilyName)
		}
		if v := info.Version.String(); v != "1.000" {
			t.Errorf("%s: version %q", res.Style, v)
		}

		cm, err := info.CMapTable.GetBest()
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range []rune{'A', '0', 0x3042, 0xAC00} {
			if cm.Lookup(r) == 0 {
				t.Errorf("%s: U+%04X not mapped in output", res.Style, r)
			}
		}

		logPath := strings.TrimSuffix(res.Path, ".otf") + ".map.log"
		body, err := os.ReadFile(logPath)
		if err != nil {
			t.Errorf("%s: mapping log: %v", res.Style, err)
		} else if !strings.Contains(string(body), "# summary") {
			t.Errorf("%s: mapping log has no summary", res.Style)
		}
	}

	bold, err := sfnt.ReadFile(results[2].Path)
	if err != nil {
		t.Fatal(err)
	}
	if !bold.IsBold || bold.Weight != 700 {
		t.Errorf("bold style flags: bold=%t weight=%d", bold.IsBold, bold.Weight)
	}
}

func TestPipelineStyleIsolation(t *testing.T) {
	cfg := testConfig(t, []Style{
		{Name: "Broken", Weight: 400},
		{Name: "Regular", Weight: 400},
	})
	cfg.Styles[0].BasePath = filepath.Join(t.TempDir(), "missing.otf")

	results, err := New(cfg).Run()
	if err == nil {
		t.Fatal("no error although a style failed")
	}
	if results[0].State != StateFailed || results[0].Err == nil {
		t.Errorf("broken style: state %s", results[0].State)
	}
	// the second style is still built
	if results[1].State != StateEmitted {
		t.Errorf("good style: state %s, err %v", results[1].State, results[1].Err)
	}
}

func TestPipelineNoGsubStillEmits(t *testing.T) {
	// the test sources carry no GSUB table at all; baking is skipped
	// with a warning, but the fonts above were still emitted.  This
	// checks the result explicitly for a single style.
	cfg := testConfig(t, []Style{{Name: "Regular", Weight: 400}})

	results, err := New(cfg).Run()
	if err != nil {
		t.Fatal(err)
	}
	res := results[0]
	if res.State != StateEmitted {
		t.Fatalf("state %s, err %v", res.State, res.Err)
	}
	if res.Baked.Applied != 0 {
		t.Errorf("baked %d substitutions without a GSUB table", res.Baked.Applied)
	}
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("1.000")
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x00010000 {
		t.Errorf("parseVersion(1.000) = %#x", uint32(v))
	}
	if v, err := parseVersion(""); err != nil || v != 0 {
		t.Errorf("empty version: %d, %v", v, err)
	}
	if _, err := parseVersion("x"); err == nil {
		t.Error("no error for a malformed version")
	}
}

func TestStateString(t *testing.T) {
	if StateInit.String() != "init" || StateEmitted.String() != "emitted" {
		t.Error("unexpected state names")
	}
	if StateFailed.String() != "failed" {
		t.Error("unexpected failed name")
	}
	if State(99).String() == "" {
		t.Error("out-of-range state has no name")
	}
}
