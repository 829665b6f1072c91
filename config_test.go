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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Geometry.HangulX != 0.94*0.94 || cfg.Geometry.JPY != 0.9375 {
		t.Errorf("unexpected geometry: %+v", cfg.Geometry)
	}
	if !cfg.SlashZero {
		t.Error("slashed zero not enabled by default")
	}
	want := []string{"ss01", "ss02", "ss03", "ss06", "ss08"}
	if d := cmp.Diff(want, cfg.StylisticSets); d != "" {
		t.Errorf("stylistic sets (-want +got):\n%s", d)
	}
	if !cfg.Protected.Contains(0x0041) || cfg.Protected.Contains(0x3042) {
		t.Error("unexpected protected ranges")
	}
	tags := cfg.featureTags()
	if !tags["ss01"] || !tags["case"] {
		t.Errorf("feature tags: %v", tags)
	}
}

func TestLoadConfig(t *testing.T) {
	body := `{
		"family": "Composite Sans",
		"fileBase": "CompositeSans",
		"version": "1.000",
		"styles": [
			{"name": "Medium", "weight": 500, "base": "base.otf"}
		],
		"slashZero": false,
		"geometry": {"hangulBaselinePct": 6},
		"baseline": {"mathPct": 8}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o666); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Family != "Composite Sans" || len(cfg.Styles) != 1 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.SlashZero {
		t.Error("slashZero override not applied")
	}
	if cfg.Geometry.HangulBaselinePct != 6 || cfg.Baseline.MathPct != 8 {
		t.Errorf("nested overrides not applied: %+v %+v", cfg.Geometry, cfg.Baseline)
	}
	// fields absent from the file keep their defaults
	if cfg.ProgressEvery != 100 || cfg.Geometry.BaseX != 0.96 ||
		cfg.Baseline.DashArrowPct != 5.8 {
		t.Error("defaults lost in overlay")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig("no/such/file.json"); err == nil {
		t.Error("no error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{"), 0o666)
	if _, err := LoadConfig(path); err == nil {
		t.Error("no error for malformed JSON")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("empty config validates")
	}

	cfg.Family = "X"
	cfg.FileBase = "X"
	cfg.Styles = []Style{{Name: "Regular"}}
	if err := cfg.Validate(); err == nil {
		t.Error("style without base font validates")
	}

	cfg.Styles[0].BasePath = "base.otf"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
