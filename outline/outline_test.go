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

package outline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/vec"
)

func box(name string, width, height float64) *Glyph {
	return &Glyph{
		Name:  name,
		Width: width,
		Cmds: []Command{
			{Op: OpMoveTo, Pts: [3]vec.Vec2{{X: 50, Y: 0}}},
			{Op: OpLineTo, Pts: [3]vec.Vec2{{X: width - 50, Y: 0}}},
			{Op: OpLineTo, Pts: [3]vec.Vec2{{X: width - 50, Y: height}}},
			{Op: OpLineTo, Pts: [3]vec.Vec2{{X: 50, Y: height}}},
		},
	}
}

func TestApply(t *testing.T) {
	g := box("x", 1000, 700)
	tr := Transform{XScale: 0.5, YScale: 2, YShift: 10}

	got := tr.Apply(g)
	want := &Glyph{
		Name:  "x",
		Width: 500,
		Cmds: []Command{
			{Op: OpMoveTo, Pts: [3]vec.Vec2{{X: 25, Y: 10}}},
			{Op: OpLineTo, Pts: [3]vec.Vec2{{X: 475, Y: 10}}},
			{Op: OpLineTo, Pts: [3]vec.Vec2{{X: 475, Y: 1410}}},
			{Op: OpLineTo, Pts: [3]vec.Vec2{{X: 25, Y: 1410}}},
		},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", d)
	}

	// the input glyph is untouched
	if d := cmp.Diff(box("x", 1000, 700), g); d != "" {
		t.Errorf("Apply mutated its input (-want +got):\n%s", d)
	}
}

func TestApplyCurve(t *testing.T) {
	g := &Glyph{
		Width: 100,
		Cmds: []Command{
			{Op: OpMoveTo, Pts: [3]vec.Vec2{{X: 10, Y: 10}}},
			{Op: OpCurveTo, Pts: [3]vec.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}},
		},
	}
	got := Transform{XScale: 2, YScale: 3}.Apply(g)
	want := &Glyph{
		Width: 200,
		Cmds: []Command{
			{Op: OpMoveTo, Pts: [3]vec.Vec2{{X: 20, Y: 30}}},
			{Op: OpCurveTo, Pts: [3]vec.Vec2{{X: 2, Y: 6}, {X: 6, Y: 12}, {X: 10, Y: 18}}},
		},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("curve transform mismatch (-want +got):\n%s", d)
	}
}

func TestIdentity(t *testing.T) {
	if !Identity.IsIdentity() {
		t.Error("Identity is not the identity")
	}
	if NewTransform(1000, 1000, 1, 1, 0) != Identity {
		t.Error("unit multipliers do not give the identity")
	}

	g := box("x", 800, 600)
	got := Identity.Apply(g)
	if d := cmp.Diff(g, got); d != "" {
		t.Errorf("identity changed the glyph (-want +got):\n%s", d)
	}
}

func TestNewTransform(t *testing.T) {
	tr := NewTransform(2048, 1000, 0.9, 0.8, 5.5)
	ratio := 1000.0 / 2048.0
	if tr.XScale != ratio*0.9 || tr.YScale != ratio*0.8 {
		t.Errorf("unexpected scales: %+v", tr)
	}
	if tr.YShift != 55 {
		t.Errorf("YShift = %g, want 55", tr.YShift)
	}
}

func TestShift(t *testing.T) {
	g := box("x", 1000, 700)
	got := Shift(g, 78)

	if got.Width != g.Width {
		t.Errorf("Shift changed the advance: %g", got.Width)
	}
	for i, c := range got.Cmds {
		if c.Pts[0].Y != g.Cmds[i].Pts[0].Y+78 {
			t.Errorf("cmd %d: Y = %g", i, c.Pts[0].Y)
		}
		if c.Pts[0].X != g.Cmds[i].Pts[0].X {
			t.Errorf("cmd %d: X moved", i)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	var g *Glyph
	if !g.IsEmpty() {
		t.Error("nil glyph is not empty")
	}
	if !(&Glyph{Width: 250}).IsEmpty() {
		t.Error("contour-less glyph is not empty")
	}
	if box("x", 100, 100).IsEmpty() {
		t.Error("box is empty")
	}
}
