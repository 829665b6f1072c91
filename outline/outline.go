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

// Package outline holds the glyph outline representation used while
// merging fonts, together with the per-script geometry transform.
//
// Outlines are value-like: reading a glyph from a source font yields a
// fresh *Glyph, and transforms return new values instead of mutating
// their input.  All curves are cubic; quadratic contours from TrueType
// sources are converted on extraction.
package outline

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/sfnt/cff"
)

// Op is an outline drawing operator.
type Op uint8

const (
	// OpMoveTo starts a new contour at Pts[0].
	OpMoveTo Op = iota

	// OpLineTo draws a straight line to Pts[0].
	OpLineTo

	// OpCurveTo draws a cubic Bézier through the control points Pts[0]
	// and Pts[1] to Pts[2].
	OpCurveTo
)

// Command is a single outline drawing command.
type Command struct {
	Op  Op
	Pts [3]vec.Vec2
}

// Glyph is a glyph outline plus its advance width, in the coordinate
// space of the font it was read from.
type Glyph struct {
	// Name is the glyph name, if the source font provides one.
	Name string

	// Width is the advance width in design units.
	Width float64

	Cmds []Command
}

// FromPath converts an engine path into a Glyph.  Quadratic segments
// are converted to cubics, closed contours are left implicit.
func FromPath(name string, width float64, p path.Path) *Glyph {
	g := &Glyph{Name: name, Width: width}
	if p == nil {
		return g
	}
	for cmd, pts := range p.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			g.Cmds = append(g.Cmds, Command{Op: OpMoveTo, Pts: [3]vec.Vec2{pts[0]}})
		case path.CmdLineTo:
			g.Cmds = append(g.Cmds, Command{Op: OpLineTo, Pts: [3]vec.Vec2{pts[0]}})
		case path.CmdCubeTo:
			g.Cmds = append(g.Cmds, Command{Op: OpCurveTo, Pts: [3]vec.Vec2{pts[0], pts[1], pts[2]}})
		case path.CmdClose:
			// contours close implicitly
		}
	}
	return g
}

// IsEmpty reports whether the glyph has no contours.  Empty glyphs may
// still carry an advance width (for example the space character).
func (g *Glyph) IsEmpty() bool {
	return g == nil || len(g.Cmds) == 0
}

// Clone returns a deep copy of the glyph.
func (g *Glyph) Clone() *Glyph {
	if g == nil {
		return nil
	}
	c := *g
	c.Cmds = make([]Command, len(g.Cmds))
	copy(c.Cmds, g.Cmds)
	return &c
}

// ToCFF converts the glyph into a CFF glyph with the given name.
func (g *Glyph) ToCFF(name string) *cff.Glyph {
	cg := cff.NewGlyph(name, g.Width)
	for _, c := range g.Cmds {
		switch c.Op {
		case OpMoveTo:
			cg.MoveTo(c.Pts[0].X, c.Pts[0].Y)
		case OpLineTo:
			cg.LineTo(c.Pts[0].X, c.Pts[0].Y)
		case OpCurveTo:
			cg.CurveTo(c.Pts[0].X, c.Pts[0].Y, c.Pts[1].X, c.Pts[1].Y, c.Pts[2].X, c.Pts[2].Y)
		}
	}
	return cg
}
