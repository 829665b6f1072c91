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

import "seehuhn.de/go/geom/vec"

// Transform scales an outline and shifts it vertically.  A transform is
// applied exactly once per copied glyph, at copy time.
type Transform struct {
	XScale, YScale float64

	// YShift is added to Y coordinates after scaling, in target design
	// units.
	YShift float64
}

// Identity is the no-op transform.
var Identity = Transform{XScale: 1, YScale: 1}

// NewTransform combines the units-per-em ratio between a source and the
// target with a per-script multiplier and a baseline shift given as a
// percentage of the target's units per em.
func NewTransform(srcUPM, dstUPM uint16, xMul, yMul, baselinePct float64) Transform {
	ratio := 1.0
	if srcUPM != 0 {
		ratio = float64(dstUPM) / float64(srcUPM)
	}
	return Transform{
		XScale: ratio * xMul,
		YScale: ratio * yMul,
		YShift: baselinePct / 100 * float64(dstUPM),
	}
}

// IsIdentity reports whether applying the transform would leave a glyph
// unchanged.
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// Apply returns a transformed copy of g.  The advance width scales with
// XScale; YShift moves contours only.
func (t Transform) Apply(g *Glyph) *Glyph {
	if g == nil {
		return nil
	}
	if t.IsIdentity() {
		return g.Clone()
	}
	out := &Glyph{
		Name:  g.Name,
		Width: g.Width * t.XScale,
		Cmds:  make([]Command, len(g.Cmds)),
	}
	for i, c := range g.Cmds {
		nc := Command{Op: c.Op}
		for j := 0; j < c.Op.numPoints(); j++ {
			nc.Pts[j] = vec.Vec2{
				X: c.Pts[j].X * t.XScale,
				Y: c.Pts[j].Y*t.YScale + t.YShift,
			}
		}
		out.Cmds[i] = nc
	}
	return out
}

func (op Op) numPoints() int {
	if op == OpCurveTo {
		return 3
	}
	return 1
}

// Shift returns a copy of g with every contour moved up by dy design
// units.  The advance width is unchanged.
func Shift(g *Glyph, dy float64) *Glyph {
	if g == nil || dy == 0 {
		return g.Clone()
	}
	out := g.Clone()
	for i := range out.Cmds {
		for j := 0; j < out.Cmds[i].Op.numPoints(); j++ {
			out.Cmds[i].Pts[j].Y += dy
		}
	}
	return out
}
