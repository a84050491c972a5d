// wheel/draw.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wheel

import (
	"github.com/mmp/diversionwheel/math"
	"github.com/mmp/diversionwheel/renderer"
)

// bearingFrame returns a transformation that rotates the y axis to point
// along the given compass bearing (i.e., clockwise from up).
func bearingFrame(deg float32) math.Matrix3 {
	return math.Identity3x3().Rotate(-math.Radians(deg))
}

// Draw issues the drawing commands for the wheel to c. Everything is
// drawn in a frame centered on the page, mirrored if the layout is
// flipped; each tick and wind marker is drawn in its own rotated frame.
func Draw(c renderer.Canvas, l *Layout) {
	c.SaveState()
	root := math.Identity3x3().Translate(l.Center[0], l.Center[1])
	if l.Flipped {
		root = root.Scale(-1, 1)
	}
	c.Transform(root)

	var origin [2]float32
	c.Circle(origin, l.R4)
	c.Circle(origin, l.R2)

	for _, t := range l.Ticks {
		c.SaveState()
		c.Transform(bearingFrame(t.Angle))

		c.Line([2]float32{0, l.R4}, [2]float32{0, l.R4 - t.Outer})
		if t.Inner > 0 {
			c.Line([2]float32{0, l.R2}, [2]float32{0, l.R2 - t.Inner})
		}
		if t.Label != "" {
			x := -c.StringWidth(t.Label) / 2
			c.Text([2]float32{x, l.R4 - l.LabelInset}, t.Label)
		}

		c.RestoreState()
	}

	for _, d := range l.WindMarkers {
		c.SaveState()
		c.Transform(bearingFrame(l.WindDirection).Translate(0, d))
		c.Circle(origin, l.MarkerRadius)
		c.RestoreState()
	}

	ext := l.GridExtent
	for _, v := range l.Grid {
		c.Line([2]float32{v, -ext}, [2]float32{v, ext})
		c.Line([2]float32{-ext, v}, [2]float32{ext, v})
	}

	c.RestoreState()
}
