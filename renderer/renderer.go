// renderer/renderer.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"fmt"
	"log/slog"

	"github.com/mmp/diversionwheel/math"
)

// FontMetrics provides measurements of text set in a canvas's font.
type FontMetrics interface {
	// StringWidth returns the width of s in points.
	StringWidth(s string) float32
}

// Canvas defines an interface for all of the drawing that happens when
// rendering a page. Coordinates are in points with y pointing up; the
// origin is wherever the current transformation puts it.
type Canvas interface {
	FontMetrics

	// SaveState pushes the current transformation so that a later
	// RestoreState can return to it.
	SaveState()
	RestoreState()

	// Transform post-multiplies the current transformation by m, so that
	// subsequent coordinates are transformed by m first.
	Transform(m math.Matrix3)

	// Line strokes a single line segment.
	Line(p0, p1 [2]float32)

	// Circle strokes the outline of a circle.
	Circle(center [2]float32, radius float32)

	// Text draws s with its baseline starting at p.
	Text(p [2]float32, s string)
}

// RendererStats encapsulates assorted statistics from rendering.
type RendererStats struct {
	nStateChanges, nTransforms int
	nLines, nCircles, nText    int
	nSegments                  int
}

func (rs *RendererStats) String() string {
	return fmt.Sprintf("%d state changes, %d transforms: %d lines, %d circles (%d segments), %d text",
		rs.nStateChanges, rs.nTransforms, rs.nLines, rs.nCircles, rs.nSegments, rs.nText)
}

func (rs RendererStats) Lines() int   { return rs.nLines }
func (rs RendererStats) Circles() int { return rs.nCircles }
func (rs RendererStats) Text() int    { return rs.nText }

// Segments returns the number of straight path segments emitted, which
// includes the ones used to approximate circles.
func (rs RendererStats) Segments() int { return rs.nSegments }

func (rs RendererStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("state_changes", rs.nStateChanges),
		slog.Int("transforms", rs.nTransforms),
		slog.Int("lines", rs.nLines),
		slog.Int("circles", rs.nCircles),
		slog.Int("segments", rs.nSegments),
		slog.Int("text", rs.nText),
	)
}
