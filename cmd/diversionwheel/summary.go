// cmd/diversionwheel/summary.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"github.com/mmp/diversionwheel/renderer"
	"github.com/mmp/diversionwheel/wheel"

	"github.com/iancoleman/orderedmap"
)

// Summarize describes a rendered page; the keys are kept in a fixed order
// so that the JSON output is easy to read and to diff.
func Summarize(pg *wheel.Page, path string) *orderedmap.OrderedMap {
	l, cb := pg.Layout(), pg.Commands()
	c := pg.Census()

	radii := orderedmap.New()
	radii.Set("r2", l.R2)
	radii.Set("r4", l.R4)
	radii.Set("wind_markers", l.WindMarkers)

	census := orderedmap.New()
	census.Set("rings", c.Rings)
	census.Set("outer_ticks", c.OuterTicks)
	census.Set("inner_ticks", c.InnerTicks)
	census.Set("labels", c.Labels)
	census.Set("wind_markers", c.WindMarkers)
	census.Set("grid_lines", c.GridLines)
	census.Set("grid_columns", c.GridColumns)
	census.Set("grid_rows", c.GridRows)
	if c.Other > 0 {
		census.Set("other", c.Other)
	}

	b := cb.Bounds()
	bounds := orderedmap.New()
	bounds.Set("min", b.P0)
	bounds.Set("max", b.P1)
	bounds.Set("center_offset", pg.CenterOffset())

	s := orderedmap.New()
	s.SetEscapeHTML(false)
	s.Set("output", path)
	s.Set("params", pg.Params().String())
	s.Set("pt_per_nm", l.Units.PtPerNM)
	s.Set("radii_pt", radii)
	s.Set("census", census)
	s.Set("commands", len(cb.Commands))
	s.Set("lines", cb.Count(renderer.OpLine))
	s.Set("circles", cb.Count(renderer.OpCircle))
	s.Set("bounds_pt", bounds)
	return s
}
