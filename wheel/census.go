// wheel/census.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wheel

import (
	"github.com/mmp/diversionwheel/renderer"
)

// Census counts the elements of a recorded wheel by kind.
type Census struct {
	Rings       int
	OuterTicks  int
	InnerTicks  int
	Labels      int
	WindMarkers int
	GridLines   int
	// Distinct positions of the vertical and horizontal grid lines.
	GridColumns int
	GridRows    int
	// Anything that couldn't be classified.
	Other int
}

// TakeCensus classifies the commands in cb, which must have been recorded
// by Draw with the given layout. Elements are told apart by where they
// were drawn: rings and grid lines in the wheel frame, ticks and wind
// markers in a rotated frame nested one level deeper. If the two rings
// coincide (zero groundspeed), inner ticks are counted as outer ones.
func TakeCensus(cb *renderer.CommandBuffer, l *Layout) Census {
	var c Census
	columns, rows := make(map[float32]any), make(map[float32]any)

	for _, cmd := range cb.Commands {
		switch cmd.Op {
		case renderer.OpCircle:
			switch {
			case cmd.Depth == 1 && (cmd.Radius == l.R4 || cmd.Radius == l.R2):
				c.Rings++
			case cmd.Depth == 2 && cmd.Radius == l.MarkerRadius:
				c.WindMarkers++
			default:
				c.Other++
			}

		case renderer.OpLine:
			p0, p1 := cmd.P[0], cmd.P[1]
			switch {
			case cmd.Depth == 1 && p0[0] == p1[0]:
				c.GridLines++
				columns[p0[0]] = nil
			case cmd.Depth == 1 && p0[1] == p1[1]:
				c.GridLines++
				rows[p0[1]] = nil
			case cmd.Depth == 2 && p0[0] == 0 && p0[1] == l.R4:
				c.OuterTicks++
			case cmd.Depth == 2 && p0[0] == 0 && p0[1] == l.R2:
				c.InnerTicks++
			default:
				c.Other++
			}

		case renderer.OpText:
			c.Labels++
		}
	}

	c.GridColumns, c.GridRows = len(columns), len(rows)
	return c
}
