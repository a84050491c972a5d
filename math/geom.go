// math/geom.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// Extent2D

// Extent2D represents a 2D bounding box with the two vertices at its
// opposite minimum and maximum corners.
type Extent2D struct {
	P0, P1 [2]float32
}

// EmptyExtent2D returns an Extent2D representing an empty bounding box.
func EmptyExtent2D() Extent2D {
	// Degenerate bounds
	return Extent2D{P0: [2]float32{1e30, 1e30}, P1: [2]float32{-1e30, -1e30}}
}

func (e Extent2D) IsEmpty() bool {
	return e.P0[0] > e.P1[0] || e.P0[1] > e.P1[1]
}

func (e Extent2D) Width() float32 {
	return e.P1[0] - e.P0[0]
}

func (e Extent2D) Height() float32 {
	return e.P1[1] - e.P0[1]
}

func (e Extent2D) Center() [2]float32 {
	return [2]float32{(e.P0[0] + e.P1[0]) / 2, (e.P0[1] + e.P1[1]) / 2}
}

func (e Extent2D) Inside(p [2]float32) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

func Union(e Extent2D, p [2]float32) Extent2D {
	e.P0[0] = min(e.P0[0], p[0])
	e.P0[1] = min(e.P0[1], p[1])
	e.P1[0] = max(e.P1[0], p[0])
	e.P1[1] = max(e.P1[1], p[1])
	return e
}

var (
	// circlePoints caches vertex positions of a unit circle at the origin
	// for specified tessellation rates.
	circlePoints map[int][][2]float32
)

// CirclePoints returns the vertices for a unit circle at the origin with
// the given number of segments. The first vertex is at (1,0) and the rest
// follow counter-clockwise; the closing vertex is not repeated. The slice
// is cached and must not be modified by the caller.
func CirclePoints(nsegs int) [][2]float32 {
	if circlePoints == nil {
		circlePoints = make(map[int][][2]float32)
	}
	if _, ok := circlePoints[nsegs]; !ok {
		var pts [][2]float32
		for d := 0; d < nsegs; d++ {
			angle := Radians(float32(d) / float32(nsegs) * 360)
			pts = append(pts, [2]float32{Cos(angle), Sin(angle)})
		}
		circlePoints[nsegs] = pts
	}

	return circlePoints[nsegs]
}
