// wheel/layout.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wheel

import (
	"strconv"
)

const (
	TickStep  = 5  // degrees between ticks on the outer ring
	LabelStep = 30 // degrees between labels

	// Paper distances, in centimeters.
	LongTickCm     = 0.4
	ShortTickCm    = 0.2
	LabelInsetCm   = 1.0 // from the outer ring to the label baseline
	MarkerRadiusCm = 0.1

	// The reference grid, in nautical miles.
	GridExtentNM = 8
	GridStepNM   = 2
)

// Distance rings and wind markers are drawn for these flight times, in
// minutes; the first is the outer ring.
var ringMinutes = [2]float32{4, 2}

// OuterTickCm returns the length of the tick on the outer ring at the
// given bearing.
func OuterTickCm(bearing int) float32 {
	if bearing%10 == 0 {
		return LongTickCm
	}
	return ShortTickCm
}

// InnerTickCm returns the length of the tick on the inner ring at the
// given bearing; there are only inner ticks every 10 degrees.
func InnerTickCm(bearing int) (float32, bool) {
	if bearing%10 != 0 {
		return 0, false
	}
	if bearing%LabelStep == 0 {
		return LongTickCm, true
	}
	return ShortTickCm, true
}

// Label returns the text printed at the given bearing: the cardinal
// directions spelled out and bearing/10 at the other multiples of 30.
func Label(bearing int) (string, bool) {
	switch bearing {
	case 0:
		return "N", true
	case 90:
		return "E", true
	case 180:
		return "S", true
	case 270:
		return "W", true
	}
	if bearing%LabelStep == 0 {
		return strconv.Itoa(bearing / 10), true
	}
	return "", false
}

// Tick describes everything drawn at one bearing of the compass rose.
type Tick struct {
	Bearing int     // degrees, as labeled
	Angle   float32 // degrees clockwise from the top of the page
	Outer   float32 // tick length at the outer ring, in points
	Inner   float32 // tick length at the inner ring, in points; 0 if none
	Label   string  // empty if none
}

// Layout holds all of the geometry of a wheel in points, relative to the
// center of the wheel with y up.
type Layout struct {
	Units   Units
	Flipped bool
	Center  [2]float32 // of the page

	R4, R2     float32 // the 4 and 2 minute rings
	Ticks      []Tick
	LabelInset float32

	WindDirection float32
	WindMarkers   []float32 // distances from the center along WindDirection
	MarkerRadius  float32

	Grid       []float32 // positions of the grid lines in x and y
	GridExtent float32
}

// MakeLayout computes the geometry of the wheel for the given parameters
// on a page of the given size, in points.
func MakeLayout(p Params, u Units, pageWidth, pageHeight float32) *Layout {
	l := &Layout{
		Units:         u,
		Flipped:       p.Flipped,
		Center:        [2]float32{pageWidth / 2, pageHeight / 2},
		R4:            u.Flown(p.Speed, ringMinutes[0]),
		R2:            u.Flown(p.Speed, ringMinutes[1]),
		LabelInset:    u.Cm(LabelInsetCm),
		WindDirection: p.WindDirection,
		MarkerRadius:  u.Cm(MarkerRadiusCm),
		GridExtent:    u.NM(GridExtentNM),
	}

	for b := 0; b < 360; b += TickStep {
		t := Tick{
			Bearing: b,
			Angle:   float32(b) + p.Variation,
			Outer:   u.Cm(OuterTickCm(b)),
		}
		if in, ok := InnerTickCm(b); ok {
			t.Inner = u.Cm(in)
		}
		t.Label, _ = Label(b)
		l.Ticks = append(l.Ticks, t)
	}

	for _, m := range ringMinutes {
		l.WindMarkers = append(l.WindMarkers, u.Flown(p.WindSpeed, m))
	}

	for v := -GridExtentNM; v <= GridExtentNM; v += GridStepNM {
		l.Grid = append(l.Grid, u.NM(float32(v)))
	}

	return l
}
