// wheel/units.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wheel

import (
	"github.com/mmp/diversionwheel/math"
)

// DefaultScale is the denominator of the chart scale the wheel is drawn
// for: 1:250,000, as used by most VFR charts in Europe.
const DefaultScale = 250000

// Units converts real-world and paper distances to points. It is
// immutable once made; DefaultUnits is shared by everything that doesn't
// ask for a different chart scale.
type Units struct {
	Scale   float32 // chart scale denominator
	PtPerCm float32
	PtPerNM float32 // points on paper per nautical mile on the ground
}

var DefaultUnits = MakeUnits(DefaultScale)

func MakeUnits(scale float32) Units {
	cmPerNM := math.MPerNM * math.CmPerM / float64(scale)
	return Units{
		Scale:   scale,
		PtPerCm: math.PtPerCm,
		PtPerNM: float32(cmPerNM * math.PtPerCm),
	}
}

// Cm returns the given paper distance in centimeters as points.
func (u Units) Cm(cm float32) float32 {
	return cm * u.PtPerCm
}

// NM returns the given ground distance in nautical miles as points.
func (u Units) NM(nm float32) float32 {
	return nm * u.PtPerNM
}

// Flown returns the distance in points covered in the given number of
// minutes at speed knots.
func (u Units) Flown(speed, minutes float32) float32 {
	return speed / math.MinPerHr * minutes * u.PtPerNM
}
