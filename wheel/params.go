// wheel/params.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wheel

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mmp/diversionwheel/math"
	"github.com/mmp/diversionwheel/util"
)

// Params are the flight-specific inputs to a wheel. Any values are
// accepted; nonsensical ones just give a nonsensical wheel.
type Params struct {
	// Flipped mirrors the page horizontally, for printing on the back of
	// a transparency.
	Flipped       bool    `json:"flipped"`
	Speed         float32 `json:"speed_knots"`        // groundspeed
	WindDirection float32 `json:"wind_direction_deg"` // where the wind comes from
	WindSpeed     float32 `json:"wind_speed_knots"`
	Variation     float32 `json:"variation_deg"` // magnetic variation, added to each bearing
}

func DefaultParams() Params {
	return Params{
		Flipped:       false,
		Speed:         107,
		WindDirection: 130,
		WindSpeed:     20,
		Variation:     2,
	}
}

func (p Params) String() string {
	s := fmt.Sprintf("%.0fkt, wind %03.0f/%.0f, var %.0f", p.Speed, math.NormalizeHeading(p.WindDirection),
		p.WindSpeed, p.Variation)
	if p.Flipped {
		s += ", flipped"
	}
	return s
}

func (p Params) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Bool("flipped", p.Flipped),
		slog.Float64("speed", float64(p.Speed)),
		slog.Float64("wind_direction", float64(p.WindDirection)),
	}
	if math.IsFinite(p.WindDirection) {
		attrs = append(attrs, slog.String("wind_from", math.Compass(p.WindDirection)))
	}
	return slog.GroupValue(append(attrs,
		slog.Float64("wind_speed", float64(p.WindSpeed)),
		slog.Float64("variation", float64(p.Variation)))...)
}

// Options control how the wheel is laid out on paper, independent of the
// flight.
type Options struct {
	Scale          float32 `json:"chart_scale"` // denominator, e.g. 250000
	PageWidthCm    float32 `json:"page_width_cm"`
	PageHeightCm   float32 `json:"page_height_cm"`
	FontFamily     string  `json:"font_family"`
	FontSize       float32 `json:"font_size"`
	LineWidth      float32 `json:"line_width"`      // points
	CircleSegments int     `json:"circle_segments"` // 0: native Bezier circles
	Compress       bool    `json:"compress"`
}

// Standard PDF fonts; they need no embedding.
var fontFamilies = []string{"Times", "Helvetica", "Courier"}

func DefaultOptions() Options {
	return Options{
		Scale:          DefaultScale,
		PageWidthCm:    21,
		PageHeightCm:   29.7,
		FontFamily:     "Times",
		FontSize:       18,
		LineWidth:      1,
		CircleSegments: 360,
		Compress:       true,
	}
}

// Validate reports any problems with the options to e.
func (o Options) Validate(e *util.ErrorLogger) {
	positive := func(name string, v float32) {
		if !math.IsFinite(v) || v <= 0 {
			e.ErrorString("%s: must be a positive number, got %g", name, v)
		}
	}
	positive("chart_scale", o.Scale)
	positive("page_width_cm", o.PageWidthCm)
	positive("page_height_cm", o.PageHeightCm)
	positive("font_size", o.FontSize)

	if !math.IsFinite(o.LineWidth) || o.LineWidth < 0 {
		e.ErrorString("line_width: must not be negative, got %g", o.LineWidth)
	}
	if o.CircleSegments < 0 || (o.CircleSegments > 0 && o.CircleSegments < 3) {
		e.ErrorString("circle_segments: must be 0 or at least 3, got %d", o.CircleSegments)
	}
	if !slices.ContainsFunc(fontFamilies, func(f string) bool { return strings.EqualFold(f, o.FontFamily) }) {
		e.ErrorString("font_family: %q is not one of %s", o.FontFamily, strings.Join(fontFamilies, ", "))
	}
}
