// math/units.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Physical and typographic unit conversions. They are untyped constants
// so that derived values are computed at full precision before being
// rounded to float32.
const (
	PtPerInch = 72
	CmPerInch = 2.54
	PtPerCm   = PtPerInch / CmPerInch
	CmPerM    = 100
	MPerNM    = 1852
	MinPerHr  = 60
)
