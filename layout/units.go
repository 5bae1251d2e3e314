package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for margins and other lengths.

// Unit represents the original unit of a length value as supplied by a form field or profile.
type Unit int

const (
	UnitNone Unit = iota // bare numbers; resolved with a caller-supplied default
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
)

// Conversion constants. 1in = 72pt = 25.4mm exactly.
const (
	PointsPerInch = 72.0
	PtToMm        = 25.4 / PointsPerInch
	MmToPt        = 1.0 / PtToMm
)

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Points converts the length to points. UnitNone is treated as inches,
// which is what the upload form has always used for margins.
func (l Length) Points() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitPT:
		return l.Value
	default:
		return l.Value * PointsPerInch
	}
}

// Inches converts the length to inches.
func (l Length) Inches() float64 { return l.Points() / PointsPerInch }

// Inches builds a Length from a value in inches.
func Inches(v float64) Length { return Length{Value: v, Unit: UnitIN} }

// ParseLength parses a length such as "0.5", "0.5in", "12.7mm" or "36pt".
// A bare number keeps UnitNone.
func ParseLength(value string) (Length, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Length{}, fmt.Errorf("长度为空")
	}
	lower := strings.ToLower(v)
	unit := UnitNone
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Length{}, fmt.Errorf("长度 %q 不是有限数值", value)
	}
	return Length{Value: f, Unit: unit}, nil
}
