package clamp

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is a CSS length unit accepted for a bound.
type Unit string

const (
	UnitPx  Unit = "px"
	UnitRem Unit = "rem"
)

// Valid reports whether u is one of the supported units
func (u Unit) Valid() bool {
	return u == UnitPx || u == UnitRem
}

// Toggle returns the other supported unit.
func (u Unit) Toggle() Unit {
	if u == UnitRem {
		return UnitPx
	}
	return UnitRem
}

// ParseUnit parses "px" or "rem" (case-insensitive).
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "px":
		return UnitPx, nil
	case "rem":
		return UnitRem, nil
	default:
		return "", fmt.Errorf("unsupported unit %q (want px or rem)", s)
	}
}

// ToPixels converts a value in the given unit to pixels.
// rem values are multiplied by the root font size; px values pass through.
func ToPixels(value float64, unit Unit, rootFontSizePx float64) float64 {
	if unit == UnitRem {
		return value * rootFontSizePx
	}
	return value
}

// ConvertUnit re-expresses value in another unit, keeping the pixel
// magnitude. Used when a unit selector flips.
func ConvertUnit(value float64, from, to Unit, rootFontSizePx float64) float64 {
	if from == to {
		return value
	}
	px := ToPixels(value, from, rootFontSizePx)
	if to == UnitRem {
		if rootFontSizePx == 0 {
			return value
		}
		return px / rootFontSizePx
	}
	return px
}

// Length is a numeric bound paired with its unit.
type Length struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  Unit    `json:"unit" yaml:"unit"`
}

// Px is shorthand for a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Rem is shorthand for a rem length.
func Rem(v float64) Length { return Length{Value: v, Unit: UnitRem} }

// Pixels converts the length to pixels.
func (l Length) Pixels(rootFontSizePx float64) float64 {
	return ToPixels(l.Value, l.Unit, rootFontSizePx)
}

// String renders the length the way it is typed, e.g. "1.5rem".
func (l Length) String() string {
	return FormatNumber(l.Value) + string(l.Unit)
}

// ParseLength parses "600px", "1.5rem", "1.5 REM" or a bare number (px).
func ParseLength(s string) (Length, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Length{}, fmt.Errorf("empty length")
	}

	unit := UnitPx
	num := raw
	lower := strings.ToLower(raw)
	switch {
	case strings.HasSuffix(lower, "rem"):
		unit = UnitRem
		num = raw[:len(raw)-3]
	case strings.HasSuffix(lower, "px"):
		num = raw[:len(raw)-2]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	if !finite(v) {
		return Length{}, fmt.Errorf("invalid length %q: not a finite number", s)
	}
	return Length{Value: v, Unit: unit}, nil
}
