package clamp

import (
	"fmt"
	"math"
)

// Formula is the linear function behind a clamp expression, both in raw
// pixel space and in the rounded output units.
type Formula struct {
	// SlopePxPerPx is the value change per pixel of viewport width.
	SlopePxPerPx float64
	// InterceptPx is the value at a zero-width viewport.
	InterceptPx  float64

	MinValuePx float64
	MaxValuePx float64

	SlopeVw      float64
	InterceptRem float64
	MinRem       float64
	MaxRem       float64
}

// Compute derives slope and intercept from a converted parameter set.
// The caller must have validated c; Compute does not check for errors.
func Compute(c Converted) Formula {
	slope := (c.MaxValuePx - c.MinValuePx) / (c.MaxViewportWidthPx - c.MinViewportWidthPx)
	intercept := c.MinValuePx - slope*c.MinViewportWidthPx

	return Formula{
		SlopePxPerPx: slope,
		InterceptPx:  intercept,
		MinValuePx:   c.MinValuePx,
		MaxValuePx:   c.MaxValuePx,
		SlopeVw:      Round4(slope * 100),
		InterceptRem: Round4(intercept / c.RootFontSizePx),
		MinRem:       Round4(c.MinValuePx / c.RootFontSizePx),
		MaxRem:       Round4(c.MaxValuePx / c.RootFontSizePx),
	}
}

// Expression renders the CSS clamp() value.
func (f Formula) Expression() string {
	return fmt.Sprintf("clamp(%srem, %s %s, %srem)",
		FormatNumber(f.MinRem), f.slopeTerm(), f.interceptTerm(), FormatNumber(f.MaxRem))
}

func (f Formula) slopeTerm() string {
	if f.SlopeVw < 0 {
		return "- " + FormatNumber(math.Abs(f.SlopeVw)) + "vw"
	}
	return FormatNumber(f.SlopeVw) + "vw"
}

func (f Formula) interceptTerm() string {
	if f.InterceptRem < 0 {
		return "- " + FormatNumber(math.Abs(f.InterceptRem)) + "rem"
	}
	return "+ " + FormatNumber(f.InterceptRem) + "rem"
}

// ValueAt evaluates the clamp at a viewport width, in pixels.
func (f Formula) ValueAt(viewportPx float64) float64 {
	preferred := f.SlopePxPerPx*viewportPx + f.InterceptPx
	return math.Min(math.Max(f.MinValuePx, preferred), f.MaxValuePx)
}
