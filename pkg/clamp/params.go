package clamp

import "fmt"

// DefaultRootFontSizePx is the browser default size of 1rem.
const DefaultRootFontSizePx = 16

// Params describes one clamp computation: the viewport range over which
// the value scales, the value range, and the px size of 1rem.
type Params struct {
	MinViewportWidth Length  `json:"minViewportWidth" yaml:"min_viewport_width"`
	MaxViewportWidth Length  `json:"maxViewportWidth" yaml:"max_viewport_width"`
	MinValue         Length  `json:"minValue" yaml:"min_value"`
	MaxValue         Length  `json:"maxValue" yaml:"max_value"`
	RootFontSizePx   float64 `json:"remSize" yaml:"root_font_size"`
}

// DefaultParams returns the parameter set used when nothing was saved.
func DefaultParams() Params {
	return Params{
		MinViewportWidth: Px(600),
		MaxViewportWidth: Px(1600),
		MinValue:         Px(16),
		MaxValue:         Px(24),
		RootFontSizePx:   DefaultRootFontSizePx,
	}
}

// Length returns the bound addressed by f. RootFontSize is reported as a
// px length.
func (p Params) Length(f Field) Length {
	switch f {
	case MinViewportWidth:
		return p.MinViewportWidth
	case MaxViewportWidth:
		return p.MaxViewportWidth
	case MinValue:
		return p.MinValue
	case MaxValue:
		return p.MaxValue
	case RootFontSize:
		return Px(p.RootFontSizePx)
	}
	panic(fmt.Sprintf("clamp: unknown field %d", f))
}

// WithLength returns a copy of p with the bound for f replaced.
func (p Params) WithLength(f Field, l Length) Params {
	switch f {
	case MinViewportWidth:
		p.MinViewportWidth = l
	case MaxViewportWidth:
		p.MaxViewportWidth = l
	case MinValue:
		p.MinValue = l
	case MaxValue:
		p.MaxValue = l
	case RootFontSize:
		p.RootFontSizePx = ToPixels(l.Value, l.Unit, p.RootFontSizePx)
	default:
		panic(fmt.Sprintf("clamp: unknown field %d", f))
	}
	return p
}

// CheckUnits returns an error if any bound carries an unsupported unit.
func (p Params) CheckUnits() error {
	for _, f := range BoundFields {
		if u := p.Length(f).Unit; !u.Valid() {
			return fmt.Errorf("%s: unsupported unit %q", f, u)
		}
	}
	return nil
}

// Converted holds a parameter set in pixel space. It is created fresh for
// every computation and never mutated.
type Converted struct {
	MinViewportWidthPx float64
	MaxViewportWidthPx float64
	MinValuePx         float64
	MaxValuePx         float64
	RootFontSizePx     float64
}

// Convert maps every bound of p to pixels.
func Convert(p Params) Converted {
	root := p.RootFontSizePx
	return Converted{
		MinViewportWidthPx: p.MinViewportWidth.Pixels(root),
		MaxViewportWidthPx: p.MaxViewportWidth.Pixels(root),
		MinValuePx:         p.MinValue.Pixels(root),
		MaxValuePx:         p.MaxValue.Pixels(root),
		RootFontSizePx:     root,
	}
}
