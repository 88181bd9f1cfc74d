// Package plot draws the clamp curve (value against viewport width) as
// SVG or PNG.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

// Chart dimensions in pixels.
const (
	Width   = 720
	Height  = 400
	margin  = 48
	samples = 120
)

// ErrNoExpression is returned when the parameters do not produce a curve.
var ErrNoExpression = errors.New("parameters have validation errors")

// Point is a pixel-space position on the chart.
type Point struct{ X, Y float64 }

// Chart is a laid-out plot ready to be rendered.
type Chart struct {
	Title      string
	Curve      []Point
	MinMarkerX float64
	MaxMarkerX float64
	XMaxPx     float64
	YMaxPx     float64
	XLabels    []Label
	YLabels    []Label
}

// Label is a tick label at a pixel position.
type Label struct {
	At   Point
	Text string
}

// Build lays out the curve for p. The x axis spans 0 to 1.25 times the
// max viewport width so that both clamped plateaus are visible.
func Build(p clamp.Params) (Chart, error) {
	res := clamp.Generate(p)
	f, ok := res.Formula()
	if !ok {
		return Chart{}, ErrNoExpression
	}
	expr, _ := res.Expression()
	conv := clamp.Convert(p)

	xMax := conv.MaxViewportWidthPx * 1.25
	yMax := conv.MaxValuePx * 1.25
	if yMax == 0 {
		yMax = 1
	}

	toX := func(v float64) float64 { return margin + v/xMax*(Width-2*margin) }
	toY := func(v float64) float64 { return Height - margin - v/yMax*(Height-2*margin) }

	c := Chart{
		Title:      expr,
		MinMarkerX: toX(conv.MinViewportWidthPx),
		MaxMarkerX: toX(conv.MaxViewportWidthPx),
		XMaxPx:     xMax,
		YMaxPx:     yMax,
	}
	for i := 0; i <= samples; i++ {
		vp := xMax * float64(i) / samples
		c.Curve = append(c.Curve, Point{X: toX(vp), Y: toY(f.ValueAt(vp))})
	}

	for _, vp := range []float64{0, conv.MinViewportWidthPx, conv.MaxViewportWidthPx} {
		c.XLabels = append(c.XLabels, Label{
			At:   Point{X: toX(vp), Y: Height - margin + 16},
			Text: clamp.FormatCompact(vp) + "px",
		})
	}
	for _, v := range []float64{conv.MinValuePx, conv.MaxValuePx} {
		c.YLabels = append(c.YLabels, Label{
			At:   Point{X: 4, Y: toY(v) + 4},
			Text: clamp.FormatCompact(v) + "px",
		})
	}
	return c, nil
}

// axisOrigin and axisEnd bound the plotting area.
func axisOrigin() Point { return Point{X: margin, Y: Height - margin} }
func axisEnd() Point   { return Point{X: Width - margin, Y: margin} }

// Write renders c to w in the given format ("svg" or "png").
func Write(w io.Writer, c Chart, format string) error {
	switch format {
	case "svg":
		return WriteSVG(w, c)
	case "png":
		return WritePNG(w, c)
	default:
		return fmt.Errorf("unsupported plot format %q (want svg or png)", format)
	}
}

// WriteFile builds the chart for p and writes it to path, picking the
// format from the file extension.
func WriteFile(path string, p clamp.Params) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported plot format %q (want .svg or .png)", filepath.Ext(path))
	}

	c, err := Build(p)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	if err := Write(f, c, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func round(v float64) int { return int(math.Round(v)) }
