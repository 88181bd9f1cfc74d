package plot

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

const (
	svgBackground = "fill:#282A36"
	svgAxis       = "stroke:#6272A4;stroke-width:1"
	svgMarker     = "stroke:#44475A;stroke-width:1;stroke-dasharray:4,4"
	svgCurve      = "fill:none;stroke:#BD93F9;stroke-width:2"
	svgText       = "fill:#F8F8F2;font-family:monospace;font-size:11px"
	svgTitle      = "fill:#F8F8F2;font-family:monospace;font-size:13px;text-anchor:middle"
)

// WriteSVG renders c as an SVG document.
func WriteSVG(w io.Writer, c Chart) error {
	canvas := svg.New(w)
	canvas.Start(Width, Height)
	canvas.Rect(0, 0, Width, Height, svgBackground)

	o, e := axisOrigin(), axisEnd()
	canvas.Line(round(o.X), round(o.Y), round(e.X), round(o.Y), svgAxis)
	canvas.Line(round(o.X), round(o.Y), round(o.X), round(e.Y), svgAxis)

	for _, x := range []float64{c.MinMarkerX, c.MaxMarkerX} {
		canvas.Line(round(x), round(o.Y), round(x), round(e.Y), svgMarker)
	}

	xs := make([]int, len(c.Curve))
	ys := make([]int, len(c.Curve))
	for i, pt := range c.Curve {
		xs[i], ys[i] = round(pt.X), round(pt.Y)
	}
	canvas.Polyline(xs, ys, svgCurve)

	for _, l := range append(append([]Label{}, c.XLabels...), c.YLabels...) {
		canvas.Text(round(l.At.X), round(l.At.Y), l.Text, svgText)
	}
	canvas.Text(Width/2, margin/2, c.Title, svgTitle)

	canvas.End()
	return nil
}
