package plot

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// WritePNG renders c as a PNG image.
func WritePNG(w io.Writer, c Chart) error {
	dc := gg.NewContext(Width, Height)
	dc.SetHexColor("#282A36")
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	o, e := axisOrigin(), axisEnd()
	dc.SetHexColor("#6272A4")
	dc.SetLineWidth(1)
	dc.DrawLine(o.X, o.Y, e.X, o.Y)
	dc.DrawLine(o.X, o.Y, o.X, e.Y)
	dc.Stroke()

	dc.SetHexColor("#44475A")
	dc.SetDash(4, 4)
	for _, x := range []float64{c.MinMarkerX, c.MaxMarkerX} {
		dc.DrawLine(x, o.Y, x, e.Y)
	}
	dc.Stroke()
	dc.SetDash()

	dc.SetHexColor("#BD93F9")
	dc.SetLineWidth(2)
	for i, pt := range c.Curve {
		if i == 0 {
			dc.MoveTo(pt.X, pt.Y)
			continue
		}
		dc.LineTo(pt.X, pt.Y)
	}
	dc.Stroke()

	dc.SetHexColor("#F8F8F2")
	for _, l := range append(append([]Label{}, c.XLabels...), c.YLabels...) {
		dc.DrawString(l.Text, l.At.X, l.At.Y)
	}
	dc.DrawStringAnchored(c.Title, Width/2, margin/2, 0.5, 0.5)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
