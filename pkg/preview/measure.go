package preview

// Measurement is a synchronous read of already-rendered layout: the
// content's scroll size and its container's client size.
type Measurement struct {
	ScrollWidth  float64
	ScrollHeight float64
	ClientWidth  float64
	ClientHeight float64
}

// Overflowing reports whether the content does not fit its container.
func (m Measurement) Overflowing() bool {
	return m.ScrollWidth > m.ClientWidth || m.ScrollHeight > m.ClientHeight
}

// Measurer reads the layout of the preview element. ok is false when
// there is nothing rendered yet; the controller then skips the update.
type Measurer interface {
	Measure() (m Measurement, ok bool)
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func() (Measurement, bool)

// Measure implements Measurer.
func (f MeasureFunc) Measure() (Measurement, bool) { return f() }
