package clamp

import "math"

// Validation messages. They are compared by text when deduplicating, so
// rules that flag two fields reuse the same string.
const (
	MsgViewportOrder = "Maximum viewport width must be greater than minimum viewport width."
	MsgNegative      = "Value cannot be negative."
	MsgValueOrder    = "Max value cannot be smaller than min value."
	MsgRootFontSize  = "Rem size must be a positive number."
	MsgNoScaling     = "Max value is equal to min value. No scaling will occur."
	MsgNotFinite     = "Value must be a finite number."
)

// Outcome is the result of validating a converted parameter set.
// Cautions are only evaluated when Errors is empty.
type Outcome struct {
	Errors   []Message
	Cautions []Message
}

// HasErrors reports whether any hard error was found.
func (o Outcome) HasErrors() bool {
	return len(o.Errors) > 0
}

// Validate runs every rule in order and collects all errors. When there
// are none, it evaluates cautions. Non-finite numbers are reported on
// their own, before the ordered rules, since no comparison holds for NaN.
func Validate(c Converted) Outcome {
	if errs := nonFinite(c); len(errs) > 0 {
		return Outcome{Errors: errs}
	}

	var errs []Message
	add := func(text string, fields ...Field) {
		for _, f := range fields {
			errs = append(errs, Message{Field: f, Text: text})
		}
	}

	if c.MinViewportWidthPx >= c.MaxViewportWidthPx {
		add(MsgViewportOrder, MinViewportWidth, MaxViewportWidth)
	}
	if c.MinValuePx < 0 {
		add(MsgNegative, MinValue)
	}
	if c.MaxValuePx < 0 {
		add(MsgNegative, MaxValue)
	}
	if c.MinViewportWidthPx < 0 {
		add(MsgNegative, MinViewportWidth)
	}
	if c.MaxViewportWidthPx < 0 {
		add(MsgNegative, MaxViewportWidth)
	}
	if c.MaxValuePx < c.MinValuePx {
		add(MsgValueOrder, MinValue, MaxValue)
	}
	if !(c.RootFontSizePx > 0) {
		add(MsgRootFontSize, RootFontSize)
	}

	if len(errs) > 0 {
		return Outcome{Errors: errs}
	}

	var cautions []Message
	if c.MaxValuePx == c.MinValuePx {
		cautions = append(cautions,
			Message{Field: MinValue, Text: MsgNoScaling},
			Message{Field: MaxValue, Text: MsgNoScaling},
		)
	}
	return Outcome{Cautions: cautions}
}

// nonFinite flags NaN and infinite inputs. A bad root size makes every rem
// bound bad too, so it is reported alone.
func nonFinite(c Converted) []Message {
	if !finite(c.RootFontSizePx) {
		return []Message{{Field: RootFontSize, Text: MsgRootFontSize}}
	}
	var errs []Message
	bounds := []struct {
		field Field
		px    float64
	}{
		{MinViewportWidth, c.MinViewportWidthPx},
		{MaxViewportWidth, c.MaxViewportWidthPx},
		{MinValue, c.MinValuePx},
		{MaxValue, c.MaxValuePx},
	}
	for _, b := range bounds {
		if !finite(b.px) {
			errs = append(errs, Message{Field: b.field, Text: MsgNotFinite})
		}
	}
	return errs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
