package clamp

import "fmt"

// Field identifies one input of a clamp computation.
type Field int

const (
	MinViewportWidth Field = iota
	MaxViewportWidth
	MinValue
	MaxValue
	RootFontSize
)

// BoundFields lists the four user-editable bounds in display order.
var BoundFields = []Field{MinViewportWidth, MaxViewportWidth, MinValue, MaxValue}

// String returns the canonical key of the field.
func (f Field) String() string {
	switch f {
	case MinViewportWidth:
		return "minViewportWidth"
	case MaxViewportWidth:
		return "maxViewportWidth"
	case MinValue:
		return "minValue"
	case MaxValue:
		return "maxValue"
	case RootFontSize:
		return "rootFontSize"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Label returns the human-readable input label.
func (f Field) Label() string {
	switch f {
	case MinViewportWidth:
		return "Min viewport width"
	case MaxViewportWidth:
		return "Max viewport width"
	case MinValue:
		return "Min value"
	case MaxValue:
		return "Max value"
	case RootFontSize:
		return "Root font size"
	default:
		return f.String()
	}
}

// ParseField is the inverse of Field.String.
func ParseField(s string) (Field, error) {
	switch s {
	case "minViewportWidth":
		return MinViewportWidth, nil
	case "maxViewportWidth":
		return MaxViewportWidth, nil
	case "minValue":
		return MinValue, nil
	case "maxValue":
		return MaxValue, nil
	case "rootFontSize":
		return RootFontSize, nil
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

// MarshalText encodes the field as its canonical key.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a canonical field key.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Message is an error or caution attached to one field.
type Message struct {
	Field Field  `json:"field"`
	Text  string `json:"message"`
}

func (m Message) String() string {
	return m.Field.String() + ": " + m.Text
}

// UniqueTexts returns the message texts in first-seen order with
// duplicates removed. A rule that flags two fields yields one line.
func UniqueTexts(msgs []Message) []string {
	seen := make(map[string]bool, len(msgs))
	var out []string
	for _, m := range msgs {
		if seen[m.Text] {
			continue
		}
		seen[m.Text] = true
		out = append(out, m.Text)
	}
	return out
}

// FieldsWith returns the set of fields that have at least one message.
func FieldsWith(msgs []Message) map[Field]bool {
	out := make(map[Field]bool, len(msgs))
	for _, m := range msgs {
		out[m.Field] = true
	}
	return out
}
