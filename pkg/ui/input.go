package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

// inputStatus selects the styling of a field.
type inputStatus int

const (
	statusNormal inputStatus = iota
	statusError
	statusCaution
)

// FieldInput is a numeric text input bound to one clamp bound.
type FieldInput struct {
	field clamp.Field
	unit  clamp.Unit
	input textinput.Model
	theme Theme
}

// NewFieldInput creates an input showing l.
func NewFieldInput(f clamp.Field, l clamp.Length, theme Theme) FieldInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 16
	ti.Width = 10
	ti.Placeholder = "0"
	ti.SetValue(inputText(l.Value))

	return FieldInput{
		field: f,
		unit:  l.Unit,
		input: ti,
		theme: theme,
	}
}

// Field returns the bound this input edits.
func (fi FieldInput) Field() clamp.Field { return fi.field }

// Focus gives the input keyboard focus.
func (fi *FieldInput) Focus() tea.Cmd { return fi.input.Focus() }

// Blur removes keyboard focus.
func (fi *FieldInput) Blur() { fi.input.Blur() }

// Focused reports whether the input has focus.
func (fi FieldInput) Focused() bool { return fi.input.Focused() }

// Text returns the raw text typed so far.
func (fi FieldInput) Text() string { return fi.input.Value() }

// Sync replaces the text and unit with l, e.g. after a unit toggle.
func (fi *FieldInput) Sync(l clamp.Length) {
	fi.unit = l.Unit
	fi.input.SetValue(inputText(l.Value))
	fi.input.CursorEnd()
}

// inputText shows v to four decimals. The store keeps the exact value.
func inputText(v float64) string {
	return clamp.FormatNumber(clamp.Round4(v))
}

// Number parses the typed text. An empty input reads as zero; partial
// input such as "-" or "." is not a number yet, and neither are "NaN" or
// "inf".
func (fi FieldInput) Number() (float64, bool) {
	raw := strings.TrimSpace(fi.input.Value())
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Update forwards msg to the text input.
func (fi FieldInput) Update(msg tea.Msg) (FieldInput, tea.Cmd) {
	var cmd tea.Cmd
	fi.input, cmd = fi.input.Update(msg)
	return fi, cmd
}

// View renders "Label  [value] UNIT" styled by status.
func (fi FieldInput) View(status inputStatus) string {
	t := fi.theme
	color := t.Subtext
	switch status {
	case statusError:
		color = t.Error
	case statusCaution:
		color = t.Caution
	default:
		if fi.Focused() {
			color = t.Primary
		}
	}

	label := t.Renderer.NewStyle().
		Foreground(color).
		Width(20).
		Render(fi.field.Label())
	box := t.Renderer.NewStyle().
		Foreground(t.Base).
		Border(lipgloss.NormalBorder()).
		BorderForeground(color).
		Padding(0, SpaceXS).
		Width(fi.input.Width + 2).
		Render(fi.input.View())

	return lipgloss.JoinHorizontal(lipgloss.Center, label, box, " "+RenderUnitBadge(fi.unit, fi.Focused(), t))
}
