package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// helpMarkdown is the instructions text shown by the help overlay.
const helpMarkdown = `# clampgen

Create linearly scaling fluid size values based on viewport width.

Enter values and resize your terminal to instantly see your ` + "`clamp()`" + ` in
action, then press **c** to copy the code to your clipboard.

> **Note:** this tool assumes ` + "`1rem`" + ` equals ` + "`16px`" + `, as that's the
> default in most browsers. Change ` + "`root_font_size`" + ` in the config file
> to use another root size.

## Keys

| Key | Action |
|-----|--------|
| Tab / Shift+Tab | Next / previous field |
| ↑ / ↓ | Previous / next field |
| u | Toggle the unit of the focused field (px ↔ rem) |
| c / Enter | Copy the expression |
| ? | Toggle this help |
| q / Ctrl+C | Quit |
`

// HelpOverlayModel shows the instructions and keyboard shortcuts.
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
	theme   Theme

	// rendered caches the glamour output for renderedWidth.
	rendered      string
	renderedWidth int
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		theme: theme,
	}
}

// Show makes the help overlay visible
func (m *HelpOverlayModel) Show() {
	m.visible = true
}

// Hide makes the help overlay invisible
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.visible = false
	}

	return m, nil
}

// wrapWidth is the text width inside the box.
func (m HelpOverlayModel) wrapWidth() int {
	w := 72
	if m.width > 0 && m.width-8 < w {
		w = m.width - 8
	}
	if w < 20 {
		w = 20
	}
	return w
}

// render returns the markdown rendered at the current width. It falls back
// to the raw markdown if glamour fails.
func (m *HelpOverlayModel) render() string {
	w := m.wrapWidth()
	if m.rendered != "" && m.renderedWidth == w {
		return m.rendered
	}

	out := helpMarkdown
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(w),
	)
	if err == nil {
		if s, err := r.Render(helpMarkdown); err == nil {
			out = strings.TrimSpace(s)
		}
	}
	m.rendered = out
	m.renderedWidth = w
	return out
}

// View renders the help overlay
func (m *HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.render())
	b.WriteString("\n\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	// Wrap in box
	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
