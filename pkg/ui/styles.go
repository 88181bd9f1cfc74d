package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired with semantic colors
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Accent colors
	ColorPrimary   = lipgloss.Color("#BD93F9")
	ColorSecondary = lipgloss.Color("#6272A4")
	ColorInfo      = lipgloss.Color("#8BE9FD")
	ColorSuccess   = lipgloss.Color("#50FA7B")
	ColorCaution   = lipgloss.Color("#F1FA8C")
	ColorDanger    = lipgloss.Color("#FF5555")
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES
// ══════════════════════════════════════════════════════════════════════════════

// panelStyle returns the preview panel style for the given feedback flags.
// A hidden border is still drawn in the background color so the layout
// does not jump when it appears.
func panelStyle(t Theme, border, highlight bool) lipgloss.Style {
	s := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, SpaceXS)
	if border {
		s = s.BorderForeground(t.Base)
	} else {
		s = s.BorderForeground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: string(ColorBg)})
	}
	if highlight {
		s = s.Background(t.Flash)
	}
	return s
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGES AND BANNERS
// ══════════════════════════════════════════════════════════════════════════════

// RenderUnitBadge renders the unit selector shown next to an input.
func RenderUnitBadge(u clamp.Unit, focused bool, t Theme) string {
	s := t.Renderer.NewStyle().
		Bold(true).
		Padding(0, SpaceXS).
		Foreground(t.Base).
		Background(lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: string(ColorBgHighlight)})
	if focused {
		s = s.Foreground(t.Primary)
	}
	return s.Render(strings.ToUpper(string(u)))
}

// RenderMessages renders deduplicated messages as a bulleted block in the
// given color. It returns "" for an empty list.
func RenderMessages(texts []string, color lipgloss.AdaptiveColor, t Theme) string {
	if len(texts) == 0 {
		return ""
	}
	style := t.Renderer.NewStyle().Foreground(color)
	lines := make([]string, len(texts))
	for i, text := range texts {
		lines[i] = style.Render("• " + text)
	}
	return strings.Join(lines, "\n")
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}
