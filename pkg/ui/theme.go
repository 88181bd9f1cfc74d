package ui

import "github.com/charmbracelet/lipgloss"

// Theme carries the renderer and adaptive colors every view draws with.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Base      lipgloss.AdaptiveColor

	Error   lipgloss.AdaptiveColor
	Caution lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Code    lipgloss.AdaptiveColor
	Flash   lipgloss.AdaptiveColor
}

// DefaultTheme returns the Dracula-based theme bound to r. A nil renderer
// means lipgloss.DefaultRenderer().
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: string(ColorPrimary)},
		Secondary: lipgloss.AdaptiveColor{Light: "#5A6A9A", Dark: string(ColorSecondary)},
		Subtext:   lipgloss.AdaptiveColor{Light: "#555555", Dark: string(ColorSubtext)},
		Border:    lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: string(ColorBgHighlight)},
		Base:      lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: string(ColorText)},
		Error:     lipgloss.AdaptiveColor{Light: "#D32F2F", Dark: string(ColorDanger)},
		Caution:   lipgloss.AdaptiveColor{Light: "#B8860B", Dark: string(ColorCaution)},
		Success:   lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: string(ColorSuccess)},
		Code:      lipgloss.AdaptiveColor{Light: "#00796B", Dark: string(ColorInfo)},
		Flash:     lipgloss.AdaptiveColor{Light: "#E8E8F0", Dark: string(ColorBgSubtle)},
	}
}
