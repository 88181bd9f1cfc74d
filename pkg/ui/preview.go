package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
	"github.com/Dicklesworthstone/clampgen/pkg/preview"
)

// panelChrome is the border plus horizontal padding around the sample.
const panelChrome = 4

// letterSpaced stretches text to suggest its font size in a terminal:
// one extra space between glyphs per root font size above the first.
func letterSpaced(text string, fontPx, rootPx float64) string {
	if rootPx <= 0 {
		return text
	}
	gap := int(math.Round(fontPx/rootPx)) - 1
	if gap <= 0 {
		return text
	}
	sep := strings.Repeat(" ", gap)
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// containerCols is the preview width in columns: the terminal width, capped
// at the max viewport width.
func containerCols(termCols int, maxViewportPx, cellWidthPx float64) int {
	cols := termCols
	if cellWidthPx > 0 {
		if capped := int(maxViewportPx / cellWidthPx); capped < cols {
			cols = capped
		}
	}
	if cols < panelChrome+1 {
		cols = panelChrome + 1
	}
	return cols
}

// previewFont is the size the sample is currently rendered at.
func (m *Model) previewFont() (float64, bool) {
	f, ok := m.store.Result().Formula()
	if !ok {
		return 0, false
	}
	return f.ValueAt(m.window.Width()), true
}

func (m *Model) previewSample() (string, bool) {
	px, ok := m.previewFont()
	if !ok {
		return "", false
	}
	return letterSpaced(m.opts.PreviewText, px, m.store.Params().RootFontSizePx), true
}

// measure reports the sample's size against the panel's inner area. It is
// the preview controller's Measurer.
func (m *Model) measure() (preview.Measurement, bool) {
	if m.width <= 0 {
		return preview.Measurement{}, false
	}
	sample, ok := m.previewSample()
	if !ok {
		return preview.Measurement{}, false
	}
	conv := clamp.Convert(m.store.Params())
	inner := containerCols(m.width, conv.MaxViewportWidthPx, m.opts.CellWidthPx) - panelChrome
	return preview.Measurement{
		ScrollWidth:  float64(runewidth.StringWidth(sample)),
		ScrollHeight: 1,
		ClientWidth:  float64(inner),
		ClientHeight: 1,
	}, true
}

// previewView renders the sample panel and the font-size readout.
func (m *Model) previewView() string {
	t := m.theme
	muted := t.Renderer.NewStyle().Foreground(t.Subtext).Italic(true)

	px, ok := m.previewFont()
	if !ok {
		return muted.Render("Preview unavailable until the errors are fixed.")
	}
	sample, _ := m.previewSample()

	conv := clamp.Convert(m.store.Params())
	cols := containerCols(m.width, conv.MaxViewportWidthPx, m.opts.CellWidthPx)
	inner := cols - panelChrome
	if runewidth.StringWidth(sample) > inner {
		sample = truncate.StringWithTail(sample, uint(inner), "…")
	}

	st := m.ctrl.State()
	highlight := st.BackgroundVisible || st.Overflowing
	border := st.BorderVisible || st.Overflowing

	body := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Base).
		Width(inner).
		Align(lipgloss.Center).
		Render(sample)
	panel := panelStyle(t, border, highlight).Width(inner + 2).Render(body)

	root := m.store.Params().RootFontSizePx
	readout := fmt.Sprintf("This text's font-size is %spx / %srem",
		clamp.FormatCompact(px), clamp.FormatCompact(px/root))

	block := lipgloss.JoinVertical(lipgloss.Center, panel, muted.Render(readout))
	if m.width > 0 {
		block = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
	}
	return block
}
