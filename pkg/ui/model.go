// Package ui is the interactive terminal front end: four bound inputs,
// the generated clamp() expression with its errors or cautions, and a
// live preview panel that reacts to terminal resizes.
package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
	"github.com/Dicklesworthstone/clampgen/pkg/clock"
	"github.com/Dicklesworthstone/clampgen/pkg/config"
	"github.com/Dicklesworthstone/clampgen/pkg/preview"
	"github.com/Dicklesworthstone/clampgen/pkg/state"
)

// CopiedDuration is how long the "Copied!" notice stays up.
const CopiedDuration = 2 * time.Second

// Options configures a Model. Zero fields take defaults.
type Options struct {
	Params      clamp.Params
	Theme       Theme
	CellWidthPx float64
	SettleDelay time.Duration
	PreviewText string

	// Clock drives the preview settle timer. Nil means timers are
	// delivered through the program as messages.
	Clock clock.Clock
	// Clipboard writes the expression; nil means the system clipboard.
	Clipboard func(string) error
	// OnChange is called with every new parameter set, e.g. to persist it.
	OnChange func(clamp.Params)
	Logger   *slog.Logger
}

// copiedResetMsg hides the "Copied!" notice armed with the same seq.
type copiedResetMsg struct {
	seq int
}

// Model is the bubbletea model of the generator screen.
type Model struct {
	opts  Options
	theme Theme

	store  *state.Store
	window *preview.Window
	ctrl   *preview.Controller
	clk    *programClock

	inputs []FieldInput
	focus  int
	help   HelpOverlayModel

	width  int
	height int

	lastExpr  string
	lastMaxVP float64

	copied     bool
	copySeq    int
	statusMsg  string
	quitting   bool
	unsubStore func()
	logger     *slog.Logger
}

// NewModel builds the screen around a fresh store seeded with opts.Params.
func NewModel(opts Options) *Model {
	if opts.Theme.Renderer == nil {
		opts.Theme = DefaultTheme(nil)
	}
	if opts.CellWidthPx <= 0 {
		opts.CellWidthPx = config.DefaultCellWidthPx
	}
	if opts.PreviewText == "" {
		opts.PreviewText = config.DefaultPreviewText
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	m := &Model{
		opts:   opts,
		theme:  opts.Theme,
		store:  state.New(opts.Params),
		window: preview.NewWindow(0),
		help:   NewHelpOverlayModel(opts.Theme),
		logger: opts.Logger,
	}

	clk := opts.Clock
	if clk == nil {
		m.clk = newProgramClock()
		clk = m.clk
	}

	p := m.store.Params()
	m.lastMaxVP = clamp.Convert(p).MaxViewportWidthPx
	m.lastExpr, _ = m.store.Result().Expression()
	m.ctrl = preview.New(preview.Options{
		Viewport:           m.window,
		Measurer:           preview.MeasureFunc(m.measure),
		Clock:              clk,
		SettleDelay:        opts.SettleDelay,
		MaxViewportWidthPx: m.lastMaxVP,
		Logger:             opts.Logger,
	})
	m.unsubStore = m.store.Subscribe(m.onStoreChange)

	for _, f := range clamp.BoundFields {
		m.inputs = append(m.inputs, NewFieldInput(f, p.Length(f), opts.Theme))
	}
	m.inputs[0].Focus()
	return m
}

// Store exposes the parameter store backing the screen.
func (m *Model) Store() *state.Store { return m.store }

// Preview exposes the preview controller.
func (m *Model) Preview() *preview.Controller { return m.ctrl }

// Window exposes the viewport the preview listens to.
func (m *Model) Window() *preview.Window { return m.window }

// Close detaches the model from the store and stops pending timers.
func (m *Model) Close() {
	if m.unsubStore != nil {
		m.unsubStore()
		m.unsubStore = nil
	}
	m.ctrl.Close()
	if m.clk != nil {
		m.clk.stop()
	}
}

func (m *Model) onStoreChange(s state.Snapshot) {
	conv := clamp.Convert(s.Params)
	if conv.MaxViewportWidthPx != m.lastMaxVP {
		m.lastMaxVP = conv.MaxViewportWidthPx
		m.ctrl.SetMaxViewportWidth(m.lastMaxVP)
	}
	expr, _ := s.Result.Expression()
	if expr != m.lastExpr {
		m.lastExpr = expr
		m.ctrl.ExpressionChanged()
	}
	if m.opts.OnChange != nil {
		m.opts.OnChange(s.Params)
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.clk != nil {
		cmds = append(cmds, m.clk.wait())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settleMsg:
		msg.fire()
		if m.clk != nil {
			return m, m.clk.wait()
		}
		return m, nil

	case copiedResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.window.Resize(float64(msg.Width) * m.opts.CellWidthPx)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.IsVisible() {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.help.Toggle()
		return m, nil
	case "tab", "down":
		return m, m.setFocus(m.focus + 1)
	case "shift+tab", "up":
		return m, m.setFocus(m.focus - 1)
	case "u":
		f := m.inputs[m.focus].Field()
		m.store.ToggleUnit(f)
		m.inputs[m.focus].Sync(m.store.Params().Length(f))
		return m, nil
	case "c", "enter":
		return m, m.copyExpression()
	}

	var cmd tea.Cmd
	in := &m.inputs[m.focus]
	before := in.Text()
	*in, cmd = in.Update(msg)
	if in.Text() != before {
		if v, ok := in.Number(); ok {
			m.store.SetValue(in.Field(), v)
		}
	}
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.inputs)
	i = ((i % n) + n) % n
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) copyExpression() tea.Cmd {
	expr, ok := m.store.Result().Expression()
	if !ok {
		m.statusMsg = "Nothing to copy: fix the errors first."
		return nil
	}
	if err := m.opts.Clipboard(expr); err != nil {
		m.logger.Warn("copy to clipboard failed", "error", err)
		m.statusMsg = "Copy failed: " + err.Error()
		return nil
	}

	m.logger.Debug("copied expression", "expression", expr)
	m.statusMsg = ""
	m.copied = true
	m.copySeq++
	seq := m.copySeq
	return tea.Tick(CopiedDuration, func(time.Time) tea.Msg {
		return copiedResetMsg{seq: seq}
	})
}

// Copied reports whether the "Copied!" notice is showing.
func (m *Model) Copied() bool { return m.copied }

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.help.IsVisible() {
		return m.help.View()
	}

	t := m.theme
	res := m.store.Result()
	errs, cautions := res.Errors(), res.Cautions()
	errFields := clamp.FieldsWith(errs)
	cautionFields := clamp.FieldsWith(cautions)

	var b strings.Builder

	titleStyle := t.Renderer.NewStyle().Bold(true).Foreground(t.Primary)
	b.WriteString(titleStyle.Render("Fluid clamp() generator"))
	b.WriteString("\n\n")

	for _, in := range m.inputs {
		status := statusNormal
		switch {
		case errFields[in.Field()]:
			status = statusError
		case len(errs) == 0 && cautionFields[in.Field()]:
			status = statusCaution
		}
		b.WriteString(in.View(status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(errs) > 0 {
		b.WriteString(RenderMessages(clamp.UniqueTexts(errs), t.Error, t))
		b.WriteString("\n")
	} else {
		b.WriteString(m.expressionLine())
		b.WriteString("\n")
		if c := RenderMessages(clamp.UniqueTexts(cautions), t.Caution, t); c != "" {
			b.WriteString(c)
			b.WriteString("\n")
		}
	}
	if m.statusMsg != "" {
		b.WriteString(t.Renderer.NewStyle().Foreground(t.Subtext).Render(m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.previewView())
	b.WriteString("\n\n")
	b.WriteString(RenderDivider(m.width, t))
	b.WriteString("\n")
	b.WriteString(t.Renderer.NewStyle().Faint(true).Render(
		"tab: next field • u: px/rem • c: copy • ?: help • q: quit"))

	return b.String()
}

// expressionLine renders the code, truncated to the terminal width, with
// the copy notice after it.
func (m *Model) expressionLine() string {
	t := m.theme
	expr, _ := m.store.Result().Expression()

	notice := ""
	if m.copied {
		notice = "  " + t.Renderer.NewStyle().Foreground(t.Success).Bold(true).Render("Copied!")
	}

	if m.width > 0 {
		avail := m.width - lipgloss.Width(notice)
		if avail > 0 && runewidth.StringWidth(expr) > avail {
			expr = truncate.StringWithTail(expr, uint(avail), "…")
		}
	}
	return t.Renderer.NewStyle().Foreground(t.Code).Render(expr) + notice
}
