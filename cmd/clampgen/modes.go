package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
	"github.com/Dicklesworthstone/clampgen/pkg/config"
	"github.com/Dicklesworthstone/clampgen/pkg/loader"
	"github.com/Dicklesworthstone/clampgen/pkg/persist"
	"github.com/Dicklesworthstone/clampgen/pkg/plot"
	"github.com/Dicklesworthstone/clampgen/pkg/ui"
	"github.com/Dicklesworthstone/clampgen/pkg/watcher"
)

// app runs one invocation of the command.
type app struct {
	flags  cliFlags
	cfg    config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) dispatch(ctx context.Context) error {
	f := a.flags
	switch {
	case f.reset:
		return a.runReset()
	case f.batch != "":
		return a.runBatch()
	case f.watch:
		return a.runWatch(ctx)
	case f.interactive():
		return a.runInteractive()
	}

	p, err := a.baseParams()
	if err != nil {
		return err
	}
	if p, err = applyOverrides(p, f); err != nil {
		return err
	}
	if f.form {
		if p, err = ui.RunForm(ctx, p); err != nil {
			return err
		}
	}
	if f.plotPath != "" {
		if err := plot.WriteFile(f.plotPath, p); err != nil {
			return err
		}
		a.logger.Info("wrote plot", "path", f.plotPath)
		if !f.print && !f.json && !f.form {
			return nil
		}
	}
	return a.emit(clamp.Generate(p), p)
}

// emit prints one result the way -print and -json describe.
func (a *app) emit(res clamp.Result, p clamp.Params) error {
	if a.flags.json {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Report()); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if !res.OK() {
			return exitError(1)
		}
		return nil
	}

	if code := printResult(a.stdout, a.stderr, res); code != 0 {
		return exitError(code)
	}
	a.logViewportValue(res, p)
	return nil
}

// printResult writes the expression to stdout and any cautions as
// warnings to stderr. On errors only the deduplicated messages are
// written, to stderr, and the exit code is 1.
func printResult(stdout, stderr io.Writer, res clamp.Result) int {
	expr, ok := res.Expression()
	if !ok {
		for _, text := range clamp.UniqueTexts(res.Errors()) {
			fmt.Fprintf(stderr, "Error: %s\n", text)
		}
		return 1
	}
	fmt.Fprintln(stdout, expr)
	for _, text := range clamp.UniqueTexts(res.Cautions()) {
		fmt.Fprintf(stderr, "Warning: %s\n", text)
	}
	return 0
}

// logViewportValue reports the value at the current terminal width, read
// as a viewport of columns times the configured cell width.
func (a *app) logViewportValue(res clamp.Result, p clamp.Params) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return
	}
	formula, ok := res.Formula()
	if !ok {
		return
	}
	vp := float64(cols) * a.cfg.CellWidthPx
	px := formula.ValueAt(vp)
	a.logger.Debug("value at terminal width",
		"viewport_px", vp,
		"px", clamp.FormatCompact(px),
		"rem", clamp.FormatCompact(px/p.RootFontSizePx))
}

func (a *app) runBatch() error {
	res, err := loader.LoadBatch(a.flags.batch)
	if err != nil {
		return err
	}
	for _, skipped := range res.Skipped {
		a.logger.Warn("skipping malformed line", "file", a.flags.batch, "line", skipped.Line, "error", skipped.Err)
	}

	failed := 0
	for _, e := range res.Entries {
		p := e.Params
		if a.flags.rootSet {
			p.RootFontSizePx = a.flags.root
		}
		r := clamp.Generate(p)
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("line %d", e.Line)
		}
		if a.flags.json {
			line, err := json.Marshal(struct {
				Name string `json:"name"`
				clamp.Report
			}{name, r.Report()})
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Fprintln(a.stdout, string(line))
		} else if expr, ok := r.Expression(); ok {
			fmt.Fprintf(a.stdout, "%s: %s\n", name, expr)
		} else {
			fmt.Fprintf(a.stdout, "%s: error: %s\n", name, strings.Join(clamp.UniqueTexts(r.Errors()), " "))
		}
		if !r.OK() {
			failed++
		}
	}

	a.logger.Debug("batch done", "entries", len(res.Entries), "failed", failed, "skipped", len(res.Skipped))
	if failed > 0 || len(res.Skipped) > 0 {
		return exitError(1)
	}
	return nil
}

// runWatch prints the expression for -file and again on every change,
// until the context is cancelled.
func (a *app) runWatch(ctx context.Context) error {
	var mu sync.Mutex
	regenerate := func() {
		mu.Lock()
		defer mu.Unlock()
		p, err := a.baseParams()
		if err == nil {
			p, err = applyOverrides(p, a.flags)
		}
		if err != nil {
			a.logger.Error("reload failed", "file", a.flags.file, "error", err)
			return
		}
		res := clamp.Generate(p)
		if a.flags.json {
			if err := json.NewEncoder(a.stdout).Encode(res.Report()); err != nil {
				a.logger.Error("encode result", "error", err)
			}
			return
		}
		printResult(a.stdout, a.stderr, res)
	}
	regenerate()

	w := watcher.NewFileWatcher(a.flags.file, watcher.NewDebouncer(watcher.DefaultDebounceDuration), a.logger)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx, regenerate)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Debug("watch stopping")
		return nil
	})
	return g.Wait()
}

func (a *app) runReset() error {
	db, err := persist.OpenDB(a.cfg.DBPath, a.logger)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Remove(persist.StorageName); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Saved parameters cleared.")
	return nil
}

// runInteractive starts the editor seeded from the saved snapshot when it
// is fresh, and saves every change.
func (a *app) runInteractive() error {
	p := clamp.DefaultParams()
	p.RootFontSizePx = a.cfg.RootFontSize

	var onChange func(clamp.Params)
	db, err := persist.OpenDB(a.cfg.DBPath, a.logger)
	if err != nil {
		a.logger.Warn("persistence disabled", "error", err)
	} else {
		defer db.Close()
		saved, ok, err := db.Load(persist.StorageName, time.Now(), a.cfg.TTL)
		switch {
		case err != nil:
			a.logger.Warn("load saved parameters", "error", err)
		case ok:
			p = saved
			a.logger.Info("restored saved parameters")
		}
		onChange = func(p clamp.Params) {
			if err := db.Save(persist.StorageName, p, time.Now()); err != nil {
				a.logger.Warn("save parameters", "error", err)
			}
		}
	}

	if a.flags.rootSet {
		p.RootFontSizePx = a.flags.root
	}
	if p, err = applyOverrides(p, a.flags); err != nil {
		return err
	}

	m := ui.NewModel(ui.Options{
		Params:      p,
		Theme:       ui.DefaultTheme(nil),
		CellWidthPx: a.cfg.CellWidthPx,
		SettleDelay: a.cfg.SettleDelay,
		PreviewText: a.cfg.PreviewText,
		OnChange:    onChange,
		Logger:      a.logger,
	})
	defer m.Close()

	// Flag overrides count as a change worth keeping.
	if onChange != nil && a.flags.hasOverrides() {
		onChange(p)
	}

	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
