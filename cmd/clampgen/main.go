package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
	"github.com/Dicklesworthstone/clampgen/pkg/config"
	"github.com/Dicklesworthstone/clampgen/pkg/loader"
)

const version = "0.1.0"

// cliFlags holds the parsed command line.
type cliFlags struct {
	minVW, maxVW, minValue, maxValue string
	root                             float64
	rootSet                          bool
	configPath                       string
	dbPath                           string

	print    bool
	json     bool
	file     string
	batch    string
	watch    bool
	plotPath string
	form     bool
	reset    bool

	debug   bool
	version bool
	help    bool
}

// interactive reports whether no batch-style mode was requested.
func (f cliFlags) interactive() bool {
	return !f.print && !f.json && f.file == "" && f.batch == "" &&
		f.plotPath == "" && !f.form && !f.reset
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, *flag.FlagSet, error) {
	var f cliFlags
	fs := flag.NewFlagSet("clampgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.minVW, "min-vw", "", "Min viewport width, e.g. 600px or 37.5rem")
	fs.StringVar(&f.maxVW, "max-vw", "", "Max viewport width")
	fs.StringVar(&f.minValue, "min", "", "Min value")
	fs.StringVar(&f.maxValue, "max", "", "Max value")
	fs.Float64Var(&f.root, "root", 0, "Root font size in px (default from config, 16)")
	fs.StringVar(&f.configPath, "config", config.DefaultPath(), "Config file")
	fs.StringVar(&f.dbPath, "db", "", "SQLite database for saved parameters")

	fs.BoolVar(&f.print, "print", false, "Print the expression and exit")
	fs.BoolVar(&f.json, "json", false, "Print {expression, cautions, errors} as JSON")
	fs.StringVar(&f.file, "file", "", "Read parameters from a YAML or JSON file")
	fs.StringVar(&f.batch, "batch", "", "Generate one expression per line of a JSONL file")
	fs.BoolVar(&f.watch, "watch", false, "With -file, regenerate whenever the file changes")
	fs.StringVar(&f.plotPath, "plot", "", "Write a chart of the curve (.svg or .png)")
	fs.BoolVar(&f.form, "form", false, "Enter the bounds in a form, then print")
	fs.BoolVar(&f.reset, "reset", false, "Forget the saved parameters")

	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.version, "version", false, "Show version")
	fs.BoolVar(&f.help, "help", false, "Show help")

	err := fs.Parse(args)
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "root" {
			f.rootSet = true
		}
	})
	return f, fs, err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if f.help {
		fmt.Fprintln(stdout, "Usage: clampgen [options]")
		fmt.Fprintln(stdout, "\nGenerate fluid CSS clamp() expressions that scale linearly with viewport width.")
		fmt.Fprintln(stdout, "Without a mode flag an interactive editor is started.")
		fmt.Fprintln(stdout)
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}
	if f.version {
		fmt.Fprintf(stdout, "clampgen version %s\n", version)
		return 0
	}
	if f.watch && f.file == "" {
		fmt.Fprintln(stderr, "Error: -watch requires -file")
		return 2
	}
	if f.rootSet && (math.IsNaN(f.root) || math.IsInf(f.root, 0)) {
		fmt.Fprintln(stderr, "Error: -root must be a finite number")
		return 2
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if f.rootSet {
		cfg.RootFontSize = f.root
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}

	logger, closeLog, err := newLogger(f, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{flags: f, cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}
	if err := a.dispatch(ctx); err != nil {
		var exit exitError
		if errors.As(err, &exit) {
			return int(exit)
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger sends logs to stderr, or to the log file while the interactive
// screen owns the terminal.
func newLogger(f cliFlags, cfg config.Config, stderr io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}

	out := stderr
	noColor := true
	if file, ok := stderr.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		noColor = false
	}
	closeFn := func() {}
	if f.interactive() {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		noColor = true
		closeFn = func() { file.Close() }
	}

	logger := slog.New(tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}))
	return logger, closeFn, nil
}

// exitError carries a non-zero exit status without an error message, for
// modes that already reported the problem.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// baseParams returns the parameters before flag overrides: the -file
// contents when given, else the defaults at the configured root size.
func (a *app) baseParams() (clamp.Params, error) {
	if a.flags.file != "" {
		p, err := loader.LoadParams(a.flags.file)
		if err != nil {
			return clamp.Params{}, err
		}
		if a.flags.rootSet {
			p.RootFontSizePx = a.flags.root
		}
		return p, nil
	}
	p := clamp.DefaultParams()
	p.RootFontSizePx = a.cfg.RootFontSize
	return p, nil
}

// applyOverrides sets every bound given on the command line.
func applyOverrides(p clamp.Params, f cliFlags) (clamp.Params, error) {
	overrides := []struct {
		field clamp.Field
		raw   string
		flag  string
	}{
		{clamp.MinViewportWidth, f.minVW, "-min-vw"},
		{clamp.MaxViewportWidth, f.maxVW, "-max-vw"},
		{clamp.MinValue, f.minValue, "-min"},
		{clamp.MaxValue, f.maxValue, "-max"},
	}
	for _, o := range overrides {
		if o.raw == "" {
			continue
		}
		l, err := clamp.ParseLength(o.raw)
		if err != nil {
			return p, fmt.Errorf("%s: %w", o.flag, err)
		}
		p = p.WithLength(o.field, l)
	}
	return p, nil
}

func (f cliFlags) hasOverrides() bool {
	return f.minVW != "" || f.maxVW != "" || f.minValue != "" || f.maxValue != ""
}
