package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

// runCLI runs the command with an isolated config file.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-config", cfg}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestPrintDefaults(t *testing.T) {
	code, out, _ := runCLI(t, "-print")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if strings.TrimSpace(out) != "clamp(1rem, 0.8vw + 0.7rem, 1.5rem)" {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestPrintOverrides(t *testing.T) {
	code, out, _ := runCLI(t, "-print", "-min-vw", "20rem", "-max-vw", "80rem", "-min", "1rem", "-max", "3rem")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if strings.TrimSpace(out) != "clamp(1rem, 3.3333vw + 0.3333rem, 3rem)" {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestPrintErrors(t *testing.T) {
	code, out, errOut := runCLI(t, "-print", "-min", "-1px", "-max", "-2px")
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if out != "" {
		t.Errorf("Expected no stdout, got %q", out)
	}
	if n := strings.Count(errOut, clamp.MsgNegative); n != 1 {
		t.Errorf("Expected negative message once, got %d in %q", n, errOut)
	}
}

func TestPrintCautionWarns(t *testing.T) {
	code, out, errOut := runCLI(t, "-print", "-max", "16px")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "clamp(1rem, 0vw + 1rem, 1rem)") {
		t.Errorf("Unexpected output %q", out)
	}
	if !strings.Contains(errOut, "Warning: "+clamp.MsgNoScaling) {
		t.Errorf("Expected warning, got %q", errOut)
	}
}

func TestRootFlag(t *testing.T) {
	code, out, _ := runCLI(t, "-print", "-root", "20")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if strings.TrimSpace(out) != "clamp(0.8rem, 0.8vw + 0.56rem, 1.2rem)" {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestRootFlagZeroIsAnError(t *testing.T) {
	code, out, errOut := runCLI(t, "-print", "-root", "0")
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if out != "" {
		t.Errorf("Expected no stdout, got %q", out)
	}
	if !strings.Contains(errOut, clamp.MsgRootFontSize) {
		t.Errorf("Expected %q, got %q", clamp.MsgRootFontSize, errOut)
	}
}

func TestRootFlagNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-inf"} {
		code, out, errOut := runCLI(t, "-print", "-root", v)
		if code != 2 {
			t.Errorf("-root %s: expected exit 2, got %d", v, code)
		}
		if out != "" {
			t.Errorf("-root %s: expected no stdout, got %q", v, out)
		}
		if !strings.Contains(errOut, "finite") {
			t.Errorf("-root %s: unexpected stderr %q", v, errOut)
		}
	}
}

func TestRootFlagZeroOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	data := "min_viewport_width: 320px\nmax_viewport_width: 1280px\nmin_value: 1rem\nmax_value: 2rem\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, errOut := runCLI(t, "-file", path, "-root", "0")
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, clamp.MsgRootFontSize) {
		t.Errorf("Expected %q, got %q", clamp.MsgRootFontSize, errOut)
	}
}

func TestJSONOutput(t *testing.T) {
	code, out, _ := runCLI(t, "-json", "-max-vw", "500px")
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	var rep clamp.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("Invalid JSON %q: %v", out, err)
	}
	if rep.Expression != "" {
		t.Errorf("Expected no expression, got %q", rep.Expression)
	}
	if len(rep.Errors) != 2 || rep.Errors[0].Text != clamp.MsgViewportOrder {
		t.Errorf("Unexpected errors %+v", rep.Errors)
	}
}

func TestBadFlagValue(t *testing.T) {
	code, _, errOut := runCLI(t, "-print", "-min", "wide")
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut, "-min") {
		t.Errorf("Expected error to name the flag, got %q", errOut)
	}
}

func TestFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	data := "min_viewport_width: 320px\nmax_viewport_width: 1280px\nmin_value: 1rem\nmax_value: 2rem\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	code, out, _ := runCLI(t, "-file", path)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if strings.TrimSpace(out) != "clamp(1rem, 1.6667vw + 0.6667rem, 2rem)" {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestBatchMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sets.jsonl")
	lines := []string{
		`{"name":"body","minViewportWidth":"600px","maxViewportWidth":"1600px","minValue":"16px","maxValue":"24px"}`,
		`{"name":"broken","minViewportWidth":"600px","maxViewportWidth":"1600px","minValue":"-1px","maxValue":"24px"}`,
		`not json`,
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "-batch", path)
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(out, "body: clamp(1rem, 0.8vw + 0.7rem, 1.5rem)") {
		t.Errorf("Missing body line in %q", out)
	}
	if !strings.Contains(out, "broken: error: "+clamp.MsgNegative) {
		t.Errorf("Missing broken line in %q", out)
	}
	if !strings.Contains(errOut, "skipping malformed line") {
		t.Errorf("Expected skip warning, got %q", errOut)
	}
}

func TestPlotMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.svg")
	code, out, _ := runCLI(t, "-plot", path)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if out != "" {
		t.Errorf("Expected plot-only run to print nothing, got %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected plot file: %v", err)
	}
}

func TestResetMode(t *testing.T) {
	db := filepath.Join(t.TempDir(), "state.db")
	code, out, _ := runCLI(t, "-reset", "-db", db)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "cleared") {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestWatchRequiresFile(t *testing.T) {
	if code, _, _ := runCLI(t, "-watch"); code != 2 {
		t.Errorf("Expected exit 2, got %d", code)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "-version")
	if code != 0 || !strings.Contains(out, version) {
		t.Errorf("Unexpected version output %q (exit %d)", out, code)
	}
}

func TestInteractiveDetection(t *testing.T) {
	tests := []struct {
		flags cliFlags
		want  bool
	}{
		{cliFlags{}, true},
		{cliFlags{minVW: "10px", debug: true}, true},
		{cliFlags{print: true}, false},
		{cliFlags{json: true}, false},
		{cliFlags{plotPath: "x.svg"}, false},
		{cliFlags{form: true}, false},
	}
	for _, tt := range tests {
		if got := tt.flags.interactive(); got != tt.want {
			t.Errorf("interactive(%+v) = %v, want %v", tt.flags, got, tt.want)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	p, err := applyOverrides(clamp.DefaultParams(), cliFlags{minValue: "1.25rem", maxVW: "90rem"})
	if err != nil {
		t.Fatalf("applyOverrides failed: %v", err)
	}
	if p.MinValue != clamp.Rem(1.25) {
		t.Errorf("Expected 1.25rem, got %v", p.MinValue)
	}
	if p.MaxViewportWidth != clamp.Rem(90) {
		t.Errorf("Expected 90rem, got %v", p.MaxViewportWidth)
	}
	if p.MinViewportWidth != clamp.Px(600) {
		t.Errorf("Expected untouched 600px, got %v", p.MinViewportWidth)
	}
}
