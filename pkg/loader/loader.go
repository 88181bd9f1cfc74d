// Package loader reads clamp parameter sets from YAML, JSON and JSONL files.
package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

// Entry is one parameter set read from a file.
type Entry struct {
	Name   string
	Line   int
	Params clamp.Params
}

// BatchResult holds the entries of a JSONL file and the lines that could
// not be parsed.
type BatchResult struct {
	Entries []Entry
	Skipped []LineError
}

// LineError describes a malformed JSONL line.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// LoadParams reads a single parameter set. Files ending in .json are
// decoded as JSON, everything else as YAML.
func LoadParams(path string) (clamp.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return clamp.Params{}, fmt.Errorf("failed to read params file: %w", err)
	}

	var fp fileParams
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &fp)
	default:
		err = yaml.Unmarshal(data, &fp)
	}
	if err != nil {
		return clamp.Params{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fp.params()
}

// LoadBatch reads one JSON parameter set per line. Blank lines are
// ignored; malformed lines are skipped and reported in the result.
func LoadBatch(path string) (BatchResult, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return BatchResult{}, fmt.Errorf("no batch file found at %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer file.Close()

	var res BatchResult
	scanner := bufio.NewScanner(file)
	const maxCapacity = 1024 * 1024 // 1MB
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var fp fileParams
		if err := json.Unmarshal([]byte(line), &fp); err != nil {
			res.Skipped = append(res.Skipped, LineError{Line: lineNum, Err: err})
			continue
		}
		p, err := fp.params()
		if err != nil {
			res.Skipped = append(res.Skipped, LineError{Line: lineNum, Err: err})
			continue
		}
		res.Entries = append(res.Entries, Entry{Name: fp.Name, Line: lineNum, Params: p})
	}

	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("error reading batch file: %w", err)
	}

	return res, nil
}

// fileParams is the on-disk shape. Every bound is required; the root font
// size defaults to 16px.
type fileParams struct {
	Name             string      `json:"name" yaml:"name"`
	MinViewportWidth *lengthSpec `json:"minViewportWidth" yaml:"min_viewport_width"`
	MaxViewportWidth *lengthSpec `json:"maxViewportWidth" yaml:"max_viewport_width"`
	MinValue         *lengthSpec `json:"minValue" yaml:"min_value"`
	MaxValue         *lengthSpec `json:"maxValue" yaml:"max_value"`
	RootFontSize     float64     `json:"rootFontSize" yaml:"root_font_size"`
}

func (fp fileParams) params() (clamp.Params, error) {
	p := clamp.Params{RootFontSizePx: fp.RootFontSize}
	if p.RootFontSizePx == 0 {
		p.RootFontSizePx = clamp.DefaultRootFontSizePx
	}
	if math.IsNaN(p.RootFontSizePx) || math.IsInf(p.RootFontSizePx, 0) {
		return clamp.Params{}, fmt.Errorf("invalid root font size: not a finite number")
	}

	specs := []struct {
		field clamp.Field
		spec  *lengthSpec
	}{
		{clamp.MinViewportWidth, fp.MinViewportWidth},
		{clamp.MaxViewportWidth, fp.MaxViewportWidth},
		{clamp.MinValue, fp.MinValue},
		{clamp.MaxValue, fp.MaxValue},
	}
	for _, s := range specs {
		if s.spec == nil {
			return clamp.Params{}, fmt.Errorf("missing %s", s.field)
		}
		p = p.WithLength(s.field, clamp.Length(*s.spec))
	}
	return p, nil
}

// lengthSpec accepts "600px", 600, or {value: 600, unit: px}.
type lengthSpec clamp.Length

func (l *lengthSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return l.parse(s)
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*l = lengthSpec(clamp.Px(n))
		return nil
	}

	var obj struct {
		Value *float64 `json:"value"`
		Unit  string   `json:"unit"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid length %s", string(data))
	}
	return l.fromParts(obj.Value, obj.Unit)
}

func (l *lengthSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return l.parse(node.Value)
	}

	var obj struct {
		Value *float64 `yaml:"value"`
		Unit  string   `yaml:"unit"`
	}
	if err := node.Decode(&obj); err != nil {
		return err
	}
	return l.fromParts(obj.Value, obj.Unit)
}

func (l *lengthSpec) parse(s string) error {
	parsed, err := clamp.ParseLength(s)
	if err != nil {
		return err
	}
	*l = lengthSpec(parsed)
	return nil
}

func (l *lengthSpec) fromParts(value *float64, unit string) error {
	if value == nil {
		return fmt.Errorf("length is missing a value")
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return fmt.Errorf("invalid length: not a finite number")
	}
	u := clamp.UnitPx
	if unit != "" {
		var err error
		if u, err = clamp.ParseUnit(unit); err != nil {
			return err
		}
	}
	*l = lengthSpec{Value: *value, Unit: u}
	return nil
}
