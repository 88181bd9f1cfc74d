package clamp

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func params(minVP, maxVP, minV, maxV Length) Params {
	return Params{
		MinViewportWidth: minVP,
		MaxViewportWidth: maxVP,
		MinValue:         minV,
		MaxValue:         maxV,
		RootFontSizePx:   16,
	}
}

func TestGenerate_Expressions(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want string
	}{
		{
			name: "defaults",
			p:    params(Px(600), Px(1600), Px(16), Px(24)),
			want: "clamp(1rem, 0.8vw + 0.7rem, 1.5rem)",
		},
		{
			name: "equal bounds",
			p:    params(Px(600), Px(1600), Px(16), Px(16)),
			want: "clamp(1rem, 0vw + 1rem, 1rem)",
		},
		{
			name: "four decimals",
			p:    params(Px(320), Px(1280), Px(14), Px(22)),
			want: "clamp(0.875rem, 0.8333vw + 0.7083rem, 1.375rem)",
		},
		{
			name: "negative intercept",
			p:    params(Px(600), Px(1000), Px(0), Px(40)),
			want: "clamp(0rem, 10vw - 3.75rem, 2.5rem)",
		},
		{
			name: "rem viewport bounds",
			p:    params(Rem(37.5), Rem(100), Rem(1), Rem(1.5)),
			want: "clamp(1rem, 0.8vw + 0.7rem, 1.5rem)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Generate(tt.p)
			got, ok := r.Expression()
			if !ok {
				t.Fatalf("Expected expression, got errors %v", r.Errors())
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGenerate_InvertedViewport(t *testing.T) {
	r := Generate(params(Px(1600), Px(600), Px(16), Px(24)))

	if r.OK() {
		t.Fatal("Expected errors for inverted viewport range")
	}
	if _, ok := r.Expression(); ok {
		t.Error("Expected no expression when errors are present")
	}

	want := []Message{
		{Field: MinViewportWidth, Text: MsgViewportOrder},
		{Field: MaxViewportWidth, Text: MsgViewportOrder},
	}
	if got := r.Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected errors %v, got %v", want, got)
	}
}

func TestGenerate_NegativeMinValue(t *testing.T) {
	r := Generate(params(Px(600), Px(1600), Px(-5), Px(24)))

	want := []Message{{Field: MinValue, Text: MsgNegative}}
	if got := r.Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected errors %v, got %v", want, got)
	}
	if _, ok := r.Expression(); ok {
		t.Error("Expected no expression")
	}
}

func TestGenerate_EqualBoundsCaution(t *testing.T) {
	r := Generate(params(Px(600), Px(1600), Px(16), Px(16)))

	if !r.OK() {
		t.Fatalf("Expected no errors, got %v", r.Errors())
	}
	want := []Message{
		{Field: MinValue, Text: MsgNoScaling},
		{Field: MaxValue, Text: MsgNoScaling},
	}
	if got := r.Cautions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected cautions %v, got %v", want, got)
	}
	f, _ := r.Formula()
	if f.SlopePxPerPx != 0 {
		t.Errorf("Expected zero slope, got %v", f.SlopePxPerPx)
	}
}

func TestValidate_RuleOrder(t *testing.T) {
	// Every rule fires: inverted and negative viewports, negative and
	// inverted values, zero root.
	c := Converted{
		MinViewportWidthPx: -1,
		MaxViewportWidthPx: -2,
		MinValuePx:         -3,
		MaxValuePx:         -4,
		RootFontSizePx:     0,
	}
	out := Validate(c)

	want := []Message{
		{Field: MinViewportWidth, Text: MsgViewportOrder},
		{Field: MaxViewportWidth, Text: MsgViewportOrder},
		{Field: MinValue, Text: MsgNegative},
		{Field: MaxValue, Text: MsgNegative},
		{Field: MinViewportWidth, Text: MsgNegative},
		{Field: MaxViewportWidth, Text: MsgNegative},
		{Field: MinValue, Text: MsgValueOrder},
		{Field: MaxValue, Text: MsgValueOrder},
		{Field: RootFontSize, Text: MsgRootFontSize},
	}
	if !reflect.DeepEqual(out.Errors, want) {
		t.Errorf("Expected errors\n%v\ngot\n%v", want, out.Errors)
	}
	if len(out.Cautions) != 0 {
		t.Errorf("Expected no cautions alongside errors, got %v", out.Cautions)
	}
}

func TestValidate_CautionsSkippedOnError(t *testing.T) {
	// Equal values would raise a caution, but the viewport error wins.
	out := Validate(Converted{
		MinViewportWidthPx: 1000,
		MaxViewportWidthPx: 1000,
		MinValuePx:         16,
		MaxValuePx:         16,
		RootFontSizePx:     16,
	})
	if !out.HasErrors() {
		t.Fatal("Expected errors")
	}
	if len(out.Cautions) != 0 {
		t.Errorf("Expected cautions to be skipped, got %v", out.Cautions)
	}
}

func TestValidate_ZeroRootFontSize(t *testing.T) {
	p := params(Px(600), Px(1600), Px(16), Px(24))
	p.RootFontSizePx = 0

	r := Generate(p)
	want := []Message{{Field: RootFontSize, Text: MsgRootFontSize}}
	if got := r.Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected errors %v, got %v", want, got)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := params(Px(320), Px(1440), Rem(0.875), Px(31))
	first, _ := Generate(p).Expression()
	for i := 0; i < 100; i++ {
		got, _ := Generate(p).Expression()
		if got != first {
			t.Fatalf("Iteration %d: expected %q, got %q", i, first, got)
		}
	}
}

func TestGenerate_ErrorExpressionExclusive(t *testing.T) {
	values := []float64{-10, 0, 16, 24, 600, 1600}
	for _, minVP := range values {
		for _, maxVP := range values {
			for _, minV := range values {
				for _, maxV := range values {
					r := Generate(params(Px(minVP), Px(maxVP), Px(minV), Px(maxV)))
					expr, ok := r.Expression()
					if ok && len(r.Errors()) > 0 {
						t.Fatalf("Expression %q present with errors %v", expr, r.Errors())
					}
					if !ok && len(r.Errors()) == 0 {
						t.Fatalf("No expression and no errors for %v %v %v %v", minVP, maxVP, minV, maxV)
					}
					if !ok && len(r.Cautions()) > 0 {
						t.Fatalf("Cautions %v present with errors", r.Cautions())
					}
				}
			}
		}
	}
}

func TestGenerate_UnitInvariance(t *testing.T) {
	remResult := Generate(params(Px(600), Px(1600), Rem(1), Rem(1.5)))
	pxResult := Generate(params(Px(600), Px(1600), Px(16), Px(24)))

	rf, ok := remResult.Formula()
	if !ok {
		t.Fatal("Expected rem input to compute")
	}
	pf, _ := pxResult.Formula()

	if rf.SlopeVw != pf.SlopeVw || rf.InterceptRem != pf.InterceptRem {
		t.Errorf("Expected equal slope/intercept, got rem (%v, %v) px (%v, %v)",
			rf.SlopeVw, rf.InterceptRem, pf.SlopeVw, pf.InterceptRem)
	}
}

func TestGenerate_SlopeMonotonicInMaxValue(t *testing.T) {
	prev := -1.0
	for _, maxV := range []float64{16, 17, 20, 24, 32, 48, 96} {
		f, ok := Generate(params(Px(600), Px(1600), Px(16), Px(maxV))).Formula()
		if !ok {
			t.Fatalf("maxValue=%v: unexpected errors", maxV)
		}
		if math.Abs(f.SlopePxPerPx) <= prev {
			t.Errorf("maxValue=%v: slope %v did not increase past %v", maxV, f.SlopePxPerPx, prev)
		}
		prev = math.Abs(f.SlopePxPerPx)
	}
}

func TestGenerate_RoundingStability(t *testing.T) {
	for minVP := 0.0; minVP < 900; minVP += 37 {
		for maxV := 10.0; maxV < 80; maxV += 3.3 {
			expr, ok := Generate(params(Px(minVP), Px(1337), Px(9.7), Px(maxV))).Expression()
			if !ok {
				continue
			}
			if strings.Contains(expr, "-0rem") || strings.Contains(expr, "-0vw") || strings.Contains(expr, "- 0rem") {
				t.Errorf("Negative zero rendered in %q", expr)
			}
			for _, tok := range strings.FieldsFunc(expr, func(r rune) bool {
				return !(r == '.' || (r >= '0' && r <= '9'))
			}) {
				if i := strings.IndexByte(tok, '.'); i >= 0 && len(tok)-i-1 > 4 {
					t.Errorf("More than four decimals in %q (token %q)", expr, tok)
				}
			}
		}
	}
}

func TestFormula_ValueAt(t *testing.T) {
	f, _ := Generate(DefaultParams()).Formula()

	tests := []struct {
		viewport float64
		want     float64
	}{
		{300, 16},
		{600, 16},
		{1100, 20},
		{1600, 24},
		{2400, 24},
	}
	for _, tt := range tests {
		if got := f.ValueAt(tt.viewport); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ValueAt(%v) = %v, want %v", tt.viewport, got, tt.want)
		}
	}
}

func TestResult_Report(t *testing.T) {
	rep := Generate(params(Px(600), Px(1600), Px(-1), Px(24))).Report()
	if rep.Expression != "" {
		t.Errorf("Expected empty expression, got %q", rep.Expression)
	}
	if len(rep.Errors) != 1 || rep.Errors[0].Field != MinValue {
		t.Errorf("Expected one minValue error, got %v", rep.Errors)
	}
}

func TestValidate_NonFiniteBounds(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		p    Params
		want []Message
	}{
		{
			"nan min value",
			params(Px(600), Px(1600), Px(nan), Px(24)),
			[]Message{{Field: MinValue, Text: MsgNotFinite}},
		},
		{
			"infinite viewport",
			params(Px(600), Px(math.Inf(1)), Px(16), Px(24)),
			[]Message{{Field: MaxViewportWidth, Text: MsgNotFinite}},
		},
		{
			"negative infinity reported once",
			params(Px(math.Inf(-1)), Px(1600), Px(16), Rem(nan)),
			[]Message{
				{Field: MinViewportWidth, Text: MsgNotFinite},
				{Field: MaxValue, Text: MsgNotFinite},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Generate(tt.p)
			if expr, ok := r.Expression(); ok {
				t.Fatalf("Expected no expression, got %q", expr)
			}
			if got := r.Errors(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected errors %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidate_NonFiniteRootFontSize(t *testing.T) {
	want := []Message{{Field: RootFontSize, Text: MsgRootFontSize}}
	for _, root := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		p := params(Rem(37.5), Px(1600), Rem(1), Px(24))
		p.RootFontSizePx = root

		r := Generate(p)
		if expr, ok := r.Expression(); ok {
			t.Fatalf("root %v: expected no expression, got %q", root, expr)
		}
		if got := r.Errors(); !reflect.DeepEqual(got, want) {
			t.Errorf("root %v: expected errors %v, got %v", root, want, got)
		}
	}
}
