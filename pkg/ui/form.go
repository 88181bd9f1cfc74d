package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Dicklesworthstone/clampgen/pkg/clamp"
)

// boundForm holds the text of the four bounds while a form is open.
type boundForm struct {
	values map[clamp.Field]*string
}

func newBoundForm(p clamp.Params) *boundForm {
	bf := &boundForm{values: make(map[clamp.Field]*string)}
	for _, f := range clamp.BoundFields {
		s := p.Length(f).String()
		bf.values[f] = &s
	}
	return bf
}

func validateLength(s string) error {
	_, err := clamp.ParseLength(s)
	return err
}

// form builds a single-group huh form with one input per bound.
func (bf *boundForm) form() *huh.Form {
	fields := make([]huh.Field, 0, len(clamp.BoundFields))
	for _, f := range clamp.BoundFields {
		fields = append(fields, huh.NewInput().
			Title(f.Label()).
			Placeholder("e.g. 600px or 1.5rem").
			Value(bf.values[f]).
			Validate(validateLength))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

// params applies the entered bounds on top of base.
func (bf *boundForm) params(base clamp.Params) (clamp.Params, error) {
	p := base
	for _, f := range clamp.BoundFields {
		l, err := clamp.ParseLength(*bf.values[f])
		if err != nil {
			return base, fmt.Errorf("%s: %w", f.Label(), err)
		}
		p = p.WithLength(f, l)
	}
	return p, nil
}

// RunForm prompts for the four bounds, pre-filled from initial, and
// returns the parameters entered.
func RunForm(ctx context.Context, initial clamp.Params) (clamp.Params, error) {
	bf := newBoundForm(initial)
	if err := bf.form().RunWithContext(ctx); err != nil {
		return initial, fmt.Errorf("form: %w", err)
	}
	return bf.params(initial)
}
