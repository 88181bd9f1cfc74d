// Package clamp turns four bounds into a fluid CSS clamp() expression.
//
// The pipeline is Convert (units to pixels), Validate (ordered rules
// producing errors or cautions) and Compute (slope and intercept). Generate
// runs all three and returns a Result that holds either an expression or
// a list of errors, never both.
package clamp

// Result is the outcome of Generate. It is either a computed expression
// (possibly with cautions) or a non-empty list of errors.
type Result struct {
	expression string
	formula    Formula
	cautions   []Message
	errors     []Message
}

// Generate converts, validates and, if there are no errors, computes the
// clamp expression for p.
func Generate(p Params) Result {
	converted := Convert(p)
	outcome := Validate(converted)
	if outcome.HasErrors() {
		return Result{errors: outcome.Errors}
	}

	formula := Compute(converted)
	return Result{
		expression: formula.Expression(),
		formula:    formula,
		cautions:   outcome.Cautions,
	}
}

// OK reports whether an expression was computed.
func (r Result) OK() bool {
	return len(r.errors) == 0
}

// Expression returns the clamp() value and true, or "" and false when
// validation failed.
func (r Result) Expression() (string, bool) {
	if !r.OK() {
		return "", false
	}
	return r.expression, true
}

// Formula returns the underlying linear function when OK.
func (r Result) Formula() (Formula, bool) {
	if !r.OK() {
		return Formula{}, false
	}
	return r.formula, true
}

// Errors returns the hard errors in rule order.
func (r Result) Errors() []Message {
	return append([]Message(nil), r.errors...)
}

// Cautions returns advisory messages. Always empty when there are errors.
func (r Result) Cautions() []Message {
	return append([]Message(nil), r.cautions...)
}

// Report is the serializable form of a Result.
type Report struct {
	Expression string    `json:"expression,omitempty"`
	Cautions   []Message `json:"cautions,omitempty"`
	Errors     []Message `json:"errors,omitempty"`
}

// Report flattens r for JSON output.
func (r Result) Report() Report {
	expr, _ := r.Expression()
	return Report{Expression: expr, Cautions: r.Cautions(), Errors: r.Errors()}
}
