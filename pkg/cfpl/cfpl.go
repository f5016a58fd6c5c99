// Package cfpl is the public embedding surface for the CFPL interpreter:
// a small facade over the lexer, parser, and evaluator so a host
// application never needs to import the internal packages directly.
package cfpl

import (
	"github.com/cwbudde/cfpl/internal/ast"
	"github.com/cwbudde/cfpl/internal/cfplerrors"
	"github.com/cwbudde/cfpl/internal/interp"
	"github.com/cwbudde/cfpl/internal/lexer"
	"github.com/cwbudde/cfpl/internal/parser"
)

// Result is the outcome of one Run.
type Result struct {
	Success bool
	Output  string
	Error   error
}

// Variable is a snapshot of one declared variable's static type and
// current value, as exposed to a host application.
type Variable struct {
	Type  string
	Value string
}

// Engine runs CFPL programs and retains the environment produced by the
// most recent Run, so a host can inspect variables after execution.
type Engine struct {
	eval *interp.Evaluator
	prog *ast.Program
}

// New creates a ready-to-use Engine.
func New() *Engine {
	return &Engine{}
}

// Run lexes, parses, and evaluates source, feeding input as the ordered
// values consumed by INPUT statements, one element per value. Each element
// is used as given: Run does not split on commas or trim whitespace. It
// always starts from a clean environment.
func (e *Engine) Run(source string, input ...string) *Result {
	e.eval = interp.New(input)

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return errorResult(err)
	}

	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		return errorResult(err)
	}
	e.prog = prog

	if runtimeErr := e.eval.Run(prog); runtimeErr != nil {
		return errorResult(runtimeErr)
	}

	return &Result{Success: true, Output: e.eval.Output()}
}

func errorResult(err error) *Result {
	return &Result{Success: false, Error: err}
}

// GetVariables snapshots the variables declared by the most recent Run.
// Map iteration order is unspecified; use VariableNames for declaration
// order.
func (e *Engine) GetVariables() map[string]Variable {
	vars := make(map[string]Variable)
	if e.eval == nil {
		return vars
	}
	for name, b := range e.eval.Variables() {
		vars[name] = Variable{Type: b.Type.String(), Value: b.Value.String()}
	}
	return vars
}

// VariableNames returns declared variable names in declaration order.
func (e *Engine) VariableNames() []string {
	if e.eval == nil {
		return nil
	}
	return e.eval.Names()
}

// Reset discards the engine's state, as if newly constructed with New.
func (e *Engine) Reset() {
	e.eval = nil
	e.prog = nil
}

// Run is a package-level convenience wrapper for one-shot execution.
func Run(source string, input ...string) *Result {
	return New().Run(source, input...)
}

// AsCFPLError unwraps err into the structured error it carries, if any.
func AsCFPLError(err error) (*cfplerrors.Error, bool) {
	e, ok := err.(*cfplerrors.Error)
	return e, ok
}
