package interp

import (
	"strconv"
	"strings"

	"github.com/cwbudde/cfpl/internal/ast"
	"github.com/cwbudde/cfpl/internal/cfplerrors"
	"github.com/cwbudde/cfpl/internal/token"
)

// Evaluator walks an *ast.Program, threading a single flat Environment,
// an output buffer, and a queue of pre-supplied INPUT values.
type Evaluator struct {
	env      *Environment
	output   []string
	input    []string
	inputPos int
}

// New creates an Evaluator over a fresh Environment. input is the ordered
// list of values consumed by INPUT statements, one per requested name.
func New(input []string) *Evaluator {
	return &Evaluator{env: NewEnvironment(), input: input}
}

// Output returns everything written by OUTPUT statements so far. Each
// OUTPUT statement contributes one entry to the log, and the entries are
// joined with a newline to form the final program output.
func (e *Evaluator) Output() string {
	return strings.Join(e.output, "\n")
}

// Variables snapshots the current environment for host introspection
// (pkg/cfpl's GetVariables facade).
func (e *Evaluator) Variables() map[string]*Binding {
	snapshot := make(map[string]*Binding, len(e.env.vars))
	for name, b := range e.env.vars {
		snapshot[name] = &Binding{Type: b.Type, Value: b.Value}
	}
	return snapshot
}

// Names returns declared variable names in declaration order.
func (e *Evaluator) Names() []string {
	return e.env.Names()
}

// Run evaluates an entire program, returning the first runtime error
// encountered, if any.
func (e *Evaluator) Run(prog *ast.Program) *cfplerrors.Error {
	for _, decl := range prog.Decls {
		if v := e.evalVarDecl(decl); isError(v) {
			return v.(*ErrorValue).Err
		}
	}
	for _, stmt := range prog.Statements {
		if v := e.evalStatement(stmt); isError(v) {
			return v.(*ErrorValue).Err
		}
	}
	return nil
}

func (e *Evaluator) evalStatement(stmt ast.Statement) Value {
	switch s := stmt.(type) {
	case *ast.Assign:
		return e.evalAssign(s)
	case *ast.ChainAssign:
		return e.evalChainAssign(s)
	case *ast.Output:
		return e.evalOutput(s)
	case *ast.Input:
		return e.evalInput(s)
	case *ast.If:
		return e.evalIf(s)
	case *ast.While:
		return e.evalWhile(s)
	default:
		return newError(stmt.Line(), "unsupported statement: %T", stmt)
	}
}

func (e *Evaluator) evalVarDecl(decl *ast.VarDecl) Value {
	for _, entry := range decl.Entries {
		value := zeroValue(decl.Type)
		if entry.Initial != nil {
			v := e.Eval(entry.Initial)
			if isError(v) {
				return v
			}
			coerced, ok := coerceToType(v, decl.Type)
			if !ok {
				return newError(decl.Line(), "type mismatch for %s: declared %s, got %s",
					entry.Name, decl.Type, v.Type())
			}
			value = coerced
		}
		e.env.Declare(entry.Name, decl.Type, value)
	}
	return nil
}

// zeroValue is the default a declared-but-uninitialized variable holds
// (spec.md §3: 0, 0.0, the empty char, and FALSE respectively).
func zeroValue(typ token.Type) Value {
	switch typ {
	case token.INT:
		return &IntValue{}
	case token.FLOAT:
		return &FloatValue{}
	case token.CHAR:
		return &CharValue{Val: emptyChar}
	case token.BOOL:
		return &BoolValue{}
	default:
		return &IntValue{}
	}
}

// coerceToType checks v against typ, applying the one widening CFPL
// allows: an INT value assigned into a FLOAT-declared variable.
func coerceToType(v Value, typ token.Type) (Value, bool) {
	switch typ {
	case token.INT:
		iv, ok := v.(*IntValue)
		return iv, ok
	case token.FLOAT:
		switch n := v.(type) {
		case *FloatValue:
			return n, true
		case *IntValue:
			return &FloatValue{Val: float64(n.Val)}, true
		}
		return nil, false
	case token.CHAR:
		cv, ok := v.(*CharValue)
		return cv, ok
	case token.BOOL:
		bv, ok := v.(*BoolValue)
		return bv, ok
	default:
		return nil, false
	}
}

func (e *Evaluator) evalAssign(s *ast.Assign) Value {
	binding, ok := e.env.Get(s.Name)
	if !ok {
		return wrapError(cfplerrors.NewUndefinedVariableError(s.Line(), s.Name))
	}
	v := e.Eval(s.Value)
	if isError(v) {
		return v
	}
	coerced, ok := coerceToType(v, binding.Type)
	if !ok {
		return wrapError(cfplerrors.NewTypeMismatchError(s.Line(), s.Name, binding.Type.String(), v.Type()))
	}
	e.env.Set(s.Name, coerced)
	return nil
}

// evalChainAssign requires both targets to already be declared before
// storing into either — a partial assignment on a later type-mismatch
// would otherwise leave the first target mutated (spec.md §9 resolution).
func (e *Evaluator) evalChainAssign(s *ast.ChainAssign) Value {
	bindings := make([]*Binding, len(s.Names))
	for i, name := range s.Names {
		b, ok := e.env.Get(name)
		if !ok {
			return wrapError(cfplerrors.NewUndefinedVariableError(s.Line(), name))
		}
		bindings[i] = b
	}

	v := e.Eval(s.Value)
	if isError(v) {
		return v
	}

	coercedValues := make([]Value, len(bindings))
	for i, b := range bindings {
		c, ok := coerceToType(v, b.Type)
		if !ok {
			return wrapError(cfplerrors.NewTypeMismatchError(s.Line(), s.Names[i], b.Type.String(), v.Type()))
		}
		coercedValues[i] = c
	}
	for i, name := range s.Names {
		e.env.Set(name, coercedValues[i])
	}
	return nil
}

// evalOutput processes escape sequences in string parts at evaluation
// time ([#] -> newline, [[ -> [, ]] -> ]) and concatenates every part into
// one output entry (spec.md §4.3).
func (e *Evaluator) evalOutput(s *ast.Output) Value {
	var sb strings.Builder
	for _, part := range s.Parts {
		switch part.Kind {
		case ast.OutputString:
			sb.WriteString(processEscapes(part.Text))
		case ast.OutputNewline:
			sb.WriteString("\n")
		case ast.OutputExpr:
			v := e.Eval(part.Expr)
			if isError(v) {
				return v
			}
			sb.WriteString(v.String())
		}
	}
	e.output = append(e.output, sb.String())
	return nil
}

// processEscapes rewrites CFPL's bracket escapes within a raw string
// literal's text: "[#]" becomes a newline, "[[" becomes "[", "]]" becomes
// "]".
func processEscapes(s string) string {
	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch {
		case i+2 < len(runes) && runes[i] == '[' && runes[i+1] == '#' && runes[i+2] == ']':
			sb.WriteRune('\n')
			i += 2
		case i+1 < len(runes) && runes[i] == '[' && runes[i+1] == '[':
			sb.WriteRune('[')
			i++
		case i+1 < len(runes) && runes[i] == ']' && runes[i+1] == ']':
			sb.WriteRune(']')
			i++
		default:
			sb.WriteRune(runes[i])
		}
	}
	return sb.String()
}

// evalInput consumes one value per requested name from the input queue,
// inferring each raw string's type independently of the target's declared
// type (inferInputValue's float -> int -> bool -> char -> string cascade)
// and then rejecting it if that inferred type can't be reconciled with the
// declared one.
func (e *Evaluator) evalInput(s *ast.Input) Value {
	for _, name := range s.Names {
		binding, ok := e.env.Get(name)
		if !ok {
			return wrapError(cfplerrors.NewUndefinedVariableError(s.Line(), name))
		}
		if e.inputPos >= len(e.input) {
			return wrapError(cfplerrors.NewInvalidInputError(s.Line(), name))
		}
		raw := e.input[e.inputPos]
		e.inputPos++

		v, ok := coerceInput(raw, binding.Type)
		if !ok {
			return wrapError(cfplerrors.NewTypeMismatchError(s.Line(), name, binding.Type.String(), "INPUT:"+raw))
		}
		e.env.Set(name, v)
	}
	return nil
}

// inferInputValue classifies a raw INPUT token the same way regardless of
// the target's declared type: float (contains a dot) -> int -> bool
// (TRUE/FALSE, case-insensitive) -> char (single rune) -> raw string.
func inferInputValue(raw string) Value {
	if strings.Contains(raw, ".") {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return &FloatValue{Val: f}
		}
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return &IntValue{Val: n}
	}
	switch strings.ToUpper(raw) {
	case "TRUE":
		return &BoolValue{Val: true}
	case "FALSE":
		return &BoolValue{Val: false}
	}
	runes := []rune(raw)
	if len(runes) == 1 {
		return &CharValue{Val: runes[0]}
	}
	return &StrValue{Val: raw}
}

// coerceInput infers raw's type per inferInputValue and then checks it
// against the target's declared type, widening a bare integer literal into
// a FLOAT target the same way VAR initializers do. Any other mismatch is
// rejected.
func coerceInput(raw string, typ token.Type) (Value, bool) {
	v := inferInputValue(raw)
	switch typ {
	case token.INT:
		if n, ok := v.(*IntValue); ok {
			return n, true
		}
		return nil, false
	case token.FLOAT:
		switch n := v.(type) {
		case *FloatValue:
			return n, true
		case *IntValue:
			return &FloatValue{Val: float64(n.Val)}, true
		}
		return nil, false
	case token.BOOL:
		if b, ok := v.(*BoolValue); ok {
			return b, true
		}
		return nil, false
	case token.CHAR:
		if c, ok := v.(*CharValue); ok {
			return c, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func (e *Evaluator) evalIf(s *ast.If) Value {
	cond := e.Eval(s.Condition)
	if isError(cond) {
		return cond
	}
	ok, errv := truthy(cond, s.Line())
	if errv != nil {
		return errv
	}
	var body []ast.Statement
	if ok {
		body = s.Then
	} else {
		body = s.Else
	}
	for _, stmt := range body {
		if v := e.evalStatement(stmt); isError(v) {
			return v
		}
	}
	return nil
}

func (e *Evaluator) evalWhile(s *ast.While) Value {
	for {
		cond := e.Eval(s.Condition)
		if isError(cond) {
			return cond
		}
		ok, errv := truthy(cond, s.Line())
		if errv != nil {
			return errv
		}
		if !ok {
			break
		}
		for _, stmt := range s.Body {
			if v := e.evalStatement(stmt); isError(v) {
				return v
			}
		}
	}
	return nil
}

// Eval evaluates a single expression node to a Value.
func (e *Evaluator) Eval(node ast.Node) Value {
	switch n := node.(type) {
	case *ast.Identifier:
		b, ok := e.env.Get(n.Value)
		if !ok {
			return wrapError(cfplerrors.NewUndefinedVariableError(n.Line(), n.Value))
		}
		return b.Value
	case *ast.IntegerLiteral:
		return &IntValue{Val: n.Value}
	case *ast.FloatLiteral:
		return &FloatValue{Val: n.Value}
	case *ast.StringLiteral:
		return &StrValue{Val: processEscapes(n.Value)}
	case *ast.CharLiteral:
		return &CharValue{Val: n.Value}
	case *ast.BooleanLiteral:
		return &BoolValue{Val: n.Value}
	case *ast.GroupedExpression:
		return e.Eval(n.Expression)
	case *ast.UnaryExpression:
		return e.evalUnary(n)
	case *ast.BinaryExpression:
		return e.evalBinary(n)
	default:
		return newError(node.Line(), "unsupported expression: %T", node)
	}
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpression) Value {
	right := e.Eval(n.Right)
	if isError(right) {
		return right
	}
	switch n.Operator {
	case "-":
		switch r := right.(type) {
		case *IntValue:
			return &IntValue{Val: -r.Val}
		case *FloatValue:
			return &FloatValue{Val: -r.Val}
		}
		return newError(n.Line(), "invalid operand for unary -: %s", right.Type())
	case "+":
		switch right.(type) {
		case *IntValue, *FloatValue:
			return right
		}
		return newError(n.Line(), "invalid operand for unary +: %s", right.Type())
	case "not":
		b, errv := truthy(right, n.Line())
		if errv != nil {
			return errv
		}
		return &BoolValue{Val: !b}
	default:
		return newError(n.Line(), "unsupported unary operator: %s", n.Operator)
	}
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpression) Value {
	// AND/OR short-circuit, so the right side is only evaluated when needed.
	if n.Operator == "and" || n.Operator == "or" {
		return e.evalLogical(n)
	}

	left := e.Eval(n.Left)
	if isError(left) {
		return left
	}
	right := e.Eval(n.Right)
	if isError(right) {
		return right
	}

	switch n.Operator {
	case "+", "-", "*", "/", "%":
		return evalArithmetic(n.Line(), n.Operator, left, right)
	case "==", "<>", ">", "<", ">=", "<=":
		return evalComparison(n.Line(), n.Operator, left, right)
	default:
		return newError(n.Line(), "unsupported binary operator: %s", n.Operator)
	}
}

func (e *Evaluator) evalLogical(n *ast.BinaryExpression) Value {
	left := e.Eval(n.Left)
	if isError(left) {
		return left
	}
	lb, errv := truthy(left, n.Line())
	if errv != nil {
		return errv
	}

	if n.Operator == "and" && !lb {
		return &BoolValue{Val: false}
	}
	if n.Operator == "or" && lb {
		return &BoolValue{Val: true}
	}

	right := e.Eval(n.Right)
	if isError(right) {
		return right
	}
	rb, errv := truthy(right, n.Line())
	if errv != nil {
		return errv
	}
	return &BoolValue{Val: rb}
}

// numeric reads an Int or Float value out as a float64 plus whether the
// original was an int, for arithmetic widening decisions.
func numeric(v Value) (f float64, isInt bool, ok bool) {
	switch n := v.(type) {
	case *IntValue:
		return float64(n.Val), true, true
	case *FloatValue:
		return n.Val, false, true
	default:
		return 0, false, false
	}
}

// evalArithmetic implements spec.md's numeric tower: INT op INT stays INT
// (with integer division/modulo) except when either operand is FLOAT, in
// which case +, -, * and / widen to FLOAT; % accepts INT operands only and
// is a runtime error when either operand is FLOAT.
func evalArithmetic(line int, op string, left, right Value) Value {
	lf, lInt, lok := numeric(left)
	rf, rInt, rok := numeric(right)
	if !lok || !rok {
		return newError(line, "arithmetic operator %s requires numeric operands, got %s and %s",
			op, left.Type(), right.Type())
	}

	bothInt := lInt && rInt
	if bothInt {
		li := left.(*IntValue).Val
		ri := right.(*IntValue).Val
		switch op {
		case "+":
			return &IntValue{Val: li + ri}
		case "-":
			return &IntValue{Val: li - ri}
		case "*":
			return &IntValue{Val: li * ri}
		case "/":
			if ri == 0 {
				return wrapError(cfplerrors.NewDivisionByZeroError(line))
			}
			return &IntValue{Val: li / ri}
		case "%":
			if ri == 0 {
				return wrapError(cfplerrors.NewDivisionByZeroError(line))
			}
			return &IntValue{Val: li % ri}
		}
	}

	if op == "%" {
		return newError(line, "%% requires INT operands, got %s and %s", left.Type(), right.Type())
	}

	switch op {
	case "+":
		return &FloatValue{Val: lf + rf}
	case "-":
		return &FloatValue{Val: lf - rf}
	case "*":
		return &FloatValue{Val: lf * rf}
	case "/":
		if rf == 0 {
			return wrapError(cfplerrors.NewDivisionByZeroError(line))
		}
		return &FloatValue{Val: lf / rf}
	}
	return newError(line, "unsupported arithmetic operator: %s", op)
}

func evalComparison(line int, op string, left, right Value) Value {
	if lf, _, lok := numeric(left); lok {
		if rf, _, rok := numeric(right); rok {
			return numericCompare(op, lf, rf)
		}
	}

	if lc, ok := left.(*CharValue); ok {
		if rc, ok := right.(*CharValue); ok {
			return numericCompare(op, float64(lc.Val), float64(rc.Val))
		}
	}

	if lb, ok := left.(*BoolValue); ok {
		if rb, ok := right.(*BoolValue); ok {
			switch op {
			case "==":
				return &BoolValue{Val: lb.Val == rb.Val}
			case "<>":
				return &BoolValue{Val: lb.Val != rb.Val}
			}
			return newError(line, "operator %s not defined for BOOL", op)
		}
	}

	return newError(line, "cannot compare %s and %s", left.Type(), right.Type())
}

func numericCompare(op string, l, r float64) Value {
	switch op {
	case "==":
		return &BoolValue{Val: l == r}
	case "<>":
		return &BoolValue{Val: l != r}
	case ">":
		return &BoolValue{Val: l > r}
	case "<":
		return &BoolValue{Val: l < r}
	case ">=":
		return &BoolValue{Val: l >= r}
	case "<=":
		return &BoolValue{Val: l <= r}
	}
	return &BoolValue{Val: false}
}
