package interp

import (
	"testing"

	"github.com/cwbudde/cfpl/internal/lexer"
	"github.com/cwbudde/cfpl/internal/parser"
)

func mustRun(t *testing.T, source string, input []string) (*Evaluator, string) {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	ev := New(input)
	if rerr := ev.Run(prog); rerr != nil {
		t.Fatalf("runtime error: %v", rerr)
	}
	return ev, ev.Output()
}

func TestEvalVarDeclDefaults(t *testing.T) {
	_, out := mustRun(t, `VAR i AS INT
VAR f AS FLOAT
VAR c AS CHAR
VAR b AS BOOL
START
OUTPUT: i & "," & f & "," & c & "," & b
STOP
`, nil)
	want := "0,0,,FALSE"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestEvalArithmeticIntStaysInt(t *testing.T) {
	_, out := mustRun(t, `VAR x AS INT
START
x = 7 / 2
OUTPUT: x
STOP
`, nil)
	if out != "3" {
		t.Errorf("got %q, want %q", out, "3")
	}
}

func TestEvalArithmeticWidensToFloat(t *testing.T) {
	_, out := mustRun(t, `VAR x AS FLOAT
START
x = 7 / 2.0
OUTPUT: x
STOP
`, nil)
	if out != "3.5" {
		t.Errorf("got %q, want %q", out, "3.5")
	}
}

func TestEvalModuloByZeroIsRuntimeError(t *testing.T) {
	tokens, _ := lexer.Tokenize("VAR x AS INT\nSTART\nx = 1 % 0\nSTOP\n")
	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	ev := New(nil)
	if rerr := ev.Run(prog); rerr == nil {
		t.Fatal("expected a runtime error for modulo by zero")
	}
}

func TestEvalDivisionByZeroIsRuntimeError(t *testing.T) {
	tokens, _ := lexer.Tokenize("VAR x AS FLOAT\nSTART\nx = 1.0 / 0.0\nSTOP\n")
	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	ev := New(nil)
	if rerr := ev.Run(prog); rerr == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}

func TestEvalChainAssign(t *testing.T) {
	ev, out := mustRun(t, `VAR a, b AS INT
START
a = b = 5
OUTPUT: a & "," & b
STOP
`, nil)
	if out != "5,5" {
		t.Errorf("got %q, want %q", out, "5,5")
	}
	_ = ev
}

func TestEvalOutputEscapes(t *testing.T) {
	_, out := mustRun(t, `START
OUTPUT: "a[[b]]c" & "[#]" & "d"
STOP
`, nil)
	want := "a[b]c\nd"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestEvalIfElse(t *testing.T) {
	_, out := mustRun(t, `VAR x AS INT
START
x = 5
IF (x > 0)
START
OUTPUT: "positive"
STOP
ELSE
START
OUTPUT: "non-positive"
STOP
STOP
`, nil)
	if out != "positive" {
		t.Errorf("got %q, want %q", out, "positive")
	}
}

func TestEvalWhileLoop(t *testing.T) {
	_, out := mustRun(t, `VAR i AS INT
START
i = 0
WHILE (i < 3)
START
OUTPUT: i
i = i + 1
STOP
STOP
`, nil)
	if out != "0\n1\n2" {
		t.Errorf("got %q, want %q", out, "0\n1\n2")
	}
}

func TestEvalShortCircuitAnd(t *testing.T) {
	_, out := mustRun(t, `VAR x AS INT
START
x = 0
IF (FALSE AND x > 1)
START
OUTPUT: "yes"
STOP
ELSE
START
OUTPUT: "no"
STOP
STOP
`, nil)
	if out != "no" {
		t.Errorf("got %q, want %q", out, "no")
	}
}

func TestEvalInputCoercion(t *testing.T) {
	ev, _ := mustRun(t, `VAR i AS INT
VAR f AS FLOAT
VAR b AS BOOL
VAR c AS CHAR
START
INPUT: i, f, b, c
STOP
`, []string{"42", "3.5", "TRUE", "z"})

	vars := ev.Variables()
	if vars["i"].Value.String() != "42" {
		t.Errorf("i = %s, want 42", vars["i"].Value.String())
	}
	if vars["f"].Value.String() != "3.5" {
		t.Errorf("f = %s, want 3.5", vars["f"].Value.String())
	}
	if vars["b"].Value.String() != "TRUE" {
		t.Errorf("b = %s, want TRUE", vars["b"].Value.String())
	}
	if vars["c"].Value.String() != "z" {
		t.Errorf("c = %s, want z", vars["c"].Value.String())
	}
}

func TestEvalInputExhaustedIsRuntimeError(t *testing.T) {
	tokens, _ := lexer.Tokenize("VAR i AS INT\nSTART\nINPUT: i\nSTOP\n")
	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	ev := New(nil)
	if rerr := ev.Run(prog); rerr == nil {
		t.Fatal("expected a runtime error when INPUT runs out of values")
	}
}

func TestEvalUndefinedVariableIsRuntimeError(t *testing.T) {
	tokens, _ := lexer.Tokenize("START\nx = 1\nSTOP\n")
	prog, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	ev := New(nil)
	if rerr := ev.Run(prog); rerr == nil {
		t.Fatal("expected a runtime error for an undefined variable")
	}
}
