package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/cfpl/internal/token"
)

// VarDeclEntry is one (name, optional initializer) pair inside a VAR line.
type VarDeclEntry struct {
	Name    string
	Initial Expression // nil when no initializer was given
}

// VarDecl declares one or more names of the same primitive type.
type VarDecl struct {
	Token   token.Token // the VAR token
	Entries []VarDeclEntry
	Type    token.Type // INT, FLOAT, CHAR, or BOOL
}

func (v *VarDecl) statementNode()       {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Line() int            { return v.Token.Pos.Line }
func (v *VarDecl) String() string {
	var out bytes.Buffer
	out.WriteString("VAR ")
	parts := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		if e.Initial != nil {
			parts[i] = e.Name + "=" + e.Initial.String()
		} else {
			parts[i] = e.Name
		}
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(" AS ")
	out.WriteString(v.Type.String())
	return out.String()
}

// Assign is a single-target assignment: name = expr.
type Assign struct {
	Token token.Token // the IDENT token
	Name  string
	Value Expression
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Line() int            { return a.Token.Pos.Line }
func (a *Assign) String() string       { return a.Name + " = " + a.Value.String() }

// ChainAssign is the two-target form: a = b = expr.
type ChainAssign struct {
	Token token.Token // the first IDENT token
	Names []string    // always length 2
	Value Expression
}

func (c *ChainAssign) statementNode()       {}
func (c *ChainAssign) TokenLiteral() string { return c.Token.Literal }
func (c *ChainAssign) Line() int            { return c.Token.Pos.Line }
func (c *ChainAssign) String() string {
	return strings.Join(c.Names, " = ") + " = " + c.Value.String()
}

// OutputPartKind discriminates the three forms an OUTPUT part can take.
type OutputPartKind int

const (
	OutputString OutputPartKind = iota
	OutputNewline
	OutputExpr
)

// OutputPart is one `&`-joined piece of an OUTPUT statement.
type OutputPart struct {
	Kind OutputPartKind
	Text string     // set when Kind == OutputString (raw, escapes unprocessed)
	Expr Expression // set when Kind == OutputExpr
}

// Output prints its parts concatenated left-to-right as one output entry.
type Output struct {
	Token token.Token // the OUTPUT token
	Parts []OutputPart
}

func (o *Output) statementNode()       {}
func (o *Output) TokenLiteral() string { return o.Token.Literal }
func (o *Output) Line() int            { return o.Token.Pos.Line }
func (o *Output) String() string {
	parts := make([]string, len(o.Parts))
	for i, p := range o.Parts {
		switch p.Kind {
		case OutputString:
			parts[i] = "\"" + p.Text + "\""
		case OutputNewline:
			parts[i] = "#"
		case OutputExpr:
			parts[i] = p.Expr.String()
		}
	}
	return "OUTPUT: " + strings.Join(parts, " & ")
}

// Input reads one value per name, in order, from the input queue.
type Input struct {
	Token token.Token // the INPUT token
	Names []string
}

func (i *Input) statementNode()       {}
func (i *Input) TokenLiteral() string { return i.Token.Literal }
func (i *Input) Line() int            { return i.Token.Pos.Line }
func (i *Input) String() string       { return "INPUT: " + strings.Join(i.Names, ", ") }

// If is a conditional; Else may be nil.
type If struct {
	Token     token.Token // the IF token
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (f *If) statementNode()       {}
func (f *If) TokenLiteral() string { return f.Token.Literal }
func (f *If) Line() int            { return f.Token.Pos.Line }
func (f *If) String() string {
	var out bytes.Buffer
	out.WriteString("IF (")
	out.WriteString(f.Condition.String())
	out.WriteString(")\nSTART\n")
	for _, s := range f.Then {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("STOP")
	if f.Else != nil {
		out.WriteString("\nELSE\nSTART\n")
		for _, s := range f.Else {
			out.WriteString(s.String())
			out.WriteString("\n")
		}
		out.WriteString("STOP")
	}
	return out.String()
}

// While re-evaluates Condition before each iteration of Body.
type While struct {
	Token     token.Token // the WHILE token
	Condition Expression
	Body      []Statement
}

func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) Line() int            { return w.Token.Pos.Line }
func (w *While) String() string {
	var out bytes.Buffer
	out.WriteString("WHILE (")
	out.WriteString(w.Condition.String())
	out.WriteString(")\nSTART\n")
	for _, s := range w.Body {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("STOP")
	return out.String()
}
