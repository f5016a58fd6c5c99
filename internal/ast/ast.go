// Package ast defines CFPL's abstract syntax tree node types.
package ast

import (
	"bytes"

	"github.com/cwbudde/cfpl/internal/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Line() int
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: zero or more VarDecls followed by the
// statements of the START…STOP body.
type Program struct {
	Decls      []*VarDecl
	Statements []Statement
}

func (p *Program) TokenLiteral() string { return "program" }
func (p *Program) Line() int            { return 1 }
func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.Decls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	out.WriteString("START\n")
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("STOP\n")
	return out.String()
}

// Identifier is a variable reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Line() int            { return i.Token.Pos.Line }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral is an INT-kinded literal: 123.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntegerLiteral) expressionNode()      {}
func (l *IntegerLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *IntegerLiteral) Line() int            { return l.Token.Pos.Line }
func (l *IntegerLiteral) String() string       { return l.Token.Literal }

// FloatLiteral is a FLOAT-kinded literal: 1.5, 1.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLiteral) Line() int            { return l.Token.Pos.Line }
func (l *FloatLiteral) String() string       { return l.Token.Literal }

// StringLiteral is a quoted string: "...". Only appears as an
// intermediate expression value (e.g. in OUTPUT) — variables never hold
// Str (spec.md §3).
type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) Line() int            { return l.Token.Pos.Line }
func (l *StringLiteral) String() string       { return "\"" + l.Value + "\"" }

// CharLiteral is a single-rune literal: 'x'.
type CharLiteral struct {
	Token token.Token
	Value rune
}

func (l *CharLiteral) expressionNode()      {}
func (l *CharLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *CharLiteral) Line() int            { return l.Token.Pos.Line }
func (l *CharLiteral) String() string       { return "'" + string(l.Value) + "'" }

// BooleanLiteral is TRUE or FALSE.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (l *BooleanLiteral) expressionNode()      {}
func (l *BooleanLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BooleanLiteral) Line() int            { return l.Token.Pos.Line }
func (l *BooleanLiteral) String() string       { return l.Token.Literal }

// BinaryExpression is a left-associative two-operand operator application.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Line() int            { return b.Token.Pos.Line }
func (b *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpression is a right-associative one-operand prefix operator
// application: +x, -x, not x.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Line() int            { return u.Token.Pos.Line }
func (u *UnaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(u.Operator)
	if u.Operator == "not" {
		out.WriteString(" ")
	}
	out.WriteString(u.Right.String())
	out.WriteString(")")
	return out.String()
}

// GroupedExpression is a parenthesized expression, kept as its own node
// so String() can round-trip the source parens.
type GroupedExpression struct {
	Token      token.Token // the '(' token
	Expression Expression
}

func (g *GroupedExpression) expressionNode()      {}
func (g *GroupedExpression) TokenLiteral() string { return g.Token.Literal }
func (g *GroupedExpression) Line() int            { return g.Token.Pos.Line }
func (g *GroupedExpression) String() string       { return "(" + g.Expression.String() + ")" }
