// Package parser implements CFPL's recursive-descent, precedence-climbing
// parser: it consumes a token stream and produces an *ast.Program.
package parser

import (
	"strings"

	"github.com/cwbudde/cfpl/internal/ast"
	"github.com/cwbudde/cfpl/internal/cfplerrors"
	"github.com/cwbudde/cfpl/internal/token"
)

// Operator precedence levels, lowest to highest (spec.md §4.2).
const (
	LOWEST int = iota
	OR_PREC
	AND_PREC
	EQUALITY
	RELATIONAL
	ADDITIVE
	MULTIPLICATIVE
	PREFIX
)

var precedences = map[token.Type]int{
	token.OR:       OR_PREC,
	token.AND:      AND_PREC,
	token.EQ:       EQUALITY,
	token.NEQ:      EQUALITY,
	token.GT:       RELATIONAL,
	token.LT:       RELATIONAL,
	token.GTE:      RELATIONAL,
	token.LTE:      RELATIONAL,
	token.PLUS:     ADDITIVE,
	token.MINUS:    ADDITIVE,
	token.MULTIPLY: MULTIPLICATIVE,
	token.DIVIDE:   MULTIPLICATIVE,
	token.MODULO:   MULTIPLICATIVE,
}

type (
	prefixParseFn func() (ast.Expression, error)
	infixParseFn  func(left ast.Expression) (ast.Expression, error)
)

// Parser consumes a pre-scanned token slice and produces an AST.
type Parser struct {
	tokens []token.Token
	pos    int

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over an already-tokenized input.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENTIFIER: p.parseIdentifier,
		token.INTEGER:    p.parseIntegerLiteral,
		token.FLOAT_NUM:  p.parseFloatLiteral,
		token.STRING:     p.parseStringLiteral,
		token.CHARACTER:  p.parseCharLiteral,
		token.BOOLEAN:    p.parseBooleanLiteral,
		token.LPAREN:     p.parseGroupedExpression,
		token.PLUS:       p.parseUnaryExpression,
		token.MINUS:      p.parseUnaryExpression,
		token.NOT:        p.parseUnaryExpression,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.OR:       p.parseBinaryExpression,
		token.AND:      p.parseBinaryExpression,
		token.EQ:       p.parseBinaryExpression,
		token.NEQ:      p.parseBinaryExpression,
		token.GT:       p.parseBinaryExpression,
		token.LT:       p.parseBinaryExpression,
		token.GTE:      p.parseBinaryExpression,
		token.LTE:      p.parseBinaryExpression,
		token.PLUS:     p.parseBinaryExpression,
		token.MINUS:    p.parseBinaryExpression,
		token.MULTIPLY: p.parseBinaryExpression,
		token.DIVIDE:   p.parseBinaryExpression,
		token.MODULO:   p.parseBinaryExpression,
	}

	return p
}

// Parse tokenizes src is not this package's job — callers pass already
// lexed tokens in. ParseProgram drives the whole grammar in spec.md §4.2.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}

	p.skipNewlines()
	for p.cur().Type == token.VAR {
		decl, err := p.parseVarDecl()
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, decl)
		p.skipNewlines()
	}

	if p.cur().Type != token.START {
		return nil, p.errorf("expected START, got %s", p.cur().Type)
	}
	p.advance()
	p.skipNewlines()

	stmts, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	prog.Statements = stmts

	if p.cur().Type != token.STOP {
		return nil, p.errorf("expected STOP, got %s", p.cur().Type)
	}
	p.advance()

	return prog, nil
}

// parseBlock parses statements until it sees STOP, ELSE, or EOF — the
// three terminators its three callers (program body, IF branches, WHILE
// body) each consume themselves.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for p.cur().Type != token.STOP && p.cur().Type != token.ELSE && p.cur().Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Type {
	case token.IDENTIFIER:
		return p.parseAssignOrChain()
	case token.OUTPUT:
		return p.parseOutput()
	case token.INPUT:
		return p.parseInput()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	default:
		return nil, p.errorf("unexpected token: %s", p.cur().Type)
	}
}

// parseAssignOrChain distinguishes `a = expr` from `a = b = expr` by
// checking whether the first `=` is followed by an identifier and a
// second `=` (spec.md §4.2's ChainAssign rule).
func (p *Parser) parseAssignOrChain() (ast.Statement, error) {
	startTok := p.cur()
	name := startTok.Literal
	p.advance()

	if p.cur().Type != token.ASSIGN {
		return nil, p.errorf("expected '=', got %s", p.cur().Type)
	}
	p.advance()

	if p.cur().Type == token.IDENTIFIER && p.peek().Type == token.ASSIGN {
		second := p.cur().Literal
		p.advance()
		p.advance()
		value, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		return &ast.ChainAssign{Token: startTok, Names: []string{name, second}, Value: value}, nil
	}

	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Token: startTok, Name: name, Value: value}, nil
}

func (p *Parser) parseOutput() (ast.Statement, error) {
	tok := p.cur()
	p.advance()
	if p.cur().Type != token.COLON {
		return nil, p.errorf("expected ':', got %s", p.cur().Type)
	}
	p.advance()

	var parts []ast.OutputPart
	for {
		switch p.cur().Type {
		case token.STRING:
			parts = append(parts, ast.OutputPart{Kind: ast.OutputString, Text: p.cur().Literal})
			p.advance()
		case token.HASH:
			parts = append(parts, ast.OutputPart{Kind: ast.OutputNewline})
			p.advance()
		default:
			expr, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			parts = append(parts, ast.OutputPart{Kind: ast.OutputExpr, Expr: expr})
		}

		if p.cur().Type == token.AMPERSAND {
			p.advance()
			continue
		}
		break
	}

	return &ast.Output{Token: tok, Parts: parts}, nil
}

func (p *Parser) parseInput() (ast.Statement, error) {
	tok := p.cur()
	p.advance()
	if p.cur().Type != token.COLON {
		return nil, p.errorf("expected ':', got %s", p.cur().Type)
	}
	p.advance()

	var names []string
	for {
		if p.cur().Type != token.IDENTIFIER {
			return nil, p.errorf("expected identifier, got %s", p.cur().Type)
		}
		names = append(names, p.cur().Literal)
		p.advance()
		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}

	return &ast.Input{Token: tok, Names: names}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.cur()
	p.advance()

	if p.cur().Type != token.LPAREN {
		return nil, p.errorf("expected '(', got %s", p.cur().Type)
	}
	p.advance()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.RPAREN {
		return nil, p.errorf("expected ')', got %s", p.cur().Type)
	}
	p.advance()
	p.skipNewlines()

	if p.cur().Type != token.START {
		return nil, p.errorf("expected START, got %s", p.cur().Type)
	}
	p.advance()
	p.skipNewlines()

	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.STOP {
		return nil, p.errorf("expected STOP, got %s", p.cur().Type)
	}
	p.advance()

	stmt := &ast.If{Token: tok, Condition: cond, Then: thenBlock}

	save := p.pos
	p.skipNewlines()
	if p.cur().Type == token.ELSE {
		p.advance()
		p.skipNewlines()
		if p.cur().Type != token.START {
			return nil, p.errorf("expected START, got %s", p.cur().Type)
		}
		p.advance()
		p.skipNewlines()

		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if p.cur().Type != token.STOP {
			return nil, p.errorf("expected STOP, got %s", p.cur().Type)
		}
		p.advance()
		stmt.Else = elseBlock
	} else {
		p.pos = save
	}

	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.cur()
	p.advance()

	if p.cur().Type != token.LPAREN {
		return nil, p.errorf("expected '(', got %s", p.cur().Type)
	}
	p.advance()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.RPAREN {
		return nil, p.errorf("expected ')', got %s", p.cur().Type)
	}
	p.advance()
	p.skipNewlines()

	if p.cur().Type != token.START {
		return nil, p.errorf("expected START, got %s", p.cur().Type)
	}
	p.advance()
	p.skipNewlines()

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.STOP {
		return nil, p.errorf("expected STOP, got %s", p.cur().Type)
	}
	p.advance()

	return &ast.While{Token: tok, Condition: cond, Body: body}, nil
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	tok := p.cur()
	p.advance()

	var entries []ast.VarDeclEntry
	for {
		if p.cur().Type != token.IDENTIFIER {
			return nil, p.errorf("expected identifier, got %s", p.cur().Type)
		}
		name := p.cur().Literal
		p.advance()

		var initial ast.Expression
		if p.cur().Type == token.ASSIGN {
			p.advance()
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			initial = lit
		}
		entries = append(entries, ast.VarDeclEntry{Name: name, Initial: initial})

		if p.cur().Type == token.COMMA {
			p.advance()
			continue
		}
		break
	}

	if p.cur().Type != token.AS {
		return nil, p.errorf("expected AS, got %s", p.cur().Type)
	}
	p.advance()

	typeTok := p.cur()
	switch typeTok.Type {
	case token.INT, token.CHAR, token.BOOL, token.FLOAT:
		p.advance()
	default:
		return nil, p.errorf("invalid type: %s", typeTok.Type)
	}

	decl := &ast.VarDecl{Token: tok, Entries: entries, Type: typeTok.Type}
	if err := checkInitializerTypes(decl); err != nil {
		return nil, err
	}
	return decl, nil
}

// checkInitializerTypes enforces the strict declaration-time type check
// SPEC_FULL.md §6 resolves §9's open question with: an initializer literal
// must match the declared type tag, with int literals accepted for FLOAT
// declarations (consistent with the language's own int/float mixing).
func checkInitializerTypes(decl *ast.VarDecl) error {
	for _, e := range decl.Entries {
		if e.Initial == nil {
			continue
		}
		line := e.Initial.Line()
		switch decl.Type {
		case token.INT:
			if _, ok := e.Initial.(*ast.IntegerLiteral); !ok {
				return cfplerrors.NewParseError(line,
					"initializer for %s declared AS INT must be an integer literal", e.Name)
			}
		case token.FLOAT:
			switch e.Initial.(type) {
			case *ast.IntegerLiteral, *ast.FloatLiteral:
			default:
				return cfplerrors.NewParseError(line,
					"initializer for %s declared AS FLOAT must be numeric", e.Name)
			}
		case token.CHAR:
			if _, ok := e.Initial.(*ast.CharLiteral); !ok {
				return cfplerrors.NewParseError(line,
					"initializer for %s declared AS CHAR must be a character literal", e.Name)
			}
		case token.BOOL:
			if _, ok := e.Initial.(*ast.BooleanLiteral); !ok {
				return cfplerrors.NewParseError(line,
					"initializer for %s declared AS BOOL must be a boolean literal", e.Name)
			}
		}
	}
	return nil
}

// parseLiteral parses exactly one literal token (VAR initializers only
// ever hold a bare literal, never a full expression).
func (p *Parser) parseLiteral() (ast.Expression, error) {
	switch p.cur().Type {
	case token.INTEGER:
		return p.parseIntegerLiteral()
	case token.FLOAT_NUM:
		return p.parseFloatLiteral()
	case token.STRING:
		return p.parseStringLiteral()
	case token.CHARACTER:
		return p.parseCharLiteral()
	case token.BOOLEAN:
		return p.parseBooleanLiteral()
	default:
		return nil, p.errorf("expected literal, got %s", p.cur().Type)
	}
}

// --- expression parsing: Pratt prefix/infix tables + precedence climb ---

func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	prefix, ok := p.prefixParseFns[p.cur().Type]
	if !ok {
		return nil, p.errorf("unexpected token in expression: %s", p.cur().Type)
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for precedence < p.curPrecedence() {
		infix, ok := p.infixParseFns[p.cur().Type]
		if !ok {
			return left, nil
		}
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur().Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) parseIdentifier() (ast.Expression, error) {
	tok := p.cur()
	p.advance()
	return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
}

func (p *Parser) parseIntegerLiteral() (ast.Expression, error) {
	tok := p.cur()
	p.advance()
	return &ast.IntegerLiteral{Token: tok, Value: tok.Value.(int64)}, nil
}

func (p *Parser) parseFloatLiteral() (ast.Expression, error) {
	tok := p.cur()
	p.advance()
	return &ast.FloatLiteral{Token: tok, Value: tok.Value.(float64)}, nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	tok := p.cur()
	p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Value.(string)}, nil
}

func (p *Parser) parseCharLiteral() (ast.Expression, error) {
	tok := p.cur()
	p.advance()
	return &ast.CharLiteral{Token: tok, Value: tok.Value.(rune)}, nil
}

func (p *Parser) parseBooleanLiteral() (ast.Expression, error) {
	tok := p.cur()
	p.advance()
	return &ast.BooleanLiteral{Token: tok, Value: tok.Value.(bool)}, nil
}

func (p *Parser) parseGroupedExpression() (ast.Expression, error) {
	tok := p.cur()
	p.advance()
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.RPAREN {
		return nil, p.errorf("expected ')', got %s", p.cur().Type)
	}
	p.advance()
	return &ast.GroupedExpression{Token: tok, Expression: expr}, nil
}

// parseUnaryExpression handles +, -, and not; all three are
// right-associative (they recurse into parseUnaryExpression's own
// precedence level rather than the level above it).
func (p *Parser) parseUnaryExpression() (ast.Expression, error) {
	tok := p.cur()
	p.advance()
	right, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{Token: tok, Operator: operatorLiteral(tok), Right: right}, nil
}

func (p *Parser) parseBinaryExpression(left ast.Expression) (ast.Expression, error) {
	tok := p.cur()
	precedence := precedences[tok.Type]
	p.advance()
	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: operatorLiteral(tok), Right: right}, nil
}

func operatorLiteral(tok token.Token) string {
	return strings.ToLower(tok.Literal)
}

// --- token stream helpers ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// skipNewlines treats NEWLINE and COMMENT as insignificant between
// statements; they are structural separators, not part of the grammar
// (spec.md §4.2).
func (p *Parser) skipNewlines() {
	for p.cur().Type == token.NEWLINE || p.cur().Type == token.COMMENT {
		p.advance()
	}
}

func (p *Parser) errorf(format string, args ...any) error {
	return cfplerrors.NewParseError(p.cur().Pos.Line, format, args...)
}
