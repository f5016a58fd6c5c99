package lexer

import (
	"testing"

	"github.com/cwbudde/cfpl/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := "VAR x, y=5 AS INT\nSTART\nOUTPUT: x\nSTOP\n"

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.VAR, "VAR"},
		{token.IDENTIFIER, "x"},
		{token.COMMA, ","},
		{token.IDENTIFIER, "y"},
		{token.ASSIGN, "="},
		{token.INTEGER, "5"},
		{token.AS, "AS"},
		{token.INT, "INT"},
		{token.NEWLINE, "\n"},
		{token.START, "START"},
		{token.NEWLINE, "\n"},
		{token.OUTPUT, "OUTPUT"},
		{token.COLON, ":"},
		{token.IDENTIFIER, "x"},
		{token.NEWLINE, "\n"},
		{token.STOP, "STOP"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != len(tests) {
		t.Fatalf("expected %d tokens, got %d: %v", len(tests), len(tokens), tokens)
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	input := "var VAR Var start START if IF else WHILE and OR not"

	tests := []token.Type{
		token.VAR, token.VAR, token.VAR,
		token.START, token.START,
		token.IF, token.IF,
		token.ELSE,
		token.WHILE,
		token.AND, token.OR, token.NOT,
		token.EOF,
	}

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, expected := range tests {
		if tokens[i].Type != expected {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, expected, tokens[i].Type)
		}
	}
}

func TestStarIsCommentOnlyAtLineStart(t *testing.T) {
	input := "x = 3 * 4\n* a comment line\ny = 1\n"

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "3 * 4" uses MULTIPLY since '*' is not the first char on its line.
	foundMultiply := false
	foundComment := false
	for _, tok := range tokens {
		if tok.Type == token.MULTIPLY {
			foundMultiply = true
		}
		if tok.Type == token.COMMENT {
			foundComment = true
			if tok.Literal != "* a comment line" {
				t.Fatalf("unexpected comment text: %q", tok.Literal)
			}
		}
	}
	if !foundMultiply {
		t.Fatalf("expected a MULTIPLY token, got none: %v", tokens)
	}
	if !foundComment {
		t.Fatalf("expected a COMMENT token, got none: %v", tokens)
	}
}

func TestNewlineTaggedWithEndedLine(t *testing.T) {
	input := "x = 1\ny = 2\n"
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var newlineLines []int
	for _, tok := range tokens {
		if tok.Type == token.NEWLINE {
			newlineLines = append(newlineLines, tok.Pos.Line)
		}
	}
	if len(newlineLines) != 2 || newlineLines[0] != 1 || newlineLines[1] != 2 {
		t.Fatalf("expected newline lines [1 2], got %v", newlineLines)
	}
}

func TestNumberLiterals(t *testing.T) {
	tokens, err := Tokenize("42 3.14 0 0.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tokens[0].Type != token.INTEGER || tokens[0].Value.(int64) != 42 {
		t.Fatalf("unexpected token 0: %+v", tokens[0])
	}
	if tokens[1].Type != token.FLOAT_NUM || tokens[1].Value.(float64) != 3.14 {
		t.Fatalf("unexpected token 1: %+v", tokens[1])
	}
	if tokens[2].Type != token.INTEGER || tokens[2].Value.(int64) != 0 {
		t.Fatalf("unexpected token 2: %+v", tokens[2])
	}
	if tokens[3].Type != token.FLOAT_NUM || tokens[3].Value.(float64) != 0.5 {
		t.Fatalf("unexpected token 3: %+v", tokens[3])
	}
}

func TestStringLiteral(t *testing.T) {
	tokens, err := Tokenize(`"hello world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Type != token.STRING || tokens[0].Value.(string) != "hello world" {
		t.Fatalf("unexpected token: %+v", tokens[0])
	}
}

func TestUnterminatedStringIsLexicalError(t *testing.T) {
	_, err := Tokenize(`"hello`)
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestCharLiteral(t *testing.T) {
	tokens, err := Tokenize("'a'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Type != token.CHARACTER || tokens[0].Value.(rune) != 'a' {
		t.Fatalf("unexpected token: %+v", tokens[0])
	}
}

func TestEmptyCharLiteralIsLexicalError(t *testing.T) {
	_, err := Tokenize("''")
	if err == nil {
		t.Fatal("expected an error for an empty character literal")
	}
}

func TestOverlongCharLiteralIsLexicalError(t *testing.T) {
	_, err := Tokenize("'ab'")
	if err == nil {
		t.Fatal("expected an error for an overlong character literal")
	}
}

func TestBooleanLiterals(t *testing.T) {
	tokens, err := Tokenize("TRUE false True")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []bool{true, false, true} {
		if tokens[i].Type != token.BOOLEAN || tokens[i].Value.(bool) != want {
			t.Fatalf("unexpected token %d: %+v", i, tokens[i])
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	tokens, err := Tokenize(">= <= <> ==")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{token.GTE, token.LTE, token.NEQ, token.EQ, token.EOF}
	for i, w := range want {
		if tokens[i].Type != w {
			t.Fatalf("tests[%d] - expected=%s, got=%s", i, w, tokens[i].Type)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	_, err := Tokenize("x = @")
	if err == nil {
		t.Fatal("expected an error for an illegal character")
	}
}
