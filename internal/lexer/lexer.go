// Package lexer turns CFPL source text into a token stream.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/cfpl/internal/cfplerrors"
	"github.com/cwbudde/cfpl/internal/token"
)

// Lexer is a rune-based hand-written scanner over CFPL source text.
type Lexer struct {
	input        string
	position     int // byte offset of ch
	readPosition int // byte offset of the next rune to read
	line         int
	column       int
	ch           rune

	// atLineStart tracks whether only spaces/tabs have been seen since the
	// last newline; a `*` seen while this is true begins a comment, else
	// it's the multiply operator (spec.md §4.1 point 2).
	atLineStart bool
}

// New creates a Lexer positioned at the start of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, atLineStart: true}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

// Tokenize scans the entire input into a token stream, stopping at the
// first lexical error (spec.md §7: the first error aborts further
// processing). The returned slice always ends with an EOF token on
// success.
func Tokenize(input string) ([]token.Token, error) {
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) nextToken() (token.Token, error) {
	l.skipSpacesAndTabs()

	switch {
	case l.ch == 0:
		return token.New(token.EOF, "", l.pos()), nil
	case l.ch == '\n':
		return l.readNewline(), nil
	case l.ch == '*' && l.atLineStart:
		return l.readComment(), nil
	case l.ch == '"':
		return l.readString()
	case l.ch == '\'':
		return l.readCharLiteral()
	case isDigit(l.ch):
		return l.readNumber(), nil
	case isIdentStart(l.ch):
		return l.readIdentifier(), nil
	}

	l.atLineStart = false

	if tok, ok := l.readTwoCharOperator(); ok {
		return tok, nil
	}
	if tok, ok := l.readSingleCharPunctuator(); ok {
		return tok, nil
	}

	pos := l.pos()
	ch := l.ch
	l.readChar()
	return token.Token{}, cfplerrors.NewLexicalError(pos.Line, "unexpected character: %q", ch)
}

func (l *Lexer) skipSpacesAndTabs() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// readNewline emits a NEWLINE token tagged with the line that just ended,
// matching the source convention spec.md §9 says to preserve.
func (l *Lexer) readNewline() token.Token {
	pos := token.Position{Line: l.line, Column: l.column}
	l.line++
	l.column = 0
	l.atLineStart = true
	l.readChar()
	return token.New(token.NEWLINE, "\n", pos)
}

// readComment consumes a `*` (only reachable while atLineStart) through
// end of line, not including the terminating newline.
func (l *Lexer) readComment() token.Token {
	pos := l.pos()
	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	text := l.input[start:l.position]
	return token.New(token.COMMENT, text, pos)
}

func (l *Lexer) readString() (token.Token, error) {
	pos := l.pos()
	startLine := l.line
	l.readChar() // skip opening quote
	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == '\n' || l.ch == 0 {
			return token.Token{}, cfplerrors.NewLexicalError(startLine, "unterminated string literal")
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing quote
	l.atLineStart = false
	value := sb.String()
	return token.NewWithValue(token.STRING, value, value, pos), nil
}

func (l *Lexer) readCharLiteral() (token.Token, error) {
	pos := l.pos()
	startLine := l.line
	l.readChar() // skip opening quote
	var sb strings.Builder
	for l.ch != '\'' {
		if l.ch == '\n' || l.ch == 0 {
			return token.Token{}, cfplerrors.NewLexicalError(startLine, "unterminated character literal")
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing quote
	l.atLineStart = false

	runes := []rune(sb.String())
	if len(runes) != 1 {
		return token.Token{}, cfplerrors.NewLexicalError(startLine,
			"character literal must be exactly one character, got: %q", sb.String())
	}
	return token.NewWithValue(token.CHARACTER, sb.String(), runes[0], pos), nil
}

func (l *Lexer) readNumber() token.Token {
	pos := l.pos()
	start := l.position
	hasDot := false
	for isDigit(l.ch) || (l.ch == '.' && !hasDot) {
		if l.ch == '.' {
			hasDot = true
		}
		l.readChar()
	}
	l.atLineStart = false
	text := l.input[start:l.position]

	if hasDot {
		f, _ := strconv.ParseFloat(text, 64)
		return token.NewWithValue(token.FLOAT_NUM, text, f, pos)
	}
	n, _ := strconv.ParseInt(text, 10, 64)
	return token.NewWithValue(token.INTEGER, text, n, pos)
}

func (l *Lexer) readIdentifier() token.Token {
	pos := l.pos()
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	l.atLineStart = false
	name := l.input[start:l.position]

	typ := token.LookupIdent(strings.ToUpper(name))
	if typ == token.BOOLEAN {
		value := strings.EqualFold(name, "TRUE")
		return token.NewWithValue(token.BOOLEAN, name, value, pos)
	}
	if typ == token.IDENTIFIER {
		return token.NewWithValue(token.IDENTIFIER, name, name, pos)
	}
	return token.New(typ, name, pos)
}

func (l *Lexer) readTwoCharOperator() (token.Token, bool) {
	pos := l.pos()
	switch l.ch {
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.New(token.GTE, ">=", pos), true
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.New(token.LTE, "<=", pos), true
		}
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.New(token.NEQ, "<>", pos), true
		}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.New(token.EQ, "==", pos), true
		}
	}
	return token.Token{}, false
}

var singleCharPunctuators = map[rune]token.Type{
	'=': token.ASSIGN,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.MULTIPLY,
	'/': token.DIVIDE,
	'%': token.MODULO,
	'>': token.GT,
	'<': token.LT,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LSQUARE,
	']': token.RSQUARE,
	',': token.COMMA,
	'&': token.AMPERSAND,
	':': token.COLON,
	'#': token.HASH,
}

func (l *Lexer) readSingleCharPunctuator() (token.Token, bool) {
	typ, ok := singleCharPunctuators[l.ch]
	if !ok {
		return token.Token{}, false
	}
	pos := l.pos()
	ch := l.ch
	l.readChar()
	return token.New(typ, string(ch), pos), true
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
