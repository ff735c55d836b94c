// lexer.go — scanner for Muffasa source text.
package mufasa

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Literals and identifiers
	ID
	NUMBER
	STRING
	BOOLEAN

	// Keywords
	IF
	ELSE
	WHILE
	FOR
	BREAK
	CONTINUE
	CLASS   // Shmuple, Arrays, StringBeans
	BUILTIN // min, max, squareRoot

	// Operators
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	GREATER
	AND // "&&"
	OR  // "||"
	PLUS
	MINUS
	MULT
	DIV
	POW // "^"

	// Punctuation
	LROUND
	RROUND
	LCURLY
	RCURLY
	COMMA
	DOT
	STMTEND // "~" or ";"
)

var tokenNames = map[TokenType]string{
	EOF: "end of input", ID: "identifier", NUMBER: "number", STRING: "string",
	BOOLEAN: "boolean", IF: "'if'", ELSE: "'else'", WHILE: "'while'", FOR: "'for'",
	BREAK: "'break'", CONTINUE: "'continue'", CLASS: "type name", BUILTIN: "builtin",
	ASSIGN: "'='", EQ: "'=='", NEQ: "'!='", LESS: "'<'", GREATER: "'>'",
	AND: "'&&'", OR: "'||'", PLUS: "'+'", MINUS: "'-'", MULT: "'*'", DIV: "'/'",
	POW: "'^'", LROUND: "'('", RROUND: "')'", LCURLY: "'{'", RCURLY: "'}'",
	COMMA: "','", DOT: "'.'", STMTEND: "'~'",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(tt))
}

// Token is a lexical token. Line is 1-based; Col is a 0-based byte column
// within the line. Literal holds the parsed value for NUMBER (float64),
// STRING (string) and BOOLEAN (bool) tokens.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Col     int
}

var keywords = map[string]TokenType{
	"if":          IF,
	"else":        ELSE,
	"while":       WHILE,
	"for":         FOR,
	"break":       BREAK,
	"continue":    CONTINUE,
	"True":        BOOLEAN,
	"False":       BOOLEAN,
	"Shmuple":     CLASS,
	"Arrays":      CLASS,
	"StringBeans": CLASS,
	"min":         BUILTIN,
	"max":         BUILTIN,
	"squareRoot":  BUILTIN,
}

// LexError reports an unrecognized or malformed piece of input. Col is
// 0-based and rendered 1-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans Muffasa source into tokens in a single left-to-right pass.
type Lexer struct {
	src    string
	start  int // start index of the token being scanned
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column of cur within line
	tokens []Token

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekNext() (byte, bool) {
	if l.cur+1 >= len(l.src) {
		return 0, false
	}
	return l.src[l.cur+1], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	return tok
}

func (l *Lexer) previousToken() *Token {
	if len(l.tokens) == 0 {
		return nil
	}
	return &l.tokens[len(l.tokens)-1]
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// identifiers start with a letter; digits and '_' may follow
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) || b == '_' }

// canBeLeftOperand reports whether a token may end an expression. A '-'
// following such a token is subtraction; otherwise a '-' directly before a
// digit starts a negative number literal.
func canBeLeftOperand(t *Token) bool {
	if t == nil {
		return false
	}
	switch t.Type {
	case ID, NUMBER, STRING, BOOLEAN, RROUND:
		return true
	}
	return false
}

// atStatementBoundary reports whether the next token would begin a
// statement. A string literal scanned at such a position is a source
// comment and is dropped from the stream.
func (l *Lexer) atStatementBoundary() bool {
	p := l.previousToken()
	if p == nil {
		return true
	}
	switch p.Type {
	case STMTEND, LCURLY, RCURLY:
		return true
	}
	return false
}

// scanNumber consumes digits with an optional fractional part. Any sign was
// consumed by the caller; the lexeme starts at l.start.
func (l *Lexer) scanNumber() (Token, error) {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	if b, ok := l.peek(); ok && b == '.' {
		if n, ok := l.peekNext(); ok && isDigit(n) {
			l.advance() // '.'
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}
	v, convErr := strconv.ParseFloat(l.src[l.start:l.cur], 64)
	if convErr != nil {
		return Token{}, l.err(fmt.Sprintf("malformed number %q", l.src[l.start:l.cur]))
	}
	return l.addToken(NUMBER, v), nil
}

// scanString consumes a double-quoted string; the opening quote was already
// consumed. There are no escape sequences.
func (l *Lexer) scanString() (string, error) {
	for {
		ch, ok := l.advance()
		if !ok {
			return "", l.err("unterminated string literal")
		}
		if ch == '"' {
			return l.src[l.start+1 : l.cur-1], nil
		}
	}
}

func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanToken scans the next token and appends it. Comment strings produce no
// token, so the loop continues past them.
func (l *Lexer) scanToken() (Token, error) {
	for {
		// skip whitespace
		for {
			b, ok := l.peek()
			if !ok || (b != ' ' && b != '\t' && b != '\r' && b != '\n') {
				break
			}
			l.advance()
		}

		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col

		if l.isAtEnd() {
			return l.addToken(EOF, nil), nil
		}

		ch, _ := l.advance()

		switch ch {
		case '(':
			return l.addToken(LROUND, nil), nil
		case ')':
			return l.addToken(RROUND, nil), nil
		case '{':
			return l.addToken(LCURLY, nil), nil
		case '}':
			return l.addToken(RCURLY, nil), nil
		case ',':
			return l.addToken(COMMA, nil), nil
		case '.':
			return l.addToken(DOT, nil), nil
		case '~', ';':
			return l.addToken(STMTEND, nil), nil
		case '+':
			return l.addToken(PLUS, nil), nil
		case '*':
			return l.addToken(MULT, nil), nil
		case '/':
			return l.addToken(DIV, nil), nil
		case '^':
			return l.addToken(POW, nil), nil
		case '<':
			return l.addToken(LESS, nil), nil
		case '>':
			return l.addToken(GREATER, nil), nil
		case '-':
			if b, ok := l.peek(); ok && isDigit(b) && !canBeLeftOperand(l.previousToken()) {
				return l.scanNumber()
			}
			return l.addToken(MINUS, nil), nil
		case '=':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(EQ, nil), nil
			}
			return l.addToken(ASSIGN, nil), nil
		case '!':
			if b, ok := l.peek(); ok && b == '=' {
				l.advance()
				return l.addToken(NEQ, nil), nil
			}
			return Token{}, l.err("unexpected character '!' (did you mean '!='?)")
		case '&':
			if b, ok := l.peek(); ok && b == '&' {
				l.advance()
				return l.addToken(AND, nil), nil
			}
			return Token{}, l.err("unexpected character '&' (did you mean '&&'?)")
		case '|':
			if b, ok := l.peek(); ok && b == '|' {
				l.advance()
				return l.addToken(OR, nil), nil
			}
			return Token{}, l.err("unexpected character '|' (did you mean '||'?)")
		case '"':
			comment := l.atStatementBoundary()
			text, err := l.scanString()
			if err != nil {
				return Token{}, err
			}
			if comment {
				continue
			}
			return l.addToken(STRING, text), nil
		}

		if isDigit(ch) {
			return l.scanNumber()
		}
		if isAlpha(ch) {
			lex := l.scanIdentifier()
			if tt, ok := keywords[lex]; ok {
				if tt == BOOLEAN {
					return l.addToken(BOOLEAN, lex == "True"), nil
				}
				return l.addToken(tt, nil), nil
			}
			return l.addToken(ID, nil), nil
		}

		return Token{}, l.err(fmt.Sprintf("unexpected character %q", ch))
	}
}

// Scan tokenizes the whole source. The returned slice always ends with an
// EOF token.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
