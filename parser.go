// parser.go — recursive-descent parser over the token stream.
//
// Statements are terminated by '~' or ';' (one STMTEND token kind) except
// the brace-terminated forms (if/while/for and bare blocks). Expressions use
// a binding-power table; '^' is right-associative and unary minus binds
// tighter than '^'. Method-call postfix applies to any primary and chains.
package mufasa

import "fmt"

// ParseError reports the first point where the token stream stopped
// matching the grammar. No partial tree is returned.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("SYNTAX ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Parse builds the program tree from a token stream produced by Scan.
func Parse(tokens []Token) (*Program, error) {
	if len(tokens) == 0 {
		return &Program{}, nil
	}
	p := &parser{toks: tokens}
	return p.program()
}

// ParseSource is the lex+parse convenience used by the interpreter and CLI.
func ParseSource(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

type parser struct {
	toks      []Token
	i         int
	loopDepth int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, expected string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), expected)
}

func (p *parser) errAt(got Token, expected string) error {
	found := got.Type.String()
	if got.Type == ID || got.Type == NUMBER || got.Type == STRING ||
		got.Type == CLASS || got.Type == BUILTIN {
		found = fmt.Sprintf("%s %q", found, got.Lexeme)
	}
	return &ParseError{
		Line: got.Line,
		Col:  got.Col,
		Msg:  fmt.Sprintf("expected %s, found %s", expected, found),
	}
}

func (p *parser) skipStmtEnds() {
	for p.match(STMTEND) {
	}
}

// ───────────────────────────────── statements ───────────────────────────────

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	for {
		p.skipStmtEnds()
		if p.atEnd() {
			return prog, nil
		}
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, st)
	}
}

func (p *parser) statement() (Statement, error) {
	switch p.peek().Type {
	case LCURLY:
		return p.block()
	case IF:
		return p.ifStmt()
	case WHILE:
		return p.whileStmt()
	case FOR:
		return p.forStmt()
	case BREAK:
		tok := p.peek()
		p.i++
		if p.loopDepth == 0 {
			return nil, &ParseError{Line: tok.Line, Col: tok.Col, Msg: "'break' outside of a loop"}
		}
		if err := p.terminator(); err != nil {
			return nil, err
		}
		return &Break{Pos: posOf(tok)}, nil
	case CONTINUE:
		tok := p.peek()
		p.i++
		if p.loopDepth == 0 {
			return nil, &ParseError{Line: tok.Line, Col: tok.Col, Msg: "'continue' outside of a loop"}
		}
		if err := p.terminator(); err != nil {
			return nil, err
		}
		return &Continue{Pos: posOf(tok)}, nil
	}

	st, err := p.simpleStmt()
	if err != nil {
		return nil, err
	}
	if err := p.terminator(); err != nil {
		return nil, err
	}
	return st, nil
}

// simpleStmt is an assignment or an expression statement, without the
// trailing terminator.
func (p *parser) simpleStmt() (Statement, error) {
	if p.check(ID) && p.i+1 < len(p.toks) && p.toks[p.i+1].Type == ASSIGN {
		name := p.peek()
		p.i += 2 // ID '='
		val, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		return &Assign{Pos: posOf(name), Name: name.Lexeme, Value: val}, nil
	}
	e, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: e}, nil
}

// terminator requires a STMTEND after a simple statement; the last statement
// of a block or of the program may omit it.
func (p *parser) terminator() error {
	if p.match(STMTEND) {
		return nil
	}
	if p.check(RCURLY) || p.atEnd() {
		return nil
	}
	return p.errAt(p.peek(), "'~' or ';'")
}

func (p *parser) block() (*Block, error) {
	open, err := p.need(LCURLY, "'{'")
	if err != nil {
		return nil, err
	}
	blk := &Block{Pos: posOf(open)}
	for {
		p.skipStmtEnds()
		if p.match(RCURLY) {
			return blk, nil
		}
		if p.atEnd() {
			return nil, p.errAt(p.peek(), "'}'")
		}
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, st)
	}
}

func (p *parser) ifStmt() (Statement, error) {
	kw := p.peek()
	p.i++
	if _, err := p.need(LROUND, "'(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	node := &If{Pos: posOf(kw), Cond: cond, Then: then}
	if p.match(ELSE) {
		// no else-if chaining: 'else' must open a block
		node.Else, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *parser) whileStmt() (Statement, error) {
	kw := p.peek()
	p.i++
	if _, err := p.need(LROUND, "'(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "')' after condition"); err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.block()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return &While{Pos: posOf(kw), Cond: cond, Body: body}, nil
}

func (p *parser) forStmt() (Statement, error) {
	kw := p.peek()
	p.i++
	if _, err := p.need(LROUND, "'(' after 'for'"); err != nil {
		return nil, err
	}
	init, err := p.assignment("loop initializer")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(STMTEND, "';' after loop initializer"); err != nil {
		return nil, err
	}
	cond, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(STMTEND, "';' after loop condition"); err != nil {
		return nil, err
	}
	step, err := p.assignment("loop step")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "')' after loop header"); err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.block()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return &For{Pos: posOf(kw), Init: init, Cond: cond, Step: step, Body: body}, nil
}

// assignment parses the 'name = expr' form required in for-loop headers.
func (p *parser) assignment(where string) (Statement, error) {
	name, err := p.need(ID, "identifier in "+where)
	if err != nil {
		return nil, err
	}
	if _, err := p.need(ASSIGN, "'=' in "+where); err != nil {
		return nil, err
	}
	val, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	return &Assign{Pos: posOf(name), Name: name.Lexeme, Value: val}, nil
}

// ──────────────────────────────── expressions ───────────────────────────────

// lbp is the left binding power of a binary operator; zero means the token
// does not continue an expression.
func lbp(t TokenType) int {
	switch t {
	case OR:
		return 10
	case AND:
		return 20
	case EQ, NEQ:
		return 30
	case LESS, GREATER:
		return 40
	case PLUS, MINUS:
		return 50
	case MULT, DIV:
		return 60
	case POW:
		return 70
	}
	return 0
}

func (p *parser) expression(minBP int) (Expression, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		bp := lbp(op.Type)
		if bp == 0 || bp < minBP {
			return left, nil
		}
		p.i++
		// right-assoc '^' re-enters at its own power, the rest at bp+1
		next := bp + 1
		if op.Type == POW {
			next = bp
		}
		right, err := p.expression(next)
		if err != nil {
			return nil, err
		}
		left = &Binary{Pos: posOf(op), Op: op.Type, Left: left, Right: right}
	}
}

func (p *parser) unary() (Expression, error) {
	if p.check(MINUS) {
		op := p.peek()
		p.i++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Pos: posOf(op), Op: MINUS, Operand: operand}, nil
	}
	return p.postfix()
}

// postfix parses a primary and then any chain of '.method(args)' suffixes.
func (p *parser) postfix() (Expression, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(DOT) {
		name, err := p.need(ID, "method name after '.'")
		if err != nil {
			return nil, err
		}
		if _, err := p.need(LROUND, "'(' after method name"); err != nil {
			return nil, err
		}
		args, err := p.argList()
		if err != nil {
			return nil, err
		}
		e = &MethodCall{Pos: posOf(name), Recv: e, Method: name.Lexeme, Args: args}
	}
	return e, nil
}

// argList parses a comma-separated expression list up to and including ')'.
func (p *parser) argList() ([]Expression, error) {
	var args []Expression
	if p.match(RROUND) {
		return args, nil
	}
	for {
		a, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.match(COMMA) {
			continue
		}
		if _, err := p.need(RROUND, "',' or ')' in argument list"); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *parser) primary() (Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.i++
		return &NumberLit{Pos: posOf(tok), Value: tok.Literal.(float64)}, nil
	case STRING:
		p.i++
		return &StringLit{Pos: posOf(tok), Value: tok.Literal.(string)}, nil
	case BOOLEAN:
		p.i++
		return &BoolLit{Pos: posOf(tok), Value: tok.Literal.(bool)}, nil
	case ID:
		p.i++
		return &Ident{Pos: posOf(tok), Name: tok.Lexeme}, nil
	case CLASS:
		p.i++
		if _, err := p.need(LROUND, fmt.Sprintf("'(' after %q", tok.Lexeme)); err != nil {
			return nil, err
		}
		args, err := p.argList()
		if err != nil {
			return nil, err
		}
		return &ConstructorCall{Pos: posOf(tok), Name: tok.Lexeme, Args: args}, nil
	case BUILTIN:
		p.i++
		if _, err := p.need(LROUND, fmt.Sprintf("'(' after %q", tok.Lexeme)); err != nil {
			return nil, err
		}
		args, err := p.argList()
		if err != nil {
			return nil, err
		}
		return &BuiltinCall{Pos: posOf(tok), Name: tok.Lexeme, Args: args}, nil
	case LROUND:
		p.i++
		e, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, p.errAt(tok, "an expression")
}
