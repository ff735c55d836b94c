// ast.go — typed syntax tree produced by the parser.
package mufasa

// Pos is a source position: 1-based line, 0-based column.
type Pos struct {
	Line int
	Col  int
}

func posOf(t Token) Pos { return Pos{Line: t.Line, Col: t.Col} }

// Statement is implemented by every statement node.
type Statement interface {
	StmtPos() Pos
	stmtNode()
}

// Expression is implemented by every expression node.
type Expression interface {
	ExprPos() Pos
	exprNode()
}

// Program is the root node: the top-level statement list.
type Program struct {
	Statements []Statement
}

// Block is a braced statement list. It is a statement in its own right and
// also the body form of if/while/for.
type Block struct {
	Pos        Pos
	Statements []Statement
}

func (n *Block) StmtPos() Pos { return n.Pos }
func (n *Block) stmtNode()    {}

// ExprStmt is an expression evaluated for effect, e.g. a bare method call.
type ExprStmt struct {
	Expr Expression
}

func (n *ExprStmt) StmtPos() Pos { return n.Expr.ExprPos() }
func (n *ExprStmt) stmtNode()    {}

// Assign binds the value of Value to Name.
type Assign struct {
	Pos   Pos
	Name  string
	Value Expression
}

func (n *Assign) StmtPos() Pos { return n.Pos }
func (n *Assign) stmtNode()    {}

// If runs Then when Cond is True, otherwise Else (which may be nil).
type If struct {
	Pos  Pos
	Cond Expression
	Then *Block
	Else *Block
}

func (n *If) StmtPos() Pos { return n.Pos }
func (n *If) stmtNode()    {}

// While re-evaluates Cond before each iteration.
type While struct {
	Pos  Pos
	Cond Expression
	Body *Block
}

func (n *While) StmtPos() Pos { return n.Pos }
func (n *While) stmtNode()    {}

// For is the three-clause loop: init once, Cond before each iteration,
// Step after each iteration (including iterations cut short by continue).
type For struct {
	Pos  Pos
	Init Statement // assignment or nil
	Cond Expression
	Step Statement // assignment or nil
	Body *Block
}

func (n *For) StmtPos() Pos { return n.Pos }
func (n *For) stmtNode()    {}

// Break exits the innermost loop.
type Break struct {
	Pos Pos
}

func (n *Break) StmtPos() Pos { return n.Pos }
func (n *Break) stmtNode()    {}

// Continue skips to the next iteration of the innermost loop.
type Continue struct {
	Pos Pos
}

func (n *Continue) StmtPos() Pos { return n.Pos }
func (n *Continue) stmtNode()    {}

// NumberLit is a numeric literal.
type NumberLit struct {
	Pos   Pos
	Value float64
}

func (n *NumberLit) ExprPos() Pos { return n.Pos }
func (n *NumberLit) exprNode()    {}

// StringLit is a double-quoted string literal.
type StringLit struct {
	Pos   Pos
	Value string
}

func (n *StringLit) ExprPos() Pos { return n.Pos }
func (n *StringLit) exprNode()    {}

// BoolLit is True or False.
type BoolLit struct {
	Pos   Pos
	Value bool
}

func (n *BoolLit) ExprPos() Pos { return n.Pos }
func (n *BoolLit) exprNode()    {}

// Ident is a variable reference.
type Ident struct {
	Pos  Pos
	Name string
}

func (n *Ident) ExprPos() Pos { return n.Pos }
func (n *Ident) exprNode()    {}

// Binary is an infix operation. Op is the operator's token type.
type Binary struct {
	Pos   Pos // operator position
	Op    TokenType
	Left  Expression
	Right Expression
}

func (n *Binary) ExprPos() Pos { return n.Pos }
func (n *Binary) exprNode()    {}

// Unary is prefix negation.
type Unary struct {
	Pos     Pos
	Op      TokenType // MINUS
	Operand Expression
}

func (n *Unary) ExprPos() Pos { return n.Pos }
func (n *Unary) exprNode()    {}

// ConstructorCall builds a composite value: Shmuple(...), Arrays(...),
// StringBeans(...).
type ConstructorCall struct {
	Pos  Pos
	Name string
	Args []Expression
}

func (n *ConstructorCall) ExprPos() Pos { return n.Pos }
func (n *ConstructorCall) exprNode()    {}

// BuiltinCall invokes min, max or squareRoot.
type BuiltinCall struct {
	Pos  Pos
	Name string
	Args []Expression
}

func (n *BuiltinCall) ExprPos() Pos { return n.Pos }
func (n *BuiltinCall) exprNode()    {}

// MethodCall is recv.Method(args). The receiver may itself be any
// expression, so calls chain.
type MethodCall struct {
	Pos    Pos // method-name position
	Recv   Expression
	Method string
	Args   []Expression
}

func (n *MethodCall) ExprPos() Pos { return n.Pos }
func (n *MethodCall) exprNode()    {}
