// interpreter.go — tree-walking evaluator.
//
// Evaluation is single-threaded and strictly sequential. Statements return a
// control outcome (normal, break or continue) alongside an explicit error;
// break and continue propagate as control signals, never as errors, and are
// absorbed by the innermost loop. Expressions return (Value, error). All
// runtime failures are *RuntimeError values carrying a position.
package mufasa

import (
	"io"
	"math"
	"os"
)

// ctrl is the control outcome of a statement.
type ctrl int

const (
	ctrlNone ctrl = iota
	ctrlBreak
	ctrlContinue
)

// Interpreter evaluates a parsed program. Out receives the text written by
// display and show; nothing else is printed by the core.
type Interpreter struct {
	Out io.Writer
}

// New creates an interpreter writing to stdout.
func New() *Interpreter {
	return &Interpreter{Out: os.Stdout}
}

// NewWithOutput creates an interpreter writing display/show output to w.
func NewWithOutput(w io.Writer) *Interpreter {
	return &Interpreter{Out: w}
}

// Execute runs prog top to bottom in env. The environment is mutated in
// place; on error it reflects all effects up to the failure point.
func (in *Interpreter) Execute(prog *Program, env *Env) error {
	for _, st := range prog.Statements {
		// break/continue placement is checked at parse time, so the
		// control outcome is always ctrlNone at top level
		if _, err := in.execStmt(st, env); err != nil {
			return err
		}
	}
	return nil
}

// EvalSource lexes, parses and executes src in a fresh environment, which
// is returned for inspection even though execution may have failed.
func (in *Interpreter) EvalSource(src string) (*Env, error) {
	env := NewEnv()
	prog, err := ParseSource(src)
	if err != nil {
		return env, err
	}
	return env, in.Execute(prog, env)
}

// ──────────────────────────────── statements ────────────────────────────────

func (in *Interpreter) execStmt(st Statement, env *Env) (ctrl, error) {
	switch n := st.(type) {
	case *Assign:
		v, err := in.eval(n.Value, env)
		if err != nil {
			return ctrlNone, err
		}
		env.Assign(n.Name, v)
		return ctrlNone, nil
	case *ExprStmt:
		_, err := in.eval(n.Expr, env)
		return ctrlNone, err
	case *Block:
		return in.execBlock(n, NewChildEnv(env))
	case *If:
		return in.execIf(n, env)
	case *While:
		return in.execWhile(n, env)
	case *For:
		return in.execFor(n, env)
	case *Break:
		return ctrlBreak, nil
	case *Continue:
		return ctrlContinue, nil
	}
	return ctrlNone, rtErr(InvalidArgument, "unhandled statement").at(st.StmtPos())
}

// execBlock runs the block's statements in the given frame. The frame is
// simply dropped on return, on error and on break/continue alike, which is
// what discards block-local bindings.
func (in *Interpreter) execBlock(blk *Block, frame *Env) (ctrl, error) {
	for _, st := range blk.Statements {
		c, err := in.execStmt(st, frame)
		if err != nil {
			return ctrlNone, err
		}
		if c != ctrlNone {
			return c, nil
		}
	}
	return ctrlNone, nil
}

// condition evaluates e and requires a Boolean result.
func (in *Interpreter) condition(e Expression, env *Env) (bool, error) {
	v, err := in.eval(e, env)
	if err != nil {
		return false, err
	}
	if v.Tag != VTBool {
		return false, rtErr(TypeMismatch, "condition must be a Boolean, got %s", v.Tag).at(e.ExprPos())
	}
	return v.AsBool(), nil
}

// execIf runs the chosen branch in the surrounding frame, not a fresh one:
// a variable first assigned inside the branch belongs to the enclosing
// scope and survives the if. Bare blocks and loop bodies keep their own
// frames.
func (in *Interpreter) execIf(n *If, env *Env) (ctrl, error) {
	ok, err := in.condition(n.Cond, env)
	if err != nil {
		return ctrlNone, err
	}
	if ok {
		return in.execBlock(n.Then, env)
	}
	if n.Else != nil {
		return in.execBlock(n.Else, env)
	}
	return ctrlNone, nil
}

func (in *Interpreter) execWhile(n *While, env *Env) (ctrl, error) {
	for {
		ok, err := in.condition(n.Cond, env)
		if err != nil {
			return ctrlNone, err
		}
		if !ok {
			return ctrlNone, nil
		}
		c, err := in.execBlock(n.Body, NewChildEnv(env))
		if err != nil {
			return ctrlNone, err
		}
		if c == ctrlBreak {
			return ctrlNone, nil
		}
		// ctrlContinue falls through to the next condition check
	}
}

// execFor gives the loop header its own frame, so the loop variable is
// scoped to the whole loop rather than to each iteration or to the
// surrounding block. The step runs after every completed iteration,
// including ones cut short by continue, but not after break.
func (in *Interpreter) execFor(n *For, env *Env) (ctrl, error) {
	loopEnv := NewChildEnv(env)
	if n.Init != nil {
		if _, err := in.execStmt(n.Init, loopEnv); err != nil {
			return ctrlNone, err
		}
	}
	for {
		ok, err := in.condition(n.Cond, loopEnv)
		if err != nil {
			return ctrlNone, err
		}
		if !ok {
			return ctrlNone, nil
		}
		c, err := in.execBlock(n.Body, NewChildEnv(loopEnv))
		if err != nil {
			return ctrlNone, err
		}
		if c == ctrlBreak {
			return ctrlNone, nil
		}
		if n.Step != nil {
			if _, err := in.execStmt(n.Step, loopEnv); err != nil {
				return ctrlNone, err
			}
		}
	}
}

// ─────────────────────────────── expressions ────────────────────────────────

func (in *Interpreter) eval(e Expression, env *Env) (Value, error) {
	switch n := e.(type) {
	case *NumberLit:
		return Num(n.Value), nil
	case *StringLit:
		return Str(n.Value), nil
	case *BoolLit:
		return Bool(n.Value), nil
	case *Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			return Value{}, rtErr(UndefinedVariable, "undefined variable %q", n.Name).at(n.Pos)
		}
		return v, nil
	case *Unary:
		return in.evalUnary(n, env)
	case *Binary:
		return in.evalBinary(n, env)
	case *ConstructorCall:
		return in.evalConstructor(n, env)
	case *BuiltinCall:
		args, err := in.evalArgs(n.Args, env)
		if err != nil {
			return Value{}, err
		}
		v, rterr := callBuiltin(n.Name, args)
		if rterr != nil {
			return Value{}, rterr.at(n.Pos)
		}
		return v, nil
	case *MethodCall:
		return in.evalMethodCall(n, env)
	}
	return Value{}, rtErr(InvalidArgument, "unhandled expression").at(e.ExprPos())
}

func (in *Interpreter) evalArgs(exprs []Expression, env *Env) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, e := range exprs {
		v, err := in.eval(e, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (in *Interpreter) evalUnary(n *Unary, env *Env) (Value, error) {
	v, err := in.eval(n.Operand, env)
	if err != nil {
		return Value{}, err
	}
	if v.Tag != VTNumber {
		return Value{}, rtErr(TypeMismatch, "unary '-' expects a Number, got %s", v.Tag).at(n.Pos)
	}
	return Num(-v.AsNumber()), nil
}

func (in *Interpreter) evalBinary(n *Binary, env *Env) (Value, error) {
	// logical operators short-circuit: the right operand is not evaluated
	// when the left already determines the result
	if n.Op == AND || n.Op == OR {
		return in.evalLogical(n, env)
	}

	left, err := in.eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := in.eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case EQ:
		return Bool(left.Equal(right)), nil
	case NEQ:
		return Bool(!left.Equal(right)), nil
	}

	// arithmetic and relational operators are Number-only; concatenation
	// goes through Conjoin / Add / array add, never '+'
	if left.Tag != VTNumber || right.Tag != VTNumber {
		return Value{}, rtErr(TypeMismatch, "operator %s expects Numbers, got %s and %s",
			n.Op, left.Tag, right.Tag).at(n.Pos)
	}
	a, b := left.AsNumber(), right.AsNumber()

	switch n.Op {
	case PLUS:
		return Num(a + b), nil
	case MINUS:
		return Num(a - b), nil
	case MULT:
		return Num(a * b), nil
	case DIV:
		if b == 0 {
			return Value{}, rtErr(DivisionByZero, "division by zero").at(n.Pos)
		}
		return Num(a / b), nil
	case POW:
		return Num(math.Pow(a, b)), nil
	case LESS:
		return Bool(a < b), nil
	case GREATER:
		return Bool(a > b), nil
	}
	return Value{}, rtErr(InvalidArgument, "unhandled operator %s", n.Op).at(n.Pos)
}

func (in *Interpreter) evalLogical(n *Binary, env *Env) (Value, error) {
	left, err := in.eval(n.Left, env)
	if err != nil {
		return Value{}, err
	}
	if left.Tag != VTBool {
		return Value{}, rtErr(TypeMismatch, "operator %s expects Booleans, got %s",
			n.Op, left.Tag).at(n.Pos)
	}
	if n.Op == AND && !left.AsBool() {
		return Bool(false), nil
	}
	if n.Op == OR && left.AsBool() {
		return Bool(true), nil
	}
	right, err := in.eval(n.Right, env)
	if err != nil {
		return Value{}, err
	}
	if right.Tag != VTBool {
		return Value{}, rtErr(TypeMismatch, "operator %s expects Booleans, got %s",
			n.Op, right.Tag).at(n.Pos)
	}
	return Bool(right.AsBool()), nil
}

func (in *Interpreter) evalConstructor(n *ConstructorCall, env *Env) (Value, error) {
	args, err := in.evalArgs(n.Args, env)
	if err != nil {
		return Value{}, err
	}
	switch n.Name {
	case "Shmuple":
		return Tup(NewShmuple(args)), nil
	case "Arrays":
		// Arrays() is empty; Arrays(n) is n zeros; anything else is a
		// plain element list
		if len(args) == 1 && args[0].Tag == VTNumber {
			size, rterr := asIndex("Arrays size", args[0])
			if rterr != nil {
				return Value{}, rterr.at(n.Pos)
			}
			if size < 0 {
				return Value{}, rtErr(InvalidArgument, "Arrays size must not be negative, got %d", size).at(n.Pos)
			}
			return Arr(NewArraysSized(size)), nil
		}
		return Arr(NewArrays(args)), nil
	case "StringBeans":
		if len(args) != 1 {
			return Value{}, rtErr(InvalidArgument, "StringBeans expects 1 argument, got %d", len(args)).at(n.Pos)
		}
		s, rterr := asText("StringBeans", "StringBeans", args[0])
		if rterr != nil {
			return Value{}, rterr.at(n.Pos)
		}
		return Beans(NewStringBeans(s)), nil
	}
	return Value{}, rtErr(NoSuchMethod, "no constructor named %q", n.Name).at(n.Pos)
}

func (in *Interpreter) evalMethodCall(n *MethodCall, env *Env) (Value, error) {
	recv, err := in.eval(n.Recv, env)
	if err != nil {
		return Value{}, err
	}
	args, err := in.evalArgs(n.Args, env)
	if err != nil {
		return Value{}, err
	}

	var v Value
	var rterr *RuntimeError
	switch recv.Tag {
	case VTShmuple:
		v, rterr = recv.AsShmuple().invoke(n.Method, args, in.Out)
	case VTArray:
		v, rterr = recv.AsArrays().invoke(n.Method, args, in.Out)
	case VTBeans:
		v, rterr = recv.AsBeans().invoke(n.Method, args, in.Out)
	default:
		rterr = rtErr(NoSuchMethod, "%s has no methods (calling %q)", recv.Tag, n.Method)
	}
	if rterr != nil {
		return Value{}, rterr.at(n.Pos)
	}
	return v, nil
}
