// errors.go — runtime error kinds and caret-snippet rendering.
//
// The pipeline surfaces three error types: *LexError (lexer.go),
// *ParseError (parser.go) and *RuntimeError (below). WrapErrorWithSource
// turns any of them into a readable snippet with a caret under the
// offending column:
//
//	SYNTAX ERROR at 3:12: expected ')', found '~'
//
//	   2 | x = (1 + 2
//	   3 |           ~
//	       |          ^
//	   4 | y = 4~
//
// Other errors pass through unchanged.
package mufasa

import (
	"fmt"
	"strings"
)

// RTKind is the closed set of runtime failure kinds.
type RTKind int

const (
	UndefinedVariable RTKind = iota
	TypeMismatch
	DivisionByZero
	IndexOutOfBounds
	NoSuchMethod
	DomainError
	InvalidArgument
)

var rtKindNames = map[RTKind]string{
	UndefinedVariable: "UndefinedVariable",
	TypeMismatch:      "TypeMismatch",
	DivisionByZero:    "DivisionByZero",
	IndexOutOfBounds:  "IndexOutOfBounds",
	NoSuchMethod:      "NoSuchMethod",
	DomainError:       "DomainError",
	InvalidArgument:   "InvalidArgument",
}

func (k RTKind) String() string {
	if s, ok := rtKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("RTKind(%d)", int(k))
}

// RuntimeError is an evaluation failure. Runtime errors are fatal to the
// running program; the language has no catch construct.
type RuntimeError struct {
	Kind RTKind
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR (%s) at %d:%d: %s", e.Kind, e.Line, e.Col+1, e.Msg)
}

// rtErr builds a RuntimeError with no position; the evaluator stamps the
// node position on before propagating.
func rtErr(kind RTKind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// at stamps pos onto err if it does not already carry a position.
func (e *RuntimeError) at(pos Pos) *RuntimeError {
	if e.Line == 0 {
		e.Line = pos.Line
		e.Col = pos.Col
	}
	return e
}

// WrapErrorWithSource returns err augmented with a caret-annotated snippet
// of src. It recognizes the three pipeline error types and leaves other
// errors untouched.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettySnippet(src, "LEXICAL ERROR", e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettySnippet(src, "SYNTAX ERROR", e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		header := fmt.Sprintf("RUNTIME ERROR (%s)", e.Kind)
		return fmt.Errorf("%s", prettySnippet(src, header, e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

// prettySnippet builds the snippet with a header and a caret. It shows at
// most one previous and one next line. Coordinates are 1-based here and
// clamped to the source bounds.
func prettySnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
