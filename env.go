// env.go — scope-chain environment frames.
package mufasa

import (
	"fmt"
	"sort"
	"strings"
)

// Env is one frame of the scope chain. Blocks push a child frame on entry
// and discard it on every exit path, so bindings created inside a block do
// not outlive it.
type Env struct {
	parent *Env
	vars   map[string]Value
}

// NewEnv creates a root frame.
func NewEnv() *Env {
	return &Env{vars: map[string]Value{}}
}

// NewChildEnv creates a frame whose lookups fall through to parent.
func NewChildEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: map[string]Value{}}
}

// Define creates or overwrites a binding in this frame only.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Get resolves name from the innermost frame outward.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Assign implements the language's assignment rule: mutate the nearest
// frame that already binds name, or define it in the innermost frame.
func (e *Env) Assign(name string, v Value) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}

// Names returns the names bound in this frame, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for n := range e.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DumpEnv renders one "name = value" line per binding of the frame itself,
// sorted by name. The CLI's -vars flag and the tests use it to observe the
// final program state.
func DumpEnv(e *Env) string {
	var b strings.Builder
	for _, n := range e.Names() {
		v := e.vars[n]
		fmt.Fprintf(&b, "%s = %s\n", n, v.quoted())
	}
	return b.String()
}
