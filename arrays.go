// arrays.go — the mutable list type and its method table.
package mufasa

import (
	"fmt"
	"io"
)

// Arrays is the language's mutable list. It is held by pointer inside a
// Value, so mutation through any alias is visible everywhere.
type Arrays struct {
	Items []Value
}

// NewArrays builds a list from items without copying; constructor argument
// slices are owned by the evaluator.
func NewArrays(items []Value) *Arrays {
	return &Arrays{Items: items}
}

// NewArraysSized builds a zero-filled list of n elements.
func NewArraysSized(n int) *Arrays {
	items := make([]Value, n)
	for i := range items {
		items[i] = Num(0)
	}
	return &Arrays{Items: items}
}

func (a *Arrays) Length() int { return len(a.Items) }

// CheckIndex reports whether i is a valid element index.
func (a *Arrays) CheckIndex(i int) bool {
	return i >= 0 && i < len(a.Items)
}

func (a *Arrays) boundsErr(i int) *RuntimeError {
	return rtErr(IndexOutOfBounds, "Arrays index %d out of bounds for length %d", i, len(a.Items))
}

// At returns the element at i.
func (a *Arrays) At(i int) (Value, *RuntimeError) {
	if !a.CheckIndex(i) {
		return Value{}, a.boundsErr(i)
	}
	return a.Items[i], nil
}

// Add appends v.
func (a *Arrays) Add(v Value) {
	a.Items = append(a.Items, v)
}

// Insert places v at i, shifting later elements right. i == length appends.
func (a *Arrays) Insert(i int, v Value) *RuntimeError {
	if i < 0 || i > len(a.Items) {
		return a.boundsErr(i)
	}
	a.Items = append(a.Items, Value{})
	copy(a.Items[i+1:], a.Items[i:])
	a.Items[i] = v
	return nil
}

// Remove deletes the element at i, shifting later elements left.
func (a *Arrays) Remove(i int) *RuntimeError {
	if !a.CheckIndex(i) {
		return a.boundsErr(i)
	}
	a.Items = append(a.Items[:i], a.Items[i+1:]...)
	return nil
}

// invoke dispatches a method call on an Arrays receiver. display writes to
// w, the interpreter's output channel.
func (a *Arrays) invoke(method string, args []Value, w io.Writer) (Value, *RuntimeError) {
	switch method {
	case "add":
		if err := needArgs("Arrays", method, args, 1); err != nil {
			return Value{}, err
		}
		a.Add(args[0])
		return Unit(), nil
	case "insert":
		if err := needArgs("Arrays", method, args, 2); err != nil {
			return Value{}, err
		}
		i, err := asIndex("Arrays index", args[0])
		if err != nil {
			return Value{}, err
		}
		if err := a.Insert(i, args[1]); err != nil {
			return Value{}, err
		}
		return Unit(), nil
	case "remove":
		if err := needArgs("Arrays", method, args, 1); err != nil {
			return Value{}, err
		}
		i, err := asIndex("Arrays index", args[0])
		if err != nil {
			return Value{}, err
		}
		if err := a.Remove(i); err != nil {
			return Value{}, err
		}
		return Unit(), nil
	case "at":
		if err := needArgs("Arrays", method, args, 1); err != nil {
			return Value{}, err
		}
		i, err := asIndex("Arrays index", args[0])
		if err != nil {
			return Value{}, err
		}
		return a.At(i)
	case "check_index":
		if err := needArgs("Arrays", method, args, 1); err != nil {
			return Value{}, err
		}
		i, err := asIndex("Arrays index", args[0])
		if err != nil {
			return Value{}, err
		}
		return Bool(a.CheckIndex(i)), nil
	case "length":
		if err := needArgs("Arrays", method, args, 0); err != nil {
			return Value{}, err
		}
		return Num(float64(a.Length())), nil
	case "display":
		if err := needArgs("Arrays", method, args, 0); err != nil {
			return Value{}, err
		}
		fmt.Fprintln(w, Arr(a).Display())
		return Unit(), nil
	}
	return Value{}, rtErr(NoSuchMethod, "Arrays has no method %q", method)
}
