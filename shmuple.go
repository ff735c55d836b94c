// shmuple.go — the immutable tuple type and its method table.
package mufasa

import (
	"io"
	"sort"
)

// Shmuple is an immutable ordered collection. Every method that "modifies"
// one returns a fresh Shmuple and leaves the receiver untouched.
type Shmuple struct {
	Items []Value
}

// NewShmuple copies items so later mutation of the argument slice cannot
// leak into the tuple.
func NewShmuple(items []Value) *Shmuple {
	cp := make([]Value, len(items))
	copy(cp, items)
	return &Shmuple{Items: cp}
}

func (s *Shmuple) Length() int { return len(s.Items) }

// kindRank orders values of different kinds for sorting: numbers first,
// then booleans, then strings, then composites.
func kindRank(v Value) int {
	switch v.Tag {
	case VTNumber:
		return 0
	case VTBool:
		return 1
	case VTString, VTBeans:
		return 2
	case VTShmuple:
		return 3
	case VTArray:
		return 4
	}
	return 5
}

// lessValue is the total order used by sortuple: kind rank first, then
// value within a kind. Composites compare by rendered form.
func lessValue(a, b Value) bool {
	ra, rb := kindRank(a), kindRank(b)
	if ra != rb {
		return ra < rb
	}
	switch a.Tag {
	case VTNumber:
		return a.AsNumber() < b.AsNumber()
	case VTBool:
		return !a.AsBool() && b.AsBool()
	case VTString, VTBeans:
		return stringOf(a) < stringOf(b)
	}
	return a.Display() < b.Display()
}

func stringOf(v Value) string {
	if v.Tag == VTBeans {
		return v.AsBeans().S
	}
	return v.AsString()
}

// Sortuple returns a new Shmuple with the items in ascending order.
func (s *Shmuple) Sortuple() *Shmuple {
	out := NewShmuple(s.Items)
	sort.SliceStable(out.Items, func(i, j int) bool {
		return lessValue(out.Items[i], out.Items[j])
	})
	return out
}

// Add returns a new Shmuple holding the receiver's items followed by
// other's.
func (s *Shmuple) Add(other *Shmuple) *Shmuple {
	out := make([]Value, 0, len(s.Items)+len(other.Items))
	out = append(out, s.Items...)
	out = append(out, other.Items...)
	return &Shmuple{Items: out}
}

// GetItem returns the item at i.
func (s *Shmuple) GetItem(i int) (Value, *RuntimeError) {
	if i < 0 || i >= len(s.Items) {
		return Value{}, rtErr(IndexOutOfBounds, "Shmuple index %d out of bounds for length %d", i, len(s.Items))
	}
	return s.Items[i], nil
}

// IndexOf returns the first index whose item deep-equals v, or -1.
func (s *Shmuple) IndexOf(v Value) int {
	for i, it := range s.Items {
		if it.Equal(v) {
			return i
		}
	}
	return -1
}

// asIndex validates that v is an integral Number and returns it as an int.
func asIndex(what string, v Value) (int, *RuntimeError) {
	if v.Tag != VTNumber {
		return 0, rtErr(TypeMismatch, "%s must be a Number, got %s", what, v.Tag)
	}
	f := v.AsNumber()
	if f != float64(int(f)) {
		return 0, rtErr(InvalidArgument, "%s must be a whole number, got %s", what, v.Display())
	}
	return int(f), nil
}

// needArgs checks the exact argument count for a method call.
func needArgs(recv, method string, args []Value, n int) *RuntimeError {
	if len(args) != n {
		return rtErr(InvalidArgument, "%s.%s expects %d argument(s), got %d", recv, method, n, len(args))
	}
	return nil
}

// invoke dispatches a method call on a Shmuple receiver.
func (s *Shmuple) invoke(method string, args []Value, _ io.Writer) (Value, *RuntimeError) {
	switch method {
	case "sortuple":
		if err := needArgs("Shmuple", method, args, 0); err != nil {
			return Value{}, err
		}
		return Tup(s.Sortuple()), nil
	case "Add":
		if err := needArgs("Shmuple", method, args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Tag != VTShmuple {
			return Value{}, rtErr(TypeMismatch, "Shmuple.Add expects a Shmuple, got %s", args[0].Tag)
		}
		return Tup(s.Add(args[0].AsShmuple())), nil
	case "getitem":
		if err := needArgs("Shmuple", method, args, 1); err != nil {
			return Value{}, err
		}
		i, err := asIndex("Shmuple index", args[0])
		if err != nil {
			return Value{}, err
		}
		return s.GetItem(i)
	case "Index":
		if err := needArgs("Shmuple", method, args, 1); err != nil {
			return Value{}, err
		}
		return Num(float64(s.IndexOf(args[0]))), nil
	case "Length":
		if err := needArgs("Shmuple", method, args, 0); err != nil {
			return Value{}, err
		}
		return Num(float64(s.Length())), nil
	}
	return Value{}, rtErr(NoSuchMethod, "Shmuple has no method %q", method)
}
