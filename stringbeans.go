// stringbeans.go — the string type and its method table.
package mufasa

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// StringBeans wraps a string. All methods are non-mutating; Replace and
// Conjoin return fresh values.
type StringBeans struct {
	S string
}

func NewStringBeans(s string) *StringBeans { return &StringBeans{S: s} }

func (b *StringBeans) Length() int { return len(b.S) }

// Replace substitutes every non-overlapping occurrence of old with new,
// scanning left to right, and returns the result.
func (b *StringBeans) Replace(old, new string) *StringBeans {
	return &StringBeans{S: strings.ReplaceAll(b.S, old, new)}
}

// AllUpper reports whether every alphabetic character is upper case.
// Non-alphabetic characters are ignored; the empty string is vacuously true.
func (b *StringBeans) AllUpper() bool {
	for _, r := range b.S {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// AllLower is the lower-case counterpart of AllUpper.
func (b *StringBeans) AllLower() bool {
	for _, r := range b.S {
		if unicode.IsLetter(r) && !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// Conjoin returns the concatenation of the receiver and other.
func (b *StringBeans) Conjoin(other *StringBeans) *StringBeans {
	return &StringBeans{S: b.S + other.S}
}

// SplitBeans splits on every literal occurrence of sep and returns the
// pieces as an Arrays of StringBeans.
func (b *StringBeans) SplitBeans(sep string) (*Arrays, *RuntimeError) {
	if sep == "" {
		return nil, rtErr(InvalidArgument, "StringBeans.splitBeans separator must not be empty")
	}
	parts := strings.Split(b.S, sep)
	items := make([]Value, len(parts))
	for i, p := range parts {
		items[i] = Beans(NewStringBeans(p))
	}
	return NewArrays(items), nil
}

// asText accepts a String or StringBeans argument.
func asText(recv, method string, v Value) (string, *RuntimeError) {
	switch v.Tag {
	case VTString:
		return v.AsString(), nil
	case VTBeans:
		return v.AsBeans().S, nil
	}
	return "", rtErr(TypeMismatch, "%s.%s expects a string, got %s", recv, method, v.Tag)
}

// invoke dispatches a method call on a StringBeans receiver. show writes
// the raw string to w.
func (b *StringBeans) invoke(method string, args []Value, w io.Writer) (Value, *RuntimeError) {
	switch method {
	case "Replace":
		if err := needArgs("StringBeans", method, args, 2); err != nil {
			return Value{}, err
		}
		old, err := asText("StringBeans", method, args[0])
		if err != nil {
			return Value{}, err
		}
		repl, err := asText("StringBeans", method, args[1])
		if err != nil {
			return Value{}, err
		}
		return Beans(b.Replace(old, repl)), nil
	case "allUpper":
		if err := needArgs("StringBeans", method, args, 0); err != nil {
			return Value{}, err
		}
		return Bool(b.AllUpper()), nil
	case "allLower":
		if err := needArgs("StringBeans", method, args, 0); err != nil {
			return Value{}, err
		}
		return Bool(b.AllLower()), nil
	case "Conjoin":
		if err := needArgs("StringBeans", method, args, 1); err != nil {
			return Value{}, err
		}
		other, err := asText("StringBeans", method, args[0])
		if err != nil {
			return Value{}, err
		}
		return Beans(b.Conjoin(NewStringBeans(other))), nil
	case "splitBeans":
		if err := needArgs("StringBeans", method, args, 1); err != nil {
			return Value{}, err
		}
		sep, err := asText("StringBeans", method, args[0])
		if err != nil {
			return Value{}, err
		}
		arr, err := b.SplitBeans(sep)
		if err != nil {
			return Value{}, err
		}
		return Arr(arr), nil
	case "Length":
		if err := needArgs("StringBeans", method, args, 0); err != nil {
			return Value{}, err
		}
		return Num(float64(b.Length())), nil
	case "show":
		if err := needArgs("StringBeans", method, args, 0); err != nil {
			return Value{}, err
		}
		fmt.Fprintln(w, b.S)
		return Unit(), nil
	}
	return Value{}, rtErr(NoSuchMethod, "StringBeans has no method %q", method)
}
