// value.go — runtime value model.
package mufasa

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueTag discriminates the runtime kinds.
type ValueTag int

const (
	VTUnit ValueTag = iota
	VTNumber
	VTBool
	VTString
	VTShmuple
	VTArray
	VTBeans
)

var tagNames = map[ValueTag]string{
	VTUnit: "Unit", VTNumber: "Number", VTBool: "Boolean", VTString: "String",
	VTShmuple: "Shmuple", VTArray: "Arrays", VTBeans: "StringBeans",
}

func (t ValueTag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(t))
}

// Value is a tagged runtime value. Data holds float64 for VTNumber, bool
// for VTBool, string for VTString, *Shmuple / *Arrays / *StringBeans for
// the composites, and nil for VTUnit.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Constructors.

func Unit() Value                { return Value{Tag: VTUnit} }
func Num(v float64) Value        { return Value{Tag: VTNumber, Data: v} }
func Bool(v bool) Value          { return Value{Tag: VTBool, Data: v} }
func Str(v string) Value         { return Value{Tag: VTString, Data: v} }
func Tup(s *Shmuple) Value       { return Value{Tag: VTShmuple, Data: s} }
func Arr(a *Arrays) Value        { return Value{Tag: VTArray, Data: a} }
func Beans(b *StringBeans) Value { return Value{Tag: VTBeans, Data: b} }

// Accessors. Each panics if the tag disagrees; evaluation code checks tags
// before calling them.

func (v Value) AsNumber() float64     { return v.Data.(float64) }
func (v Value) AsBool() bool          { return v.Data.(bool) }
func (v Value) AsString() string      { return v.Data.(string) }
func (v Value) AsShmuple() *Shmuple   { return v.Data.(*Shmuple) }
func (v Value) AsArrays() *Arrays     { return v.Data.(*Arrays) }
func (v Value) AsBeans() *StringBeans { return v.Data.(*StringBeans) }

// formatNumber renders a float the way the language prints numbers: no
// trailing ".0" for integral values, shortest round-trip form otherwise.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Display renders the value the way display/show and the REPL print it.
func (v Value) Display() string {
	switch v.Tag {
	case VTUnit:
		return "None"
	case VTNumber:
		return formatNumber(v.AsNumber())
	case VTBool:
		if v.AsBool() {
			return "True"
		}
		return "False"
	case VTString:
		return v.AsString()
	case VTShmuple:
		items := v.AsShmuple().Items
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.quoted()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case VTArray:
		items := v.AsArrays().Items
		parts := make([]string, len(items))
		for i, it := range items {
			parts[i] = it.quoted()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case VTBeans:
		return v.AsBeans().S
	}
	return "None"
}

// quoted is Display with strings wrapped in quotes, used inside composite
// renderings.
func (v Value) quoted() string {
	switch v.Tag {
	case VTString:
		return `"` + v.AsString() + `"`
	case VTBeans:
		return `"` + v.AsBeans().S + `"`
	}
	return v.Display()
}

// Equal is deep structural equality across like kinds. Values of different
// kinds are never equal; that is a defined result, not an error.
func (a Value) Equal(b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTUnit:
		return true
	case VTNumber:
		return a.AsNumber() == b.AsNumber()
	case VTBool:
		return a.AsBool() == b.AsBool()
	case VTString:
		return a.AsString() == b.AsString()
	case VTBeans:
		return a.AsBeans().S == b.AsBeans().S
	case VTShmuple:
		return equalSlices(a.AsShmuple().Items, b.AsShmuple().Items)
	case VTArray:
		return equalSlices(a.AsArrays().Items, b.AsArrays().Items)
	}
	return false
}

func equalSlices(xs, ys []Value) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !xs[i].Equal(ys[i]) {
			return false
		}
	}
	return true
}
