package mufasa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArraysAddAndAt(t *testing.T) {
	env := run(t, "a = Arrays()~ a.add(10)~ a.add(20)~ x = a.at(1)~ n = a.length()~")
	require.Equal(t, 20.0, getNum(t, env, "x"))
	require.Equal(t, 2.0, getNum(t, env, "n"))
}

func TestArraysConstructorElements(t *testing.T) {
	env := run(t, `a = Arrays(1, 2, 3)~ n = a.length()~`)
	require.Equal(t, 3.0, getNum(t, env, "n"))
}

func TestArraysZeroFillConstructor(t *testing.T) {
	env := run(t, "a = Arrays(4)~ n = a.length()~ x = a.at(3)~")
	require.Equal(t, 4.0, getNum(t, env, "n"))
	require.Equal(t, 0.0, getNum(t, env, "x"))

	runErr(t, "a = Arrays(-2)~", InvalidArgument)
}

func TestArraysInsert(t *testing.T) {
	env := run(t, "a = Arrays(1, 3)~ a.insert(1, 2)~ x = a.at(1)~ y = a.at(2)~")
	require.Equal(t, 2.0, getNum(t, env, "x"))
	require.Equal(t, 3.0, getNum(t, env, "y"))

	// i == length appends
	env = run(t, "a = Arrays(1)~ a.insert(1, 2)~ x = a.at(1)~")
	require.Equal(t, 2.0, getNum(t, env, "x"))

	runErr(t, "a = Arrays(1)~ a.insert(3, 2)~", IndexOutOfBounds)
}

func TestArraysRemove(t *testing.T) {
	env := run(t, "a = Arrays(1, 2, 3)~ a.remove(0)~ x = a.at(0)~ n = a.length()~")
	require.Equal(t, 2.0, getNum(t, env, "x"))
	require.Equal(t, 2.0, getNum(t, env, "n"))

	runErr(t, "a = Arrays()~ a.remove(0)~", IndexOutOfBounds)
}

func TestArraysBoundsAtLength(t *testing.T) {
	// at(length) is out of bounds even though insert(length) is not
	runErr(t, "a = Arrays(1, 2)~ x = a.at(2)~", IndexOutOfBounds)
	runErr(t, "a = Arrays(1, 2)~ x = a.at(-1)~", IndexOutOfBounds)
}

func TestArraysCheckIndex(t *testing.T) {
	env := run(t, "a = Arrays(1, 2)~ x = a.check_index(1)~ y = a.check_index(2)~ z = a.check_index(-1)~")
	require.True(t, getVal(t, env, "x").AsBool())
	require.False(t, getVal(t, env, "y").AsBool())
	require.False(t, getVal(t, env, "z").AsBool())
}

func TestArraysMutationVisibleThroughAliases(t *testing.T) {
	env := run(t, "a = Arrays()~ b = a~ b.add(7)~ n = a.length()~")
	require.Equal(t, 1.0, getNum(t, env, "n"))
}

func TestArraysDisplay(t *testing.T) {
	out := runOut(t, `a = Arrays(1, 2)~ a.add("three")~ a.display()~`)
	require.Equal(t, "[1, 2, \"three\"]\n", out)
}

func TestArraysNonIntegerIndex(t *testing.T) {
	runErr(t, "a = Arrays(1, 2)~ x = a.at(0.5)~", InvalidArgument)
	runErr(t, `a = Arrays(1, 2)~ x = a.at("0")~`, TypeMismatch)
}

func TestArraysNoSuchMethod(t *testing.T) {
	runErr(t, "a = Arrays()~ a.sortuple()~", NoSuchMethod)
}
