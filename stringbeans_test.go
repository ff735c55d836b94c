package mufasa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func beansStr(t *testing.T, env *Env, name string) string {
	t.Helper()
	v := getVal(t, env, name)
	require.Equal(t, VTBeans, v.Tag)
	return v.AsBeans().S
}

func TestStringBeansReplace(t *testing.T) {
	env := run(t, `s = StringBeans("banana")~ r = s.Replace("an", "o")~`)
	require.Equal(t, "booa", beansStr(t, env, "r"))
	// receiver untouched
	require.Equal(t, "banana", beansStr(t, env, "s"))
}

func TestStringBeansReplaceNonOverlapping(t *testing.T) {
	env := run(t, `r = StringBeans("aaaa").Replace("aa", "b")~`)
	require.Equal(t, "bb", beansStr(t, env, "r"))
}

func TestStringBeansAllUpperAllLower(t *testing.T) {
	cases := []struct {
		s            string
		upper, lower bool
	}{
		{"HELLO", true, false},
		{"hello", false, true},
		{"Hello", false, false},
		{"HELLO 123!", true, false},
		{"hello 123!", false, true},
		{"123 !?", true, true},
		{"", true, true},
	}
	for _, c := range cases {
		env := run(t, `u = StringBeans("`+c.s+`").allUpper()~ l = StringBeans("`+c.s+`").allLower()~`)
		require.Equal(t, c.upper, getVal(t, env, "u").AsBool(), "allUpper(%q)", c.s)
		require.Equal(t, c.lower, getVal(t, env, "l").AsBool(), "allLower(%q)", c.s)
	}
}

func TestStringBeansConjoin(t *testing.T) {
	env := run(t, `a = StringBeans("foo")~ b = StringBeans("bar")~ c = a.Conjoin(b)~`)
	require.Equal(t, "foobar", beansStr(t, env, "c"))
	require.Equal(t, "foo", beansStr(t, env, "a"))
	require.Equal(t, "bar", beansStr(t, env, "b"))
}

func TestStringBeansSplitBeans(t *testing.T) {
	env := run(t, `parts = StringBeans("a,b,c").splitBeans(",")~ n = parts.length()~ mid = parts.at(1)~`)
	require.Equal(t, 3.0, getNum(t, env, "n"))
	require.Equal(t, "b", beansStr(t, env, "mid"))
}

func TestStringBeansSplitBeansEmptySeparator(t *testing.T) {
	runErr(t, `x = StringBeans("abc").splitBeans("")~`, InvalidArgument)
}

func TestStringBeansSplitConjoinRoundTrip(t *testing.T) {
	src := `parts = StringBeans("x-y-z").splitBeans("-")~
joined = parts.at(0)~
for (i = 1; i < parts.length(); i = i + 1) {
  joined = joined.Conjoin(StringBeans("-")).Conjoin(parts.at(i))~
}`
	env := run(t, src)
	require.Equal(t, "x-y-z", beansStr(t, env, "joined"))
}

func TestStringBeansLength(t *testing.T) {
	env := run(t, `n = StringBeans("hello").Length()~ z = StringBeans("").Length()~`)
	require.Equal(t, 5.0, getNum(t, env, "n"))
	require.Equal(t, 0.0, getNum(t, env, "z"))
}

func TestStringBeansShow(t *testing.T) {
	out := runOut(t, `StringBeans("raw text, no quotes").show()~`)
	require.Equal(t, "raw text, no quotes\n", out)
}

func TestStringBeansPlusIsNotConcatenation(t *testing.T) {
	runErr(t, `x = StringBeans("a") + StringBeans("b")~`, TypeMismatch)
	runErr(t, `x = "a" + "b"~`, TypeMismatch)
}

func TestStringBeansConstructorAcceptsStringOrBeans(t *testing.T) {
	env := run(t, `a = StringBeans("hi")~ b = StringBeans(a)~`)
	require.Equal(t, "hi", beansStr(t, env, "b"))

	runErr(t, "x = StringBeans(5)~", TypeMismatch)
	runErr(t, "x = StringBeans()~", InvalidArgument)
}

func TestStringBeansNoSuchMethod(t *testing.T) {
	runErr(t, `x = StringBeans("a").sortuple()~`, NoSuchMethod)
}
