// builtins.go — the built-in function set: min, max, squareRoot.
package mufasa

import "math"

// callBuiltin dispatches one of the closed set of built-in functions.
// Arity mismatches are InvalidArgument, non-Number operands TypeMismatch.
func callBuiltin(name string, args []Value) (Value, *RuntimeError) {
	numArgs := func(n int) ([]float64, *RuntimeError) {
		if len(args) != n {
			return nil, rtErr(InvalidArgument, "%s expects %d argument(s), got %d", name, n, len(args))
		}
		out := make([]float64, n)
		for i, a := range args {
			if a.Tag != VTNumber {
				return nil, rtErr(TypeMismatch, "%s expects Number arguments, got %s", name, a.Tag)
			}
			out[i] = a.AsNumber()
		}
		return out, nil
	}

	switch name {
	case "min":
		xs, err := numArgs(2)
		if err != nil {
			return Value{}, err
		}
		return Num(math.Min(xs[0], xs[1])), nil
	case "max":
		xs, err := numArgs(2)
		if err != nil {
			return Value{}, err
		}
		return Num(math.Max(xs[0], xs[1])), nil
	case "squareRoot":
		xs, err := numArgs(1)
		if err != nil {
			return Value{}, err
		}
		if xs[0] < 0 {
			return Value{}, rtErr(DomainError, "squareRoot of negative number %s", formatNumber(xs[0]))
		}
		return Num(math.Sqrt(xs[0])), nil
	}
	return Value{}, rtErr(NoSuchMethod, "no builtin named %q", name)
}
