package interpreter

import (
	"math"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

func builtinAbs(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return runtime.Int(0), nil
	}
	switch v := args[0].(type) {
	case runtime.IntegerValue:
		return runtime.Int(abs64(v.Val)), nil
	case runtime.FloatValue:
		return runtime.Float(math.Abs(v.Val)), nil
	case runtime.BoolValue:
		n, _ := runtime.AsInt(v)
		return runtime.Int(n), nil
	default:
		return nil, typeError("abs: expected a number, got %s", runtime.TypeName(args[0]))
	}
}

// round uses round-half-to-even. Without a digit count the result is an
// integer; with one it stays a float.
func builtinRound(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return runtime.Int(0), nil
	}
	if _, ok := args[0].(runtime.IntegerValue); ok {
		return args[0], nil
	}
	x, err := argNumber("round", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 || runtime.IsNull(args[1]) {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, typeError("round: cannot round %s to an integer", runtime.FormatFloat(x))
		}
		return runtime.Int(int64(math.RoundToEven(x))), nil
	}
	digits, err := argInt("round", args, 1)
	if err != nil {
		return nil, err
	}
	scale := math.Pow(10, float64(digits))
	return runtime.Float(math.RoundToEven(x*scale) / scale), nil
}

func builtinFloor(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	return roundingBuiltin("floor", args, math.Floor)
}

func builtinCeil(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	return roundingBuiltin("ceil", args, math.Ceil)
}

func roundingBuiltin(name string, args []runtime.Value, fn func(float64) float64) (runtime.Value, error) {
	if len(args) > 0 {
		if n, ok := args[0].(runtime.IntegerValue); ok {
			return n, nil
		}
	}
	x, err := argNumber(name, args, 0)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, typeError("%s: cannot convert %s to an integer", name, runtime.FormatFloat(x))
	}
	return runtime.Int(int64(fn(x))), nil
}

func builtinSqrt(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	x, err := argNumber("sqrt", args, 0)
	if err != nil {
		return nil, err
	}
	if x < 0 {
		return nil, typeError("sqrt: math domain error")
	}
	return runtime.Float(math.Sqrt(x)), nil
}

// log is the natural logarithm, or the logarithm in the given base.
func builtinLog(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	x, err := argNumber("log", args, 0)
	if err != nil {
		return nil, err
	}
	if x <= 0 {
		return nil, typeError("log: math domain error")
	}
	if len(args) < 2 {
		return runtime.Float(math.Log(x)), nil
	}
	base, err := argNumber("log", args, 1)
	if err != nil {
		return nil, err
	}
	if base <= 0 || base == 1 {
		return nil, typeError("log: invalid base %s", runtime.FormatFloat(base))
	}
	return runtime.Float(math.Log(x) / math.Log(base)), nil
}

func unaryMath(name string, fn func(float64) float64) builtinFunc {
	return func(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
		x, err := argNumber(name, args, 0)
		if err != nil {
			return nil, err
		}
		return runtime.Float(fn(x)), nil
	}
}
