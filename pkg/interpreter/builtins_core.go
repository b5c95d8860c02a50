package interpreter

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

// len, str, int and float return a zero value when called without
// arguments.

func builtinLen(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return runtime.Int(0), nil
	}
	switch v := args[0].(type) {
	case runtime.StringValue:
		return runtime.Int(int64(utf8.RuneCountInString(v.Val))), nil
	case *runtime.ListValue:
		return runtime.Int(int64(v.Len())), nil
	case *runtime.MapValue:
		return runtime.Int(int64(v.Len())), nil
	default:
		return nil, typeError("len: %s value has no length", runtime.TypeName(args[0]))
	}
}

func builtinStr(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return runtime.String(""), nil
	}
	return runtime.String(runtime.ToString(args[0])), nil
}

func builtinInt(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return runtime.Int(0), nil
	}
	switch v := args[0].(type) {
	case runtime.IntegerValue:
		return v, nil
	case runtime.BoolValue:
		n, _ := runtime.AsInt(v)
		return runtime.Int(n), nil
	case runtime.FloatValue:
		if math.IsNaN(v.Val) || math.IsInf(v.Val, 0) {
			return nil, typeError("int: cannot convert %s to integer", runtime.FormatFloat(v.Val))
		}
		return runtime.Int(int64(v.Val)), nil
	case runtime.StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Val), 10, 64)
		if err != nil {
			return nil, typeError("int: invalid integer literal %s", runtime.Repr(v))
		}
		return runtime.Int(n), nil
	default:
		return nil, typeError("int: cannot convert %s to integer", runtime.TypeName(args[0]))
	}
}

func builtinFloat(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return runtime.Float(0), nil
	}
	if f, ok := runtime.AsFloat(args[0]); ok {
		return runtime.Float(f), nil
	}
	if s, ok := args[0].(runtime.StringValue); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s.Val), 64)
		if err != nil {
			return nil, typeError("float: invalid number %s", runtime.Repr(s))
		}
		return runtime.Float(f), nil
	}
	return nil, typeError("float: cannot convert %s to float", runtime.TypeName(args[0]))
}

func builtinTypeOf(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 1 {
		return nil, arityError("type_of", "1", len(args))
	}
	return runtime.String(runtime.TypeName(args[0])), nil
}
