package interpreter

import (
	"fmt"
	"math"

	mapset "github.com/deckarep/golang-set"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

type builtinFunc func(i *Interpreter, args []runtime.Value) (runtime.Value, error)

var (
	builtins map[string]builtinFunc
	// voidBuiltins always return null; that null still resolves the call.
	voidBuiltins mapset.Set
)

func init() {
	builtins = map[string]builtinFunc{
		"len":     builtinLen,
		"length":  builtinLen,
		"str":     builtinStr,
		"int":     builtinInt,
		"float":   builtinFloat,
		"type_of": builtinTypeOf,

		"abs":   builtinAbs,
		"round": builtinRound,
		"floor": builtinFloor,
		"ceil":  builtinCeil,
		"sqrt":  builtinSqrt,
		"sin":   unaryMath("sin", math.Sin),
		"cos":   unaryMath("cos", math.Cos),
		"tan":   unaryMath("tan", math.Tan),
		"log":   builtinLog,
		"exp":   unaryMath("exp", math.Exp),

		"uppercase": builtinUpper,
		"upper":     builtinUpper,
		"lowercase": builtinLower,
		"lower":     builtinLower,
		"substring": builtinSubstring,
		"split":     builtinSplit,
		"join":      builtinJoin,
		"replace":   builtinReplace,

		"append": builtinAppend,
		"remove": builtinRemove,
		"sort":   builtinSort,

		"current_time": builtinCurrentTime,
		"timestamp":    builtinTimestamp,
		"sleep":        builtinSleep,

		"random_number": builtinRandomNumber,
		"random_choice": builtinRandomChoice,
		"shuffle":       builtinShuffle,
	}

	voidBuiltins = mapset.NewSet()
	for _, name := range []string{"sleep", "append", "remove", "sort", "shuffle"} {
		voidBuiltins.Add(name)
	}
}

// BuiltinNames lists the registered builtin names, aliases included.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	return names
}

func arityError(name string, want string, got int) error {
	return typeError("%s expects %s argument(s), got %d", name, want, got)
}

func argString(name string, args []runtime.Value, idx int) (string, error) {
	if idx >= len(args) {
		return "", arityError(name, fmt.Sprintf("at least %d", idx+1), len(args))
	}
	s, ok := args[idx].(runtime.StringValue)
	if !ok {
		return "", typeError("%s: argument %d must be a string, got %s", name, idx+1, runtime.TypeName(args[idx]))
	}
	return s.Val, nil
}

func argList(name string, args []runtime.Value, idx int) (*runtime.ListValue, error) {
	if idx >= len(args) {
		return nil, arityError(name, fmt.Sprintf("at least %d", idx+1), len(args))
	}
	list, ok := args[idx].(*runtime.ListValue)
	if !ok {
		return nil, typeError("%s: argument %d must be a list, got %s", name, idx+1, runtime.TypeName(args[idx]))
	}
	return list, nil
}

func argNumber(name string, args []runtime.Value, idx int) (float64, error) {
	if idx >= len(args) {
		return 0, arityError(name, fmt.Sprintf("at least %d", idx+1), len(args))
	}
	f, ok := runtime.AsFloat(args[idx])
	if !ok {
		return 0, typeError("%s: argument %d must be a number, got %s", name, idx+1, runtime.TypeName(args[idx]))
	}
	return f, nil
}

func argInt(name string, args []runtime.Value, idx int) (int64, error) {
	if idx >= len(args) {
		return 0, arityError(name, fmt.Sprintf("at least %d", idx+1), len(args))
	}
	switch v := args[idx].(type) {
	case runtime.IntegerValue:
		return v.Val, nil
	case runtime.BoolValue:
		n, _ := runtime.AsInt(v)
		return n, nil
	case runtime.FloatValue:
		if v.Val == float64(int64(v.Val)) {
			return int64(v.Val), nil
		}
	}
	return 0, typeError("%s: argument %d must be an integer, got %s", name, idx+1, runtime.TypeName(args[idx]))
}
