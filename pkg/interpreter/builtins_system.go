package interpreter

import (
	"time"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

const currentTimeLayout = "2006-01-02T15:04:05.000000"

func builtinCurrentTime(i *Interpreter, _ []runtime.Value) (runtime.Value, error) {
	return runtime.String(i.now().Format(currentTimeLayout)), nil
}

// timestamp is seconds since the Unix epoch.
func builtinTimestamp(i *Interpreter, _ []runtime.Value) (runtime.Value, error) {
	return runtime.Float(float64(i.now().UnixNano()) / float64(time.Second)), nil
}

func builtinSleep(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	seconds, err := argNumber("sleep", args, 0)
	if err != nil {
		return nil, err
	}
	if seconds < 0 {
		return nil, typeError("sleep: duration must be non-negative")
	}
	i.sleep(time.Duration(seconds * float64(time.Second)))
	return runtime.Null, nil
}

// random_number(low = 1, high = 100) draws an integer in [low, high], or a
// float in [low, high) when either bound is a float.
func builtinRandomNumber(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	low, high := runtime.Int(1), runtime.Int(100)
	if len(args) > 0 {
		low = args[0]
	}
	if len(args) > 1 {
		high = args[1]
	}
	lo, lok := runtime.AsInt(low)
	hi, hok := runtime.AsInt(high)
	if lok && hok {
		if lo > hi {
			return nil, typeError("random_number: empty range [%d, %d]", lo, hi)
		}
		return runtime.Int(lo + i.rand.Int63n(hi-lo+1)), nil
	}
	lf, lok := runtime.AsFloat(low)
	hf, hok := runtime.AsFloat(high)
	if !lok || !hok {
		return nil, typeError("random_number: bounds must be numbers")
	}
	return runtime.Float(lf + i.rand.Float64()*(hf-lf)), nil
}

func builtinRandomChoice(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 1 {
		return nil, arityError("random_choice", "1", len(args))
	}
	switch seq := args[0].(type) {
	case *runtime.ListValue:
		if seq.Len() == 0 {
			return nil, typeError("random_choice: cannot choose from an empty list")
		}
		return seq.Elements[i.rand.Intn(seq.Len())], nil
	case runtime.StringValue:
		runes := []rune(seq.Val)
		if len(runes) == 0 {
			return nil, typeError("random_choice: cannot choose from an empty string")
		}
		return runtime.String(string(runes[i.rand.Intn(len(runes))])), nil
	default:
		return nil, typeError("random_choice: expected a list, got %s", runtime.TypeName(args[0]))
	}
}

func builtinShuffle(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	list, err := argList("shuffle", args, 0)
	if err != nil {
		return nil, err
	}
	i.rand.Shuffle(list.Len(), func(a, b int) {
		list.Elements[a], list.Elements[b] = list.Elements[b], list.Elements[a]
	})
	return runtime.Null, nil
}
