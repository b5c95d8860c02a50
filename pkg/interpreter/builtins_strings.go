package interpreter

import (
	"strings"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

func builtinUpper(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 1 {
		return nil, arityError("uppercase", "1", len(args))
	}
	return runtime.String(strings.ToUpper(runtime.ToString(args[0]))), nil
}

func builtinLower(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 1 {
		return nil, arityError("lowercase", "1", len(args))
	}
	return runtime.String(strings.ToLower(runtime.ToString(args[0]))), nil
}

// substring slices by character index. Negative indices count from the end
// and out-of-range bounds are clamped.
func builtinSubstring(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	s, err := argString("substring", args, 0)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	start := int64(0)
	if len(args) > 1 && !runtime.IsNull(args[1]) {
		if start, err = argInt("substring", args, 1); err != nil {
			return nil, err
		}
	}
	end := int64(len(runes))
	if len(args) > 2 && !runtime.IsNull(args[2]) {
		if end, err = argInt("substring", args, 2); err != nil {
			return nil, err
		}
	}
	lo, hi := clampIndex(start, len(runes)), clampIndex(end, len(runes))
	if lo >= hi {
		return runtime.String(""), nil
	}
	return runtime.String(string(runes[lo:hi])), nil
}

func clampIndex(idx int64, length int) int {
	n := int64(length)
	if idx < 0 {
		idx += n
		if idx < 0 {
			idx = 0
		}
	}
	if idx > n {
		idx = n
	}
	return int(idx)
}

// split without a separator splits on runs of whitespace.
func builtinSplit(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	s, err := argString("split", args, 0)
	if err != nil {
		return nil, err
	}
	var parts []string
	if len(args) < 2 || runtime.IsNull(args[1]) {
		parts = strings.Fields(s)
	} else {
		sep, err := argString("split", args, 1)
		if err != nil {
			return nil, err
		}
		if sep == "" {
			return nil, typeError("split: empty separator")
		}
		parts = strings.Split(s, sep)
	}
	list := &runtime.ListValue{Elements: make([]runtime.Value, len(parts))}
	for idx, part := range parts {
		list.Elements[idx] = runtime.String(part)
	}
	return list, nil
}

// join takes (separator, items); (items, separator) is accepted as well.
func builtinJoin(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 2 {
		return nil, arityError("join", "2", len(args))
	}
	sepArg, itemsArg := args[0], args[1]
	if _, ok := sepArg.(*runtime.ListValue); ok {
		sepArg, itemsArg = itemsArg, sepArg
	}
	sep, ok := sepArg.(runtime.StringValue)
	if !ok {
		return nil, typeError("join: separator must be a string, got %s", runtime.TypeName(sepArg))
	}
	items, ok := itemsArg.(*runtime.ListValue)
	if !ok {
		return nil, typeError("join: items must be a list, got %s", runtime.TypeName(itemsArg))
	}
	parts := make([]string, len(items.Elements))
	for idx, item := range items.Elements {
		parts[idx] = runtime.ToString(item)
	}
	return runtime.String(strings.Join(parts, sep.Val)), nil
}

func builtinReplace(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 3 {
		return nil, arityError("replace", "3", len(args))
	}
	s, err := argString("replace", args, 0)
	if err != nil {
		return nil, err
	}
	old, err := argString("replace", args, 1)
	if err != nil {
		return nil, err
	}
	replacement := runtime.ToString(args[2])
	return runtime.String(strings.ReplaceAll(s, old, replacement)), nil
}
