package interpreter

import (
	"sort"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

func builtinAppend(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 2 {
		return nil, arityError("append", "2", len(args))
	}
	list, err := argList("append", args, 0)
	if err != nil {
		return nil, err
	}
	list.Append(args[1])
	return list, nil
}

// remove deletes the first element equal to the value, if any.
func builtinRemove(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 2 {
		return nil, arityError("remove", "2", len(args))
	}
	list, err := argList("remove", args, 0)
	if err != nil {
		return nil, err
	}
	for idx, el := range list.Elements {
		if runtime.Equal(el, args[1]) {
			list.Elements = append(list.Elements[:idx], list.Elements[idx+1:]...)
			break
		}
	}
	return list, nil
}

// sort orders the list in place; mixing unorderable kinds is an error.
func builtinSort(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 1 {
		return nil, arityError("sort", "1", len(args))
	}
	list, err := argList("sort", args, 0)
	if err != nil {
		return nil, err
	}
	var cmpErr error
	sorted := append([]runtime.Value(nil), list.Elements...)
	sort.SliceStable(sorted, func(a, b int) bool {
		order, err := runtime.Compare(sorted[a], sorted[b])
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return order < 0
	})
	if cmpErr != nil {
		return nil, typeError("sort: %v", cmpErr)
	}
	copy(list.Elements, sorted)
	return list, nil
}
