package interpreter

import (
	"strings"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

// call resolves name against the builtin table first. A builtin result
// counts only when it is non-null or the builtin is one that returns
// nothing; otherwise resolution falls through to user functions.
func (i *Interpreter) call(name string, args []runtime.Value) (runtime.Value, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if builtin, ok := builtins[normalized]; ok {
		result, err := builtin(i, args)
		if err != nil {
			return nil, err
		}
		if !runtime.IsNull(result) || voidBuiltins.Contains(normalized) {
			if result == nil {
				result = runtime.Null
			}
			return result, nil
		}
	}

	fn, ok := i.ctx.Function(strings.TrimSpace(name))
	if !ok {
		return nil, newError(CategoryUnresolvedIdentifier, "function '%s' is not defined", name)
	}
	return i.invoke(fn, args)
}

// invoke runs a user function in a new scope. The scope and frame are
// released on every exit path.
func (i *Interpreter) invoke(fn *Function, args []runtime.Value) (runtime.Value, error) {
	if err := i.session.enter(fn.Name); err != nil {
		return nil, err
	}
	i.ctx.PushScope()
	defer func() {
		i.ctx.PopScope()
		i.session.leave()
	}()

	for idx, param := range fn.Parameters {
		if idx >= len(args) {
			break
		}
		i.ctx.Set(param, args[idx])
	}
	i.log.Debug("Calling function", "name", fn.Name, "args", len(args), "depth", i.session.depth)

	if i.mode == ExecGraph && fn.Subgraph != nil && fn.Graph != nil {
		if err := i.walk(fn.Graph, fn.Subgraph.Entry); err != nil {
			return nil, err
		}
		value, _ := i.ctx.takeReturn()
		return value, nil
	}

	status, value, err := i.runBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	if status == statusReturn && value != nil {
		return value, nil
	}
	return runtime.Null, nil
}
