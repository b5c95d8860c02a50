package interpreter

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/poojapathak0/vyra/pkg/expr"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

// Statement operations shared by the graph walker and the statement-tree
// interpreter.

func (i *Interpreter) assign(name string, value expr.Expr) error {
	v, err := i.evaluate(value)
	if err != nil {
		return err
	}
	i.ctx.Set(name, v)
	i.log.Trace("Assigned variable", "name", name, "value", runtime.Repr(v))
	return nil
}

// output concatenates the display forms of exprs.
func (i *Interpreter) output(exprs []expr.Expr, newline bool) error {
	parts := make([]string, len(exprs))
	for idx, e := range exprs {
		v, err := i.evaluate(e)
		if err != nil {
			return err
		}
		parts[idx] = runtime.ToString(v)
	}
	line := strings.Join(parts, "")
	if newline {
		line += "\n"
	}
	if _, err := io.WriteString(i.out, line); err != nil {
		return wrapError(CategoryIO, err, "write output")
	}
	return nil
}

func (i *Interpreter) callStatement(name string, args []expr.Expr) error {
	_, err := i.evalCall(name, args)
	return err
}

// appendToList requires a variable target. A variable that does not hold a
// list is rebound to a fresh one-element list.
func (i *Interpreter) appendToList(target, value expr.Expr) error {
	variable, ok := target.(*expr.Variable)
	if !ok {
		return typeError("can only append to a list held in a variable")
	}
	current, err := i.ctx.Get(variable.Name)
	if err != nil {
		return err
	}
	item, err := i.evaluate(value)
	if err != nil {
		return err
	}
	list, ok := current.(*runtime.ListValue)
	if !ok {
		list = runtime.NewList()
		i.ctx.Set(variable.Name, list)
	}
	list.Append(item)
	return nil
}

func (i *Interpreter) defineFunction(fn *Function) {
	i.ctx.DefineFunction(fn)
	i.log.Debug("Defined function", "name", fn.Name, "params", len(fn.Parameters), "lowered", fn.Subgraph != nil)
}

func (i *Interpreter) condition(e expr.Expr) (bool, error) {
	v, err := i.evaluate(e)
	if err != nil {
		return false, err
	}
	return runtime.IsTruthy(v), nil
}

// repeatCount converts a repeat count to an integer, truncating floats and
// parsing numeric strings.
func (i *Interpreter) repeatCount(e expr.Expr) (int64, error) {
	v, err := i.evaluate(e)
	if err != nil {
		return 0, err
	}
	switch val := v.(type) {
	case runtime.IntegerValue:
		return val.Val, nil
	case runtime.BoolValue:
		n, _ := runtime.AsInt(val)
		return n, nil
	case runtime.FloatValue:
		if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
			return 0, typeError("repeat count %s is not a finite number", runtime.FormatFloat(val.Val))
		}
		return int64(val.Val), nil
	case runtime.StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(val.Val), 10, 64)
		if err != nil {
			return 0, typeError("repeat count %q is not a whole number", val.Val)
		}
		return n, nil
	default:
		return 0, typeError("repeat count must be a number, got %s", runtime.TypeName(v))
	}
}
