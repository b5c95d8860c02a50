package interpreter

import (
	"github.com/poojapathak0/vyra/pkg/expr"
	"github.com/poojapathak0/vyra/pkg/runtime"
)

// evaluate reduces an expression to a value. A nil expression is null.
func (i *Interpreter) evaluate(e expr.Expr) (runtime.Value, error) {
	switch node := e.(type) {
	case nil:
		return runtime.Null, nil
	case *expr.Literal:
		if node.Value == nil {
			return runtime.Null, nil
		}
		return cloneValue(node.Value), nil
	case *expr.ListLiteral:
		list := &runtime.ListValue{Elements: make([]runtime.Value, 0, len(node.Elements))}
		for _, el := range node.Elements {
			v, err := i.evaluate(el)
			if err != nil {
				return nil, err
			}
			list.Append(v)
		}
		return list, nil
	case *expr.Variable:
		return i.ctx.Get(node.Name)
	case *expr.BinaryOp:
		left, err := i.evaluate(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluate(node.Right)
		if err != nil {
			return nil, err
		}
		return binaryOp(node.Operator, left, right)
	case *expr.Comparison:
		left, err := i.evaluate(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluate(node.Right)
		if err != nil {
			return nil, err
		}
		return compare(node.Operator, left, right)
	case *expr.LogicalOp:
		return i.evalLogical(node)
	case *expr.FunctionCall:
		return i.evalCall(node.Function, node.Arguments)
	default:
		return nil, typeError("unsupported expression %T", e)
	}
}

// evalLogical evaluates every operand before combining them; "and" and
// "or" do not short-circuit.
func (i *Interpreter) evalLogical(node *expr.LogicalOp) (runtime.Value, error) {
	values := make([]runtime.Value, len(node.Operands))
	for idx, operand := range node.Operands {
		v, err := i.evaluate(operand)
		if err != nil {
			return nil, err
		}
		values[idx] = v
	}
	switch node.Operator {
	case "and":
		result := true
		for _, v := range values {
			result = result && runtime.IsTruthy(v)
		}
		return runtime.Bool(result), nil
	case "or":
		result := false
		for _, v := range values {
			result = result || runtime.IsTruthy(v)
		}
		return runtime.Bool(result), nil
	case "not":
		if len(values) != 1 {
			return nil, typeError("'not' takes exactly one operand, got %d", len(values))
		}
		return runtime.Bool(!runtime.IsTruthy(values[0])), nil
	default:
		return nil, typeError("unknown logical operator '%s'", node.Operator)
	}
}

func (i *Interpreter) evalCall(name string, args []expr.Expr) (runtime.Value, error) {
	values := make([]runtime.Value, len(args))
	for idx, arg := range args {
		v, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		values[idx] = v
	}
	return i.call(name, values)
}

// cloneValue copies containers so a literal never aliases state across
// executions.
func cloneValue(v runtime.Value) runtime.Value {
	switch val := v.(type) {
	case *runtime.ListValue:
		out := &runtime.ListValue{Elements: make([]runtime.Value, len(val.Elements))}
		for idx, el := range val.Elements {
			out.Elements[idx] = cloneValue(el)
		}
		return out
	case *runtime.MapValue:
		out := runtime.NewMap()
		for _, key := range val.Keys() {
			item, _ := val.Get(key)
			out.Set(key, cloneValue(item))
		}
		return out
	default:
		return v
	}
}
