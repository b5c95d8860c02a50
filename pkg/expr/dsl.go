package expr

import "github.com/poojapathak0/vyra/pkg/runtime"

func Int(v int64) *Literal { return &Literal{Value: runtime.Int(v), ValueType: "number"} }

func Flt(v float64) *Literal { return &Literal{Value: runtime.Float(v), ValueType: "number"} }

func Str(v string) *Literal { return &Literal{Value: runtime.String(v), ValueType: "string"} }

func Bool(v bool) *Literal { return &Literal{Value: runtime.Bool(v), ValueType: "boolean"} }

func Null() *Literal { return &Literal{Value: runtime.Null, ValueType: "null"} }

func List(elements ...Expr) *ListLiteral { return &ListLiteral{Elements: elements} }

func Var(name string) *Variable { return &Variable{Name: name} }

func Bin(op string, left, right Expr) *BinaryOp {
	return &BinaryOp{Operator: op, Left: left, Right: right}
}

func Cmp(op string, left, right Expr) *Comparison {
	return &Comparison{Operator: op, Left: left, Right: right}
}

func And(operands ...Expr) *LogicalOp { return &LogicalOp{Operator: "and", Operands: operands} }

func Or(operands ...Expr) *LogicalOp { return &LogicalOp{Operator: "or", Operands: operands} }

func Not(operand Expr) *LogicalOp { return &LogicalOp{Operator: "not", Operands: []Expr{operand}} }

func Call(name string, args ...Expr) *FunctionCall {
	return &FunctionCall{Function: name, Arguments: args}
}
