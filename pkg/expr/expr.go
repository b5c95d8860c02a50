// Package expr defines the immutable expression trees shared by the AST,
// logic-graph payloads and function bodies.
package expr

import "github.com/poojapathak0/vyra/pkg/runtime"

// Type names an expression variant. The strings double as the "type" key of
// the serialized form.
type Type string

const (
	TypeLiteral      Type = "literal"
	TypeListLiteral  Type = "list_literal"
	TypeVariable     Type = "variable"
	TypeBinaryOp     Type = "binary_op"
	TypeComparison   Type = "comparison"
	TypeLogicalOp    Type = "logical_op"
	TypeFunctionCall Type = "function_call"
)

// Expr is implemented by every expression variant.
type Expr interface {
	ExprType() Type
}

// Literal holds a constant. ValueType is the parser's type hint
// ("number", "string", "boolean", "null", "list").
type Literal struct {
	Value     runtime.Value
	ValueType string
}

func (*Literal) ExprType() Type { return TypeLiteral }

type ListLiteral struct {
	Elements []Expr
}

func (*ListLiteral) ExprType() Type { return TypeListLiteral }

type Variable struct {
	Name string
}

func (*Variable) ExprType() Type { return TypeVariable }

// BinaryOp covers arithmetic: + - * / % **.
type BinaryOp struct {
	Operator string
	Left     Expr
	Right    Expr
}

func (*BinaryOp) ExprType() Type { return TypeBinaryOp }

// Comparison covers == != < > <= >=.
type Comparison struct {
	Operator string
	Left     Expr
	Right    Expr
}

func (*Comparison) ExprType() Type { return TypeComparison }

// LogicalOp covers "and", "or" (any number of operands) and "not" (one).
type LogicalOp struct {
	Operator string
	Operands []Expr
}

func (*LogicalOp) ExprType() Type { return TypeLogicalOp }

type FunctionCall struct {
	Function  string
	Arguments []Expr
}

func (*FunctionCall) ExprType() Type { return TypeFunctionCall }
