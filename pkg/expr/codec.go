package expr

import (
	"fmt"
	"io/fs"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

// Encode converts an expression into its map form. Literal values stay
// runtime values; they marshal themselves as JSON.
func Encode(e Expr) any {
	switch node := e.(type) {
	case nil:
		return nil
	case *Literal:
		value := node.Value
		if value == nil {
			value = runtime.Null
		}
		return map[string]any{"type": string(TypeLiteral), "value": value, "value_type": node.ValueType}
	case *ListLiteral:
		return map[string]any{"type": string(TypeListLiteral), "elements": EncodeList(node.Elements)}
	case *Variable:
		return map[string]any{"type": string(TypeVariable), "name": node.Name}
	case *BinaryOp:
		return map[string]any{"type": string(TypeBinaryOp), "operator": node.Operator, "left": Encode(node.Left), "right": Encode(node.Right)}
	case *Comparison:
		return map[string]any{"type": string(TypeComparison), "operator": node.Operator, "left": Encode(node.Left), "right": Encode(node.Right)}
	case *LogicalOp:
		return map[string]any{"type": string(TypeLogicalOp), "operator": node.Operator, "operands": EncodeList(node.Operands)}
	case *FunctionCall:
		return map[string]any{"type": string(TypeFunctionCall), "function": node.Function, "arguments": EncodeList(node.Arguments)}
	default:
		return map[string]any{"type": "unknown"}
	}
}

func EncodeList(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for idx, e := range exprs {
		out[idx] = Encode(e)
	}
	return out
}

// Decode reads the map form produced by Encode (or by a JSON/YAML program
// document). A nil input decodes to a nil expression.
func Decode(raw any) (Expr, error) {
	if raw == nil {
		return nil, nil
	}
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expression: expected object, got %T", raw)
	}
	typ, _ := node["type"].(string)
	switch Type(typ) {
	case TypeLiteral:
		value, err := runtime.FromGo(node["value"])
		if err != nil {
			return nil, fmt.Errorf("decode literal: %w", err)
		}
		valueType, _ := node["value_type"].(string)
		if list, ok := value.(*runtime.ListValue); ok {
			return listLiteralFromValue(list), nil
		}
		return &Literal{Value: value, ValueType: valueType}, nil
	case TypeListLiteral:
		elements, err := DecodeList(node["elements"])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", typ, err)
		}
		return &ListLiteral{Elements: elements}, nil
	case TypeVariable:
		name, _ := node["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("decode %s: missing name", typ)
		}
		return &Variable{Name: name}, nil
	case TypeBinaryOp, TypeComparison:
		op, _ := node["operator"].(string)
		left, err := Decode(node["left"])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", typ, err)
		}
		right, err := Decode(node["right"])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", typ, err)
		}
		if Type(typ) == TypeComparison {
			return &Comparison{Operator: op, Left: left, Right: right}, nil
		}
		return &BinaryOp{Operator: op, Left: left, Right: right}, nil
	case TypeLogicalOp:
		op, _ := node["operator"].(string)
		operands, err := DecodeList(node["operands"])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", typ, err)
		}
		return &LogicalOp{Operator: op, Operands: operands}, nil
	case TypeFunctionCall:
		name, _ := node["function"].(string)
		args, err := DecodeList(node["arguments"])
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", typ, err)
		}
		return &FunctionCall{Function: name, Arguments: args}, nil
	default:
		return nil, fmt.Errorf("decode expression %q: %w", typ, fs.ErrInvalid)
	}
}

func DecodeList(raw any) ([]Expr, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", raw)
	}
	out := make([]Expr, 0, len(items))
	for _, item := range items {
		e, err := Decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// list literals from a parser arrive as literal values of list type.
func listLiteralFromValue(list *runtime.ListValue) *ListLiteral {
	elements := make([]Expr, len(list.Elements))
	for idx, el := range list.Elements {
		if nested, ok := el.(*runtime.ListValue); ok {
			elements[idx] = listLiteralFromValue(nested)
			continue
		}
		elements[idx] = &Literal{Value: el, ValueType: valueTypeOf(el)}
	}
	return &ListLiteral{Elements: elements}
}

func valueTypeOf(v runtime.Value) string {
	switch v.Kind() {
	case runtime.KindInteger, runtime.KindFloat:
		return "number"
	case runtime.KindString:
		return "string"
	case runtime.KindBool:
		return "boolean"
	case runtime.KindNull:
		return "null"
	default:
		return v.Kind().String()
	}
}
