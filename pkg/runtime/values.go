package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "dictionary"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type IntegerValue struct {
	Val int64
}

func (IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

// ListValue is a reference type: every holder observes in-place mutation.
type ListValue struct {
	Elements []Value
}

func (*ListValue) Kind() Kind { return KindList }

func NewList(elements ...Value) *ListValue {
	return &ListValue{Elements: elements}
}

func (l *ListValue) Append(v Value) {
	l.Elements = append(l.Elements, v)
}

func (l *ListValue) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Elements)
}

// MapValue is an insertion-ordered string-keyed dictionary.
type MapValue struct {
	keys   []string
	values map[string]Value
}

func (*MapValue) Kind() Kind { return KindMap }

func NewMap() *MapValue {
	return &MapValue{values: make(map[string]Value)}
}

func (m *MapValue) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *MapValue) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *MapValue) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *MapValue) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Null is the shared null value.
var Null Value = NullValue{}

func Bool(v bool) Value { return BoolValue{Val: v} }

func Int(v int64) Value { return IntegerValue{Val: v} }

func Float(v float64) Value { return FloatValue{Val: v} }

func String(v string) Value { return StringValue{Val: v} }

func IsNull(v Value) bool { return v == nil || v.Kind() == KindNull }

func TypeName(v Value) string {
	if v == nil {
		return KindNull.String()
	}
	return v.Kind().String()
}
