package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IsTruthy is total over every value kind.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NullValue:
		return false
	case BoolValue:
		return val.Val
	case IntegerValue:
		return val.Val != 0
	case FloatValue:
		return val.Val != 0
	case StringValue:
		switch strings.ToLower(val.Val) {
		case "", "false", "no", "0":
			return false
		}
		return true
	case *ListValue:
		return val.Len() > 0
	case *MapValue:
		return val.Len() > 0
	default:
		return true
	}
}

// ToString renders a value the way output statements print it.
func ToString(v Value) string {
	switch val := v.(type) {
	case nil, NullValue:
		return "None"
	case BoolValue:
		if val.Val {
			return "True"
		}
		return "False"
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return FormatFloat(val.Val)
	case StringValue:
		return val.Val
	case *ListValue, *MapValue:
		return Repr(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Repr renders a value nested inside a container: strings are quoted.
func Repr(v Value) string {
	switch val := v.(type) {
	case StringValue:
		return quote(val.Val)
	case *ListValue:
		parts := make([]string, len(val.Elements))
		for idx, el := range val.Elements {
			parts[idx] = Repr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *MapValue:
		parts := make([]string, 0, val.Len())
		for _, key := range val.keys {
			parts = append(parts, quote(key)+": "+Repr(val.values[key]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ToString(v)
	}
}

func quote(s string) string {
	delim := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, "\"") {
		delim = "\""
	}
	var b strings.Builder
	b.WriteString(delim)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if string(r) == delim {
				b.WriteString(`\`)
			}
			b.WriteRune(r)
		}
	}
	b.WriteString(delim)
	return b.String()
}

// FormatFloat always keeps a fractional part and switches to exponent
// notation outside [1e-4, 1e16).
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// AsFloat widens numeric values (booleans count as 0 and 1).
func AsFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case IntegerValue:
		return float64(val.Val), true
	case FloatValue:
		return val.Val, true
	case BoolValue:
		if val.Val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// AsInt narrows integer-like values (integers and booleans).
func AsInt(v Value) (int64, bool) {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val, true
	case BoolValue:
		if val.Val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case IntegerValue, FloatValue:
		return true
	}
	return false
}

// Equal is structural: numbers compare across integer/float, containers
// compare element-wise.
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}
	if isNumeric(a) && isNumeric(b) {
		ai, aInt := a.(IntegerValue)
		bi, bInt := b.(IntegerValue)
		if aInt && bInt {
			return ai.Val == bi.Val
		}
		af, _ := AsFloat(a)
		bf, _ := AsFloat(b)
		return af == bf
	}
	switch av := a.(type) {
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for idx := range av.Elements {
			if !Equal(av.Elements[idx], bv.Elements[idx]) {
				return false
			}
		}
		return true
	case *MapValue:
		bv, ok := b.(*MapValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, key := range av.keys {
			other, found := bv.values[key]
			if !found || !Equal(av.values[key], other) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders numbers, strings and lists. Other combinations are not
// ordered and return an error.
func Compare(a, b Value) (int, error) {
	if isNumeric(a) && isNumeric(b) {
		ai, aInt := a.(IntegerValue)
		bi, bInt := b.(IntegerValue)
		if aInt && bInt {
			return cmpOrdered(ai.Val, bi.Val), nil
		}
		af, _ := AsFloat(a)
		bf, _ := AsFloat(b)
		return cmpOrdered(af, bf), nil
	}
	switch av := a.(type) {
	case StringValue:
		if bv, ok := b.(StringValue); ok {
			return strings.Compare(av.Val, bv.Val), nil
		}
	case *ListValue:
		if bv, ok := b.(*ListValue); ok {
			for idx := 0; idx < av.Len() && idx < bv.Len(); idx++ {
				if Equal(av.Elements[idx], bv.Elements[idx]) {
					continue
				}
				return Compare(av.Elements[idx], bv.Elements[idx])
			}
			return cmpOrdered(av.Len(), bv.Len()), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s with %s", TypeName(a), TypeName(b))
}

func cmpOrdered[T int | int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
