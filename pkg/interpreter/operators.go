package interpreter

import (
	"math"
	"math/bits"
	"strings"

	"github.com/poojapathak0/vyra/pkg/runtime"
)

func isIntLike(v runtime.Value) bool {
	switch v.(type) {
	case runtime.IntegerValue, runtime.BoolValue:
		return true
	}
	return false
}

func binaryOp(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+":
		return addValues(left, right)
	case "-", "*", "/", "%", "**":
	default:
		return nil, typeError("unknown operator '%s'", op)
	}

	if op == "*" {
		if repeated, ok, err := repeatValue(left, right); ok {
			return repeated, err
		}
	}

	lf, lok := runtime.AsFloat(left)
	rf, rok := runtime.AsFloat(right)
	if !lok || !rok {
		return nil, typeError("unsupported operand types for %s: %s and %s", op, runtime.TypeName(left), runtime.TypeName(right))
	}
	bothInt := isIntLike(left) && isIntLike(right)
	li, _ := runtime.AsInt(left)
	ri, _ := runtime.AsInt(right)

	switch op {
	case "-":
		if bothInt {
			if n, ok := subInt(li, ri); ok {
				return runtime.Int(n), nil
			}
		}
		return runtime.Float(lf - rf), nil
	case "*":
		if bothInt {
			if n, ok := mulInt(li, ri); ok {
				return runtime.Int(n), nil
			}
		}
		return runtime.Float(lf * rf), nil
	case "/":
		if rf == 0 {
			return runtime.Float(math.Inf(1)), nil
		}
		return runtime.Float(lf / rf), nil
	case "%":
		if rf == 0 {
			return runtime.Int(0), nil
		}
		if bothInt {
			m := li % ri
			if m != 0 && (m < 0) != (ri < 0) {
				m += ri
			}
			return runtime.Int(m), nil
		}
		m := math.Mod(lf, rf)
		if m != 0 && (m < 0) != (rf < 0) {
			m += rf
		}
		return runtime.Float(m), nil
	default:
		if bothInt && ri >= 0 {
			if n, ok := intPow(li, ri); ok {
				return runtime.Int(n), nil
			}
		}
		return runtime.Float(math.Pow(lf, rf)), nil
	}
}

// addValues concatenates when either side is a string or both are lists,
// and adds numerically otherwise.
func addValues(left, right runtime.Value) (runtime.Value, error) {
	_, lstr := left.(runtime.StringValue)
	_, rstr := right.(runtime.StringValue)
	if lstr || rstr {
		return runtime.String(runtime.ToString(left) + runtime.ToString(right)), nil
	}
	if ll, ok := left.(*runtime.ListValue); ok {
		if rl, ok := right.(*runtime.ListValue); ok {
			elements := make([]runtime.Value, 0, ll.Len()+rl.Len())
			elements = append(elements, ll.Elements...)
			elements = append(elements, rl.Elements...)
			return &runtime.ListValue{Elements: elements}, nil
		}
	}
	if isIntLike(left) && isIntLike(right) {
		li, _ := runtime.AsInt(left)
		ri, _ := runtime.AsInt(right)
		if n, ok := addInt(li, ri); ok {
			return runtime.Int(n), nil
		}
	}
	lf, lok := runtime.AsFloat(left)
	rf, rok := runtime.AsFloat(right)
	if !lok || !rok {
		return nil, typeError("unsupported operand types for +: %s and %s", runtime.TypeName(left), runtime.TypeName(right))
	}
	return runtime.Float(lf + rf), nil
}

// repeatValue handles string and list repetition by an integer count.
func repeatValue(left, right runtime.Value) (runtime.Value, bool, error) {
	seq, count := left, right
	if isIntLike(left) {
		seq, count = right, left
	}
	n, ok := count.(runtime.IntegerValue)
	if !ok {
		return nil, false, nil
	}
	times := int(n.Val)
	if times < 0 {
		times = 0
	}
	switch s := seq.(type) {
	case runtime.StringValue:
		return runtime.String(strings.Repeat(s.Val, times)), true, nil
	case *runtime.ListValue:
		elements := make([]runtime.Value, 0, s.Len()*times)
		for k := 0; k < times; k++ {
			elements = append(elements, s.Elements...)
		}
		return &runtime.ListValue{Elements: elements}, true, nil
	}
	return nil, false, nil
}

// intPow reports false when the result does not fit in an int64.
func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			hi, lo := bits.Mul64(uint64(abs64(result)), uint64(abs64(base)))
			if hi != 0 || lo > math.MaxInt64 {
				return 0, false
			}
			result *= base
		}
		exp >>= 1
		if exp > 0 {
			hi, lo := bits.Mul64(uint64(abs64(base)), uint64(abs64(base)))
			if hi != 0 || lo > math.MaxInt64 {
				return 0, false
			}
			base *= base
		}
	}
	return result, true
}

// Integer results that overflow int64 are computed in floating point instead.

func addInt(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, false
	}
	return c, true
}

func mulInt(a, b int64) (int64, bool) {
	hi, lo := bits.Mul64(uint64(abs64(a)), uint64(abs64(b)))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, false
	}
	return a * b, true
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func compare(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		return runtime.Bool(runtime.Equal(left, right)), nil
	case "!=":
		return runtime.Bool(!runtime.Equal(left, right)), nil
	case "<", ">", "<=", ">=":
	default:
		return nil, typeError("unknown comparison operator '%s'", op)
	}
	order, err := runtime.Compare(left, right)
	if err != nil {
		return nil, typeError("'%s' not supported: %v", op, err)
	}
	switch op {
	case "<":
		return runtime.Bool(order < 0), nil
	case ">":
		return runtime.Bool(order > 0), nil
	case "<=":
		return runtime.Bool(order <= 0), nil
	default:
		return runtime.Bool(order >= 0), nil
	}
}
