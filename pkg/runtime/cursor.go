package runtime

import "fmt"

// Cursor walks an iterable value by position. Lists are read live, so
// elements appended during iteration are visited.
type Cursor struct {
	list  *ListValue
	items []Value
	index int
}

func NewCursor(v Value) (*Cursor, error) {
	switch val := v.(type) {
	case *ListValue:
		return &Cursor{list: val}, nil
	case StringValue:
		runes := []rune(val.Val)
		items := make([]Value, len(runes))
		for idx, r := range runes {
			items[idx] = String(string(r))
		}
		return &Cursor{items: items}, nil
	case *MapValue:
		keys := val.Keys()
		items := make([]Value, len(keys))
		for idx, key := range keys {
			items[idx] = String(key)
		}
		return &Cursor{items: items}, nil
	default:
		return nil, fmt.Errorf("%s value is not iterable", TypeName(v))
	}
}

// Next returns the next element, or false once the source is exhausted.
func (c *Cursor) Next() (Value, bool) {
	if c.list != nil {
		if c.index >= c.list.Len() {
			return nil, false
		}
		v := c.list.Elements[c.index]
		c.index++
		return v, true
	}
	if c.index >= len(c.items) {
		return nil, false
	}
	v := c.items[c.index]
	c.index++
	return v, true
}
