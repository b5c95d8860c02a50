package runtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

func (NullValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (v BoolValue) MarshalJSON() ([]byte, error) { return json.Marshal(v.Val) }

func (v IntegerValue) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(v.Val, 10)), nil
}

func (v FloatValue) MarshalJSON() ([]byte, error) {
	if math.IsNaN(v.Val) || math.IsInf(v.Val, 0) {
		return nil, fmt.Errorf("json: unsupported float value %s", FormatFloat(v.Val))
	}
	return []byte(FormatFloat(v.Val)), nil
}

func (v StringValue) MarshalJSON() ([]byte, error) { return marshalString(v.Val) }

func (l *ListValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for idx, el := range l.Elements {
		if idx > 0 {
			buf.WriteByte(',')
		}
		data, err := marshalValue(el)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (m *MapValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, key := range m.keys {
		if idx > 0 {
			buf.WriteByte(',')
		}
		keyData, err := marshalString(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		data, err := marshalValue(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v Value) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	m, ok := v.(json.Marshaler)
	if !ok {
		return nil, fmt.Errorf("json: cannot encode %s value", TypeName(v))
	}
	return m.MarshalJSON()
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EncodeJSON writes v as JSON indented with two spaces and no trailing newline.
func EncodeJSON(v Value) ([]byte, error) {
	data, err := marshalValue(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeJSON reads one JSON document, keeping object key order.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			list := NewList()
			for dec.More() {
				el, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				list.Append(el)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("json: object key %v is not a string", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		}
		return nil, fmt.Errorf("json: unexpected delimiter %v", t)
	default:
		return FromGo(tok)
	}
}

// FromGo converts decoded JSON/YAML data into a runtime value.
func FromGo(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return Float(float64(v)), nil
		}
		return Int(int64(v)), nil
	case float64:
		return Float(v), nil
	case json.Number:
		return numberFromText(v.String())
	case string:
		return String(v), nil
	case []any:
		list := NewList()
		for _, el := range v {
			conv, err := FromGo(el)
			if err != nil {
				return nil, err
			}
			list.Append(conv)
		}
		return list, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, key := range keys {
			conv, err := FromGo(v[key])
			if err != nil {
				return nil, err
			}
			m.Set(key, conv)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported literal value %T", raw)
	}
}

func numberFromText(text string) (Value, error) {
	if !strings.ContainsAny(text, ".eE") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(n), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", text, err)
	}
	return Float(f), nil
}
