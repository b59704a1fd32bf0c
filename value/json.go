package value

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FromAny converts decoded JSON or YAML data (nil, bool, numbers, string, []any, map[string]any)
// to Value.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, e := t.Float64()
		return Number(f), e
	case string:
		return String(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, e := FromAny(item)
			if e != nil {
				return Null, e
			}
			items[i] = v
		}
		return List(items...), nil
	case map[string]any:
		pairs := make([]Pair, 0, len(t))
		for k, item := range t {
			v, e := FromAny(item)
			if e != nil {
				return Null, e
			}
			pairs = append(pairs, Pair{k, v})
		}
		return Dict(pairs...), nil
	}
	return Null, fmt.Errorf("cannot convert %T to value", x)
}

// Any converts v to plain Go data suitable for encoding/json.
func (v Value) Any() any {
	switch v.kind {
	case BoolKind:
		return v.Bool()
	case NumberKind:
		return v.num
	case StringKind:
		return v.str
	case ListKind:
		result := make([]any, len(v.list))
		for i, item := range v.list {
			result[i] = item.Any()
		}
		return result
	case DictKind:
		result := make(map[string]any, len(v.dict))
		for _, p := range v.dict {
			result[p.Key] = p.Value.Any()
		}
		return result
	}
	return nil
}

// MarshalJSON implements json.Marshaler, dict keys are emitted in sorted order.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var x any
	if e := json.Unmarshal(data, &x); e != nil {
		return e
	}

	res, e := FromAny(x)
	if e == nil {
		*v = res
	}
	return e
}

// Keys returns sorted dict keys.
func (v Value) Keys() []string {
	keys := make([]string, len(v.dict))
	for i, p := range v.dict {
		keys[i] = p.Key
	}
	sort.Strings(keys)
	return keys
}
