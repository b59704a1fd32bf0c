// Package value defines generic tree-shaped semantic values.
//
// A Value is null, a boolean, a number, a string, an ordered list of values,
// or a string-keyed mapping of values. The zero Value is null.
// Values are immutable: constructors copy their arguments and accessors
// return slices that must not be modified.
package value

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Kind is the variant tag of a Value.
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ListKind
	DictKind
)

var kindNames = [...]string{"null", "bool", "number", "string", "list", "dict"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Pair is a dict entry.
type Pair struct {
	Key   string
	Value Value
}

// Value is a generic semantic value.
type Value struct {
	kind Kind
	num  float64
	str  string
	list []Value
	dict []Pair
}

// Null is the null value.
var Null = Value{}

// Bool creates boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: BoolKind, num: 1}
	}
	return Value{kind: BoolKind}
}

// Number creates numeric value.
func Number(n float64) Value {
	return Value{kind: NumberKind, num: n}
}

// String creates string value.
func String(s string) Value {
	return Value{kind: StringKind, str: s}
}

// List creates list value, items are copied.
func List(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: ListKind, list: list}
}

// Dict creates mapping value. Entries are sorted by key, for duplicate keys the last entry wins.
func Dict(pairs ...Pair) Value {
	dict := make([]Pair, len(pairs))
	copy(dict, pairs)
	sort.SliceStable(dict, func(i, j int) bool {
		return dict[i].Key < dict[j].Key
	})

	j := 0
	for i := range dict {
		if j > 0 && dict[j-1].Key == dict[i].Key {
			dict[j-1] = dict[i]
		} else {
			dict[j] = dict[i]
			j++
		}
	}
	return Value{kind: DictKind, dict: dict[:j]}
}

// ListOrNull creates list value or returns null if there are no items.
func ListOrNull(items ...Value) Value {
	if len(items) == 0 {
		return Null
	}
	return List(items...)
}

// DictOrNull creates mapping value or returns null if there are no entries.
func DictOrNull(pairs ...Pair) Value {
	if len(pairs) == 0 {
		return Null
	}
	return Dict(pairs...)
}

// Kind returns variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull tells whether v is null.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// Bool returns boolean content or false.
func (v Value) Bool() bool {
	return v.kind == BoolKind && v.num != 0
}

// Number returns numeric content or 0.
func (v Value) Number() float64 {
	if v.kind != NumberKind {
		return 0
	}
	return v.num
}

// Str returns string content or empty string.
func (v Value) Str() string {
	return v.str
}

// Items returns list items, nil for non-list values.
func (v Value) Items() []Value {
	return v.list
}

// Pairs returns dict entries sorted by key, nil for non-dict values.
func (v Value) Pairs() []Pair {
	return v.dict
}

// Len returns the number of list items or dict entries.
func (v Value) Len() int {
	switch v.kind {
	case ListKind:
		return len(v.list)
	case DictKind:
		return len(v.dict)
	}
	return 0
}

// Get returns dict entry value by key.
func (v Value) Get(key string) (Value, bool) {
	i := sort.Search(len(v.dict), func(i int) bool {
		return v.dict[i].Key >= key
	})
	if i < len(v.dict) && v.dict[i].Key == key {
		return v.dict[i].Value, true
	}
	return Null, false
}

// Equal tells whether values are structurally equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.num == o.num
	case NumberKind:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case StringKind:
		return v.str == o.str
	case ListKind:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case DictKind:
		if len(v.dict) != len(o.dict) {
			return false
		}
		for i := range v.dict {
			if v.dict[i].Key != o.dict[i].Key || !v.dict[i].Value.Equal(o.dict[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Hash returns structural hash: equal values have equal hashes.
func (v Value) Hash() uint64 {
	d := xxhash.New()
	v.hashTo(d)
	return d.Sum64()
}

func (v Value) hashTo(d *xxhash.Digest) {
	var buf [9]byte
	buf[0] = byte(v.kind)
	switch v.kind {
	case BoolKind, NumberKind:
		bits := math.Float64bits(v.num)
		if v.num == 0 {
			bits = 0
		}
		for i := 1; i < 9; i++ {
			buf[i] = byte(bits)
			bits >>= 8
		}
		d.Write(buf[:])
	case StringKind:
		d.Write(buf[:1])
		writeString(d, v.str)
	case ListKind:
		d.Write(buf[:1])
		writeLen(d, len(v.list))
		for _, item := range v.list {
			item.hashTo(d)
		}
	case DictKind:
		d.Write(buf[:1])
		writeLen(d, len(v.dict))
		for _, p := range v.dict {
			writeString(d, p.Key)
			p.Value.hashTo(d)
		}
	default:
		d.Write(buf[:1])
	}
}

func writeLen(d *xxhash.Digest, n int) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(n)
		n >>= 8
	}
	d.Write(buf[:])
}

func writeString(d *xxhash.Digest, s string) {
	writeLen(d, len(s))
	d.WriteString(s)
}

// String renders value in template literal syntax: null, true, 17.5, 'text', [a, b], {k: v}.
// Top level strings are rendered without quotes.
func (v Value) String() string {
	if v.kind == StringKind {
		return v.str
	}

	sb := &strings.Builder{}
	v.render(sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.kind {
	case NullKind:
		sb.WriteString("null")
	case BoolKind:
		sb.WriteString(strconv.FormatBool(v.Bool()))
	case NumberKind:
		sb.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
	case StringKind:
		sb.WriteString(quote(v.str))
	case ListKind:
		sb.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.render(sb)
		}
		sb.WriteByte(']')
	case DictKind:
		sb.WriteByte('{')
		for i, p := range v.dict {
			if i > 0 {
				sb.WriteString(", ")
			}
			if isIdent(p.Key) {
				sb.WriteString(p.Key)
			} else {
				sb.WriteString(quote(p.Key))
			}
			sb.WriteString(": ")
			p.Value.render(sb)
		}
		sb.WriteByte('}')
	}
}

func quote(s string) string {
	if strings.ContainsRune(s, '\'') {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}
