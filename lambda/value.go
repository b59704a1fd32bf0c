package lambda

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/ava12/nlgram/value"
)

const cacheSize = 4096

// parsed maps expression text to Expr; values are immutable, so entries are shared between goroutines.
var parsed *lru.Cache

func init() {
	var e error
	if parsed, e = lru.New(cacheSize); e != nil {
		panic(e)
	}
}

// Encode returns the value carrying x: canonical text or null for unknown.
func Encode(x Expr) value.Value {
	if x == nil {
		return value.Null
	}
	return value.String(x.String())
}

// Decode returns the expression carried by v, nil for null.
func Decode(v value.Value) (Expr, error) {
	switch v.Kind() {
	case value.NullKind:
		return nil, nil
	case value.StringKind:
	default:
		return nil, notLambdaError(v)
	}

	text := v.Str()
	if x, found := parsed.Get(text); found {
		return x.(Expr), nil
	}
	x, e := Parse(text)
	if e != nil {
		return nil, e
	}
	parsed.Add(text, x)
	return x, nil
}
