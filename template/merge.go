package template

import (
	"github.com/ava12/nlgram/value"
)

// Merge substitutes subs into the template. Missing trailing substitutions are null.
// Returns an error if there are more substitutions than slots or if merged shapes are incompatible.
func (t *Template) Merge(subs []value.Value) (value.Value, error) {
	if len(subs) > t.slots {
		return value.Null, arityError(t.slots, len(subs))
	}
	return t.root.merge(subs)
}

func (n literalNode) merge([]value.Value) (value.Value, error) {
	return n.value, nil
}

func (n varNode) merge(subs []value.Value) (value.Value, error) {
	if n.index < len(subs) {
		return subs[n.index], nil
	}
	return value.Null, nil
}

func (n *listNode) merge(subs []value.Value) (value.Value, error) {
	var items []value.Value
	for _, item := range n.items {
		v, e := item.node.merge(subs)
		if e != nil {
			return value.Null, e
		}

		switch {
		case v.IsNull():
		case !item.spread:
			items = append(items, v)
		case v.Kind() == value.ListKind:
			items = append(items, v.Items()...)
		default:
			return value.Null, listSpreadError(v)
		}
	}
	return value.ListOrNull(items...), nil
}

type dictBuilder struct {
	keys   []string
	values map[string]value.Value
}

func (b *dictBuilder) put(key string, v value.Value) error {
	old, has := b.values[key]
	if !has {
		b.keys = append(b.keys, key)
		b.values[key] = v
		return nil
	}

	oldList := old.Kind() == value.ListKind
	newList := v.Kind() == value.ListKind
	switch {
	case oldList && newList:
		items := make([]value.Value, 0, old.Len()+v.Len())
		items = append(items, old.Items()...)
		b.values[key] = value.List(append(items, v.Items()...)...)
	case oldList:
		return listMergeError(key)
	case newList:
		return singletonMergeError(key)
	default:
		b.values[key] = v
	}
	return nil
}

func (b *dictBuilder) result() value.Value {
	pairs := make([]value.Pair, len(b.keys))
	for i, k := range b.keys {
		pairs[i] = value.Pair{Key: k, Value: b.values[k]}
	}
	return value.DictOrNull(pairs...)
}

func (n *dictNode) merge(subs []value.Value) (value.Value, error) {
	b := &dictBuilder{values: make(map[string]value.Value)}
	for _, item := range n.items {
		v, e := item.node.merge(subs)
		if e != nil {
			return value.Null, e
		}

		switch {
		case v.IsNull():
		case !item.spread:
			e = b.put(item.key, v)
		case v.Kind() == value.DictKind:
			for _, p := range v.Pairs() {
				if p.Value.IsNull() {
					continue
				}
				if e = b.put(p.Key, p.Value); e != nil {
					break
				}
			}
		default:
			e = dictSpreadError(v)
		}
		if e != nil {
			return value.Null, e
		}
	}
	return b.result(), nil
}
