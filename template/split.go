package template

import (
	"github.com/ava12/nlgram/value"
)

// Split enumerates substitutions that merge to v. Each returned assignment has Slots() elements,
// unbound slots are null. Returns nil if v cannot be produced by the template.
func (t *Template) Split(v value.Value) [][]value.Value {
	raw := t.root.split(v)
	if len(raw) == 0 {
		return nil
	}

	result := make([][]value.Value, 0, len(raw))
	bound := make([]bool, t.slots)
	for _, bs := range raw {
		subs := make([]value.Value, t.slots)
		clear(bound)
		ok := true
		for _, b := range bs {
			if bound[b.index] && !subs[b.index].Equal(b.value) {
				ok = false
				break
			}
			bound[b.index] = true
			subs[b.index] = b.value
		}
		if ok {
			result = append(result, subs)
		}
	}
	return result
}

// cross combines every partial assignment of acc with every one of next.
func cross(acc, next [][]binding) [][]binding {
	result := make([][]binding, 0, len(acc)*len(next))
	for _, a := range acc {
		for _, b := range next {
			c := make([]binding, 0, len(a)+len(b))
			c = append(c, a...)
			result = append(result, append(c, b...))
		}
	}
	return result
}

func (n literalNode) required() bool {
	return !n.value.IsNull()
}

func (n literalNode) split(v value.Value) [][]binding {
	if n.value.Equal(v) {
		return [][]binding{nil}
	}
	return nil
}

func (n varNode) required() bool {
	return !n.optional
}

func (n varNode) split(v value.Value) [][]binding {
	if !n.optional && v.IsNull() {
		return nil
	}
	return [][]binding{{{n.index, v}}}
}

func (n *listNode) required() bool {
	for _, item := range n.items {
		if !item.spread && item.node.required() {
			return true
		}
	}
	return false
}

// split assigns contiguous runs of list elements to template items in order.
// A plain item takes one element or none, a spread takes a run of any length.
// A plain item left empty is never followed by a spread taking a non-empty run:
// that run could be started by the plain item instead, giving the same merge.
func (n *listNode) split(v value.Value) [][]binding {
	var elems []value.Value
	switch v.Kind() {
	case value.NullKind:
	case value.ListKind:
		elems = v.Items()
	default:
		return nil
	}

	var (
		result [][]binding
		walk   func(index, pos int, acc [][]binding, emptyPlain bool)
	)
	walk = func(index, pos int, acc [][]binding, emptyPlain bool) {
		if capacity := n.capacity[index]; capacity >= 0 && len(elems)-pos > capacity {
			return
		}
		if index == len(n.items) {
			result = append(result, acc...)
			return
		}

		item := n.items[index]
		if item.spread {
			last := len(elems)
			if emptyPlain {
				last = pos
			}
			for end := pos; end <= last; end++ {
				if subs := item.node.split(value.ListOrNull(elems[pos:end]...)); len(subs) > 0 {
					walk(index+1, end, cross(acc, subs), false)
				}
			}
			return
		}

		if !item.node.required() {
			if subs := item.node.split(value.Null); len(subs) > 0 {
				walk(index+1, pos, cross(acc, subs), true)
			}
		}
		if pos < len(elems) {
			if subs := item.node.split(elems[pos]); len(subs) > 0 {
				walk(index+1, pos+1, cross(acc, subs), false)
			}
		}
	}
	walk(0, 0, [][]binding{nil}, false)
	return result
}

func (n *dictNode) required() bool {
	for _, item := range n.items {
		if !item.spread && item.node.required() {
			return true
		}
	}
	return false
}

// share is the part of a dict pair given to one template item.
type share struct {
	owner int
	value value.Value
}

// owners lists the items that can take a pair under key, named item first.
// Owners of list elements follow template order instead.
// A required named item is the only owner of a scalar under its key.
func (n *dictNode) owners(key string, spreads []int, list bool) (owners []int, named int) {
	named = -1
	index, has := n.keys[key]
	if has {
		named = index
		if !list {
			if n.items[index].node.required() {
				return []int{index}, named
			}
			return append([]int{index}, spreads...), named
		}
	}
	if !list {
		return spreads, named
	}
	for _, s := range spreads {
		if has && index < s {
			owners = append(owners, index)
			has = false
		}
		owners = append(owners, s)
	}
	if has {
		owners = append(owners, index)
	}
	return owners, named
}

// alternatives enumerates the ways one dict pair can be shared among its owners.
// A scalar goes to a single owner. List elements under one key are cut into contiguous runs,
// one run per owner in template order, since merging concatenates lists in that order.
// A required named item never gets an empty run.
func (n *dictNode) alternatives(p value.Pair, spreads []int) [][]share {
	list := p.Value.Kind() == value.ListKind && p.Value.Len() > 0
	owners, named := n.owners(p.Key, spreads, list)
	if len(owners) == 0 {
		return nil
	}

	if !list {
		result := make([][]share, len(owners))
		for i, owner := range owners {
			result[i] = []share{{owner, p.Value}}
		}
		return result
	}

	elems := p.Value.Items()
	required := named >= 0 && n.items[named].node.required()
	var (
		result [][]share
		walk   func(oi, pos int, acc []share)
	)
	walk = func(oi, pos int, acc []share) {
		owner := owners[oi]
		first := pos
		if required && owner == named {
			first = pos + 1
		}
		last := len(elems)
		if oi == len(owners)-1 {
			first = max(first, last)
		}
		for end := first; end <= last; end++ {
			next := acc
			if end > pos {
				next = append(acc[:len(acc):len(acc)], share{owner, value.List(elems[pos:end]...)})
			}
			if oi == len(owners)-1 {
				result = append(result, next)
			} else {
				walk(oi+1, end, next)
			}
		}
	}
	walk(0, 0, nil)
	return result
}

// split distributes dict pairs among template items: a pair goes either to the named item
// with the same key or to any spread item, list pairs may be shared among several of them.
func (n *dictNode) split(v value.Value) [][]binding {
	var pairs []value.Pair
	switch v.Kind() {
	case value.NullKind:
	case value.DictKind:
		pairs = v.Pairs()
	default:
		return nil
	}

	var spreads []int
	for i, item := range n.items {
		if item.spread {
			spreads = append(spreads, i)
		}
	}

	options := make([][][]share, len(pairs))
	for i, p := range pairs {
		options[i] = n.alternatives(p, spreads)
		if len(options[i]) == 0 {
			return nil
		}
	}

	var result [][]binding
	chosen := make([][]share, len(pairs))
	var walk func(pi int)
	walk = func(pi int) {
		if pi < len(pairs) {
			for _, option := range options[pi] {
				chosen[pi] = option
				walk(pi + 1)
			}
			return
		}

		acc := [][]binding{nil}
		for i, item := range n.items {
			var (
				own []value.Pair
				sub = value.Null
			)
			for pi, shares := range chosen {
				for _, s := range shares {
					if s.owner == i {
						own = append(own, value.Pair{Key: pairs[pi].Key, Value: s.value})
						sub = s.value
					}
				}
			}
			if item.spread {
				sub = value.DictOrNull(own...)
			}
			subs := item.node.split(sub)
			if len(subs) == 0 {
				return
			}
			acc = cross(acc, subs)
		}
		result = append(result, acc...)
	}
	walk(0)
	return result
}
