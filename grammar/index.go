package grammar

import (
	"math"
)

// IndexedRule is a rule prepared for parsing.
type IndexedRule struct {
	Rule *Rule

	// Symbol is the LHS symbol id.
	Symbol int

	// Offset is the first of len(RHS)+1 consecutive integers reserved for the rule,
	// Offset+cursor identifies a rule position.
	Offset int

	// RHS contains symbol ids for symbol terms and -1 for terminals.
	RHS []int
}

// Index groups enabled rules by symbol and assigns disjoint position offsets.
// Rules with merge score of negative infinity are dropped.
type Index struct {
	// Names contains symbol names sorted, symbol id is the position in Names.
	Names []string

	// Ids maps symbol names to ids.
	Ids map[string]int

	// Start is the start symbol id.
	Start int

	// Rules contains enabled rules in definition order.
	Rules []*IndexedRule

	// ByLHS maps symbol id to indices in Rules.
	ByLHS [][]int

	// MaxIndex is the total size of all rule offset ranges.
	MaxIndex int
}

func buildIndex(g *Grammar) *Index {
	names := sortedNames(g.rules)
	ix := &Index{
		Names: names,
		Ids:   make(map[string]int, len(names)),
		ByLHS: make([][]int, len(names)),
	}
	for i, name := range names {
		ix.Ids[name] = i
	}
	ix.Start = ix.Ids[g.start]

	for _, r := range g.rules {
		if math.IsInf(r.Merge.Score, -1) {
			continue
		}

		ir := &IndexedRule{
			Rule:   r,
			Symbol: ix.Ids[r.LHS],
			Offset: ix.MaxIndex,
			RHS:    make([]int, len(r.RHS)),
		}
		for i, t := range r.RHS {
			if t.Kind == SymbolTerm {
				ir.RHS[i] = ix.Ids[t.Name]
			} else {
				ir.RHS[i] = -1
			}
		}
		ix.MaxIndex += len(r.RHS) + 1
		ix.ByLHS[ir.Symbol] = append(ix.ByLHS[ir.Symbol], len(ix.Rules))
		ix.Rules = append(ix.Rules, ir)
	}
	return ix
}

// RulesFor returns enabled rules for a symbol name in definition order.
func (ix *Index) RulesFor(name string) []*IndexedRule {
	id, found := ix.Ids[name]
	if !found {
		return nil
	}
	result := make([]*IndexedRule, len(ix.ByLHS[id]))
	for i, ri := range ix.ByLHS[id] {
		result[i] = ix.Rules[ri]
	}
	return result
}
