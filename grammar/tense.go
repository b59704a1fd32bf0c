package grammar

import (
	"fmt"
	"sort"
)

// Tense maps grammatical categories to their values, e.g. {"count": "plural", "person": "3"}.
// A category missing from a tense is compatible with any value.
type Tense map[string]string

type conflict struct {
	category, want, was string
}

func (c conflict) String() string {
	return fmt.Sprintf("%s should be %s (was: %s)", c.category, c.want, c.was)
}

// Clone returns a copy of t, never nil.
func (t Tense) Clone() Tense {
	result := make(Tense, len(t))
	for k, v := range t {
		result[k] = v
	}
	return result
}

// Agree reports whether t and o have no conflicting categories.
func (t Tense) Agree(o Tense) bool {
	for k, v := range t {
		if x, has := o[k]; has && x != v {
			return false
		}
	}
	return true
}

func (t Tense) conflicts(o Tense) []conflict {
	var result []conflict
	for k, v := range t {
		if x, has := o[k]; has && x != v {
			result = append(result, conflict{k, v, x})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].category < result[j].category
	})
	return result
}

// Check returns messages for categories where o disagrees with t, sorted by category.
func (t Tense) Check(o Tense) []string {
	return messages(t.conflicts(o))
}

func messages(cs []conflict) []string {
	if len(cs) == 0 {
		return nil
	}
	result := make([]string, len(cs))
	for i, c := range cs {
		result[i] = c.String()
	}
	return result
}

// Union copies all categories of o into t. t must not be nil.
func (t Tense) Union(o Tense) {
	for k, v := range o {
		t[k] = v
	}
}

// Intersect returns categories on which t and o agree.
func (t Tense) Intersect(o Tense) Tense {
	result := make(Tense)
	for k, v := range t {
		if x, has := o[k]; has && x == v {
			result[k] = v
		}
	}
	return result
}

// UnionChecked narrows t using a list of alternative tenses.
// If none of the alternatives agrees with t, t is left unchanged and messages for the
// alternative with the fewest conflicts are returned.
// Otherwise t receives the categories all agreeing alternatives share.
// Empty alternatives list is always accepted.
func (t Tense) UnionChecked(alternatives []Tense) []string {
	if len(alternatives) == 0 {
		return nil
	}

	var (
		agreeing []Tense
		best     []conflict
	)
	for _, a := range alternatives {
		cs := t.conflicts(a)
		if len(cs) == 0 {
			agreeing = append(agreeing, a)
		} else if best == nil || len(cs) < len(best) {
			best = cs
		}
	}
	if len(agreeing) == 0 {
		return messages(best)
	}

	common := agreeing[0]
	for _, a := range agreeing[1:] {
		common = common.Intersect(a)
	}
	t.Union(common)
	return nil
}
