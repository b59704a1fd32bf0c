// Package grammar defines the data model shared by parser, generator, and corrector:
// terms, rules with merge and split semantics, the lexer contract, tokens and matches,
// tenses, derivations, and the grammar index.
package grammar

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ava12/nlgram/internal/ints"
	"github.com/ava12/nlgram/template"
	"github.com/ava12/nlgram/value"
)

// TermKind tells what a rule position refers to.
type TermKind int8

const (
	// SymbolTerm refers to rules with the same left-hand side.
	SymbolTerm TermKind = iota
	// LiteralTerm refers to exact token text, matched via Token.Literals.
	LiteralTerm
	// TypeTerm refers to a lexer-defined token class, matched via Token.Types.
	TypeTerm
)

// Term is a single rule position.
type Term struct {
	Kind TermKind
	Name string
}

// Symbol creates a symbol reference.
func Symbol(name string) Term {
	return Term{SymbolTerm, name}
}

// Literal creates a literal text term.
func Literal(text string) Term {
	return Term{LiteralTerm, text}
}

// Type creates a token class term.
func Type(name string) Term {
	return Term{TypeTerm, name}
}

// IsTerminal reports whether the term is matched against tokens.
func (t Term) IsTerminal() bool {
	return t.Kind != SymbolTerm
}

// String renders term as $name, 'literal', or %type.
func (t Term) String() string {
	switch t.Kind {
	case SymbolTerm:
		return "$" + t.Name
	case LiteralTerm:
		return strconv.Quote(t.Name)
	default:
		return "%" + t.Name
	}
}

// Merger builds a rule value from child values, one per right-hand side position.
type Merger interface {
	Merge(children []value.Value) (value.Value, error)
}

// Splitter enumerates per-position child values that merge to a rule value.
type Splitter interface {
	Split(v value.Value) [][]value.Value
}

// MergeFunc adapts a function to Merger.
type MergeFunc func(children []value.Value) (value.Value, error)

func (f MergeFunc) Merge(children []value.Value) (value.Value, error) {
	return f(children)
}

// SplitFunc adapts a function to Splitter.
type SplitFunc func(v value.Value) [][]value.Value

func (f SplitFunc) Split(v value.Value) [][]value.Value {
	return f(v)
}

// Semantics pairs a score with a behavior.
// A rule whose merge score is negative infinity is disabled,
// a rule whose split score is negative infinity is never generated.
type Semantics[F any] struct {
	Score float64
	Func  F
}

// Rule is a single production.
type Rule struct {
	LHS string
	RHS []Term

	// Merge is used by parser. Nil Func is replaced with template.Default on validation.
	Merge Semantics[Merger]

	// Split is used by generator. Nil Func is replaced with template.Default on validation.
	Split Semantics[Splitter]

	// Precedence lists RHS indices visited first by corrector, these positions establish the tense.
	Precedence []int

	// Tense is implied by the rule itself, may be nil.
	Tense Tense
}

// String renders rule as "$lhs -> term term".
func (r *Rule) String() string {
	sb := &strings.Builder{}
	sb.WriteString("$" + r.LHS + " ->")
	for _, t := range r.RHS {
		sb.WriteByte(' ')
		sb.WriteString(t.String())
	}
	return sb.String()
}

// Grammar is an immutable rule set. Must be created with New.
type Grammar struct {
	start string
	lexer Lexer
	rules []*Rule

	once  sync.Once
	index *Index
}

type slotter interface {
	Slots() int
}

// New validates rules and creates a grammar.
// Returns an error if start has no rules, a symbol is referenced but has no rules,
// a terminal is unknown to lexer, a semantics arity does not match RHS length,
// or a precedence list is invalid.
func New(start string, lexer Lexer, rules []*Rule) (*Grammar, error) {
	g := &Grammar{start: start, lexer: lexer, rules: make([]*Rule, len(rules))}
	defined := make(map[string]bool)
	for _, r := range rules {
		defined[r.LHS] = true
	}
	if !defined[start] {
		return nil, unknownStartError(start)
	}

	for i, r := range rules {
		rule := *r
		if e := validateRule(&rule, defined, lexer); e != nil {
			return nil, e
		}
		g.rules[i] = &rule
	}
	return g, nil
}

func validateRule(r *Rule, defined map[string]bool, lexer Lexer) error {
	for _, t := range r.RHS {
		switch {
		case t.Kind == SymbolTerm && !defined[t.Name]:
			return unknownSymbolError(r, t)
		case t.Kind != SymbolTerm && !lexer.Known(t):
			return unknownTerminalError(r, t)
		}
	}

	arity := len(r.RHS)
	if r.Merge.Func == nil {
		r.Merge.Func = template.Default(arity)
	} else if s, ok := r.Merge.Func.(slotter); ok && s.Slots() != arity {
		return mergeArityError(r, s.Slots())
	}
	if r.Split.Func == nil {
		r.Split.Func = template.Default(arity)
	} else if s, ok := r.Split.Func.(slotter); ok && s.Slots() != arity {
		return splitArityError(r, s.Slots())
	}

	seen := ints.NewSet()
	for _, p := range r.Precedence {
		if p < 0 || p >= arity || seen.Contains(p) {
			return precedenceError(r, p)
		}
		seen.Add(p)
	}
	return nil
}

// MustNew is like New but panics on error.
func MustNew(start string, lexer Lexer, rules []*Rule) *Grammar {
	g, e := New(start, lexer, rules)
	if e != nil {
		panic(e)
	}
	return g
}

// Start returns start symbol name.
func (g *Grammar) Start() string {
	return g.start
}

// Lexer returns grammar lexer.
func (g *Grammar) Lexer() Lexer {
	return g.lexer
}

// Rules returns validated rules in definition order. The slice must not be modified.
func (g *Grammar) Rules() []*Rule {
	return g.rules
}

// RulesFor returns rules with given left-hand side in definition order.
func (g *Grammar) RulesFor(lhs string) []*Rule {
	var result []*Rule
	for _, r := range g.rules {
		if r.LHS == lhs {
			result = append(result, r)
		}
	}
	return result
}

// Symbols returns sorted names of all defined symbols.
func (g *Grammar) Symbols() []string {
	return g.Index().Names
}

// Index returns the grammar index, building it on first use.
// The index is read-only and shared by concurrent calls.
func (g *Grammar) Index() *Index {
	g.once.Do(func() {
		g.index = buildIndex(g)
	})
	return g.index
}

func sortedNames(rules []*Rule) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range rules {
		if !seen[r.LHS] {
			seen[r.LHS] = true
			names = append(names, r.LHS)
		}
	}
	sort.Strings(names)
	return names
}
