// Package corrector repairs agreement violations in a derivation.
//
// The corrector walks a derivation depth first, threading the current tense.
// A leaf whose tenses conflict with the current tense is replaced by a lexer alternative
// (see grammar.Fixer), a node whose rule conflicts with the current tense is regenerated
// from sibling rules that agree, reusing original subtrees wherever the regenerated tree
// needs the same (term, value). Children listed in rule precedence share the node tense,
// every other child is checked in its own empty tense.
package corrector

import (
	"math"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/ava12/nlgram/generator"
	"github.com/ava12/nlgram/grammar"
	"github.com/ava12/nlgram/internal/ints"
	"github.com/ava12/nlgram/internal/vmap"
)

const invalidPhrasing = "invalid phrasing"

// Issue describes a corrected (or uncorrectable) part of input.
type Issue struct {
	// Range is the byte range of original text, [0, 0] if the part has no input tokens.
	Range [2]int

	// Error lists violations joined with "; ".
	Error string

	// Original and Replacement are the rendered texts of the part before and after correction.
	// They are equal if the part could not be fixed.
	Original, Replacement string
}

// Result is the outcome of correction.
type Result struct {
	Derivation *grammar.Derivation
	Output     string
	Issues     []Issue
}

// Corrector is safe for concurrent use if each goroutine uses its own rng.
type Corrector struct {
	grammar   *grammar.Grammar
	generator *generator.Generator
	log       *zap.Logger
}

// Option configures a Corrector.
type Option func(*options)

type options struct {
	log    *zap.Logger
	policy generator.Policy
}

// WithLogger sets debug logger for the corrector and its generator.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithPolicy sets sampling policy used for regeneration.
func WithPolicy(p generator.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// New creates a corrector for g.
func New(g *grammar.Grammar, opts ...Option) *Corrector {
	o := options{log: zap.NewNop(), policy: generator.Proportional{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Corrector{
		grammar:   g,
		generator: generator.New(g, generator.WithPolicy(o.policy), generator.WithLogger(o.log)),
		log:       o.log,
	}
}

// Correct is a shortcut for New(g).Correct(rng, d).
func Correct(g *grammar.Grammar, rng *rand.Rand, d *grammar.Derivation) Result {
	return New(g).Correct(rng, d)
}

// Correct returns corrected copy of d. d itself is not modified. Never fails:
// parts that cannot be fixed are left in place and still reported.
// Nil d, e.g. a failed parse, gives an empty result.
func (c *Corrector) Correct(rng *rand.Rand, d *grammar.Derivation) Result {
	if d == nil {
		return Result{}
	}

	cc := &call{corrector: c, rng: rng, tense: grammar.Tense{}}
	nd, issues := cc.node(d)
	c.log.Debug("corrected", zap.Int("issues", len(issues)))
	return Result{
		Derivation: nd,
		Output:     grammar.Join(c.grammar.Lexer(), nd.Matches()),
		Issues:     issues,
	}
}

type call struct {
	corrector *Corrector
	rng       *rand.Rand
	tense     grammar.Tense
}

func (c *call) check(r *grammar.Rule) []string {
	if math.IsInf(r.Split.Score, -1) {
		return []string{invalidPhrasing}
	}
	return c.tense.Check(r.Tense)
}

func (c *call) child(n grammar.Node) (grammar.Node, []Issue) {
	switch n := n.(type) {
	case *grammar.Leaf:
		return c.leaf(n)
	case *grammar.Derivation:
		return c.node(n)
	}
	return n, nil
}

func (c *call) leaf(old *grammar.Leaf) (*grammar.Leaf, []Issue) {
	errs := c.tense.UnionChecked(old.Match.Tenses)
	if len(errs) == 0 {
		return old, nil
	}

	l := old
	lexer := c.corrector.grammar.Lexer()
	if f, ok := lexer.(grammar.Fixer); ok {
		if alts := f.Fix(old.Match, c.tense); len(alts) > 0 {
			m := alts[c.rng.IntN(len(alts))]
			c.tense.UnionChecked(m.Tenses)
			l = &grammar.Leaf{Term: old.Term, Match: m, Token: old.Token}
		}
	}
	if l == old {
		c.corrector.log.Debug("leaf not fixed", zap.String("text", old.Match.Text), zap.Strings("errors", errs))
	}

	issue := Issue{
		Error:       strings.Join(errs, "; "),
		Original:    old.Match.Text,
		Replacement: l.Match.Text,
	}
	if old.Token != nil {
		issue.Range = [2]int{old.Token.Start, old.Token.End}
	}
	return l, []Issue{issue}
}

func (c *call) node(old *grammar.Derivation) (*grammar.Derivation, []Issue) {
	errs := c.check(old.Rule)
	d := old
	if len(errs) > 0 {
		d = c.rebuild(old)
	}
	c.tense.Union(d.Rule.Tense)

	children := make([]grammar.Node, len(d.Children))
	copy(children, d.Children)
	childIssues := make([][]Issue, len(children))
	checked := ints.NewSet()
	for _, i := range d.Rule.Precedence {
		checked.Add(i)
		children[i], childIssues[i] = c.child(children[i])
	}

	saved := c.tense
	for i := range children {
		if !checked.Contains(i) {
			c.tense = grammar.Tense{}
			children[i], childIssues[i] = c.child(children[i])
		}
	}
	c.tense = saved

	nd := &grammar.Derivation{Rule: d.Rule, Value: d.Value, Score: d.Score, Children: children}
	if len(errs) == 0 {
		var issues []Issue
		for _, is := range childIssues {
			issues = append(issues, is...)
		}
		return nd, issues
	}

	lexer := c.corrector.grammar.Lexer()
	issue := Issue{
		Error:       strings.Join(errs, "; "),
		Original:    grammar.Join(lexer, old.Matches()),
		Replacement: grammar.Join(lexer, nd.Matches()),
	}
	if start, end, ok := old.Span(); ok {
		issue.Range = [2]int{start, end}
	}
	return nd, []Issue{issue}
}

// rebuild regenerates old value from agreeing rules with the same LHS.
// Returns old if there is no such realization.
func (c *call) rebuild(old *grammar.Derivation) *grammar.Derivation {
	var rules []*grammar.Rule
	for _, r := range c.corrector.grammar.RulesFor(old.Rule.LHS) {
		if len(c.check(r)) == 0 {
			rules = append(rules, r)
		}
	}

	log := c.corrector.log.With(zap.Stringer("rule", old.Rule), zap.Stringer("value", old.Value))
	d := c.corrector.generator.GenerateFromRules(c.rng, rules, old.Value)
	if d == nil {
		log.Debug("cannot regenerate", zap.Int("candidates", len(rules)))
		return old
	}

	memo := vmap.New[grammar.Term, grammar.Node]()
	remember(old, memo)
	d = reuse(d, memo)
	log.Debug("regenerated", zap.Stringer("new", d.Rule), zap.Int("reusable", memo.Len()))
	return d
}

func remember(d *grammar.Derivation, memo *vmap.Map[grammar.Term, grammar.Node]) {
	for i, n := range d.Children {
		memo.Set(d.Rule.RHS[i], grammar.ValueOf(n), n)
		if sub, ok := n.(*grammar.Derivation); ok {
			remember(sub, memo)
		}
	}
}

// reuse returns a copy of d with subtrees replaced by remembered ones of the same term and value.
func reuse(d *grammar.Derivation, memo *vmap.Map[grammar.Term, grammar.Node]) *grammar.Derivation {
	children := make([]grammar.Node, len(d.Children))
	for i, n := range d.Children {
		if old, found := memo.Get(d.Rule.RHS[i], grammar.ValueOf(n)); found {
			children[i] = old
		} else if sub, ok := n.(*grammar.Derivation); ok {
			children[i] = reuse(sub, memo)
		} else {
			children[i] = n
		}
	}
	return &grammar.Derivation{Rule: d.Rule, Value: d.Value, Score: d.Score, Children: children}
}
