// Package generator realizes values as derivations, the dual of parsing.
//
// To realize a symbol for a value the generator tries every rule for the symbol,
// splits the value into per-position candidates, and realizes each position in turn:
// terminals via the lexer inverse lookup, symbols recursively.
// Realizations are memoized by (term, value) within a call. A failing result is recorded
// before recursing, so a rule cannot use itself at the same (term, value), which makes
// self-referential rules terminate.
package generator

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/ava12/nlgram/grammar"
	"github.com/ava12/nlgram/internal/vmap"
	"github.com/ava12/nlgram/value"
)

// Generator is immutable and safe for concurrent use if each goroutine uses its own rng.
type Generator struct {
	grammar *grammar.Grammar
	policy  Policy
	log     *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithPolicy sets sampling policy, Proportional by default.
func WithPolicy(p Policy) Option {
	return func(g *Generator) {
		g.policy = p
	}
}

// WithLogger sets debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New creates a generator for g.
func New(g *grammar.Grammar, opts ...Option) *Generator {
	gen := &Generator{grammar: g, policy: Proportional{}, log: zap.NewNop()}
	for _, o := range opts {
		o(gen)
	}
	return gen
}

// Grammar returns generator grammar.
func (gen *Generator) Grammar() *grammar.Grammar {
	return gen.grammar
}

// Generate realizes v as the grammar start symbol. Returns nil if v cannot be realized.
func (gen *Generator) Generate(rng *rand.Rand, v value.Value) *grammar.Derivation {
	return gen.GenerateFromRules(rng, gen.rulesFor(gen.grammar.Start()), v)
}

// GenerateFromRules realizes v using one of rules at the top level and any grammar rules below.
// Returns nil if v cannot be realized.
func (gen *Generator) GenerateFromRules(rng *rand.Rand, rules []*grammar.Rule, v value.Value) *grammar.Derivation {
	c := &call{gen: gen, rng: rng, memo: vmap.New[grammar.Term, grammar.Node]()}
	d := c.fromRules(rules, v)
	if d == nil {
		gen.log.Debug("cannot realize", zap.Stringer("value", v), zap.Int("rules", len(rules)))
	} else {
		gen.log.Debug("realized", zap.Stringer("value", v), zap.Float64("score", d.Score), zap.Int("memo", c.memo.Len()))
	}
	return d
}

func (gen *Generator) rulesFor(symbol string) []*grammar.Rule {
	irs := gen.grammar.Index().RulesFor(symbol)
	result := make([]*grammar.Rule, len(irs))
	for i, ir := range irs {
		result[i] = ir.Rule
	}
	return result
}

type call struct {
	gen  *Generator
	rng  *rand.Rand
	memo *vmap.Map[grammar.Term, grammar.Node]
}

func (c *call) fromRules(rules []*grammar.Rule, v value.Value) *grammar.Derivation {
	var (
		options []*grammar.Derivation
		scores  []float64
	)
	for _, r := range rules {
		if math.IsInf(r.Split.Score, -1) {
			continue
		}

		for _, subs := range r.Split.Func.Split(v) {
			if d := c.fromCandidate(r, subs); d != nil {
				options = append(options, d)
				scores = append(scores, d.Score)
			}
		}
	}

	if len(options) == 0 {
		return nil
	}
	return options[c.gen.policy.Choose(c.rng, scores)]
}

func (c *call) fromCandidate(r *grammar.Rule, subs []value.Value) *grammar.Derivation {
	if len(subs) != len(r.RHS) {
		return nil
	}

	children := make([]grammar.Node, len(subs))
	score := r.Split.Score
	for i, t := range r.RHS {
		n := c.fromTerm(t, subs[i])
		if n == nil {
			return nil
		}
		children[i] = n
		score += grammar.ScoreOf(n)
	}

	d, e := grammar.NewDerivation(r, children)
	if e != nil {
		c.gen.log.Debug("candidate discarded", zap.Error(e))
		return nil
	}
	d.Score = score
	return d
}

func (c *call) fromTerm(t grammar.Term, v value.Value) grammar.Node {
	if n, found := c.memo.Get(t, v); found {
		return n
	}

	c.memo.Set(t, v, nil)
	var result grammar.Node
	if t.Kind == grammar.SymbolTerm {
		if d := c.fromRules(c.gen.rulesFor(t.Name), v); d != nil {
			result = d
		}
	} else if ms := c.gen.grammar.Lexer().Unlex(t, v); len(ms) > 0 {
		result = &grammar.Leaf{Term: t, Match: c.pickMatch(ms)}
	}
	c.memo.Set(t, v, result)
	return result
}

func (c *call) pickMatch(ms []*grammar.Match) *grammar.Match {
	if len(ms) == 1 {
		return ms[0]
	}
	scores := make([]float64, len(ms))
	for i, m := range ms {
		scores[i] = m.Score
	}
	return ms[c.gen.policy.Choose(c.rng, scores)]
}
