// Package parser implements a weighted Earley chart parser.
//
// Ambiguous paths converge on shared states, each state keeps only its best scoring
// candidate, so the parser returns the single best derivation in polynomial time.
// A non-zero window lets the parser skip unexpected tokens at a score penalty.
package parser

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/ava12/nlgram/grammar"
	"github.com/ava12/nlgram/source"
	"github.com/ava12/nlgram/value"
)

// Options control a Parser. Zero value means strict parsing without logging.
type Options struct {
	// Name is the source name used in error messages.
	Name string

	// Window is the max number of consecutive tokens that may be skipped.
	// Zero window means strict parsing: failure is reported as an error listing expected terminals.
	// Otherwise failure is reported as nil result and nil error.
	Window int

	// Penalty is added to derivation score for each skipped token, normally negative.
	Penalty float64

	// Debug enables per-column chart dumps at debug level.
	Debug bool

	// Logger receives debug output, nil means no logging.
	Logger *zap.Logger
}

// Parser is safe for concurrent use: each call owns its chart.
type Parser struct {
	grammar *grammar.Grammar
	opts    Options
	log     *zap.Logger
}

// New creates a parser. opts may be nil.
func New(g *grammar.Grammar, opts *Options) *Parser {
	p := &Parser{grammar: g}
	if opts != nil {
		p.opts = *opts
	}
	if p.opts.Window < 0 {
		p.opts.Window = 0
	}
	p.log = p.opts.Logger
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p
}

// Parse is a shortcut for New(g, opts).Parse(text).
func Parse(g *grammar.Grammar, text string, opts *Options) (*grammar.Derivation, error) {
	return New(g, opts).Parse(text)
}

// Value is a shortcut for New(g, opts).Value(text).
func Value(g *grammar.Grammar, text string, opts *Options) (value.Value, bool, error) {
	return New(g, opts).Value(text)
}

// Parse returns the best scoring derivation of the start symbol covering text.
// Returns nil result and nil error if there is no derivation and window is not zero.
// Returns an error in strict mode or if a rule merge fails while building the result.
func (p *Parser) Parse(text string) (*grammar.Derivation, error) {
	src := source.NewString(p.opts.Name, text)
	tokens := p.grammar.Lexer().Lex(text)
	ix := p.grammar.Index()
	c := newChart(ix, tokens)
	p.dumpColumn(c)

	strict := p.opts.Window == 0
	w := newWindow(p.opts.Window, p.opts.Penalty)
	for k := 1; k <= len(tokens); k++ {
		w.push(&c.col)
		scannable := w.allScannable(c)
		c.scan(scannable, k)
		p.dumpColumn(c)

		if strict && len(c.col.states) == 0 {
			return nil, unexpectedTokenError(src, tokens[k-1], c.expected(scannable))
		}
	}

	lastScannable := c.col.scannable
	w.push(&c.col)
	best := -1
	bestScore := math.Inf(-1)
	for _, idx := range w.allCompleted(c) {
		s := c.states[idx]
		if s.rule.Symbol == ix.Start && s.score > bestScore {
			best, bestScore = idx, s.score
		}
	}

	if best < 0 {
		p.log.Debug("no parse", zap.Int("tokens", len(tokens)), zap.Int("states", len(c.states)))
		if strict {
			return nil, unexpectedEoiError(src, c.expected(lastScannable))
		}
		return nil, nil
	}

	d, e := c.evaluate(best, make(map[int]*grammar.Derivation))
	if e != nil {
		return nil, e
	}

	p.log.Debug("parsed",
		zap.Int("tokens", len(tokens)),
		zap.Int("states", len(c.states)),
		zap.Int("candidates", len(c.candidates)),
		zap.Float64("score", d.Score),
		zap.Stringer("value", d.Value),
	)
	return d, nil
}

// Value returns the value of the best derivation, false if there is none.
func (p *Parser) Value(text string) (value.Value, bool, error) {
	d, e := p.Parse(text)
	if d == nil {
		return value.Null, false, e
	}
	return d.Value, true, nil
}

func (p *Parser) dumpColumn(c *chart) {
	if !p.opts.Debug {
		return
	}

	fields := []zap.Field{zap.Int("index", c.col.index)}
	if t := c.col.token; t != nil {
		var matches []string
		for k, m := range t.Literals {
			matches = append(matches, fmt.Sprintf("%q (score: %g)", k, m.Score))
		}
		for k, m := range t.Types {
			matches = append(matches, fmt.Sprintf("%%%s (score: %g)", k, m.Score))
		}
		sort.Strings(matches)
		fields = append(fields, zap.String("token", t.Text), zap.Strings("matches", matches))
	}

	states := make([]string, len(c.col.states))
	for i, idx := range c.col.states {
		states[i] = c.describe(idx)
	}
	fields = append(fields, zap.Strings("states", states))
	p.log.Debug("column", fields...)
}

func (c *chart) describe(idx int) string {
	s := c.states[idx]
	sb := &strings.Builder{}
	sb.WriteString("$" + s.rule.Rule.LHS + " ->")
	for i, t := range s.rule.Rule.RHS {
		if i == s.cursor {
			sb.WriteString(" ●")
		}
		sb.WriteString(" " + t.String())
	}
	if s.cursor == len(s.rule.Rule.RHS) {
		sb.WriteString(" ●")
	}
	fmt.Fprintf(sb, ", from: %d (score: %g)", s.start, s.score)
	return sb.String()
}
