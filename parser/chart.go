package parser

import (
	"math"

	"github.com/ava12/nlgram/grammar"
	"github.com/ava12/nlgram/internal/ints"
	"github.com/ava12/nlgram/internal/queue"
)

const (
	unscored = iota
	scoring
	scored
)

// candidate is one way to reach a state: the state before the cursor moved (prev)
// plus either a completed state (down) or a token match (down < 0).
type candidate struct {
	prev  int
	down  int
	match *grammar.Match
	token int
	next  int
}

// state is a rule with a cursor and a start column; its end column is implicit.
// Candidates form a list in registration order; after scoring best holds the winner.
type state struct {
	rule   *grammar.IndexedRule
	cursor int
	start  int
	head   int
	tail   int
	best   int
	score  float64
	status int8
}

// column holds bookkeeping for states ending at one input position.
type column struct {
	index     int
	token     *grammar.Token
	states    []int
	completed []int
	scannable []int
	lookup    map[int]int
	nullable  map[int]int
}

// chart is the arena of all states and candidates of a single parse call.
type chart struct {
	ix         *grammar.Index
	tokens     []*grammar.Token
	states     []state
	candidates []candidate

	// wanted maps start*len(ix.Names)+symbol to states predicting symbol at column start.
	wanted    map[int][]int
	predicted *ints.Set
	agenda    *queue.Queue[int]
	col       column
}

func newChart(ix *grammar.Index, tokens []*grammar.Token) *chart {
	c := &chart{
		ix:         ix,
		tokens:     tokens,
		states:     make([]state, 0, 256),
		candidates: make([]candidate, 0, 256),
		wanted:     make(map[int][]int),
		predicted:  ints.NewSet(),
		agenda:     queue.New[int](),
		col: column{
			lookup:   make(map[int]int),
			nullable: make(map[int]int),
		},
	}
	c.predicted.Add(ix.Start)
	for _, ri := range ix.ByLHS[ix.Start] {
		c.addState(ix.Rules[ri], 0, 0)
	}
	c.fill()
	return c
}

func (c *chart) addState(r *grammar.IndexedRule, cursor, start int) int {
	idx := len(c.states)
	c.states = append(c.states, state{
		rule:   r,
		cursor: cursor,
		start:  start,
		head:   -1,
		tail:   -1,
		best:   -1,
		score:  math.Inf(-1),
	})
	c.col.states = append(c.col.states, idx)
	c.agenda.Append(idx)
	return idx
}

// copyState adds a scored copy of a state from an older column with adjusted score.
func (c *chart) copyState(idx int, penalty float64) int {
	s := c.states[idx]
	s.score += penalty
	c.states = append(c.states, s)
	return len(c.states) - 1
}

// advance registers a candidate for the state following prev by one position in the current column.
func (c *chart) advance(prev, down int, match *grammar.Match, token int) {
	p := c.states[prev]
	key := p.start*c.ix.MaxIndex + p.rule.Offset + p.cursor + 1
	idx, found := c.col.lookup[key]
	if !found {
		idx = c.addState(p.rule, p.cursor+1, p.start)
		c.col.lookup[key] = idx
	}

	ci := len(c.candidates)
	c.candidates = append(c.candidates, candidate{prev: prev, down: down, match: match, token: token, next: -1})
	s := &c.states[idx]
	if s.tail < 0 {
		s.head = ci
	} else {
		c.candidates[s.tail].next = ci
	}
	s.tail = ci
}

func (c *chart) wantedKey(start, symbol int) int {
	return start*len(c.ix.Names) + symbol
}

// fill runs prediction and completion over the current column until no new states appear,
// then scores all column states.
func (c *chart) fill() {
	here := c.col.index
	for {
		idx, ok := c.agenda.First()
		if !ok {
			break
		}

		s := c.states[idx]
		if s.cursor == len(s.rule.RHS) {
			for _, w := range c.wanted[c.wantedKey(s.start, s.rule.Symbol)] {
				c.advance(w, idx, nil, -1)
			}
			if s.start == 0 {
				c.col.completed = append(c.col.completed, idx)
			}
			if s.start == here {
				n, has := c.col.nullable[s.rule.Symbol]
				if !has || c.states[n].rule.Rule.Merge.Score < s.rule.Rule.Merge.Score {
					c.col.nullable[s.rule.Symbol] = idx
				}
			}
			continue
		}

		symbol := s.rule.RHS[s.cursor]
		if symbol < 0 {
			c.col.scannable = append(c.col.scannable, idx)
			continue
		}

		if n, has := c.col.nullable[symbol]; has {
			c.advance(idx, n, nil, -1)
		}
		key := c.wantedKey(here, symbol)
		c.wanted[key] = append(c.wanted[key], idx)
		if !c.predicted.Contains(symbol) {
			c.predicted.Add(symbol)
			for _, ri := range c.ix.ByLHS[symbol] {
				c.addState(c.ix.Rules[ri], 0, here)
			}
		}
	}

	for _, idx := range c.col.states {
		c.score(idx)
	}
}

// scan starts column k matching its token against scannable states.
func (c *chart) scan(scannable []int, k int) {
	token := c.tokens[k-1]
	c.col.index = k
	c.col.token = token
	c.col.states = nil
	c.col.completed = nil
	c.col.scannable = nil
	clear(c.col.lookup)
	clear(c.col.nullable)
	c.predicted.Clear()

	for _, idx := range scannable {
		s := c.states[idx]
		if m := token.Lookup(s.rule.Rule.RHS[s.cursor]); m != nil {
			c.advance(idx, -1, m, k-1)
		}
	}
	c.fill()
}

// score computes the best candidate of a state. Cyclic dependencies score as negative infinity.
// Ties keep the first registered candidate.
func (c *chart) score(idx int) float64 {
	s := &c.states[idx]
	switch s.status {
	case scored:
		return s.score
	case scoring:
		return math.Inf(-1)
	}

	if s.cursor == 0 {
		s.score = s.rule.Rule.Merge.Score
		s.status = scored
		return s.score
	}

	s.status = scoring
	best := -1
	bestScore := math.Inf(-1)
	for ci := s.head; ci >= 0; ci = c.candidates[ci].next {
		cand := c.candidates[ci]
		var ext float64
		if cand.down < 0 {
			ext = cand.match.Score
		} else {
			ext = c.score(cand.down)
		}
		if total := c.score(cand.prev) + ext; total > bestScore {
			best, bestScore = ci, total
		}
	}

	s = &c.states[idx]
	s.best = best
	s.score = bestScore
	s.status = scored
	return bestScore
}

// evaluate rebuilds the derivation of a completed state following best candidates.
func (c *chart) evaluate(idx int, memo map[int]*grammar.Derivation) (*grammar.Derivation, error) {
	if d, found := memo[idx]; found {
		return d, nil
	}

	s := c.states[idx]
	rule := s.rule.Rule
	children := make([]grammar.Node, len(rule.RHS))
	current := idx
	for i := len(children) - 1; i >= 0; i-- {
		cand := c.candidates[c.states[current].best]
		if cand.down < 0 {
			children[i] = &grammar.Leaf{Term: rule.RHS[i], Match: cand.match, Token: c.tokens[cand.token]}
		} else {
			child, e := c.evaluate(cand.down, memo)
			if e != nil {
				return nil, e
			}
			children[i] = child
		}
		current = cand.prev
	}

	d, e := grammar.NewDerivation(rule, children)
	if e != nil {
		return nil, e
	}
	d.Score = s.score
	memo[idx] = d
	return d, nil
}
