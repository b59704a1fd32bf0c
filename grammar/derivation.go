package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ava12/nlgram"
	"github.com/ava12/nlgram/value"
)

// Node is a derivation tree node: either *Leaf or *Derivation.
type Node interface {
	// Leaves returns leaf nodes in left to right order.
	Leaves() []*Leaf
	// String returns indented tree dump.
	String() string

	appendLeaves(dst []*Leaf) []*Leaf
	dump(sb *strings.Builder, indent string)
}

// Leaf is a terminal matched or generated by a lexer.
type Leaf struct {
	Term  Term
	Match *Match

	// Token is the input token for parsed leaves, nil for generated ones.
	Token *Token
}

// Derivation is a rule application. Derivations are immutable once returned.
type Derivation struct {
	Rule     *Rule
	Value    value.Value
	Score    float64
	Children []Node
}

// NewDerivation merges children values using rule semantics.
// Score is the rule merge score plus children scores.
// Merge errors are returned with rule description prepended.
func NewDerivation(r *Rule, children []Node) (*Derivation, error) {
	values := make([]value.Value, len(children))
	score := r.Merge.Score
	for i, c := range children {
		values[i] = ValueOf(c)
		score += ScoreOf(c)
	}

	v, e := r.Merge.Func.Merge(values)
	if e != nil {
		if ee, ok := e.(*nlgram.Error); ok {
			return nil, nlgram.FormatError(ee.Code, "%s: %s", r, ee.Message)
		}
		return nil, fmt.Errorf("%s: %w", r, e)
	}

	return &Derivation{Rule: r, Value: v, Score: score, Children: children}, nil
}

// ValueOf returns node value.
func ValueOf(n Node) value.Value {
	switch n := n.(type) {
	case *Leaf:
		return n.Match.Value
	case *Derivation:
		return n.Value
	}
	return value.Null
}

// ScoreOf returns node score.
func ScoreOf(n Node) float64 {
	switch n := n.(type) {
	case *Leaf:
		return n.Match.Score
	case *Derivation:
		return n.Score
	}
	return 0
}

func (l *Leaf) Leaves() []*Leaf {
	return []*Leaf{l}
}

func (l *Leaf) appendLeaves(dst []*Leaf) []*Leaf {
	return append(dst, l)
}

func (l *Leaf) String() string {
	sb := &strings.Builder{}
	l.dump(sb, "")
	return sb.String()
}

func (l *Leaf) dump(sb *strings.Builder, indent string) {
	sb.WriteString(indent)
	sb.WriteString(l.Term.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Quote(l.Match.Text))
	if !l.Match.Value.IsNull() {
		sb.WriteString(" = ")
		sb.WriteString(l.Match.Value.String())
	}
	sb.WriteByte('\n')
}

func (d *Derivation) Leaves() []*Leaf {
	return d.appendLeaves(nil)
}

func (d *Derivation) appendLeaves(dst []*Leaf) []*Leaf {
	for _, c := range d.Children {
		dst = c.appendLeaves(dst)
	}
	return dst
}

// Matches returns leaf matches in left to right order.
func (d *Derivation) Matches() []*Match {
	leaves := d.Leaves()
	result := make([]*Match, len(leaves))
	for i, l := range leaves {
		result[i] = l.Match
	}
	return result
}

// Span returns the byte range covered by leaves that came from input tokens.
// ok is false if no leaf has a token.
func (d *Derivation) Span() (start, end int, ok bool) {
	for _, l := range d.Leaves() {
		if l.Token == nil {
			continue
		}
		if !ok || l.Token.Start < start {
			start = l.Token.Start
		}
		if !ok || l.Token.End > end {
			end = l.Token.End
		}
		ok = true
	}
	return
}

func (d *Derivation) String() string {
	sb := &strings.Builder{}
	d.dump(sb, "")
	return sb.String()
}

func (d *Derivation) dump(sb *strings.Builder, indent string) {
	fmt.Fprintf(sb, "%s%s = %s (%g)\n", indent, d.Rule, d.Value, d.Score)
	for _, c := range d.Children {
		c.dump(sb, indent+"  ")
	}
}
