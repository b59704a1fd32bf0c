// Package template implements a small pattern language over values.
//
// A pattern is a value literal that may contain slot variables:
//
//	null  true  false  17  -2.5  'text'  "text"
//	[item, ...]  {key: item, 'quoted key': item, ...}
//	$0    optional variable, null merges to absence
//	$0!   required variable, split never binds it to null
//	...$1 spread variable, allowed only as a list or dict item
//
// A Template converts between one value and a tuple of per-slot values:
// Merge substitutes the tuple into the pattern, Split enumerates every tuple
// that merges back to a given value.
package template

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/nlgram/lexer"
	"github.com/ava12/nlgram/source"
	"github.com/ava12/nlgram/value"
)

const (
	numberTok = iota
	stringTok
	varTok
	nameTok
	opTok
)

var (
	patternRe = regexp.MustCompile(`(?s:\s+|` +
		`(-?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?)|` +
		`('[^']*'|"[^"]*")|` +
		`((?:\.\.\.)?\$\d+!?)|` +
		`([a-zA-Z_][a-zA-Z0-9_]*)|` +
		`([\[\]{}:,])|` +
		`(['"].{0,10}|\.\.\..{0,3}|\$.{0,3})|` +
		`([^\s\w'"$]))`)
	patternLexer = lexer.New(patternRe, []lexer.TokenType{
		{Type: numberTok, TypeName: "number"},
		{Type: stringTok, TypeName: "string"},
		{Type: varTok, TypeName: "variable"},
		{Type: nameTok, TypeName: "name"},
		{Type: opTok, TypeName: "operator"},
		{Type: lexer.ErrorTokenType, TypeName: ""},
		{Type: opTok, TypeName: "operator"},
	})
)

// Template is an immutable parsed pattern, safe for concurrent use.
type Template struct {
	pattern string
	slots   int
	root    node
}

type node interface {
	merge(subs []value.Value) (value.Value, error)
	split(v value.Value) [][]binding
	required() bool
}

type binding struct {
	index int
	value value.Value
}

type literalNode struct {
	value value.Value
}

type varNode struct {
	index    int
	optional bool
}

type listItem struct {
	node   node
	spread bool
}

type listNode struct {
	items []listItem
	// capacity[i] is the max number of elements items[i:] can absorb, -1 if unbounded.
	capacity []int
}

type dictItem struct {
	key    string
	node   node
	spread bool
}

type dictNode struct {
	items []dictItem
	keys  map[string]int
}

// Parse creates a template from pattern text; variable indices must be less than slots.
func Parse(pattern string, slots int) (*Template, error) {
	toks, e := patternLexer.Scan(source.NewString("", pattern))
	if e != nil {
		return nil, e
	}

	p := &patternParser{tokens: toks, slots: slots}
	root, e := p.parseItem()
	if e == nil && p.peek().Type() != lexer.EoiTokenType {
		e = unexpectedTokenError(p.peek())
	}
	if e != nil {
		return nil, e
	}

	return &Template{pattern: pattern, slots: slots, root: root}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string, slots int) *Template {
	t, e := Parse(pattern, slots)
	if e != nil {
		panic(e)
	}
	return t
}

// ParseValue parses a value literal, i.e. a pattern containing no variables.
func ParseValue(text string) (value.Value, error) {
	t, e := Parse(text, 0)
	if e != nil {
		return value.Null, e
	}
	return t.Merge(nil)
}

// MustParseValue is like ParseValue but panics on error.
func MustParseValue(text string) value.Value {
	v, e := ParseValue(text)
	if e != nil {
		panic(e)
	}
	return v
}

// Default returns a template with given slot count that merges to null and splits only null.
func Default(slots int) *Template {
	return &Template{pattern: "null", slots: slots, root: literalNode{}}
}

// Unit returns a template with given slot count passing the first slot through: "$0".
// slots must be positive.
func Unit(slots int) *Template {
	return &Template{pattern: "$0", slots: slots, root: varNode{index: 0, optional: true}}
}

// Slots returns declared slot count.
func (t *Template) Slots() int {
	return t.slots
}

// String returns source pattern.
func (t *Template) String() string {
	return t.pattern
}

type patternParser struct {
	tokens []*lexer.Token
	pos    int
	slots  int
}

func (p *patternParser) peek() *lexer.Token {
	return p.tokens[p.pos]
}

func (p *patternParser) next() *lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *patternParser) skipOp(op string) bool {
	t := p.peek()
	if t.Type() == opTok && t.Text() == op {
		p.next()
		return true
	}
	return false
}

func (p *patternParser) expectOp(op string) error {
	if p.skipOp(op) {
		return nil
	}
	return unexpectedTokenError(p.peek())
}

func (p *patternParser) parseVar(t *lexer.Token) (varNode, bool, error) {
	text := t.Text()
	spread := strings.HasPrefix(text, "...")
	text = strings.TrimPrefix(text, "...")
	required := strings.HasSuffix(text, "!")
	text = strings.TrimSuffix(text[1:], "!")
	if spread && required {
		return varNode{}, false, unexpectedTokenError(t)
	}

	index, e := strconv.Atoi(text)
	if e != nil || index >= p.slots {
		return varNode{}, false, slotRangeError(t, index, p.slots)
	}

	return varNode{index: index, optional: !required}, spread, nil
}

func (p *patternParser) parseItem() (node, error) {
	t := p.next()
	switch t.Type() {
	case numberTok:
		n, e := strconv.ParseFloat(t.Text(), 64)
		if e != nil {
			return nil, badNumberError(t)
		}
		return literalNode{value.Number(n)}, nil

	case stringTok:
		return literalNode{value.String(unquote(t.Text()))}, nil

	case nameTok:
		switch t.Text() {
		case "null":
			return literalNode{}, nil
		case "true":
			return literalNode{value.Bool(true)}, nil
		case "false":
			return literalNode{value.Bool(false)}, nil
		}

	case varTok:
		v, spread, e := p.parseVar(t)
		if e == nil && spread {
			e = unexpectedTokenError(t)
		}
		return v, e

	case opTok:
		switch t.Text() {
		case "[":
			return p.parseList()
		case "{":
			return p.parseDict()
		}
	}

	return nil, unexpectedTokenError(t)
}

func (p *patternParser) parseList() (node, error) {
	n := &listNode{}
	if !p.skipOp("]") {
		for {
			var (
				item listItem
				e    error
			)
			if t := p.peek(); t.Type() == varTok && strings.HasPrefix(t.Text(), "...") {
				p.next()
				item.node, item.spread, e = p.parseVar(t)
			} else {
				item.node, e = p.parseItem()
			}
			if e != nil {
				return nil, e
			}

			n.items = append(n.items, item)
			if p.skipOp("]") {
				break
			}
			if e = p.expectOp(","); e != nil {
				return nil, e
			}
		}
	}

	n.capacity = make([]int, len(n.items)+1)
	for i := len(n.items) - 1; i >= 0; i-- {
		switch {
		case n.items[i].spread || n.capacity[i+1] < 0:
			n.capacity[i] = -1
		default:
			n.capacity[i] = n.capacity[i+1] + 1
		}
	}
	return n, nil
}

func (p *patternParser) parseDict() (node, error) {
	n := &dictNode{keys: make(map[string]int)}
	if p.skipOp("}") {
		return n, nil
	}

	for {
		var (
			item dictItem
			e    error
		)
		t := p.next()
		switch t.Type() {
		case varTok:
			if !strings.HasPrefix(t.Text(), "...") {
				return nil, unexpectedTokenError(t)
			}
			item.node, item.spread, e = p.parseVar(t)
		case nameTok, stringTok:
			item.key = t.Text()
			if t.Type() == stringTok {
				item.key = unquote(item.key)
			}
			if _, has := n.keys[item.key]; has {
				return nil, duplicateKeyError(t, item.key)
			}
			if e = p.expectOp(":"); e == nil {
				item.node, e = p.parseItem()
			}
			n.keys[item.key] = len(n.items)
		default:
			e = unexpectedTokenError(t)
		}
		if e != nil {
			return nil, e
		}

		n.items = append(n.items, item)
		if p.skipOp("}") {
			return n, nil
		}
		if e = p.expectOp(","); e != nil {
			return nil, e
		}
	}
}

func unquote(s string) string {
	return s[1 : len(s)-1]
}
