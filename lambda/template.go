package lambda

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ava12/nlgram/lexer"
	"github.com/ava12/nlgram/source"
	"github.com/ava12/nlgram/value"
)

const (
	nameTok = iota
	varTok
	opTok
)

var (
	exprRe    = regexp.MustCompile(`(?s:\s+|([a-zA-Z0-9_]+)|(\$\d+)|([.~&|()\[\],])|(.))`)
	exprLexer = lexer.New(exprRe, []lexer.TokenType{
		{Type: nameTok, TypeName: "name"},
		{Type: varTok, TypeName: "variable"},
		{Type: opTok, TypeName: "operator"},
		{Type: lexer.ErrorTokenType, TypeName: ""},
	})
)

// Template is an immutable parsed expression pattern with $N variables, safe for concurrent use.
// It implements grammar.Merger and grammar.Splitter.
type Template struct {
	pattern string
	slots   int
	root    node
}

type node interface {
	merge(args []Expr) Expr
	split(x Expr) [][]binding
}

type binding struct {
	index int
	expr  Expr
}

type varNode int

type terminalNode struct {
	expr *Terminal
}

type unaryNode struct {
	op    UnaryOp
	child node
}

type binaryNode struct {
	op          BinaryOp
	left, right node
}

type customNode struct {
	name string
	args []node
}

// NewTemplate parses an expression pattern; variable indices must be less than slots.
func NewTemplate(pattern string, slots int) (*Template, error) {
	toks, e := exprLexer.Scan(source.NewString("", pattern))
	if e != nil {
		return nil, e
	}

	p := &exprParser{tokens: toks, slots: slots}
	root, e := p.parseExpr()
	if e == nil && p.peek().Type() != lexer.EoiTokenType {
		e = unexpectedTokenError(p.peek())
	}
	if e != nil {
		return nil, e
	}

	return &Template{pattern: pattern, slots: slots, root: root}, nil
}

// MustTemplate is like NewTemplate but panics on error.
func MustTemplate(pattern string, slots int) *Template {
	t, e := NewTemplate(pattern, slots)
	if e != nil {
		panic(e)
	}
	return t
}

// Parse parses an expression containing no variables.
func Parse(text string) (Expr, error) {
	t, e := NewTemplate(text, 0)
	if e != nil {
		return nil, e
	}
	x := t.root.merge(nil)
	if x == nil {
		return nil, emptyExpressionError(text)
	}
	return x, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) Expr {
	x, e := Parse(text)
	if e != nil {
		panic(e)
	}
	return x
}

// Slots returns declared slot count.
func (t *Template) Slots() int {
	return t.slots
}

// String returns source pattern.
func (t *Template) String() string {
	return t.pattern
}

// Merge substitutes child expressions into the template. Null children are unknown.
func (t *Template) Merge(children []value.Value) (value.Value, error) {
	args := make([]Expr, len(children))
	for i, c := range children {
		x, e := Decode(c)
		if e != nil {
			return value.Null, e
		}
		args[i] = x
	}
	return Encode(t.root.merge(args)), nil
}

// Split enumerates distinct child value tuples that merge to v, unbound slots are null.
// A value not holding an expression has no splits.
func (t *Template) Split(v value.Value) [][]value.Value {
	x, e := Decode(v)
	if e != nil {
		return nil
	}

	var result [][]value.Value
	seen := make(map[string]bool)
	for _, bs := range t.root.split(x) {
		args := make([]Expr, t.slots)
		bound := make([]bool, t.slots)
		ok := true
		for _, b := range bs {
			if bound[b.index] && !Equal(args[b.index], b.expr) {
				ok = false
				break
			}
			bound[b.index] = true
			args[b.index] = b.expr
		}
		if !ok {
			continue
		}

		subs := make([]value.Value, t.slots)
		keys := make([]string, t.slots)
		for i, a := range args {
			subs[i] = Encode(a)
			if a != nil {
				keys[i] = a.String()
			}
		}
		key := strings.Join(keys, "\x00")
		if !seen[key] {
			seen[key] = true
			result = append(result, subs)
		}
	}
	return result
}

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

func (n varNode) merge(args []Expr) Expr {
	if int(n) < len(args) {
		return args[n]
	}
	return nil
}

func (n varNode) split(x Expr) [][]binding {
	return [][]binding{{{int(n), x}}}
}

func (n terminalNode) merge([]Expr) Expr {
	return n.expr
}

func (n terminalNode) split(x Expr) [][]binding {
	if t, ok := x.(*Terminal); ok && t.Name == n.expr.Name {
		return [][]binding{nil}
	}
	return nil
}

func (n *unaryNode) merge(args []Expr) Expr {
	return involute(n.op, n.child.merge(args))
}

func (n *unaryNode) split(x Expr) [][]binding {
	return n.child.split(involute(n.op, x))
}

// merge gives unknown for a join missing either side; a commutative operation just drops unknowns.
func (n *binaryNode) merge(args []Expr) Expr {
	left := expand(n.op, n.left.merge(args))
	right := expand(n.op, n.right.merge(args))
	if !n.op.Commutes() && (len(left) == 0 || len(right) == 0) {
		return nil
	}
	xs := make([]Expr, 0, len(left)+len(right))
	xs = append(xs, left...)
	return collapse(n.op, append(xs, right...))
}

// split tries every subset of a commutative operation's arguments for the left side,
// and every proper prefix of a join. An unknown join comes from either side being unknown.
func (n *binaryNode) split(x Expr) [][]binding {
	xs := expand(n.op, x)
	if !n.op.Commutes() && len(xs) == 0 {
		return append(n.left.split(nil), n.right.split(nil)...)
	}

	var masks []int
	if n.op.Commutes() {
		for m := 0; m < 1<<len(xs); m++ {
			masks = append(masks, m)
		}
	} else {
		for i := 1; i < len(xs); i++ {
			masks = append(masks, 1<<i-1)
		}
	}

	var result [][]binding
	for _, m := range masks {
		var left, right []Expr
		for i, a := range xs {
			if m&(1<<i) != 0 {
				left = append(left, a)
			} else {
				right = append(right, a)
			}
		}
		ls := n.left.split(collapse(n.op, left))
		if len(ls) == 0 {
			continue
		}
		result = append(result, cross(ls, n.right.split(collapse(n.op, right)))...)
	}
	return result
}

// merge gives unknown if any argument is unknown.
func (n *customNode) merge(args []Expr) Expr {
	xs := make([]Expr, len(n.args))
	for i, a := range n.args {
		if xs[i] = a.merge(args); xs[i] == nil {
			return nil
		}
	}
	return NewCustom(n.name, xs...)
}

func (n *customNode) split(x Expr) [][]binding {
	if x == nil {
		var result [][]binding
		for _, a := range n.args {
			result = append(result, a.split(nil)...)
		}
		return result
	}

	c, ok := x.(*Custom)
	if !ok || c.Name != n.name || len(c.Args) != len(n.args) {
		return nil
	}
	acc := [][]binding{nil}
	for i, a := range n.args {
		if acc = cross(acc, a.split(c.Args[i])); len(acc) == 0 {
			return nil
		}
	}
	return acc
}

// exprParser is a recursive descent parser, from the loosest binding level:
//
//	expr = not {("&" | "|") not}, a single operator per level
//	not  = ["~"] join
//	join = base {"." base}
//	base = "R" "[" expr "]" | name ["(" [expr {"," expr}] ")"] | "(" expr ")" | variable
type exprParser struct {
	tokens []*lexer.Token
	pos    int
	slots  int
}

func (p *exprParser) peek() *lexer.Token {
	return p.tokens[p.pos]
}

func (p *exprParser) peekOp(op string) bool {
	t := p.peek()
	return t.Type() == opTok && t.Text() == op
}

func (p *exprParser) next() *lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *exprParser) skipOp(op string) bool {
	if p.peekOp(op) {
		p.next()
		return true
	}
	return false
}

func (p *exprParser) expectOp(op string) error {
	if p.skipOp(op) {
		return nil
	}
	return unexpectedTokenError(p.peek())
}

func (p *exprParser) parseExpr() (node, error) {
	left, e := p.parseNot()
	if e != nil {
		return nil, e
	}

	for _, op := range []struct {
		text string
		op   BinaryOp
	}{{"&", Conjunction}, {"|", Disjunction}} {
		if !p.peekOp(op.text) {
			continue
		}
		for p.skipOp(op.text) {
			right, e := p.parseNot()
			if e != nil {
				return nil, e
			}
			left = &binaryNode{op.op, left, right}
		}
		break
	}
	return left, nil
}

func (p *exprParser) parseNot() (node, error) {
	if !p.skipOp("~") {
		return p.parseJoin()
	}
	child, e := p.parseJoin()
	if e != nil {
		return nil, e
	}
	return &unaryNode{Not, child}, nil
}

func (p *exprParser) parseJoin() (node, error) {
	left, e := p.parseBase()
	for e == nil && p.skipOp(".") {
		var right node
		right, e = p.parseBase()
		left = &binaryNode{Join, left, right}
	}
	if e != nil {
		return nil, e
	}
	return left, nil
}

func (p *exprParser) parseBase() (node, error) {
	t := p.next()
	switch t.Type() {
	case nameTok:
		if t.Text() == "R" && p.skipOp("[") {
			child, e := p.parseExpr()
			if e == nil {
				e = p.expectOp("]")
			}
			if e != nil {
				return nil, e
			}
			return &unaryNode{Reverse, child}, nil
		}
		if p.skipOp("(") {
			return p.parseCall(t.Text())
		}
		return terminalNode{NewTerminal(t.Text())}, nil

	case varTok:
		index, e := strconv.Atoi(t.Text()[1:])
		if e != nil || index >= p.slots {
			return nil, slotRangeError(t, index, p.slots)
		}
		return varNode(index), nil

	case opTok:
		if t.Text() == "(" {
			n, e := p.parseExpr()
			if e == nil {
				e = p.expectOp(")")
			}
			return n, e
		}
	}
	return nil, unexpectedTokenError(t)
}

func (p *exprParser) parseCall(name string) (node, error) {
	n := &customNode{name: name}
	if p.skipOp(")") {
		return n, nil
	}
	for {
		arg, e := p.parseExpr()
		if e != nil {
			return nil, e
		}
		n.args = append(n.args, arg)
		if p.skipOp(")") {
			return n, nil
		}
		if e = p.expectOp(","); e != nil {
			return nil, e
		}
	}
}
