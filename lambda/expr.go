// Package lambda implements lambda DCS expressions, a semantic value kind for question-like utterances:
//
//	name          terminal, e.g. france
//	a.b           join, a relation applied to its argument
//	a & b, a | b  conjunction and disjunction, both commutative
//	~a            negation
//	R[a]          reversed relation
//	f(a, b)       custom function
//
// Expressions are canonical: commutative operands are sorted and equal expressions have equal String.
// Inside a grammar an expression is carried as a string value holding its canonical text,
// an unknown (empty) expression is carried as null. Templates convert between rule values
// and child values the same way template.Template does for plain values.
package lambda

import (
	"sort"
	"strings"
)

// BinaryOp is a binary operator.
type BinaryOp int

const (
	Conjunction BinaryOp = iota
	Disjunction
	Join
)

// UnaryOp is a unary operator.
type UnaryOp int

const (
	Not UnaryOp = iota
	Reverse
)

type operator struct {
	commutes   bool
	precedence int
	text       string
}

var binaryOps = [...]operator{
	Conjunction: {true, 2, " & "},
	Disjunction: {true, 2, " | "},
	Join:        {false, 0, "."},
}

var unaryOps = [...]operator{
	Not:     {false, 1, "~"},
	Reverse: {false, 3, "R"},
}

// Commutes reports whether operand order is irrelevant.
func (op BinaryOp) Commutes() bool {
	return binaryOps[op].commutes
}

// Expr is a lambda DCS expression: *Terminal, *Binary, *Unary, or *Custom.
// nil Expr stands for unknown.
type Expr interface {
	String() string
	wrap(context int) string
}

type Terminal struct {
	Name string
}

type Binary struct {
	Op   BinaryOp
	Args []Expr
	repr string
}

type Unary struct {
	Op   UnaryOp
	Arg  Expr
	repr string
}

type Custom struct {
	Name string
	Args []Expr
	repr string
}

// NewTerminal creates a named constant.
func NewTerminal(name string) *Terminal {
	return &Terminal{name}
}

// NewBinary creates an operation over two or more arguments.
// Arguments using the same operator are flattened, commutative arguments are sorted.
func NewBinary(op BinaryOp, args ...Expr) *Binary {
	var flat []Expr
	for _, a := range args {
		if b, ok := a.(*Binary); ok && b.Op == op {
			flat = append(flat, b.Args...)
		} else {
			flat = append(flat, a)
		}
	}

	o := binaryOps[op]
	texts := make([]string, len(flat))
	for i, a := range flat {
		texts[i] = a.wrap(o.precedence)
	}
	if o.commutes {
		sort.Sort(byText{flat, texts})
	}
	return &Binary{Op: op, Args: flat, repr: strings.Join(texts, o.text)}
}

// NewUnary creates an operation over one argument.
func NewUnary(op UnaryOp, arg Expr) *Unary {
	o := unaryOps[op]
	var repr string
	if op == Reverse {
		repr = o.text + "[" + arg.String() + "]"
	} else {
		repr = o.text + arg.wrap(o.precedence)
	}
	return &Unary{Op: op, Arg: arg, repr: repr}
}

// NewCustom creates a function call.
func NewCustom(name string, args ...Expr) *Custom {
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.String()
	}
	return &Custom{Name: name, Args: args, repr: name + "(" + strings.Join(texts, ", ") + ")"}
}

func (t *Terminal) String() string {
	return t.Name
}

func (t *Terminal) wrap(int) string {
	return t.Name
}

func (b *Binary) String() string {
	if b.repr == "" {
		return NewBinary(b.Op, b.Args...).repr
	}
	return b.repr
}

func (b *Binary) wrap(context int) string {
	if binaryOps[b.Op].precedence >= context {
		return "(" + b.String() + ")"
	}
	return b.String()
}

func (u *Unary) String() string {
	if u.repr == "" {
		return NewUnary(u.Op, u.Arg).repr
	}
	return u.repr
}

func (u *Unary) wrap(context int) string {
	if u.Op != Reverse && unaryOps[u.Op].precedence >= context {
		return "(" + u.String() + ")"
	}
	return u.String()
}

func (c *Custom) String() string {
	if c.repr == "" {
		return NewCustom(c.Name, c.Args...).repr
	}
	return c.repr
}

func (c *Custom) wrap(int) string {
	return c.String()
}

// Equal reports whether a and b are the same expression.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

type byText struct {
	exprs []Expr
	texts []string
}

func (s byText) Len() int {
	return len(s.exprs)
}

func (s byText) Less(i, j int) bool {
	return s.texts[i] < s.texts[j]
}

func (s byText) Swap(i, j int) {
	s.exprs[i], s.exprs[j] = s.exprs[j], s.exprs[i]
	s.texts[i], s.texts[j] = s.texts[j], s.texts[i]
}

// collapse builds an op expression of xs, a single argument is returned as is, none gives unknown.
func collapse(op BinaryOp, xs []Expr) Expr {
	switch len(xs) {
	case 0:
		return nil
	case 1:
		return xs[0]
	}
	return NewBinary(op, xs...)
}

// expand lists the arguments of x as an op expression.
func expand(op BinaryOp, x Expr) []Expr {
	switch {
	case x == nil:
		return nil
	case isBinary(x, op):
		return x.(*Binary).Args
	}
	return []Expr{x}
}

func isBinary(x Expr, op BinaryOp) bool {
	b, ok := x.(*Binary)
	return ok && b.Op == op
}

// involute applies op to x, canceling a double application.
func involute(op UnaryOp, x Expr) Expr {
	if x == nil {
		return nil
	}
	if u, ok := x.(*Unary); ok && u.Op == op {
		return u.Arg
	}
	return NewUnary(op, x)
}
