package grammar

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/nlgram/internal/test"
	"github.com/ava12/nlgram/template"
	"github.com/ava12/nlgram/value"
)

type wordLexer struct {
	words map[string]bool
}

func (l wordLexer) Lex(text string) []*Token {
	var result []*Token
	pos := 0
	for _, w := range strings.Fields(text) {
		start := pos + strings.Index(text[pos:], w)
		pos = start + len(w)
		t := &Token{Text: w, Start: start, End: pos, Literals: map[string]*Match{}, Types: map[string]*Match{}}
		if l.words[w] {
			t.Literals[w] = &Match{Text: w}
		}
		if n, e := strconv.Atoi(w); e == nil {
			t.Types["num"] = &Match{Text: w, Value: value.Number(float64(n))}
		}
		result = append(result, t)
	}
	return result
}

func (l wordLexer) Unlex(term Term, v value.Value) []*Match {
	switch {
	case term.Kind == LiteralTerm && l.words[term.Name]:
		return []*Match{{Text: term.Name}}
	case term.Kind == TypeTerm && term.Name == "num" && v.Kind() == value.NumberKind:
		return []*Match{{Text: v.String(), Value: v}}
	}
	return nil
}

func (l wordLexer) Known(term Term) bool {
	return (term.Kind == LiteralTerm && l.words[term.Name]) || (term.Kind == TypeTerm && term.Name == "num")
}

var testLexer = wordLexer{map[string]bool{"plus": true, "minus": true}}

func rule(lhs string, rhs []Term, merge string) *Rule {
	tmpl := template.MustParse(merge, len(rhs))
	return &Rule{LHS: lhs, RHS: rhs, Merge: Semantics[Merger]{Func: tmpl}, Split: Semantics[Splitter]{Func: tmpl}}
}

func TestValidation(t *testing.T) {
	sum := []*Rule{
		rule("sum", []Term{Symbol("num"), Literal("plus"), Symbol("sum")}, "[$0, ...$2]"),
		rule("sum", []Term{Symbol("num")}, "[$0]"),
		rule("num", []Term{Type("num")}, "$0"),
	}
	g, e := New("sum", testLexer, sum)
	require.NoError(t, e)
	assert.Equal(t, "sum", g.Start())
	assert.Len(t, g.Rules(), 3)
	assert.Len(t, g.RulesFor("sum"), 2)
	assert.Equal(t, []string{"num", "sum"}, g.Symbols())

	samples := []struct {
		start string
		rules []*Rule
		code  int
	}{
		{"expr", sum, UnknownStartError},
		{"sum", append(sum, rule("num", []Term{Symbol("digits")}, "$0")), UnknownSymbolError},
		{"sum", append(sum, rule("num", []Term{Literal("times")}, "null")), UnknownTerminalError},
		{"sum", append(sum, rule("num", []Term{Type("word")}, "null")), UnknownTerminalError},
		{"sum", append(sum, &Rule{LHS: "num", RHS: []Term{Type("num")}, Merge: Semantics[Merger]{Func: template.MustParse("$1", 2)}}), MergeArityError},
		{"sum", append(sum, &Rule{LHS: "num", RHS: []Term{Type("num")}, Split: Semantics[Splitter]{Func: template.MustParse("null", 0)}}), SplitArityError},
		{"sum", append(sum, &Rule{LHS: "num", RHS: []Term{Type("num")}, Precedence: []int{1}}), PrecedenceError},
		{"sum", append(sum, &Rule{LHS: "num", RHS: []Term{Type("num"), Type("num")}, Precedence: []int{1, 1}}), PrecedenceError},
	}

	for _, s := range samples {
		_, e := New(s.start, testLexer, s.rules)
		test.ExpectErrorCode(t, s.code, e)
	}
}

func TestDefaultSemantics(t *testing.T) {
	g := MustNew("x", testLexer, []*Rule{{LHS: "x", RHS: []Term{Literal("plus")}}})
	r := g.Rules()[0]
	v, e := r.Merge.Func.Merge([]value.Value{value.Number(1)})
	require.NoError(t, e)
	assert.True(t, v.IsNull())
	assert.Len(t, r.Split.Func.Split(value.Null), 1)
	assert.Empty(t, r.Split.Func.Split(value.Number(1)))
}

func TestIndex(t *testing.T) {
	rules := []*Rule{
		rule("sum", []Term{Symbol("num"), Literal("plus"), Symbol("sum")}, "[$0, ...$2]"),
		rule("sum", []Term{Symbol("num"), Literal("minus"), Symbol("sum")}, "[$0, ...$2]"),
		rule("sum", []Term{Symbol("num")}, "[$0]"),
		rule("num", []Term{Type("num")}, "$0"),
	}
	rules[1].Merge.Score = math.Inf(-1)
	g := MustNew("sum", testLexer, rules)

	ix := g.Index()
	assert.Same(t, ix, g.Index())
	assert.Equal(t, []string{"num", "sum"}, ix.Names)
	assert.Equal(t, 1, ix.Start)
	require.Len(t, ix.Rules, 3)
	assert.Equal(t, []int{0, 4, 6}, []int{ix.Rules[0].Offset, ix.Rules[1].Offset, ix.Rules[2].Offset})
	assert.Equal(t, 8, ix.MaxIndex)
	assert.Equal(t, []int{0, -1, 1}, ix.Rules[0].RHS)
	assert.Equal(t, [][]int{{2}, {0, 1}}, ix.ByLHS)
	assert.Len(t, ix.RulesFor("sum"), 2)
	assert.Nil(t, ix.RulesFor("product"))
}

func TestTense(t *testing.T) {
	sg := Tense{"count": "singular"}
	pl3 := Tense{"count": "plural", "person": "3"}

	assert.True(t, sg.Agree(Tense{"person": "1"}))
	assert.False(t, sg.Agree(pl3))
	assert.Nil(t, sg.Check(Tense{}))
	assert.Equal(t, []string{"count should be singular (was: plural)"}, sg.Check(pl3))

	u := sg.Clone()
	u.Union(Tense{"person": "1"})
	assert.Equal(t, Tense{"count": "singular", "person": "1"}, u)
	assert.Equal(t, Tense{"count": "singular"}, sg)

	assert.Equal(t, Tense{"count": "plural"}, pl3.Intersect(Tense{"count": "plural", "person": "2"}))
}

func TestUnionChecked(t *testing.T) {
	cur := Tense{"count": "plural"}
	assert.Nil(t, cur.UnionChecked(nil))

	errs := cur.UnionChecked([]Tense{
		{"count": "singular", "person": "1"},
		{"count": "singular"},
	})
	assert.Equal(t, []string{"count should be plural (was: singular)"}, errs)
	assert.Equal(t, Tense{"count": "plural"}, cur)

	errs = cur.UnionChecked([]Tense{
		{"count": "singular", "person": "2"},
		{"count": "plural", "person": "2", "case": "direct"},
		{"count": "plural", "person": "2", "case": "oblique"},
	})
	assert.Nil(t, errs)
	assert.Equal(t, Tense{"count": "plural", "person": "2"}, cur)

	cur = Tense{}
	assert.Nil(t, cur.UnionChecked([]Tense{{"gender": "female"}}))
	assert.Equal(t, Tense{"gender": "female"}, cur)
}

func TestDerivation(t *testing.T) {
	g := MustNew("sum", testLexer, []*Rule{
		rule("sum", []Term{Symbol("num"), Literal("plus"), Symbol("num")}, "[$0, $2]"),
		rule("num", []Term{Type("num")}, "$0"),
	})
	toks := testLexer.Lex("1 plus 22")
	require.Len(t, toks, 3)

	num := g.RulesFor("num")[0]
	left, e := NewDerivation(num, []Node{&Leaf{Term: Type("num"), Match: toks[0].Types["num"], Token: toks[0]}})
	require.NoError(t, e)
	right, e := NewDerivation(num, []Node{&Leaf{Term: Type("num"), Match: &Match{Text: "22", Value: value.Number(22), Score: -1}}})
	require.NoError(t, e)
	plus := &Leaf{Term: Literal("plus"), Match: toks[1].Lookup(Literal("plus")), Token: toks[1]}

	sum, e := NewDerivation(g.RulesFor("sum")[0], []Node{left, plus, right})
	require.NoError(t, e)
	test.ExpectValue(t, template.MustParseValue("[1, 22]"), sum.Value)
	assert.Equal(t, -1.0, sum.Score)
	assert.Len(t, sum.Leaves(), 3)
	assert.Equal(t, "1 plus 22", Join(testLexer, sum.Matches()))

	start, end, ok := sum.Span()
	assert.True(t, ok)
	assert.Equal(t, []int{0, 6}, []int{start, end})

	dump := sum.String()
	assert.True(t, strings.HasPrefix(dump, `$sum -> $num "plus" $num = [1, 22]`), dump)
	assert.Contains(t, dump, "    %num \"22\" = 22\n")
}

func TestMergeErrorWrapping(t *testing.T) {
	r := &Rule{LHS: "x", RHS: []Term{Type("num"), Type("num")}, Merge: Semantics[Merger]{Func: template.MustParse("{...$0, ...$1}", 2)}}
	_, e := NewDerivation(r, []Node{
		&Leaf{Term: Type("num"), Match: &Match{Value: template.MustParseValue("{a: 1}")}},
		&Leaf{Term: Type("num"), Match: &Match{Value: template.MustParseValue("{a: [2]}")}},
	})
	test.ExpectErrorCode(t, template.SingletonMergeError, e)
	assert.True(t, strings.HasPrefix(e.Error(), "$x -> %num %num: "), e.Error())
}
