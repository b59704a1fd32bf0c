package corrector

import (
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ava12/nlgram/grammar"
	"github.com/ava12/nlgram/parser"
	"github.com/ava12/nlgram/template"
	"github.com/ava12/nlgram/value"
)

var (
	singular = grammar.Tense{"count": "sg"}
	plural   = grammar.Tense{"count": "pl"}
)

type entry struct {
	class, lemma string
	tense        grammar.Tense
}

var vocabulary = map[string]entry{
	"a":      {"det", "a", singular},
	"this":   {"det", "this", singular},
	"these":  {"det", "this", plural},
	"the":    {"det", "the", nil},
	"cat":    {"noun", "cat", singular},
	"cats":   {"noun", "cat", plural},
	"sleeps": {"verb", "sleep", singular},
	"sleep":  {"verb", "sleep", plural},
	"happy":  {"adj", "happy", nil},
}

// wordLexer splits text by spaces, every word is a literal and known words also match their class.
type wordLexer struct{}

func match(word string) *grammar.Match {
	e := vocabulary[word]
	m := &grammar.Match{Text: word, Value: value.String(e.lemma)}
	if e.tense != nil {
		m.Tenses = []grammar.Tense{e.tense}
	}
	return m
}

func (wordLexer) Lex(text string) []*grammar.Token {
	var result []*grammar.Token
	pos := 0
	for _, w := range strings.Fields(text) {
		start := pos + strings.Index(text[pos:], w)
		pos = start + len(w)
		t := &grammar.Token{Text: w, Start: start, End: pos, Literals: map[string]*grammar.Match{w: {Text: w}}}
		if e, known := vocabulary[w]; known {
			t.Types = map[string]*grammar.Match{e.class: match(w)}
		}
		result = append(result, t)
	}
	return result
}

func (wordLexer) forms(class, lemma string) []string {
	var result []string
	for w, e := range vocabulary {
		if e.class == class && e.lemma == lemma {
			result = append(result, w)
		}
	}
	sort.Strings(result)
	return result
}

func (l wordLexer) Unlex(term grammar.Term, v value.Value) []*grammar.Match {
	if term.Kind == grammar.LiteralTerm {
		return []*grammar.Match{{Text: term.Name}}
	}
	if forms := l.forms(term.Name, v.Str()); len(forms) > 0 {
		return []*grammar.Match{match(forms[0])}
	}
	return nil
}

func (wordLexer) Known(grammar.Term) bool {
	return true
}

func (l wordLexer) Fix(m *grammar.Match, t grammar.Tense) []*grammar.Match {
	var result []*grammar.Match
	e := vocabulary[m.Text]
	for _, w := range l.forms(e.class, e.lemma) {
		if w != m.Text && t.Agree(vocabulary[w].tense) {
			result = append(result, match(w))
		}
	}
	return result
}

func rule(lhs, body, pattern string, precedence ...int) *grammar.Rule {
	var rhs []grammar.Term
	for _, f := range strings.Fields(body) {
		switch {
		case strings.HasPrefix(f, "$"):
			rhs = append(rhs, grammar.Symbol(f[1:]))
		case strings.HasPrefix(f, "%"):
			rhs = append(rhs, grammar.Type(f[1:]))
		default:
			rhs = append(rhs, grammar.Literal(f))
		}
	}
	t := template.MustParse(pattern, len(rhs))
	return &grammar.Rule{
		LHS:        lhs,
		RHS:        rhs,
		Merge:      grammar.Semantics[grammar.Merger]{Func: t},
		Split:      grammar.Semantics[grammar.Splitter]{Func: t},
		Precedence: precedence,
	}
}

func withTense(r *grammar.Rule, t grammar.Tense) *grammar.Rule {
	r.Tense = t
	return r
}

func parseOnly(r *grammar.Rule) *grammar.Rule {
	r.Split.Score = math.Inf(-1)
	return r
}

func sentenceGrammar() *grammar.Grammar {
	return grammar.MustNew("root", wordLexer{}, []*grammar.Rule{
		rule("root", "$np $vp", "{subject: $0, predicate: $1}", 0, 1),
		rule("np", "%det %noun", "{det: $0, noun: $1}", 1, 0),
		rule("np", "%noun", "{noun: $0}", 0),
		rule("vp", "%verb", "{verb: $0}", 0),
		withTense(rule("vp", "is %adj", "{adj: $1}"), singular),
		withTense(rule("vp", "are %adj", "{adj: $1}"), plural),
		parseOnly(rule("vp", "be %adj", "{adj: $1}")),
		parseOnly(rule("vp", "ain't %verb", "{not: $1}")),
	})
}

func parse(t *testing.T, g *grammar.Grammar, text string) *grammar.Derivation {
	t.Helper()
	d, e := parser.Parse(g, text, nil)
	require.NoError(t, e, text)
	require.NotNil(t, d, text)
	return d
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestCorrectInput(t *testing.T) {
	g := sentenceGrammar()
	for _, text := range []string{"the cat sleeps", "these cats sleep", "cat is happy", "cats are happy", "a cat sleeps"} {
		d := parse(t, g, text)
		r := Correct(g, newRand(), d)
		assert.Empty(t, r.Issues, text)
		assert.Equal(t, text, r.Output)
		assert.True(t, d.Value.Equal(r.Derivation.Value), text)
	}
}

func TestLeafCorrection(t *testing.T) {
	g := sentenceGrammar()
	samples := []struct {
		src, output string
		issues      []Issue
	}{
		{"these cat sleeps", "this cat sleeps", []Issue{
			{Range: [2]int{0, 5}, Error: "count should be sg (was: pl)", Original: "these", Replacement: "this"},
		}},
		{"the cats sleeps", "the cats sleep", []Issue{
			{Range: [2]int{9, 15}, Error: "count should be pl (was: sg)", Original: "sleeps", Replacement: "sleep"},
		}},
		{"these cat sleep", "this cat sleeps", []Issue{
			{Range: [2]int{0, 5}, Error: "count should be sg (was: pl)", Original: "these", Replacement: "this"},
			{Range: [2]int{10, 15}, Error: "count should be sg (was: pl)", Original: "sleep", Replacement: "sleeps"},
		}},
	}

	for _, s := range samples {
		r := Correct(g, newRand(), parse(t, g, s.src))
		assert.Equal(t, s.output, r.Output, s.src)
		assert.Equal(t, s.issues, r.Issues, s.src)
	}
}

func TestLocality(t *testing.T) {
	g := sentenceGrammar()
	src := "the cats sleeps"
	r := Correct(g, newRand(), parse(t, g, src))
	require.Len(t, r.Issues, 1)

	rng := r.Issues[0].Range
	assert.Equal(t, src[:rng[0]], r.Output[:rng[0]])
	tail := len(src) - rng[1]
	assert.Equal(t, src[rng[1]:], r.Output[len(r.Output)-tail:])
	assert.Equal(t, "sleeps", src[rng[0]:rng[1]])
}

func TestUnfixableLeaf(t *testing.T) {
	g := sentenceGrammar()
	src := "a cats sleep"
	r := Correct(g, newRand(), parse(t, g, src))
	assert.Equal(t, src, r.Output)
	assert.Equal(t, []Issue{
		{Range: [2]int{0, 1}, Error: "count should be pl (was: sg)", Original: "a", Replacement: "a"},
	}, r.Issues)
}

func TestRegeneration(t *testing.T) {
	g := sentenceGrammar()
	src := "cats is happy"
	d := parse(t, g, src)
	r := Correct(g, newRand(), d)
	assert.Equal(t, "cats are happy", r.Output)
	assert.Equal(t, []Issue{
		{Range: [2]int{5, 13}, Error: "count should be pl (was: sg)", Original: "is happy", Replacement: "are happy"},
	}, r.Issues)
	assert.True(t, d.Value.Equal(r.Derivation.Value))

	oldAdj := d.Leaves()[2]
	newAdj := r.Derivation.Leaves()[2]
	assert.Same(t, oldAdj, newAdj)
	assert.Same(t, d.Leaves()[0], r.Derivation.Leaves()[0])
}

func TestInvalidPhrasing(t *testing.T) {
	g := sentenceGrammar()
	r := Correct(g, newRand(), parse(t, g, "cat be happy"))
	assert.Equal(t, "cat is happy", r.Output)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, invalidPhrasing, r.Issues[0].Error)
	assert.Equal(t, [2]int{4, 12}, r.Issues[0].Range)
}

func TestCannotRegenerate(t *testing.T) {
	g := sentenceGrammar()
	src := "cat ain't sleep"
	core, logs := observer.New(zapcore.DebugLevel)
	r := New(g, WithLogger(zap.New(core))).Correct(newRand(), parse(t, g, src))
	assert.Equal(t, src, r.Output)
	assert.Equal(t, []Issue{
		{Range: [2]int{4, 15}, Error: invalidPhrasing, Original: "ain't sleep", Replacement: "ain't sleep"},
	}, r.Issues)
	assert.Equal(t, 1, logs.FilterMessage("cannot regenerate").Len())
	assert.Equal(t, 0, logs.FilterMessage("regenerated").Len())
}

func TestInputIsNotModified(t *testing.T) {
	g := sentenceGrammar()
	d := parse(t, g, "these cat sleep")
	before := d.String()
	Correct(g, newRand(), d)
	assert.Equal(t, before, d.String())
}

func TestFailedParse(t *testing.T) {
	g := sentenceGrammar()
	d, e := parser.Parse(g, "sleeps sleeps", &parser.Options{Window: 1, Penalty: -1})
	require.NoError(t, e)
	require.Nil(t, d)

	r := Correct(g, newRand(), d)
	assert.Nil(t, r.Derivation)
	assert.Empty(t, r.Output)
	assert.Empty(t, r.Issues)
}
