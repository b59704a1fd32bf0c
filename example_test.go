package nlgram_test

import (
	"fmt"
	"math/rand/v2"

	"github.com/ava12/nlgram/corrector"
	"github.com/ava12/nlgram/examples/agree"
	"github.com/ava12/nlgram/examples/arith"
	"github.com/ava12/nlgram/generator"
	"github.com/ava12/nlgram/grammar"
	"github.com/ava12/nlgram/parser"
	"github.com/ava12/nlgram/template"
	"github.com/ava12/nlgram/value"
)

func Example() {
	g := arith.Grammar()
	d, e := parser.Parse(g, "(1+2)*3-4+5*6", nil)
	if e != nil {
		fmt.Println(e)
		return
	}
	fmt.Println(d.Value)

	rng := rand.New(rand.NewPCG(1, 2))
	d = generator.New(g, generator.WithPolicy(generator.Greedy{})).Generate(rng, value.Number(42))
	fmt.Println(grammar.Join(g.Lexer(), d.Matches()))

	// Output:
	// 35
	// 42
}

func Example_template() {
	t := template.MustParse("[$0, ...$1, ...$2]", 3)
	for _, subs := range t.Split(template.MustParseValue("[42, 'is']")) {
		v, _ := t.Merge(subs)
		fmt.Println(subs, "->", v)
	}

	// Output:
	// [null null [42, 'is']] -> [42, 'is']
	// [42 null ['is']] -> [42, 'is']
	// [42 ['is'] null] -> [42, 'is']
}

func Example_correct() {
	g := agree.Grammar()
	d, e := parser.Parse(g, "These cat sleeps.", nil)
	if e != nil {
		fmt.Println(e)
		return
	}

	r := corrector.Correct(g, rand.New(rand.NewPCG(1, 2)), d)
	fmt.Println(r.Output)
	for _, is := range r.Issues {
		fmt.Println(is.Range, is.Error)
	}

	// Output:
	// This cat sleeps.
	// [0 5] count should be sg (was: pl)
}
