/*
nlgram is a console utility driving the example grammars. Usage is

	nlgram [-g arith|agree|query] [-v] parse [-w <n>] [-p <x>] [-d] [-t] <text>
	nlgram [-g arith|agree|query] [-v] generate [-s <seed>] [--greedy] <value>
	nlgram [-g arith|agree|query] [-v] correct [-s <seed>] <text>

parse prints the value of the best derivation and its score;

generate prints text realizing a value written as a literal, e.g. 42 or "{subject: {pronoun: 'we'}, verb: 'sleep'}";
query grammar values are lambda expressions in quotes, e.g. "'type.person & lives_in.france'";

correct prints corrected text followed by the list of issues.
*/
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ava12/nlgram/corrector"
	"github.com/ava12/nlgram/examples/agree"
	"github.com/ava12/nlgram/examples/arith"
	"github.com/ava12/nlgram/examples/query"
	"github.com/ava12/nlgram/generator"
	"github.com/ava12/nlgram/grammar"
	"github.com/ava12/nlgram/parser"
	"github.com/ava12/nlgram/template"
)

var grammars = map[string]func() *grammar.Grammar{
	"arith": arith.Grammar,
	"agree": agree.Grammar,
	"query": query.Grammar,
}

type app struct {
	grammarName string
	verbose     bool
	logger      *zap.Logger

	window  int
	penalty float64
	debug   bool
	tree    bool

	seed   uint64
	greedy bool
}

func (a *app) grammar() (*grammar.Grammar, error) {
	f, found := grammars[a.grammarName]
	if !found {
		return nil, fmt.Errorf("unknown grammar %q", a.grammarName)
	}
	return f(), nil
}

func (a *app) rand(cmd *cobra.Command) *rand.Rand {
	seed := a.seed
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}
	a.logger.Debug("random source", zap.Uint64("seed", seed))
	return rand.New(rand.NewPCG(seed, seed))
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "nlgram",
		Short:         "Parse, generate and correct text with example grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var e error
			a.logger, e = config.Build()
			if e != nil {
				return fmt.Errorf("failed to initialize logger: %w", e)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.grammarName, "grammar", "g", "arith", "grammar name: arith, agree or query")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging to stderr")

	parseCmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Print the value of the best derivation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.parse(cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}
	parseCmd.Flags().IntVarP(&a.window, "window", "w", 0, "max number of skipped tokens, 0 means strict parsing")
	parseCmd.Flags().Float64VarP(&a.penalty, "penalty", "p", -1, "score added for each skipped token")
	parseCmd.Flags().BoolVarP(&a.debug, "debug", "d", false, "dump parser chart (with --verbose)")
	parseCmd.Flags().BoolVarP(&a.tree, "tree", "t", false, "print derivation tree")

	generateCmd := &cobra.Command{
		Use:   "generate <value>",
		Short: "Print text realizing a value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.OutOrStdout(), a.rand(cmd), strings.Join(args, " "))
		},
	}
	generateCmd.Flags().Uint64VarP(&a.seed, "seed", "s", 0, "random seed, random if not set")
	generateCmd.Flags().BoolVar(&a.greedy, "greedy", false, "always use the best scoring alternative")

	correctCmd := &cobra.Command{
		Use:   "correct <text>",
		Short: "Print corrected text and the list of issues",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.correct(cmd.OutOrStdout(), a.rand(cmd), strings.Join(args, " "))
		},
	}
	correctCmd.Flags().Uint64VarP(&a.seed, "seed", "s", 0, "random seed, random if not set")

	root.AddCommand(parseCmd, generateCmd, correctCmd)
	return root
}

func (a *app) parserOptions() *parser.Options {
	return &parser.Options{
		Name:    "input",
		Window:  a.window,
		Penalty: a.penalty,
		Debug:   a.debug,
		Logger:  a.logger,
	}
}

func (a *app) parse(w io.Writer, text string) error {
	g, e := a.grammar()
	if e != nil {
		return e
	}

	d, e := parser.Parse(g, text, a.parserOptions())
	if e != nil {
		return e
	}
	if d == nil {
		return fmt.Errorf("no parse")
	}

	if a.tree {
		fmt.Fprint(w, d.String())
	}
	fmt.Fprintf(w, "%s (score: %g)\n", d.Value, d.Score)
	return nil
}

func (a *app) generate(w io.Writer, rng *rand.Rand, src string) error {
	g, e := a.grammar()
	if e != nil {
		return e
	}
	v, e := template.ParseValue(src)
	if e != nil {
		return e
	}

	opts := []generator.Option{generator.WithLogger(a.logger)}
	if a.greedy {
		opts = append(opts, generator.WithPolicy(generator.Greedy{}))
	}
	d := generator.New(g, opts...).Generate(rng, v)
	if d == nil {
		return fmt.Errorf("cannot realize %s", v)
	}

	r := corrector.New(g, corrector.WithLogger(a.logger)).Correct(rng, d)
	fmt.Fprintln(w, r.Output)
	return nil
}

func (a *app) correct(w io.Writer, rng *rand.Rand, text string) error {
	g, e := a.grammar()
	if e != nil {
		return e
	}

	d, e := parser.Parse(g, text, a.parserOptions())
	if e != nil {
		return e
	}
	if d == nil {
		return fmt.Errorf("no parse")
	}

	r := corrector.New(g, corrector.WithLogger(a.logger)).Correct(rng, d)
	fmt.Fprintln(w, r.Output)
	for _, is := range r.Issues {
		fmt.Fprintf(w, "  %d-%d: %s: %q -> %q\n", is.Range[0], is.Range[1], is.Error, is.Original, is.Replacement)
	}
	return nil
}

func main() {
	if e := newRootCmd().Execute(); e != nil {
		fmt.Fprintln(os.Stderr, "error:", e)
		os.Exit(1)
	}
}
