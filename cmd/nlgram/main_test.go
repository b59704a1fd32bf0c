package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return out.String(), e
}

func TestParse(t *testing.T) {
	out, e := run(t, "parse", "(1+2)*3-4+5*6")
	require.NoError(t, e)
	assert.Equal(t, "35 (score: 0)\n", out)

	out, e = run(t, "parse", "-w", "1", "2+x3")
	require.NoError(t, e)
	assert.Equal(t, "5 (score: -1)\n", out)

	_, e = run(t, "parse", "2+x3")
	assert.ErrorContains(t, e, `unexpected "x"`)

	_, e = run(t, "parse", "-w", "1", "2+xy3")
	assert.EqualError(t, e, "no parse")

	out, e = run(t, "-g", "query", "parse", "people who live in France")
	require.NoError(t, e)
	assert.Equal(t, "lives_in.france & type.person (score: 0)\n", out)

	_, e = run(t, "-g", "klingon", "parse", "1")
	assert.ErrorContains(t, e, "unknown grammar")
}

func TestParseTree(t *testing.T) {
	out, e := run(t, "parse", "-t", "7")
	require.NoError(t, e)
	assert.Contains(t, out, "$expr -> $sum = 7 (0)\n")
	assert.Contains(t, out, `%num "7" = 7`)
}

func TestGenerate(t *testing.T) {
	out, e := run(t, "generate", "--greedy", "-s", "1", "12")
	require.NoError(t, e)
	assert.Equal(t, "12\n", out)

	out, e = run(t, "-g", "agree", "generate", "--greedy", "-s", "1", "{subject: {pronoun: 'we'}, verb: 'sleep'}")
	require.NoError(t, e)
	assert.Equal(t, "we sleep.\n", out)

	out, e = run(t, "-g", "query", "generate", "--greedy", "-s", "1", "'R[capital].france'")
	require.NoError(t, e)
	assert.Equal(t, "the capital of France\n", out)

	_, e = run(t, "generate", "'twelve'")
	assert.ErrorContains(t, e, "cannot realize")

	_, e = run(t, "generate", "{1")
	assert.Error(t, e)
}

func TestCorrect(t *testing.T) {
	out, e := run(t, "-g", "agree", "correct", "-s", "3", "These cat sleeps.")
	require.NoError(t, e)
	assert.Equal(t, "This cat sleeps.\n  0-5: count should be sg (was: pl): \"These\" -> \"This\"\n", out)
}
