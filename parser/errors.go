package parser

import (
	"sort"
	"strings"

	"github.com/ava12/nlgram"
	"github.com/ava12/nlgram/grammar"
	"github.com/ava12/nlgram/source"
)

// Errors returned in strict mode (zero window):
const (
	// UnexpectedTokenError indicates a token no state can accept.
	UnexpectedTokenError = nlgram.SyntaxErrors + iota
	// UnexpectedEoiError indicates input ended before a start symbol was completed.
	UnexpectedEoiError
)

func (c *chart) expected(scannable []int) string {
	seen := make(map[string]bool)
	var terms []string
	for _, idx := range scannable {
		s := c.states[idx]
		t := s.rule.Rule.RHS[s.cursor].String()
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return "nothing"
	}

	sort.Strings(terms)
	return strings.Join(terms, " | ")
}

func unexpectedTokenError(src *source.Source, t *grammar.Token, expected string) *nlgram.Error {
	return nlgram.FormatErrorPos(source.NewPos(src, t.Start), UnexpectedTokenError, "unexpected %q, expecting %s", t.Text, expected)
}

func unexpectedEoiError(src *source.Source, expected string) *nlgram.Error {
	return nlgram.FormatErrorPos(source.NewPos(src, src.Len()), UnexpectedEoiError, "unexpected end of input, expecting %s", expected)
}
