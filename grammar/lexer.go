package grammar

import (
	"strings"

	"github.com/ava12/nlgram/value"
)

// Match is a single lexical candidate for a terminal.
type Match struct {
	Score float64
	Value value.Value

	// Text is the surface form the match stands for.
	Text string

	// Tenses lists grammatical tenses the surface form may have, empty if unmarked.
	Tenses []Tense
}

// Token is a single lexical unit of input text.
type Token struct {
	Text string

	// Start and End are byte offsets of the token in input text.
	Start, End int

	// Literals maps literal terms to matches.
	Literals map[string]*Match

	// Types maps token class terms to matches.
	Types map[string]*Match
}

// Lookup returns the token match for a terminal or nil.
func (t *Token) Lookup(term Term) *Match {
	switch term.Kind {
	case LiteralTerm:
		return t.Literals[term.Name]
	case TypeTerm:
		return t.Types[term.Name]
	}
	return nil
}

// Lexer is implemented per domain.
// Implementations must be safe for concurrent use if grammar is shared between goroutines.
type Lexer interface {
	// Lex splits text into tokens.
	Lex(text string) []*Token

	// Unlex returns every match realizing v for a terminal, none if the terminal cannot be generated.
	// Generator picks one of them using the caller's random source.
	Unlex(term Term, v value.Value) []*Match

	// Known reports whether the lexer may produce matches for a terminal.
	Known(term Term) bool
}

// Fixer is an optional Lexer capability used by corrector:
// Fix returns alternative matches for m compatible with tense t.
type Fixer interface {
	Fix(m *Match, t Tense) []*Match
}

// Joiner is an optional Lexer capability used by corrector to render output text.
type Joiner interface {
	Join(matches []*Match) string
}

// Join renders matches using j's Joiner capability or by joining match texts with spaces.
func Join(l Lexer, matches []*Match) string {
	if j, ok := l.(Joiner); ok {
		return j.Join(matches)
	}

	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Text
	}
	return strings.Join(texts, " ")
}
