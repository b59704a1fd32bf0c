/*
Package nlgram is a bidirectional natural-language grammar engine.

A grammar is a set of rules, each one carrying a merge function that builds a semantic value
from matched children and a split function that decomposes a target value into candidate
per-child values. The same grammar is used to parse text into the best-scoring value,
to generate text realizing a value, and to correct a parse so that every node agrees
on its grammatical tense.

Consists of subpackages:
  - value: generic tree-shaped semantic values;
  - template: pattern language over values with merge and split operations;
  - lambda: lambda DCS expressions as an alternative semantic value, with their own templates;
  - grammar: rules, terms, lexer contract, tokens, tenses, derivations, and grammar indexing;
  - parser: weighted Earley chart parser with optional fault tolerance;
  - generator: top-down generator, the dual of the parser;
  - corrector: tense agreement corrector built on top of the parser output and the generator;
  - lexer, source: regexp tokenizer and positioned source text used by pattern and example lexers;
  - cmd/nlgram: console utility driving the example grammars.

Typical usage is:

1. Build a grammar: rules with merge and split semantics, usually backed by templates,
and a lexer implementing grammar.Lexer.

2. Call parser.Parse to turn text into a derivation, generator.New(g).Generate to realize
a value as a derivation, corrector.New(g).Correct to repair agreement errors.
*/
package nlgram

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	TemplateErrors = 1   // used by template for pattern errors
	GrammarErrors  = 101 // used by grammar
	SyntaxErrors   = 201 // used by parser
	AlgebraErrors  = 301 // used by template for merge errors
	LexicalErrors  = 401 // used by lexer
	LambdaErrors   = 501 // used by lambda
)

// Error is the error type used by nlgram subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source text or 0.
	Line int

	// Col contains column number in source text or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// ErrorCode returns the code of e if e is an *Error, 0 otherwise.
func ErrorCode(e error) int {
	if ee, ok := e.(*Error); ok {
		return ee.Code
	}
	return 0
}
