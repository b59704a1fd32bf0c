// Package lexer defines regexp-driven lexical analyzer.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/nlgram"
	"github.com/ava12/nlgram/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. incorrect string literals).
	// The purpose of these tokens is to generate more informative error messages.
	// Lexer will never return a token of this type, an error with message containing token text will be returned instead.
	ErrorTokenType = EoiTokenType - 1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = nlgram.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, may be any non-negative value. ErrorTokenType is treated specially.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer performs lexical analysis of a Source using regexp.Regexp.
// Lexer is immutable and safe for concurrent use.
// Each token type that may be returned by lexer maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace).
// Every byte of source must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description or that has negative token type is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i].TypeName = t.TypeName
		if t.Type >= 0 {
			ts[i].Type = t.Type
		} else {
			ts[i].Type = ErrorTokenType
		}
	}
	return &Lexer{types: ts, re: re}
}

func wrongCharError(s *source.Source, pos int) *nlgram.Error {
	r, _ := utf8.DecodeRune(s.Content()[pos:])
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	return nlgram.FormatErrorPos(source.NewPos(s, pos), WrongCharError, "%s", msg)
}

func wrongTokenError(t *Token) *nlgram.Error {
	return nlgram.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

// Next fetches token starting at byte offset pos.
// Returns the token (nil for insignificant lexemes), the offset following the lexeme, and an error.
// Returns EoI token if pos is at the end of source.
func (l *Lexer) Next(s *source.Source, pos int) (*Token, int, error) {
	content := s.Content()
	if pos >= len(content) {
		return EoiToken(s), pos, nil
	}

	match := l.re.FindSubmatchIndex(content[pos:])
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, pos, wrongCharError(s, pos)
	}

	for i := 2; i < len(match); i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		tokenType := ErrorTokenType
		typeName := ErrorTokenName
		if len(l.types) >= (i >> 1) {
			tokenType = l.types[(i>>1)-1].Type
			typeName = l.types[(i>>1)-1].TypeName
		}
		text := string(content[pos+match[i] : pos+match[i+1]])
		token := NewToken(tokenType, typeName, text, source.NewPos(s, pos+match[i]))
		if tokenType == ErrorTokenType {
			return nil, pos, wrongTokenError(token)
		}

		return token, pos + match[1], nil
	}

	return nil, pos + match[1], nil
}

// Scan splits whole source into tokens. The last returned token is always EoI token.
// Returns nil and nlgram.Error on lexical error.
func (l *Lexer) Scan(s *source.Source) ([]*Token, error) {
	var result []*Token
	pos := 0
	for {
		t, next, e := l.Next(s, pos)
		if e != nil {
			return nil, e
		}

		if t != nil {
			result = append(result, t)
			if t.Type() == EoiTokenType {
				return result, nil
			}
		}
		pos = next
	}
}
