package lexer

import (
	"github.com/ava12/nlgram/source"
)

// Token is a lexeme captured by Lexer. Implements nlgram.SourcePos.
type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

// NewToken creates new token.
func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

// Type returns token type.
func (t *Token) Type() int {
	return t.tokenType
}

// TypeName returns token type name.
func (t *Token) TypeName() string {
	return t.typeName
}

// Text returns captured text.
func (t *Token) Text() string {
	return t.text
}

// Start returns byte offset of the first token byte.
func (t *Token) Start() int {
	return t.pos.Pos()
}

// End returns byte offset following the last token byte.
func (t *Token) End() int {
	return t.pos.Pos() + len(t.text)
}

// Source returns token source or nil.
func (t *Token) Source() *source.Source {
	return t.pos.Source()
}

// SourceName returns source name or empty string.
func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

// Line returns line number or 0.
func (t *Token) Line() int {
	return t.pos.Line()
}

// Col returns column number or 0.
func (t *Token) Col() int {
	return t.pos.Col()
}

const (
	// EoiTokenType is the type of the token marking the end of input.
	EoiTokenType = -1
	// EoiTokenName is the type name for EoiTokenType.
	EoiTokenName = "-end-of-input-"
)

// EoiToken creates end-of-input token positioned at the end of s.
func EoiToken(s *source.Source) *Token {
	return &Token{tokenType: EoiTokenType, typeName: EoiTokenName, pos: source.NewPos(s, s.Len())}
}
