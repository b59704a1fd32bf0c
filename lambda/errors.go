package lambda

import (
	"github.com/ava12/nlgram"
	"github.com/ava12/nlgram/lexer"
	"github.com/ava12/nlgram/value"
)

const (
	// UnexpectedTokenError indicates a token that cannot appear at its position.
	UnexpectedTokenError = nlgram.LambdaErrors + iota
	// UnexpectedEofError indicates incomplete expression.
	UnexpectedEofError
	// SlotRangeError indicates variable index not less than declared slot count.
	SlotRangeError
	// EmptyExpressionError indicates an expression text that merges to unknown.
	EmptyExpressionError
	// NotLambdaError indicates a value that does not hold an expression.
	NotLambdaError
)

func unexpectedTokenError(t *lexer.Token) *nlgram.Error {
	if t.Type() == lexer.EoiTokenType {
		return nlgram.FormatErrorPos(t, UnexpectedEofError, "unexpected end of expression")
	}
	return nlgram.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q", t.Text())
}

func slotRangeError(t *lexer.Token, index, slots int) *nlgram.Error {
	return nlgram.FormatErrorPos(t, SlotRangeError, "variable index %d out of range, template has %d slots", index, slots)
}

func emptyExpressionError(text string) *nlgram.Error {
	return nlgram.FormatError(EmptyExpressionError, "empty lambda expression %q", text)
}

func notLambdaError(v value.Value) *nlgram.Error {
	return nlgram.FormatError(NotLambdaError, "expecting lambda expression, got %s %s", v.Kind(), v)
}
