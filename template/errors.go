package template

import (
	"github.com/ava12/nlgram"
	"github.com/ava12/nlgram/lexer"
	"github.com/ava12/nlgram/value"
)

// Pattern errors, returned when a template is constructed:
const (
	// UnexpectedTokenError indicates a token that cannot appear at its position.
	UnexpectedTokenError = nlgram.TemplateErrors + iota
	// UnexpectedEofError indicates incomplete pattern.
	UnexpectedEofError
	// SlotRangeError indicates variable index not less than declared slot count.
	SlotRangeError
	// DuplicateKeyError indicates a dict pattern defining the same key twice.
	DuplicateKeyError
	// BadNumberError indicates a malformed numeric literal.
	BadNumberError
)

// Algebra errors, returned by Merge:
const (
	// ArityError indicates more substitutions than declared slots.
	ArityError = nlgram.AlgebraErrors + iota
	// ListSpreadError indicates a list spread that merged to a non-list value.
	ListSpreadError
	// DictSpreadError indicates a dict spread that merged to a non-dict value.
	DictSpreadError
	// SingletonMergeError indicates a list value merged into a key holding a singleton.
	SingletonMergeError
	// ListMergeError indicates a singleton value merged into a key holding a list.
	ListMergeError
)

func unexpectedTokenError(t *lexer.Token) *nlgram.Error {
	if t.Type() == lexer.EoiTokenType {
		return nlgram.FormatErrorPos(t, UnexpectedEofError, "unexpected end of pattern")
	}
	return nlgram.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q", t.Text())
}

func slotRangeError(t *lexer.Token, index, slots int) *nlgram.Error {
	return nlgram.FormatErrorPos(t, SlotRangeError, "variable index %d out of range, template has %d slots", index, slots)
}

func duplicateKeyError(t *lexer.Token, key string) *nlgram.Error {
	return nlgram.FormatErrorPos(t, DuplicateKeyError, "key %q already defined", key)
}

func badNumberError(t *lexer.Token) *nlgram.Error {
	return nlgram.FormatErrorPos(t, BadNumberError, "malformed number %q", t.Text())
}

func arityError(slots, got int) *nlgram.Error {
	return nlgram.FormatError(ArityError, "wrong number of substitutions: expecting at most %d, got %d", slots, got)
}

func listSpreadError(v value.Value) *nlgram.Error {
	return nlgram.FormatError(ListSpreadError, "list spread must merge to a list, got %s %s", v.Kind(), v)
}

func dictSpreadError(v value.Value) *nlgram.Error {
	return nlgram.FormatError(DictSpreadError, "dict spread must merge to a dict, got %s %s", v.Kind(), v)
}

func singletonMergeError(key string) *nlgram.Error {
	return nlgram.FormatError(SingletonMergeError, "key %q: singleton cannot merge with list", key)
}

func listMergeError(key string) *nlgram.Error {
	return nlgram.FormatError(ListMergeError, "key %q: list cannot merge with singleton", key)
}
