package grammar

import (
	"github.com/ava12/nlgram"
)

// Configuration errors returned by New:
const (
	// UnknownStartError indicates start symbol without rules.
	UnknownStartError = nlgram.GrammarErrors + iota
	// UnknownSymbolError indicates a symbol referenced in RHS but having no rules.
	UnknownSymbolError
	// UnknownTerminalError indicates a literal or token type the lexer cannot produce.
	UnknownTerminalError
	// MergeArityError indicates merge semantics slot count not equal to RHS length.
	MergeArityError
	// SplitArityError indicates split semantics slot count not equal to RHS length.
	SplitArityError
	// PrecedenceError indicates precedence index out of RHS range or listed twice.
	PrecedenceError
)

func unknownStartError(name string) *nlgram.Error {
	return nlgram.FormatError(UnknownStartError, "start symbol $%s has no rules", name)
}

func unknownSymbolError(r *Rule, t Term) *nlgram.Error {
	return nlgram.FormatError(UnknownSymbolError, "symbol %s used in %s has no rules", t, r)
}

func unknownTerminalError(r *Rule, t Term) *nlgram.Error {
	return nlgram.FormatError(UnknownTerminalError, "terminal %s used in %s is unknown to lexer", t, r)
}

func mergeArityError(r *Rule, slots int) *nlgram.Error {
	return nlgram.FormatError(MergeArityError, "merge of %s expects %d children, got %d terms", r, slots, len(r.RHS))
}

func splitArityError(r *Rule, slots int) *nlgram.Error {
	return nlgram.FormatError(SplitArityError, "split of %s produces %d children, got %d terms", r, slots, len(r.RHS))
}

func precedenceError(r *Rule, index int) *nlgram.Error {
	return nlgram.FormatError(PrecedenceError, "bad precedence index %d in %s", index, r)
}
