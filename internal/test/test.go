// Package test contains assertion helpers shared by package tests.
package test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ava12/nlgram"
	"github.com/ava12/nlgram/value"
)

// ExpectErrorCode fails the test unless e is *nlgram.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) {
	t.Helper()
	require.Error(t, e, "expecting error code %d", expected)
	ee, valid := e.(*nlgram.Error)
	require.True(t, valid, "expecting *nlgram.Error, got %T: %v", e, e)
	require.Equal(t, expected, ee.Code, "unexpected error: %s", ee.Message)
}

var valueComparer = cmp.Comparer(func(a, b value.Value) bool {
	return a.Equal(b)
})

// ExpectValue fails the test unless values are structurally equal.
func ExpectValue(t testing.TB, expected, got value.Value) {
	t.Helper()
	if !expected.Equal(got) {
		t.Fatalf("expecting %s, got %s", expected, got)
	}
}

// ExpectValues fails the test unless value lists are structurally equal, reporting a diff.
func ExpectValues(t testing.TB, expected, got []value.Value) {
	t.Helper()
	if diff := cmp.Diff(expected, got, valueComparer); diff != "" {
		t.Fatalf("value mismatch (-expected +got):\n%s", diff)
	}
}
