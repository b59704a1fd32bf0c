package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
		},
		"яя\nя": {
			{2, 1, 2},
			{4, 1, 3},
			{5, 2, 1},
		},
	}

	for text, results := range samples {
		source := NewString("", text)
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			assert.Equal(t, res, result{res.pos, l, c}, "sample %q", text)
		}
	}
}

func TestSourcePos(t *testing.T) {
	s := NewString("src", "0\n2\n4\n6789abcde\n")
	samples := []result{
		{0, 0, 1},
		{0, 1, 1},
		{2, 2, 1},
		{9, 4, 4},
		{15, 4, 100},
		{16, 100, 1},
	}

	for _, res := range samples {
		assert.Equal(t, res.pos, s.Pos(res.line, res.col), "line %d col %d", res.line, res.col)
	}
}

func TestNewPos(t *testing.T) {
	s := NewString("src", "ab\ncd")
	p := NewPos(s, 4)
	assert.Equal(t, "src", p.SourceName())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
	assert.Equal(t, 4, p.Pos())

	p = NewPos(nil, 3)
	assert.Equal(t, "", p.SourceName())
	assert.Equal(t, 0, p.Line())
}
