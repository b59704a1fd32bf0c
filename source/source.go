// Package source defines named input text with byte offset to line/column mapping.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source contains input text (an utterance or a template pattern) and its name.
// Source is safe for concurrent use except for LineCol calls that share line lookup hint.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates new Source. name may be empty.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// NewString creates new Source from a string.
func NewString(name, content string) *Source {
	return New(name, []byte(content))
}

// Name returns source name.
func (s *Source) Name() string {
	return s.name
}

// Content returns source content.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns content length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column (in runes) for given byte offset.
// Offsets outside of content are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	l, h := 0, len(s.lineStarts)-1
	for l < h {
		i := (l + h + 1) >> 1
		if s.lineStarts[i] <= pos {
			l = i
		} else {
			h = i - 1
		}
	}

	lineStart := s.lineStarts[l]
	return l + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos returns byte offset for given 1-based line and column, clamped to content length.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1]
	for col > 1 && res < l && s.content[res] != '\n' {
		_, size := utf8.DecodeRune(s.content[res:])
		res += size
		col--
	}
	return res
}

// Pos is a position in a Source, implements nlgram.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates position for given byte offset.
func NewPos(s *Source, pos int) Pos {
	if s == nil {
		return Pos{pos: pos}
	}

	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Source returns the source or nil.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

// Pos returns byte offset.
func (p Pos) Pos() int {
	return p.pos
}

// Line returns 1-based line number or 0.
func (p Pos) Line() int {
	return p.line
}

// Col returns 1-based column number or 0.
func (p Pos) Col() int {
	return p.col
}
