package repl

import (
	"strings"
	"unicode"

	"github.com/janelang/shji/pkg/parser"
	"github.com/janelang/shji/pkg/token"
)

// Unit accumulates physical lines into one unit of source text.
type Unit struct {
	lines     []string
	continued bool
}

// Add appends line. A trailing backslash, optionally followed by
// whitespace, is removed and marks the unit as continued.
func (u *Unit) Add(line string) {
	body, cont := splitContinuation(line)
	u.lines = append(u.lines, body)
	u.continued = cont
}

// Incomplete reports whether more lines are needed before the unit can run.
func (u *Unit) Incomplete() bool {
	return u.continued || BraceDepth(u.String()) > 0
}

// Empty reports whether nothing has been added since the last reset.
func (u *Unit) Empty() bool {
	return len(u.lines) == 0
}

func (u *Unit) String() string {
	return strings.Join(u.lines, "\n")
}

// Reset discards the accumulated lines.
func (u *Unit) Reset() {
	u.lines = u.lines[:0]
	u.continued = false
}

// Flush returns the accumulated source and resets the unit.
func (u *Unit) Flush() string {
	src := u.String()
	u.Reset()
	return src
}

func splitContinuation(line string) (string, bool) {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if body, ok := strings.CutSuffix(trimmed, `\`); ok {
		return body, true
	}
	return line, false
}

// BraceDepth counts `{` minus `}` tokens in src. Scanning stops at the first
// lexical failure so that the unit is submitted and the failure reported.
func BraceDepth(src string) int {
	t := parser.NewTokenizer(src)
	depth := 0
	for tok := range t.All() {
		switch tok.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
	}
	if t.Err() != nil {
		return 0
	}
	return depth
}
