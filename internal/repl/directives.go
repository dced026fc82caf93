package repl

import (
	"context"
	"strings"
)

// MsgInvalidDirective is printed for an unrecognised dot-prefixed line.
const MsgInvalidDirective = "Invalid REPL command. To exit use .exit"

const (
	dirExit   = ".exit"
	dirRepeat = ".repeat"
	dirClear  = ".clear"
)

var directiveNames = []string{dirExit, dirRepeat, dirClear}

// IsDirective reports whether line is a host directive rather than source.
func IsDirective(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ".")
}

// directive runs a host directive and reports whether the loop should stop.
func (s *Session) directive(ctx context.Context, line string) bool {
	name := strings.TrimSpace(line)
	s.logger.Debug("directive", "name", name)

	switch name {
	case dirExit:
		return true
	case dirRepeat:
		if s.last == "" {
			s.r.Styled(s.r.Styles().Muted, "nothing to repeat")
			return false
		}
		_, _ = s.Exec(ctx, s.last)
	case dirClear:
		s.env.Clear()
		s.r.Styled(s.r.Styles().Muted, "environment cleared")
	default:
		s.r.Println(MsgInvalidDirective)
	}
	return false
}
