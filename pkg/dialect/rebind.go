package dialect

import "strings"

// Rebind rewrites every "?" placeholder in sql into the dialect's placeholder
// style, numbering from 1. A "?" inside a quoted string, a quoted identifier
// or a comment is left alone; any other "?" counts as a placeholder. Dialects
// without a Placeholder return sql unchanged.
func (d *Dialect) Rebind(sql string) string {
	if d.Placeholder == nil || !strings.Contains(sql, "?") {
		return sql
	}

	s := scanner{src: sql, backslashEscapes: d.backslashEscapes}
	var b strings.Builder
	b.Grow(len(sql) + 8)

	n := 0
	for s.more() {
		start := s.pos
		if s.skipQuoted() || s.skipComment() {
			b.WriteString(sql[start:s.pos])
			continue
		}
		c := sql[s.pos]
		s.pos++
		if c == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// scanner walks SQL text far enough to tell placeholders apart from quoted
// text and comments. It is not a SQL parser.
type scanner struct {
	src              string
	pos              int
	backslashEscapes bool
}

func (s *scanner) more() bool {
	return s.pos < len(s.src)
}

func (s *scanner) peek(offset int) byte {
	if i := s.pos + offset; i < len(s.src) {
		return s.src[i]
	}
	return 0
}

// skipQuoted consumes a '...', "..." or `...` run. Doubled quote characters
// stay inside the run. Backslash escapes apply in E'...' strings and, for
// dialects that use them, in every single-quoted string.
func (s *scanner) skipQuoted() bool {
	c := s.peek(0)
	escapes := false
	switch {
	case c == '\'':
		escapes = s.backslashEscapes || s.prefixedByE()
	case c == '"' || c == '`':
	default:
		return false
	}

	s.pos++
	for s.more() {
		ch := s.src[s.pos]
		switch {
		case escapes && ch == '\\':
			s.pos += 2
			continue
		case ch == c && s.peek(1) == c:
			s.pos += 2
			continue
		case ch == c:
			s.pos++
			return true
		}
		s.pos++
	}
	if s.pos > len(s.src) {
		s.pos = len(s.src)
	}
	return true
}

func (s *scanner) prefixedByE() bool {
	if s.pos == 0 {
		return false
	}
	prev := s.src[s.pos-1]
	if prev != 'E' && prev != 'e' {
		return false
	}
	if s.pos == 1 {
		return true
	}
	before := s.src[s.pos-2]
	return !isIdentByte(before)
}

// skipComment consumes a "-- ..." line comment or a "/* ... */" block
// comment. Block comments nest.
func (s *scanner) skipComment() bool {
	switch {
	case s.peek(0) == '-' && s.peek(1) == '-':
		end := strings.IndexByte(s.src[s.pos:], '\n')
		if end < 0 {
			s.pos = len(s.src)
		} else {
			s.pos += end
		}
		return true
	case s.peek(0) == '/' && s.peek(1) == '*':
		s.pos += 2
		depth := 1
		for s.more() && depth > 0 {
			switch {
			case s.peek(0) == '/' && s.peek(1) == '*':
				depth++
				s.pos += 2
			case s.peek(0) == '*' && s.peek(1) == '/':
				depth--
				s.pos += 2
			default:
				s.pos++
			}
		}
		if s.pos > len(s.src) {
			s.pos = len(s.src)
		}
		return true
	}
	return false
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
