package wikiscan

import "strings"

// span is the tokenizer state for one contiguous run of text: the whole text
// of an element on a line, or one field of a wiki-tag.
type span struct {
	p         *Parser
	dst       *Tokens
	stopAtXML bool

	buf  []byte // pending word bytes
	pre  int    // pending whitespace for the next token
	last *Meta  // last token emitted

	fmts  []openFormat // at most two: outer, inner
	start bool         // the next token is the first of a format
}

type openFormat struct {
	f     Format
	delim string
	pre   int // pending whitespace when it opened
	n     int // tokens emitted since it opened
}

// tokenize scans text into tokens appended to dst, returning how many bytes
// were consumed. When stopAtXML is set, scanning stops at the first XML tag.
func (p *Parser) tokenize(dst *Tokens, text string, stopAtXML bool) int {
	s := span{p: p, dst: dst, stopAtXML: stopAtXML}
	return s.scan(text)
}

func (s *span) scan(text string) int {
	i := 0
	for i < len(text) {
		c := text[i]
		switch c {
		case ' ', '\t':
			j := i + 1
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			s.space(j - i)
			i = j
			continue

		case '\r', '\n':
			s.flush(0)
			s.p.stats.NewlineBytes++
			i++
			continue

		case '<':
			if s.stopAtXML && isXMLTagStart(text[i:]) {
				s.flush(0)
				return i
			}

		case '[', '{':
			if n := s.wikiTag(text[i:]); n > 0 {
				i += n
				continue
			}

		case '\'':
			if n := s.quotes(text[i:]); n > 0 {
				i += n
				continue
			}

		case '=':
			if n := s.heading(text, i); n > 0 {
				i += n
				continue
			}

		case '&':
			if n := s.entity(text[i:]); n > 0 {
				i += n
				continue
			}

		case '\\':
			s.sniffMath(text[i+1:], true)

		case '/':
			s.sniffMath(text[i+1:], false)
		}
		s.buf = append(s.buf, c)
		i++
	}
	s.end()
	return i
}

// end finishes the span: formats opened without a token after them are
// literal text, and any trailing whitespace belongs to the last token.
func (s *span) end() {
	s.flush(0)
	for i, of := range s.fmts {
		if of.n == 0 {
			s.flush(s.unopen(i, ""))
			break
		}
	}
	if s.pre > 0 && s.last != nil {
		s.last.InnerSpace += s.pre
		s.pre = 0
	}
}

func (s *span) emit(t Token) {
	m := t.Base()
	m.Line = s.p.line
	m.Position = s.p.nextPos()
	m.PreSpace = s.pre
	m.DataFormat, m.OwnFormat = NoFormat, NoFormat
	switch len(s.fmts) {
	case 1:
		m.OwnFormat = s.fmts[0].f
	case 2:
		m.DataFormat = s.fmts[0].f
		m.OwnFormat = s.fmts[1].f
	}
	m.FormatStart = s.start
	for i := range s.fmts {
		s.fmts[i].n++
	}
	s.start = false
	s.pre = 0
	s.last = m
	s.dst.add(t)
}

// flush emits any pending word, with the given trailing whitespace.
func (s *span) flush(inner int) bool {
	if len(s.buf) == 0 {
		return false
	}
	w := &Word{Text: string(s.buf)}
	s.buf = s.buf[:0]
	s.emit(w)
	w.InnerSpace = inner
	s.p.stats.Words++
	s.p.stats.WordBytes += int64(len(w.Text))
	return true
}

func (s *span) space(n int) {
	s.p.stats.WhitespaceBytes += int64(n)
	if !s.flush(n) {
		s.pre += n
	}
}

// quotes handles a run of apostrophes at the head of text.
func (s *span) quotes(text string) int {
	n := quoteRun(text)
	if n < 2 {
		return 0
	}
	lit := 0
	switch {
	case n == 4:
		lit = 1
	case n > 5:
		lit = n - 5
	}
	s.buf = append(s.buf, text[:lit]...)
	f, _ := LookupFormat(text[lit:n])
	s.format(f, text[lit:n])
	return n
}

// heading handles a run of '=' at text[i:] when it can delimit a heading:
// opening one at the start of the span, or closing the open heading of the
// same level when followed only by whitespace.
func (s *span) heading(text string, i int) int {
	n := equalsRun(text[i:])
	f, ok := LookupFormat(text[i : i+n])
	if !ok || !f.IsHeading() {
		return 0
	}
	if atStart := s.last == nil && len(s.buf) == 0; !atStart {
		rest := strings.TrimLeft(text[i+n:], " \t\r\n")
		atEnd := rest == "" || (s.stopAtXML && isXMLTagStart(rest))
		if !atEnd || !s.isOpen(f) {
			return 0
		}
	}
	s.format(f, text[i:i+n])
	return n
}

func (s *span) isOpen(f Format) bool {
	for _, of := range s.fmts {
		if of.f == f {
			return true
		}
	}
	return false
}

// format applies a format delimiter: closing a matching open format,
// otherwise opening a new one. Only two formats may be open at once, a third
// delimiter is kept as literal text.
func (s *span) format(f Format, delim string) {
	for i := len(s.fmts) - 1; i >= 0; i-- {
		if s.fmts[i].f != f {
			continue
		}
		s.flush(0)
		if s.fmts[i].n == 0 {
			s.unopen(i, delim)
			return
		}
		s.closeFormat(i)
		s.p.stats.FormatBytes += int64(len(delim))
		return
	}

	if f == BoldItalic && len(s.fmts) == 2 && s.boldAndItalic() {
		s.flush(0)
		if s.fmts[1].n == 0 {
			inner := s.fmts[1].f.Delim()
			s.unopen(1, inner)
			s.closeFormat(0)
			s.p.stats.FormatBytes += int64(len(delim) - len(inner))
			return
		}
		s.closeFormat(1)
		s.closeFormat(0)
		s.p.stats.FormatBytes += int64(len(delim))
		return
	}

	if len(s.fmts) == 2 {
		s.buf = append(s.buf, delim...)
		s.p.fail("line %v: %q inside both %v and %v, kept as text",
			s.p.line, delim, s.fmts[0].f, s.fmts[1].f)
		return
	}

	s.flush(0)
	s.fmts = append(s.fmts, openFormat{f: f, delim: delim, pre: s.pre})
	s.start = true
	s.p.stats.FormatBytes += int64(len(delim))
}

// unopen turns the formats from i on, none of which carried a token, back
// into literal text, followed by the closing delimiter if one is given.
// It returns the whitespace pending after the literal text.
func (s *span) unopen(i int, closing string) int {
	fmts := s.fmts[i:]
	s.fmts = s.fmts[:i]
	for j, of := range fmts {
		if j > 0 {
			s.literalSpace(of.pre - fmts[j-1].pre)
		}
		s.buf = append(s.buf, of.delim...)
		s.p.stats.FormatBytes -= int64(len(of.delim))
	}
	trailing := s.pre - fmts[len(fmts)-1].pre
	s.pre = fmts[0].pre
	if closing != "" {
		s.literalSpace(trailing)
		s.buf = append(s.buf, closing...)
		trailing = 0
	}
	s.start = false
	return trailing
}

func (s *span) literalSpace(n int) {
	for i := 0; i < n; i++ {
		s.buf = append(s.buf, ' ')
	}
	s.p.stats.WhitespaceBytes -= int64(n)
}

func (s *span) boldAndItalic() bool {
	a, b := s.fmts[0].f, s.fmts[1].f
	return (a == Bold && b == Italic) || (a == Italic && b == Bold)
}

func (s *span) closeFormat(i int) {
	s.flush(0)
	if s.fmts[i].n > 0 {
		s.last.FormatEnd = true
	}
	s.fmts = append(s.fmts[:i], s.fmts[i+1:]...)
	if s.start {
		s.start = false
		for _, of := range s.fmts {
			if of.n == 0 {
				s.start = true
			}
		}
	}
}

// entity handles an '&' at the head of text, returning 0 unless a known
// entity reference follows within MaxEntityLen bytes.
func (s *span) entity(text string) int {
	semi := -1
	for j := 1; j < len(text) && j <= MaxEntityLen; j++ {
		if c := text[j]; c == ';' {
			semi = j
			break
		} else if c == ' ' || c == '&' {
			break
		}
	}
	if semi < 0 {
		return 0
	}
	name := text[1:semi]
	val, ok := LookupEntity(name)
	if !ok {
		return 0
	}
	if name == "lt" {
		if rest := text[semi+1:]; hasPrefixFold(rest, "math") {
			s.p.math = true
		} else if s.p.math && hasPrefixFold(rest, "/math") {
			s.p.math = false
		}
	}
	s.flush(0)
	s.emit(&Entity{Name: name, Text: val})
	s.p.stats.Entities++
	s.p.stats.EntityBytes += int64(semi + 1)
	return semi + 1
}

// sniffMath tracks LaTeX-like math sections: "\math" or "\begin" start one,
// "\end", "/math" or "/end" end it.
func (s *span) sniffMath(rest string, backslash bool) {
	switch {
	case backslash && (hasPrefixFold(rest, "math") || hasPrefixFold(rest, "begin")):
		s.p.math = true
	case s.p.math && hasPrefixFold(rest, "end"):
		s.p.math = false
	case s.p.math && !backslash && hasPrefixFold(rest, "math"):
		s.p.math = false
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// wikiTag handles a wiki-tag opener at the head of text. The tag's fields
// are tokenized recursively, each in a span of its own.
func (s *span) wikiTag(text string) int {
	if len(text) < 2 {
		return 0
	}
	switch text[:2] {
	case "[[":
	case "{{", "{|":
		if s.p.math {
			return 0
		}
	default:
		return 0
	}
	t, n := MatchTag(text)
	if t == NoTag {
		return 0
	}

	s.flush(0)
	ext := scanTagExtent(text, n, t.Close(), s.stopAtXML)
	content := text[n:ext.end]
	tag := &WikiTag{
		Type:   t,
		Opener: text[:n],
		Length: len(content),
		Closed: ext.closed,
		Target: content,
	}
	s.emit(tag)
	s.p.stats.WikiTags++

	// field bytes are counted as they are tokenized
	markup := ext.next
	if len(ext.pipes) > 0 {
		markup -= ext.end - ext.pipes[0] - len(ext.pipes)
	}
	s.p.stats.WikiTagBytes += int64(markup)

	if len(ext.pipes) > 0 {
		tag.Target = text[n:ext.pipes[0]]
		tag.Split = true

		math := s.p.math
		if t == MathTag {
			s.p.math = true
		}
		for i, from := range ext.pipes {
			to := ext.end
			last := i == len(ext.pipes)-1
			if !last {
				to = ext.pipes[i+1]
			}
			s.p.field(tag, text[from+1:to], last)
		}
		s.p.math = math
	}
	return ext.next
}

// field tokenizes one '|' separated field of a wiki-tag. The last token of
// every field but the final one is marked as followed by a separator; empty
// fields get an empty word to carry the mark.
func (p *Parser) field(tag *WikiTag, text string, final bool) {
	before := len(tag.Children)
	fs := span{p: p, dst: &tag.Children}
	fs.scan(text)
	if final {
		return
	}
	if len(tag.Children) == before {
		fs.emit(&Word{})
		p.stats.Words++
	}
	tag.Children[len(tag.Children)-1].Base().Pipe = true
}
