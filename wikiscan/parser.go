package wikiscan

import (
	"bufio"
	"io"
	"strings"
)

// MaxLineSize bounds the length of a single dump line read by Parse.
const MaxLineSize = 16 * 1024 * 1024

// Document is the result of parsing a dump: its XML elements in the order
// they were opened, with their text tokenized.
type Document struct {
	Nodes []*Node
	Loose Tokens // text found outside of any element
	Lines int
}

// Stats accumulates counts of parsed items and the source bytes attributed
// to each class of item.
type Stats struct {
	Lines    int
	Nodes    int
	Keys     int
	Values   int
	Words    int
	Entities int
	WikiTags int
	Failed   int

	XMLBytes        int64
	KeyBytes        int64
	ValueBytes      int64
	WordBytes       int64
	EntityBytes     int64
	WikiTagBytes    int64
	WhitespaceBytes int64
	NewlineBytes    int64
	FormatBytes     int64
}

// Total returns the sum of all classified bytes.
func (st Stats) Total() int64 {
	return st.XMLBytes + st.KeyBytes + st.ValueBytes + st.WordBytes +
		st.EntityBytes + st.WikiTagBytes + st.WhitespaceBytes +
		st.NewlineBytes + st.FormatBytes
}

// Parser holds all state of a single-pass dump parse: the open-element
// stack, the line and position counters, and the math section flag.
//
// A Parser is not safe for use from parallel goroutines; independent dumps
// may be parsed in parallel with independent Parsers.
type Parser struct {
	// Logf, if not nil, receives notices about malformed markup that had to
	// be recovered from.
	Logf func(format string, args ...interface{})

	doc   Document
	open  []*Node
	line  int
	pos   int
	math  bool
	stats Stats
}

// Parse reads and parses a whole dump.
func Parse(r io.Reader) (*Document, Stats, error) {
	var p Parser
	err := p.ParseAll(r)
	return p.Document(), p.Stats(), err
}

// ParseAll parses every line read from r.
func (p *Parser) ParseAll(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for sc.Scan() {
		p.ParseLine(sc.Text())
	}
	return sc.Err()
}

// Document returns the document parsed so far.
func (p *Parser) Document() *Document {
	p.doc.Lines = p.line
	return &p.doc
}

// Stats returns statistics collected so far.
func (p *Parser) Stats() Stats { return p.stats }

// Line returns the number of lines parsed so far.
func (p *Parser) Line() int { return p.line }

// Open returns the currently open elements, outermost first.
func (p *Parser) Open() []*Node { return p.open }

// ParseLine parses the next line of the dump, without its line terminator.
func (p *Parser) ParseLine(line string) {
	p.line++
	p.pos = 0
	p.math = false
	p.stats.Lines++
	p.stats.NewlineBytes++
	line = strings.TrimRight(line, "\r\n")

	// indentation before markup is regenerated on output
	if trimmed := strings.TrimLeft(line, " \t"); isXMLTagStart(trimmed) {
		p.stats.WhitespaceBytes += int64(len(line) - len(trimmed))
		line = trimmed
	}

	var opened *Node
	for i := 0; i < len(line); {
		if n, node := p.parseTag(line[i:]); n > 0 {
			opened = node
			i += n
			continue
		}
		dst := p.current()
		before := len(*dst)
		i += p.tokenize(dst, line[i:], true)
		if opened != nil && dst == &opened.Children && len(*dst) > before {
			opened.Data = true
		}
		opened = nil
	}
}

func (p *Parser) current() *Tokens {
	if n := len(p.open); n > 0 {
		return &p.open[n-1].Children
	}
	return &p.doc.Loose
}

func (p *Parser) nextPos() int {
	p.pos++
	return p.pos
}

func (p *Parser) logf(format string, args ...interface{}) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}

func (p *Parser) fail(format string, args ...interface{}) {
	p.stats.Failed++
	p.logf(format, args...)
}

// parseTag handles the XML tag that s starts with, if any, returning the
// number of bytes consumed and the element opened by it, if still open.
func (p *Parser) parseTag(s string) (int, *Node) {
	end := xmlTagEnd(s)
	if end == 0 {
		return 0, nil
	}
	p.stats.XMLBytes += int64(end)
	inner := s[1 : end-1]

	switch inner[0] {
	case '!', '?':
		pos := p.nextPos()
		p.addNode(&Node{
			Name:       inner,
			Start:      p.line,
			End:        p.line,
			StartPos:   pos,
			EndPos:     pos,
			Closed:     true,
			SelfClosed: true,
			Directive:  true,
		})
		return end, nil

	case '/':
		p.closeNode(strings.TrimSpace(inner[1:]))
		return end, nil
	}

	name, attrs, selfClose := parseOpenTag(inner)
	pos := p.nextPos()
	node := &Node{
		Name:     name,
		Attrs:    attrs,
		Start:    p.line,
		End:      p.line, // until closed
		StartPos: pos,
		EndPos:   pos,
	}
	for _, a := range attrs {
		p.stats.Keys++
		p.stats.KeyBytes += int64(len(a.Key))
		p.stats.Values++
		p.stats.ValueBytes += int64(len(a.Value))
	}
	p.addNode(node)
	if selfClose {
		node.Closed, node.SelfClosed = true, true
		return end, nil
	}
	p.open = append(p.open, node)
	return end, node
}

func (p *Parser) addNode(node *Node) {
	p.stats.Nodes++
	p.doc.Nodes = append(p.doc.Nodes, node)
}

// closeNode closes the innermost open element with the given name, leaving
// any elements opened after it open. Closing tags that match no open
// element are ignored.
func (p *Parser) closeNode(name string) {
	for i := len(p.open) - 1; i >= 0; i-- {
		if node := p.open[i]; node.Name == name {
			node.End, node.EndPos = p.line, p.nextPos()
			node.Closed = true
			copy(p.open[i:], p.open[i+1:])
			p.open[len(p.open)-1] = nil
			p.open = p.open[:len(p.open)-1]
			return
		}
	}
	p.logf("line %v: ignoring unmatched </%s>", p.line, name)
}

// Tokenize tokenizes a single line of element text, as if it were the first
// line of a document.
func Tokenize(text string) (Tokens, Stats) {
	var (
		p  Parser
		ts Tokens
	)
	p.line = 1
	p.tokenize(&ts, text, false)
	return ts, p.stats
}
