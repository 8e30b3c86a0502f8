// Package transpile writes a parsed dump back out as XML with wiki markup,
// replaying its elements and tokens line by line.
package transpile

import (
	"io"
	"sort"
	"strings"

	"github.com/jcorbin/wicked/internal/wickutil"
	"github.com/jcorbin/wicked/wikiscan"
)

// Options controls output rendering.
type Options struct {
	// Indent is written once per open multi-line element before any tag that
	// starts a line; defaults to two spaces.
	Indent string

	// DecodeEntities writes entities as their decoded text rather than as
	// "&name;" references.
	DecodeEntities bool
}

type event struct {
	pos   int
	node  *wikiscan.Node
	close bool
	token wikiscan.Token
}

// Write reconstructs doc into w.
func Write(w io.Writer, doc *wikiscan.Document, opts Options) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	tr := transpiler{Options: opts}
	tr.index(doc)
	line := 0
	return wickutil.WriteLines(w, func(w io.Writer, _ func()) bool {
		line++
		if line >= len(tr.lines) {
			return false
		}
		tr.writeLine(w, tr.lines[line])
		return true
	})
}

type transpiler struct {
	Options
	lines [][]event // indexed by line number
	depth int
}

func (tr *transpiler) index(doc *wikiscan.Document) {
	tr.lines = make([][]event, doc.Lines+1)
	add := func(line int, ev event) {
		if line < 1 {
			return
		}
		for line >= len(tr.lines) {
			tr.lines = append(tr.lines, nil)
		}
		tr.lines[line] = append(tr.lines[line], ev)
	}
	addTokens := func(ts wikiscan.Tokens) {
		for _, t := range ts {
			add(t.Base().Line, event{pos: t.Base().Position, token: t})
		}
	}
	for _, node := range doc.Nodes {
		add(node.Start, event{pos: node.StartPos, node: node})
		if node.Closed && !node.SelfClosed {
			add(node.End, event{pos: node.EndPos, node: node, close: true})
		}
		addTokens(node.Children)
	}
	addTokens(doc.Loose)
	for _, evs := range tr.lines {
		sort.SliceStable(evs, func(i, j int) bool { return evs[i].pos < evs[j].pos })
	}
}

func (tr *transpiler) writeLine(w io.Writer, evs []event) {
	var fs formatStack
	for i, ev := range evs {
		first := i == 0
		switch {
		case ev.token != nil:
			var next wikiscan.Token
			if i+1 < len(evs) {
				next = evs[i+1].token
			}
			tr.writeToken(w, ev.token, next, &fs)

		case ev.close:
			fs = fs[:0]
			node := ev.node
			if !node.Data && node.Start != node.End && tr.depth > 0 {
				tr.depth--
			}
			if first {
				tr.writeIndent(w)
			}
			io.WriteString(w, "</")
			io.WriteString(w, node.Name)
			io.WriteString(w, ">")

		default:
			fs = fs[:0]
			node := ev.node
			if first {
				tr.writeIndent(w)
			}
			tr.writeOpen(w, node)
		}
	}
	io.WriteString(w, "\n")
}

func (tr *transpiler) writeIndent(w io.Writer) {
	for i := 0; i < tr.depth; i++ {
		io.WriteString(w, tr.Indent)
	}
}

func (tr *transpiler) writeOpen(w io.Writer, node *wikiscan.Node) {
	io.WriteString(w, "<")
	io.WriteString(w, node.Name)
	if node.Directive {
		io.WriteString(w, ">")
		return
	}
	for _, a := range node.Attrs {
		q := `"`
		if strings.Contains(a.Value, q) {
			q = `'`
		}
		io.WriteString(w, " ")
		io.WriteString(w, a.Key)
		io.WriteString(w, "=")
		io.WriteString(w, q)
		io.WriteString(w, a.Value)
		io.WriteString(w, q)
	}
	if node.SelfClosed {
		io.WriteString(w, " />")
		return
	}
	io.WriteString(w, ">")
	if !node.Data && !(node.Closed && node.End == node.Start) {
		tr.depth++
	}
}

// formatStack tracks the formats opened in output so far, innermost last.
type formatStack []wikiscan.Format

func (fs formatStack) has(f wikiscan.Format) bool {
	for _, g := range fs {
		if g == f {
			return true
		}
	}
	return false
}

func (fs *formatStack) pop(w io.Writer, n int) {
	for ; n > 0; n-- {
		last := len(*fs) - 1
		io.WriteString(w, (*fs)[last].Delim())
		*fs = (*fs)[:last]
	}
}

// closers returns how many formats end after a token marked FormatEnd: the
// innermost, and any others that next does not continue.
func (fs formatStack) closers(next wikiscan.Token) int {
	if len(fs) == 0 {
		return 0
	}
	var want formatStack
	if next != nil {
		want = next.Base().Formats()
	}
	n := 1
	for n < len(fs) && !want.has(fs[len(fs)-1-n]) {
		n++
	}
	return n
}

func (tr *transpiler) writeToken(w io.Writer, t, next wikiscan.Token, fs *formatStack) {
	m := t.Base()
	want := formatStack(m.Formats())

	// close any format left without an end mark
	for i, f := range *fs {
		if !want.has(f) {
			fs.pop(w, len(*fs)-i)
			break
		}
	}
	for _, f := range want {
		if !fs.has(f) {
			io.WriteString(w, f.Delim())
			*fs = append(*fs, f)
		}
	}

	writeSpace(w, m.PreSpace)
	switch t := t.(type) {
	case *wikiscan.Word:
		io.WriteString(w, t.Text)
	case *wikiscan.Entity:
		if tr.DecodeEntities {
			io.WriteString(w, t.Text)
		} else {
			io.WriteString(w, "&")
			io.WriteString(w, t.Name)
			io.WriteString(w, ";")
		}
	case *wikiscan.WikiTag:
		tr.writeWikiTag(w, t)
	}

	// heading delimiters follow the space around the title, others precede it
	n := 0
	if m.FormatEnd {
		n = fs.closers(next)
	}
	heading := n > 0 && (*fs)[len(*fs)-1].IsHeading()
	if !heading {
		fs.pop(w, n)
	}
	writeSpace(w, m.InnerSpace)
	if heading {
		fs.pop(w, n)
	}

	if m.Pipe {
		io.WriteString(w, "|")
		*fs = (*fs)[:0]
	}
}

func (tr *transpiler) writeWikiTag(w io.Writer, tag *wikiscan.WikiTag) {
	if tag.Opener != "" {
		io.WriteString(w, tag.Opener)
	} else {
		io.WriteString(w, tag.Type.Open())
	}
	io.WriteString(w, tag.Target)
	if tag.Split {
		io.WriteString(w, "|")
	}
	var fs formatStack
	for i, child := range tag.Children {
		var next wikiscan.Token
		if i+1 < len(tag.Children) {
			next = tag.Children[i+1]
		}
		tr.writeToken(w, child, next, &fs)
	}
	if tag.Closed {
		io.WriteString(w, tag.Type.Close())
	}
}

const spaces = "                                "

func writeSpace(w io.Writer, n int) {
	for n > len(spaces) {
		io.WriteString(w, spaces)
		n -= len(spaces)
	}
	if n > 0 {
		io.WriteString(w, spaces[:n])
	}
}
