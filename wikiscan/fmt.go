package wikiscan

import (
	"fmt"
	"io"
)

// Format writes a name for the receiver kind.
func (k Kind) Format(f fmt.State, _ rune) {
	switch k {
	case XMLTagKind:
		io.WriteString(f, "XMLTag")
	case WikiTagKind:
		io.WriteString(f, "WikiTag")
	case WordKind:
		io.WriteString(f, "Word")
	case EntityKind:
		io.WriteString(f, "Entity")
	default:
		fmt.Fprintf(f, "InvalidKind%v", int(k))
	}
}

// Format writes a name for the receiver format.
func (fm Format) Format(f fmt.State, _ rune) {
	switch fm {
	case NoFormat:
		io.WriteString(f, "None")
	case BoldItalic:
		io.WriteString(f, "BoldItalic")
	case Bold:
		io.WriteString(f, "Bold")
	case Italic:
		io.WriteString(f, "Italic")
	case Heading6, Heading5, Heading4, Heading3, Heading2:
		fmt.Fprintf(f, "Heading%v", len(fm.Delim()))
	default:
		fmt.Fprintf(f, "InvalidFormat%v", int(fm))
	}
}

// Format writes a name for the receiver tag type.
func (t TagType) Format(f fmt.State, _ rune) {
	switch t {
	case NoTag:
		io.WriteString(f, "None")
	case MathTag:
		io.WriteString(f, "Math")
	case Template:
		io.WriteString(f, "Template")
	case Table:
		io.WriteString(f, "Table")
	case Category:
		io.WriteString(f, "Category")
	case Media:
		io.WriteString(f, "Media")
	case File:
		io.WriteString(f, "File")
	case Image:
		io.WriteString(f, "Image")
	case Sound:
		io.WriteString(f, "Sound")
	case Wiktionary:
		io.WriteString(f, "Wiktionary")
	case Wikipedia:
		io.WriteString(f, "Wikipedia")
	case Link:
		io.WriteString(f, "Link")
	default:
		fmt.Fprintf(f, "InvalidTag%v", int(t))
	}
}

// Format writes the verbose "@line:pos attr=value" form of the receiver when
// formatted with "%+v", and nothing otherwise.
func (m Meta) Format(f fmt.State, _ rune) {
	if !f.Flag('+') {
		return
	}
	fmt.Fprintf(f, "@%v:%v", m.Line, m.Position)
	if m.PreSpace != 0 {
		fmt.Fprintf(f, " pre=%v", m.PreSpace)
	}
	if m.InnerSpace != 0 {
		fmt.Fprintf(f, " inner=%v", m.InnerSpace)
	}
	if m.DataFormat != NoFormat {
		fmt.Fprintf(f, " data=%v", m.DataFormat)
	}
	if m.OwnFormat != NoFormat {
		fmt.Fprintf(f, " own=%v", m.OwnFormat)
	}
	if m.FormatStart {
		io.WriteString(f, " start")
	}
	if m.FormatEnd {
		io.WriteString(f, " end")
	}
	if m.Pipe {
		io.WriteString(f, " pipe")
	}
}

// Format writes a `Word"text"` form of the receiver, followed by its Meta
// when formatted with "%+v".
func (w *Word) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "Word%q", w.Text)
	if f.Flag('+') {
		io.WriteString(f, " ")
		w.Meta.Format(f, c)
	}
}

// Format writes an "Entity&name;" form of the receiver, followed by its Meta
// when formatted with "%+v".
func (e *Entity) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "Entity&%s;", e.Name)
	if f.Flag('+') {
		io.WriteString(f, " ")
		e.Meta.Format(f, c)
	}
}

// Format writes a "Type"target"[children...]" form of the receiver; "%+v"
// adds its Meta and formats children verbosely.
func (tag *WikiTag) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "%v%q", tag.Type, tag.Target)
	if f.Flag('+') {
		io.WriteString(f, " ")
		tag.Meta.Format(f, c)
		if tag.Split {
			io.WriteString(f, " split")
		}
		if !tag.Closed {
			io.WriteString(f, " unclosed")
		}
	}
	if len(tag.Children) > 0 {
		io.WriteString(f, "[")
		for i, child := range tag.Children {
			if i > 0 {
				io.WriteString(f, ", ")
			}
			if f.Flag('+') {
				fmt.Fprintf(f, "%+v", child)
			} else {
				fmt.Fprintf(f, "%v", child)
			}
		}
		io.WriteString(f, "]")
	}
}

// Format writes an XML-like "<name @start-end>" form of the receiver; with
// "%+v" attributes and flags are included.
func (n *Node) Format(f fmt.State, _ rune) {
	if n.Directive {
		fmt.Fprintf(f, "<%s @%v>", n.Name, n.Start)
		return
	}
	fmt.Fprintf(f, "<%s", n.Name)
	if f.Flag('+') {
		for _, a := range n.Attrs {
			fmt.Fprintf(f, " %s=%q", a.Key, a.Value)
		}
	}
	fmt.Fprintf(f, " @%v:%v", n.Start, n.StartPos)
	if n.Closed && !n.SelfClosed {
		fmt.Fprintf(f, "-%v:%v", n.End, n.EndPos)
	}
	if f.Flag('+') {
		if n.Data {
			io.WriteString(f, " data")
		}
		if !n.Closed {
			io.WriteString(f, " open")
		}
	}
	if n.SelfClosed {
		io.WriteString(f, " /")
	}
	io.WriteString(f, ">")
}
