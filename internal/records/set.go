package records

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jcorbin/wicked/wikiscan"
)

// ErrNoParent is returned by Build when a token names a containing wiki-tag
// that was not recorded.
var ErrNoParent = errors.New("no such parent wiki-tag")

// Set holds all records of a parse, each kind sorted by line then position.
type Set struct {
	Tags     []XMLTag
	Data     []XMLData
	Words    []Word
	Entities []Entity
	WikiTags []WikiTag

	// Lines is the number of source lines, which may exceed the last line
	// holding any record.
	Lines int
}

// kind describes one record file, and the matching database table.
type kind struct {
	name    string
	columns []string
	len     func(set *Set) int
	encode  func(set *Set, i int, w *row)
	decode  func(set *Set, f *fields)
}

var kinds = []kind{
	{
		name: "xmltags",
		columns: []string{
			"start_line INTEGER", "end_line INTEGER",
			"start_pos INTEGER", "end_pos INTEGER",
			"closed INTEGER", "data INTEGER", "self_closed INTEGER", "directive INTEGER",
			"name TEXT",
		},
		len:    func(set *Set) int { return len(set.Tags) },
		encode: func(set *Set, i int, w *row) { set.Tags[i].encode(w) },
		decode: func(set *Set, f *fields) {
			var r XMLTag
			r.decode(f)
			set.Tags = append(set.Tags, r)
		},
	},
	{
		name: "xmldata",
		columns: []string{
			"start_line INTEGER", "start_pos INTEGER", "end_line INTEGER",
			"key TEXT", "value TEXT",
		},
		len:    func(set *Set) int { return len(set.Data) },
		encode: func(set *Set, i int, w *row) { set.Data[i].encode(w) },
		decode: func(set *Set, f *fields) {
			var r XMLData
			r.decode(f)
			set.Data = append(set.Data, r)
		},
	},
	{
		name: "words",
		columns: []string{
			"position INTEGER", "line INTEGER", "parent INTEGER", "pre INTEGER", "inner INTEGER",
			"length INTEGER",
			"data_format INTEGER", "own_format INTEGER", "format_start INTEGER", "format_end INTEGER",
			"pipe INTEGER", "text TEXT",
		},
		len:    func(set *Set) int { return len(set.Words) },
		encode: func(set *Set, i int, w *row) { set.Words[i].encode(w) },
		decode: func(set *Set, f *fields) {
			var r Word
			r.decode(f)
			set.Words = append(set.Words, r)
		},
	},
	{
		name: "entities",
		columns: []string{
			"position INTEGER", "line INTEGER", "parent INTEGER", "pre INTEGER", "inner INTEGER",
			"data_format INTEGER", "own_format INTEGER", "format_start INTEGER", "format_end INTEGER",
			"pipe INTEGER", "text TEXT", "name TEXT",
		},
		len:    func(set *Set) int { return len(set.Entities) },
		encode: func(set *Set, i int, w *row) { set.Entities[i].encode(w) },
		decode: func(set *Set, f *fields) {
			var r Entity
			r.decode(f)
			set.Entities = append(set.Entities, r)
		},
	},
	{
		name: "wikitags",
		columns: []string{
			"position INTEGER", "line INTEGER", "parent INTEGER", "pre INTEGER", "inner INTEGER",
			"tag_type INTEGER",
			"data_format INTEGER", "own_format INTEGER", "format_start INTEGER", "format_end INTEGER",
			"tag_length INTEGER", "target_length INTEGER",
			"pipe INTEGER", "split INTEGER", "closed INTEGER",
			"opener TEXT", "target TEXT",
		},
		len:    func(set *Set) int { return len(set.WikiTags) },
		encode: func(set *Set, i int, w *row) { set.WikiTags[i].encode(w) },
		decode: func(set *Set, f *fields) {
			var r WikiTag
			r.decode(f)
			set.WikiTags = append(set.WikiTags, r)
		},
	},
	{
		name:    "dump",
		columns: []string{"lines INTEGER"},
		len:     func(*Set) int { return 1 },
		encode:  func(set *Set, _ int, w *row) { w.num(set.Lines) },
		decode:  func(set *Set, f *fields) { set.Lines = f.num() },
	},
}

// Flatten converts a parsed document into records.
func Flatten(doc *wikiscan.Document) *Set {
	set := &Set{Lines: doc.Lines}
	for _, n := range doc.Nodes {
		set.Tags = append(set.Tags, XMLTag{
			Start:      n.Start,
			End:        n.End,
			StartPos:   n.StartPos,
			EndPos:     n.EndPos,
			Closed:     n.Closed,
			Data:       n.Data,
			SelfClosed: n.SelfClosed,
			Directive:  n.Directive,
			Name:       n.Name,
		})
		for _, a := range n.Attrs {
			set.Data = append(set.Data, XMLData{
				Start:    n.Start,
				StartPos: n.StartPos,
				End:      n.End,
				Key:      a.Key,
				Value:    a.Value,
			})
		}
		set.addTokens(n.Children)
	}
	set.addTokens(doc.Loose)
	set.sort()
	return set
}

func (set *Set) addTokens(ts wikiscan.Tokens) {
	ts.Walk(func(t wikiscan.Token, parent *wikiscan.WikiTag) {
		pl := placeOf(t.Base(), parent)
		switch t := t.(type) {
		case *wikiscan.Word:
			set.Words = append(set.Words, Word{Place: pl, Length: len(t.Text), Text: t.Text})
		case *wikiscan.Entity:
			set.Entities = append(set.Entities, Entity{Place: pl, Text: t.Text, Name: t.Name})
		case *wikiscan.WikiTag:
			set.WikiTags = append(set.WikiTags, WikiTag{
				Place:        pl,
				Type:         int(t.Type),
				Length:       t.Length,
				TargetLength: len(t.Target),
				Split:        t.Split,
				Closed:       t.Closed,
				Opener:       t.Opener,
				Target:       t.Target,
			})
		}
	})
}

func placeOf(m *wikiscan.Meta, parent *wikiscan.WikiTag) Place {
	pl := Place{
		Position:    m.Position,
		Line:        m.Line,
		Parent:      -1,
		PreSpace:    m.PreSpace,
		InnerSpace:  m.InnerSpace,
		DataFormat:  formatCode(m.DataFormat),
		OwnFormat:   formatCode(m.OwnFormat),
		FormatStart: m.FormatStart,
		FormatEnd:   m.FormatEnd,
		Pipe:        m.Pipe,
	}
	if parent != nil {
		pl.Parent = parent.Position
	}
	return pl
}

func formatCode(f wikiscan.Format) int { return int(f) - 1 }

func codeFormat(n int) wikiscan.Format { return wikiscan.Format(n + 1) }

func (pl Place) meta() wikiscan.Meta {
	return wikiscan.Meta{
		Line:        pl.Line,
		Position:    pl.Position,
		PreSpace:    pl.PreSpace,
		InnerSpace:  pl.InnerSpace,
		DataFormat:  codeFormat(pl.DataFormat),
		OwnFormat:   codeFormat(pl.OwnFormat),
		FormatStart: pl.FormatStart,
		FormatEnd:   pl.FormatEnd,
		Pipe:        pl.Pipe,
	}
}

func (set *Set) sort() {
	sort.SliceStable(set.Tags, func(i, j int) bool {
		a, b := set.Tags[i], set.Tags[j]
		return a.Start < b.Start || (a.Start == b.Start && a.StartPos < b.StartPos)
	})
	sort.SliceStable(set.Data, func(i, j int) bool {
		a, b := set.Data[i], set.Data[j]
		return a.Start < b.Start || (a.Start == b.Start && a.StartPos < b.StartPos)
	})
	sort.SliceStable(set.Words, func(i, j int) bool { return set.Words[i].before(set.Words[j].Place) })
	sort.SliceStable(set.Entities, func(i, j int) bool { return set.Entities[i].before(set.Entities[j].Place) })
	sort.SliceStable(set.WikiTags, func(i, j int) bool { return set.WikiTags[i].before(set.WikiTags[j].Place) })
}

func (pl Place) before(other Place) bool {
	return pl.Line < other.Line || (pl.Line == other.Line && pl.Position < other.Position)
}

// lastLine returns the greatest line number of any record.
func (set *Set) lastLine() int {
	n := 0
	max := func(line int) {
		if line > n {
			n = line
		}
	}
	for _, r := range set.Tags {
		max(r.Start)
		max(r.End)
	}
	for _, r := range set.Words {
		max(r.Line)
	}
	for _, r := range set.Entities {
		max(r.Line)
	}
	for _, r := range set.WikiTags {
		max(r.Line)
	}
	return n
}

// Build reassembles a document from records. Element ownership of text is
// not recorded, so all top level tokens are placed in the document's Loose
// list; wiki-tag children are restored under their parents.
func Build(set *Set) (*wikiscan.Document, error) {
	doc := &wikiscan.Document{Lines: set.Lines}
	if doc.Lines == 0 {
		doc.Lines = set.lastLine()
	}

	type key struct{ line, pos int }

	nodes := make(map[key]*wikiscan.Node, len(set.Tags))
	for _, r := range set.Tags {
		n := &wikiscan.Node{
			Name:       r.Name,
			Start:      r.Start,
			End:        r.End,
			StartPos:   r.StartPos,
			EndPos:     r.EndPos,
			Closed:     r.Closed,
			Data:       r.Data,
			SelfClosed: r.SelfClosed,
			Directive:  r.Directive,
		}
		nodes[key{r.Start, r.StartPos}] = n
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, r := range set.Data {
		n := nodes[key{r.Start, r.StartPos}]
		if n == nil {
			return nil, fmt.Errorf("attribute %q at %v:%v has no element", r.Key, r.Start, r.StartPos)
		}
		n.Attrs = append(n.Attrs, wikiscan.Attr{Key: r.Key, Value: r.Value})
	}

	type item struct {
		Place
		tok wikiscan.Token
	}
	items := make([]item, 0, len(set.Words)+len(set.Entities)+len(set.WikiTags))
	tags := make(map[key]*wikiscan.WikiTag, len(set.WikiTags))
	for _, r := range set.WikiTags {
		tag := &wikiscan.WikiTag{
			Meta:   r.meta(),
			Type:   wikiscan.TagType(r.Type),
			Opener: r.Opener,
			Target: r.Target,
			Length: r.Length,
			Split:  r.Split,
			Closed: r.Closed,
		}
		tags[key{r.Line, r.Position}] = tag
		items = append(items, item{r.Place, tag})
	}
	for _, r := range set.Words {
		items = append(items, item{r.Place, &wikiscan.Word{Meta: r.meta(), Text: r.Text}})
	}
	for _, r := range set.Entities {
		items = append(items, item{r.Place, &wikiscan.Entity{Meta: r.meta(), Name: r.Name, Text: r.Text}})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].before(items[j].Place) })

	for _, it := range items {
		if it.Parent < 0 {
			doc.Loose = append(doc.Loose, it.tok)
			continue
		}
		parent := tags[key{it.Line, it.Parent}]
		if parent == nil {
			return nil, fmt.Errorf("line %v position %v: %w", it.Line, it.Position, ErrNoParent)
		}
		parent.Children = append(parent.Children, it.tok)
	}
	return doc, nil
}
