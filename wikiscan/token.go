package wikiscan

// Kind discriminates the kinds of parsed items.
type Kind uint8

// Kind constants.
const (
	XMLTagKind Kind = iota + 1
	WikiTagKind
	WordKind
	EntityKind
)

// Token is a parsed inline item of element text: a *Word, *Entity or
// *WikiTag.
type Token interface {
	Kind() Kind
	Base() *Meta
}

// Meta holds the placement, spacing and formatting attributes shared by all
// tokens.
type Meta struct {
	Line     int // 1-based source line
	Position int // 1-based sequence index within Line

	PreSpace   int // whitespace since the prior token or word
	InnerSpace int // whitespace that ended a word, or trailing its span

	// DataFormat is the outer format inherited from context, set only when the
	// token lies within two nested formats; OwnFormat is the innermost format.
	DataFormat Format
	OwnFormat  Format

	FormatStart bool // first token after a format opened
	FormatEnd   bool // last token before a format closed

	// Pipe is set when a wiki-tag field separator immediately follows the
	// token.
	Pipe bool
}

// Base returns the receiver; it lets embedding types implement Token.
func (m *Meta) Base() *Meta { return m }

// Formats returns the non-empty formats of the token, outermost first.
func (m *Meta) Formats() []Format {
	var fs []Format
	if m.DataFormat.Valid() {
		fs = append(fs, m.DataFormat)
	}
	if m.OwnFormat.Valid() {
		fs = append(fs, m.OwnFormat)
	}
	return fs
}

// Word is a maximal run of literal text.
type Word struct {
	Meta
	Text string
}

// Entity is a recognized character entity reference like "&amp;".
type Entity struct {
	Meta
	Name string // without '&' and ';'
	Text string // decoded
}

// WikiTag is a bracketed wiki construct: a link, template, table or a
// namespaced link like a category.
type WikiTag struct {
	Meta
	Type   TagType
	Opener string // matched opening markup, in source case
	Target string // raw text up to the first separator
	Length int    // byte length of the raw content between opener and closer
	Split  bool   // Target is followed by a '|' separator
	Closed bool   // closing markup was found

	// Children holds the tokens of every field after Target.
	Children Tokens
}

// Kind returns WordKind.
func (*Word) Kind() Kind { return WordKind }

// Kind returns EntityKind.
func (*Entity) Kind() Kind { return EntityKind }

// Kind returns WikiTagKind.
func (*WikiTag) Kind() Kind { return WikiTagKind }

// Tokens is an ordered token list; it is the container that tokenization
// appends to.
type Tokens []Token

func (ts *Tokens) add(t Token) { *ts = append(*ts, t) }

// Walk calls fn for every token in ts, descending into wiki-tag children
// after their tag; parent is nil for the top level.
func (ts Tokens) Walk(fn func(t Token, parent *WikiTag)) {
	ts.walk(nil, fn)
}

func (ts Tokens) walk(parent *WikiTag, fn func(Token, *WikiTag)) {
	for _, t := range ts {
		fn(t, parent)
		if tag, ok := t.(*WikiTag); ok {
			tag.Children.walk(tag, fn)
		}
	}
}
