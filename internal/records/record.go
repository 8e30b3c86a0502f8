// Package records flattens parsed documents into the five tab separated
// record files of a parse, and reads them back.
package records

import (
	"errors"
	"strconv"
)

// XMLTag records an element.
type XMLTag struct {
	Start, End       int
	StartPos, EndPos int
	Closed           bool
	Data             bool
	SelfClosed       bool
	Directive        bool
	Name             string
}

// XMLData records one attribute of the element opened at Start, StartPos.
type XMLData struct {
	Start, StartPos int
	End             int
	Key, Value      string
}

// Place holds the fields common to all token records. Parent is the
// position of the wiki-tag on the same line containing the token, or -1.
// Formats are -1 for none, otherwise their index in the format table.
type Place struct {
	Position    int
	Line        int
	Parent      int
	PreSpace    int
	InnerSpace  int
	DataFormat  int
	OwnFormat   int
	FormatStart bool
	FormatEnd   bool
	Pipe        bool
}

// Word records a word token.
type Word struct {
	Place
	Length int
	Text   string
}

// Entity records an entity token.
type Entity struct {
	Place
	Text string // decoded
	Name string
}

// WikiTag records a wiki-tag token.
type WikiTag struct {
	Place
	Type         int
	Length       int
	TargetLength int
	Split        bool
	Closed       bool
	Opener       string
	Target       string
}

var errShortRecord = errors.New("too few fields")

type row []string

func (r *row) num(n int) { *r = append(*r, strconv.Itoa(n)) }

func (r *row) text(s string) { *r = append(*r, s) }

func (r *row) flag(b bool) {
	if b {
		*r = append(*r, "1")
	} else {
		*r = append(*r, "0")
	}
}

type fields struct {
	f   []string
	err error
}

func (fs *fields) next() string {
	if len(fs.f) == 0 {
		if fs.err == nil {
			fs.err = errShortRecord
		}
		return ""
	}
	s := fs.f[0]
	fs.f = fs.f[1:]
	return s
}

func (fs *fields) text() string { return fs.next() }

func (fs *fields) num() int {
	n, err := strconv.Atoi(fs.next())
	if err != nil && fs.err == nil {
		fs.err = err
	}
	return n
}

func (fs *fields) flag() bool {
	switch s := fs.next(); s {
	case "1":
		return true
	case "0":
		return false
	default:
		if fs.err == nil {
			fs.err = strconv.ErrSyntax
		}
		return false
	}
}

func (r XMLTag) encode(w *row) {
	w.num(r.Start)
	w.num(r.End)
	w.num(r.StartPos)
	w.num(r.EndPos)
	w.flag(r.Closed)
	w.flag(r.Data)
	w.flag(r.SelfClosed)
	w.flag(r.Directive)
	w.text(r.Name)
}

func (r *XMLTag) decode(f *fields) {
	r.Start = f.num()
	r.End = f.num()
	r.StartPos = f.num()
	r.EndPos = f.num()
	r.Closed = f.flag()
	r.Data = f.flag()
	r.SelfClosed = f.flag()
	r.Directive = f.flag()
	r.Name = f.text()
}

func (r XMLData) encode(w *row) {
	w.num(r.Start)
	w.num(r.StartPos)
	w.num(r.End)
	w.text(r.Key)
	w.text(r.Value)
}

func (r *XMLData) decode(f *fields) {
	r.Start = f.num()
	r.StartPos = f.num()
	r.End = f.num()
	r.Key = f.text()
	r.Value = f.text()
}

func (p Place) encodeHead(w *row) {
	w.num(p.Position)
	w.num(p.Line)
	w.num(p.Parent)
	w.num(p.PreSpace)
	w.num(p.InnerSpace)
}

func (p *Place) decodeHead(f *fields) {
	p.Position = f.num()
	p.Line = f.num()
	p.Parent = f.num()
	p.PreSpace = f.num()
	p.InnerSpace = f.num()
}

func (p Place) encodeFormat(w *row) {
	w.num(p.DataFormat)
	w.num(p.OwnFormat)
	w.flag(p.FormatStart)
	w.flag(p.FormatEnd)
}

func (p *Place) decodeFormat(f *fields) {
	p.DataFormat = f.num()
	p.OwnFormat = f.num()
	p.FormatStart = f.flag()
	p.FormatEnd = f.flag()
}

func (r Word) encode(w *row) {
	r.encodeHead(w)
	w.num(r.Length)
	r.encodeFormat(w)
	w.flag(r.Pipe)
	w.text(r.Text)
}

func (r *Word) decode(f *fields) {
	r.decodeHead(f)
	r.Length = f.num()
	r.decodeFormat(f)
	r.Pipe = f.flag()
	r.Text = f.text()
}

func (r Entity) encode(w *row) {
	r.encodeHead(w)
	r.encodeFormat(w)
	w.flag(r.Pipe)
	w.text(r.Text)
	w.text(r.Name)
}

func (r *Entity) decode(f *fields) {
	r.decodeHead(f)
	r.decodeFormat(f)
	r.Pipe = f.flag()
	r.Text = f.text()
	r.Name = f.text()
}

func (r WikiTag) encode(w *row) {
	r.encodeHead(w)
	w.num(r.Type)
	r.encodeFormat(w)
	w.num(r.Length)
	w.num(r.TargetLength)
	w.flag(r.Pipe)
	w.flag(r.Split)
	w.flag(r.Closed)
	w.text(r.Opener)
	w.text(r.Target)
}

func (r *WikiTag) decode(f *fields) {
	r.decodeHead(f)
	r.Type = f.num()
	r.decodeFormat(f)
	r.Length = f.num()
	r.TargetLength = f.num()
	r.Pipe = f.flag()
	r.Split = f.flag()
	r.Closed = f.flag()
	r.Opener = f.text()
	r.Target = f.text()
}
