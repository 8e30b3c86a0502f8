package wikiscan

import "strings"

// Format is a kind of inline wiki formatting span, like bold text or a
// heading.
type Format int8

// Format constants, in table order: longer quote runs are listed before
// shorter ones, deeper headings before shallower.
const (
	NoFormat Format = iota // 0 value: not formatted
	BoldItalic
	Bold
	Italic
	Heading6
	Heading5
	Heading4
	Heading3
	Heading2
)

var formatDelims = [...]string{
	NoFormat:   "",
	BoldItalic: "'''''",
	Bold:       "'''",
	Italic:     "''",
	Heading6:   "======",
	Heading5:   "=====",
	Heading4:   "====",
	Heading3:   "===",
	Heading2:   "==",
}

// LookupFormat returns the format whose delimiter is exactly run.
func LookupFormat(run string) (Format, bool) {
	for f := BoldItalic; int(f) < len(formatDelims); f++ {
		if formatDelims[f] == run {
			return f, true
		}
	}
	return NoFormat, false
}

// Delim returns the wiki markup that opens and closes the format.
func (f Format) Delim() string {
	if f.Valid() {
		return formatDelims[f]
	}
	return ""
}

// Valid returns true for any format other than NoFormat.
func (f Format) Valid() bool { return f > NoFormat && int(f) < len(formatDelims) }

// IsHeading returns true for the heading formats.
func (f Format) IsHeading() bool { return f >= Heading6 && f <= Heading2 }

func quoteRun(s string) int {
	return len(s) - len(strings.TrimLeft(s, "'"))
}

func equalsRun(s string) int {
	return len(s) - len(strings.TrimLeft(s, "="))
}
