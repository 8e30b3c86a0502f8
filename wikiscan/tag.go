package wikiscan

import "strings"

// TagType identifies the kind of a wiki-tag, by its opening markup.
type TagType int8

// TagType constants, in match order: more specific prefixes must be tried
// before the generic "{{" and "[[" forms.
const (
	NoTag      TagType = iota - 1
	MathTag            // {{math ... }}
	Template           // {{ ... }}
	Table              // {| ... |}
	Category           // [[category: ... ]]
	Media              // [[media: ... ]]
	File               // [[file: ... ]]
	Image              // [[image: ... ]]
	Sound              // [[sound: ... ]]
	Wiktionary         // [[wiktionary: ... ]]
	Wikipedia          // [[wikipedia: ... ]]
	Link               // [[ ... ]]
)

var tagTypes = [...]struct {
	open, close string
}{
	MathTag:    {"{{math", "}}"},
	Template:   {"{{", "}}"},
	Table:      {"{|", "|}"},
	Category:   {"[[category:", "]]"},
	Media:      {"[[media:", "]]"},
	File:       {"[[file:", "]]"},
	Image:      {"[[image:", "]]"},
	Sound:      {"[[sound:", "]]"},
	Wiktionary: {"[[wiktionary:", "]]"},
	Wikipedia:  {"[[wikipedia:", "]]"},
	Link:       {"[[", "]]"},
}

// MatchTag matches the head of s against the known wiki-tag openers, ignoring
// case, returning the tag type and the byte length of the matched opener.
// It returns NoTag, 0 if s does not start a wiki-tag.
func MatchTag(s string) (TagType, int) {
	for t := MathTag; int(t) < len(tagTypes); t++ {
		open := tagTypes[t].open
		if len(s) < len(open) || !strings.EqualFold(s[:len(open)], open) {
			continue
		}
		if t == MathTag && len(s) > len(open) && isLetter(s[len(open)]) {
			continue // e.g. {{mathematics}}
		}
		return t, len(open)
	}
	return NoTag, 0
}

// Valid returns true if t is one of the known tag types.
func (t TagType) Valid() bool { return t > NoTag && int(t) < len(tagTypes) }

// Open returns the canonical opening markup for the tag type.
func (t TagType) Open() string {
	if t.Valid() {
		return tagTypes[t].open
	}
	return ""
}

// Close returns the closing markup for the tag type.
func (t TagType) Close() string {
	if t.Valid() {
		return tagTypes[t].close
	}
	return ""
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// tagExtent describes the span of a wiki-tag within a text, relative to the
// start of its opener.
type tagExtent struct {
	end    int   // offset of the closer, or of span end if unclosed
	next   int   // offset after the closer
	pipes  []int // offsets of depth-0 '|' separators
	closed bool
}

// scanTagExtent finds the closer of a wiki-tag whose opener occupies s[:from].
// Nested openers are balanced against an explicit stack of expected closers;
// mismatched closers are ordinary text. When stopAtXML is set, the extent
// ends early, unclosed, before any XML tag.
func scanTagExtent(s string, from int, close string, stopAtXML bool) (ext tagExtent) {
	stack := []string{close}
	for i := from; i < len(s); {
		c := s[i]
		if c == '<' && stopAtXML && isXMLTagStart(s[i:]) {
			ext.end, ext.next = i, i
			return ext
		}
		if i+1 < len(s) {
			pair := s[i : i+2]
			if pair == stack[len(stack)-1] {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					ext.end, ext.next, ext.closed = i, i+2, true
					return ext
				}
				i += 2
				continue
			}
			switch pair {
			case "[[":
				stack = append(stack, "]]")
				i += 2
				continue
			case "{{":
				stack = append(stack, "}}")
				i += 2
				continue
			case "{|":
				stack = append(stack, "|}")
				i += 2
				continue
			}
		}
		if c == '|' && len(stack) == 1 {
			ext.pipes = append(ext.pipes, i)
		}
		i++
	}
	ext.end, ext.next = len(s), len(s)
	return ext
}
