package wikiscan

import "strings"

// Attr is a key="value" pair of an XML opening tag. Values are kept verbatim,
// entity references included.
type Attr struct {
	Key, Value string
}

// Node is an XML element of the dump, along with the tokens of any text
// found directly within it.
type Node struct {
	Name  string
	Attrs []Attr

	Start, End       int // lines of the opening and closing tags
	StartPos, EndPos int // positions of the opening and closing tags on their lines

	Closed     bool // a matching close was seen (or the tag closed itself)
	SelfClosed bool // <name/>
	Directive  bool // <!...> or <?...?>, Name holds the raw text
	Data       bool // text followed the opening tag on its line

	Children Tokens
}

// Attr returns the value of the first attribute named key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// isXMLTagStart returns true if s starts with a complete XML tag.
func isXMLTagStart(s string) bool { return xmlTagEnd(s) > 0 }

// xmlTagEnd returns the offset after the '>' that ends the tag opening s,
// or 0 if s does not start a tag on this line. Quoted attribute values may
// contain '>'.
func xmlTagEnd(s string) int {
	if len(s) < 3 || s[0] != '<' {
		return 0
	}
	switch c := s[1]; {
	case strings.HasPrefix(s, "<!--"):
		if i := strings.Index(s[4:], "-->"); i >= 0 {
			return 4 + i + 3
		}
		return 0
	case c == '/' || c == '!' || c == '?' || isLetter(c) || c == '_' || c == ':':
	default:
		return 0
	}
	var quote byte
	for i := 1; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '<':
			return 0
		case c == '>':
			return i + 1
		}
	}
	return 0
}

// parseOpenTag parses the content between '<' and '>' of an opening tag.
func parseOpenTag(s string) (name string, attrs []Attr, selfClose bool) {
	s = strings.TrimRight(s, " \t")
	if strings.HasSuffix(s, "/") {
		selfClose = true
		s = strings.TrimRight(s[:len(s)-1], " \t")
	}
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, nil, selfClose
	}
	name, s = s[:i], s[i:]
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}
		j := strings.IndexAny(s, "= \t")
		if j < 0 {
			attrs = append(attrs, Attr{Key: s})
			break
		}
		key := s[:j]
		s = strings.TrimLeft(s[j:], " \t")
		if !strings.HasPrefix(s, "=") {
			attrs = append(attrs, Attr{Key: key})
			continue
		}
		s = strings.TrimLeft(s[1:], " \t")
		var val string
		if q := firstByte(s); q == '"' || q == '\'' {
			if k := strings.IndexByte(s[1:], q); k >= 0 {
				val, s = s[1:1+k], s[2+k:]
			} else {
				val, s = s[1:], ""
			}
		} else if k := strings.IndexAny(s, " \t"); k >= 0 {
			val, s = s[:k], s[k:]
		} else {
			val, s = s, ""
		}
		attrs = append(attrs, Attr{Key: key, Value: val})
	}
	return name, attrs, selfClose
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}
