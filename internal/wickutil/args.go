package wickutil

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// QuotedArgs joins args with spaces, quoting any arg that contains a space
// or is empty.
func QuotedArgs(args []string) []byte {
	n := len(args)
	for _, arg := range args {
		n += len(arg) + 2
	}
	return AppendQuotedArgs(make([]byte, 0, n), args)
}

// AppendQuotedArgs appends args to b as QuotedArgs does.
func AppendQuotedArgs(b []byte, args []string) []byte {
	for i, arg := range args {
		if i > 0 || len(b) > 0 {
			b = append(b, ' ')
		}
		if arg == "" || strings.IndexFunc(arg, unicode.IsSpace) >= 0 {
			b = strconv.AppendQuote(b, arg)
		} else {
			b = append(b, arg...)
		}
	}
	return b
}

// ScanArgs is a bufio.SplitFunc that scans space separated args, keeping
// quoted args whole, quotes included; see UnquoteArg.
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += width
	}
	if start == len(data) {
		return start, nil, nil
	}

	if q := data[start]; q == '"' || q == '\'' {
		esc := false
		for i := start + 1; i < len(data); i++ {
			switch c := data[i]; {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == q:
				return i + 1, data[start : i+1], nil
			}
		}
	} else {
		for i := start; i < len(data); {
			r, width := utf8.DecodeRune(data[i:])
			if unicode.IsSpace(r) {
				return i + width, data[start:i], nil
			}
			i += width
		}
	}

	if atEOF {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

// UnquoteArg removes the quotes around an arg scanned by ScanArgs,
// interpreting escapes; unquoted args are returned as is.
func UnquoteArg(arg string) string {
	if len(arg) < 2 || (arg[0] != '"' && arg[0] != '\'') {
		return arg
	}
	q := arg[0]
	arg = arg[1:]
	var sb strings.Builder
	sb.Grow(len(arg))
	for len(arg) > 0 && arg[0] != q {
		r, _, tail, err := strconv.UnquoteChar(arg, q)
		if err != nil {
			sb.WriteString(arg)
			break
		}
		sb.WriteRune(r)
		arg = tail
	}
	return sb.String()
}
