package wickutil_test

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/wicked/internal/wickutil"
)

func TestPrefixWriter(t *testing.T) {
	var out bytes.Buffer
	pw := PrefixWriter("> ", &out)
	io.WriteString(pw, "one\ntw")
	assert.Equal(t, "> one\n", out.String(), "expected only complete lines")
	io.WriteString(pw, "o\nthree")
	pw.Prefix = "- "
	io.WriteString(pw, "\nfour\n")
	assert.NoError(t, pw.Close())
	assert.Equal(t, "> one\n> two\n> three\n- four\n", out.String())
}

func TestPrefixWriter_skip(t *testing.T) {
	var out bytes.Buffer
	io.WriteString(&out, "1. ")
	pw := PrefixWriter("   ", &out)
	pw.Skip = true
	io.WriteString(pw, "first\nsecond\n")
	assert.NoError(t, pw.Close())
	assert.Equal(t, "1. first\n   second\n", out.String())
}

func TestWriteLines(t *testing.T) {
	var out bytes.Buffer
	n := 0
	err := WriteLines(&out, func(w io.Writer, _ func()) bool {
		n++
		if n > 3 {
			return false
		}
		fmt.Fprintf(w, "line %v\n", n)
		return true
	})
	assert.NoError(t, err)
	assert.Equal(t, "line 1\nline 2\nline 3\n", out.String())
}

type failAfter struct {
	n   int
	err error
}

func (fa *failAfter) Write(p []byte) (int, error) {
	if fa.n <= 0 {
		return 0, fa.err
	}
	fa.n--
	return len(p), nil
}

func TestWriteLines_error(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := WriteLines(&failAfter{n: 1, err: boom}, func(w io.Writer, _ func()) bool {
		calls++
		io.WriteString(w, "x\n")
		return calls < 10
	})
	assert.Equal(t, boom, err, "expected write error")
	assert.Equal(t, 2, calls, "expected early stop")
}

func TestScanArgs(t *testing.T) {
	args := []string{"parse", "my dump.xml", "", `say "hi"`}
	quoted := QuotedArgs(args)
	assert.Equal(t, `parse "my dump.xml" "" "say \"hi\""`, string(quoted))

	sc := bufio.NewScanner(bytes.NewReader(quoted))
	sc.Split(ScanArgs)
	var got []string
	for sc.Scan() {
		got = append(got, UnquoteArg(sc.Text()))
	}
	assert.NoError(t, sc.Err())
	assert.Equal(t, args, got)
	assert.Equal(t, "plain", UnquoteArg("plain"))
	assert.Equal(t, "x", strings.TrimSpace(UnquoteArg(`'x'`)))
}
