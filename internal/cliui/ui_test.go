package cliui_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/wicked/internal/cliui"
)

func TestArgsRequest(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		out  []string
	}{
		{
			name: "no args",
			out: []string{
				"now: 2021-03-04T05:06:07Z",
				"",
			},
		},
		{
			name: "command with args",
			args: []string{"parse", "my dump.xml.bz2", "out"},
			out: []string{
				"now: 2021-03-04T05:06:07Z",
				"",
				`1) command: "parse \"my dump.xml.bz2\" out"`,
				`  1. arg: "parse"`,
				`  2. arg: "my dump.xml.bz2"`,
				`  3. arg: "out"`,
				"",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			now := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
			err := ArgsRequest(now, tc.args).Serve(&out, HandlerFunc(dumpRequest))
			assert.NoError(t, err)
			assert.Equal(t, tc.out, strings.Split(out.String(), "\n"), "expected output")
		})
	}
}

func TestRequest_Args(t *testing.T) {
	req := ArgsRequest(time.Time{}, []string{"rebuild", "a b", "c"})
	assert.True(t, req.ScanArg())
	assert.Equal(t, "rebuild", req.Arg())
	assert.Equal(t, []string{"a b", "c"}, req.Args())
	assert.False(t, req.Scan(), "expected a single command")
	assert.NoError(t, req.Err())
}

func dumpRequest(req *Request, resp *Response) error {
	fmt.Fprintf(resp, "now: %v\n", req.Now().Format(time.RFC3339))
	for i := 1; req.Scan(); i++ {
		fmt.Fprintf(resp, "\n%v) command: %q\n", i, req.Command())
		for j := 1; req.ScanArg(); j++ {
			fmt.Fprintf(resp, "  %v. arg: %q\n", j, req.Arg())
		}
	}
	return nil
}
