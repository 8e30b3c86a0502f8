package transpile_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/wicked/transpile"
	"github.com/jcorbin/wicked/wikiscan"
)

func rebuild(t *testing.T, in string, opts transpile.Options) string {
	doc, _, err := wikiscan.Parse(strings.NewReader(in))
	require.NoError(t, err, "unexpected parse error")
	var out bytes.Buffer
	require.NoError(t, transpile.Write(&out, doc, opts), "unexpected write error")
	return out.String()
}

func lines(ss ...string) string { return strings.Join(ss, "\n") + "\n" }

func TestWrite(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  string // defaults to in
		opts transpile.Options
	}{
		{
			name: "page",
			in: lines(
				`<mediawiki>`,
				`  <page>`,
				`    <title>Paris</title>`,
				`    <text xml:space="preserve">'''Paris''' is a [[city|big ''old'' city]].`,
				`{{Infobox|name=Paris}} &amp; more`,
				`== History ==</text>`,
				`  </page>`,
				`</mediawiki>`,
			),
		},
		{
			name: "indentation is regenerated",
			in: lines(
				`<page>`,
				`<title>Paris</title>`,
				`      </page>`,
			),
			out: lines(
				`<page>`,
				`  <title>Paris</title>`,
				`</page>`,
			),
		},
		{
			name: "siblings on a line",
			in:   lines(`<a>x</a><b>y</b>`),
		},
		{
			name: "directive and self closing",
			in: lines(
				`<?xml version="1.0"?>`,
				`<redirect title="Foo bar" />`,
			),
		},
		{
			name: "loose text",
			in:   lines(`plain ''text'' [[link`),
		},
		{
			name: "nested formats",
			in:   lines(`''a '''b''' c'' and '''x ''y''''' z`),
		},
		{
			name: "templates",
			in:   lines(`{{a||b}} {{outer|{{inner|x}}|'''after'''}}`),
		},
		{
			name: "delimiters without text",
			in: lines(
				`a ==`,
				`foo ''`,
				`'''''`,
				`=======`,
				`== ==`,
				`{{a|''b}}c''`,
				`'''a '' '''''`,
			),
		},
		{
			name: "spaces after tags and entities",
			in:   lines(`A &amp; B [[a]]  b {{c}} `),
		},
		{
			name: "decoded entities",
			in:   lines(`<p>a &amp; b &lt;c&gt;</p>`),
			out:  lines(`<p>a & b <c></p>`),
			opts: transpile.Options{DecodeEntities: true},
		},
		{
			name: "custom indent",
			in: lines(
				`<a>`,
				`<b>x</b>`,
				`</a>`,
			),
			out: lines(
				`<a>`,
				"\t<b>x</b>",
				`</a>`,
			),
			opts: transpile.Options{Indent: "\t"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			want := tc.out
			if want == "" {
				want = tc.in
			}
			assert.Equal(t, want, rebuild(t, tc.in, tc.opts))
		})
	}
}

func TestWrite_blankLines(t *testing.T) {
	in := lines(
		`<page>`,
		``,
		`  <title>x</title>`,
		`</page>`,
	)
	assert.Equal(t, in, rebuild(t, in, transpile.Options{}))
}

func Example() {
	doc, _, _ := wikiscan.Parse(strings.NewReader(`<page>
<title>Paris</title>
<text>'''Paris''' is the [[capital]] of
{{lang|fr|France}}.</text>
</page>
`))
	transpile.Write(os.Stdout, doc, transpile.Options{})

	// Output:
	// <page>
	//   <title>Paris</title>
	//   <text>'''Paris''' is the [[capital]] of
	// {{lang|fr|France}}.</text>
	// </page>
}
