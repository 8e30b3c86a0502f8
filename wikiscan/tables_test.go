package wikiscan_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/wicked/wikiscan"
)

func TestLookupEntity(t *testing.T) {
	for _, tc := range []struct {
		name string
		out  string
		ok   bool
	}{
		{"amp", "&", true},
		{"quot", `"`, true},
		{"Omega", "Ω", true},
		{"omega", "ω", true},
		{"#8320", "₀", true},
		{"sup2", "²", true},
		{"#8212", "—", true},
		{"#x2014", "—", true},
		{"nbsp", "", false},
		{"AMP", "", false},
		{"#", "", false},
		{"#xZZ", "", false},
		{"#0", "", false},
		{"#55296", "", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, ok := wikiscan.LookupEntity(tc.name)
			assert.Equal(t, tc.ok, ok, "expected found")
			assert.Equal(t, tc.out, out, "expected value")
			assert.LessOrEqual(t, len(out), wikiscan.MaxEntityText, "expected bounded value")
		})
	}
}

func TestLookupFormat(t *testing.T) {
	for _, tc := range []struct {
		run string
		out wikiscan.Format
		ok  bool
	}{
		{"'''''", wikiscan.BoldItalic, true},
		{"'''", wikiscan.Bold, true},
		{"''", wikiscan.Italic, true},
		{"======", wikiscan.Heading6, true},
		{"==", wikiscan.Heading2, true},
		{"'", wikiscan.NoFormat, false},
		{"''''", wikiscan.NoFormat, false},
		{"=======", wikiscan.NoFormat, false},
	} {
		t.Run(tc.run, func(t *testing.T) {
			f, ok := wikiscan.LookupFormat(tc.run)
			assert.Equal(t, tc.ok, ok, "expected found")
			assert.Equal(t, tc.out, f, "expected format")
			if ok {
				assert.Equal(t, tc.run, f.Delim(), "expected delimiter round trip")
			}
		})
	}
	assert.Equal(t, "Heading4", fmt.Sprint(wikiscan.Heading4))
	assert.True(t, wikiscan.Heading3.IsHeading())
	assert.False(t, wikiscan.Bold.IsHeading())
}

func TestMatchTag(t *testing.T) {
	for _, tc := range []struct {
		in    string
		tag   wikiscan.TagType
		n     int
		close string
	}{
		{"{{math|x}}", wikiscan.MathTag, 6, "}}"},
		{"{{Math}}", wikiscan.MathTag, 6, "}}"},
		{"{{mathematics}}", wikiscan.Template, 2, "}}"},
		{"{{cite web}}", wikiscan.Template, 2, "}}"},
		{"{| class=x", wikiscan.Table, 2, "|}"},
		{"[[Category:Cities]]", wikiscan.Category, 11, "]]"},
		{"[[media:a.ogg]]", wikiscan.Media, 8, "]]"},
		{"[[File:a.jpg]]", wikiscan.File, 7, "]]"},
		{"[[IMAGE:a.jpg]]", wikiscan.Image, 8, "]]"},
		{"[[sound:a.ogg]]", wikiscan.Sound, 8, "]]"},
		{"[[wiktionary:word]]", wikiscan.Wiktionary, 13, "]]"},
		{"[[wikipedia:Foo]]", wikiscan.Wikipedia, 12, "]]"},
		{"[[Paris]]", wikiscan.Link, 2, "]]"},
		{"[single]", wikiscan.NoTag, 0, ""},
		{"{", wikiscan.NoTag, 0, ""},
	} {
		t.Run(tc.in, func(t *testing.T) {
			tag, n := wikiscan.MatchTag(tc.in)
			assert.Equal(t, tc.tag, tag, "expected tag type")
			assert.Equal(t, tc.n, n, "expected opener length")
			assert.Equal(t, tc.close, tag.Close(), "expected closer")
		})
	}
}
