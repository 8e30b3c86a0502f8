// Package report summarizes the statistics of a dump parse, as colored
// terminal lines or as a Markdown (or rendered HTML) document.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/russross/blackfriday"

	"github.com/jcorbin/wicked/internal/wickutil"
	"github.com/jcorbin/wicked/wikiscan"
)

// Report is the outcome of one parse.
type Report struct {
	Stats   wikiscan.Stats
	Input   int64 // bytes of input read, if known
	Elapsed time.Duration
}

type class struct {
	name  string
	label string
	count int
	bytes int64
}

func (r Report) classes() []class {
	st := r.Stats
	return []class{
		{"XML TAG", "XML tags", st.Nodes, st.XMLBytes},
		{"KEYS", "Attribute keys", st.Keys, st.KeyBytes},
		{"VALUES", "Attribute values", st.Values, st.ValueBytes},
		{"WORDS", "Words", st.Words, st.WordBytes},
		{"ENTITIES", "Entities", st.Entities, st.EntityBytes},
		{"WIKITAGS", "Wiki-tags", st.WikiTags, st.WikiTagBytes},
		{"WHITESPACE", "Whitespace", -1, st.WhitespaceBytes},
		{"NEWLINE", "Newlines", -1, st.NewlineBytes},
		{"FORMATTING", "Formatting", -1, st.FormatBytes},
	}
}

func mb(n int64) float64 { return float64(n) / 1e6 }

// WriteText writes the report as status lines; colored enables terminal
// highlighting of the line tags.
func (r Report) WriteText(w io.Writer, colored bool) error {
	tag := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgRed, color.Bold)
	if !colored {
		tag.DisableColor()
		warn.DisableColor()
	}

	ew := &wickutil.ErrWriter{Writer: w}
	failed := fmt.Sprint(r.Stats.Failed)
	if r.Stats.Failed > 0 {
		failed = warn.Sprint(failed)
	}
	fmt.Fprintf(ew, "%s PARSED LINES : %d | FAILED ELEMENTS: %s\n", tag.Sprint("[REPORT]"), r.Stats.Lines, failed)
	fmt.Fprintf(ew, "%s FILE STATISTICS\n", tag.Sprint("[REPORT]"))
	for _, c := range r.classes() {
		if c.count < 0 {
			fmt.Fprintf(ew, "%-10s : %16d [~ %.3f MB]\n", c.name, c.bytes, mb(c.bytes))
		} else {
			fmt.Fprintf(ew, "%-10s : %16d [~ %.3f MB]\n", c.name, c.count, mb(c.bytes))
		}
	}
	fmt.Fprintf(ew, "\nTOTAL COLLECTED DATA : ~%.3f MB\n", mb(r.Stats.Total()))
	if r.Input > 0 {
		fmt.Fprintf(ew, "TOTAL FILE SIZE: ~%.3f MB\n", mb(r.Input))
	}
	fmt.Fprintf(ew, "%s ELAPSED: %s\n", tag.Sprint("[STATUS]"), hms(r.Elapsed))
	return ew.Err
}

func hms(d time.Duration) string {
	s := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", s/3600, s%3600/60, s%60)
}

// Markdown returns the report as a Markdown document.
func (r Report) Markdown() []byte {
	var buf bytes.Buffer
	buf.WriteString("# Parse report\n\n")
	fmt.Fprintf(&buf, "Parsed %d lines in %s", r.Stats.Lines, hms(r.Elapsed))
	if r.Stats.Failed > 0 {
		fmt.Fprintf(&buf, ", with %d failed elements", r.Stats.Failed)
	}
	buf.WriteString(".\n\n")

	buf.WriteString("| Class | Count | Bytes |\n")
	buf.WriteString("|-------|------:|------:|\n")
	for _, c := range r.classes() {
		count := "-"
		if c.count >= 0 {
			count = fmt.Sprint(c.count)
		}
		fmt.Fprintf(&buf, "| %s | %s | %d |\n", c.label, count, c.bytes)
	}
	fmt.Fprintf(&buf, "| **Total** | | %d |\n", r.Stats.Total())
	if r.Input > 0 {
		fmt.Fprintf(&buf, "\nInput size: %d bytes.\n", r.Input)
	}
	return buf.Bytes()
}

// HTML returns the Markdown report rendered as an HTML fragment.
func (r Report) HTML() []byte {
	return blackfriday.Run(r.Markdown(), blackfriday.WithExtensions(blackfriday.CommonExtensions))
}
